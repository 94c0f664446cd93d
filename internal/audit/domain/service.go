package domain

import (
	"context"

	"gorm.io/gorm"
)

// Service records audit entries. A nil tx writes on the default connection.
type Service interface {
	Record(ctx context.Context, tx *gorm.DB, entry Entry) error
}

// Entry is the caller-facing shape of one audit record.
type Entry struct {
	ActorType  ActorType
	ActorID    string
	Action     string
	TargetType string
	TargetID   string
	Metadata   map[string]any
}
