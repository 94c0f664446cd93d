// Package domain contains the audit trail model and contracts.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// ActorType represents who triggered an action.
type ActorType string

const (
	ActorTypeUser   ActorType = "user"
	ActorTypeSystem ActorType = "system"
)

// AuditLog captures an immutable record of an invoice mutation.
type AuditLog struct {
	ID         snowflake.ID      `gorm:"primaryKey"`
	ShopID     snowflake.ID      `gorm:"not null;index"`
	ActorType  string            `gorm:"type:text;not null"`
	ActorID    *string           `gorm:"type:text"`
	Action     string            `gorm:"type:text;not null;index"`
	TargetType string            `gorm:"type:text;not null"`
	TargetID   *string           `gorm:"type:text"`
	Metadata   datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt  time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (AuditLog) TableName() string { return "audit_logs" }
