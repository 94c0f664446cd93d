package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// ListFilter narrows a shop's invoice listing.
type ListFilter struct {
	Status   InvoiceStatus
	Customer string
	Offset   int
	Limit    int
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	FindByID(ctx context.Context, db *gorm.DB, shopID, id snowflake.ID) (*Invoice, error)
	List(ctx context.Context, db *gorm.DB, shopID snowflake.ID, filter ListFilter) ([]Invoice, int64, error)
	// UpdateFields applies a partial-field merge to a single invoice row.
	UpdateFields(ctx context.Context, db *gorm.DB, shopID, id snowflake.ID, fields map[string]any) error
	// ForEach streams a shop's full invoice set in batches; fn is invoked
	// once per invoice and aborts the scan when it returns an error.
	ForEach(ctx context.Context, db *gorm.DB, shopID snowflake.ID, batchSize int, fn func(Invoice) error) error
}
