// Package domain contains the shop (tenant) model and contracts.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Shop is a single business account; every invoice is scoped to one shop.
type Shop struct {
	ID           snowflake.ID `gorm:"primaryKey"`
	Slug         string       `gorm:"type:text;not null;uniqueIndex"`
	BusinessName string       `gorm:"type:text;not null"`
	Email        string       `gorm:"type:text"`
	Phone        string       `gorm:"type:text"`
	Address      string       `gorm:"type:text"`
	TaxRate      float64      `gorm:"not null;default:0"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Shop) TableName() string { return "shops" }

// BusinessInfo is the subset of shop settings the invoice-number
// generator needs.
type BusinessInfo struct {
	BusinessName string
	Email        string
	Phone        string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, shop *Shop) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Shop, error)
	FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*Shop, error)
	ListIDs(ctx context.Context, db *gorm.DB) ([]snowflake.ID, error)
}

var (
	ErrInvalidShopID = errors.New("invalid_shop_id")
	ErrShopNotFound  = errors.New("shop_not_found")
)
