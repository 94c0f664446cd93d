// Package repository implements the invoice record store on gorm.
package repository

import (
	"context"
	"errors"

	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/invoice/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repositoryImpl struct{}

// Provide constructs the invoice repository.
func Provide() domain.Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Insert(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Create(invoice).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, db *gorm.DB, shopID, id snowflake.ID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := db.WithContext(ctx).
		Where("shop_id = ? AND id = ?", shopID, id).
		First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *repositoryImpl) List(ctx context.Context, db *gorm.DB, shopID snowflake.ID, filter domain.ListFilter) ([]domain.Invoice, int64, error) {
	query := db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("shop_id = ?", shopID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Customer != "" {
		query = query.Where("customer_name LIKE ?", "%"+filter.Customer+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var invoices []domain.Invoice
	err := query.
		Order("created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&invoices).Error
	if err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}

func (r *repositoryImpl) UpdateFields(ctx context.Context, db *gorm.DB, shopID, id snowflake.ID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	result := db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("shop_id = ? AND id = ?", shopID, id).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

func (r *repositoryImpl) ForEach(ctx context.Context, db *gorm.DB, shopID snowflake.ID, batchSize int, fn func(domain.Invoice) error) error {
	if batchSize <= 0 {
		batchSize = 200
	}
	var batch []domain.Invoice
	return db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("id").
		FindInBatches(&batch, batchSize, func(tx *gorm.DB, _ int) error {
			for _, invoice := range batch {
				if err := fn(invoice); err != nil {
					return err
				}
			}
			return nil
		}).Error
}
