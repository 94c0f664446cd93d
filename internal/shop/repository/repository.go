package repository

import (
	"context"
	"errors"

	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/shop/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repositoryImpl struct{}

// Provide constructs the shop repository.
func Provide() domain.Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Insert(ctx context.Context, db *gorm.DB, shop *domain.Shop) error {
	return db.WithContext(ctx).Create(shop).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Shop, error) {
	var shop domain.Shop
	err := db.WithContext(ctx).Where("id = ?", id).First(&shop).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shop, nil
}

func (r *repositoryImpl) ListIDs(ctx context.Context, db *gorm.DB) ([]snowflake.ID, error) {
	var ids []snowflake.ID
	err := db.WithContext(ctx).
		Model(&domain.Shop{}).
		Order("id").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *repositoryImpl) FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*domain.Shop, error) {
	var shop domain.Shop
	err := db.WithContext(ctx).Where("slug = ?", slug).First(&shop).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shop, nil
}
