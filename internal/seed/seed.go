package seed

import (
	"context"
	"errors"
	"time"

	shopdomain "github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/shop/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

const (
	defaultShopSlug = "main"
	defaultShopName = "WrenchTrack Garage"
)

// EnsureDefaultShop seeds the default shop for single-tenant installs.
func EnsureDefaultShop(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var shop shopdomain.Shop
		err := tx.WithContext(ctx).Where("slug = ?", defaultShopSlug).First(&shop).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now().UTC()
		shop = shopdomain.Shop{
			ID:           node.Generate(),
			Slug:         defaultShopSlug,
			BusinessName: defaultShopName,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return tx.WithContext(ctx).Create(&shop).Error
	})
}
