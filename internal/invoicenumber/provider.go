package invoicenumber

import (
	"context"

	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/cache"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/config"
	shopdomain "github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/shop/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Provider resolves the business info feeding number generation, caching
// lookups with an explicit TTL instead of ambient module state.
type Provider struct {
	db       *gorm.DB
	log      *zap.Logger
	shopRepo shopdomain.Repository
	cache    *cache.TTL[snowflake.ID, shopdomain.BusinessInfo]
}

type ProviderParams struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	ShopRepo shopdomain.Repository
	Cfg      config.Config
}

func NewProvider(p ProviderParams) *Provider {
	return &Provider{
		db:       p.DB,
		log:      p.Log.Named("invoicenumber.provider"),
		shopRepo: p.ShopRepo,
		cache:    cache.New[snowflake.ID, shopdomain.BusinessInfo](p.Cfg.BusinessInfoTTL),
	}
}

// BusinessInfo returns the shop's business info, served from cache while
// fresh.
func (p *Provider) BusinessInfo(ctx context.Context, shopID snowflake.ID) (shopdomain.BusinessInfo, error) {
	if info, ok := p.cache.Get(shopID); ok {
		return info, nil
	}

	shop, err := p.shopRepo.FindByID(ctx, p.db, shopID)
	if err != nil {
		return shopdomain.BusinessInfo{}, err
	}
	if shop == nil {
		return shopdomain.BusinessInfo{}, shopdomain.ErrShopNotFound
	}

	info := shopdomain.BusinessInfo{
		BusinessName: shop.BusinessName,
		Email:        shop.Email,
		Phone:        shop.Phone,
	}
	p.cache.Put(shopID, info)
	return info, nil
}

// Invalidate drops the cached business info for a shop, typically after a
// settings update.
func (p *Provider) Invalidate(shopID snowflake.ID) {
	p.cache.Invalidate(shopID)
}
