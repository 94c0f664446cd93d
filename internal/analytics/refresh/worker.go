// Package refresh keeps dashboard analytics warm by recomputing each
// shop's snapshot on a poll interval.
package refresh

import (
	"context"
	"time"

	analyticsdomain "github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/analytics/domain"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/cache"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/config"
	shopdomain "github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/shop/domain"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/shopcontext"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Holder caches the most recent snapshot per shop with an explicit TTL.
type Holder struct {
	cache *cache.TTL[snowflake.ID, *analyticsdomain.Snapshot]
}

func NewHolder(cfg config.Config) *Holder {
	return &Holder{
		cache: cache.New[snowflake.ID, *analyticsdomain.Snapshot](cfg.Analytics.SnapshotTTL),
	}
}

// Get returns the cached snapshot for a shop while it is fresh.
func (h *Holder) Get(shopID snowflake.ID) (*analyticsdomain.Snapshot, bool) {
	return h.cache.Get(shopID)
}

// Put stores a freshly computed snapshot.
func (h *Holder) Put(shopID snowflake.ID, snapshot *analyticsdomain.Snapshot) {
	h.cache.Put(shopID, snapshot)
}

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Cfg      config.Config
	ShopRepo shopdomain.Repository
	Svc      analyticsdomain.Service
	Holder   *Holder
}

// Worker recomputes all shops' snapshots in a loop.
type Worker struct {
	db       *gorm.DB
	log      *zap.Logger
	interval time.Duration
	shopRepo shopdomain.Repository
	svc      analyticsdomain.Service
	holder   *Holder
}

func NewWorker(p Params) *Worker {
	interval := p.Cfg.Analytics.RefreshInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Worker{
		db:       p.DB,
		log:      p.Log.Named("analytics.refresh"),
		interval: interval,
		shopRepo: p.ShopRepo,
		svc:      p.Svc,
		holder:   p.Holder,
	}
}

func (w *Worker) RunForever(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if err := w.RunOnce(ctx); err != nil {
			w.log.Warn("analytics refresh failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RunOnce refreshes every shop's snapshot. A failing shop is logged and
// skipped; the others still refresh.
func (w *Worker) RunOnce(ctx context.Context) error {
	shopIDs, err := w.shopRepo.ListIDs(ctx, w.db)
	if err != nil {
		return err
	}

	for _, shopID := range shopIDs {
		shopCtx := shopcontext.WithShopID(ctx, shopID)
		snapshot, err := w.svc.Run(shopCtx)
		if err != nil {
			w.log.Warn("snapshot refresh failed",
				zap.String("shop_id", shopID.String()),
				zap.Error(err),
			)
			continue
		}
		w.holder.Put(shopID, snapshot)
	}
	return nil
}
