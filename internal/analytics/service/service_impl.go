package service

import (
	"context"

	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/analytics/domain"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/clock"
	invoicedomain "github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/invoice/domain"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/shopcontext"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const scanBatchSize = 200

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	clk         clock.Clock
	invoiceRepo invoicedomain.Repository
}

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Clock       clock.Clock
	InvoiceRepo invoicedomain.Repository
}

func NewService(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("analytics.service"),
		clk:         p.Clock,
		invoiceRepo: p.InvoiceRepo,
	}
}

// Run scans the shop's invoices once, streaming them through the fold.
// An empty collection yields a fully zeroed snapshot.
func (s *Service) Run(ctx context.Context) (*domain.Snapshot, error) {
	shopID := shopcontext.ShopIDFromContext(ctx)
	if shopID == 0 {
		return nil, domain.ErrInvalidShop
	}

	acc := newAccumulator(s.clk.Now())
	err := s.invoiceRepo.ForEach(ctx, s.db, shopID, scanBatchSize, func(invoice invoicedomain.Invoice) error {
		acc.add(invoice)
		return nil
	})
	if err != nil {
		return nil, err
	}

	snapshot := acc.finish()
	s.log.Debug("analytics snapshot generated",
		zap.Int("total_invoices", snapshot.TotalInvoices),
		zap.Int("completion_rate", snapshot.CompletionRate),
	)
	return snapshot, nil
}
