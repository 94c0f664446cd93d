package service

import (
	"context"
	"strings"

	auditdomain "github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/audit/domain"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/clock"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/events"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/invoice/domain"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/invoicenumber"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/shopcontext"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	clk         clock.Clock
	genID       *snowflake.Node
	invoiceRepo domain.Repository
	numberInfo  *invoicenumber.Provider
	auditSvc    auditdomain.Service
	outbox      *events.Outbox
}

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Clock       clock.Clock
	GenID       *snowflake.Node
	InvoiceRepo domain.Repository
	NumberInfo  *invoicenumber.Provider
	AuditSvc    auditdomain.Service
	Outbox      *events.Outbox
}

func NewService(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("invoice.service"),
		clk:         p.Clock,
		genID:       p.GenID,
		invoiceRepo: p.InvoiceRepo,
		numberInfo:  p.NumberInfo,
		auditSvc:    p.AuditSvc,
		outbox:      p.Outbox,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListInvoiceRequest) (domain.ListInvoiceResponse, error) {
	shopID := shopcontext.ShopIDFromContext(ctx)
	if shopID == 0 {
		return domain.ListInvoiceResponse{}, domain.ErrInvalidShop
	}
	if req.Status != "" && !domain.ValidStatus(req.Status) {
		return domain.ListInvoiceResponse{}, domain.ErrInvalidStatus
	}

	offset := pagination.DecodeToken(req.PageToken)
	limit := pagination.Limit(req.PageSize)
	invoices, total, err := s.invoiceRepo.List(ctx, s.db, shopID, domain.ListFilter{
		Status:   req.Status,
		Customer: strings.TrimSpace(req.Customer),
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		return domain.ListInvoiceResponse{}, err
	}

	return domain.ListInvoiceResponse{
		PageInfo: pagination.PageInfo{
			NextPageToken: pagination.EncodeToken(offset+len(invoices), total),
			TotalSize:     total,
		},
		Invoices: invoices,
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	shopID := shopcontext.ShopIDFromContext(ctx)
	if shopID == 0 {
		return nil, domain.ErrInvalidShop
	}
	invoiceID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidInvoiceID
	}

	invoice, err := s.invoiceRepo.FindByID(ctx, s.db, shopID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrInvoiceNotFound
	}
	return invoice, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateInvoiceRequest) (*domain.Invoice, error) {
	shopID := shopcontext.ShopIDFromContext(ctx)
	if shopID == 0 {
		return nil, domain.ErrInvalidShop
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, domain.ErrInvalidCustomer
	}
	if req.TaxRate < 0 {
		return nil, domain.ErrInvalidTaxRate
	}

	var subtotal float64
	items := make([]domain.LineItem, 0, len(req.LineItems))
	for _, item := range req.LineItems {
		if item.Quantity < 0 || item.UnitPrice < 0 {
			return nil, domain.ErrInvalidLineItem
		}
		if item.Amount == 0 {
			item.Amount = item.Quantity * item.UnitPrice
		}
		subtotal += item.Amount
		items = append(items, item)
	}
	tax := subtotal * req.TaxRate
	total := subtotal + tax

	info, err := s.numberInfo.BusinessInfo(ctx, shopID)
	if err != nil {
		return nil, err
	}
	number := invoicenumber.Generate(info.BusinessName, req.PONumber, "")

	now := s.clk.Now()
	invoice := domain.Invoice{
		ID:            s.genID.Generate(),
		ShopID:        shopID,
		InvoiceNumber: number.FullNumber,
		PONumber:      number.PONumber,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
		LineItems:     items,
		TaxRate:       req.TaxRate,
		Subtotal:      subtotal,
		Tax:           tax,
		Total:         total,
		Status:        domain.StatusPending,
		DueDate:       req.DueDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.invoiceRepo.Insert(ctx, tx, &invoice); err != nil {
			return err
		}
		return s.outbox.PublishTx(ctx, tx, events.Event{
			ShopID: shopID,
			Type:   events.EventInvoiceCreated,
			Payload: map[string]any{
				"invoice_id":     invoice.ID.String(),
				"invoice_number": invoice.InvoiceNumber,
				"total":          invoice.Total,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
	)
	return &invoice, nil
}

// UpdateStatus is the quick-action path: the status is set directly, not
// derived. Setting paid here is the direct-payment route that bypasses
// tracked completion.
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.InvoiceStatus) (*domain.Invoice, error) {
	shopID := shopcontext.ShopIDFromContext(ctx)
	if shopID == 0 {
		return nil, domain.ErrInvalidShop
	}
	if !domain.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	invoiceID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidInvoiceID
	}

	var updated *domain.Invoice
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invoice, err := s.invoiceRepo.FindByID(ctx, tx, shopID, invoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return domain.ErrInvoiceNotFound
		}

		now := s.clk.Now()
		fields := map[string]any{
			"status":     status,
			"updated_at": now,
		}
		if status == domain.StatusPaid && invoice.PaidAt == nil {
			fields["paid_at"] = now
			paidAt := now
			invoice.PaidAt = &paidAt
		}
		if err := s.invoiceRepo.UpdateFields(ctx, tx, shopID, invoiceID, fields); err != nil {
			return err
		}

		previous := invoice.Status
		invoice.Status = status
		invoice.UpdatedAt = now
		updated = invoice

		payload := events.StatusPayload{
			InvoiceID: invoiceID.String(),
			From:      string(previous),
			To:        string(status),
		}
		if err := s.outbox.PublishTx(ctx, tx, events.Event{
			ShopID:  shopID,
			Type:    events.EventInvoiceStatusChanged,
			Payload: payload.ToMap(),
		}); err != nil {
			return err
		}

		targetID := invoiceID.String()
		_ = s.auditSvc.Record(ctx, tx, auditdomain.Entry{
			Action:     "invoice.status",
			TargetType: "invoice",
			TargetID:   targetID,
			Metadata:   payload.ToMap(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RecordMilestone appends a tracked milestone and nudges the display
// status along the tracked path.
func (s *Service) RecordMilestone(ctx context.Context, id string, milestone string, note string) (*domain.Invoice, error) {
	shopID := shopcontext.ShopIDFromContext(ctx)
	if shopID == 0 {
		return nil, domain.ErrInvalidShop
	}
	milestone = strings.TrimSpace(milestone)
	if !domain.ValidMilestone(milestone) {
		return nil, domain.ErrInvalidMilestone
	}
	invoiceID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidInvoiceID
	}

	var updated *domain.Invoice
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invoice, err := s.invoiceRepo.FindByID(ctx, tx, shopID, invoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return domain.ErrInvoiceNotFound
		}

		now := s.clk.Now()
		tracking, err := domain.AppendMilestone(invoice.Tracking, domain.Milestone{
			Status:    milestone,
			Timestamp: now,
			Note:      strings.TrimSpace(note),
		})
		if err != nil {
			return err
		}

		fields := map[string]any{
			"tracking":   tracking,
			"updated_at": now,
		}
		status := trackedStatus(invoice, milestone)
		if status != "" {
			fields["status"] = status
			invoice.Status = status
		}
		if milestone == domain.MilestonePaid && invoice.PaidAt == nil {
			fields["paid_at"] = now
			paidAt := now
			invoice.PaidAt = &paidAt
		}
		if err := s.invoiceRepo.UpdateFields(ctx, tx, shopID, invoiceID, fields); err != nil {
			return err
		}

		invoice.Tracking = tracking
		invoice.UpdatedAt = now
		updated = invoice

		if err := s.outbox.PublishTx(ctx, tx, events.Event{
			ShopID: shopID,
			Type:   events.EventMilestoneRecorded,
			Payload: map[string]any{
				"invoice_id": invoiceID.String(),
				"milestone":  milestone,
			},
		}); err != nil {
			return err
		}

		targetID := invoiceID.String()
		_ = s.auditSvc.Record(ctx, tx, auditdomain.Entry{
			Action:     "invoice.milestone",
			TargetType: "invoice",
			TargetID:   targetID,
			Metadata:   map[string]any{"milestone": milestone},
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// trackedStatus maps a newly recorded milestone to the display status it
// implies, or "" when the status should stay as is.
func trackedStatus(invoice *domain.Invoice, milestone string) domain.InvoiceStatus {
	hasCompletion := false
	for _, m := range invoice.Milestones() {
		if m.Status == domain.MilestoneCompleted {
			hasCompletion = true
			break
		}
	}

	switch milestone {
	case domain.MilestoneCompleted:
		if invoice.Status == domain.StatusPaid || invoice.Status == domain.StatusCompletedPaid {
			return domain.StatusCompletedPaid
		}
		return domain.StatusCompletedUnpaid
	case domain.MilestonePaid:
		if hasCompletion {
			return domain.StatusCompletedPaid
		}
		return domain.StatusPaid
	}
	return ""
}
