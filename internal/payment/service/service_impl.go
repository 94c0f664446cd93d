package service

import (
	"context"
	"strings"

	auditdomain "github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/audit/domain"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/clock"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/events"
	invoicedomain "github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/invoice/domain"
	paymentdomain "github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/payment/domain"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/shopcontext"
	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	clk         clock.Clock
	invoiceRepo invoicedomain.Repository
	auditSvc    auditdomain.Service
	outbox      *events.Outbox
}

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Clock       clock.Clock
	InvoiceRepo invoicedomain.Repository
	AuditSvc    auditdomain.Service
	Outbox      *events.Outbox
}

func NewService(p Params) paymentdomain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("payment.service"),
		clk:         p.Clock,
		invoiceRepo: p.InvoiceRepo,
		auditSvc:    p.AuditSvc,
		outbox:      p.Outbox,
	}
}

// ApplyPayment records one payment against an invoice. The balance check,
// history append, status transition and event publication commit in a
// single transaction; a failed precondition leaves the row untouched.
//
// Concurrent payments against the same invoice are serialized by the
// enclosing transaction; callers should still queue per invoice.
func (s *Service) ApplyPayment(ctx context.Context, req paymentdomain.ApplyPaymentRequest) (*paymentdomain.ApplyPaymentResult, error) {
	shopID := shopcontext.ShopIDFromContext(ctx)
	if shopID == 0 {
		return nil, invoicedomain.ErrInvalidShop
	}

	invoiceID, err := snowflake.ParseString(strings.TrimSpace(req.InvoiceID))
	if err != nil {
		return nil, paymentdomain.ErrInvalidInvoiceID
	}
	method := strings.TrimSpace(req.Method)

	var result paymentdomain.ApplyPaymentResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invoice, err := s.invoiceRepo.FindByID(ctx, tx, shopID, invoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return paymentdomain.ErrInvoiceNotFound
		}

		now := s.clk.Now()
		receiptID := strings.TrimSpace(req.ReceiptID)
		if receiptID == "" {
			receiptID = uuid.NewString()
		}
		updated, event, err := paymentdomain.Apply(*invoice, req.Amount, method, receiptID, now)
		if err != nil {
			return err
		}
		fullyPaid := updated.Status == invoicedomain.StatusPaid

		fields := map[string]any{
			"paid_amount":     updated.PaidAmount,
			"status":          updated.Status,
			"payment_history": updated.PaymentHistory,
			"updated_at":      now,
		}
		if fullyPaid {
			fields["paid_at"] = now
		}
		if err := s.invoiceRepo.UpdateFields(ctx, tx, shopID, invoiceID, fields); err != nil {
			return err
		}

		payload := events.PaymentPayload{
			InvoiceID: invoiceID.String(),
			ReceiptID: receiptID,
			Amount:    event.Amount,
			Method:    event.Method,
			FullyPaid: fullyPaid,
		}
		if err := s.outbox.PublishTx(ctx, tx, events.Event{
			ShopID:    shopID,
			Type:      events.EventPaymentRecorded,
			Payload:   payload.ToMap(),
			DedupeKey: "payment:" + receiptID,
		}); err != nil {
			return err
		}
		if fullyPaid {
			// An invoice crosses into paid exactly once; replays and
			// racing writers collapse onto the same event row.
			if err := s.outbox.PublishTx(ctx, tx, events.Event{
				ShopID:    shopID,
				Type:      events.EventInvoicePaid,
				Payload:   payload.ToMap(),
				DedupeKey: "invoice_paid:" + invoiceID.String(),
			}); err != nil {
				return err
			}
		}

		targetID := invoiceID.String()
		_ = s.auditSvc.Record(ctx, tx, auditdomain.Entry{
			Action:     "invoice.payment",
			TargetType: "invoice",
			TargetID:   targetID,
			Metadata: map[string]any{
				"receipt_id": receiptID,
				"amount":     event.Amount,
				"method":     event.Method,
				"fully_paid": fullyPaid,
			},
		})

		result = paymentdomain.ApplyPaymentResult{
			Invoice:   updated,
			Event:     event,
			FullyPaid: fullyPaid,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("payment applied",
		zap.String("invoice_id", invoiceID.String()),
		zap.Float64("amount", result.Event.Amount),
		zap.Bool("fully_paid", result.FullyPaid),
	)
	return &result, nil
}
