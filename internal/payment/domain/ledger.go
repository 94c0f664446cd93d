// Package domain implements the payment ledger rules: a payment applies
// against an invoice's running balance under strict non-negative-balance
// and no-overpayment invariants.
package domain

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	invoicedomain "github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/invoice/domain"
)

// ValidationError reports a violated payment precondition. Callers must
// surface it to the user and never retry with the same input.
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

var (
	ErrInvalidInvoiceID = errors.New("invalid_invoice_id")
	ErrInvoiceNotFound  = errors.New("invoice_not_found")
)

// Service applies payments to invoices.
type Service interface {
	ApplyPayment(ctx context.Context, req ApplyPaymentRequest) (*ApplyPaymentResult, error)
}

type ApplyPaymentRequest struct {
	InvoiceID string  `json:"invoice_id"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
	// ReceiptID is the caller's idempotency key. Retries carrying the
	// same key record at most one payment event; empty means one is
	// minted server-side.
	ReceiptID string `json:"receipt_id"`
}

type ApplyPaymentResult struct {
	Invoice   invoicedomain.Invoice      `json:"invoice"`
	Event     invoicedomain.PaymentEvent `json:"event"`
	FullyPaid bool                       `json:"fully_paid"`
}

// Apply computes the payment against a copy of the invoice and returns
// the updated invoice. The original is never mutated, so a validation
// failure leaves no partial state behind.
//
// A resulting balance <= 0 counts as fully paid; the boundary is <=, not
// ==, so floating-point remainders cannot strand an invoice in partial.
func Apply(invoice invoicedomain.Invoice, amount float64, method, receiptID string, now time.Time) (invoicedomain.Invoice, invoicedomain.PaymentEvent, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return invoice, invoicedomain.PaymentEvent{}, &ValidationError{
			Field:   "amount",
			Code:    "invalid_amount",
			Message: "payment amount must be a positive number",
		}
	}

	balance := invoice.Balance()
	if amount > balance {
		return invoice, invoicedomain.PaymentEvent{}, &ValidationError{
			Field:   "amount",
			Code:    "amount_exceeds_balance",
			Message: fmt.Sprintf("payment amount %.2f exceeds remaining balance %.2f", amount, balance),
		}
	}

	event := invoicedomain.PaymentEvent{
		ReceiptID: receiptID,
		Amount:    amount,
		Method:    method,
		Date:      now,
		Status:    invoicedomain.PaymentEventStatusCompleted,
	}

	updated := invoice
	updated.PaidAmount = invoice.PaidAmount + amount
	updated.PaymentHistory = append(append([]invoicedomain.PaymentEvent(nil), invoice.PaymentHistory...), event)
	updated.UpdatedAt = now

	if updated.Balance() <= 0 {
		updated.Status = invoicedomain.StatusPaid
		paidAt := now
		updated.PaidAt = &paidAt
	} else {
		updated.Status = invoicedomain.StatusPartial
	}
	return updated, event, nil
}
