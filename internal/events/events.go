// Package events provides the transactional outbox for invoice events.
package events

// Invoice event types written to the outbox.
const (
	EventInvoiceCreated       = "invoice_created"
	EventInvoiceStatusChanged = "invoice_status_changed"
	EventMilestoneRecorded    = "milestone_recorded"
	EventPaymentRecorded      = "payment_recorded"
	EventInvoicePaid          = "invoice_paid"
)

// PaymentPayload captures the minimal data a consumer needs to follow a
// recorded payment.
type PaymentPayload struct {
	InvoiceID string  `json:"invoice_id"`
	ReceiptID string  `json:"receipt_id"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
	FullyPaid bool    `json:"fully_paid"`
}

// ToMap converts the payload into an outbox-friendly map.
func (p PaymentPayload) ToMap() map[string]any {
	return map[string]any{
		"invoice_id": p.InvoiceID,
		"receipt_id": p.ReceiptID,
		"amount":     p.Amount,
		"method":     p.Method,
		"fully_paid": p.FullyPaid,
	}
}

// StatusPayload captures an invoice status transition.
type StatusPayload struct {
	InvoiceID string `json:"invoice_id"`
	From      string `json:"from"`
	To        string `json:"to"`
}

// ToMap converts the payload into an outbox-friendly map.
func (p StatusPayload) ToMap() map[string]any {
	return map[string]any{
		"invoice_id": p.InvoiceID,
		"from":       p.From,
		"to":         p.To,
	}
}
