// Package domain contains the invoice model and its contracts.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// InvoiceStatus is the authoritative display status of an invoice.
type InvoiceStatus string

const (
	StatusDraft           InvoiceStatus = "draft"
	StatusPending         InvoiceStatus = "pending"
	StatusPartial         InvoiceStatus = "partial"
	StatusCompletedUnpaid InvoiceStatus = "completed_unpaid"
	StatusCompletedPaid   InvoiceStatus = "completed_paid"
	StatusPaid            InvoiceStatus = "paid"
	StatusOverdue         InvoiceStatus = "overdue"
)

// ValidStatus reports whether s is a known invoice status.
func ValidStatus(s InvoiceStatus) bool {
	switch s {
	case StatusDraft, StatusPending, StatusPartial, StatusCompletedUnpaid,
		StatusCompletedPaid, StatusPaid, StatusOverdue:
		return true
	}
	return false
}

// Milestone statuses recorded inside an invoice's tracking data.
const (
	MilestoneCreated    = "created"
	MilestoneInProgress = "in_progress"
	MilestoneCompleted  = "completed"
	MilestonePaid       = "paid"
)

// ValidMilestone reports whether s is a recordable milestone status.
func ValidMilestone(s string) bool {
	switch s {
	case MilestoneCreated, MilestoneInProgress, MilestoneCompleted, MilestonePaid:
		return true
	}
	return false
}

// PaymentEvent is one immutable entry in an invoice's payment history.
type PaymentEvent struct {
	ReceiptID string    `json:"receipt_id"`
	Amount    float64   `json:"amount"`
	Method    string    `json:"method"`
	Date      time.Time `json:"date"`
	Status    string    `json:"status"`
}

// PaymentEventStatusCompleted is the only status a recorded payment carries.
const PaymentEventStatusCompleted = "completed"

// Milestone is one recorded lifecycle timestamp.
type Milestone struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
}

// LineItem is a part or labor charge on an invoice.
type LineItem struct {
	Description string  `json:"description"`
	Kind        string  `json:"kind"` // part | labor
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Amount      float64 `json:"amount"`
}

// Invoice is the central entity, scoped to a shop.
//
// Tracking is stored as raw JSON on purpose: the lifecycle classifier reads
// it permissively and treats malformed or absent data as "no milestones yet".
type Invoice struct {
	ID             snowflake.ID                          `gorm:"primaryKey" json:"id"`
	ShopID         snowflake.ID                          `gorm:"not null;index" json:"shop_id"`
	InvoiceNumber  string                                `gorm:"type:text;not null;index" json:"invoice_number"`
	PONumber       string                                `gorm:"type:text" json:"po_number,omitempty"`
	CustomerName   string                                `gorm:"type:text;not null" json:"customer_name"`
	CustomerEmail  string                                `gorm:"type:text" json:"customer_email,omitempty"`
	LineItems      datatypes.JSONSlice[LineItem]         `gorm:"type:jsonb" json:"line_items"`
	TaxRate        float64                               `gorm:"not null;default:0" json:"tax_rate"`
	Subtotal       float64                               `gorm:"not null;default:0" json:"subtotal"`
	Tax            float64                               `gorm:"not null;default:0" json:"tax"`
	Total          float64                               `gorm:"not null;default:0" json:"total"`
	Status         InvoiceStatus                         `gorm:"type:text;not null;default:'pending'" json:"status"`
	PaidAmount     float64                               `gorm:"not null;default:0" json:"paid_amount"`
	PaymentHistory datatypes.JSONSlice[PaymentEvent]     `gorm:"type:jsonb" json:"payment_history"`
	Tracking       datatypes.JSON                        `gorm:"type:jsonb" json:"tracking,omitempty"`
	DueDate        *time.Time                            `gorm:"index" json:"due_date,omitempty"`
	PaidAt         *time.Time                            `json:"paid_at,omitempty"`
	CreatedAt      time.Time                             `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time                             `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// Balance is the remaining unpaid amount. Derived, never stored.
func (i Invoice) Balance() float64 { return i.Total - i.PaidAmount }
