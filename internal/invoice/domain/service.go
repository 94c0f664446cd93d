package domain

import (
	"context"
	"errors"
	"time"

	"github.com/KnownApo/wrenchtrack-vite-final-sub001/pkg/db/pagination"
)

type ListInvoiceRequest struct {
	pagination.Pagination
	Status   InvoiceStatus
	Customer string
}

type ListInvoiceResponse struct {
	pagination.PageInfo
	Invoices []Invoice `json:"invoices"`
}

type CreateInvoiceRequest struct {
	CustomerName  string     `json:"customer_name"`
	CustomerEmail string     `json:"customer_email"`
	PONumber      string     `json:"po_number"`
	LineItems     []LineItem `json:"line_items"`
	TaxRate       float64    `json:"tax_rate"`
	DueDate       *time.Time `json:"due_date"`
}

type Service interface {
	List(ctx context.Context, req ListInvoiceRequest) (ListInvoiceResponse, error)
	GetByID(ctx context.Context, id string) (*Invoice, error)
	Create(ctx context.Context, req CreateInvoiceRequest) (*Invoice, error)
	UpdateStatus(ctx context.Context, id string, status InvoiceStatus) (*Invoice, error)
	RecordMilestone(ctx context.Context, id string, milestone string, note string) (*Invoice, error)
}

var (
	ErrInvalidShop      = errors.New("invalid_shop")
	ErrInvalidInvoiceID = errors.New("invalid_invoice_id")
	ErrInvoiceNotFound  = errors.New("invoice_not_found")
	ErrInvalidStatus    = errors.New("invalid_status")
	ErrInvalidMilestone = errors.New("invalid_milestone")
	ErrInvalidCustomer  = errors.New("invalid_customer")
	ErrInvalidLineItem  = errors.New("invalid_line_item")
	ErrInvalidTaxRate   = errors.New("invalid_tax_rate")
)
