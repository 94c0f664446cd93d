// Package domain defines the analytics snapshot shapes.
package domain

import (
	"context"
	"errors"
	"time"
)

// WeekWindow is the number of rolling week buckets on the dashboard chart.
const WeekWindow = 8

// WeeklyBucket is one derived chart bucket, keyed by
// (year, month, floor(dayOfMonth/7)). Regenerated on every run, never stored.
type WeeklyBucket struct {
	WeekKey   string `json:"week_key"`
	Created   int    `json:"created"`
	Completed int    `json:"completed"`
	Paid      int    `json:"paid"`
}

// Snapshot is the derived dashboard report for one shop's invoice set.
type Snapshot struct {
	TotalInvoices           int `json:"total_invoices"`
	CompletedInvoices       int `json:"completed_invoices"`
	CompletedUnpaidInvoices int `json:"completed_unpaid_invoices"`
	CompletedPaidInvoices   int `json:"completed_paid_invoices"`
	PendingInvoices         int `json:"pending_invoices"`
	PaidDirectInvoices      int `json:"paid_direct_invoices"`

	TotalRevenue     float64 `json:"total_revenue"`
	CollectedRevenue float64 `json:"collected_revenue"`

	// Rates are whole percentage points, rounded to nearest.
	CompletionRate        int `json:"completion_rate"`
	PaymentRate           int `json:"payment_rate"`
	RevenueCollectionRate int `json:"revenue_collection_rate"`

	AvgTimeToComplete time.Duration `json:"avg_time_to_complete"`
	AvgTimeToPay      time.Duration `json:"avg_time_to_pay"`
	AvgMilestones     float64       `json:"avg_milestones"`

	WeeklyBuckets   []WeeklyBucket `json:"weekly_buckets"`
	StatusHistogram map[string]int `json:"status_histogram"`
	GeneratedAt     time.Time      `json:"generated_at"`
}

// Service produces analytics snapshots for the active shop.
type Service interface {
	// Run scans the shop's invoice collection and folds it into one
	// consistent snapshot. Each call is independent and side-effect-free.
	Run(ctx context.Context) (*Snapshot, error)
}

var ErrInvalidShop = errors.New("invalid_shop")
