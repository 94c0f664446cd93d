package service

import (
	"fmt"
	"math"
	"time"

	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/analytics/domain"
	invoicedomain "github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/invoice/domain"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/lifecycle"
)

// accumulator folds invoices one at a time into a snapshot. It holds no
// per-invoice state, so the scan can stream arbitrarily large sets.
type accumulator struct {
	now      time.Time
	snapshot domain.Snapshot

	bucketOrder []string
	buckets     map[string]*domain.WeeklyBucket

	timeToCompleteSum   time.Duration
	timeToCompleteCount int
	timeToPaySum        time.Duration
	timeToPayCount      int
	milestoneSum        int
	milestoneCount      int
}

// weekKey buckets a timestamp by (year, month, floor(dayOfMonth/7)).
// This coarse scheme is intentionally not ISO weeks: the dashboard charts
// were built on it and bucket alignment must match.
func weekKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%d", t.Year(), int(t.Month()), t.Day()/7)
}

func newAccumulator(now time.Time) *accumulator {
	acc := &accumulator{
		now:     now,
		buckets: make(map[string]*domain.WeeklyBucket, domain.WeekWindow),
	}
	acc.snapshot.StatusHistogram = make(map[string]int)
	acc.snapshot.GeneratedAt = now

	// Rolling window anchored at now, oldest bucket first. Stepping back
	// in 7-day hops always changes the key, so the window holds exactly
	// WeekWindow distinct buckets.
	for i := domain.WeekWindow - 1; i >= 0; i-- {
		key := weekKey(now.AddDate(0, 0, -7*i))
		acc.bucketOrder = append(acc.bucketOrder, key)
		acc.buckets[key] = &domain.WeeklyBucket{WeekKey: key}
	}
	return acc
}

// add folds one invoice into the running snapshot.
func (a *accumulator) add(invoice invoicedomain.Invoice) {
	a.snapshot.TotalInvoices++
	a.snapshot.TotalRevenue += invoice.Total

	classification := lifecycle.Classify(invoice)
	status := classification.Status()

	// Untracked invoices are counted and nothing more: no durations, no
	// milestone sample, no weekly bucket.
	if status == lifecycle.StatusPending {
		a.snapshot.PendingInvoices++
		a.snapshot.StatusHistogram[string(status)]++
		return
	}

	a.milestoneSum += classification.MilestoneCount
	a.milestoneCount++
	a.snapshot.StatusHistogram[string(status)]++

	completed := false
	paid := false
	switch status {
	case lifecycle.StatusCompletedUnpaid:
		a.snapshot.CompletedInvoices++
		a.snapshot.CompletedUnpaidInvoices++
		completed = true
	case lifecycle.StatusCompletedPaid:
		a.snapshot.CompletedInvoices++
		a.snapshot.CompletedPaidInvoices++
		a.snapshot.CollectedRevenue += invoice.Total
		completed = true
		paid = true
	case lifecycle.StatusPaid:
		a.snapshot.PaidDirectInvoices++
		a.snapshot.CollectedRevenue += invoice.Total
		paid = true
	}

	if completed && classification.HasTimeToComplete {
		a.timeToCompleteSum += classification.TimeToComplete
		a.timeToCompleteCount++
	}
	if status == lifecycle.StatusCompletedPaid && classification.HasTimeToPay {
		a.timeToPaySum += classification.TimeToPay
		a.timeToPayCount++
	}

	createdAt := invoice.CreatedAt
	if createdAt.IsZero() {
		createdAt = a.now
	}
	if bucket, ok := a.buckets[weekKey(createdAt)]; ok {
		bucket.Created++
		if completed {
			bucket.Completed++
		}
		if paid {
			bucket.Paid++
		}
	}
}

// finish computes the averages and rates and returns the snapshot.
func (a *accumulator) finish() *domain.Snapshot {
	s := a.snapshot

	if a.timeToCompleteCount > 0 {
		s.AvgTimeToComplete = a.timeToCompleteSum / time.Duration(a.timeToCompleteCount)
	}
	if a.timeToPayCount > 0 {
		s.AvgTimeToPay = a.timeToPaySum / time.Duration(a.timeToPayCount)
	}
	if a.milestoneCount > 0 {
		s.AvgMilestones = float64(a.milestoneSum) / float64(a.milestoneCount)
	}

	s.CompletionRate = wholePercent(float64(s.CompletedInvoices), float64(s.TotalInvoices))
	s.PaymentRate = wholePercent(float64(s.CompletedPaidInvoices), float64(s.CompletedInvoices))
	s.RevenueCollectionRate = wholePercent(s.CollectedRevenue, s.TotalRevenue)

	s.WeeklyBuckets = make([]domain.WeeklyBucket, 0, len(a.bucketOrder))
	for _, key := range a.bucketOrder {
		s.WeeklyBuckets = append(s.WeeklyBuckets, *a.buckets[key])
	}
	return &s
}

// wholePercent rounds numerator/denominator to the nearest whole
// percentage point, with 0 for an empty denominator.
func wholePercent(numerator, denominator float64) int {
	if denominator == 0 {
		return 0
	}
	return int(math.Round(numerator / denominator * 100))
}
