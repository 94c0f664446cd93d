package service

import (
	"testing"
	"time"

	invoicedomain "github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/invoice/domain"
)

var anchor = time.Date(2025, 7, 18, 12, 0, 0, 0, time.UTC)

func tracked(t *testing.T, invoice invoicedomain.Invoice, milestones ...invoicedomain.Milestone) invoicedomain.Invoice {
	t.Helper()
	raw, err := invoicedomain.EncodeTracking(milestones)
	if err != nil {
		t.Fatalf("encode tracking: %v", err)
	}
	invoice.Tracking = raw
	return invoice
}

func pendingInvoice(total float64) invoicedomain.Invoice {
	return invoicedomain.Invoice{
		Total:     total,
		Status:    invoicedomain.StatusPending,
		CreatedAt: anchor.Add(-time.Hour),
	}
}

func completedUnpaidInvoice(t *testing.T, total float64) invoicedomain.Invoice {
	t.Helper()
	invoice := invoicedomain.Invoice{
		Total:     total,
		Status:    invoicedomain.StatusCompletedUnpaid,
		CreatedAt: anchor.Add(-72 * time.Hour),
	}
	return tracked(t, invoice,
		invoicedomain.Milestone{Status: invoicedomain.MilestoneCreated, Timestamp: anchor.Add(-72 * time.Hour)},
		invoicedomain.Milestone{Status: invoicedomain.MilestoneCompleted, Timestamp: anchor.Add(-24 * time.Hour)},
	)
}

func completedPaidInvoice(t *testing.T, total float64) invoicedomain.Invoice {
	t.Helper()
	invoice := invoicedomain.Invoice{
		Total:     total,
		Status:    invoicedomain.StatusCompletedPaid,
		CreatedAt: anchor.Add(-96 * time.Hour),
	}
	return tracked(t, invoice,
		invoicedomain.Milestone{Status: invoicedomain.MilestoneCreated, Timestamp: anchor.Add(-96 * time.Hour)},
		invoicedomain.Milestone{Status: invoicedomain.MilestoneCompleted, Timestamp: anchor.Add(-48 * time.Hour)},
		invoicedomain.Milestone{Status: invoicedomain.MilestonePaid, Timestamp: anchor.Add(-24 * time.Hour)},
	)
}

func paidDirectInvoice(total float64) invoicedomain.Invoice {
	paidAt := anchor.Add(-time.Hour)
	return invoicedomain.Invoice{
		Total:     total,
		Status:    invoicedomain.StatusPaid,
		PaidAt:    &paidAt,
		CreatedAt: anchor.Add(-2 * time.Hour),
	}
}

func fold(invoices ...invoicedomain.Invoice) *accumulator {
	acc := newAccumulator(anchor)
	for _, invoice := range invoices {
		acc.add(invoice)
	}
	return acc
}

func TestEmptyCollection(t *testing.T) {
	got := fold().finish()

	if got.TotalInvoices != 0 || got.PendingInvoices != 0 || got.CompletedInvoices != 0 {
		t.Fatalf("expected zeroed counts, got %+v", got)
	}
	if got.CompletionRate != 0 || got.PaymentRate != 0 || got.RevenueCollectionRate != 0 {
		t.Fatalf("expected zeroed rates, got %+v", got)
	}
	if got.AvgTimeToComplete != 0 || got.AvgTimeToPay != 0 || got.AvgMilestones != 0 {
		t.Fatalf("expected zeroed averages, got %+v", got)
	}
	if len(got.WeeklyBuckets) != 8 {
		t.Fatalf("expected 8 week buckets, got %d", len(got.WeeklyBuckets))
	}
	for _, bucket := range got.WeeklyBuckets {
		if bucket.Created != 0 || bucket.Completed != 0 || bucket.Paid != 0 {
			t.Fatalf("expected empty bucket, got %+v", bucket)
		}
	}
}

func TestThreeInvoiceScenario(t *testing.T) {
	got := fold(
		pendingInvoice(50),
		completedUnpaidInvoice(t, 100),
		completedPaidInvoice(t, 200),
	).finish()

	if got.TotalInvoices != 3 {
		t.Fatalf("expected 3 invoices, got %d", got.TotalInvoices)
	}
	if got.CompletedInvoices != 2 || got.CompletedUnpaidInvoices != 1 || got.CompletedPaidInvoices != 1 {
		t.Fatalf("unexpected completion counts: %+v", got)
	}
	if got.PendingInvoices != 1 {
		t.Fatalf("expected 1 pending, got %d", got.PendingInvoices)
	}
	if got.CompletionRate != 67 {
		t.Fatalf("expected completion rate 67, got %d", got.CompletionRate)
	}
	if got.PaymentRate != 50 {
		t.Fatalf("expected payment rate 50, got %d", got.PaymentRate)
	}
	if got.TotalRevenue != 350 {
		t.Fatalf("expected total revenue 350, got %.2f", got.TotalRevenue)
	}
	if got.CollectedRevenue != 200 {
		t.Fatalf("expected collected revenue 200, got %.2f", got.CollectedRevenue)
	}
	if got.RevenueCollectionRate != 57 { // 200/350 = 57.14 -> 57
		t.Fatalf("expected collection rate 57, got %d", got.RevenueCollectionRate)
	}
	if got.AvgTimeToComplete != 48*time.Hour {
		t.Fatalf("expected avg time-to-complete 48h, got %v", got.AvgTimeToComplete)
	}
	if got.AvgTimeToPay != 24*time.Hour {
		t.Fatalf("expected avg time-to-pay 24h, got %v", got.AvgTimeToPay)
	}
	if got.AvgMilestones != 2.5 { // (2 + 3) / 2 classified invoices
		t.Fatalf("expected avg milestones 2.5, got %.2f", got.AvgMilestones)
	}
}

func TestHistogramConservation(t *testing.T) {
	got := fold(
		pendingInvoice(10),
		pendingInvoice(20),
		completedUnpaidInvoice(t, 100),
		completedPaidInvoice(t, 200),
		completedPaidInvoice(t, 300),
		paidDirectInvoice(400),
	).finish()

	accounted := got.PendingInvoices + got.CompletedUnpaidInvoices + got.CompletedPaidInvoices + got.PaidDirectInvoices
	if accounted != got.TotalInvoices {
		t.Fatalf("status buckets account for %d of %d invoices", accounted, got.TotalInvoices)
	}

	histogramTotal := 0
	for _, count := range got.StatusHistogram {
		histogramTotal += count
	}
	if histogramTotal != got.TotalInvoices {
		t.Fatalf("histogram accounts for %d of %d invoices", histogramTotal, got.TotalInvoices)
	}
	if got.StatusHistogram["pending"] != 2 ||
		got.StatusHistogram["completed_unpaid"] != 1 ||
		got.StatusHistogram["completed_paid"] != 2 ||
		got.StatusHistogram["paid"] != 1 {
		t.Fatalf("unexpected histogram: %+v", got.StatusHistogram)
	}
}

func TestDirectPaymentContributesRevenue(t *testing.T) {
	got := fold(
		completedPaidInvoice(t, 200),
		paidDirectInvoice(400),
	).finish()

	if got.CollectedRevenue != 600 {
		t.Fatalf("expected both payment paths in collected revenue, got %.2f", got.CollectedRevenue)
	}
	// Only the tracked path feeds the payment rate.
	if got.CompletedInvoices != 1 || got.PaymentRate != 100 {
		t.Fatalf("unexpected tracked counts: completed=%d rate=%d", got.CompletedInvoices, got.PaymentRate)
	}
	if got.AvgTimeToPay != 24*time.Hour {
		t.Fatalf("direct payment leaked into time-to-pay: %v", got.AvgTimeToPay)
	}
}

func TestWeeklyBuckets(t *testing.T) {
	got := fold(
		completedPaidInvoice(t, 200),    // created 4 days ago, same bucket window
		completedUnpaidInvoice(t, 100),  // created 3 days ago
		paidDirectInvoice(400),          // created 2 hours ago
		pendingInvoice(50),              // pending: never bucketed
	).finish()

	if len(got.WeeklyBuckets) != 8 {
		t.Fatalf("expected 8 buckets, got %d", len(got.WeeklyBuckets))
	}
	for i := 1; i < len(got.WeeklyBuckets); i++ {
		if got.WeeklyBuckets[i].WeekKey <= got.WeeklyBuckets[i-1].WeekKey {
			t.Fatalf("buckets not ascending: %q then %q", got.WeeklyBuckets[i-1].WeekKey, got.WeeklyBuckets[i].WeekKey)
		}
	}

	var created, completed, paid int
	for _, bucket := range got.WeeklyBuckets {
		created += bucket.Created
		completed += bucket.Completed
		paid += bucket.Paid
	}
	if created != 3 {
		t.Fatalf("expected 3 bucketed creations (pending excluded), got %d", created)
	}
	if completed != 2 {
		t.Fatalf("expected 2 bucketed completions, got %d", completed)
	}
	if paid != 2 {
		t.Fatalf("expected 2 bucketed payments, got %d", paid)
	}
}

func TestOldInvoiceDroppedFromChartButCounted(t *testing.T) {
	old := completedPaidInvoice(t, 200)
	old.CreatedAt = anchor.AddDate(-1, 0, 0)
	got := fold(old).finish()

	if got.TotalInvoices != 1 || got.CompletedPaidInvoices != 1 {
		t.Fatalf("old invoice dropped from totals: %+v", got)
	}
	for _, bucket := range got.WeeklyBuckets {
		if bucket.Created != 0 {
			t.Fatalf("old invoice leaked into bucket %q", bucket.WeekKey)
		}
	}
}

func TestZeroCreatedAtDefaultsToNow(t *testing.T) {
	invoice := completedUnpaidInvoice(t, 100)
	invoice.CreatedAt = time.Time{}
	got := fold(invoice).finish()

	newest := got.WeeklyBuckets[len(got.WeeklyBuckets)-1]
	if newest.Created != 1 {
		t.Fatalf("zero created-at not bucketed at now: %+v", got.WeeklyBuckets)
	}
}

func TestWeekKeyScheme(t *testing.T) {
	cases := []struct {
		day  int
		want string
	}{
		{1, "2025-07-0"},
		{6, "2025-07-0"},
		{7, "2025-07-1"},
		{13, "2025-07-1"},
		{14, "2025-07-2"},
		{28, "2025-07-4"},
		{31, "2025-07-4"},
	}
	for _, tc := range cases {
		ts := time.Date(2025, 7, tc.day, 10, 0, 0, 0, time.UTC)
		if got := weekKey(ts); got != tc.want {
			t.Fatalf("weekKey(day %d) = %q, want %q", tc.day, got, tc.want)
		}
	}
}

func TestWholePercentRounding(t *testing.T) {
	cases := []struct {
		num, den float64
		want     int
	}{
		{0, 0, 0},
		{1, 0, 0},
		{2, 3, 67},
		{1, 3, 33},
		{1, 2, 50},
		{1, 1, 100},
		{995, 1000, 100},
	}
	for _, tc := range cases {
		if got := wholePercent(tc.num, tc.den); got != tc.want {
			t.Fatalf("wholePercent(%v, %v) = %d, want %d", tc.num, tc.den, got, tc.want)
		}
	}
}
