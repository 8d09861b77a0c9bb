// Package compliance holds the pure aggregation rules over tax records:
// risk buckets for the dashboard and per-month tax totals for GSTR-3B.
package compliance

import (
	"fmt"
	"time"

	"github.com/itcguard/itc-api/internal/domain"
	"github.com/itcguard/itc-api/internal/domain/entity"
)

// ComputeStats folds records into the dashboard buckets in a single pass.
// A nil or empty slice yields zero totals.
func ComputeStats(records []*entity.TaxRecord) entity.AggregateStats {
	var stats entity.AggregateStats
	for _, r := range records {
		if r == nil {
			continue
		}
		stats.TotalOutstanding = stats.TotalOutstanding.Add(r.Amount)
		switch r.Status {
		case entity.StatusFailed:
			stats.ITCAtRisk = stats.ITCAtRisk.Add(r.Amount)
		case entity.StatusSafe:
			stats.SafeToPay = stats.SafeToPay.Add(r.Amount)
		}
	}
	return stats
}

// MonthRange returns the first and last calendar day of month/year (UTC).
func MonthRange(month, year int) (start, end time.Time, err error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: month %d out of range 1-12", domain.ErrInvalidInput, month)
	}
	if year < 1 || year > 9999 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: year %d out of range", domain.ErrInvalidInput, year)
	}
	start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	// Day 0 of the next month is the last day of this one.
	end = time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
	return start, end, nil
}

// ComputePeriodSummary sums the tax components of the records dated inside
// the calendar month, both boundary days included. Records without an
// invoice date never fall into a period.
func ComputePeriodSummary(records []*entity.TaxRecord, month, year int) (entity.PeriodTaxSummary, error) {
	start, end, err := MonthRange(month, year)
	if err != nil {
		return entity.PeriodTaxSummary{}, err
	}
	summary := entity.PeriodTaxSummary{Month: month, Year: year}
	for _, r := range records {
		if r == nil || !r.HasInvoiceDate() {
			continue
		}
		d := entity.CalendarDate(r.InvoiceDate)
		if d.Before(start) || d.After(end) {
			continue
		}
		summary.RecordCount++
		summary.TaxableValue = summary.TaxableValue.Add(r.TaxableValue)
		summary.IGST = summary.IGST.Add(r.IGST)
		summary.CGST = summary.CGST.Add(r.CGST)
		summary.SGST = summary.SGST.Add(r.SGST)
		summary.Cess = summary.Cess.Add(r.Cess)
	}
	return summary, nil
}
