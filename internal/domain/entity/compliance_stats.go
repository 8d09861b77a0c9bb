package entity

import "github.com/shopspring/decimal"

// AggregateStats is derived from the full record set on every request.
// Pending records count toward TotalOutstanding only.
type AggregateStats struct {
	TotalOutstanding decimal.Decimal
	ITCAtRisk        decimal.Decimal // Failed
	SafeToPay        decimal.Decimal // Safe
}

// PeriodTaxSummary holds the tax-component totals of one calendar month.
type PeriodTaxSummary struct {
	Month        int
	Year         int
	RecordCount  int
	TaxableValue decimal.Decimal
	IGST         decimal.Decimal
	CGST         decimal.Decimal
	SGST         decimal.Decimal
	Cess         decimal.Decimal
}
