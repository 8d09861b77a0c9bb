package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the GST verification state of an invoice's vendor.
type Status string

const (
	StatusSafe    Status = "Safe"    // vendor tax identity verified
	StatusFailed  Status = "Failed"  // verification failed or GSTIN missing
	StatusPending Status = "Pending" // not assessed yet
)

// Unknown is persisted instead of an empty value for free-text metadata.
const Unknown = "Unknown"

// DateLayout is the ISO calendar date format used at every boundary.
const DateLayout = "2006-01-02"

// ParseStatus maps a case-insensitive label to a Status.
func ParseStatus(s string) (Status, bool) {
	s = strings.TrimSpace(s)
	for _, st := range []Status{StatusSafe, StatusFailed, StatusPending} {
		if strings.EqualFold(s, string(st)) {
			return st, true
		}
	}
	return "", false
}

// TaxRecord is one processed purchase invoice.
type TaxRecord struct {
	ID            string
	VendorName    string
	TaxID         string // GSTIN; empty when unknown
	Status        Status
	Amount        decimal.Decimal
	InvoiceDate   time.Time // UTC midnight; zero when missing
	TaxableValue  decimal.Decimal
	IGST          decimal.Decimal
	CGST          decimal.Decimal
	SGST          decimal.Decimal
	Cess          decimal.Decimal
	InvoiceNumber string
	PlaceOfSupply string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasTaxID reports whether a GSTIN was captured.
func (r *TaxRecord) HasTaxID() bool { return r.TaxID != "" }

// HasInvoiceDate reports whether the record carries a usable invoice date.
func (r *TaxRecord) HasInvoiceDate() bool { return !r.InvoiceDate.IsZero() }

// ApplyDefaults fills the fields that have a safe default and rounds money
// to minor units. Called before a record is persisted.
func (r *TaxRecord) ApplyDefaults() {
	if _, ok := ParseStatus(string(r.Status)); !ok {
		r.Status = StatusPending
	}
	if r.InvoiceNumber == "" {
		r.InvoiceNumber = Unknown
	}
	if r.PlaceOfSupply == "" {
		r.PlaceOfSupply = Unknown
	}
	r.Amount = r.Amount.Round(2)
	r.TaxableValue = r.TaxableValue.Round(2)
	r.IGST = r.IGST.Round(2)
	r.CGST = r.CGST.Round(2)
	r.SGST = r.SGST.Round(2)
	r.Cess = r.Cess.Round(2)
	if !r.InvoiceDate.IsZero() {
		r.InvoiceDate = CalendarDate(r.InvoiceDate)
	}
}

// CalendarDate truncates t to a UTC calendar date.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
