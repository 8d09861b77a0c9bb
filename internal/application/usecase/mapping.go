package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/itcguard/itc-api/internal/application/dto"
	"github.com/itcguard/itc-api/internal/domain"
	"github.com/itcguard/itc-api/internal/domain/entity"
)

// ToTaxRecordResponse maps a record to its wire shape. Empty GSTIN and
// zero invoice dates become null.
func ToTaxRecordResponse(r *entity.TaxRecord) dto.TaxRecordResponse {
	out := dto.TaxRecordResponse{
		ID:            r.ID,
		VendorName:    r.VendorName,
		Status:        string(r.Status),
		Amount:        r.Amount,
		TaxableValue:  r.TaxableValue,
		IGST:          r.IGST,
		CGST:          r.CGST,
		SGST:          r.SGST,
		Cess:          r.Cess,
		InvoiceNumber: r.InvoiceNumber,
		PlaceOfSupply: r.PlaceOfSupply,
	}
	if r.HasTaxID() {
		gstin := r.TaxID
		out.GSTIN = &gstin
	}
	if r.HasInvoiceDate() {
		d := r.InvoiceDate.Format(entity.DateLayout)
		out.InvoiceDate = &d
	}
	if !r.CreatedAt.IsZero() {
		created, updated := r.CreatedAt, r.UpdatedAt
		out.CreatedAt, out.UpdatedAt = &created, &updated
	}
	return out
}

func toStatsResponse(s entity.AggregateStats) dto.ComplianceStatsResponse {
	return dto.ComplianceStatsResponse{
		TotalOutstanding: s.TotalOutstanding,
		ITCAtRisk:        s.ITCAtRisk,
		SafeToPay:        s.SafeToPay,
	}
}

func invalid(field, reason string) error {
	return fmt.Errorf("%w: %s %s", domain.ErrInvalidInput, field, reason)
}

func parseStatus(s string) (entity.Status, error) {
	st, ok := entity.ParseStatus(s)
	if !ok {
		return "", invalid("status", fmt.Sprintf("%q must be Safe, Failed or Pending", s))
	}
	return st, nil
}

// parseDate accepts YYYY-MM-DD; blank means no date.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(entity.DateLayout, s)
	if err != nil {
		return time.Time{}, invalid("invoice_date", "must be YYYY-MM-DD")
	}
	return t, nil
}

var amountFields = [...]string{"amount", "taxable_value", "igst", "cgst", "sgst", "cess"}

// checkAmounts takes the money fields in amountFields order; nil is skipped.
func checkAmounts(amount, taxable, igst, cgst, sgst, cess *decimal.Decimal) error {
	for i, d := range []*decimal.Decimal{amount, taxable, igst, cgst, sgst, cess} {
		if d != nil && d.IsNegative() {
			return invalid(amountFields[i], "must not be negative")
		}
	}
	return nil
}
