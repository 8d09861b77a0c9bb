package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxRecordPatch carries a partial update; nil fields are left untouched.
type TaxRecordPatch struct {
	VendorName    *string
	TaxID         *string
	Status        *Status
	Amount        *decimal.Decimal
	InvoiceDate   *time.Time
	TaxableValue  *decimal.Decimal
	IGST          *decimal.Decimal
	CGST          *decimal.Decimal
	SGST          *decimal.Decimal
	Cess          *decimal.Decimal
	InvoiceNumber *string
	PlaceOfSupply *string
}

// IsEmpty reports whether the patch changes nothing.
func (p TaxRecordPatch) IsEmpty() bool {
	return p.VendorName == nil && p.TaxID == nil && p.Status == nil &&
		p.Amount == nil && p.InvoiceDate == nil && p.TaxableValue == nil &&
		p.IGST == nil && p.CGST == nil && p.SGST == nil && p.Cess == nil &&
		p.InvoiceNumber == nil && p.PlaceOfSupply == nil
}

// Apply writes the non-nil fields onto r and re-applies record defaults.
func (p TaxRecordPatch) Apply(r *TaxRecord) {
	if p.VendorName != nil {
		r.VendorName = *p.VendorName
	}
	if p.TaxID != nil {
		r.TaxID = *p.TaxID
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.Amount != nil {
		r.Amount = *p.Amount
	}
	if p.InvoiceDate != nil {
		r.InvoiceDate = *p.InvoiceDate
	}
	if p.TaxableValue != nil {
		r.TaxableValue = *p.TaxableValue
	}
	if p.IGST != nil {
		r.IGST = *p.IGST
	}
	if p.CGST != nil {
		r.CGST = *p.CGST
	}
	if p.SGST != nil {
		r.SGST = *p.SGST
	}
	if p.Cess != nil {
		r.Cess = *p.Cess
	}
	if p.InvoiceNumber != nil {
		r.InvoiceNumber = *p.InvoiceNumber
	}
	if p.PlaceOfSupply != nil {
		r.PlaceOfSupply = *p.PlaceOfSupply
	}
	r.ApplyDefaults()
}
