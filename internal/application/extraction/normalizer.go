// Package extraction turns the free-form text returned by the vision model
// into a typed tax record candidate, or an *ExtractionError.
package extraction

import (
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/itcguard/itc-api/internal/domain/entity"
	"github.com/itcguard/itc-api/pkg/gst"
)

// Normalizer is stateless and safe for concurrent use.
type Normalizer struct{}

// NewNormalizer builds the normalizer.
func NewNormalizer() *Normalizer { return &Normalizer{} }

// Normalize parses raw model output into a record with ID unset.
//
// Only a payload missing both vendor_name and total_amount is rejected.
// Every other absent key falls back to its default: "Unknown" vendor and
// metadata, zero amounts, Pending, missing date.
// mediaType only travels into the error for diagnostics.
func (n *Normalizer) Normalize(raw, mediaType string) (*entity.TaxRecord, error) {
	fail := func(field, reason string) error {
		return newExtractionError(raw, mediaType, field, reason)
	}

	body := stripFormatting(raw)
	if body == "" {
		return nil, fail("", "no JSON object found in model response")
	}

	var in rawInvoice
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		return nil, fail("", "invalid JSON object: "+err.Error())
	}

	vendor, hasVendor, err := vendorValue(in.VendorName)
	if err != nil {
		return nil, fail("vendor_name", err.Error())
	}
	amount, hasAmount, err := moneyValue(in.TotalAmount)
	if err != nil {
		return nil, fail("total_amount", err.Error())
	}
	if !hasVendor && !hasAmount {
		return nil, fail("", "vendor_name and total_amount are missing")
	}
	if !hasVendor {
		vendor = entity.Unknown
	}

	record := &entity.TaxRecord{
		VendorName:  vendor,
		Amount:      amount,
		Status:      entity.StatusPending,
		InvoiceDate: dateValue(in.InvoiceDate),
	}

	if taxID, ok, err := textValue(in.GSTIN); err != nil {
		return nil, fail("gstin", err.Error())
	} else if ok {
		record.TaxID = gst.Normalize(taxID)
	}

	if label, ok, _ := textValue(in.Status); ok {
		if st, valid := entity.ParseStatus(label); valid {
			record.Status = st
		}
	}

	components := []struct {
		key string
		raw json.RawMessage
		dst *decimal.Decimal
	}{
		{"taxable_value", in.TaxableValue, &record.TaxableValue},
		{"igst", firstPresent(in.IGST, in.IGSTAmount), &record.IGST},
		{"cgst", firstPresent(in.CGST, in.CGSTAmount), &record.CGST},
		{"sgst", firstPresent(in.SGST, in.SGSTAmount), &record.SGST},
		{"cess", firstPresent(in.Cess, in.CessAmount), &record.Cess},
	}
	for _, c := range components {
		v, _, err := moneyValue(c.raw)
		if err != nil {
			return nil, fail(c.key, err.Error())
		}
		*c.dst = v
	}

	if s, ok, err := textValue(in.InvoiceNumber); err != nil {
		return nil, fail("invoice_number", err.Error())
	} else if ok {
		record.InvoiceNumber = s
	}
	if s, ok, err := textValue(in.PlaceOfSupply); err != nil {
		return nil, fail("place_of_supply", err.Error())
	} else if ok {
		record.PlaceOfSupply = s
	}

	record.ApplyDefaults()
	return record, nil
}

// AsExtractionError unwraps err into an *ExtractionError when possible.
func AsExtractionError(err error) (*ExtractionError, bool) {
	var e *ExtractionError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
