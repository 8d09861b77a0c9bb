package extraction

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/itcguard/itc-api/internal/domain/entity"
)

// rawInvoice is the closed set of keys read from the model. RawMessage keeps
// "absent" (nil) distinguishable from "null".
type rawInvoice struct {
	VendorName    json.RawMessage `json:"vendor_name"`
	GSTIN         json.RawMessage `json:"gstin"`
	InvoiceDate   json.RawMessage `json:"invoice_date"`
	TotalAmount   json.RawMessage `json:"total_amount"`
	Status        json.RawMessage `json:"status"`
	TaxableValue  json.RawMessage `json:"taxable_value"`
	IGST          json.RawMessage `json:"igst"`
	IGSTAmount    json.RawMessage `json:"igst_amount"`
	CGST          json.RawMessage `json:"cgst"`
	CGSTAmount    json.RawMessage `json:"cgst_amount"`
	SGST          json.RawMessage `json:"sgst"`
	SGSTAmount    json.RawMessage `json:"sgst_amount"`
	Cess          json.RawMessage `json:"cess"`
	CessAmount    json.RawMessage `json:"cess_amount"`
	InvoiceNumber json.RawMessage `json:"invoice_number"`
	PlaceOfSupply json.RawMessage `json:"place_of_supply"`
}

var (
	errWrongType = errors.New("unexpected JSON type")
	errNotNumber = errors.New("not a number")
	errNegative  = errors.New("must not be negative")
)

// placeholders the model emits instead of null.
var placeholders = map[string]bool{
	"":               true,
	"null":           true,
	"none":           true,
	"n/a":            true,
	"na":             true,
	"-":              true,
	"unknown":        true,
	"not available":  true,
	"not applicable": true,
}

func isNull(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

// firstPresent picks the first key the model actually filled.
func firstPresent(candidates ...json.RawMessage) json.RawMessage {
	for _, c := range candidates {
		if !isNull(c) {
			return c
		}
	}
	return nil
}

// textValue reads a string (or a bare number, e.g. invoice numbers).
// Placeholders count as absent.
func textValue(raw json.RawMessage) (string, bool, error) {
	if isNull(raw) {
		return "", false, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var n json.Number
		if numErr := json.Unmarshal(raw, &n); numErr != nil {
			return "", false, errWrongType
		}
		s = n.String()
	}
	s = strings.Join(strings.Fields(norm.NFKC.String(s)), " ")
	if placeholders[strings.ToLower(s)] {
		return "", false, nil
	}
	return s, true, nil
}

// vendorValue reads vendor_name as the model wrote it, ends trimmed.
func vendorValue(raw json.RawMessage) (string, bool, error) {
	if isNull(raw) {
		return "", false, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false, errWrongType
	}
	s = strings.TrimSpace(s)
	if placeholders[strings.ToLower(s)] {
		return "", false, nil
	}
	return s, true, nil
}

// moneyValue reads a non-negative amount given as a JSON number or a string
// such as "₹1,250.50" or "Rs. 300". Rounded to minor units.
func moneyValue(raw json.RawMessage) (decimal.Decimal, bool, error) {
	if isNull(raw) {
		return decimal.Zero, false, nil
	}
	var literal string
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		literal = n.String()
	} else {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Zero, false, errWrongType
		}
		literal = cleanAmount(s)
		if placeholders[strings.ToLower(literal)] {
			return decimal.Zero, false, nil
		}
	}
	d, err := decimal.NewFromString(literal)
	if err != nil {
		return decimal.Zero, false, errNotNumber
	}
	if d.IsNegative() {
		return decimal.Zero, false, errNegative
	}
	return d.Round(2), true, nil
}

// cleanAmount strips currency markers, grouping commas and spaces.
func cleanAmount(s string) string {
	s = strings.TrimSpace(norm.NFKC.String(s))
	for _, prefix := range []string{"INR", "Rs.", "Rs", "RS.", "RS", "₹"} {
		s = strings.TrimSpace(strings.TrimPrefix(s, prefix))
	}
	s = strings.TrimSuffix(s, "/-")
	return strings.Map(func(r rune) rune {
		if r == ',' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// dateLayouts are tried in order. Day-first layouts precede month-first
// because the invoices are Indian.
var dateLayouts = []string{
	entity.DateLayout,
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"02.01.2006",
	"2006/01/02",
	"02-Jan-2006",
	"02 Jan 2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
	"02/01/06",
	time.RFC3339,
}

// dateValue returns the zero time when the date is missing or unparseable.
func dateValue(raw json.RawMessage) time.Time {
	s, ok, err := textValue(raw)
	if err != nil || !ok {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return entity.CalendarDate(t)
		}
	}
	return time.Time{}
}
