package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxRecordResponse is one record as served by the API. Optional values
// render as null.
type TaxRecordResponse struct {
	ID            string          `json:"id"`
	VendorName    string          `json:"vendor_name"`
	GSTIN         *string         `json:"gstin"`
	Status        string          `json:"status"`
	Amount        decimal.Decimal `json:"amount"`
	InvoiceDate   *string         `json:"invoice_date"` // YYYY-MM-DD
	TaxableValue  decimal.Decimal `json:"taxable_value"`
	IGST          decimal.Decimal `json:"igst"`
	CGST          decimal.Decimal `json:"cgst"`
	SGST          decimal.Decimal `json:"sgst"`
	Cess          decimal.Decimal `json:"cess"`
	InvoiceNumber string          `json:"invoice_number"`
	PlaceOfSupply string          `json:"place_of_supply"`
	CreatedAt     *time.Time      `json:"created_at,omitempty"`
	UpdatedAt     *time.Time      `json:"updated_at,omitempty"`
}

// ComplianceStatsResponse holds the dashboard buckets.
type ComplianceStatsResponse struct {
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	ITCAtRisk        decimal.Decimal `json:"itc_at_risk"`
	SafeToPay        decimal.Decimal `json:"safe_to_pay"`
}

// ComplianceListResponse is the dashboard payload.
type ComplianceListResponse struct {
	Records []TaxRecordResponse     `json:"records"`
	Stats   ComplianceStatsResponse `json:"stats"`
}

// CreateTaxRecordRequest is a manually entered record.
type CreateTaxRecordRequest struct {
	VendorName    string           `json:"vendor_name"`
	GSTIN         string           `json:"gstin"`
	Status        string           `json:"status"`
	Amount        *decimal.Decimal `json:"amount"`
	InvoiceDate   string           `json:"invoice_date"`
	TaxableValue  *decimal.Decimal `json:"taxable_value"`
	IGST          *decimal.Decimal `json:"igst"`
	CGST          *decimal.Decimal `json:"cgst"`
	SGST          *decimal.Decimal `json:"sgst"`
	Cess          *decimal.Decimal `json:"cess"`
	InvoiceNumber string           `json:"invoice_number"`
	PlaceOfSupply string           `json:"place_of_supply"`
}

// UpdateTaxRecordRequest corrects a record; absent fields are kept.
type UpdateTaxRecordRequest struct {
	VendorName    *string          `json:"vendor_name"`
	GSTIN         *string          `json:"gstin"`
	Status        *string          `json:"status"`
	Amount        *decimal.Decimal `json:"amount"`
	InvoiceDate   *string          `json:"invoice_date"`
	TaxableValue  *decimal.Decimal `json:"taxable_value"`
	IGST          *decimal.Decimal `json:"igst"`
	CGST          *decimal.Decimal `json:"cgst"`
	SGST          *decimal.Decimal `json:"sgst"`
	Cess          *decimal.Decimal `json:"cess"`
	InvoiceNumber *string          `json:"invoice_number"`
	PlaceOfSupply *string          `json:"place_of_supply"`
}

// VerificationResponse reports the outcome of a local GSTIN check.
type VerificationResponse struct {
	Record TaxRecordResponse `json:"record"`
	Valid  bool              `json:"gstin_valid"`
	Reason string            `json:"reason,omitempty"`
}
