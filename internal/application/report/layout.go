// Package report builds the GSTR-3B summary. Layout construction is pure;
// turning a Layout into PDF bytes is delegated to a Renderer.
package report

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/itcguard/itc-api/internal/domain/entity"
)

// ContentType of every rendered report.
const ContentType = "application/pdf"

// Table is one titled grid. Every row has len(Header) cells.
type Table struct {
	Title  string
	Note   string
	Header []string
	Rows   [][]string
}

// Layout is the complete, renderer-agnostic content of a report.
type Layout struct {
	Title          string
	Period         string
	Tables         []Table
	SummaryHeading string
	SummaryLines   []string
}

// BuildGSTR3BLayout lays out the return summarised by s. Same input, same
// layout: nothing here reads the clock or the environment.
//
// Table 3.1 is always zero because the tracker only sees purchases.
func BuildGSTR3BLayout(s entity.PeriodTaxSummary) Layout {
	zero := money(decimal.Zero)
	return Layout{
		Title:  "GSTR-3B Summary Report",
		Period: fmt.Sprintf("Return Period: %02d-%04d", s.Month, s.Year),
		Tables: []Table{
			{
				Title:  "Table 3.1: Details of Outward Supplies",
				Note:   "(No sales data found - Expenditure only)",
				Header: []string{"Nature of Supplies", "Taxable Value", "IGST", "CGST", "SGST"},
				Rows: [][]string{
					{"Outward Taxable Supplies", zero, zero, zero, zero},
				},
			},
			{
				Title:  "Table 4: Eligible ITC",
				Header: []string{"Details", "IGST", "CGST", "SGST", "Cess"},
				Rows: [][]string{
					{"(A) ITC Available (whether in full or part)", "", "", "", ""},
					{"(5) All Other ITC", money(s.IGST), money(s.CGST), money(s.SGST), money(s.Cess)},
				},
			},
		},
		SummaryHeading: "Summary of Calculated Input Tax Credit:",
		SummaryLines: []string{
			fmt.Sprintf("Total Records Processed: %d", s.RecordCount),
			"Total Taxable Value: " + money(s.TaxableValue),
			"Total Integrated Tax (IGST): " + money(s.IGST),
			"Total Central Tax (CGST): " + money(s.CGST),
			"Total State/UT Tax (SGST): " + money(s.SGST),
			"Total Cess: " + money(s.Cess),
		},
	}
}

// Filename is the attachment name offered to the browser.
func Filename(month, year int) string {
	return fmt.Sprintf("gstr3b_report_%d_%d.pdf", month, year)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
