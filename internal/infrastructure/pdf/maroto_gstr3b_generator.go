// Package pdf renders report layouts with Maroto v2.
//
// GSTR-3B page (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  GSTR-3B Summary Report                                     │
//	│  Return Period: MM-YYYY                                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Table 3.1 (outward supplies, zero placeholder)             │
//	│  Table 4   (eligible ITC totals)                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Summary of calculated input tax credit                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/itcguard/itc-api/internal/application/report"
)

var _ report.Renderer = (*MarotoGSTR3BGenerator)(nil)

// ── Palette ──

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorBand    = &props.Color{Red: 235, Green: 240, Blue: 246}
)

// gridSize is Maroto's column grid.
const gridSize = 12

// MarotoGSTR3BGenerator implements report.Renderer.
type MarotoGSTR3BGenerator struct {
	author string
}

// NewMarotoGSTR3BGenerator builds the generator. author goes into the PDF metadata.
func NewMarotoGSTR3BGenerator(author string) *MarotoGSTR3BGenerator {
	return &MarotoGSTR3BGenerator{author: author}
}

// Render draws the layout and returns the PDF bytes.
func (g *MarotoGSTR3BGenerator) Render(_ context.Context, layout report.Layout) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle(layout.Title, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRows(layout)...)
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}))

	for _, t := range layout.Tables {
		rows, err := tableRows(t)
		if err != nil {
			return nil, err
		}
		m.AddRows(rows...)
		m.AddRows(row.New(6))
	}

	m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(summaryRows(layout)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Sections ──

func titleRows(layout report.Layout) []core.Row {
	return []core.Row{
		row.New(12).Add(col.New(gridSize).Add(text.New(layout.Title, props.Text{
			Style: fontstyle.Bold, Size: 16, Align: align.Center, Color: colorPrimary, Top: 2,
		}))),
		row.New(8).Add(col.New(gridSize).Add(text.New(layout.Period, props.Text{
			Size: 11, Align: align.Center, Color: colorGray, Top: 1,
		}))),
	}
}

// tableRows draws a title, optional note, a banded header and the body.
// The first column takes whatever the numeric columns leave over.
func tableRows(t report.Table) ([]core.Row, error) {
	n := len(t.Header)
	if n < 2 || n > gridSize/2 {
		return nil, fmt.Errorf("pdf: table %q: %d columns not supported", t.Title, n)
	}
	numeric := 2
	first := gridSize - numeric*(n-1)

	cells := func(values []string, style fontstyle.Type, fg *props.Color) []core.Col {
		cols := make([]core.Col, 0, n)
		for i, v := range values {
			size, a := numeric, align.Right
			if i == 0 {
				size, a = first, align.Left
			}
			cols = append(cols, col.New(size).Add(text.New(v, props.Text{
				Style: style, Size: 9, Align: a, Color: fg, Top: 1.5, Left: 1, Right: 1,
			})))
		}
		return cols
	}

	rows := []core.Row{
		row.New(9).Add(col.New(gridSize).Add(text.New(t.Title, props.Text{
			Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 2,
		}))),
	}
	if t.Note != "" {
		rows = append(rows, row.New(6).Add(col.New(gridSize).Add(text.New(t.Note, props.Text{
			Style: fontstyle.Italic, Size: 9, Color: colorGray,
		}))))
	}
	rows = append(rows, row.New(8).
		WithStyle(&props.Cell{BackgroundColor: colorPrimary}).
		Add(cells(t.Header, fontstyle.Bold, colorWhite)...))

	for i, r := range t.Rows {
		if len(r) != n {
			return nil, fmt.Errorf("pdf: table %q row %d: %d cells, want %d", t.Title, i, len(r), n)
		}
		body := row.New(7).Add(cells(r, fontstyle.Normal, nil)...)
		if i%2 == 1 {
			body = body.WithStyle(&props.Cell{BackgroundColor: colorBand})
		}
		rows = append(rows, body)
	}
	return rows, nil
}

func summaryRows(layout report.Layout) []core.Row {
	rows := []core.Row{
		row.New(9).Add(col.New(gridSize).Add(text.New(layout.SummaryHeading, props.Text{
			Style: fontstyle.Bold, Size: 11, Top: 2,
		}))),
	}
	for _, l := range layout.SummaryLines {
		rows = append(rows, row.New(6).Add(col.New(gridSize).Add(text.New(l, props.Text{
			Size: 10, Left: 4,
		}))))
	}
	return rows
}
