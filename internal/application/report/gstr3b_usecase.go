package report

import (
	"context"
	"fmt"

	"github.com/itcguard/itc-api/internal/domain/compliance"
	"github.com/itcguard/itc-api/internal/domain/repository"
	"github.com/itcguard/itc-api/pkg/logger"
)

// Document is a rendered report ready to be served.
type Document struct {
	Filename    string
	ContentType string
	Content     []byte
}

// GSTR3BUseCase fetches a month of records, aggregates and renders them.
type GSTR3BUseCase struct {
	repo     repository.TaxRecordRepository
	renderer Renderer
	log      *logger.Logger
}

// NewGSTR3BUseCase wires the use case.
func NewGSTR3BUseCase(repo repository.TaxRecordRepository, renderer Renderer, log *logger.Logger) *GSTR3BUseCase {
	return &GSTR3BUseCase{repo: repo, renderer: renderer, log: log.WithComponent("gstr3b")}
}

// Generate builds the GSTR-3B PDF for month/year. An invalid period fails
// with domain.ErrInvalidInput before the store is touched.
func (uc *GSTR3BUseCase) Generate(ctx context.Context, month, year int) (*Document, error) {
	start, end, err := compliance.MonthRange(month, year)
	if err != nil {
		return nil, err
	}

	records, err := uc.repo.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("gstr3b: list records: %w", err)
	}

	summary, err := compliance.ComputePeriodSummary(records, month, year)
	if err != nil {
		return nil, err
	}

	content, err := uc.renderer.Render(ctx, BuildGSTR3BLayout(summary))
	if err != nil {
		return nil, fmt.Errorf("gstr3b: render: %w", err)
	}

	uc.log.Info().
		Int("month", month).
		Int("year", year).
		Int("records", summary.RecordCount).
		Int("bytes", len(content)).
		Msg("GSTR-3B generated")

	return &Document{
		Filename:    Filename(month, year),
		ContentType: ContentType,
		Content:     content,
	}, nil
}
