package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/itcguard/itc-api/internal/application/dto"
	"github.com/itcguard/itc-api/internal/application/extraction"
	"github.com/itcguard/itc-api/internal/application/ports"
	"github.com/itcguard/itc-api/internal/domain"
	"github.com/itcguard/itc-api/internal/domain/repository"
	"github.com/itcguard/itc-api/pkg/logger"
)

// ScanInput is a decoded invoice upload.
type ScanInput struct {
	Image     []byte
	MediaType string
	Save      bool
}

// ScanUseCase runs image → vision model → normalizer, and optionally
// persists the result.
type ScanUseCase struct {
	vision     ports.VisionExtractor
	preparer   ports.ImagePreparer
	normalizer *extraction.Normalizer
	repo       repository.TaxRecordRepository
	timeout    time.Duration
	log        *logger.Logger
}

// NewScanUseCase wires the pipeline. timeout bounds each model call.
func NewScanUseCase(
	vision ports.VisionExtractor,
	preparer ports.ImagePreparer,
	normalizer *extraction.Normalizer,
	repo repository.TaxRecordRepository,
	timeout time.Duration,
	log *logger.Logger,
) *ScanUseCase {
	return &ScanUseCase{
		vision:     vision,
		preparer:   preparer,
		normalizer: normalizer,
		repo:       repo,
		timeout:    timeout,
		log:        log.WithComponent("scan"),
	}
}

// Scan extracts a tax record from the image. Unusable model output comes
// back as an *extraction.ExtractionError.
func (uc *ScanUseCase) Scan(ctx context.Context, in ScanInput) (*dto.ScanResponse, error) {
	if len(in.Image) == 0 {
		return nil, fmt.Errorf("%w: image is required", domain.ErrInvalidInput)
	}

	image, mediaType, err := uc.preparer.Prepare(in.Image, in.MediaType)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	started := time.Now()
	raw, err := uc.vision.ExtractInvoice(callCtx, image, mediaType)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("scan: model timed out after %s: %w", uc.timeout, domain.ErrModelUnavailable)
		}
		return nil, fmt.Errorf("scan: %w", err)
	}

	record, err := uc.normalizer.Normalize(raw, mediaType)
	if err != nil {
		uc.log.Warn().
			Err(err).
			Str("media_type", mediaType).
			Int("raw_len", len(raw)).
			Msg("extraction rejected")
		return nil, err
	}

	uc.log.Info().
		Str("media_type", mediaType).
		Dur("elapsed", time.Since(started)).
		Str("status", string(record.Status)).
		Bool("save", in.Save).
		Msg("invoice extracted")

	if in.Save {
		if err := uc.repo.Create(ctx, record); err != nil {
			return nil, fmt.Errorf("scan: save: %w", err)
		}
	}
	return &dto.ScanResponse{Data: ToTaxRecordResponse(record), Saved: in.Save}, nil
}
