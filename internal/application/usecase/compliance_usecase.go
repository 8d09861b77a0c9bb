package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/itcguard/itc-api/internal/application/dto"
	"github.com/itcguard/itc-api/internal/domain"
	"github.com/itcguard/itc-api/internal/domain/compliance"
	"github.com/itcguard/itc-api/internal/domain/entity"
	"github.com/itcguard/itc-api/internal/domain/repository"
	"github.com/itcguard/itc-api/pkg/gst"
	"github.com/itcguard/itc-api/pkg/logger"
)

// ComplianceUseCase manages the record lifecycle: listing with live stats,
// manual entry, corrections, GSTIN verification and removal on settlement
// or vendor block.
type ComplianceUseCase struct {
	repo repository.TaxRecordRepository
	log  *logger.Logger
}

// NewComplianceUseCase builds the use case.
func NewComplianceUseCase(repo repository.TaxRecordRepository, log *logger.Logger) *ComplianceUseCase {
	return &ComplianceUseCase{repo: repo, log: log.WithComponent("compliance")}
}

// List returns every record and the stats computed over them. Stats are
// never cached.
func (uc *ComplianceUseCase) List(ctx context.Context) (*dto.ComplianceListResponse, error) {
	records, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("compliance: list: %w", err)
	}
	out := &dto.ComplianceListResponse{
		Records: make([]dto.TaxRecordResponse, 0, len(records)),
		Stats:   toStatsResponse(compliance.ComputeStats(records)),
	}
	for _, r := range records {
		out.Records = append(out.Records, ToTaxRecordResponse(r))
	}
	return out, nil
}

// GetByID returns one record or domain.ErrNotFound.
func (uc *ComplianceUseCase) GetByID(ctx context.Context, id string) (*dto.TaxRecordResponse, error) {
	r, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := ToTaxRecordResponse(r)
	return &out, nil
}

// Create persists a manually entered record.
func (uc *ComplianceUseCase) Create(ctx context.Context, in dto.CreateTaxRecordRequest) (*dto.TaxRecordResponse, error) {
	record, err := recordFromRequest(in)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("compliance: create: %w", err)
	}
	uc.log.Info().Str("id", record.ID).Str("status", string(record.Status)).Msg("record created")
	out := ToTaxRecordResponse(record)
	return &out, nil
}

func recordFromRequest(in dto.CreateTaxRecordRequest) (*entity.TaxRecord, error) {
	vendor := strings.TrimSpace(in.VendorName)
	if vendor == "" {
		return nil, invalid("vendor_name", "is required")
	}
	if in.Amount == nil {
		return nil, invalid("amount", "is required")
	}
	if err := checkAmounts(in.Amount, in.TaxableValue, in.IGST, in.CGST, in.SGST, in.Cess); err != nil {
		return nil, err
	}

	status := entity.StatusPending
	if strings.TrimSpace(in.Status) != "" {
		st, err := parseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		status = st
	}
	date, err := parseDate(in.InvoiceDate)
	if err != nil {
		return nil, err
	}

	r := &entity.TaxRecord{
		VendorName:    vendor,
		TaxID:         gst.Normalize(in.GSTIN),
		Status:        status,
		Amount:        *in.Amount,
		InvoiceDate:   date,
		InvoiceNumber: strings.TrimSpace(in.InvoiceNumber),
		PlaceOfSupply: strings.TrimSpace(in.PlaceOfSupply),
	}
	for _, c := range []struct {
		src *decimal.Decimal
		dst *decimal.Decimal
	}{
		{in.TaxableValue, &r.TaxableValue},
		{in.IGST, &r.IGST},
		{in.CGST, &r.CGST},
		{in.SGST, &r.SGST},
		{in.Cess, &r.Cess},
	} {
		if c.src != nil {
			*c.dst = *c.src
		}
	}
	r.ApplyDefaults()
	return r, nil
}

// Update applies a correction. Empty patches are rejected.
func (uc *ComplianceUseCase) Update(ctx context.Context, id string, in dto.UpdateTaxRecordRequest) (*dto.TaxRecordResponse, error) {
	patch, err := patchFromRequest(in)
	if err != nil {
		return nil, err
	}
	r, err := uc.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("id", id).Str("status", string(r.Status)).Msg("record updated")
	out := ToTaxRecordResponse(r)
	return &out, nil
}

func patchFromRequest(in dto.UpdateTaxRecordRequest) (entity.TaxRecordPatch, error) {
	var p entity.TaxRecordPatch
	if in.VendorName != nil {
		v := strings.TrimSpace(*in.VendorName)
		if v == "" {
			return p, invalid("vendor_name", "must not be empty")
		}
		p.VendorName = &v
	}
	if in.GSTIN != nil {
		g := gst.Normalize(*in.GSTIN)
		p.TaxID = &g
	}
	if in.Status != nil {
		st, err := parseStatus(*in.Status)
		if err != nil {
			return p, err
		}
		p.Status = &st
	}
	if in.InvoiceDate != nil {
		d, err := parseDate(*in.InvoiceDate)
		if err != nil {
			return p, err
		}
		p.InvoiceDate = &d
	}
	if err := checkAmounts(in.Amount, in.TaxableValue, in.IGST, in.CGST, in.SGST, in.Cess); err != nil {
		return p, err
	}
	p.Amount, p.TaxableValue = in.Amount, in.TaxableValue
	p.IGST, p.CGST, p.SGST, p.Cess = in.IGST, in.CGST, in.SGST, in.Cess
	if in.InvoiceNumber != nil {
		s := strings.TrimSpace(*in.InvoiceNumber)
		p.InvoiceNumber = &s
	}
	if in.PlaceOfSupply != nil {
		s := strings.TrimSpace(*in.PlaceOfSupply)
		p.PlaceOfSupply = &s
	}
	if p.IsEmpty() {
		return p, invalid("body", "has no fields to update")
	}
	return p, nil
}

// Verify checks the record's GSTIN locally (structure, state code and
// check character) and moves it to Safe or Failed accordingly.
func (uc *ComplianceUseCase) Verify(ctx context.Context, id string) (*dto.VerificationResponse, error) {
	r, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	status, reason := entity.StatusSafe, ""
	switch {
	case !r.HasTaxID():
		status, reason = entity.StatusFailed, "GSTIN missing"
	default:
		if err := gst.Validate(r.TaxID); err != nil {
			status, reason = entity.StatusFailed, err.Error()
		}
	}

	updated, err := uc.repo.Update(ctx, id, entity.TaxRecordPatch{Status: &status})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("id", id).
		Str("from", string(r.Status)).
		Str("to", string(status)).
		Str("reason", reason).
		Msg("GSTIN verified")

	return &dto.VerificationResponse{
		Record: ToTaxRecordResponse(updated),
		Valid:  status == entity.StatusSafe,
		Reason: reason,
	}, nil
}

// Settle removes a Safe record once the supplier has been paid.
func (uc *ComplianceUseCase) Settle(ctx context.Context, id string) error {
	return uc.remove(ctx, id, entity.StatusSafe, "settled")
}

// Block removes a Failed record when the user blocks payment to the vendor.
func (uc *ComplianceUseCase) Block(ctx context.Context, id string) error {
	return uc.remove(ctx, id, entity.StatusFailed, "blocked")
}

func (uc *ComplianceUseCase) remove(ctx context.Context, id string, want entity.Status, action string) error {
	r, err := uc.repo.DeleteIfStatus(ctx, id, want)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return fmt.Errorf("only %s records can be %s: %w", want, action, err)
		}
		return err
	}
	uc.log.Info().
		Str("id", id).
		Str("vendor", r.VendorName).
		Str("amount", r.Amount.StringFixed(2)).
		Msg("record " + action)
	return nil
}
