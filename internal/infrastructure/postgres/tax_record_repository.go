package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/itcguard/itc-api/internal/domain"
	"github.com/itcguard/itc-api/internal/domain/entity"
	"github.com/itcguard/itc-api/internal/domain/repository"
)

var _ repository.TaxRecordRepository = (*TaxRecordRepo)(nil)

const (
	taxRecordColumns = `id, vendor_name, gstin, status, amount, invoice_date,
	taxable_value, igst, cgst, sgst, cess, invoice_number, place_of_supply, created_at, updated_at`
	taxRecordSelect = `SELECT id::text, vendor_name, gstin, status, amount, invoice_date,
	taxable_value, igst, cgst, sgst, cess, invoice_number, place_of_supply, created_at, updated_at
	FROM compliance_records`
)

// TaxRecordRepo stores records in the compliance_records table.
type TaxRecordRepo struct {
	q Querier
}

// NewTaxRecordRepository builds the adapter over a pool or a tx.
func NewTaxRecordRepository(q Querier) *TaxRecordRepo {
	return &TaxRecordRepo{q: q}
}

// Create assigns a UUID and timestamps, then inserts.
func (r *TaxRecordRepo) Create(ctx context.Context, rec *entity.TaxRecord) error {
	rec.ApplyDefaults()
	now := time.Now().UTC()
	rec.ID = uuid.New().String()
	rec.CreatedAt, rec.UpdatedAt = now, now

	_, err := r.q.Exec(ctx, `
		INSERT INTO compliance_records (`+taxRecordColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		rec.ID, rec.VendorName, nullableText(rec.TaxID), string(rec.Status), rec.Amount, nullableDate(rec.InvoiceDate),
		rec.TaxableValue, rec.IGST, rec.CGST, rec.SGST, rec.Cess, rec.InvoiceNumber, rec.PlaceOfSupply,
		rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		rec.ID = ""
		return fmt.Errorf("insert compliance record: %w", err)
	}
	return nil
}

// GetByID returns domain.ErrNotFound for unknown or malformed IDs.
func (r *TaxRecordRepo) GetByID(ctx context.Context, id string) (*entity.TaxRecord, error) {
	return getByID(ctx, r.q, id, "")
}

func getByID(ctx context.Context, q Querier, id, lock string) (*entity.TaxRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	rec, err := scanTaxRecord(q.QueryRow(ctx,
		taxRecordSelect+` WHERE id = $1 `+lock, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get compliance record: %w", err)
	}
	return rec, nil
}

// Update locks the row, applies the patch in Go so defaults and rounding
// match Create, and writes every column back.
func (r *TaxRecordRepo) Update(ctx context.Context, id string, patch entity.TaxRecordPatch) (*entity.TaxRecord, error) {
	var out *entity.TaxRecord
	err := inTx(ctx, r.q, func(tx pgx.Tx) error {
		rec, err := getByID(ctx, tx, id, "FOR UPDATE")
		if err != nil {
			return err
		}
		patch.Apply(rec)
		rec.UpdatedAt = time.Now().UTC()

		_, err = tx.Exec(ctx, `
			UPDATE compliance_records SET
				vendor_name = $2, gstin = $3, status = $4, amount = $5, invoice_date = $6,
				taxable_value = $7, igst = $8, cgst = $9, sgst = $10, cess = $11,
				invoice_number = $12, place_of_supply = $13, updated_at = $14
			WHERE id = $1`,
			rec.ID, rec.VendorName, nullableText(rec.TaxID), string(rec.Status), rec.Amount, nullableDate(rec.InvoiceDate),
			rec.TaxableValue, rec.IGST, rec.CGST, rec.SGST, rec.Cess, rec.InvoiceNumber, rec.PlaceOfSupply,
			rec.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("update compliance record: %w", err)
		}
		out = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the record.
func (r *TaxRecordRepo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM compliance_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete compliance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteIfStatus locks the row, checks its status and deletes it in one tx.
func (r *TaxRecordRepo) DeleteIfStatus(ctx context.Context, id string, status entity.Status) (*entity.TaxRecord, error) {
	var out *entity.TaxRecord
	err := inTx(ctx, r.q, func(tx pgx.Tx) error {
		rec, err := getByID(ctx, tx, id, "FOR UPDATE")
		if err != nil {
			return err
		}
		if rec.Status != status {
			return fmt.Errorf("%w: record is %s, want %s", domain.ErrConflict, rec.Status, status)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM compliance_records WHERE id = $1 AND status = $2`, id, string(status))
		if err != nil {
			return fmt.Errorf("delete compliance record: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		out = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListAll returns every record, newest invoice first, undated last.
func (r *TaxRecordRepo) ListAll(ctx context.Context) ([]*entity.TaxRecord, error) {
	return r.list(ctx, taxRecordSelect+`
		ORDER BY invoice_date DESC NULLS LAST, created_at DESC`)
}

// ListByDateRange returns records dated within [start, end].
func (r *TaxRecordRepo) ListByDateRange(ctx context.Context, start, end time.Time) ([]*entity.TaxRecord, error) {
	return r.list(ctx, taxRecordSelect+`
		WHERE invoice_date BETWEEN $1::date AND $2::date
		ORDER BY invoice_date DESC, created_at DESC`,
		start.Format(entity.DateLayout), end.Format(entity.DateLayout))
}

// Ping checks the database round trip.
func (r *TaxRecordRepo) Ping(ctx context.Context) error {
	var one int
	if err := r.q.QueryRow(ctx, `SELECT 1`).Scan(&one); err != nil {
		return fmt.Errorf("ping DB: %w", err)
	}
	return nil
}

func (r *TaxRecordRepo) list(ctx context.Context, query string, args ...any) ([]*entity.TaxRecord, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list compliance records: %w", err)
	}
	defer rows.Close()

	var out []*entity.TaxRecord
	for rows.Next() {
		rec, err := scanTaxRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan compliance record: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list compliance records: %w", err)
	}
	return out, nil
}

func scanTaxRecord(row pgx.Row) (*entity.TaxRecord, error) {
	var (
		rec    entity.TaxRecord
		gstin  *string
		status string
		date   *time.Time
	)
	err := row.Scan(
		&rec.ID, &rec.VendorName, &gstin, &status, &rec.Amount, &date,
		&rec.TaxableValue, &rec.IGST, &rec.CGST, &rec.SGST, &rec.Cess,
		&rec.InvoiceNumber, &rec.PlaceOfSupply, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if gstin != nil {
		rec.TaxID = *gstin
	}
	if date != nil {
		rec.InvoiceDate = entity.CalendarDate(*date)
	}
	rec.Status = entity.Status(status)
	return &rec, nil
}
