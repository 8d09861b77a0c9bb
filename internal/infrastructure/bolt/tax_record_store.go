// Package bolt is an embedded, single-file record store for local use and
// the CLI. It implements the same repository port as the Postgres adapter.
package bolt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.etcd.io/bbolt"

	"github.com/itcguard/itc-api/internal/domain"
	"github.com/itcguard/itc-api/internal/domain/entity"
	"github.com/itcguard/itc-api/internal/domain/repository"
)

var _ repository.TaxRecordRepository = (*TaxRecordStore)(nil)

var recordsBucket = []byte("compliance_records")

// storedRecord is the on-disk JSON shape.
type storedRecord struct {
	ID            string          `json:"id"`
	VendorName    string          `json:"vendor_name"`
	GSTIN         string          `json:"gstin,omitempty"`
	Status        string          `json:"status"`
	Amount        decimal.Decimal `json:"amount"`
	InvoiceDate   string          `json:"invoice_date,omitempty"`
	TaxableValue  decimal.Decimal `json:"taxable_value"`
	IGST          decimal.Decimal `json:"igst"`
	CGST          decimal.Decimal `json:"cgst"`
	SGST          decimal.Decimal `json:"sgst"`
	Cess          decimal.Decimal `json:"cess"`
	InvoiceNumber string          `json:"invoice_number"`
	PlaceOfSupply string          `json:"place_of_supply"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TaxRecordStore persists records in one bbolt bucket keyed by ID.
type TaxRecordStore struct {
	db *bbolt.DB
}

// Open opens (or creates) the database file.
func Open(path string) (*TaxRecordStore, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(recordsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}
	return &TaxRecordStore{db: db}, nil
}

// Close releases the file lock.
func (s *TaxRecordStore) Close() error {
	return s.db.Close()
}

// Create assigns a UUID and timestamps, then stores the record.
func (s *TaxRecordStore) Create(_ context.Context, rec *entity.TaxRecord) error {
	rec.ApplyDefaults()
	now := time.Now().UTC()
	id := uuid.New().String()

	err := s.db.Update(func(tx *bbolt.Tx) error {
		stored := toStored(rec)
		stored.ID, stored.CreatedAt, stored.UpdatedAt = id, now, now
		return put(tx, stored)
	})
	if err != nil {
		return fmt.Errorf("saving record: %w", err)
	}
	rec.ID, rec.CreatedAt, rec.UpdatedAt = id, now, now
	return nil
}

// GetByID returns domain.ErrNotFound for unknown IDs.
func (s *TaxRecordStore) GetByID(_ context.Context, id string) (*entity.TaxRecord, error) {
	var rec *entity.TaxRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		var err error
		rec, err = get(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Update applies the patch inside one write transaction.
func (s *TaxRecordStore) Update(_ context.Context, id string, patch entity.TaxRecordPatch) (*entity.TaxRecord, error) {
	var rec *entity.TaxRecord
	err := s.db.Update(func(tx *bbolt.Tx) error {
		var err error
		if rec, err = get(tx, id); err != nil {
			return err
		}
		patch.Apply(rec)
		rec.UpdatedAt = time.Now().UTC()
		return put(tx, toStored(rec))
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes the record.
func (s *TaxRecordStore) Delete(_ context.Context, id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(recordsBucket)
		if b.Get([]byte(id)) == nil {
			return domain.ErrNotFound
		}
		return b.Delete([]byte(id))
	})
}

// DeleteIfStatus checks the status and deletes within one write transaction.
func (s *TaxRecordStore) DeleteIfStatus(_ context.Context, id string, status entity.Status) (*entity.TaxRecord, error) {
	var rec *entity.TaxRecord
	err := s.db.Update(func(tx *bbolt.Tx) error {
		var err error
		if rec, err = get(tx, id); err != nil {
			return err
		}
		if rec.Status != status {
			return fmt.Errorf("%w: record is %s, want %s", domain.ErrConflict, rec.Status, status)
		}
		return tx.Bucket(recordsBucket).Delete([]byte(id))
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListAll returns every record, newest invoice first, undated last.
func (s *TaxRecordStore) ListAll(_ context.Context) ([]*entity.TaxRecord, error) {
	return s.scan(func(*entity.TaxRecord) bool { return true })
}

// ListByDateRange returns records dated within [start, end].
func (s *TaxRecordStore) ListByDateRange(_ context.Context, start, end time.Time) ([]*entity.TaxRecord, error) {
	start, end = entity.CalendarDate(start), entity.CalendarDate(end)
	return s.scan(func(r *entity.TaxRecord) bool {
		return r.HasInvoiceDate() && !r.InvoiceDate.Before(start) && !r.InvoiceDate.After(end)
	})
}

// Ping checks that the bucket is readable.
func (s *TaxRecordStore) Ping(_ context.Context) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket(recordsBucket) == nil {
			return errors.New("boltdb: records bucket missing")
		}
		return nil
	})
}

func (s *TaxRecordStore) scan(keep func(*entity.TaxRecord) bool) ([]*entity.TaxRecord, error) {
	out := make([]*entity.TaxRecord, 0)
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(recordsBucket).ForEach(func(_, v []byte) error {
			rec, err := decode(v)
			if err != nil {
				return err
			}
			if keep(rec) {
				out = append(out, rec)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.HasInvoiceDate() != b.HasInvoiceDate() {
			return a.HasInvoiceDate()
		}
		if !a.InvoiceDate.Equal(b.InvoiceDate) {
			return a.InvoiceDate.After(b.InvoiceDate)
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return out, nil
}

func get(tx *bbolt.Tx, id string) (*entity.TaxRecord, error) {
	data := tx.Bucket(recordsBucket).Get([]byte(id))
	if data == nil {
		return nil, domain.ErrNotFound
	}
	return decode(data)
}

func put(tx *bbolt.Tx, stored storedRecord) error {
	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("marshaling record: %w", err)
	}
	return tx.Bucket(recordsBucket).Put([]byte(stored.ID), data)
}

func decode(data []byte) (*entity.TaxRecord, error) {
	var s storedRecord
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshaling record: %w", err)
	}
	rec := &entity.TaxRecord{
		ID:            s.ID,
		VendorName:    s.VendorName,
		TaxID:         s.GSTIN,
		Status:        entity.Status(s.Status),
		Amount:        s.Amount,
		TaxableValue:  s.TaxableValue,
		IGST:          s.IGST,
		CGST:          s.CGST,
		SGST:          s.SGST,
		Cess:          s.Cess,
		InvoiceNumber: s.InvoiceNumber,
		PlaceOfSupply: s.PlaceOfSupply,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
	if s.InvoiceDate != "" {
		d, err := time.Parse(entity.DateLayout, s.InvoiceDate)
		if err != nil {
			return nil, fmt.Errorf("record %s: invoice_date: %w", s.ID, err)
		}
		rec.InvoiceDate = d
	}
	return rec, nil
}

func toStored(r *entity.TaxRecord) storedRecord {
	s := storedRecord{
		ID:            r.ID,
		VendorName:    r.VendorName,
		GSTIN:         r.TaxID,
		Status:        string(r.Status),
		Amount:        r.Amount,
		TaxableValue:  r.TaxableValue,
		IGST:          r.IGST,
		CGST:          r.CGST,
		SGST:          r.SGST,
		Cess:          r.Cess,
		InvoiceNumber: r.InvoiceNumber,
		PlaceOfSupply: r.PlaceOfSupply,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	if r.HasInvoiceDate() {
		s.InvoiceDate = r.InvoiceDate.Format(entity.DateLayout)
	}
	return s
}
