package repository

import (
	"context"
	"time"

	"github.com/itcguard/itc-api/internal/domain/entity"
)

// TaxRecordRepository is the persistence port for compliance records.
// Update and Delete return domain.ErrNotFound for unknown IDs.
type TaxRecordRepository interface {
	// Create assigns record.ID and the timestamps, then persists it.
	Create(ctx context.Context, record *entity.TaxRecord) error
	GetByID(ctx context.Context, id string) (*entity.TaxRecord, error)
	Update(ctx context.Context, id string, patch entity.TaxRecordPatch) (*entity.TaxRecord, error)
	Delete(ctx context.Context, id string) error
	// DeleteIfStatus removes the record only while it still has the given
	// status, checked and deleted atomically. A different status yields
	// domain.ErrConflict. The removed record is returned.
	DeleteIfStatus(ctx context.Context, id string, status entity.Status) (*entity.TaxRecord, error)
	// ListAll returns every record, newest invoice date first.
	ListAll(ctx context.Context) ([]*entity.TaxRecord, error)
	// ListByDateRange returns records with start <= invoice_date <= end.
	ListByDateRange(ctx context.Context, start, end time.Time) ([]*entity.TaxRecord, error)
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
