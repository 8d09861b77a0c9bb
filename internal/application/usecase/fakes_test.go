package usecase_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/itcguard/itc-api/internal/domain"
	"github.com/itcguard/itc-api/internal/domain/entity"
)

// memRepo is an in-memory TaxRecordRepository.
type memRepo struct {
	mu      sync.Mutex
	records map[string]entity.TaxRecord
	seq     int
	listErr error
}

func newMemRepo(seed ...*entity.TaxRecord) *memRepo {
	r := &memRepo{records: map[string]entity.TaxRecord{}}
	for _, s := range seed {
		_ = r.Create(context.Background(), s)
	}
	return r
}

func (m *memRepo) Create(_ context.Context, r *entity.TaxRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	r.ID = fmt.Sprintf("rec-%d", m.seq)
	r.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	r.UpdatedAt = r.CreatedAt
	m.records[r.ID] = *r
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*entity.TaxRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &r, nil
}

func (m *memRepo) Update(_ context.Context, id string, p entity.TaxRecordPatch) (*entity.TaxRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.Apply(&r)
	m.records[id] = r
	return &r, nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.records, id)
	return nil
}

func (m *memRepo) DeleteIfStatus(_ context.Context, id string, status entity.Status) (*entity.TaxRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if r.Status != status {
		return nil, fmt.Errorf("%w: record is %s", domain.ErrConflict, r.Status)
	}
	delete(m.records, id)
	return &r, nil
}

func (m *memRepo) ListAll(context.Context) ([]*entity.TaxRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.TaxRecord, 0, len(m.records))
	for _, r := range m.records {
		r := r
		out = append(out, &r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].InvoiceDate.Equal(out[j].InvoiceDate) {
			return out[i].ID < out[j].ID
		}
		return out[i].InvoiceDate.After(out[j].InvoiceDate)
	})
	return out, nil
}

func (m *memRepo) ListByDateRange(ctx context.Context, start, end time.Time) ([]*entity.TaxRecord, error) {
	all, err := m.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	var out []*entity.TaxRecord
	for _, r := range all {
		if r.HasInvoiceDate() && !r.InvoiceDate.Before(start) && !r.InvoiceDate.After(end) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRepo) Ping(context.Context) error { return nil }

func (m *memRepo) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

// stubVision returns a canned model response.
type stubVision struct {
	text      string
	err       error
	gotType   string
	gotBytes  []byte
	blockTill bool
}

func (s *stubVision) ExtractInvoice(ctx context.Context, image []byte, mediaType string) (string, error) {
	s.gotType, s.gotBytes = mediaType, image
	if s.blockTill {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return s.text, s.err
}

// passPreparer returns the input unchanged.
type passPreparer struct{}

func (passPreparer) Prepare(b []byte, mt string) ([]byte, string, error) { return b, mt, nil }

// stubAssistant records the system prompt it was given.
type stubAssistant struct {
	system, message string
	reply           string
	err             error
}

func (s *stubAssistant) Reply(_ context.Context, system, message string) (string, error) {
	s.system, s.message = system, message
	return s.reply, s.err
}
