package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itcguard/itc-api/internal/domain"
	"github.com/itcguard/itc-api/internal/domain/entity"
	"github.com/itcguard/itc-api/internal/infrastructure/postgres"
	"github.com/itcguard/itc-api/pkg/config"
)

// newRepo connects to TEST_DATABASE_URL and truncates the table. The test
// is skipped when no database is configured.
func newRepo(t *testing.T) *postgres.TaxRecordRepo {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE compliance_records`)
	require.NoError(t, err)
	return postgres.NewTaxRecordRepository(pool)
}

func TestTaxRecordRepo_RoundTrip(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	rec := &entity.TaxRecord{
		VendorName:  "Acme",
		Amount:      decimal.RequireFromString("1180.456"),
		CGST:        decimal.NewFromInt(90),
		InvoiceDate: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Create(ctx, rec))
	require.NotEmpty(t, rec.ID)

	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.VendorName)
	assert.Empty(t, got.TaxID)
	assert.Equal(t, entity.StatusPending, got.Status)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("1180.46")))
	assert.Equal(t, rec.InvoiceDate, got.InvoiceDate)
	assert.Equal(t, entity.Unknown, got.InvoiceNumber)

	status := entity.StatusSafe
	updated, err := repo.Update(ctx, rec.ID, entity.TaxRecordPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusSafe, updated.Status)
	assert.True(t, updated.CGST.Equal(decimal.NewFromInt(90)))

	_, err = repo.DeleteIfStatus(ctx, rec.ID, entity.StatusFailed)
	assert.ErrorIs(t, err, domain.ErrConflict)
	removed, err := repo.DeleteIfStatus(ctx, rec.ID, entity.StatusSafe)
	require.NoError(t, err)
	assert.Equal(t, "Acme", removed.VendorName)
	assert.ErrorIs(t, repo.Delete(ctx, rec.ID), domain.ErrNotFound)
	_, err = repo.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTaxRecordRepo_DateRangeInclusive(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	for _, d := range []time.Time{
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		{},
	} {
		require.NoError(t, repo.Create(ctx, &entity.TaxRecord{VendorName: "v", Amount: decimal.NewFromInt(1), InvoiceDate: d}))
	}

	in, err := repo.ListByDateRange(ctx, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, in, 2)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, 3, int(all[0].InvoiceDate.Month()))
	assert.False(t, all[4].HasInvoiceDate())
}
