package bolt_test

import (
	"context"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/itcguard/itc-api/internal/domain"
	"github.com/itcguard/itc-api/internal/domain/entity"
	"github.com/itcguard/itc-api/internal/infrastructure/bolt"
)

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

var _ = Describe("TaxRecordStore", func() {
	var (
		ctx   context.Context
		path  string
		store *bolt.TaxRecordStore
	)

	BeforeEach(func() {
		ctx = context.Background()
		path = filepath.Join(GinkgoT().TempDir(), "itc.db")
		var err error
		store, err = bolt.Open(path)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if store != nil {
			store.Close()
		}
	})

	Describe("Create", func() {
		var rec *entity.TaxRecord

		BeforeEach(func() {
			rec = &entity.TaxRecord{
				VendorName:  "Acme",
				TaxID:       "27AAPFU0939F1ZV",
				Amount:      decimal.RequireFromString("250.005"),
				InvoiceDate: day(2024, 2, 29),
				IGST:        decimal.NewFromInt(45),
			}
			Expect(store.Create(ctx, rec)).To(Succeed())
		})

		It("assigns an ID and timestamps", func() {
			Expect(rec.ID).NotTo(BeEmpty())
			Expect(rec.CreatedAt).NotTo(BeZero())
		})

		It("round-trips every field", func() {
			got, err := store.GetByID(ctx, rec.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.VendorName).To(Equal("Acme"))
			Expect(got.TaxID).To(Equal("27AAPFU0939F1ZV"))
			Expect(got.Status).To(Equal(entity.StatusPending))
			Expect(got.Amount.Equal(decimal.RequireFromString("250.01"))).To(BeTrue())
			Expect(got.IGST.Equal(decimal.NewFromInt(45))).To(BeTrue())
			Expect(got.InvoiceDate).To(Equal(day(2024, 2, 29)))
			Expect(got.InvoiceNumber).To(Equal(entity.Unknown))
		})

		It("survives reopening the file", func() {
			Expect(store.Close()).To(Succeed())
			var err error
			store, err = bolt.Open(path)
			Expect(err).NotTo(HaveOccurred())

			got, err := store.GetByID(ctx, rec.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.VendorName).To(Equal("Acme"))
		})
	})

	Describe("GetByID", func() {
		When("the record does not exist", func() {
			It("returns ErrNotFound", func() {
				_, err := store.GetByID(ctx, "missing")
				Expect(err).To(MatchError(domain.ErrNotFound))
			})
		})
	})

	Describe("Update", func() {
		It("applies only the patched fields", func() {
			rec := &entity.TaxRecord{VendorName: "Acme", Amount: decimal.NewFromInt(100), InvoiceDate: day(2024, 1, 1)}
			Expect(store.Create(ctx, rec)).To(Succeed())

			status := entity.StatusFailed
			got, err := store.Update(ctx, rec.ID, entity.TaxRecordPatch{Status: &status})
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Status).To(Equal(entity.StatusFailed))
			Expect(got.VendorName).To(Equal("Acme"))
			Expect(got.InvoiceDate).To(Equal(day(2024, 1, 1)))

			reloaded, err := store.GetByID(ctx, rec.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(reloaded.Status).To(Equal(entity.StatusFailed))
		})

		It("returns ErrNotFound for unknown IDs", func() {
			status := entity.StatusSafe
			_, err := store.Update(ctx, "missing", entity.TaxRecordPatch{Status: &status})
			Expect(err).To(MatchError(domain.ErrNotFound))
		})
	})

	Describe("Delete", func() {
		It("removes the record once", func() {
			rec := &entity.TaxRecord{VendorName: "Acme", Amount: decimal.NewFromInt(1)}
			Expect(store.Create(ctx, rec)).To(Succeed())

			Expect(store.Delete(ctx, rec.ID)).To(Succeed())
			Expect(store.Delete(ctx, rec.ID)).To(MatchError(domain.ErrNotFound))
		})
	})

	Describe("DeleteIfStatus", func() {
		It("deletes only while the status matches", func() {
			rec := &entity.TaxRecord{VendorName: "Acme", Amount: decimal.NewFromInt(5), Status: entity.StatusFailed}
			Expect(store.Create(ctx, rec)).To(Succeed())

			_, err := store.DeleteIfStatus(ctx, rec.ID, entity.StatusSafe)
			Expect(err).To(MatchError(domain.ErrConflict))
			_, err = store.GetByID(ctx, rec.ID)
			Expect(err).NotTo(HaveOccurred())

			removed, err := store.DeleteIfStatus(ctx, rec.ID, entity.StatusFailed)
			Expect(err).NotTo(HaveOccurred())
			Expect(removed.VendorName).To(Equal("Acme"))

			_, err = store.DeleteIfStatus(ctx, rec.ID, entity.StatusFailed)
			Expect(err).To(MatchError(domain.ErrNotFound))
		})
	})

	Describe("listing", func() {
		BeforeEach(func() {
			for _, d := range []time.Time{day(2024, 1, 31), day(2024, 2, 1), day(2024, 2, 29), day(2024, 3, 1), {}} {
				Expect(store.Create(ctx, &entity.TaxRecord{VendorName: "v", Amount: decimal.NewFromInt(1), InvoiceDate: d})).To(Succeed())
			}
		})

		It("orders newest first with undated records last", func() {
			all, err := store.ListAll(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(5))
			Expect(all[0].InvoiceDate).To(Equal(day(2024, 3, 1)))
			Expect(all[3].InvoiceDate).To(Equal(day(2024, 1, 31)))
			Expect(all[4].HasInvoiceDate()).To(BeFalse())
		})

		It("filters inclusively by date", func() {
			in, err := store.ListByDateRange(ctx, day(2024, 2, 1), day(2024, 2, 29))
			Expect(err).NotTo(HaveOccurred())
			Expect(in).To(HaveLen(2))
		})

		It("returns an empty slice for an empty range", func() {
			in, err := store.ListByDateRange(ctx, day(2023, 1, 1), day(2023, 1, 31))
			Expect(err).NotTo(HaveOccurred())
			Expect(in).To(BeEmpty())
		})
	})

	It("pings", func() {
		Expect(store.Ping(ctx)).To(Succeed())
	})
})
