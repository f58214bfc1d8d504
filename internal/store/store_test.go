package store_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"xft/internal/store"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (r record) Key() string { return r.ID }

var _ = Describe("Collection", func() {
	var (
		dir     string
		s       *store.Store
		records *store.Collection[record]
		ctx     context.Context
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		ctx = context.Background()

		var err error
		s, err = store.NewStore(dir)
		Expect(err).NotTo(HaveOccurred())

		records = store.NewCollection[record](s, "records")
	})

	Describe("ReadAll", func() {
		When("the collection has never been written", func() {
			It("returns an empty sequence without error", func() {
				all, err := records.ReadAll(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(all).To(BeEmpty())
			})
		})

		When("the on-disk file is malformed", func() {
			BeforeEach(func() {
				err := os.WriteFile(filepath.Join(dir, "records.json"), []byte("{not json]"), 0o644)
				Expect(err).NotTo(HaveOccurred())
			})

			It("surfaces a corruption error instead of an empty result", func() {
				_, err := records.ReadAll(ctx)
				Expect(err).To(MatchError(store.ErrCorrupted))
			})
		})
	})

	Describe("Save", func() {
		It("appends a new record and reads it back", func() {
			saved, err := records.Save(ctx, record{ID: "a", Name: "first"})
			Expect(err).NotTo(HaveOccurred())
			Expect(saved).To(Equal(record{ID: "a", Name: "first"}))

			got, found, err := records.ReadOne(ctx, "a")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeTrue())
			Expect(got.Name).To(Equal("first"))
		})

		When("a record with the same id already exists", func() {
			BeforeEach(func() {
				_, err := records.Save(ctx, record{ID: "a", Name: "first"})
				Expect(err).NotTo(HaveOccurred())
				_, err = records.Save(ctx, record{ID: "b", Name: "second"})
				Expect(err).NotTo(HaveOccurred())
			})

			It("replaces it in place keeping its position", func() {
				_, err := records.Save(ctx, record{ID: "a", Name: "updated"})
				Expect(err).NotTo(HaveOccurred())

				all, err := records.ReadAll(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(all).To(Equal([]record{
					{ID: "a", Name: "updated"},
					{ID: "b", Name: "second"},
				}))
			})
		})

		When("many saves with distinct ids race on the same collection", func() {
			It("keeps every record", func() {
				const n = 50

				var wg sync.WaitGroup
				for i := 0; i < n; i++ {
					wg.Add(1)
					go func(i int) {
						defer GinkgoRecover()
						defer wg.Done()
						_, err := records.Save(ctx, record{ID: fmt.Sprintf("id-%d", i)})
						Expect(err).NotTo(HaveOccurred())
					}(i)
				}
				wg.Wait()

				all, err := records.ReadAll(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(all).To(HaveLen(n))
			})
		})

		When("the context is already cancelled", func() {
			It("does not commit", func() {
				cancelled, cancel := context.WithCancel(ctx)
				cancel()

				_, err := records.Save(cancelled, record{ID: "a"})
				Expect(err).To(MatchError(context.Canceled))

				all, err := records.ReadAll(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(all).To(BeEmpty())
			})
		})
	})

	Describe("ReadOne", func() {
		It("reports absence without error", func() {
			_, found, err := records.ReadOne(ctx, "missing")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeFalse())
		})
	})

	Describe("Delete", func() {
		BeforeEach(func() {
			_, err := records.Save(ctx, record{ID: "a"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("removes an existing record", func() {
			removed, err := records.Delete(ctx, "a")
			Expect(err).NotTo(HaveOccurred())
			Expect(removed).To(BeTrue())

			_, found, err := records.ReadOne(ctx, "a")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeFalse())
		})

		It("reports false for a missing record", func() {
			removed, err := records.Delete(ctx, "missing")
			Expect(err).NotTo(HaveOccurred())
			Expect(removed).To(BeFalse())
		})
	})

	Describe("independent collections", func() {
		It("keeps records in separate files", func() {
			others := store.NewCollection[record](s, "others")

			_, err := records.Save(ctx, record{ID: "a"})
			Expect(err).NotTo(HaveOccurred())

			all, err := others.ReadAll(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(BeEmpty())

			Expect(filepath.Join(dir, "records.json")).To(BeAnExistingFile())
			Expect(filepath.Join(dir, "others.json")).NotTo(BeAnExistingFile())
		})
	})
})
