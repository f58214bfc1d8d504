package core_test

import (
	"context"
	"time"

	"xft/internal/core"
	"xft/internal/repository"
	"xft/internal/store"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

var _ = Describe("TransactionService", func() {
	var (
		ctx          context.Context
		transactions *repository.TransactionRepository
		service      *core.TransactionService

		alice core.Identity
		bob   core.Identity
	)

	BeforeEach(func() {
		ctx = context.Background()

		fileStore, err := store.NewStore(GinkgoT().TempDir())
		Expect(err).NotTo(HaveOccurred())
		transactions = repository.NewTransactionRepository(fileStore)

		service = core.NewTransactionService(zap.NewNop().Sugar(), transactions)

		alice = core.Identity{UserID: "0xaaa", Address: "0xaaa"}
		bob = core.Identity{UserID: "0xbbb", Address: "0xbbb"}
	})

	Describe("Create", func() {
		It("records a pending outgoing transfer from the caller", func() {
			tx, err := service.Create(ctx, alice, "0xccc", "10")
			Expect(err).NotTo(HaveOccurred())
			Expect(tx.ID).NotTo(BeEmpty())
			Expect(tx.UserID).To(Equal(alice.UserID))
			Expect(tx.Type).To(Equal(repository.TypeSend))
			Expect(tx.From).To(Equal(alice.Address))
			Expect(tx.To).To(Equal("0xccc"))
			Expect(tx.Status).To(Equal(repository.StatusPending))
		})

		It("rejects a missing recipient", func() {
			_, err := service.Create(ctx, alice, "", "10")
			Expect(err).To(MatchError(core.ErrMissingField))
		})

		It("rejects a missing amount", func() {
			_, err := service.Create(ctx, alice, "0xccc", "")
			Expect(err).To(MatchError(core.ErrMissingField))
		})

		It("places the newest transaction first in the caller's list", func() {
			_, err := service.Create(ctx, alice, "0xccc", "1")
			Expect(err).NotTo(HaveOccurred())

			latest, err := service.Create(ctx, alice, "0xddd", "2")
			Expect(err).NotTo(HaveOccurred())

			list, err := service.List(ctx, alice)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(2))
			Expect(list[0].ID).To(Equal(latest.ID))
		})
	})

	Describe("List", func() {
		var now time.Time

		BeforeEach(func() {
			now = time.Now().UTC().Truncate(time.Second)

			seed := []repository.Transaction{
				{ID: "t1", UserID: alice.UserID, Status: repository.StatusPending, Timestamp: now.Add(-2 * time.Hour)},
				{ID: "t2", UserID: alice.UserID, Status: repository.StatusPending, Timestamp: now},
				{ID: "t3", UserID: bob.UserID, Status: repository.StatusPending, Timestamp: now},
				{ID: "t4", UserID: alice.UserID, Status: repository.StatusPending, Timestamp: now},
			}
			for _, tx := range seed {
				_, err := transactions.Save(ctx, tx)
				Expect(err).NotTo(HaveOccurred())
			}
		})

		It("returns only the caller's transactions, most recent first", func() {
			list, err := service.List(ctx, alice)
			Expect(err).NotTo(HaveOccurred())

			ids := make([]string, len(list))
			for i, tx := range list {
				ids[i] = tx.ID
			}
			// t2 and t4 share a timestamp, insertion order breaks the tie
			Expect(ids).To(Equal([]string{"t2", "t4", "t1"}))
		})
	})

	Describe("GetByID", func() {
		var txID string

		BeforeEach(func() {
			tx, err := service.Create(ctx, alice, "0xccc", "10")
			Expect(err).NotTo(HaveOccurred())
			txID = tx.ID
		})

		It("returns the transaction to its owner", func() {
			tx, err := service.GetByID(ctx, alice, txID)
			Expect(err).NotTo(HaveOccurred())
			Expect(tx.ID).To(Equal(txID))
		})

		It("distinguishes foreign ownership from absence", func() {
			_, err := service.GetByID(ctx, bob, txID)
			Expect(err).To(MatchError(core.ErrNotTransactionOwner))

			_, err = service.GetByID(ctx, alice, "missing")
			Expect(err).To(MatchError(core.ErrTransactionNotFound))
		})
	})

	Describe("MarkStatus", func() {
		var txID string

		BeforeEach(func() {
			tx, err := service.Create(ctx, alice, "0xccc", "10")
			Expect(err).NotTo(HaveOccurred())
			txID = tx.ID
		})

		It("moves a pending transaction to confirmed with its chain hash", func() {
			tx, err := service.MarkStatus(ctx, txID, repository.StatusConfirmed, "0xhash")
			Expect(err).NotTo(HaveOccurred())
			Expect(tx.Status).To(Equal(repository.StatusConfirmed))
			Expect(tx.Hash).To(Equal("0xhash"))
		})

		It("moves a pending transaction to failed", func() {
			tx, err := service.MarkStatus(ctx, txID, repository.StatusFailed, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(tx.Status).To(Equal(repository.StatusFailed))
		})

		It("never moves a settled transaction", func() {
			_, err := service.MarkStatus(ctx, txID, repository.StatusConfirmed, "0xhash")
			Expect(err).NotTo(HaveOccurred())

			_, err = service.MarkStatus(ctx, txID, repository.StatusFailed, "")
			Expect(err).To(MatchError(core.ErrInvalidStatusTransition))
		})

		It("rejects a move back to pending", func() {
			_, err := service.MarkStatus(ctx, txID, repository.StatusPending, "")
			Expect(err).To(MatchError(core.ErrInvalidStatusTransition))
		})
	})
})
