package core_test

import (
	"context"
	"errors"

	"xft/internal/core"
	"xft/internal/repository"
	"xft/internal/store"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

type stubBalance struct {
	balance string
	err     error
}

func (s stubBalance) GetBalance(ctx context.Context, address string) (string, error) {
	return s.balance, s.err
}

var _ = Describe("UserService", func() {
	var (
		ctx     context.Context
		users   *repository.UserRepository
		balance stubBalance
		service *core.UserService

		ident core.Identity
	)

	newService := func() *core.UserService {
		return core.NewUserService(zap.NewNop().Sugar(), users, balance)
	}

	BeforeEach(func() {
		ctx = context.Background()

		fileStore, err := store.NewStore(GinkgoT().TempDir())
		Expect(err).NotTo(HaveOccurred())
		users = repository.NewUserRepository(fileStore)

		_, err = users.Save(ctx, repository.User{
			ID:      "0xaaa",
			Address: "0xaaa",
			Nonce:   "123456",
		})
		Expect(err).NotTo(HaveOccurred())

		balance = stubBalance{balance: "1.5"}
		service = newService()

		ident = core.Identity{UserID: "0xaaa", Address: "0xaaa"}
	})

	Describe("GetProfile", func() {
		It("returns the caller's profile without the nonce", func() {
			profile, err := service.GetProfile(ctx, ident, "0xAAA")
			Expect(err).NotTo(HaveOccurred())
			Expect(profile.ID).To(Equal("0xaaa"))
			Expect(profile.Address).To(Equal("0xaaa"))
		})

		It("refuses to serve someone else's profile", func() {
			_, err := service.GetProfile(ctx, core.Identity{UserID: "0xbbb", Address: "0xbbb"}, "0xaaa")
			Expect(err).To(MatchError(core.ErrNotProfileOwner))
		})

		It("reports a missing user", func() {
			ghost := core.Identity{UserID: "0xccc", Address: "0xccc"}
			_, err := service.GetProfile(ctx, ghost, "0xccc")
			Expect(err).To(MatchError(core.ErrUserNotFound))
		})
	})

	Describe("GetBalance", func() {
		It("returns the on-chain balance for the address", func() {
			got, err := service.GetBalance(ctx, "0xaaa")
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(core.Balance{Address: "0xaaa", Balance: "1.5"}))
		})

		It("propagates a chain client failure", func() {
			balance = stubBalance{err: errors.New("node down")}
			service = newService()

			_, err := service.GetBalance(ctx, "0xaaa")
			Expect(err).To(HaveOccurred())
		})
	})
})
