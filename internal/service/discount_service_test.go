package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Evently-Event-Management/ms-event-seating/internal/models"
	"github.com/Evently-Event-Management/ms-event-seating/pkg/logger"
)

func newDiscountFixture(discounts ...*models.Discount) (DiscountService, *mockDiscountRepository) {
	repo := &mockDiscountRepository{discounts: map[string]*models.Discount{}}
	for _, d := range discounts {
		repo.discounts[d.ID] = d
	}
	return NewDiscountService(repo, logger.InitializeTestZapLogger()), repo
}

func TestApplyUsage(t *testing.T) {
	ctx := context.Background()

	t.Run("records one usage with the amount", func(t *testing.T) {
		svc, repo := newDiscountFixture(testDiscount())

		err := svc.ApplyUsage(ctx, ApplyUsageInput{DiscountID: "disc-1", DiscountCode: "EARLYBIRD", Amount: 5})

		require.NoError(t, err)
		usages := repo.recordedUsages()
		require.Len(t, usages, 1)
		assert.Equal(t, "disc-1", usages[0].discountID)
		assert.Equal(t, 5.0, usages[0].amount)
	})

	t.Run("missing discount is skipped, not failed", func(t *testing.T) {
		svc, repo := newDiscountFixture()

		err := svc.ApplyUsage(ctx, ApplyUsageInput{DiscountID: "disc-gone", Amount: 5})

		require.NoError(t, err)
		assert.Empty(t, repo.recordedUsages())
	})

	t.Run("code mismatch proceeds", func(t *testing.T) {
		svc, repo := newDiscountFixture(testDiscount())

		err := svc.ApplyUsage(ctx, ApplyUsageInput{DiscountID: "disc-1", DiscountCode: "WRONGCODE", Amount: 5})

		require.NoError(t, err)
		assert.Len(t, repo.recordedUsages(), 1)
	})

	t.Run("negative amount still counts the usage", func(t *testing.T) {
		svc, repo := newDiscountFixture(testDiscount())

		err := svc.ApplyUsage(ctx, ApplyUsageInput{DiscountID: "disc-1", Amount: -3})

		require.NoError(t, err)
		usages := repo.recordedUsages()
		require.Len(t, usages, 1)
		assert.Zero(t, usages[0].amount)
	})

	t.Run("store error propagates", func(t *testing.T) {
		svc, repo := newDiscountFixture(testDiscount())
		repo.incErr = errors.New("connection reset")

		err := svc.ApplyUsage(ctx, ApplyUsageInput{DiscountID: "disc-1", Amount: 5})

		assert.Error(t, err)
	})

	t.Run("usage beyond the limit is still recorded", func(t *testing.T) {
		// The ledger carries no max-usage clause; exceeding the limit is
		// caught (best-effort) by the pre-order gate, never here.
		d := testDiscount()
		d.CurrentUsage = *d.MaxUsage
		svc, repo := newDiscountFixture(d)

		err := svc.ApplyUsage(ctx, ApplyUsageInput{DiscountID: "disc-1", Amount: 5})

		require.NoError(t, err)
		assert.Len(t, repo.recordedUsages(), 1)
	})
}
