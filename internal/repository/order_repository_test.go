package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ospteam/marketplace/internal/model"
)

func newTestOrder(itemUID, buyerUID, sellerUID string) *model.Order {
	return &model.Order{
		UID:        uuid.NewString(),
		OfferPrice: 450.0,
		ItemUID:    itemUID,
		BuyerUID:   buyerUID,
		SellerUID:  sellerUID,
		Status:     model.OrderStatusPending,
	}
}

func TestOrderRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := newTestOrder(uuid.NewString(), uuid.NewString(), uuid.NewString())
	created, err := repo.Create(ctx, order)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, created.Status)

	got, err := repo.GetByUID(ctx, order.UID)
	require.NoError(t, err)
	assert.Equal(t, 450.0, got.OfferPrice)
	assert.False(t, got.Paid)

	_, err = repo.GetByUID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderRepository_List(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewOrderRepository(db)
	ctx := context.Background()

	buyer := uuid.NewString()
	seller := uuid.NewString()

	first := newTestOrder(uuid.NewString(), buyer, seller)
	second := newTestOrder(uuid.NewString(), buyer, uuid.NewString())
	third := newTestOrder(uuid.NewString(), uuid.NewString(), seller)
	third.Status = model.OrderStatusAccepted
	for _, o := range []*model.Order{first, second, third} {
		_, err := repo.Create(ctx, o)
		require.NoError(t, err)
	}

	t.Run("by buyer", func(t *testing.T) {
		orders, total, err := repo.List(ctx, model.OrderFilter{BuyerUID: &buyer})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, orders, 2)
	})

	t.Run("by seller", func(t *testing.T) {
		orders, total, err := repo.List(ctx, model.OrderFilter{SellerUID: &seller})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, orders, 2)
	})

	t.Run("by status", func(t *testing.T) {
		status := model.OrderStatusAccepted
		orders, total, err := repo.List(ctx, model.OrderFilter{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, third.UID, orders[0].UID)
	})
}

func TestOrderRepository_UpdateOfferPrice(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := newTestOrder(uuid.NewString(), uuid.NewString(), uuid.NewString())
	_, err := repo.Create(ctx, order)
	require.NoError(t, err)

	err = repo.UpdateOfferPrice(ctx, order.UID, 520.0)
	require.NoError(t, err)

	got, err := repo.GetByUID(ctx, order.UID)
	require.NoError(t, err)
	assert.Equal(t, 520.0, got.OfferPrice)

	err = repo.UpdateOfferPrice(ctx, uuid.NewString(), 100)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := newTestOrder(uuid.NewString(), uuid.NewString(), uuid.NewString())
	_, err := repo.Create(ctx, order)
	require.NoError(t, err)

	err = repo.UpdateStatus(ctx, order.UID, model.OrderStatusAccepted)
	require.NoError(t, err)

	got, err := repo.GetByUID(ctx, order.UID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusAccepted, got.Status)

	err = repo.UpdateStatus(ctx, uuid.NewString(), model.OrderStatusAccepted)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderRepository_DeleteByItemUIDs(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewOrderRepository(db)
	ctx := context.Background()

	itemA := uuid.NewString()
	itemB := uuid.NewString()

	a := newTestOrder(itemA, uuid.NewString(), uuid.NewString())
	b := newTestOrder(itemB, uuid.NewString(), uuid.NewString())
	keep := newTestOrder(uuid.NewString(), uuid.NewString(), uuid.NewString())
	for _, o := range []*model.Order{a, b, keep} {
		_, err := repo.Create(ctx, o)
		require.NoError(t, err)
	}

	err := repo.DeleteByItemUIDs(ctx, []string{itemA, itemB})
	require.NoError(t, err)

	_, err = repo.GetByUID(ctx, a.UID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	_, err = repo.GetByUID(ctx, b.UID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	_, err = repo.GetByUID(ctx, keep.UID)
	assert.NoError(t, err)

	t.Run("empty slice is a no-op", func(t *testing.T) {
		err := repo.DeleteByItemUIDs(ctx, nil)
		assert.NoError(t, err)
	})
}

func TestOrderRepository_DeleteByUser(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewOrderRepository(db)
	ctx := context.Background()

	user := uuid.NewString()

	asBuyer := newTestOrder(uuid.NewString(), user, uuid.NewString())
	asSeller := newTestOrder(uuid.NewString(), uuid.NewString(), user)
	keep := newTestOrder(uuid.NewString(), uuid.NewString(), uuid.NewString())
	for _, o := range []*model.Order{asBuyer, asSeller, keep} {
		_, err := repo.Create(ctx, o)
		require.NoError(t, err)
	}

	err := repo.DeleteByUser(ctx, user)
	require.NoError(t, err)

	_, err = repo.GetByUID(ctx, asBuyer.UID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	_, err = repo.GetByUID(ctx, asSeller.UID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	_, err = repo.GetByUID(ctx, keep.UID)
	assert.NoError(t, err)
}
