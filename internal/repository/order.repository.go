package repository

import (
	"context"
	"errors"

	"github.com/ospteam/marketplace/internal/model"
	"github.com/ospteam/marketplace/pkg/pg"
	"gorm.io/gorm"
)

var (
	// ErrOrderNotFound is returned when an order does not exist.
	ErrOrderNotFound = errors.New("order not found")
)

type OrderRepository struct {
	*pg.DB
}

func NewOrderRepository(db *pg.DB) *OrderRepository {
	return &OrderRepository{
		db,
	}
}

func (r *OrderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	entity := toOrderEntity(order)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toOrderModel(entity), nil
}

func (r *OrderRepository) GetByUID(ctx context.Context, uid string) (*model.Order, error) {
	var entity OrderEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("uid = ?", uid).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return toOrderModel(&entity), nil
}

func (r *OrderRepository) List(ctx context.Context, f model.OrderFilter) ([]*model.Order, int64, error) {
	q := r.Read(ctx).WithContext(ctx).Model(&OrderEntity{})

	if f.BuyerUID != nil {
		q = q.Where("buyer_uid = ?", *f.BuyerUID)
	}
	if f.SellerUID != nil {
		q = q.Where("seller_uid = ?", *f.SellerUID)
	}
	if f.ItemUID != nil {
		q = q.Where("item_uid = ?", *f.ItemUID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", string(*f.Status))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 || limit > 1000 {
		limit = 50
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	var entities []*OrderEntity
	if err := q.Order("created_at ASC").Limit(limit).Offset(offset).Find(&entities).Error; err != nil {
		return nil, 0, err
	}

	return toOrderModels(entities), total, nil
}

// UpdateOfferPrice overwrites the negotiated price. Only PENDING orders may be
// re-negotiated; the status guard lives in the service layer.
func (r *OrderRepository) UpdateOfferPrice(ctx context.Context, uid string, price float64) error {
	result := r.Write(ctx).WithContext(ctx).
		Model(&OrderEntity{}).
		Where("uid = ?", uid).
		Update("offer_price", price)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, uid string, status model.OrderStatus) error {
	result := r.Write(ctx).WithContext(ctx).
		Model(&OrderEntity{}).
		Where("uid = ?", uid).
		Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, uid string) error {
	result := r.Write(ctx).WithContext(ctx).
		Where("uid = ?", uid).
		Delete(&OrderEntity{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// DeleteByItemUIDs removes every order referencing any of the given items.
// Used when a category cascade or seller removal takes the items away.
func (r *OrderRepository) DeleteByItemUIDs(ctx context.Context, itemUIDs []string) error {
	if len(itemUIDs) == 0 {
		return nil
	}
	return r.Write(ctx).WithContext(ctx).
		Where("item_uid IN ?", itemUIDs).
		Delete(&OrderEntity{}).
		Error
}

// DeleteByUser removes every order the user participates in, on either side.
func (r *OrderRepository) DeleteByUser(ctx context.Context, userUID string) error {
	return r.Write(ctx).WithContext(ctx).
		Where("buyer_uid = ? OR seller_uid = ?", userUID, userUID).
		Delete(&OrderEntity{}).
		Error
}
