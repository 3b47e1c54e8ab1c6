package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/ospteam/marketplace/internal/model"
	"github.com/ospteam/marketplace/pkg/pg"
	"gorm.io/gorm"
)

var (
	// ErrItemNotFound is returned when an item does not exist.
	ErrItemNotFound = errors.New("item not found")
)

type ItemRepository struct {
	*pg.DB
}

func NewItemRepository(db *pg.DB) *ItemRepository {
	return &ItemRepository{
		db,
	}
}

func (r *ItemRepository) Create(ctx context.Context, item *model.Item) (*model.Item, error) {
	entity := toItemEntity(item)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toItemModel(entity), nil
}

func (r *ItemRepository) GetByUID(ctx context.Context, uid string) (*model.Item, error) {
	var entity ItemEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("uid = ?", uid).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return toItemModel(&entity), nil
}

func (r *ItemRepository) List(ctx context.Context, f model.ItemFilter) ([]*model.Item, int64, error) {
	q := r.Read(ctx).WithContext(ctx).Model(&ItemEntity{})

	if f.CategoryUID != nil {
		q = q.Where("category_uid = ?", *f.CategoryUID)
	}
	if f.SellerUID != nil {
		q = q.Where("seller_uid = ?", *f.SellerUID)
	}
	if f.Name != "" {
		// LOWER on both sides keeps the substring match case-insensitive on
		// postgres and sqlite alike
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(f.Name)+"%")
	}
	if f.OnSaleOnly {
		q = q.Where("on_sale = ?", true)
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

	var entities []*ItemEntity
	if err := q.Order("created_at ASC").Limit(limit).Offset(offset).Find(&entities).Error; err != nil {
		return nil, 0, err
	}

	return toItemModels(entities), total, nil
}

func (r *ItemRepository) Update(ctx context.Context, uid string, p model.ItemUpdateRequest) error {
	changes := map[string]interface{}{}
	if p.Name != nil {
		changes["name"] = *p.Name
	}
	if p.Price != nil {
		changes["price"] = *p.Price
	}
	if p.Age != nil {
		changes["age"] = *p.Age
	}
	if p.CategoryUID != nil {
		changes["category_uid"] = *p.CategoryUID
	}
	if p.Description != nil {
		changes["description"] = *p.Description
	}
	if p.Manufacturer != nil {
		changes["manufacturer"] = *p.Manufacturer
	}
	if p.Heavy != nil {
		changes["heavy"] = *p.Heavy
	}
	if len(changes) == 0 {
		return nil
	}

	result := r.Write(ctx).WithContext(ctx).
		Model(&ItemEntity{}).
		Where("uid = ?", uid).
		Updates(changes)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *ItemRepository) SetOnSale(ctx context.Context, uid string, onSale bool) error {
	result := r.Write(ctx).WithContext(ctx).
		Model(&ItemEntity{}).
		Where("uid = ?", uid).
		Update("on_sale", onSale)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, uid string) error {
	result := r.Write(ctx).WithContext(ctx).
		Where("uid = ?", uid).
		Delete(&ItemEntity{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// DeleteByCategory removes every item in the category and returns the uids of
// the removed items so the caller can cascade their orders.
func (r *ItemRepository) DeleteByCategory(ctx context.Context, categoryUID string) ([]string, error) {
	uids, err := r.uidsWhere(ctx, "category_uid = ?", categoryUID)
	if err != nil {
		return nil, err
	}
	if len(uids) == 0 {
		return nil, nil
	}
	err = r.Write(ctx).WithContext(ctx).
		Where("category_uid = ?", categoryUID).
		Delete(&ItemEntity{}).
		Error
	if err != nil {
		return nil, err
	}
	return uids, nil
}

// DeleteBySeller removes every item owned by the seller and returns their uids.
func (r *ItemRepository) DeleteBySeller(ctx context.Context, sellerUID string) ([]string, error) {
	uids, err := r.uidsWhere(ctx, "seller_uid = ?", sellerUID)
	if err != nil {
		return nil, err
	}
	if len(uids) == 0 {
		return nil, nil
	}
	err = r.Write(ctx).WithContext(ctx).
		Where("seller_uid = ?", sellerUID).
		Delete(&ItemEntity{}).
		Error
	if err != nil {
		return nil, err
	}
	return uids, nil
}

func (r *ItemRepository) uidsWhere(ctx context.Context, cond string, arg interface{}) ([]string, error) {
	var uids []string
	err := r.Write(ctx).WithContext(ctx).
		Model(&ItemEntity{}).
		Where(cond, arg).
		Pluck("uid", &uids).
		Error
	if err != nil {
		return nil, err
	}
	return uids, nil
}
