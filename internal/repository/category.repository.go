package repository

import (
	"context"
	"errors"

	"github.com/ospteam/marketplace/internal/model"
	"github.com/ospteam/marketplace/pkg/pg"
	"gorm.io/gorm"
)

var (
	// ErrCategoryNotFound is returned when a category does not exist.
	ErrCategoryNotFound = errors.New("category not found")
)

type CategoryRepository struct {
	*pg.DB
}

func NewCategoryRepository(db *pg.DB) *CategoryRepository {
	return &CategoryRepository{
		db,
	}
}

func (r *CategoryRepository) Create(ctx context.Context, c *model.Category) (*model.Category, error) {
	entity := toCategoryEntity(c)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toCategoryModel(entity), nil
}

func (r *CategoryRepository) GetByUID(ctx context.Context, uid string) (*model.Category, error) {
	var entity CategoryEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("uid = ?", uid).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return toCategoryModel(&entity), nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*model.Category, error) {
	var entities []*CategoryEntity
	if err := r.Read(ctx).WithContext(ctx).Order("name ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return toCategoryModels(entities), nil
}

// Delete removes the category row only. Cascading the items (and their
// orders) is the caller's job, done in the same transaction.
func (r *CategoryRepository) Delete(ctx context.Context, uid string) error {
	result := r.Write(ctx).WithContext(ctx).
		Where("uid = ?", uid).
		Delete(&CategoryEntity{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
