package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ospteam/marketplace/internal/model"
	"github.com/ospteam/marketplace/internal/repository"
	"github.com/ospteam/marketplace/pkg/logger"
)

type CategoryRepository interface {
	Create(ctx context.Context, c *model.Category) (*model.Category, error)
	GetByUID(ctx context.Context, uid string) (*model.Category, error)
	List(ctx context.Context) ([]*model.Category, error)
	Delete(ctx context.Context, uid string) error
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) (*model.Item, error)
	GetByUID(ctx context.Context, uid string) (*model.Item, error)
	List(ctx context.Context, f model.ItemFilter) ([]*model.Item, int64, error)
	Update(ctx context.Context, uid string, p model.ItemUpdateRequest) error
	SetOnSale(ctx context.Context, uid string, onSale bool) error
	Delete(ctx context.Context, uid string) error
	DeleteByCategory(ctx context.Context, categoryUID string) ([]string, error)
	DeleteBySeller(ctx context.Context, sellerUID string) ([]string, error)
}

type CatalogService struct {
	categoryRepo CategoryRepository
	itemRepo     ItemRepository
	orderRepo    OrderRepository
}

func NewCatalogService(categoryRepo CategoryRepository, itemRepo ItemRepository, orderRepo OrderRepository) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		itemRepo:     itemRepo,
		orderRepo:    orderRepo,
	}
}

func (s *CatalogService) AddCategory(ctx context.Context, p model.CategoryCreateRequest) (*model.Category, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return s.categoryRepo.Create(ctx, &model.Category{
		UID:  uuid.NewString(),
		Name: p.Name,
	})
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]*model.Category, error) {
	return s.categoryRepo.List(ctx)
}

// DeleteCategory removes the category, every item filed under it and every
// order referencing those items, all in one store transaction.
func (s *CatalogService) DeleteCategory(ctx context.Context, uid string) error {
	if _, err := s.categoryRepo.GetByUID(ctx, uid); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return fmt.Errorf("%w: category %s", ErrNotFound, uid)
		}
		return err
	}

	return s.categoryRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		itemUIDs, err := s.itemRepo.DeleteByCategory(ctx, uid)
		if err != nil {
			return fmt.Errorf("delete category items: %w", err)
		}
		if err := s.orderRepo.DeleteByItemUIDs(ctx, itemUIDs); err != nil {
			return fmt.Errorf("delete item orders: %w", err)
		}
		if err := s.categoryRepo.Delete(ctx, uid); err != nil {
			return fmt.Errorf("delete category: %w", err)
		}

		logger.Info("Category removed with cascade", "category_uid", uid, "items", len(itemUIDs))

		return nil
	})
}

func (s *CatalogService) AddItem(ctx context.Context, p model.ItemCreateRequest) (*model.Item, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if _, err := s.categoryRepo.GetByUID(ctx, p.CategoryUID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, fmt.Errorf("%w: category %s", ErrNotFound, p.CategoryUID)
		}
		return nil, err
	}

	return s.itemRepo.Create(ctx, &model.Item{
		UID:          uuid.NewString(),
		Name:         p.Name,
		SellerUID:    p.SellerUID,
		CategoryUID:  p.CategoryUID,
		Price:        p.Price,
		Age:          p.Age,
		Description:  p.Description,
		Manufacturer: p.Manufacturer,
		Heavy:        p.Heavy,
		OnSale:       true,
	})
}

func (s *CatalogService) GetItem(ctx context.Context, uid string) (*model.Item, error) {
	item, err := s.itemRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, fmt.Errorf("%w: item %s", ErrNotFound, uid)
		}
		return nil, err
	}
	return item, nil
}

// SearchItems filters the catalog. Category and seller scoping, substring name
// match and on-sale restriction combine freely.
func (s *CatalogService) SearchItems(ctx context.Context, f model.ItemFilter) ([]*model.Item, int64, error) {
	return s.itemRepo.List(ctx, f)
}

func (s *CatalogService) ChangeItemDetails(ctx context.Context, uid string, p model.ItemUpdateRequest) error {
	if p.Price != nil && *p.Price <= 0 {
		return fmt.Errorf("%w: price must be greater than zero", ErrValidation)
	}
	if p.CategoryUID != nil {
		if _, err := s.categoryRepo.GetByUID(ctx, *p.CategoryUID); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return fmt.Errorf("%w: category %s", ErrNotFound, *p.CategoryUID)
			}
			return err
		}
	}

	if err := s.itemRepo.Update(ctx, uid, p); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return fmt.Errorf("%w: item %s", ErrNotFound, uid)
		}
		return err
	}
	return nil
}

// RemoveItem deletes the item and any orders raised against it.
func (s *CatalogService) RemoveItem(ctx context.Context, uid string) error {
	if _, err := s.itemRepo.GetByUID(ctx, uid); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return fmt.Errorf("%w: item %s", ErrNotFound, uid)
		}
		return err
	}

	return s.categoryRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.orderRepo.DeleteByItemUIDs(ctx, []string{uid}); err != nil {
			return fmt.Errorf("delete item orders: %w", err)
		}
		if err := s.itemRepo.Delete(ctx, uid); err != nil {
			return fmt.Errorf("delete item: %w", err)
		}
		return nil
	})
}
