package repository

import (
	"context"
	"errors"

	"github.com/ospteam/marketplace/internal/model"
	"github.com/ospteam/marketplace/pkg/pg"
	"gorm.io/gorm"
)

var (
	// ErrAddressNotFound is returned when an address does not exist.
	ErrAddressNotFound = errors.New("address not found")
)

type AddressRepository struct {
	*pg.DB
}

func NewAddressRepository(db *pg.DB) *AddressRepository {
	return &AddressRepository{
		db,
	}
}

func (r *AddressRepository) Create(ctx context.Context, a *model.Address) (*model.Address, error) {
	entity := toAddressEntity(a)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toAddressModel(entity), nil
}

func (r *AddressRepository) GetByUID(ctx context.Context, uid string) (*model.Address, error) {
	var entity AddressEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("uid = ?", uid).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	return toAddressModel(&entity), nil
}

// Update overwrites every field of the address in place.
func (r *AddressRepository) Update(ctx context.Context, uid string, p model.AddressCreateRequest) error {
	result := r.Write(ctx).WithContext(ctx).
		Model(&AddressEntity{}).
		Where("uid = ?", uid).
		Updates(map[string]interface{}{
			"residence_number": p.ResidenceNumber,
			"street":           p.Street,
			"locality":         p.Locality,
			"pincode":          p.Pincode,
			"state":            p.State,
			"city":             p.City,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAddressNotFound
	}
	return nil
}

// Delete removes the address row only. Nullifying user references is the
// caller's job, done in the same transaction.
func (r *AddressRepository) Delete(ctx context.Context, uid string) error {
	result := r.Write(ctx).WithContext(ctx).
		Where("uid = ?", uid).
		Delete(&AddressEntity{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAddressNotFound
	}
	return nil
}
