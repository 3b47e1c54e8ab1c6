package repository

import (
	"context"
	"errors"

	"github.com/ospteam/marketplace/internal/model"
	"github.com/ospteam/marketplace/pkg/pg"
	"gorm.io/gorm"
)

var (
	// ErrUserNotFound is returned when no account matches the given uid.
	ErrUserNotFound = errors.New("user not found")
)

type UserRepository struct {
	*pg.DB
}

func NewUserRepository(db *pg.DB) *UserRepository {
	return &UserRepository{
		db,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *model.User) (*model.User, error) {
	entity := toUserEntity(u)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toUserModel(entity), nil
}

func (r *UserRepository) GetByUID(ctx context.Context, uid string) (*model.User, error) {
	var entity UserEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("uid = ?", uid).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserModel(&entity), nil
}

// GetByUIDAndRole resolves a uid only when the account carries the given
// role. Sign-in and moderation both refuse cross-role matches.
func (r *UserRepository) GetByUIDAndRole(ctx context.Context, uid string, role model.Role) (*model.User, error) {
	var entity UserEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("uid = ? AND role = ?", uid, string(role)).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserModel(&entity), nil
}

func (r *UserRepository) List(ctx context.Context, f model.UserFilter) ([]*model.User, int64, error) {
	q := r.Read(ctx).WithContext(ctx).Model(&UserEntity{})

	if f.Role != nil {
		q = q.Where("role = ?", string(*f.Role))
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

	var entities []*UserEntity
	if err := q.Order("created_at ASC").Limit(limit).Offset(offset).Find(&entities).Error; err != nil {
		return nil, 0, err
	}

	return toUserModels(entities), total, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, uid string, p model.ProfileUpdateRequest) error {
	changes := map[string]interface{}{}
	if p.Name != nil {
		changes["name"] = *p.Name
	}
	if p.Email != nil {
		changes["email"] = *p.Email
	}
	if p.Telephone != nil {
		changes["telephone"] = *p.Telephone
	}
	if len(changes) == 0 {
		return nil
	}

	result := r.Write(ctx).WithContext(ctx).
		Model(&UserEntity{}).
		Where("uid = ?", uid).
		Updates(changes)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, uid string, newPassword string) error {
	result := r.Write(ctx).WithContext(ctx).
		Model(&UserEntity{}).
		Where("uid = ?", uid).
		Update("password", newPassword)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) SetAuthenticated(ctx context.Context, uid string, authenticated bool) error {
	result := r.Write(ctx).WithContext(ctx).
		Model(&UserEntity{}).
		Where("uid = ?", uid).
		Update("authenticated", authenticated)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ClearAddressRef nullifies the address reference on every account pointing
// at the given address. The address row itself persists.
func (r *UserRepository) ClearAddressRef(ctx context.Context, addressUID string) error {
	return r.Write(ctx).WithContext(ctx).
		Model(&UserEntity{}).
		Where("address_uid = ?", addressUID).
		Update("address_uid", nil).
		Error
}

// Delete removes the account row only; dependent items and orders are
// cascaded by the caller in the same transaction.
func (r *UserRepository) Delete(ctx context.Context, uid string) error {
	result := r.Write(ctx).WithContext(ctx).
		Where("uid = ?", uid).
		Delete(&UserEntity{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
