package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ospteam/marketplace/internal/model"
	"github.com/ospteam/marketplace/internal/repository"
	"github.com/ospteam/marketplace/pkg/prom"
)

type UserRepository interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	GetByUID(ctx context.Context, uid string) (*model.User, error)
	GetByUIDAndRole(ctx context.Context, uid string, role model.Role) (*model.User, error)
	List(ctx context.Context, f model.UserFilter) ([]*model.User, int64, error)
	UpdateProfile(ctx context.Context, uid string, p model.ProfileUpdateRequest) error
	UpdatePassword(ctx context.Context, uid string, newPassword string) error
	SetAuthenticated(ctx context.Context, uid string, authenticated bool) error
	ClearAddressRef(ctx context.Context, addressUID string) error
	Delete(ctx context.Context, uid string) error
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type AddressRepository interface {
	Create(ctx context.Context, a *model.Address) (*model.Address, error)
	GetByUID(ctx context.Context, uid string) (*model.Address, error)
	Update(ctx context.Context, uid string, p model.AddressCreateRequest) error
	Delete(ctx context.Context, uid string) error
}

type CredentialsMailer interface {
	SendAccountCredentials(ctx context.Context, recipient, name, password string) error
}

type AccountService struct {
	userRepo  UserRepository
	addrRepo  AddressRepository
	itemRepo  ItemRepository
	orderRepo OrderRepository
	mailer    CredentialsMailer
}

func NewAccountService(userRepo UserRepository, addrRepo AddressRepository, itemRepo ItemRepository, orderRepo OrderRepository, mailer CredentialsMailer) *AccountService {
	return &AccountService{
		userRepo:  userRepo,
		addrRepo:  addrRepo,
		itemRepo:  itemRepo,
		orderRepo: orderRepo,
		mailer:    mailer,
	}
}

// Create provisions an account of any role. The address row is persisted
// first, then the user referencing it. The credentials mail carries the
// plaintext password; on mail failure the error propagates even though the
// user row is already committed.
func (s *AccountService) Create(ctx context.Context, p model.AccountCreateRequest) (*model.User, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	addr := &model.Address{
		UID:             uuid.NewString(),
		ResidenceNumber: p.Address.ResidenceNumber,
		Street:          p.Address.Street,
		Locality:        p.Address.Locality,
		Pincode:         p.Address.Pincode,
		State:           p.Address.State,
		City:            p.Address.City,
	}

	u := &model.User{
		UID:        uuid.NewString(),
		Role:       p.Role,
		Password:   p.Password,
		Name:       p.Name,
		Email:      p.Email,
		AddressUID: &addr.UID,
		Telephone:  p.Telephone,
		Active:     true,
		CreatedAt:  time.Now(),
	}
	if p.Role == model.RoleManager {
		g := p.Gender
		u.Gender = &g
		u.DateOfBirth = p.DateOfBirth
	}

	var created *model.User
	err := s.userRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.addrRepo.Create(ctx, addr); err != nil {
			return fmt.Errorf("create address: %w", err)
		}
		var err error
		created, err = s.userRepo.Create(ctx, u)
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	prom.IncCounterVec(prom.SystemAccounts, prom.MetricAccountsCreated, string(p.Role))

	if err := s.mailer.SendAccountCredentials(ctx, created.Email, created.Name, p.Password); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternal, err)
	}

	return created, nil
}

func (s *AccountService) Get(ctx context.Context, uid string) (*model.User, error) {
	u, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, uid)
		}
		return nil, err
	}
	return u, nil
}

func (s *AccountService) List(ctx context.Context, f model.UserFilter) ([]*model.User, int64, error) {
	return s.userRepo.List(ctx, f)
}

func (s *AccountService) ChangeProfile(ctx context.Context, uid string, p model.ProfileUpdateRequest) error {
	if p.Email != nil && !strings.Contains(*p.Email, "@") {
		return fmt.Errorf("%w: email is invalid", ErrValidation)
	}
	if p.Telephone != nil && (*p.Telephone < 1_000_000_000 || *p.Telephone > 9_999_999_999) {
		return fmt.Errorf("%w: telephone must be a 10-digit number", ErrValidation)
	}
	if err := s.userRepo.UpdateProfile(ctx, uid, p); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return fmt.Errorf("%w: user %s", ErrNotFound, uid)
		}
		return err
	}
	return nil
}

// ChangeAddress overwrites the user's address in place. Users who removed
// their address have nothing to overwrite and get NotFound.
func (s *AccountService) ChangeAddress(ctx context.Context, uid string, p model.AddressCreateRequest) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	u, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return fmt.Errorf("%w: user %s", ErrNotFound, uid)
		}
		return err
	}
	if u.AddressUID == nil {
		return fmt.Errorf("%w: user %s has no address", ErrNotFound, uid)
	}

	if err := s.addrRepo.Update(ctx, *u.AddressUID, p); err != nil {
		if errors.Is(err, repository.ErrAddressNotFound) {
			return fmt.Errorf("%w: address %s", ErrNotFound, *u.AddressUID)
		}
		return err
	}
	return nil
}

// ChangePassword compares the old password in plaintext, like everything else
// around passwords here.
func (s *AccountService) ChangePassword(ctx context.Context, uid, oldPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	u, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return fmt.Errorf("%w: user %s", ErrNotFound, uid)
		}
		return err
	}
	if u.Password != oldPassword {
		return ErrWrongPassword
	}

	return s.userRepo.UpdatePassword(ctx, uid, newPassword)
}

// DeleteAccount removes a seller or buyer together with everything hanging off
// them: a seller's items, and every order the user participates in on either
// side. The owned address row survives with dangling reference semantics
// resolved by deletion order. Runs in one store transaction.
func (s *AccountService) DeleteAccount(ctx context.Context, uid string, role model.Role) error {
	if role != model.RoleSeller && role != model.RoleBuyer {
		return fmt.Errorf("%w: only sellers and buyers can be removed", ErrValidation)
	}

	if _, err := s.userRepo.GetByUIDAndRole(ctx, uid, role); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return fmt.Errorf("%w: %s %s", ErrNotFound, role, uid)
		}
		return err
	}

	return s.userRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		if role == model.RoleSeller {
			itemUIDs, err := s.itemRepo.DeleteBySeller(ctx, uid)
			if err != nil {
				return fmt.Errorf("delete seller items: %w", err)
			}
			if err := s.orderRepo.DeleteByItemUIDs(ctx, itemUIDs); err != nil {
				return fmt.Errorf("delete item orders: %w", err)
			}
		}
		if err := s.orderRepo.DeleteByUser(ctx, uid); err != nil {
			return fmt.Errorf("delete user orders: %w", err)
		}
		if err := s.userRepo.Delete(ctx, uid); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
}

// DeleteAddress removes the user's own address row and nullifies the
// reference to it, in one transaction. The address is resolved from the user
// record, never from caller input, so nobody can delete someone else's.
func (s *AccountService) DeleteAddress(ctx context.Context, userUID string) error {
	u, err := s.userRepo.GetByUID(ctx, userUID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return fmt.Errorf("%w: user %s", ErrNotFound, userUID)
		}
		return err
	}
	if u.AddressUID == nil {
		return fmt.Errorf("%w: user %s has no address", ErrNotFound, userUID)
	}
	addressUID := *u.AddressUID

	return s.userRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.userRepo.ClearAddressRef(ctx, addressUID); err != nil {
			return fmt.Errorf("clear address ref: %w", err)
		}
		if err := s.addrRepo.Delete(ctx, addressUID); err != nil {
			if errors.Is(err, repository.ErrAddressNotFound) {
				return fmt.Errorf("%w: address %s", ErrNotFound, addressUID)
			}
			return err
		}
		return nil
	})
}
