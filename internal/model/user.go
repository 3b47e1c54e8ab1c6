package model

import (
	"errors"
	"strings"
	"time"
)

// Role is the tag that drives authorization. All three account types share
// one profile, so a tagged value beats separate user kinds.
type Role string

const (
	RoleManager Role = "manager"
	RoleSeller  Role = "seller"
	RoleBuyer   Role = "buyer"
)

func (r Role) Valid() bool {
	return r == RoleManager || r == RoleSeller || r == RoleBuyer
}

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// User is the common account profile. Manager-only fields are pointers and
// nil for sellers and buyers.
//
// Password is stored and compared in plaintext; see DESIGN.md before
// touching it.
type User struct {
	UID           string     `json:"uid"`
	Role          Role       `json:"role"`
	Password      string     `json:"-"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	AddressUID    *string    `json:"address_uid"`
	Telephone     int64      `json:"telephone"`
	Authenticated bool       `json:"authenticated"`
	Active        bool       `json:"active"`
	Gender        *Gender    `json:"gender,omitempty"`
	DateOfBirth   *time.Time `json:"date_of_birth,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// AccountCreateRequest is the input for provisioning any account type.
type AccountCreateRequest struct {
	Role        Role
	Password    string
	Name        string
	Email       string
	Telephone   int64
	Address     AddressCreateRequest
	Gender      Gender     // manager only
	DateOfBirth *time.Time // manager only
}

func (p AccountCreateRequest) Validate() error {
	if !p.Role.Valid() {
		return errors.New("unknown role")
	}
	if len(p.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name is required")
	}
	if !strings.Contains(p.Email, "@") {
		return errors.New("email is invalid")
	}
	if p.Telephone < 1_000_000_000 || p.Telephone > 9_999_999_999 {
		return errors.New("telephone must be a 10-digit number")
	}
	if err := p.Address.Validate(); err != nil {
		return err
	}
	if p.Role == RoleManager {
		if p.Gender != GenderMale && p.Gender != GenderFemale {
			return errors.New("gender is required for managers")
		}
		if p.DateOfBirth == nil {
			return errors.New("date of birth is required for managers")
		}
	}
	return nil
}

// ProfileUpdateRequest carries optional profile changes; nil means keep.
type ProfileUpdateRequest struct {
	Name      *string
	Email     *string
	Telephone *int64
}

// UserFilter controls account listings.
type UserFilter struct {
	Role   *Role
	Limit  int
	Offset int
}
