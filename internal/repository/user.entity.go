package repository

import (
	"time"

	"github.com/ospteam/marketplace/internal/model"
)

type UserEntity struct {
	ID            int64          `db:"id"            gorm:"primaryKey;autoIncrement;column:id"`
	UID           string         `db:"uid"           gorm:"column:uid;not null;uniqueIndex"`
	Role          string         `db:"role"          gorm:"column:role;not null;index"`
	Password      string         `db:"password"      gorm:"column:password;not null"`
	Name          string         `db:"name"          gorm:"column:name;not null"`
	Email         string         `db:"email"         gorm:"column:email;not null"`
	AddressUID    *string        `db:"address_uid"   gorm:"column:address_uid;index"`
	Address       *AddressEntity `gorm:"foreignKey:AddressUID;references:UID;constraint:OnDelete:SET NULL"`
	Telephone     int64          `db:"telephone"     gorm:"column:telephone;not null"`
	Authenticated bool           `db:"authenticated" gorm:"column:authenticated;not null;default:false"`
	Active        bool           `db:"active"        gorm:"column:active;not null;default:true"`
	Gender        *string        `db:"gender"        gorm:"column:gender"`
	DateOfBirth   *time.Time     `db:"date_of_birth" gorm:"column:date_of_birth"`
	CreatedAt     time.Time      `db:"created_at"    gorm:"column:created_at;autoCreateTime"`
}

func (UserEntity) TableName() string {
	return "users"
}

func toUserEntity(m *model.User) *UserEntity {
	if m == nil {
		return nil
	}
	var gender *string
	if m.Gender != nil {
		g := string(*m.Gender)
		gender = &g
	}
	return &UserEntity{
		UID:           m.UID,
		Role:          string(m.Role),
		Password:      m.Password,
		Name:          m.Name,
		Email:         m.Email,
		AddressUID:    m.AddressUID,
		Telephone:     m.Telephone,
		Authenticated: m.Authenticated,
		Active:        m.Active,
		Gender:        gender,
		DateOfBirth:   m.DateOfBirth,
		CreatedAt:     m.CreatedAt,
	}
}

func toUserModel(e *UserEntity) *model.User {
	if e == nil {
		return nil
	}
	var gender *model.Gender
	if e.Gender != nil {
		g := model.Gender(*e.Gender)
		gender = &g
	}
	return &model.User{
		UID:           e.UID,
		Role:          model.Role(e.Role),
		Password:      e.Password,
		Name:          e.Name,
		Email:         e.Email,
		AddressUID:    e.AddressUID,
		Telephone:     e.Telephone,
		Authenticated: e.Authenticated,
		Active:        e.Active,
		Gender:        gender,
		DateOfBirth:   e.DateOfBirth,
		CreatedAt:     e.CreatedAt,
	}
}

func toUserModels(entities []*UserEntity) []*model.User {
	if entities == nil {
		return nil
	}
	models := make([]*model.User, len(entities))
	for i, e := range entities {
		models[i] = toUserModel(e)
	}
	return models
}
