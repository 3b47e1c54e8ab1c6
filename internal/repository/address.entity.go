package repository

import (
	"github.com/ospteam/marketplace/internal/model"
)

type AddressEntity struct {
	ID              int64  `db:"id"               gorm:"primaryKey;autoIncrement;column:id"`
	UID             string `db:"uid"              gorm:"column:uid;not null;uniqueIndex"`
	ResidenceNumber string `db:"residence_number" gorm:"column:residence_number;not null"`
	Street          string `db:"street"           gorm:"column:street;not null"`
	Locality        string `db:"locality"         gorm:"column:locality;not null"`
	Pincode         int    `db:"pincode"          gorm:"column:pincode;not null"`
	State           string `db:"state"            gorm:"column:state;not null"`
	City            string `db:"city"             gorm:"column:city;not null"`
}

func (AddressEntity) TableName() string {
	return "addresses"
}

func toAddressEntity(m *model.Address) *AddressEntity {
	if m == nil {
		return nil
	}
	return &AddressEntity{
		UID:             m.UID,
		ResidenceNumber: m.ResidenceNumber,
		Street:          m.Street,
		Locality:        m.Locality,
		Pincode:         m.Pincode,
		State:           m.State,
		City:            m.City,
	}
}

func toAddressModel(e *AddressEntity) *model.Address {
	if e == nil {
		return nil
	}
	return &model.Address{
		UID:             e.UID,
		ResidenceNumber: e.ResidenceNumber,
		Street:          e.Street,
		Locality:        e.Locality,
		Pincode:         e.Pincode,
		State:           e.State,
		City:            e.City,
	}
}
