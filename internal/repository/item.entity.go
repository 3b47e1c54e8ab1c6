package repository

import (
	"time"

	"github.com/ospteam/marketplace/internal/model"
)

type ItemEntity struct {
	ID           int64           `db:"id"           gorm:"primaryKey;autoIncrement;column:id"`
	UID          string          `db:"uid"          gorm:"column:uid;not null;uniqueIndex"`
	Name         string          `db:"name"         gorm:"column:name;not null"`
	SellerUID    string          `db:"seller_uid"   gorm:"column:seller_uid;not null;index"`
	Seller       *UserEntity     `gorm:"foreignKey:SellerUID;references:UID;constraint:OnDelete:CASCADE"`
	CategoryUID  string          `db:"category_uid" gorm:"column:category_uid;not null;index"`
	Category     *CategoryEntity `gorm:"foreignKey:CategoryUID;references:UID;constraint:OnDelete:CASCADE"`
	Price        float64         `db:"price"        gorm:"column:price;not null"`
	Age          int             `db:"age"          gorm:"column:age;not null;default:0"`
	Description  string          `db:"description"  gorm:"column:description"`
	Manufacturer string          `db:"manufacturer" gorm:"column:manufacturer;not null"`
	Heavy        bool            `db:"heavy"        gorm:"column:heavy;not null;default:false"`
	OnSale       bool            `db:"on_sale"      gorm:"column:on_sale;not null;default:true"`
	CreatedAt    time.Time       `db:"created_at"   gorm:"column:created_at;autoCreateTime"`
}

func (ItemEntity) TableName() string {
	return "items"
}

func toItemEntity(m *model.Item) *ItemEntity {
	if m == nil {
		return nil
	}
	return &ItemEntity{
		UID:          m.UID,
		Name:         m.Name,
		SellerUID:    m.SellerUID,
		CategoryUID:  m.CategoryUID,
		Price:        m.Price,
		Age:          m.Age,
		Description:  m.Description,
		Manufacturer: m.Manufacturer,
		Heavy:        m.Heavy,
		OnSale:       m.OnSale,
		CreatedAt:    m.CreatedAt,
	}
}

func toItemModel(e *ItemEntity) *model.Item {
	if e == nil {
		return nil
	}
	return &model.Item{
		UID:          e.UID,
		Name:         e.Name,
		SellerUID:    e.SellerUID,
		CategoryUID:  e.CategoryUID,
		Price:        e.Price,
		Age:          e.Age,
		Description:  e.Description,
		Manufacturer: e.Manufacturer,
		Heavy:        e.Heavy,
		OnSale:       e.OnSale,
		CreatedAt:    e.CreatedAt,
	}
}

func toItemModels(entities []*ItemEntity) []*model.Item {
	if entities == nil {
		return nil
	}
	models := make([]*model.Item, len(entities))
	for i, e := range entities {
		models[i] = toItemModel(e)
	}
	return models
}
