package repository

import (
	"time"

	"github.com/ospteam/marketplace/internal/model"
)

type OrderEntity struct {
	ID         int64       `db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	UID        string      `db:"uid"         gorm:"column:uid;not null;uniqueIndex"`
	OfferPrice float64     `db:"offer_price" gorm:"column:offer_price;not null"`
	ItemUID    string      `db:"item_uid"    gorm:"column:item_uid;not null;index"`
	Item       *ItemEntity `gorm:"foreignKey:ItemUID;references:UID;constraint:OnDelete:CASCADE"`
	BuyerUID   string      `db:"buyer_uid"   gorm:"column:buyer_uid;not null;index"`
	Buyer      *UserEntity `gorm:"foreignKey:BuyerUID;references:UID;constraint:OnDelete:CASCADE"`
	SellerUID  string      `db:"seller_uid"  gorm:"column:seller_uid;not null;index"`
	Seller     *UserEntity `gorm:"foreignKey:SellerUID;references:UID;constraint:OnDelete:CASCADE"`
	Status     string      `db:"status"      gorm:"column:status;not null;default:PENDING"`
	Delivered  bool        `db:"delivered"   gorm:"column:delivered;not null;default:false"`
	Paid       bool        `db:"paid"        gorm:"column:paid;not null;default:false"`
	CreatedAt  time.Time   `db:"created_at"  gorm:"column:created_at;autoCreateTime"`
}

func (OrderEntity) TableName() string {
	return "orders"
}

func toOrderEntity(m *model.Order) *OrderEntity {
	if m == nil {
		return nil
	}
	return &OrderEntity{
		UID:        m.UID,
		OfferPrice: m.OfferPrice,
		ItemUID:    m.ItemUID,
		BuyerUID:   m.BuyerUID,
		SellerUID:  m.SellerUID,
		Status:     string(m.Status),
		Delivered:  m.Delivered,
		Paid:       m.Paid,
		CreatedAt:  m.CreatedAt,
	}
}

func toOrderModel(e *OrderEntity) *model.Order {
	if e == nil {
		return nil
	}
	return &model.Order{
		UID:        e.UID,
		OfferPrice: e.OfferPrice,
		ItemUID:    e.ItemUID,
		BuyerUID:   e.BuyerUID,
		SellerUID:  e.SellerUID,
		Status:     model.OrderStatus(e.Status),
		Delivered:  e.Delivered,
		Paid:       e.Paid,
		CreatedAt:  e.CreatedAt,
	}
}

func toOrderModels(entities []*OrderEntity) []*model.Order {
	if entities == nil {
		return nil
	}
	models := make([]*model.Order, len(entities))
	for i, e := range entities {
		models[i] = toOrderModel(e)
	}
	return models
}
