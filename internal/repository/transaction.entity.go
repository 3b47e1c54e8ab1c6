package repository

import (
	"time"

	"github.com/ospteam/marketplace/internal/model"
)

// TransactionEntity deliberately has no foreign keys: it is a snapshot that
// must outlive the order, item, buyer and seller it was minted from.
type TransactionEntity struct {
	ID         int64     `db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	UID        string    `db:"uid"         gorm:"column:uid;not null;uniqueIndex"`
	OfferPrice float64   `db:"offer_price" gorm:"column:offer_price;not null"`
	ItemName   string    `db:"item_name"   gorm:"column:item_name;not null"`
	ItemUID    string    `db:"item_uid"    gorm:"column:item_uid;not null"`
	BuyerName  string    `db:"buyer_name"  gorm:"column:buyer_name;not null"`
	BuyerUID   string    `db:"buyer_uid"   gorm:"column:buyer_uid;not null;index"`
	SellerName string    `db:"seller_name" gorm:"column:seller_name;not null"`
	SellerUID  string    `db:"seller_uid"  gorm:"column:seller_uid;not null;index"`
	CreatedAt  time.Time `db:"created_at"  gorm:"column:created_at;autoCreateTime"`
}

func (TransactionEntity) TableName() string {
	return "transactions"
}

func toTransactionEntity(m *model.Transaction) *TransactionEntity {
	if m == nil {
		return nil
	}
	return &TransactionEntity{
		UID:        m.UID,
		OfferPrice: m.OfferPrice,
		ItemName:   m.ItemName,
		ItemUID:    m.ItemUID,
		BuyerName:  m.BuyerName,
		BuyerUID:   m.BuyerUID,
		SellerName: m.SellerName,
		SellerUID:  m.SellerUID,
		CreatedAt:  m.CreatedAt,
	}
}

func toTransactionModel(e *TransactionEntity) *model.Transaction {
	if e == nil {
		return nil
	}
	return &model.Transaction{
		UID:        e.UID,
		OfferPrice: e.OfferPrice,
		ItemName:   e.ItemName,
		ItemUID:    e.ItemUID,
		BuyerName:  e.BuyerName,
		BuyerUID:   e.BuyerUID,
		SellerName: e.SellerName,
		SellerUID:  e.SellerUID,
		CreatedAt:  e.CreatedAt,
	}
}

func toTransactionModels(entities []*TransactionEntity) []*model.Transaction {
	if entities == nil {
		return nil
	}
	models := make([]*model.Transaction, len(entities))
	for i, e := range entities {
		models[i] = toTransactionModel(e)
	}
	return models
}
