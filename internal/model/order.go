package model

import "time"

// OrderStatus is the lifecycle state of a purchase request. PENDING is the
// only non-terminal state: accept keeps the order for payment, reject deletes
// it outright, so a REJECTED row never survives a request.
type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "PENDING"
	OrderStatusAccepted OrderStatus = "ACCEPTED"
	OrderStatusRejected OrderStatus = "REJECTED"
)

func (s OrderStatus) Valid() bool {
	return s == OrderStatusPending || s == OrderStatusAccepted || s == OrderStatusRejected
}

// Order is a buyer's purchase request against a single item. The offer price
// is overwritten on every negotiation round; no history is kept.
type Order struct {
	UID        string      `json:"uid"`
	OfferPrice float64     `json:"offer_price"`
	ItemUID    string      `json:"item_uid"`
	BuyerUID   string      `json:"buyer_uid"`
	SellerUID  string      `json:"seller_uid"`
	Status     OrderStatus `json:"status"`
	Delivered  bool        `json:"delivered"`
	Paid       bool        `json:"paid"`
	CreatedAt  time.Time   `json:"created_at"`
}

// OrderFilter controls order listings.
type OrderFilter struct {
	BuyerUID  *string
	SellerUID *string
	ItemUID   *string
	Status    *OrderStatus
	Limit     int
	Offset    int
}
