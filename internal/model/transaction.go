package model

import "time"

// Transaction is the immutable record of a completed sale. It snapshots the
// identifying fields of the order's item, buyer and seller because all three
// may be deleted afterwards (the item is, immediately, as part of payment).
type Transaction struct {
	UID        string    `json:"uid"`
	OfferPrice float64   `json:"offer_price"`
	ItemName   string    `json:"item_name"`
	ItemUID    string    `json:"item_uid"`
	BuyerName  string    `json:"buyer_name"`
	BuyerUID   string    `json:"buyer_uid"`
	SellerName string    `json:"seller_name"`
	SellerUID  string    `json:"seller_uid"`
	CreatedAt  time.Time `json:"created_at"`
}

// TransactionFilter controls audit listings. Empty filter lists everything
// (manager audit); buyer/seller scoped listings set one of the UIDs.
type TransactionFilter struct {
	BuyerUID  *string
	SellerUID *string
	Limit     int
	Offset    int
}
