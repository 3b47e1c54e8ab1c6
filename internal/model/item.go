package model

import (
	"errors"
	"strings"
	"time"
)

// Item is a seller's listing. OnSale flips to false while a purchase request
// is pending and back to true when the request is rejected.
type Item struct {
	UID          string    `json:"uid"`
	Name         string    `json:"name"`
	SellerUID    string    `json:"seller_uid"`
	CategoryUID  string    `json:"category_uid"`
	Price        float64   `json:"price"`
	Age          int       `json:"age"`
	Description  string    `json:"description"`
	Manufacturer string    `json:"manufacturer"`
	Heavy        bool      `json:"heavy"`
	OnSale       bool      `json:"on_sale"`
	CreatedAt    time.Time `json:"created_at"`
}

type ItemCreateRequest struct {
	Name         string
	SellerUID    string
	CategoryUID  string
	Price        float64
	Age          int
	Description  string
	Manufacturer string
	Heavy        bool
}

func (p ItemCreateRequest) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("item name is required")
	}
	if p.SellerUID == "" {
		return errors.New("seller is required")
	}
	if p.CategoryUID == "" {
		return errors.New("category is required")
	}
	if p.Price <= 0 {
		return errors.New("price must be greater than zero")
	}
	if strings.TrimSpace(p.Manufacturer) == "" {
		return errors.New("manufacturer is required")
	}
	if p.Age < 0 {
		return errors.New("age cannot be negative")
	}
	return nil
}

// ItemUpdateRequest carries optional changes; nil means keep the field.
type ItemUpdateRequest struct {
	Name         *string
	Price        *float64
	Age          *int
	CategoryUID  *string
	Description  *string
	Manufacturer *string
	Heavy        *bool
}

// ItemFilter controls catalog searches. A nil CategoryUID means all
// categories; Name is a case-insensitive substring match.
type ItemFilter struct {
	CategoryUID *string
	SellerUID   *string
	Name        string
	OnSaleOnly  bool
	Limit       int
	Offset      int
}
