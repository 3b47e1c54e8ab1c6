package fixtures

import (
	"time"

	"github.com/ospteam/marketplace/internal/model"
)

var (
	TestAddress = model.AddressCreateRequest{
		ResidenceNumber: "17B",
		Street:          "MG Road",
		Locality:        "Shivaji Nagar",
		Pincode:         560001,
		State:           "Karnataka",
		City:            "Bengaluru",
	}

	TestSellerRequest = model.AccountCreateRequest{
		Role:      model.RoleSeller,
		Password:  "seller-pass-1",
		Name:      "Sunil Seller",
		Email:     "sunil@example.com",
		Telephone: 9_876_543_210,
		Address:   TestAddress,
	}

	TestBuyerRequest = model.AccountCreateRequest{
		Role:      model.RoleBuyer,
		Password:  "buyer-pass-1",
		Name:      "Bina Buyer",
		Email:     "bina@example.com",
		Telephone: 9_123_456_780,
		Address:   TestAddress,
	}
)

func NewTestManagerRequest() model.AccountCreateRequest {
	dob := time.Date(1985, time.March, 14, 0, 0, 0, 0, time.UTC)
	return model.AccountCreateRequest{
		Role:        model.RoleManager,
		Password:    "manager-pass-1",
		Name:        "Mira Manager",
		Email:       "mira@example.com",
		Telephone:   9_000_000_001,
		Address:     TestAddress,
		Gender:      model.GenderFemale,
		DateOfBirth: &dob,
	}
}

func NewTestCategoryRequest(name string) model.CategoryCreateRequest {
	return model.CategoryCreateRequest{Name: name}
}

func NewTestItemRequest(sellerUID, categoryUID, name string, price float64) model.ItemCreateRequest {
	return model.ItemCreateRequest{
		Name:         name,
		SellerUID:    sellerUID,
		CategoryUID:  categoryUID,
		Price:        price,
		Age:          1,
		Description:  "gently used",
		Manufacturer: "Acme",
		Heavy:        false,
	}
}
