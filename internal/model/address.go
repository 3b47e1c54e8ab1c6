package model

import (
	"errors"
	"strings"
)

// Address is a plain value entity owned by exactly one user. Deleting the
// address nullifies the user's reference; the row itself is never cascaded.
type Address struct {
	UID             string `json:"uid"`
	ResidenceNumber string `json:"residence_number"`
	Street          string `json:"street"`
	Locality        string `json:"locality"`
	Pincode         int    `json:"pincode"`
	State           string `json:"state"`
	City            string `json:"city"`
}

type AddressCreateRequest struct {
	ResidenceNumber string
	Street          string
	Locality        string
	Pincode         int
	State           string
	City            string
}

func (p AddressCreateRequest) Validate() error {
	if strings.TrimSpace(p.ResidenceNumber) == "" {
		return errors.New("residence number is required")
	}
	if strings.TrimSpace(p.Street) == "" {
		return errors.New("street is required")
	}
	if strings.TrimSpace(p.Locality) == "" {
		return errors.New("locality is required")
	}
	if p.Pincode < 100000 || p.Pincode > 999999 {
		return errors.New("pincode must be a 6-digit number")
	}
	if strings.TrimSpace(p.State) == "" {
		return errors.New("state is required")
	}
	if strings.TrimSpace(p.City) == "" {
		return errors.New("city is required")
	}
	return nil
}
