package model

import (
	"errors"
	"strings"
)

// Category groups items. Deleting a category removes every item in it, and
// transitively every order on those items.
type Category struct {
	UID  string `json:"uid"`
	Name string `json:"name"`
}

type CategoryCreateRequest struct {
	Name string
}

func (p CategoryCreateRequest) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("category name is required")
	}
	return nil
}
