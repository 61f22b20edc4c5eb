package models

import "github.com/angelmondragon/superstore-backend/pkg/enums"

// Category groups products on the storefront and in the mega menu.
type Category struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Slug          string             `json:"slug"`
	Icon          string             `json:"icon"`
	Thumbnail     string             `json:"thumbnail"`
	IsPopular     bool               `json:"is_popular"`
	Status        enums.RecordStatus `json:"status"`
	Subcategories []string           `json:"subcategories"`
	CreatedAt     string             `json:"created_at,omitempty"`
	UpdatedAt     string             `json:"updated_at,omitempty"`
}

func (c Category) IsActive() bool {
	return c.Status == enums.RecordStatusActive
}

func (c Category) Clone() Category {
	out := c
	out.Subcategories = append([]string{}, c.Subcategories...)
	return out
}
