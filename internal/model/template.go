package model

import "time"

// GroceryTemplate is a named, reusable list of items a user can apply to
// their grocery list. At most one template per user is the default.
type GroceryTemplate struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	IsDefault bool      `json:"is_default"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type GroceryTemplateWithItems struct {
	GroceryTemplate
	Items []GroceryTemplateItem `json:"items"`
}

type GroceryTemplateItem struct {
	ID         int64     `json:"id"`
	TemplateID int64     `json:"template_id"`
	ItemID     int64     `json:"item_id"`
	Quantity   *string   `json:"quantity"`
	Item       *Item     `json:"item,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type GroceryTemplateCreate struct {
	Name      string `json:"name"`
	IsDefault bool   `json:"is_default"`
	UserID    int64  `json:"user_id"`
}

type GroceryTemplateUpdate struct {
	Name      *string `json:"name"`
	IsDefault *bool   `json:"is_default"`
}

type GroceryTemplateItemCreate struct {
	ItemID   int64   `json:"item_id"`
	Quantity *string `json:"quantity"`
}

// TemplateApplication summarizes one application of a template to a
// user's grocery list.
type TemplateApplication struct {
	TemplateID int64 `json:"template_id"`
	UserID     int64 `json:"user_id"`
	ItemsAdded int   `json:"items_added"`
}
