package model

import "time"

// GroceryItem is one line on a user's active grocery list.
type GroceryItem struct {
	ID          int64     `json:"id"`
	ItemID      int64     `json:"item_id"`
	UserID      int64     `json:"user_id"`
	Quantity    *string   `json:"quantity"`
	IntQuantity *int64    `json:"int_quantity"`
	Purchased   bool      `json:"purchased"`
	Item        *Item     `json:"item,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type GroceryItemCreate struct {
	ItemID      int64   `json:"item_id"`
	UserID      int64   `json:"user_id"`
	Quantity    *string `json:"quantity"`
	IntQuantity *int64  `json:"int_quantity"`
}

type GroceryItemUpdate struct {
	Quantity    *string `json:"quantity"`
	IntQuantity *int64  `json:"int_quantity"`
	Purchased   *bool   `json:"purchased"`
}
