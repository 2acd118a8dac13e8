package model

import "time"

// Item is a catalog entry that grocery list entries and template items
// point at. Stores is always populated on reads; an item with no stores is
// available everywhere.
type Item struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	DefaultQuantity *string   `json:"default_quantity"`
	QuantityIsInt   bool      `json:"quantity_is_int"`
	Section         *string   `json:"section"`
	Stores          []Store   `json:"stores"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type ItemCreate struct {
	Name            string  `json:"name"`
	DefaultQuantity *string `json:"default_quantity"`
	QuantityIsInt   bool    `json:"quantity_is_int"`
	Section         *string `json:"section"`
	StoreIDs        []int64 `json:"store_ids"`
}

// ItemUpdate is a partial update. A nil StoreIDs leaves associations alone;
// a non-nil empty slice removes them all.
type ItemUpdate struct {
	Name            *string  `json:"name"`
	DefaultQuantity *string  `json:"default_quantity"`
	QuantityIsInt   *bool    `json:"quantity_is_int"`
	Section         *string  `json:"section"`
	StoreIDs        *[]int64 `json:"store_ids"`
}

type ItemFilter struct {
	StoreID *int64
	Section *string
}
