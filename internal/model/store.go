package model

import "time"

// Store is a shop where items can be bought.
type Store struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type StoreUpdate struct {
	Name *string `json:"name"`
}
