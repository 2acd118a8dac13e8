package model

import "time"

// Provider is a doctor, vet, or service provider appointments can reference.
type Provider struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone"`
	Email     *string   `json:"email"`
	Website   *string   `json:"website"`
	Address   *string   `json:"address"`
	Info      *string   `json:"info"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProviderCreate struct {
	Name    string  `json:"name"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Website *string `json:"website"`
	Address *string `json:"address"`
	Info    *string `json:"info"`
}

type ProviderUpdate struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Website *string `json:"website"`
	Address *string `json:"address"`
	Info    *string `json:"info"`
}
