package model

import "time"

type Appointment struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
	Notes       *string   `json:"notes"`
	ProviderID  *int64    `json:"provider_id"`
	PatientName *string   `json:"patient_name"`
	CreatedBy   int64     `json:"created_by"`
	Provider    *Provider `json:"provider"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type AppointmentCreate struct {
	Title       string
	Date        time.Time
	Type        string
	Notes       *string
	ProviderID  *int64
	PatientName *string
	CreatedBy   int64
}

type AppointmentUpdate struct {
	Title       *string
	Date        *time.Time
	Type        *string
	Notes       *string
	ProviderID  *int64
	PatientName *string
}

type AppointmentFilter struct {
	CreatedBy   *int64
	PatientName *string
}
