package model

import "time"

type Task struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Category   string     `json:"category"`
	Completed  bool       `json:"completed"`
	DueDate    *time.Time `json:"due_date"`
	AssignedTo *int64     `json:"assigned_to"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type TaskCreate struct {
	Title      string
	Category   string
	DueDate    *time.Time
	AssignedTo *int64
}

type TaskUpdate struct {
	Title      *string
	Category   *string
	Completed  *bool
	DueDate    *time.Time
	AssignedTo *int64
}

type TaskFilter struct {
	AssignedTo *int64
	Category   *string
}
