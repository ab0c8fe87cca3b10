package model

import "time"

type Todo struct {
	ID int64 `json:"id" gorm:"primaryKey"`
	Text string `json:"text" gorm:"not null"`
	Complete bool `json:"complete" gorm:"not null"`
	DisplayOrder int32 `json:"display_order" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Статусы для фильтра списка
const (
	StatusAny       = "any"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

type TodoFilter struct {
	Status string
}
