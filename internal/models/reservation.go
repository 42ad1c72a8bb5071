package models

import "time"

type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SlotID    uint `gorm:"index;not null" json:"slot_id"`
	StudentID uint `gorm:"index;not null" json:"student_id"`

	Status string `gorm:"size:20;default:'PENDING'" json:"status"`

	CancelledAt *time.Time `json:"cancelled_at"`
	FinishedAt  *time.Time `json:"finished_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
