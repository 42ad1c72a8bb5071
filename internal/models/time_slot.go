package models

import "time"

type TimeSlot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TutorID uint `gorm:"index;not null" json:"tutor_id"`
	Tutor   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	StartAt time.Time `gorm:"not null" json:"start_at"`
	EndAt   time.Time `gorm:"not null" json:"end_at"`

	// Soft delete: inactive slots never accept new reservations but
	// keep their reservation history for auditing.
	Active bool `gorm:"default:true" json:"active"`

	// Append-only; the last entry is the authoritative current
	// reservation for this slot.
	Reservations []Reservation `gorm:"foreignKey:SlotID" json:"reservations"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
