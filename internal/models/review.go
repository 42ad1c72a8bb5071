package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	SlotID    uint `gorm:"not null" json:"slot_id"`
	TutorID   uint `gorm:"not null;uniqueIndex:idx_reviews_student_tutor" json:"tutor_id"`
	StudentID uint `gorm:"not null;uniqueIndex:idx_reviews_student_tutor" json:"student_id"`

	Rating  int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment string `gorm:"size:1000;not null" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
