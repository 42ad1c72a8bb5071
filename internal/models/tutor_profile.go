package models

import "time"

type TutorProfile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	Bio        string  `gorm:"size:1000" json:"bio"`
	Experience string  `gorm:"size:1000" json:"experience"`
	HourlyRate float64 `json:"hourly_rate"`

	// Derived from reviews, never written by clients.
	AverageRating float64 `gorm:"default:5" json:"average_rating"`

	Active bool `gorm:"default:true" json:"active"`

	Subjects []Subject `gorm:"foreignKey:TutorProfileID" json:"subjects"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Subject struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	TutorProfileID uint `gorm:"index;not null" json:"tutor_profile_id"`

	Name            string `gorm:"size:100;not null" json:"name"`
	YearsExperience int    `json:"years_experience"`
}
