package dto

import "time"

type SubjectDTO struct {
	Name            string `json:"name"`
	YearsExperience int    `json:"years_experience"`
}

type AvailableSlotDTO struct {
	ID            uint         `json:"id"`
	TutorID       uint         `json:"tutor_id"`
	TutorName     string       `json:"tutor_name"`
	StartAt       time.Time    `json:"start_at"`
	EndAt         time.Time    `json:"end_at"`
	HourlyRate    float64      `json:"hourly_rate"`
	AverageRating float64      `json:"average_rating"`
	Subjects      []SubjectDTO `json:"subjects"`
}
