package dto

import "time"

type ReservationListDTO struct {
	SlotID    uint      `json:"slot_id"`
	TutorID   uint      `json:"tutor_id"`
	StudentID uint      `json:"student_id"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	Status    string    `json:"status"`
	BookedAt  time.Time `json:"booked_at"`
}

type ReviewDTO struct {
	ID        string    `json:"id"`
	SlotID    uint      `json:"slot_id"`
	TutorID   uint      `json:"tutor_id"`
	StudentID uint      `json:"student_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
