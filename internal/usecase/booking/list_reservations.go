package booking

import (
	"context"

	domain "github.com/TutorLinkServices/tutor-scheduler/internal/domain/booking"
	"github.com/TutorLinkServices/tutor-scheduler/internal/dto"
	"github.com/TutorLinkServices/tutor-scheduler/internal/models"
)

// ======================================================
// STUDENT VIEW
// ======================================================

type ListStudentReservations struct {
	repo domain.Repository
}

func NewListStudentReservations(repo domain.Repository) *ListStudentReservations {
	return &ListStudentReservations{repo: repo}
}

func (uc *ListStudentReservations) Execute(
	ctx context.Context,
	studentID uint,
) ([]dto.ReservationListDTO, error) {

	slots, err := uc.repo.ListSlotsWithReservationsByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ReservationListDTO, 0, len(slots))
	for i := range slots {
		for _, res := range slots[i].Reservations {
			if res.StudentID != studentID {
				continue
			}
			out = append(out, mapReservation(&slots[i], res))
		}
	}

	return out, nil
}

// ======================================================
// TUTOR VIEW
// ======================================================

type ListTutorReservations struct {
	repo domain.Repository
}

func NewListTutorReservations(repo domain.Repository) *ListTutorReservations {
	return &ListTutorReservations{repo: repo}
}

func (uc *ListTutorReservations) Execute(
	ctx context.Context,
	tutorID uint,
) ([]dto.ReservationListDTO, error) {

	if _, err := requireActiveTutor(ctx, uc.repo, tutorID); err != nil {
		return nil, err
	}

	slots, err := uc.repo.ListSlotsByTutor(ctx, tutorID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ReservationListDTO, 0, len(slots))
	for i := range slots {
		for _, res := range slots[i].Reservations {
			out = append(out, mapReservation(&slots[i], res))
		}
	}

	return out, nil
}

// ======================================================
// ADMIN VIEW
// ======================================================

type ListAllReservations struct {
	repo domain.Repository
}

func NewListAllReservations(repo domain.Repository) *ListAllReservations {
	return &ListAllReservations{repo: repo}
}

func (uc *ListAllReservations) Execute(
	ctx context.Context,
) ([]dto.ReservationListDTO, error) {

	slots, err := uc.repo.ListSlotsWithReservations(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ReservationListDTO, 0, len(slots))
	for i := range slots {
		for _, res := range slots[i].Reservations {
			out = append(out, mapReservation(&slots[i], res))
		}
	}

	return out, nil
}

func mapReservation(slot *models.TimeSlot, res models.Reservation) dto.ReservationListDTO {
	return dto.ReservationListDTO{
		SlotID:    slot.ID,
		TutorID:   slot.TutorID,
		StudentID: res.StudentID,
		StartAt:   slot.StartAt,
		EndAt:     slot.EndAt,
		Status:    string(domain.Normalize(domain.Status(res.Status))),
		BookedAt:  res.CreatedAt,
	}
}
