package booking

import (
	"context"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/TutorLinkServices/tutor-scheduler/internal/cache"
	"github.com/TutorLinkServices/tutor-scheduler/internal/clock"
	domain "github.com/TutorLinkServices/tutor-scheduler/internal/domain/booking"
	"github.com/TutorLinkServices/tutor-scheduler/internal/dto"
	"github.com/TutorLinkServices/tutor-scheduler/internal/models"
)

// ======================================================
// FILTERS
// ======================================================

type AvailabilityFilter struct {
	TutorID   *uint
	Subject   string
	TutorName string
	PriceMin  *float64
	PriceMax  *float64
	RatingMin *float64
	RatingMax *float64
	From      *time.Time
	To        *time.Time
}

func (f AvailabilityFilter) cacheable() bool {
	return f.Subject == "" && f.TutorName == "" &&
		f.PriceMin == nil && f.PriceMax == nil &&
		f.RatingMin == nil && f.RatingMax == nil &&
		f.From == nil && f.To == nil
}

// ======================================================
// USE CASE
// ======================================================

type ListAvailableSlots struct {
	repo  domain.Repository
	cache *cache.Availability
	clock clock.Clock
}

func NewListAvailableSlots(
	repo domain.Repository,
	cache *cache.Availability,
	clk clock.Clock,
) *ListAvailableSlots {
	return &ListAvailableSlots{
		repo:  repo,
		cache: cache,
		clock: clk,
	}
}

func (uc *ListAvailableSlots) Execute(
	ctx context.Context,
	filter AvailabilityFilter,
) ([]dto.AvailableSlotDTO, error) {

	if filter.cacheable() {
		if cached, ok := uc.cache.Get(ctx, filter.TutorID); ok {
			return cached, nil
		}
	}

	now := uc.clock.Now()

	slots, err := uc.repo.ListOpenSlots(ctx, filter.TutorID, now)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AvailableSlotDTO, 0, len(slots))
	for i := range slots {
		slot := &slots[i]

		// A dangling tutor reference or a slot that lost its
		// profile must not break the whole listing.
		mapped := mapAvailableSlot(slot)
		if mapped == nil {
			continue
		}

		if domain.Live(slot) != nil {
			continue
		}

		if !matchesFilter(*mapped, filter) {
			continue
		}

		out = append(out, *mapped)
	}

	if filter.cacheable() {
		uc.cache.Set(ctx, filter.TutorID, out)
	}

	return out, nil
}

func mapAvailableSlot(slot *models.TimeSlot) *dto.AvailableSlotDTO {
	if slot == nil {
		return nil
	}

	profile := slot.Tutor.TutorProfile
	if profile == nil || !profile.Active || slot.Tutor.Role != models.RoleTutor {
		return nil
	}

	subjects := make([]dto.SubjectDTO, 0, len(profile.Subjects))
	for _, s := range profile.Subjects {
		subjects = append(subjects, dto.SubjectDTO{
			Name:            s.Name,
			YearsExperience: s.YearsExperience,
		})
	}

	return &dto.AvailableSlotDTO{
		ID:            slot.ID,
		TutorID:       slot.TutorID,
		TutorName:     slot.Tutor.FullName(),
		StartAt:       slot.StartAt,
		EndAt:         slot.EndAt,
		HourlyRate:    profile.HourlyRate,
		AverageRating: profile.AverageRating,
		Subjects:      subjects,
	}
}

func matchesFilter(slot dto.AvailableSlotDTO, f AvailabilityFilter) bool {
	if f.Subject != "" {
		found := false
		for _, s := range slot.Subjects {
			if strings.Contains(normalize(s.Name), normalize(f.Subject)) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.TutorName != "" &&
		!strings.Contains(normalize(slot.TutorName), normalize(f.TutorName)) {
		return false
	}

	if f.PriceMin != nil && slot.HourlyRate < *f.PriceMin {
		return false
	}
	if f.PriceMax != nil && slot.HourlyRate > *f.PriceMax {
		return false
	}

	if f.RatingMin != nil && slot.AverageRating < *f.RatingMin {
		return false
	}
	if f.RatingMax != nil && slot.AverageRating > *f.RatingMax {
		return false
	}

	if f.From != nil && slot.StartAt.Before(*f.From) {
		return false
	}
	if f.To != nil && slot.EndAt.After(*f.To) {
		return false
	}

	return true
}

// normalize lowercases and strips diacritics so "Cálculo" matches
// "calculo".
func normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}
