package booking

import (
	"context"

	"github.com/TutorLinkServices/tutor-scheduler/internal/audit"
	"github.com/TutorLinkServices/tutor-scheduler/internal/cache"
	domain "github.com/TutorLinkServices/tutor-scheduler/internal/domain/booking"
	"github.com/TutorLinkServices/tutor-scheduler/internal/httperr"
)

type DeactivateTutor struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.Availability
}

func NewDeactivateTutor(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.Availability,
) *DeactivateTutor {
	return &DeactivateTutor{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

// Execute soft-deletes the tutor profile and pulls every active slot
// out of availability. The repository runs both writes in a single
// transaction; reservation history is kept untouched.
func (uc *DeactivateTutor) Execute(
	ctx context.Context,
	userID uint,
) error {

	profile, err := uc.repo.GetTutorProfileByUserID(ctx, userID)
	if err != nil || !profile.Active {
		return httperr.ErrBusiness("tutor_not_found")
	}

	if err := uc.repo.DeactivateTutor(ctx, userID); err != nil {
		return err
	}

	uc.cache.Invalidate(ctx, userID)

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "tutor_profile_deactivated",
		Entity:   "tutor_profile",
		EntityID: &profile.ID,
	})

	return nil
}
