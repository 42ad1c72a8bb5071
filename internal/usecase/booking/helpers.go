package booking

import (
	"context"

	domain "github.com/TutorLinkServices/tutor-scheduler/internal/domain/booking"
	"github.com/TutorLinkServices/tutor-scheduler/internal/httperr"
	"github.com/TutorLinkServices/tutor-scheduler/internal/models"
)

// requireActiveTutor resolves the acting user and asserts they hold an
// active tutor profile.
func requireActiveTutor(
	ctx context.Context,
	repo domain.Repository,
	userID uint,
) (*models.TutorProfile, error) {

	user, err := repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, httperr.ErrBusiness("user_not_found")
	}

	if user.Role != models.RoleTutor {
		return nil, httperr.ErrBusiness("tutor_only")
	}

	profile, err := repo.GetTutorProfileByUserID(ctx, userID)
	if err != nil || !profile.Active {
		return nil, httperr.ErrBusiness("tutor_only")
	}

	return profile, nil
}
