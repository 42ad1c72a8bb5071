package review

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	booking "github.com/TutorLinkServices/tutor-scheduler/internal/domain/booking"
	"github.com/TutorLinkServices/tutor-scheduler/internal/httperr"
)

func TestCreateReview(t *testing.T) {
	slots := newFakeSlots()
	slots.addCompletedSession(1, 10, 100)
	reviews := newFakeReviews()

	uc := NewCreateReview(slots, reviews, nil)

	rev, avg, err := uc.Execute(context.Background(), CreateReviewInput{
		StudentID: 100,
		SlotID:    1,
		Rating:    4,
		Comment:   "clear and patient teaching",
	})
	require.NoError(t, err)
	require.NotZero(t, rev.ID)
	require.Equal(t, uint(10), rev.TutorID)
	require.Equal(t, 4.0, avg)
}

func TestCreateReviewValidation(t *testing.T) {
	slots := newFakeSlots()
	slots.addCompletedSession(1, 10, 100)

	uc := NewCreateReview(slots, newFakeReviews(), nil)
	ctx := context.Background()

	in := CreateReviewInput{StudentID: 100, SlotID: 1, Rating: 0, Comment: "clear and patient teaching"}
	_, _, err := uc.Execute(ctx, in)
	require.True(t, httperr.IsBusiness(err, "invalid_rating"))

	in.Rating = 4
	in.Comment = "too short"
	_, _, err = uc.Execute(ctx, in)
	require.True(t, httperr.IsBusiness(err, "comment_too_short"))

	in.Comment = "clear and patient teaching"
	in.SlotID = 999
	_, _, err = uc.Execute(ctx, in)
	require.True(t, httperr.IsBusiness(err, "slot_not_found"))
}

func TestCreateReviewRequiresCompletedSession(t *testing.T) {
	for _, s := range []booking.Status{
		booking.StatusPending,
		booking.StatusConfirmed,
		booking.StatusCancelled,
		booking.StatusNoShow,
	} {
		slots := newFakeSlots()
		slots.addSession(1, 10, 100, s)

		uc := NewCreateReview(slots, newFakeReviews(), nil)
		_, _, err := uc.Execute(context.Background(), CreateReviewInput{
			StudentID: 100,
			SlotID:    1,
			Rating:    5,
			Comment:   "clear and patient teaching",
		})
		require.True(t, httperr.IsBusiness(err, "review_not_allowed"), "status %s", s)
	}
}

func TestCreateReviewDuplicate(t *testing.T) {
	slots := newFakeSlots()
	slots.addCompletedSession(1, 10, 100)
	slots.addCompletedSession(2, 10, 100)
	reviews := newFakeReviews()

	uc := NewCreateReview(slots, reviews, nil)
	ctx := context.Background()

	_, _, err := uc.Execute(ctx, CreateReviewInput{
		StudentID: 100, SlotID: 1, Rating: 5, Comment: "clear and patient teaching",
	})
	require.NoError(t, err)

	// One review per (student, tutor) pair, even via a second session.
	_, _, err = uc.Execute(ctx, CreateReviewInput{
		StudentID: 100, SlotID: 2, Rating: 3, Comment: "second attempt at a review",
	})
	require.True(t, httperr.IsBusiness(err, "duplicate_review"))
}

func TestCreateReviewAggregatesAverage(t *testing.T) {
	slots := newFakeSlots()
	reviews := newFakeReviews()
	uc := NewCreateReview(slots, reviews, nil)
	ctx := context.Background()

	ratings := []int{5, 4, 3}
	for i, rating := range ratings {
		studentID := uint(100 + i)
		slotID := uint(i + 1)
		slots.addCompletedSession(slotID, 10, studentID)

		_, avg, err := uc.Execute(ctx, CreateReviewInput{
			StudentID: studentID,
			SlotID:    slotID,
			Rating:    rating,
			Comment:   "clear and patient teaching",
		})
		require.NoError(t, err)

		if i == len(ratings)-1 {
			require.Equal(t, 4.0, avg)
		}
	}
}

func TestCanReview(t *testing.T) {
	slots := newFakeSlots()
	slots.addCompletedSession(1, 10, 100)
	slots.addSession(2, 11, 100, booking.StatusPending)
	reviews := newFakeReviews()

	uc := NewCanReview(slots, reviews)
	ctx := context.Background()

	ok, err := uc.Execute(ctx, 100, 1)
	require.NoError(t, err)
	require.True(t, ok)

	// Not completed yet.
	ok, err = uc.Execute(ctx, 100, 2)
	require.NoError(t, err)
	require.False(t, ok)

	// Someone else's session.
	ok, err = uc.Execute(ctx, 200, 1)
	require.NoError(t, err)
	require.False(t, ok)

	// After reviewing, the gate closes.
	create := NewCreateReview(slots, reviews, nil)
	_, _, err = create.Execute(ctx, CreateReviewInput{
		StudentID: 100, SlotID: 1, Rating: 5, Comment: "clear and patient teaching",
	})
	require.NoError(t, err)

	ok, err = uc.Execute(ctx, 100, 1)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestUpdateReview(t *testing.T) {
	slots := newFakeSlots()
	slots.addCompletedSession(1, 10, 100)
	reviews := newFakeReviews()

	create := NewCreateReview(slots, reviews, nil)
	rev, _, err := create.Execute(context.Background(), CreateReviewInput{
		StudentID: 100, SlotID: 1, Rating: 5, Comment: "clear and patient teaching",
	})
	require.NoError(t, err)

	uc := NewUpdateReview(reviews, nil)
	ctx := context.Background()

	rating := 3
	updated, avg, err := uc.Execute(ctx, UpdateReviewInput{
		ReviewID:  rev.ID.String(),
		StudentID: 100,
		Rating:    &rating,
	})
	require.NoError(t, err)
	require.Equal(t, 3, updated.Rating)
	require.Equal(t, 3.0, avg)

	// Only the author can touch it.
	_, _, err = uc.Execute(ctx, UpdateReviewInput{
		ReviewID:  rev.ID.String(),
		StudentID: 200,
		Rating:    &rating,
	})
	require.True(t, httperr.IsBusiness(err, "not_review_author"))

	_, _, err = uc.Execute(ctx, UpdateReviewInput{
		ReviewID:  "missing",
		StudentID: 100,
	})
	require.True(t, httperr.IsBusiness(err, "review_not_found"))

	bad := 9
	_, _, err = uc.Execute(ctx, UpdateReviewInput{
		ReviewID:  rev.ID.String(),
		StudentID: 100,
		Rating:    &bad,
	})
	require.True(t, httperr.IsBusiness(err, "invalid_rating"))
}
