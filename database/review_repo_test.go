package database

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devsearch-app/backend/errs"
	"github.com/devsearch-app/backend/models"
)

func TestReviewAddRejectsOwnProject(t *testing.T) {
	db := newTestDB(t)
	repo := NewReviewRepo(db)

	owner := seedProfile(t, db, "owner")
	project := seedProject(t, db, owner, "portfolio site")

	err := repo.Add(&models.Review{
		ProjectID: project.ID,
		OwnerID:   owner.ID,
		Value:     models.VoteUp,
	})
	require.Error(t, err)
	assert.True(t, errs.IsForbidden(err))
	assert.True(t, errors.Is(err, errs.ErrSelfReview))

	var count int64
	require.NoError(t, db.Model(&models.Review{}).Count(&count).Error)
	assert.Zero(t, count, "rejected vote must not be persisted")
}

func TestReviewAddRejectsSecondVote(t *testing.T) {
	db := newTestDB(t)
	repo := NewReviewRepo(db)

	owner := seedProfile(t, db, "owner")
	voter := seedProfile(t, db, "voter")
	project := seedProject(t, db, owner, "chat app")

	require.NoError(t, repo.Add(&models.Review{
		ProjectID: project.ID,
		OwnerID:   voter.ID,
		Value:     models.VoteUp,
	}))

	err := repo.Add(&models.Review{
		ProjectID: project.ID,
		OwnerID:   voter.ID,
		Value:     models.VoteDown,
	})
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))
	assert.True(t, errors.Is(err, errs.ErrDuplicateReview))

	var apiErr *errs.ApiErr
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)

	// The first vote still stands.
	var count int64
	require.NoError(t, db.Model(&models.Review{}).
		Where("project_id = ?", project.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestReviewAddRejectsInvalidValue(t *testing.T) {
	db := newTestDB(t)
	repo := NewReviewRepo(db)

	owner := seedProfile(t, db, "owner")
	voter := seedProfile(t, db, "voter")
	project := seedProject(t, db, owner, "game")

	err := repo.Add(&models.Review{
		ProjectID: project.ID,
		OwnerID:   voter.ID,
		Value:     "sideways",
	})
	require.Error(t, err)

	var apiErr *errs.ApiErr
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "value", apiErr.Field)
}

func TestReviewUnknownProject(t *testing.T) {
	db := newTestDB(t)
	repo := NewReviewRepo(db)
	voter := seedProfile(t, db, "voter")

	err := repo.Add(&models.Review{
		ProjectID: uuid.New(),
		OwnerID:   voter.ID,
		Value:     models.VoteUp,
	})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestReviewVoteAggregates(t *testing.T) {
	db := newTestDB(t)
	repo := NewReviewRepo(db)

	owner := seedProfile(t, db, "owner")
	project := seedProject(t, db, owner, "api server")

	voters := make([]*models.Profile, 4)
	for i, name := range []string{"ana", "ben", "cam", "dee"} {
		voters[i] = seedProfile(t, db, name)
	}

	votes := []string{models.VoteUp, models.VoteUp, models.VoteUp, models.VoteDown}
	var reviews []*models.Review
	for i, value := range votes {
		review := &models.Review{ProjectID: project.ID, OwnerID: voters[i].ID, Value: value}
		require.NoError(t, repo.Add(review))
		reviews = append(reviews, review)
	}

	var got models.Project
	require.NoError(t, db.First(&got, "id = ?", project.ID).Error)
	assert.EqualValues(t, 4, got.VoteTotal)
	assert.InDelta(t, 75.0, got.VoteRatio, 0.001)

	// Flipping a vote moves the ratio.
	reviews[0].Value = models.VoteDown
	require.NoError(t, repo.Update(reviews[0]))
	require.NoError(t, db.First(&got, "id = ?", project.ID).Error)
	assert.EqualValues(t, 4, got.VoteTotal)
	assert.InDelta(t, 50.0, got.VoteRatio, 0.001)

	// Deleting votes drains the aggregates back to zero.
	for _, review := range reviews {
		require.NoError(t, repo.Delete(review.ID, review.OwnerID))
	}
	require.NoError(t, db.First(&got, "id = ?", project.ID).Error)
	assert.Zero(t, got.VoteTotal)
	assert.Zero(t, got.VoteRatio)
}

func TestReviewDeleteOwnerScoped(t *testing.T) {
	db := newTestDB(t)
	repo := NewReviewRepo(db)

	owner := seedProfile(t, db, "owner")
	voter := seedProfile(t, db, "voter")
	stranger := seedProfile(t, db, "stranger")
	project := seedProject(t, db, owner, "cli tool")

	review := &models.Review{ProjectID: project.ID, OwnerID: voter.ID, Value: models.VoteUp}
	require.NoError(t, repo.Add(review))

	err := repo.Delete(review.ID, stranger.ID)
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))

	require.NoError(t, repo.Delete(review.ID, voter.ID))
}
