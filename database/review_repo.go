package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devsearch-app/backend/errs"
	"github.com/devsearch-app/backend/models"
)

type ReviewRepo struct {
	db *gorm.DB
}

func NewReviewRepo(db *gorm.DB) *ReviewRepo {
	return &ReviewRepo{db}
}

// FindByProject returns a page of reviews for the project with the
// reviewer preloaded for rendering.
func (r *ReviewRepo) FindByProject(projectID uuid.UUID, page, size int) ([]*models.Review, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}

	var reviews []*models.Review
	err := r.db.
		Preload("Owner").
		Where("project_id = ?", projectID).
		Order("created DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&reviews).Error
	return reviews, err
}

// FindOwned returns the review only when it belongs to ownerID.
func (r *ReviewRepo) FindOwned(id, ownerID uuid.UUID) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("review")
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// Add records a vote. A profile cannot vote on its own project, and a
// second vote on the same project is rejected rather than replacing
// the first. Vote aggregates are recomputed in the same transaction.
func (r *ReviewRepo) Add(review *models.Review) error {
	if !models.ValidVote(review.Value) {
		return errs.NewValidationError("value", "value must be 'up' or 'down'")
	}
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, "id = ?", review.ProjectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewNotFound("project")
			}
			return err
		}
		if project.OwnerID == review.OwnerID {
			return errs.NewSelfReviewError()
		}

		var existing int64
		if err := tx.Model(&models.Review{}).
			Where("project_id = ? AND owner_id = ?", review.ProjectID, review.OwnerID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return errs.NewDuplicateReviewError()
		}

		if err := tx.Create(review).Error; err != nil {
			return err
		}
		return recomputeVotes(tx, review.ProjectID)
	})
}

// Update changes the body or vote value of the caller's review and
// recomputes the project aggregates.
func (r *ReviewRepo) Update(review *models.Review) error {
	if !models.ValidVote(review.Value) {
		return errs.NewValidationError("value", "value must be 'up' or 'down'")
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(review).Error; err != nil {
			return err
		}
		return recomputeVotes(tx, review.ProjectID)
	})
}

// Delete removes the caller's review and recomputes the aggregates.
func (r *ReviewRepo) Delete(id, ownerID uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.Where("id = ? AND owner_id = ?", id, ownerID).First(&review).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewNotFound("review")
			}
			return err
		}
		if err := tx.Delete(&review).Error; err != nil {
			return err
		}
		return recomputeVotes(tx, review.ProjectID)
	})
}

// recomputeVotes derives VoteTotal and VoteRatio from the review rows
// inside the caller's transaction. Ratio is up votes over total as a
// percentage, zero when the project has no reviews.
func recomputeVotes(tx *gorm.DB, projectID uuid.UUID) error {
	var total, up int64
	if err := tx.Model(&models.Review{}).Where("project_id = ?", projectID).Count(&total).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.Review{}).
		Where("project_id = ? AND value = ?", projectID, models.VoteUp).
		Count(&up).Error; err != nil {
		return err
	}

	ratio := 0.0
	if total > 0 {
		ratio = float64(up) / float64(total) * 100
	}
	return tx.Model(&models.Project{}).Where("id = ?", projectID).
		Updates(map[string]interface{}{"vote_total": total, "vote_ratio": ratio}).Error
}
