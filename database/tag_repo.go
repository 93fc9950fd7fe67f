package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devsearch-app/backend/errs"
	"github.com/devsearch-app/backend/models"
)

type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db}
}

// FindByProject lists the tags attached to a project.
func (r *TagRepo) FindByProject(projectID uuid.UUID) ([]*models.Tag, error) {
	var tags []*models.Tag
	err := r.db.
		Joins("JOIN project_tags ON project_tags.tag_id = tags.id").
		Where("project_tags.project_id = ?", projectID).
		Order("tags.name ASC").
		Find(&tags).Error
	return tags, err
}

// Assign attaches a tag to the caller's project, reusing an existing
// tag row when the normalized name already exists. Only the project
// owner may tag it.
func (r *TagRepo) Assign(projectID, callerID uuid.UUID, name string) (*models.Tag, error) {
	normalized := models.NormalizeTagName(name)
	if normalized == "" {
		return nil, errs.NewValidationError("name", "tag name cannot be empty")
	}

	var tag models.Tag
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, "id = ?", projectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewNotFound("project")
			}
			return err
		}
		if project.OwnerID != callerID {
			return errs.NewForbiddenError("only the project owner can add tags")
		}

		if err := tx.Where("name = ?", normalized).First(&tag).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			tag = models.Tag{ID: uuid.New(), Name: normalized}
			if err := tx.Create(&tag).Error; err != nil {
				return err
			}
		}

		return tx.Model(&project).Association("Tags").Append(&tag)
	})
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// Detach removes the tag from the caller's project and garbage
// collects the tag row once no project references it.
func (r *TagRepo) Detach(projectID, tagID, callerID uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, "id = ?", projectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewNotFound("project")
			}
			return err
		}
		if project.OwnerID != callerID {
			return errs.NewForbiddenError("only the project owner can remove tags")
		}

		var tag models.Tag
		if err := tx.
			Joins("JOIN project_tags ON project_tags.tag_id = tags.id").
			Where("project_tags.project_id = ? AND tags.id = ?", projectID, tagID).
			First(&tag).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewNotFound("tag")
			}
			return err
		}

		if err := tx.Model(&project).Association("Tags").Delete(&tag); err != nil {
			return err
		}

		var remaining int64
		if err := tx.Table("project_tags").Where("tag_id = ?", tagID).Count(&remaining).Error; err != nil {
			return err
		}
		if remaining == 0 {
			return tx.Delete(&models.Tag{}, "id = ?", tagID).Error
		}
		return nil
	})
}
