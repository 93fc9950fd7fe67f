package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devsearch-app/backend/errs"
	"github.com/devsearch-app/backend/models"
)

type SkillRepo struct {
	db *gorm.DB
}

func NewSkillRepo(db *gorm.DB) *SkillRepo {
	return &SkillRepo{db}
}

// FindOwned returns the skill only when it belongs to ownerID.
func (r *SkillRepo) FindOwned(id, ownerID uuid.UUID) (*models.Skill, error) {
	var skill models.Skill
	err := r.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&skill).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("skill")
	}
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

// FindAllByOwner lists a profile's skills, detailed ones first.
func (r *SkillRepo) FindAllByOwner(ownerID uuid.UUID) ([]*models.Skill, error) {
	var skills []*models.Skill
	err := r.db.
		Where("owner_id = ?", ownerID).
		Order("description != '' DESC, name ASC").
		Find(&skills).Error
	return skills, err
}

// Add inserts a new skill into the database
func (r *SkillRepo) Add(skill *models.Skill) error {
	if skill.ID == uuid.Nil {
		skill.ID = uuid.New()
	}
	return r.db.Create(skill).Error
}

// Update saves a modified skill.
func (r *SkillRepo) Update(skill *models.Skill) error {
	return r.db.Save(skill).Error
}

// Delete removes the skill if the caller owns it.
func (r *SkillRepo) Delete(id, ownerID uuid.UUID) error {
	res := r.db.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Skill{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFound("skill")
	}
	return nil
}
