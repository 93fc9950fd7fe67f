package database

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devsearch-app/backend/errs"
	"github.com/devsearch-app/backend/models"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindAll returns a page of projects ordered by recency with their
// tags preloaded.
func (r *ProjectRepo) FindAll(page, size int) ([]*models.Project, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}

	var projects []*models.Project
	err := r.db.
		Preload("Tags").
		Order("created DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID with owner, tags and reviews.
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.
		Preload("Tags").
		Preload("Owner").
		Preload("Reviews").
		First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("project")
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByOwner returns a page of one profile's projects.
func (r *ProjectRepo) FindByOwner(ownerID uuid.UUID, page, size int) ([]*models.Project, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}

	var projects []*models.Project
	err := r.db.
		Preload("Tags").
		Where("owner_id = ?", ownerID).
		Order("created DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&projects).Error
	return projects, err
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(project *models.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	return r.db.Create(project).Error
}

// Update saves a modified project. Tag associations are managed by
// TagRepo, not overwritten here.
func (r *ProjectRepo) Update(project *models.Project) error {
	return r.db.Omit("Tags", "Reviews", "Owner").Save(project).Error
}

// Delete removes a project and its tag associations.
func (r *ProjectRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewNotFound("project")
			}
			return err
		}
		if err := tx.Model(&project).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return tx.Delete(&project).Error
	})
}

// Search returns a page of projects matching the free-text query
// against the project title, the owner's username (both
// case-insensitive) or an exact tag name. An empty query returns the
// unfiltered page in the same order as FindAll.
func (r *ProjectRepo) Search(query string, page, size int) ([]*models.Project, error) {
	if query == "" {
		return r.FindAll(page, size)
	}
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}

	like := "%" + strings.ToLower(query) + "%"
	var projects []*models.Project
	err := r.db.
		Preload("Tags").
		Joins("JOIN profiles ON profiles.id = projects.owner_id").
		Joins("LEFT JOIN project_tags ON project_tags.project_id = projects.id").
		Joins("LEFT JOIN tags ON tags.id = project_tags.tag_id").
		Where(
			r.db.Where("LOWER(projects.title) LIKE ?", like).
				Or("LOWER(profiles.username) LIKE ?", like).
				Or("tags.name = ?", models.NormalizeTagName(query)),
		).
		Distinct("projects.*").
		Order("projects.created DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&projects).Error
	return projects, err
}
