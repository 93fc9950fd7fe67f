package database

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devsearch-app/backend/errs"
	"github.com/devsearch-app/backend/models"
)

type ProfileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{db}
}

// FindByID returns an active profile by its ID, optionally preloading
// skills.
func (r *ProfileRepo) FindByID(id uuid.UUID, withSkills bool) (*models.Profile, error) {
	stmt := r.db.Where("is_active = ?", true)
	if withSkills {
		stmt = stmt.Preload("Skills")
	}

	var profile models.Profile
	err := stmt.First(&profile, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("profile")
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindByUsernameOrEmail matches either field exactly, for login.
func (r *ProfileRepo) FindByUsernameOrEmail(usernameOrEmail string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.
		Where("is_active = ?", true).
		Where("username = ? OR email = ?", usernameOrEmail, usernameOrEmail).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("profile")
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindByEmail is used by the password reset flow.
func (r *ProfileRepo) FindByEmail(email string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.Where("is_active = ? AND email = ?", true, email).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("profile")
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UsernameTaken reports whether the username is already registered.
func (r *ProfileRepo) UsernameTaken(username string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Profile{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// EmailTaken reports whether the email is already registered.
func (r *ProfileRepo) EmailTaken(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Profile{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// Add inserts a new profile into the database
func (r *ProfileRepo) Add(profile *models.Profile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	return r.db.Create(profile).Error
}

// Update saves a modified profile.
func (r *ProfileRepo) Update(profile *models.Profile) error {
	return r.db.Save(profile).Error
}

// MarkVerified flips the verification flag. Idempotent.
func (r *ProfileRepo) MarkVerified(id uuid.UUID) error {
	return r.db.Model(&models.Profile{}).Where("id = ?", id).Update("is_verified", true).Error
}

// Deactivate soft-deletes the account. Profiles are never removed
// from the table so messages and reviews keep a referent.
func (r *ProfileRepo) Deactivate(id uuid.UUID) error {
	res := r.db.Model(&models.Profile{}).Where("id = ? AND is_active = ?", id, true).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFound("profile")
	}
	return nil
}

// Search returns a page of active profiles. Free text matches the
// username case-insensitively; skill filters by exact skill name.
// An empty query is the plain unfiltered page, ordered by recency.
func (r *ProfileRepo) Search(query, skill string, page, size int) ([]*models.Profile, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}

	stmt := r.db.Model(&models.Profile{}).
		Preload("Skills").
		Where("profiles.is_active = ?", true).
		Order("profiles.created DESC").
		Offset((page - 1) * size).
		Limit(size)

	if query != "" {
		stmt = stmt.Where("LOWER(profiles.username) LIKE ?", "%"+strings.ToLower(query)+"%")
	}
	if skill != "" {
		stmt = stmt.
			Joins("JOIN skills ON skills.owner_id = profiles.id").
			Where("skills.name = ?", skill).
			Distinct("profiles.*")
	}

	var profiles []*models.Profile
	err := stmt.Find(&profiles).Error
	return profiles, err
}
