package database

import (
	"gorm.io/gorm"

	"github.com/devsearch-app/backend/models"
)

type Database struct {
	profileRepo           *ProfileRepo
	skillRepo             *SkillRepo
	projectRepo           *ProjectRepo
	tagRepo               *TagRepo
	reviewRepo            *ReviewRepo
	messageRepo           *MessageRepo
	verificationTokenRepo *VerificationTokenRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		profileRepo:           NewProfileRepo(db),
		skillRepo:             NewSkillRepo(db),
		projectRepo:           NewProjectRepo(db),
		tagRepo:               NewTagRepo(db),
		reviewRepo:            NewReviewRepo(db),
		messageRepo:           NewMessageRepo(db),
		verificationTokenRepo: NewVerificationTokenRepo(db),
	}
}

// Migrate creates or updates the relational schema for every entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Profile{},
		&models.Skill{},
		&models.Project{},
		&models.Tag{},
		&models.Review{},
		&models.Message{},
		&models.VerificationToken{},
	)
}

// Accessor methods for each repository

func (d Database) ProfileRepo() *ProfileRepo {
	return d.profileRepo
}

func (d Database) SkillRepo() *SkillRepo {
	return d.skillRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

func (d Database) ReviewRepo() *ReviewRepo {
	return d.reviewRepo
}

func (d Database) MessageRepo() *MessageRepo {
	return d.messageRepo
}

func (d Database) VerificationTokenRepo() *VerificationTokenRepo {
	return d.verificationTokenRepo
}
