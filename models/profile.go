package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is a developer's public page plus their account identity.
// Accounts are never hard-deleted; IsActive flips to false instead.
type Profile struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Username     string    `json:"username" db:"username" gorm:"type:varchar(100);not null;uniqueIndex"`
	Email        string    `json:"email" db:"email" gorm:"type:varchar(200);not null;uniqueIndex"`
	FirstName    string    `json:"first_name,omitempty" db:"first_name" gorm:"type:varchar(50)"`
	LastName     string    `json:"last_name,omitempty" db:"last_name" gorm:"type:varchar(50)"`
	PasswordHash string    `json:"-" db:"password_hash" gorm:"type:text;not null"`
	Location     string    `json:"location,omitempty" db:"location" gorm:"type:varchar(200)"`
	ShortIntro   string    `json:"short_intro,omitempty" db:"short_intro" gorm:"type:varchar(200)"`
	Bio          string    `json:"bio,omitempty" db:"bio" gorm:"type:text"`
	ProfileImage string    `json:"profile_image" db:"profile_image" gorm:"type:text;default:'/static/images/user-default.png'"`
	Github       string    `json:"github,omitempty" db:"github" gorm:"type:varchar(200)"`
	X            string    `json:"x,omitempty" db:"x" gorm:"type:varchar(200)"`
	Linkedin     string    `json:"linkedin,omitempty" db:"linkedin" gorm:"type:varchar(200)"`
	Youtube      string    `json:"youtube,omitempty" db:"youtube" gorm:"type:varchar(200)"`
	Website      string    `json:"website,omitempty" db:"website" gorm:"type:varchar(200)"`
	IsVerified   bool      `json:"is_verified" db:"is_verified" gorm:"not null;default:false"`
	IsActive     bool      `json:"-" db:"is_active" gorm:"not null;default:true"`
	IsSuperuser  bool      `json:"-" db:"is_superuser" gorm:"not null;default:false"`
	Created      time.Time `json:"created" db:"created" gorm:"not null;autoCreateTime"`

	Skills   []Skill   `json:"skills,omitempty" gorm:"foreignKey:OwnerID;references:ID;constraint:OnDelete:CASCADE"`
	Projects []Project `json:"projects,omitempty" gorm:"foreignKey:OwnerID;references:ID"`
}

// The default images are kept on disk permanently and never removed
// when a replacement is uploaded.
const (
	DefaultProfileImage = "/static/images/user-default.png"
	DefaultProjectImage = "/static/images/default.jpg"
)
