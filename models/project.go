package models

import (
	"time"

	"github.com/google/uuid"
)

// Project is a showcased piece of work owned by one profile.
// VoteTotal and VoteRatio are aggregates recomputed from reviews on
// every review mutation, never adjusted incrementally.
type Project struct {
	ID            uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title         string    `json:"title" db:"title" gorm:"type:text;not null;index"`
	Description   string    `json:"description,omitempty" db:"description" gorm:"type:text"`
	FeaturedImage string    `json:"featured_image" db:"featured_image" gorm:"type:text;default:'/static/images/default.jpg'"`
	DemoLink      string    `json:"demo_link,omitempty" db:"demo_link" gorm:"type:text"`
	SourceCode    string    `json:"source_code,omitempty" db:"source_code" gorm:"type:text"`
	VoteTotal     int       `json:"vote_total" db:"vote_total" gorm:"not null;default:0"`
	VoteRatio     float64   `json:"vote_ratio" db:"vote_ratio" gorm:"not null;default:0"`
	Created       time.Time `json:"created" db:"created" gorm:"not null;autoCreateTime;index"`
	OwnerID       uuid.UUID `json:"owner_id" db:"owner_id" gorm:"type:uuid;not null;index"`

	Owner   *Profile `json:"owner,omitempty" gorm:"foreignKey:OwnerID;references:ID"`
	Tags    []Tag    `json:"tags,omitempty" gorm:"many2many:project_tags;"`
	Reviews []Review `json:"reviews,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}
