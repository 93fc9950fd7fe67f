package models

import (
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// Tag is a shared label attached to projects, deduplicated by its
// slug-normalized name. The join table is project_tags.
type Tag struct {
	ID   uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name string    `json:"name" db:"name" gorm:"type:varchar(200);not null;uniqueIndex"`

	Projects []Project `json:"-" gorm:"many2many:project_tags;"`
}

// NormalizeTagName collapses user input into the canonical tag form,
// so "Machine Learning" and "machine-learning" land on the same row.
func NormalizeTagName(name string) string {
	return slug.Make(name)
}
