package models

import (
	"time"

	"github.com/google/uuid"
)

// Review vote values.
const (
	VoteUp   = "up"
	VoteDown = "down"
)

// Review is a single profile's vote plus optional comment on a
// project. One review per (project, owner); owners cannot review
// their own projects.
type Review struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Body      string    `json:"body,omitempty" db:"body" gorm:"type:text"`
	Value     string    `json:"value" db:"value" gorm:"type:varchar(10);not null;default:'up'"`
	Created   time.Time `json:"created" db:"created" gorm:"not null;autoCreateTime"`
	OwnerID   uuid.UUID `json:"owner_id" db:"owner_id" gorm:"type:uuid;not null;uniqueIndex:idx_review_project_owner"`
	ProjectID uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_review_project_owner;constraint:OnDelete:CASCADE"`

	Owner   *Profile `json:"owner,omitempty" gorm:"foreignKey:OwnerID;references:ID"`
	Project *Project `json:"-" gorm:"foreignKey:ProjectID;references:ID"`
}

// ValidVote reports whether v is one of the accepted vote values.
func ValidVote(v string) bool {
	return v == VoteUp || v == VoteDown
}
