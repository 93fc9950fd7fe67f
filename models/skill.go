package models

import "github.com/google/uuid"

// Skill belongs to one profile. Skills with a description render as
// detailed cards on the frontend, the rest as plain tags.
type Skill struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name        string    `json:"name" db:"name" gorm:"type:varchar(200);not null;index"`
	Description string    `json:"description,omitempty" db:"description" gorm:"type:text"`
	OwnerID     uuid.UUID `json:"owner_id" db:"owner_id" gorm:"type:uuid;not null;index;constraint:OnDelete:CASCADE"`

	Owner *Profile `json:"-" gorm:"foreignKey:OwnerID;references:ID"`
}
