package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is a direct message between two profiles. Sender may be nil
// for messages submitted through the public contact form. Either side
// can drop their reference; the row is deleted once both are gone.
type Message struct {
	ID          uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name        string     `json:"name,omitempty" db:"name" gorm:"type:varchar(200)"`
	Email       string     `json:"email,omitempty" db:"email" gorm:"type:varchar(200)"`
	Subject     string     `json:"subject,omitempty" db:"subject" gorm:"type:varchar(200)"`
	Body        string     `json:"body" db:"body" gorm:"type:text;not null"`
	IsRead      bool       `json:"is_read" db:"is_read" gorm:"not null;default:false"`
	Created     time.Time  `json:"created" db:"created" gorm:"not null;autoCreateTime"`
	SenderID    *uuid.UUID `json:"sender_id,omitempty" db:"sender_id" gorm:"type:uuid;index"`
	RecipientID *uuid.UUID `json:"recipient_id,omitempty" db:"recipient_id" gorm:"type:uuid;index"`
}
