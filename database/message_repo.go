package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devsearch-app/backend/errs"
	"github.com/devsearch-app/backend/models"
)

type MessageRepo struct {
	db *gorm.DB
}

func NewMessageRepo(db *gorm.DB) *MessageRepo {
	return &MessageRepo{db}
}

// Send persists a new unread message. The recipient must be an
// existing active profile; the sender may be nil for messages from
// the public contact form.
func (r *MessageRepo) Send(message *models.Message) error {
	if message.RecipientID == nil {
		return errs.NewValidationError("recipient_id", "recipient is required")
	}
	if message.Body == "" {
		return errs.NewValidationError("body", "body is required")
	}
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	message.IsRead = false

	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Profile{}).
			Where("id = ? AND is_active = ?", *message.RecipientID, true).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewNotFound("recipient")
		}
		return tx.Create(message).Error
	})
}

// UnreadCount is always derived from the read flag, never cached.
func (r *MessageRepo) UnreadCount(recipientID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error
	return count, err
}

// Inbox lists received messages, unread first, oldest first within
// each group.
func (r *MessageRepo) Inbox(recipientID uuid.UUID) ([]*models.Message, error) {
	var messages []*models.Message
	err := r.db.
		Where("recipient_id = ?", recipientID).
		Order("is_read ASC, created ASC").
		Find(&messages).Error
	return messages, err
}

// Sent lists messages the profile has sent.
func (r *MessageRepo) Sent(senderID uuid.UUID) ([]*models.Message, error) {
	var messages []*models.Message
	err := r.db.
		Where("sender_id = ?", senderID).
		Order("created DESC").
		Find(&messages).Error
	return messages, err
}

// Open returns the message to its sender or recipient. Opening marks
// the message read only when the reader is the recipient. Anyone else
// gets Forbidden.
func (r *MessageRepo) Open(id, readerID uuid.UUID) (*models.Message, error) {
	var message models.Message
	err := r.db.First(&message, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("message")
	}
	if err != nil {
		return nil, err
	}

	isSender := message.SenderID != nil && *message.SenderID == readerID
	isRecipient := message.RecipientID != nil && *message.RecipientID == readerID
	if !isSender && !isRecipient {
		return nil, errs.NewForbiddenError("message belongs to another profile")
	}

	if isRecipient && !message.IsRead {
		message.IsRead = true
		if err := r.db.Model(&message).Update("is_read", true).Error; err != nil {
			return nil, err
		}
	}
	return &message, nil
}

// Delete drops the caller's side of the message. The row itself is
// only removed once neither participant references it anymore.
func (r *MessageRepo) Delete(id, callerID uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var message models.Message
		if err := tx.First(&message, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewNotFound("message")
			}
			return err
		}

		isSender := message.SenderID != nil && *message.SenderID == callerID
		isRecipient := message.RecipientID != nil && *message.RecipientID == callerID
		if !isSender && !isRecipient {
			return errs.NewForbiddenError("message belongs to another profile")
		}

		updates := map[string]interface{}{}
		if isSender {
			message.SenderID = nil
			updates["sender_id"] = nil
		}
		if isRecipient {
			message.RecipientID = nil
			updates["recipient_id"] = nil
		}

		if message.SenderID == nil && message.RecipientID == nil {
			return tx.Delete(&message).Error
		}
		return tx.Model(&message).Updates(updates).Error
	})
}
