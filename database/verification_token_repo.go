package database

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devsearch-app/backend/errs"
	"github.com/devsearch-app/backend/models"
)

// DefaultTokenTTL bounds how long a verification link stays valid.
const DefaultTokenTTL = 2 * time.Hour

type VerificationTokenRepo struct {
	db *gorm.DB
}

func NewVerificationTokenRepo(db *gorm.DB) *VerificationTokenRepo {
	return &VerificationTokenRepo{db}
}

// Issue creates a fresh single-use token for the profile. Previously
// issued unused tokens stay valid until they expire.
func (r *VerificationTokenRepo) Issue(profileID uuid.UUID, ttl time.Duration) (*models.VerificationToken, error) {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, err
	}

	token := &models.VerificationToken{
		ID:        uuid.New(),
		ProfileID: profileID,
		Token:     hex.EncodeToString(raw),
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := r.db.Create(token).Error; err != nil {
		return nil, err
	}
	return token, nil
}

// Redeem consumes the token and flips the profile's verified flag,
// exactly once. A replay after consumption fails even when the token
// would otherwise still be inside its validity window.
func (r *VerificationTokenRepo) Redeem(tokenValue string) (*models.VerificationToken, error) {
	var token models.VerificationToken
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("token = ?", tokenValue).First(&token).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewNotFound("verification token")
			}
			return err
		}
		if token.Used() {
			return errs.NewTokenAlreadyUsedError()
		}
		if token.Expired() {
			return errs.NewBadRequestError("verification token expired")
		}

		// Guarded update so two concurrent redemptions cannot both
		// pass the Used check above; only one request flips used_at.
		now := time.Now()
		res := tx.Model(&models.VerificationToken{}).
			Where("id = ? AND used_at IS NULL", token.ID).
			Update("used_at", now)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.NewTokenAlreadyUsedError()
		}
		token.UsedAt = &now
		return tx.Model(&models.Profile{}).
			Where("id = ?", token.ProfileID).
			Update("is_verified", true).Error
	})
	if err != nil {
		return nil, err
	}
	return &token, nil
}
