package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devsearch-app/backend/errs"
	"github.com/devsearch-app/backend/models"
)

func TestVerificationTokenRedeemOnce(t *testing.T) {
	db := newTestDB(t)
	repo := NewVerificationTokenRepo(db)

	profile := seedProfile(t, db, "alice")
	token, err := repo.Issue(profile.ID, 0)
	require.NoError(t, err)
	assert.Len(t, token.Token, 64)

	redeemed, err := repo.Redeem(token.Token)
	require.NoError(t, err)
	assert.True(t, redeemed.Used())

	var got models.Profile
	require.NoError(t, db.First(&got, "id = ?", profile.ID).Error)
	assert.True(t, got.IsVerified)

	// Replaying the link fails even though the token has not expired.
	_, err = repo.Redeem(token.Token)
	require.Error(t, err)
	assert.True(t, errs.IsTokenAlreadyUsed(err))
}

func TestVerificationTokenExpired(t *testing.T) {
	db := newTestDB(t)
	repo := NewVerificationTokenRepo(db)

	profile := seedProfile(t, db, "alice")
	token, err := repo.Issue(profile.ID, time.Nanosecond)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = repo.Redeem(token.Token)
	require.Error(t, err)
	assert.False(t, errs.IsTokenAlreadyUsed(err))

	var got models.Profile
	require.NoError(t, db.First(&got, "id = ?", profile.ID).Error)
	assert.False(t, got.IsVerified, "expired token must not verify the profile")

	// An expired token is still unredeemed, not consumed.
	var stored models.VerificationToken
	require.NoError(t, db.First(&stored, "id = ?", token.ID).Error)
	assert.Nil(t, stored.UsedAt)
}

func TestVerificationTokenUnknown(t *testing.T) {
	db := newTestDB(t)
	repo := NewVerificationTokenRepo(db)

	_, err := repo.Redeem("deadbeef")
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestVerificationTokenOldLinksStayValid(t *testing.T) {
	db := newTestDB(t)
	repo := NewVerificationTokenRepo(db)

	profile := seedProfile(t, db, "alice")
	first, err := repo.Issue(profile.ID, 0)
	require.NoError(t, err)
	second, err := repo.Issue(profile.ID, 0)
	require.NoError(t, err)
	require.NotEqual(t, first.Token, second.Token)

	// Re-requesting an email does not invalidate the earlier link.
	_, err = repo.Redeem(first.Token)
	require.NoError(t, err)
}
