package database

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/devsearch-app/backend/errs"
	"github.com/devsearch-app/backend/models"
)

func backdateProfile(t *testing.T, db *gorm.DB, id uuid.UUID, created time.Time) {
	t.Helper()
	require.NoError(t, db.Model(&models.Profile{}).Where("id = ?", id).Update("created", created).Error)
}

func TestProfileSearchEmptyQuery(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepo(db)

	base := time.Now().Add(-time.Hour)
	for i, name := range []string{"ana", "ben", "cam"} {
		profile := seedProfile(t, db, name)
		backdateProfile(t, db, profile.ID, base.Add(time.Duration(i)*time.Minute))
	}

	// An empty query is the plain listing, newest first.
	results, err := repo.Search("", "", 1, 10)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "cam", results[0].Username)
	assert.Equal(t, "ben", results[1].Username)
	assert.Equal(t, "ana", results[2].Username)
}

func TestProfileSearchByUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepo(db)

	seedProfile(t, db, "GopherGrace")
	seedProfile(t, db, "pythonista")
	seedProfile(t, db, "gopher_tom")

	results, err := repo.Search("GOPHER", "", 1, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, p := range results {
		assert.Contains(t, []string{"GopherGrace", "gopher_tom"}, p.Username)
	}
}

func TestProfileSearchBySkill(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepo(db)
	skills := NewSkillRepo(db)

	grace := seedProfile(t, db, "grace")
	tom := seedProfile(t, db, "tom")

	require.NoError(t, skills.Add(&models.Skill{OwnerID: grace.ID, Name: "Go"}))
	require.NoError(t, skills.Add(&models.Skill{OwnerID: grace.ID, Name: "Postgres"}))
	require.NoError(t, skills.Add(&models.Skill{OwnerID: tom.ID, Name: "Rust"}))

	results, err := repo.Search("", "Go", 1, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "grace", results[0].Username)

	// Skill names match exactly, not as substrings.
	results, err = repo.Search("", "G", 1, 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestProfileSearchExcludesDeactivated(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepo(db)

	active := seedProfile(t, db, "active")
	gone := seedProfile(t, db, "gone")
	require.NoError(t, repo.Deactivate(gone.ID))

	results, err := repo.Search("", "", 1, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, active.ID, results[0].ID)

	_, err = repo.FindByID(gone.ID, false)
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))

	// Deactivating twice reports not found.
	err = repo.Deactivate(gone.ID)
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestProfileUniqueness(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepo(db)

	seedProfile(t, db, "alice")

	taken, err := repo.UsernameTaken("alice")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.EmailTaken("alice@example.com")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.UsernameTaken("bob")
	require.NoError(t, err)
	assert.False(t, taken)
}
