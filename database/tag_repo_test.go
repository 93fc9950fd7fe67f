package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devsearch-app/backend/errs"
	"github.com/devsearch-app/backend/models"
)

func TestTagAssignNormalizesAndReuses(t *testing.T) {
	db := newTestDB(t)
	repo := NewTagRepo(db)

	grace := seedProfile(t, db, "grace")
	first := seedProject(t, db, grace, "one")
	second := seedProject(t, db, grace, "two")

	tag, err := repo.Assign(first.ID, grace.ID, "  Machine Learning ")
	require.NoError(t, err)
	assert.Equal(t, "machine-learning", tag.Name)

	// The same conceptual tag on another project reuses the row.
	again, err := repo.Assign(second.ID, grace.ID, "machine learning")
	require.NoError(t, err)
	assert.Equal(t, tag.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestTagAssignOwnerOnly(t *testing.T) {
	db := newTestDB(t)
	repo := NewTagRepo(db)

	grace := seedProfile(t, db, "grace")
	eve := seedProfile(t, db, "eve")
	project := seedProject(t, db, grace, "mine")

	_, err := repo.Assign(project.ID, eve.ID, "stolen")
	require.Error(t, err)
	assert.True(t, errs.IsForbidden(err))

	_, err = repo.Assign(project.ID, grace.ID, "   ")
	require.Error(t, err)
}

func TestTagDetachGarbageCollects(t *testing.T) {
	db := newTestDB(t)
	repo := NewTagRepo(db)

	grace := seedProfile(t, db, "grace")
	first := seedProject(t, db, grace, "one")
	second := seedProject(t, db, grace, "two")

	tag, err := repo.Assign(first.ID, grace.ID, "shared")
	require.NoError(t, err)
	_, err = repo.Assign(second.ID, grace.ID, "shared")
	require.NoError(t, err)

	// Still referenced by the second project, so the row survives.
	require.NoError(t, repo.Detach(first.ID, tag.ID, grace.ID))
	var count int64
	require.NoError(t, db.Model(&models.Tag{}).Where("id = ?", tag.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// Last reference gone, tag row goes with it.
	require.NoError(t, repo.Detach(second.ID, tag.ID, grace.ID))
	require.NoError(t, db.Model(&models.Tag{}).Where("id = ?", tag.ID).Count(&count).Error)
	assert.Zero(t, count)

	tags, err := repo.FindByProject(first.ID)
	require.NoError(t, err)
	assert.Empty(t, tags)
}
