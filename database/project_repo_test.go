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

func backdateProject(t *testing.T, db *gorm.DB, id uuid.UUID, created time.Time) {
	t.Helper()
	require.NoError(t, db.Model(&models.Project{}).Where("id = ?", id).Update("created", created).Error)
}

func TestProjectSearchEmptyQueryMatchesListing(t *testing.T) {
	db := newTestDB(t)
	repo := NewProjectRepo(db)

	owner := seedProfile(t, db, "owner")
	base := time.Now().Add(-time.Hour)
	for i, title := range []string{"alpha", "beta", "gamma"} {
		project := seedProject(t, db, owner, title)
		backdateProject(t, db, project.ID, base.Add(time.Duration(i)*time.Minute))
	}

	listed, err := repo.FindAll(1, 10)
	require.NoError(t, err)
	searched, err := repo.Search("", 1, 10)
	require.NoError(t, err)

	require.Len(t, searched, 3)
	require.Len(t, listed, 3)
	for i := range listed {
		assert.Equal(t, listed[i].ID, searched[i].ID)
	}
	assert.Equal(t, "gamma", searched[0].Title)
}

func TestProjectSearchByTitleAndOwner(t *testing.T) {
	db := newTestDB(t)
	repo := NewProjectRepo(db)

	grace := seedProfile(t, db, "grace")
	tom := seedProfile(t, db, "tomcat")
	seedProject(t, db, grace, "Weather Dashboard")
	seedProject(t, db, grace, "CLI toolkit")
	seedProject(t, db, tom, "Dashboard widgets")

	// Title substring, case-insensitive.
	results, err := repo.Search("dashboard", 1, 10)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	// Owner username substring matches too.
	results, err = repo.Search("TOM", 1, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Dashboard widgets", results[0].Title)
}

func TestProjectSearchByTag(t *testing.T) {
	db := newTestDB(t)
	repo := NewProjectRepo(db)
	tags := NewTagRepo(db)

	grace := seedProfile(t, db, "grace")
	tagged := seedProject(t, db, grace, "image service")
	seedProject(t, db, grace, "untagged thing")

	_, err := tags.Assign(tagged.ID, grace.ID, "Machine Learning")
	require.NoError(t, err)

	// Tag search matches the normalized tag name exactly.
	results, err := repo.Search("machine learning", 1, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, tagged.ID, results[0].ID)
	require.Len(t, results[0].Tags, 1)
	assert.Equal(t, "machine-learning", results[0].Tags[0].Name)
}

func TestProjectSearchDeduplicates(t *testing.T) {
	db := newTestDB(t)
	repo := NewProjectRepo(db)
	tags := NewTagRepo(db)

	grace := seedProfile(t, db, "go-fan")
	project := seedProject(t, db, grace, "go profiler")
	_, err := tags.Assign(project.ID, grace.ID, "go")
	require.NoError(t, err)
	_, err = tags.Assign(project.ID, grace.ID, "golang")
	require.NoError(t, err)

	// Matches title, owner and a tag at once; still one row.
	results, err := repo.Search("go", 1, 10)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestProjectDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	projects := NewProjectRepo(db)
	tags := NewTagRepo(db)
	reviews := NewReviewRepo(db)

	grace := seedProfile(t, db, "grace")
	voter := seedProfile(t, db, "voter")
	project := seedProject(t, db, grace, "doomed")

	_, err := tags.Assign(project.ID, grace.ID, "legacy")
	require.NoError(t, err)
	require.NoError(t, reviews.Add(&models.Review{
		ProjectID: project.ID,
		OwnerID:   voter.ID,
		Value:     models.VoteUp,
	}))

	require.NoError(t, projects.Delete(project.ID))

	_, err = projects.FindByID(project.ID)
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))

	var reviewCount, linkCount int64
	require.NoError(t, db.Model(&models.Review{}).Where("project_id = ?", project.ID).Count(&reviewCount).Error)
	require.NoError(t, db.Table("project_tags").Where("project_id = ?", project.ID).Count(&linkCount).Error)
	assert.Zero(t, reviewCount)
	assert.Zero(t, linkCount)
}
