package repository

import (
	"context"
	"testing"
	"time"

	"alumnihub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobRepository_ListAndFilter(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewJobRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "Alice", "alice@example.com", models.UserTypeAlumni)
	bob := seedUser(t, db, "Bob", "bob@example.com", models.UserTypeAlumni)

	older := &models.Job{Title: "Backend", Company: "Acme", Description: "Go", Location: "Remote", PostedByID: alice.ID, CreatedAt: time.Now().Add(-time.Hour)}
	newer := &models.Job{Title: "Data", Company: "Initech", Description: "SQL", Location: "Paris", PostedByID: bob.ID}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	jobs, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "Data", jobs[0].Title)
	require.NotNil(t, jobs[0].PostedBy)
	assert.Equal(t, "Bob", jobs[0].PostedBy.FullName)

	mine, err := repo.List(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Backend", mine[0].Title)

	_, err = repo.GetByID(ctx, 999)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}

func TestJobRepository_ApplyIsUniquePerUserAndJob(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewJobRepository(db)
	ctx := context.Background()

	poster := seedUser(t, db, "Poster", "poster@example.com", models.UserTypeAlumni)
	student := seedUser(t, db, "Student", "student@example.com", models.UserTypeStudent)
	job := &models.Job{Title: "Intern", Company: "Acme", Description: "d", Location: "l", PostedByID: poster.ID}
	require.NoError(t, repo.Create(ctx, job))

	require.NoError(t, repo.Apply(ctx, &models.JobApplication{UserID: student.ID, JobID: job.ID}))

	applied, err := repo.HasApplied(ctx, student.ID, job.ID)
	require.NoError(t, err)
	assert.True(t, applied)

	err = repo.Apply(ctx, &models.JobApplication{UserID: student.ID, JobID: job.ID})
	require.Error(t, err)
	assert.Equal(t, models.CodeConflict, models.ErrorCode(err))

	var count int64
	db.Model(&models.JobApplication{}).Count(&count)
	assert.Equal(t, int64(1), count)

	ids, err := repo.AppliedJobIDs(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{job.ID}, ids)

	none, err := repo.AppliedJobIDs(ctx, poster.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestJobRepository_ListApplicants(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewJobRepository(db)
	ctx := context.Background()

	poster := seedUser(t, db, "Poster", "poster@example.com", models.UserTypeAlumni)
	first := seedUser(t, db, "First", "first@example.com", models.UserTypeStudent)
	second := seedUser(t, db, "Second", "second@example.com", models.UserTypeStudent)
	job := &models.Job{Title: "Intern", Company: "Acme", Description: "d", Location: "l", PostedByID: poster.ID}
	require.NoError(t, repo.Create(ctx, job))

	require.NoError(t, repo.Apply(ctx, &models.JobApplication{UserID: first.ID, JobID: job.ID}))
	require.NoError(t, repo.Apply(ctx, &models.JobApplication{UserID: second.ID, JobID: job.ID}))

	applicants, err := repo.ListApplicants(ctx, job.ID)
	require.NoError(t, err)
	require.Len(t, applicants, 2)
	assert.Equal(t, "First", applicants[0].FullName)
	assert.Equal(t, "second@example.com", applicants[1].Email)
	assert.False(t, applicants[0].AppliedAt.IsZero())
}
