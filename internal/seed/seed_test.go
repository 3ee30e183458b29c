package seed

import (
	"testing"

	"alumnihub/internal/database"
	"alumnihub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

func smallOptions() Options {
	return Options{
		NumStudents:        4,
		NumAlumni:          3,
		JobsPerAlumnus:     1,
		ApplicationsPerJob: 2,
		NumPosts:           5,
		CommentsPerPost:    1,
		LikesPerPost:       2,
		Factory:            SeedOptions{SkipBcrypt: true, Seed: 7},
	}
}

func count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestSeed_PopulatesEveryTable(t *testing.T) {
	db := newSQLiteDB(t)

	sum, err := Seed(db, smallOptions())
	require.NoError(t, err)

	assert.Equal(t, 7, sum.Users)
	assert.Equal(t, 3, sum.Jobs)
	assert.Equal(t, 6, sum.Applications)
	assert.Equal(t, 4, sum.Events)
	assert.Equal(t, len(communityNames), sum.Communities)
	assert.Equal(t, 5, sum.Posts)
	assert.Equal(t, 5, sum.Comments)
	assert.Equal(t, 10, sum.Likes)

	assert.EqualValues(t, sum.Users, count(t, db, &models.User{}))
	assert.EqualValues(t, sum.Jobs, count(t, db, &models.Job{}))
	assert.EqualValues(t, sum.Applications, count(t, db, &models.JobApplication{}))
	assert.EqualValues(t, sum.Events, count(t, db, &models.Event{}))
	assert.EqualValues(t, sum.Members, count(t, db, &models.CommunityMember{}))
	assert.EqualValues(t, sum.Likes, count(t, db, &models.Like{}))
}

func TestSeed_JobsArePostedByAlumni(t *testing.T) {
	db := newSQLiteDB(t)
	_, err := Seed(db, smallOptions())
	require.NoError(t, err)

	var jobs []models.Job
	require.NoError(t, db.Preload("PostedBy").Find(&jobs).Error)
	require.NotEmpty(t, jobs)
	for _, j := range jobs {
		require.NotNil(t, j.PostedBy)
		assert.Equal(t, models.UserTypeAlumni, j.PostedBy.UserType)
	}

	var selfApplied int64
	require.NoError(t, db.Table("job_applications").
		Joins("JOIN jobs ON jobs.id = job_applications.job_id").
		Where("jobs.posted_by_id = job_applications.user_id").
		Count(&selfApplied).Error)
	assert.Zero(t, selfApplied)
}

func TestSeed_CommunityPostsHaveMemberAuthors(t *testing.T) {
	db := newSQLiteDB(t)
	opts := smallOptions()
	opts.NumPosts = 30
	_, err := Seed(db, opts)
	require.NoError(t, err)

	var orphaned int64
	require.NoError(t, db.Table("activity_posts").
		Where("community_id IS NOT NULL").
		Where("NOT EXISTS (SELECT 1 FROM community_members m WHERE m.community_id = activity_posts.community_id AND m.user_id = activity_posts.author_id)").
		Count(&orphaned).Error)
	assert.Zero(t, orphaned)
}

func TestFactory_DryRunAssignsIDsWithoutWriting(t *testing.T) {
	db := newSQLiteDB(t)
	f := NewFactory(db, SeedOptions{DryRun: true, SkipBcrypt: true, Seed: 1})

	alum, err := f.CreateUser(models.UserTypeAlumni)
	require.NoError(t, err)
	job, err := f.CreateJob(alum)
	require.NoError(t, err)

	assert.NotZero(t, alum.ID)
	assert.NotZero(t, job.ID)
	assert.NotEqual(t, alum.ID, job.ID)
	assert.Equal(t, alum.ID, job.PostedByID)
	assert.Zero(t, count(t, db, &models.User{}))
	assert.Zero(t, count(t, db, &models.Job{}))
}

func TestFactory_UsersShareDemoPassword(t *testing.T) {
	f := NewFactory(nil, SeedOptions{DryRun: true, SkipBcrypt: true, Seed: 3})

	student, err := f.CreateUser(models.UserTypeStudent, func(u *models.User) { u.Email = "fixed@example.com" })
	require.NoError(t, err)
	assert.Equal(t, "fixed@example.com", student.Email)
	assert.Empty(t, student.Company)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(student.Password), []byte(DemoPassword)))

	alum, err := f.CreateUser(models.UserTypeAlumni)
	require.NoError(t, err)
	assert.NotEmpty(t, alum.Company)
	assert.Equal(t, student.Password, alum.Password)
}

func TestFixtureEvents(t *testing.T) {
	events, err := FixtureEvents()
	require.NoError(t, err)
	require.Len(t, events, 4)
	for _, e := range events {
		assert.NotEmpty(t, e.Title)
		assert.NotEmpty(t, e.Location)
		assert.False(t, e.Date.IsZero())
	}
}

func TestParseEvents(t *testing.T) {
	events, err := parseEvents([]byte(`
events:
  - title: " Gala "
    description: Annual dinner
    date: "2026-12-01"
    location: Main Hall
  - title: Talk
    description: Guest lecture
    date: "2026-11-05T18:30:00Z"
    location: Room 4
`))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Gala", events[0].Title)
	assert.Equal(t, 2026, events[0].Date.Year())
	assert.Equal(t, 18, events[1].Date.Hour())

	_, err = parseEvents([]byte("events:\n  - title: Bad\n    date: \"next tuesday\"\n"))
	assert.Error(t, err)

	_, err = parseEvents([]byte("events: [unterminated"))
	assert.Error(t, err)
}
