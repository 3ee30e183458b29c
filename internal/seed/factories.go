// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"alumnihub/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoPassword is the plaintext password of every seeded user.
const DemoPassword = "password123"

var (
	languages = []string{"English", "Spanish", "French", "German", "Mandarin", "Arabic", "Hindi", "Portuguese"}
	skillPool = []string{
		"Go", "TypeScript", "SQL", "Kubernetes", "Product Management", "Data Analysis",
		"Machine Learning", "UX Research", "Public Speaking", "Marketing", "Finance", "Design",
	}
)

// SeedOptions tunes how the Factory builds records.
type SeedOptions struct {
	// DryRun assigns synthetic IDs instead of writing to the database.
	DryRun bool
	// SkipBcrypt stores a cheap hash so large seeds run fast.
	SkipBcrypt bool
	// MaxDays spreads createdAt timestamps over the last N days.
	MaxDays int
	// Seed makes gofakeit output reproducible when non-zero.
	Seed int64
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts SeedOptions
	rng  *rand.Rand
	// synthetic ID counter when running in DryRun mode
	nextID uint
	hash   string
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts SeedOptions) *Factory {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gofakeit.Seed(seed)
	return &Factory{db: db, opts: opts, rng: rand.New(rand.NewSource(seed)), nextID: 1000}
}

func (f *Factory) passwordHash() (string, error) {
	if f.hash != "" {
		return f.hash, nil
	}
	cost := bcrypt.DefaultCost
	if f.opts.SkipBcrypt {
		cost = bcrypt.MinCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), cost)
	if err != nil {
		return "", err
	}
	f.hash = string(b)
	return f.hash, nil
}

func (f *Factory) pastTime() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	back := time.Duration(f.rng.Intn(maxDays))*24*time.Hour +
		time.Duration(f.rng.Intn(24))*time.Hour +
		time.Duration(f.rng.Intn(60))*time.Minute
	return time.Now().Add(-back)
}

func (f *Factory) persist(value any, setID func(uint)) error {
	if f.opts.DryRun {
		f.nextID++
		setID(f.nextID)
		return nil
	}
	return f.db.Create(value).Error
}

// BuildUser constructs an unsaved user of the given type.
func (f *Factory) BuildUser(userType models.UserType) *models.User {
	first, last := gofakeit.FirstName(), gofakeit.LastName()
	year := time.Now().Year() - f.rng.Intn(20)
	if userType == models.UserTypeStudent {
		year = time.Now().Year() + f.rng.Intn(4)
	}

	user := &models.User{
		FullName:       first + " " + last,
		Email:          strings.ToLower(fmt.Sprintf("%s.%s.%d@%s", first, last, gofakeit.Number(100, 9999), gofakeit.DomainName())),
		Phone:          gofakeit.Numerify("+1 ### ### ####"),
		GraduationYear: &year,
		Language:       languages[f.rng.Intn(len(languages))],
		LinkedIn:       fmt.Sprintf("https://www.linkedin.com/in/%s-%s-%d", strings.ToLower(first), strings.ToLower(last), gofakeit.Number(10, 99)),
		Skills:         f.skills(),
		UserType:       userType,
	}
	if userType == models.UserTypeAlumni {
		user.Company = gofakeit.Company()
		user.Location = gofakeit.City()
	}
	return user
}

func (f *Factory) skills() string {
	n := 2 + f.rng.Intn(3)
	picked := make([]string, 0, n)
	for _, i := range f.rng.Perm(len(skillPool))[:n] {
		picked = append(picked, skillPool[i])
	}
	return strings.Join(picked, ", ")
}

// CreateUser constructs and persists a sample user.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(userType models.UserType, overrides ...func(*models.User)) (*models.User, error) {
	user := f.BuildUser(userType)
	hash, err := f.passwordHash()
	if err != nil {
		return nil, err
	}
	user.Password = hash

	for _, override := range overrides {
		override(user)
	}
	if err := f.persist(user, func(id uint) { user.ID = id }); err != nil {
		return nil, err
	}
	return user, nil
}

// CreateJob persists a job posted by the given alumnus.
func (f *Factory) CreateJob(poster *models.User) (*models.Job, error) {
	job := &models.Job{
		Title:       gofakeit.JobTitle(),
		Company:     poster.Company,
		Description: gofakeit.Paragraph(1, 3, 12, " "),
		Location:    gofakeit.City(),
		PostedByID:  poster.ID,
		CreatedAt:   f.pastTime(),
	}
	if job.Company == "" {
		job.Company = gofakeit.Company()
	}
	if err := f.persist(job, func(id uint) { job.ID = id }); err != nil {
		return nil, err
	}
	return job, nil
}

// CreateApplication records that user applied for job.
func (f *Factory) CreateApplication(user *models.User, job *models.Job) (*models.JobApplication, error) {
	app := &models.JobApplication{UserID: user.ID, JobID: job.ID, CreatedAt: f.pastTime()}
	if err := f.persist(app, func(id uint) { app.ID = id }); err != nil {
		return nil, err
	}
	return app, nil
}

// CreateCommunity persists a community created by creator.
func (f *Factory) CreateCommunity(creator *models.User, name string) (*models.Community, error) {
	community := &models.Community{
		Name:        name,
		Description: gofakeit.Sentence(14),
		CreatedByID: creator.ID,
	}
	if err := f.persist(community, func(id uint) { community.ID = id }); err != nil {
		return nil, err
	}
	return community, nil
}

// CreateMembership adds user to community.
func (f *Factory) CreateMembership(user *models.User, community *models.Community) (*models.CommunityMember, error) {
	m := &models.CommunityMember{UserID: user.ID, CommunityID: community.ID}
	if err := f.persist(m, func(id uint) { m.ID = id }); err != nil {
		return nil, err
	}
	return m, nil
}

// CreatePost persists an activity post, optionally inside a community.
func (f *Factory) CreatePost(author *models.User, community *models.Community) (*models.ActivityPost, error) {
	post := &models.ActivityPost{
		Content:   gofakeit.Paragraph(1, 2, 14, " "),
		AuthorID:  author.ID,
		CreatedAt: f.pastTime(),
	}
	if f.rng.Intn(3) == 0 {
		post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID())
	}
	if community != nil {
		id := community.ID
		post.CommunityID = &id
	}
	if err := f.persist(post, func(id uint) { post.ID = id }); err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a comment by author on post.
func (f *Factory) CreateComment(author *models.User, post *models.ActivityPost) (*models.Comment, error) {
	c := &models.Comment{
		Content:  gofakeit.Sentence(10),
		PostID:   post.ID,
		AuthorID: author.ID,
	}
	if err := f.persist(c, func(id uint) { c.ID = id }); err != nil {
		return nil, err
	}
	return c, nil
}

// CreateLike persists a like by user on post.
func (f *Factory) CreateLike(user *models.User, post *models.ActivityPost) (*models.Like, error) {
	l := &models.Like{UserID: user.ID, PostID: post.ID}
	if err := f.persist(l, func(id uint) { l.ID = id }); err != nil {
		return nil, err
	}
	return l, nil
}

// CreateEvents persists the embedded fixture events.
func (f *Factory) CreateEvents() ([]models.Event, error) {
	events, err := FixtureEvents()
	if err != nil {
		return nil, err
	}
	for i := range events {
		e := &events[i]
		if err := f.persist(e, func(id uint) { e.ID = id }); err != nil {
			return nil, err
		}
	}
	if f.opts.DryRun {
		log.Printf("[dry-run] CreateEvents: %d events (no DB write)", len(events))
	}
	return events, nil
}
