package seed

import (
	"fmt"
	"log"

	"alumnihub/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumStudents        int
	NumAlumni          int
	JobsPerAlumnus     int
	ApplicationsPerJob int
	NumPosts           int
	CommentsPerPost    int
	LikesPerPost       int
	ShouldClean        bool
	Factory            SeedOptions
}

// Summary counts the rows a Seed run created.
type Summary struct {
	Users        int
	Jobs         int
	Applications int
	Events       int
	Communities  int
	Members      int
	Posts        int
	Comments     int
	Likes        int
}

var communityNames = []string{
	"Software Engineers", "Founders Circle", "Class of 2015", "Data & AI",
	"Finance Network", "Design Guild", "Grad School Applicants", "Bay Area Alumni",
}

// DefaultOptions is a seed sized for local development.
func DefaultOptions() Options {
	return Options{
		NumStudents:        20,
		NumAlumni:          15,
		JobsPerAlumnus:     2,
		ApplicationsPerJob: 3,
		NumPosts:           40,
		CommentsPerPost:    2,
		LikesPerPost:       4,
		Factory:            SeedOptions{SkipBcrypt: true},
	}
}

// Seed populates the database with demo data
func Seed(db *gorm.DB, opts Options) (*Summary, error) {
	log.Printf("Starting database seeding: %d students, %d alumni, %d posts",
		opts.NumStudents, opts.NumAlumni, opts.NumPosts)

	if opts.ShouldClean && !opts.Factory.DryRun {
		if err := clearData(db); err != nil {
			log.Printf("Warning: could not clear existing data: %v", err)
		}
	}

	f := NewFactory(db, opts.Factory)
	sum := &Summary{}

	students, err := createUsers(f, models.UserTypeStudent, opts.NumStudents)
	if err != nil {
		return nil, fmt.Errorf("failed to create students: %w", err)
	}
	alumni, err := createUsers(f, models.UserTypeAlumni, opts.NumAlumni)
	if err != nil {
		return nil, fmt.Errorf("failed to create alumni: %w", err)
	}
	everyone := append(append([]*models.User{}, students...), alumni...)
	sum.Users = len(everyone)

	for _, poster := range alumni {
		for i := 0; i < opts.JobsPerAlumnus; i++ {
			job, err := f.CreateJob(poster)
			if err != nil {
				return nil, fmt.Errorf("failed to create job: %w", err)
			}
			sum.Jobs++
			for _, applicant := range pick(f, everyone, opts.ApplicationsPerJob, poster.ID) {
				if _, err := f.CreateApplication(applicant, job); err != nil {
					return nil, fmt.Errorf("failed to create application: %w", err)
				}
				sum.Applications++
			}
		}
	}

	events, err := f.CreateEvents()
	if err != nil {
		return nil, fmt.Errorf("failed to create events: %w", err)
	}
	sum.Events = len(events)

	var communities []*models.Community
	members := map[uint][]*models.User{}
	if len(alumni) > 0 {
		for i, name := range communityNames {
			creator := alumni[i%len(alumni)]
			c, err := f.CreateCommunity(creator, name)
			if err != nil {
				return nil, fmt.Errorf("failed to create community: %w", err)
			}
			communities = append(communities, c)
			sum.Communities++

			joined := append([]*models.User{creator}, pick(f, everyone, len(everyone)/3, creator.ID)...)
			for _, u := range joined {
				if _, err := f.CreateMembership(u, c); err != nil {
					return nil, fmt.Errorf("failed to create membership: %w", err)
				}
				sum.Members++
			}
			members[c.ID] = joined
		}
	}

	for i := 0; i < opts.NumPosts && len(alumni) > 0; i++ {
		author := alumni[f.rng.Intn(len(alumni))]
		var community *models.Community
		if len(communities) > 0 && f.rng.Intn(2) == 0 {
			candidate := communities[f.rng.Intn(len(communities))]
			if contains(members[candidate.ID], author.ID) {
				community = candidate
			}
		}
		post, err := f.CreatePost(author, community)
		if err != nil {
			return nil, fmt.Errorf("failed to create post: %w", err)
		}
		sum.Posts++

		for j := 0; j < opts.CommentsPerPost; j++ {
			commenter := everyone[f.rng.Intn(len(everyone))]
			if _, err := f.CreateComment(commenter, post); err != nil {
				return nil, fmt.Errorf("failed to create comment: %w", err)
			}
			sum.Comments++
		}
		for _, liker := range pick(f, everyone, opts.LikesPerPost, 0) {
			if _, err := f.CreateLike(liker, post); err != nil {
				return nil, fmt.Errorf("failed to create like: %w", err)
			}
			sum.Likes++
		}
	}

	log.Printf("Database seeding completed: %+v", *sum)
	return sum, nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE likes, comments, activity_posts, community_members, communities, job_applications, jobs, events, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(f *Factory, userType models.UserType, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		u, err := f.CreateUser(userType)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

// pick returns up to n distinct users, skipping excludeID.
func pick(f *Factory, users []*models.User, n int, excludeID uint) []*models.User {
	out := make([]*models.User, 0, n)
	for _, i := range f.rng.Perm(len(users)) {
		if len(out) >= n {
			break
		}
		if users[i].ID == excludeID {
			continue
		}
		out = append(out, users[i])
	}
	return out
}

func contains(users []*models.User, id uint) bool {
	for _, u := range users {
		if u.ID == id {
			return true
		}
	}
	return false
}
