// Command main runs the database seeder for AlumniHub.
package main

import (
	"flag"
	"log"

	"alumnihub/internal/config"
	"alumnihub/internal/database"
	"alumnihub/internal/seed"
)

func main() {
	defaults := seed.DefaultOptions()

	// Parse command line flags
	numStudents := flag.Int("students", defaults.NumStudents, "Number of students to create")
	numAlumni := flag.Int("alumni", defaults.NumAlumni, "Number of alumni to create")
	jobsPer := flag.Int("jobs", defaults.JobsPerAlumnus, "Jobs posted per alumnus")
	appsPer := flag.Int("applications", defaults.ApplicationsPerJob, "Applications per job")
	numPosts := flag.Int("posts", defaults.NumPosts, "Number of activity posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	realHashes := flag.Bool("bcrypt", false, "Hash the demo password with the default bcrypt cost")
	randSeed := flag.Int64("seed", 0, "Fixed random seed for reproducible data")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d students, %d alumni, %d posts, clean=%v\n", *numStudents, *numAlumni, *numPosts, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatalf("❌ Refusing to seed a production database")
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	opts := defaults
	opts.NumStudents = *numStudents
	opts.NumAlumni = *numAlumni
	opts.JobsPerAlumnus = *jobsPer
	opts.ApplicationsPerJob = *appsPer
	opts.NumPosts = *numPosts
	opts.ShouldClean = *shouldClean
	opts.Factory.SkipBcrypt = !*realHashes
	opts.Factory.Seed = *randSeed

	sum, err := seed.Seed(db, opts)
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Printf("✅ users=%d jobs=%d applications=%d events=%d communities=%d members=%d posts=%d comments=%d likes=%d",
		sum.Users, sum.Jobs, sum.Applications, sum.Events, sum.Communities, sum.Members, sum.Posts, sum.Comments, sum.Likes)
	log.Println("✨ All done! Your database is now populated with test data.")
	log.Printf("📧 All test users have the password: %s", seed.DemoPassword)
}
