// Package main provides admin management utilities for AlumniHub.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"alumnihub/internal/cache"
	"alumnihub/internal/config"
	"alumnihub/internal/database"
	"alumnihub/internal/models"

	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  admin promote <user_id>              - Give a user the ADMIN role")
		fmt.Println("  admin demote <user_id> <STUDENT|ALUMNI> - Replace the ADMIN role")
		fmt.Println("  admin list-admins                    - List all admins")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	// Cached profiles carry the role, so drop them after a change.
	cache.InitRedis(cfg.RedisURL)

	command := os.Args[1]

	switch command {
	case "promote":
		if len(os.Args) < 3 {
			fmt.Println("Usage: admin promote <user_id>")
			os.Exit(1)
		}
		setRole(db, os.Args[2], models.UserTypeAdmin)

	case "demote":
		if len(os.Args) < 4 {
			fmt.Println("Usage: admin demote <user_id> <STUDENT|ALUMNI>")
			os.Exit(1)
		}
		role := models.UserType(strings.ToUpper(os.Args[3]))
		if role != models.UserTypeStudent && role != models.UserTypeAlumni {
			fmt.Printf("Invalid role: %s\n", os.Args[3])
			os.Exit(1)
		}
		setRole(db, os.Args[2], role)

	case "list-admins":
		listAdmins(db)

	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

func setRole(db *gorm.DB, userID string, role models.UserType) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fmt.Printf("User with ID %s not found\n", userID)
		} else {
			log.Fatalf("Database error: %v", err)
		}
		os.Exit(1)
	}

	if user.UserType == role {
		fmt.Printf("User %s (ID: %d) is already %s\n", user.FullName, user.ID, role)
		return
	}

	if err := db.Model(&user).Update("user_type", role).Error; err != nil {
		log.Fatalf("Failed to update user: %v", err)
	}
	cache.InvalidateUser(context.Background(), user.ID)

	fmt.Printf("✅ %s (ID: %d) is now %s\n", user.FullName, user.ID, role)
}

func listAdmins(db *gorm.DB) {
	var admins []models.User
	if err := db.Where("user_type = ?", models.UserTypeAdmin).Order("id").Find(&admins).Error; err != nil {
		log.Fatalf("Failed to fetch admins: %v", err)
	}

	if len(admins) == 0 {
		fmt.Println("No admins found in the system")
		return
	}

	fmt.Println("\n📋 Current Admins:")
	fmt.Println("─────────────────────────────────────")
	for _, admin := range admins {
		fmt.Printf("ID: %d | Name: %s | Email: %s\n", admin.ID, admin.FullName, admin.Email)
	}
	fmt.Println("─────────────────────────────────────")
}
