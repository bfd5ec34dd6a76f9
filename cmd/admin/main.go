// Package main provides admin management utilities for Quill.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/models"

	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/admin/main.go promote <user_id>      - Promote user to admin")
		fmt.Println("  go run ./cmd/admin/main.go demote <user_id>       - Demote user from admin")
		fmt.Println("  go run ./cmd/admin/main.go list-admins            - List all admins")
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

	switch os.Args[1] {
	case "promote":
		setAdmin(db, arg(2), true)
	case "demote":
		setAdmin(db, arg(2), false)
	case "list-admins":
		listAdmins(db)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}

func arg(i int) string {
	if len(os.Args) <= i {
		fmt.Println("Missing <user_id> argument")
		os.Exit(1)
	}
	return os.Args[i]
}

func setAdmin(db *gorm.DB, rawID string, admin bool) {
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		log.Fatalf("Invalid user id %q: %v", rawID, err)
	}

	var user models.User
	if err := db.First(&user, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("User %d not found", id)
		}
		log.Fatalf("Failed to load user %d: %v", id, err)
	}

	if err := db.Model(&user).Update("is_admin", admin).Error; err != nil {
		log.Fatalf("Failed to update user %d: %v", id, err)
	}

	verb := "demoted from"
	if admin {
		verb = "promoted to"
	}
	fmt.Printf("User %s (%d) %s admin\n", user.Username, user.ID, verb)
}

func listAdmins(db *gorm.DB) {
	var admins []models.User
	if err := db.Where("is_admin = ?", true).Order("id").Find(&admins).Error; err != nil {
		log.Fatalf("Failed to list admins: %v", err)
	}

	if len(admins) == 0 {
		fmt.Println("No admins found")
		return
	}
	for _, admin := range admins {
		fmt.Printf("%d\t%s\t%s\n", admin.ID, admin.Username, admin.Email)
	}
}
