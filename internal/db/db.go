package db

import (
	"log"
	"os"

	"inkwell/internal/models"
	"inkwell/internal/utils"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=inkwell port=5432 sslmode=disable"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	err = DB.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Category{},
		&models.Post{},
		&models.Commentary{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	seedAdmin()
}

// seedAdmin creates the first administrator account from ADMIN_EMAIL and
// ADMIN_PASSWORD. Without at least one admin nobody can reach /admin to
// create categories and posts.
func seedAdmin() {
	var count int64
	DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("No admin account exists and ADMIN_EMAIL/ADMIN_PASSWORD are unset, skipping seed")
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		log.Printf("Failed to hash seed admin password: %v", err)
		return
	}

	admin := models.User{
		Username: "admin",
		Email:    email,
		Password: hash,
		Role:     models.RoleAdmin,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("Failed to create seed admin: %v", err)
		return
	}
	DB.Create(&models.Profile{UserID: admin.ID})
	log.Println("Seed admin account created")
}
