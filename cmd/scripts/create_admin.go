package main

import (
	"context"
	"flag"
	"log"

	"github.com/WorkhubHQ/workhub-backend/internal/config"
	"github.com/WorkhubHQ/workhub-backend/internal/models"
	mongorepo "github.com/WorkhubHQ/workhub-backend/internal/repositories/mongodb"
	"github.com/WorkhubHQ/workhub-backend/internal/services"
	mongodb "github.com/WorkhubHQ/workhub-backend/pkg/mongodb"
	"github.com/joho/godotenv"
)

// Seeds an admin account so the penalty and summary endpoints are usable
// on a fresh deployment.
//
//	go run ./cmd/scripts -email admin@example.com -password changeme
func main() {
	email := flag.String("email", "", "admin email")
	password := flag.String("password", "", "admin password")
	firstName := flag.String("first-name", "Admin", "first name")
	lastName := flag.String("last-name", "User", "last name")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Disconnect(context.Background())

	db := mongoClient.Database(cfg.MongoDB.Database)
	authService := services.NewAuthService(mongorepo.NewAdminUserRepository(db), cfg)

	user := &models.AdminUser{
		Email:     *email,
		FirstName: *firstName,
		LastName:  *lastName,
		Role:      "admin",
	}
	if err := authService.Register(context.Background(), user, *password); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	log.Printf("Admin user %s created", *email)
}
