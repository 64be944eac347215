package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"go.uber.org/zap"

	"github.com/ampereshop/storeapi/internal/config"
	"github.com/ampereshop/storeapi/internal/domain"
	"github.com/ampereshop/storeapi/internal/repository"
	"github.com/ampereshop/storeapi/internal/repository/mongodb"
)

func main() {
	if len(os.Args) < 4 {
		fmt.Println("Usage: go run cmd/create-admin/main.go <name> <email> <api-key>")
		fmt.Println("Example: go run cmd/create-admin/main.go \"Store Admin\" admin@example.com \"admin-api-key-12345\"")
		os.Exit(1)
	}

	name := os.Args[1]
	email := os.Args[2]
	apiKey := os.Args[3]

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	ctx := context.Background()

	// Connect to the document store
	db, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to mongo: %v\n", err)
		os.Exit(1)
	}
	defer db.Client().Disconnect(ctx)

	// Hash the API key
	apiKeyHash, err := bcrypt.GenerateFromPassword([]byte(apiKey), 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash API key: %v\n", err)
		os.Exit(1)
	}

	repos := &repository.Repositories{}
	mongodb.Attach(ctx, repos, db, logger)

	user := &domain.User{
		Name:       name,
		Email:      email,
		APIKeyHash: string(apiKeyHash),
		IsAdmin:    true,
		IsActive:   true,
	}

	if err := repos.User.Create(ctx, user); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create admin user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Admin user created successfully!\n\n")
	fmt.Printf("User ID: %s\n", user.ID.String())
	fmt.Printf("Name: %s\n", user.Name)
	fmt.Printf("Email: %s\n", user.Email)
	fmt.Printf("API Key: %s\n", apiKey)
	fmt.Printf("\n⚠️  IMPORTANT: Save this API key securely! You won't be able to see it again.\n")
	fmt.Printf("\nUse this API key in the Authorization header:\n")
	fmt.Printf("Authorization: Bearer %s\n", apiKey)
}
