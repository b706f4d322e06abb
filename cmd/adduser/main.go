// cmd/adduser/main.go
// Creates or updates a user in the database.
//
// Usage:
//
//	go run ./cmd/adduser -email admin@racecards.app -name Admin -password testing
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/padraicbc/racecards/config"
	bundb "github.com/padraicbc/racecards/db"
	"github.com/padraicbc/racecards/models"
)

func main() {
	email := flag.String("email", "", "email address (required)")
	name := flag.String("name", "", "display name (required)")
	password := flag.String("password", "", "plain-text password (required)")
	flag.Parse()

	if *email == "" || *name == "" || *password == "" {
		log.Fatal("-email, -name and -password are all required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("bcrypt:", err)
	}

	cfg := config.Load()
	db := bundb.Setup(cfg)
	defer db.Close()

	now := time.Now().UTC()
	user := &models.User{
		Email:       strings.ToLower(strings.TrimSpace(*email)),
		Name:        strings.TrimSpace(*name),
		Password:    string(hash),
		Provider:    "credentials",
		AgeVerified: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err = db.NewInsert().Model(user).
		On("CONFLICT (email) DO UPDATE SET password = EXCLUDED.password, name = EXCLUDED.name, updated_at = EXCLUDED.updated_at").
		Exec(context.Background())
	if err != nil {
		log.Fatal("insert user:", err)
	}

	fmt.Printf("user %q saved\n", user.Email)
}
