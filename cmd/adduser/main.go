// cmd/adduser/main.go
// Creates or updates an admin-panel user in the database.
//
// Usage:
//
//	go run ./cmd/adduser -username vera -password testing -role admin
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mapkadev/mapka/config"
	bundb "github.com/mapkadev/mapka/db"
	"github.com/mapkadev/mapka/models"
)

func main() {
	username := flag.String("username", "", "username (required)")
	password := flag.String("password", "", "plain-text password (required)")
	role := flag.String("role", models.RoleModer, "role: admin or moder")
	flag.Parse()

	if *username == "" || *password == "" {
		log.Fatal("both -username and -password are required")
	}
	if !models.IsStaff(*role) {
		log.Fatalf("unknown role %q", *role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("bcrypt:", err)
	}

	cfg := config.Load()
	db := bundb.Setup(cfg)
	defer db.Close()

	user := &models.User{
		ID:           uuid.New(),
		Username:     *username,
		PasswordHash: string(hash),
		Role:         *role,
	}

	_, err = db.NewInsert().Model(user).
		On("CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash, role = EXCLUDED.role").
		Exec(context.Background())
	if err != nil {
		log.Fatal("insert user:", err)
	}

	fmt.Printf("user %q saved with role %s\n", *username, *role)
}
