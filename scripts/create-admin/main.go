// Command create-admin provisions an admin account directly in the
// database. It is meant for bootstrapping a fresh deployment where no
// admin exists yet to use the admin console.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/alumni-connect-api/pkg/config"
	"github.com/noah-isme/alumni-connect-api/pkg/database"
)

func main() {
	var (
		name     string
		email    string
		password string
	)

	flag.StringVar(&name, "name", "Administrator", "Display name for the admin account")
	flag.StringVar(&email, "email", "", "Login email (required)")
	flag.StringVar(&password, "password", "", "Initial password (required, min 6 characters)")
	flag.Parse()

	if email == "" || len(password) < 6 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var id int64
	err = db.QueryRowxContext(ctx, `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, 'admin')
		ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash, role = 'admin'
		RETURNING id`,
		name, email, string(hash),
	).Scan(&id)
	if err != nil {
		log.Fatalf("failed to create admin: %v", err)
	}

	fmt.Printf("admin account ready: id=%d email=%s\n", id, email)
}
