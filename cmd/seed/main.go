// seed inserts a verified test user and a small book catalog into the local
// dev database. Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/mderbes/bookvault/internal/infrastructure/postgres"
	"golang.org/x/crypto/bcrypt"
)

const (
	seedEmail    = "seed@test.local"
	seedPassword = "secret1"
)

type bookSpec struct {
	title       string
	author      string
	isbn        string
	date        string
	description string
}

var books = []bookSpec{
	{"The Go Programming Language", "Alan A. A. Donovan", "9780134190440", "10/26/2015", "The reference"},
	{"Designing Data-Intensive Applications", "Martin Kleppmann", "9781449373320", "04/18/2017", "Storage and streams"},
	{"The Pragmatic Programmer", "David Thomas", "9780135957059", "09/13/2019", "20th anniversary edition"},
	{"A Tour of C++", "Bjarne Stroustrup", "9780136816485", "09/24/2022", "Third edition"},
	{"Site Reliability Engineering", "Betsy Beyer", "9781491929124", "04/16/2016", "How Google runs production"},
	{"Database Internals", "Alex Petrov", "9781492040347", "10/01/2019", "Deep dive into storage engines"},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set — run: direnv allow")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	// Upsert verified test user
	var userID string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash, is_verified)
		VALUES ($1, $2, $3, TRUE)
		ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash, updated_at = NOW()
		RETURNING id`,
		uuid.NewString(), seedEmail, string(hash),
	).Scan(&userID)
	if err != nil {
		log.Fatalf("seed user: %v", err)
	}

	inserted := 0
	for _, b := range books {
		_, err := pool.Exec(ctx, `
			INSERT INTO books (id, user_id, title, author, isbn, date, description)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			uuid.NewString(), userID, b.title, b.author, b.isbn, b.date, b.description,
		)
		if err != nil {
			log.Printf("seed book %q: %v", b.title, err)
			continue
		}
		inserted++
	}

	fmt.Printf("seeded user %s (password %q) with %d books\n", seedEmail, seedPassword, inserted)
}
