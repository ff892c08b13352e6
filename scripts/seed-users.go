package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/penshort/userlinks/internal/migrations"
	"github.com/penshort/userlinks/internal/repository"
	"github.com/penshort/userlinks/internal/service"
)

type seedUser struct {
	Name     string
	Email    string
	Password string
}

type output struct {
	ID     int64  `json:"id,omitempty"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

var sampleUsers = []seedUser{
	{Name: "John Doe", Email: "john@example.com", Password: "password123"},
	{Name: "Jane Smith", Email: "jane@example.com", Password: "secret456"},
	{Name: "Bob Johnson", Email: "bob@example.com", Password: "qwerty789"},
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		migrate     = flag.Bool("migrate", true, "Apply migrations before seeding")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	if *migrate {
		m, err := migrations.New(*databaseURL, nil)
		if err != nil {
			fmt.Fprintln(os.Stderr, "prepare migrations:", err)
			os.Exit(1)
		}
		err = m.Up()
		_ = m.Close()
		if err != nil {
			fmt.Fprintln(os.Stderr, "apply migrations:", err)
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	svc := service.NewUserService(repo, nil, nil)

	results := make([]output, 0, len(sampleUsers))
	for _, u := range sampleUsers {
		name, email, password := u.Name, u.Email, u.Password
		created, err := svc.Register(ctx, service.UserInput{Name: &name, Email: &email, Password: &password})
		switch {
		case errors.Is(err, service.ErrEmailExists):
			results = append(results, output{Email: email, Status: "exists"})
		case err != nil:
			fmt.Fprintf(os.Stderr, "create %s: %v\n", email, err)
			os.Exit(1)
		default:
			results = append(results, output{ID: created.ID, Email: email, Status: "created"})
		}
	}

	if *format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			fmt.Fprintln(os.Stderr, "encode output:", err)
			os.Exit(1)
		}
		return
	}

	for _, r := range results {
		if r.ID != 0 {
			fmt.Printf("%-8s %-20s id=%d\n", r.Status, r.Email, r.ID)
			continue
		}
		fmt.Printf("%-8s %s\n", r.Status, r.Email)
	}
}
