// Command migrate applies the embedded schema migrations and exits.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/joho/godotenv"

	"arnio/internal/infra"
)

func main() {
	down := flag.Bool("down", false, "roll back one migration instead of applying all")
	flag.Parse()

	_ = godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	if *down {
		m, err := infra.NewMigrator(dbURL)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer m.Close()
		if err := m.Steps(-1); err != nil && err != migrate.ErrNoChange {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println("rolled back one migration")
		return
	}

	if err := infra.RunMigrations(dbURL); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println("migrations applied")
}
