// Command userplan moves an account onto a different subscription tier from
// the operator's shell. Billing settlement is out of band; this writes the
// plan id the entitlement evaluator reads.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"arnio/internal/domain"
	"arnio/internal/infra"
	"arnio/internal/sqlinline"
)

func main() {
	var (
		idFlag    string
		emailFlag string
		planFlag  string
	)

	flag.StringVar(&idFlag, "id", "", "user ID to update (UUID)")
	flag.StringVar(&emailFlag, "email", "", "user email to update")
	flag.StringVar(&planFlag, "plan", "", "plan to assign (free, basic, pro, ultraPro)")
	flag.Parse()

	userID := strings.TrimSpace(idFlag)
	email := strings.TrimSpace(emailFlag)

	if userID == "" && email == "" {
		exitWithError(errors.New("either -id or -email must be provided"))
	}
	plan, err := domain.PlanByID(domain.PlanID(strings.TrimSpace(planFlag)))
	if err != nil {
		exitWithError(fmt.Errorf("unsupported plan %q", planFlag))
	}

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("failed to connect database: %w", err))
	}
	defer pool.Close()

	logger := infra.NewLogger("cli").With().Str("cmd", "userplan").Logger()
	runner := infra.NewSQLRunner(pool, logger)

	if userID == "" {
		lookupCtx, cancelLookup := context.WithTimeout(context.Background(), 5*time.Second)
		row := runner.QueryRow(lookupCtx, sqlinline.QSelectUserByEmail, email)
		var (
			hash, name             string
			avatar                 *string
			planID                 string
			settings, usage        []byte
			createdAt, updatedAt   time.Time
			resolvedID, resolvedEm string
		)
		err := row.Scan(&resolvedID, &resolvedEm, &hash, &name, &avatar, &planID, &settings, &usage, &createdAt, &updatedAt)
		cancelLookup()
		if err != nil {
			exitWithError(fmt.Errorf("failed to load user: %w", err))
		}
		userID = resolvedID
	}

	updateCtx, cancelUpdate := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelUpdate()
	row := runner.QueryRow(updateCtx, sqlinline.QUpdateUserPlan, userID, string(plan.ID))

	var (
		updatedID, updatedEmail, updatedName string
		updatedAvatar                        *string
		updatedPlan                          string
		settingsBytes, usageBytes            []byte
		createdAt, updatedAt                 time.Time
	)
	if err := row.Scan(&updatedID, &updatedEmail, &updatedName, &updatedAvatar, &updatedPlan, &settingsBytes, &usageBytes, &createdAt, &updatedAt); err != nil {
		exitWithError(fmt.Errorf("failed to update user plan: %w", err))
	}

	fmt.Printf("User %s (%s) moved to plan %s\n", updatedID, updatedEmail, updatedPlan)
	usage := map[string]any{}
	if len(usageBytes) > 0 && json.Unmarshal(usageBytes, &usage) == nil {
		if n, ok := usage["documentsUploaded"]; ok {
			fmt.Printf("documentsUploaded=%v\n", n)
		}
	}
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
