// Command issue-session opens a dashboard session for a user and prints its
// bearer token. Useful for local development and smoke tests against the API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/shootdesk/shootdesk-api/internal/config"
	"github.com/shootdesk/shootdesk-api/internal/domain/organization"
	"github.com/shootdesk/shootdesk-api/internal/domain/session"
	"github.com/shootdesk/shootdesk-api/internal/pkg/database"
	"github.com/shootdesk/shootdesk-api/internal/pkg/jwt"
)

func main() {
	userID := flag.String("user", "", "user id")
	orgID := flag.String("org", "", "active organization id (optional)")
	flag.Parse()

	if *userID == "" {
		log.Fatal("-user is required")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := database.NewPostgres(cfg.DatabaseURL, database.DefaultPool)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer database.CloseRedis(redis)

	var store session.Store
	if redis != nil {
		store = session.NewRedisStore(redis)
	}

	orgs := organization.NewRepository(db)
	svc := session.NewService(jwt.NewService(cfg.SessionSecret, cfg.SessionTTL), store, orgs)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	token, sess, err := svc.Issue(ctx, *userID, *orgID)
	if err != nil {
		log.Fatalf("Failed to issue session: %v", err)
	}

	memberships, err := orgs.ListForUser(ctx, *userID)
	if err != nil {
		log.Printf("Failed to list organizations: %v", err)
	}

	fmt.Printf("session:  %s\n", sess.ID)
	fmt.Printf("expires:  %s\n", sess.ExpiresAt.Format(time.RFC3339))
	fmt.Println("--- Organizations ---")
	for _, m := range memberships {
		marker := " "
		if m.OrganizationID == sess.OrganizationID {
			marker = "*"
		}
		fmt.Printf("%s %s (%s) %s\n", marker, m.Name, m.OrganizationID, m.Role)
	}
	fmt.Println("---------------------")
	fmt.Println(token)
}
