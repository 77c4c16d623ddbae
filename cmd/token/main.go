package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/example/storefront/internal/auth"
	"github.com/example/storefront/internal/config"
	"github.com/example/storefront/internal/domain/user"
	"github.com/example/storefront/internal/infrastructure/store"
)

// token mints an access token, either for a stored account looked up by
// -email or for an ad-hoc identity with -role.
func main() {
	email := flag.String("email", "", "stored account to mint the token for")
	role := flag.String("role", "", "mint for an ad-hoc identity with this role (user or admin)")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[Token] Invalid configuration: %v", err)
	}
	if err := cfg.ValidateJWT(); err != nil {
		log.Fatalf("[Token] %v", err)
	}
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL)

	var userID, userEmail string
	var userRole auth.Role
	switch {
	case *role != "":
		userID, userEmail, userRole = "cli", *email, auth.ParseRole(*role)
		if userEmail == "" {
			userEmail = "cli@localhost"
		}
	case *email != "":
		docs, closeStore, err := store.Open(ctx, cfg)
		if err != nil {
			log.Fatalf("[Token] Failed to open store: %v", err)
		}
		defer closeStore()

		u, err := user.NewService(docs).FindByEmail(ctx, *email)
		if err != nil {
			log.Fatalf("[Token] %v", err)
		}
		userID, userEmail, userRole = u.ID, u.Email, u.Role
	default:
		log.Fatal("[Token] either -email or -role is required")
	}

	token, expiresAt, err := jwtService.GenerateAccessToken(userID, userEmail, userRole)
	if err != nil {
		log.Fatalf("[Token] Failed to sign token: %v", err)
	}
	log.Printf("[Token] %s token for %s, expires %s", userRole, userEmail, expiresAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Println(token)
}
