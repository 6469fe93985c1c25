// Command issue-token signs an access token for local development and for
// bootstrapping the first admin. Production tokens come from the identity
// provider, which must share AUTH_JWT_SECRET and AUTH_JWT_ISSUER.
//
// Usage:
//
//	issue-token --user=alice [--admin]
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/heartmarshall/featureboard-backend/internal/auth"
	"github.com/heartmarshall/featureboard-backend/internal/config"
	"github.com/heartmarshall/featureboard-backend/internal/domain"
)

func main() {
	user := flag.String("user", "", "user id to put in the token subject")
	admin := flag.Bool("admin", false, "grant the admin role")
	flag.Parse()

	if *user == "" {
		fmt.Fprintln(os.Stderr, "Usage: issue-token --user=alice [--admin]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	role := domain.UserRoleUser
	if *admin {
		role = domain.UserRoleAdmin
	}

	token, err := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL).
		GenerateAccessToken(*user, role.String())
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}

	fmt.Println(token)
}
