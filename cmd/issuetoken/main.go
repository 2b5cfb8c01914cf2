// Command issuetoken mints an admin bearer token against the configured
// JWT secret, for use against POST /feedback and GET /term/:term/history.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/auth"
	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/config"
)

func main() {
	subject := flag.String("subject", "operator", "identifier recorded in the token's subject claim")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if cfg.Auth.JWTSecret == "" {
		log.Fatal("auth.jwt_secret is not configured; set EIGENSLUR_AUTH_JWT_SECRET")
	}

	jwtService := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.AppName)
	token, err := jwtService.IssueAdminToken(*subject)
	if err != nil {
		log.Fatalf("failed to issue token: %v", err)
	}

	fmt.Println(token)
}
