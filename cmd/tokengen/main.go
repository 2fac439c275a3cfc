// Command tokengen mints a bearer token for the messenger API.
package main

import (
	"flag"
	"fmt"
	"log"

	"messenger/internal/config"
	"messenger/pkg/jwt"
)

func main() {
	userID := flag.Int64("user", 0, "user id to put in the token")
	ttl := flag.Duration("ttl", 0, "token lifetime (defaults to JWT_TTL)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *userID <= 0 {
		log.Fatal("-user must be a positive user id")
	}
	if *ttl <= 0 {
		*ttl = cfg.JWT.TTL
	}

	token, err := jwt.GenerateToken(*userID, cfg.JWT.Secret, cfg.JWT.Issuer, *ttl)
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}
	fmt.Println(token)
}
