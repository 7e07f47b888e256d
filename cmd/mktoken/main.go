package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"sakubun/config"

	"github.com/golang-jwt/jwt/v5"
)

// Mints a signed bearer token for local development and admin operations.
// Production tokens come from the identity provider; this tool only covers
// environments where the provider is not wired up.
func main() {
	subject := flag.String("sub", "", "Token subject, the user id (required)")
	role := flag.String("role", "", "Optional role claim, e.g. 'admin'")
	ttl := flag.Duration("ttl", 24*time.Hour, "Token lifetime")
	configPath := flag.String("config", "./config/config.yml", "Path to config file")
	flag.Parse()

	if *subject == "" {
		fmt.Println("Error: -sub is required")
		fmt.Println("\nUsage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if cfg.Auth.JwtSecret == "" {
		fmt.Println("Error: no jwtSecret configured")
		os.Exit(1)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": *subject,
		"iat": now.Unix(),
		"exp": now.Add(*ttl).Unix(),
	}
	if *role != "" {
		claims["role"] = *role
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.Auth.JwtSecret))
	if err != nil {
		fmt.Printf("Error signing token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(signed)
}
