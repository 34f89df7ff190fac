package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/arnavshah/wichtel-api-go/pkg/auth"
	"github.com/arnavshah/wichtel-api-go/pkg/config"
)

func main() {
	config.LoadEnv()

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: keygen <userID>")
		os.Exit(1)
	}

	userID := os.Args[1]
	if strings.Contains(userID, ".") {
		fmt.Fprintln(os.Stderr, "Error: userID must not contain '.'")
		os.Exit(1)
	}

	cfg := config.FromEnv()
	if cfg.MasterSecret == "" {
		fmt.Fprintln(os.Stderr, "Error: API_MASTER_SECRET not found in environment or .env")
		os.Exit(1)
	}

	apiKey := auth.NewSigner(cfg.JWTSecret, cfg.MasterSecret).GenerateKey(userID)
	fmt.Printf("Generated Key for %s:\n%s\n", userID, apiKey)
}
