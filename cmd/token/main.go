// Command token mints a bearer token for a member, signed with JWT_SECRET.
//
//	go run ./cmd/token -member alice
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/config"
)

func main() {
	member := flag.String("member", "", "member id to embed in the token")
	flag.Parse()

	if *member == "" {
		fmt.Fprintln(os.Stderr, "usage: token -member <id>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	token, err := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration).Generate(*member)
	if err != nil {
		slog.Error("Failed to mint token", "error", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
