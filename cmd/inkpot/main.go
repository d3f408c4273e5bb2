package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"inkpot"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("inkpot: no .env file, using process environment")
	}

	cfg := inkpot.SiteConfig{
		Name:        inkpot.EnvOr("SITE_NAME", "Blog"),
		URL:         inkpot.EnvOr("SITE_URL", "http://localhost:3000"),
		Description: os.Getenv("SITE_DESCRIPTION"),
		Author:      inkpot.EnvOr("SITE_AUTHOR", "admin"),

		Addr:      inkpot.EnvOr("ADDR", ":3000"),
		DataDir:   inkpot.EnvOr("DATA_DIR", "data/content"),
		RemoteDSN: os.Getenv("REMOTE_DSN"),

		AdminUser:         inkpot.EnvOr("ADMIN_USER", "admin"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		SessionSecret:     inkpot.MustEnv("SESSION_SECRET"),
		CookieSecure:      os.Getenv("COOKIE_SECURE") == "true",

		UploadEndpoint: os.Getenv("UPLOAD_ENDPOINT"),

		Seeds: inkpot.SeedPolicy{
			Editable: os.Getenv("SEEDS_EDITABLE") == "true",
			OnDelete: inkpot.SeedDeleteMode(inkpot.EnvOr("SEEDS_ON_DELETE", string(inkpot.SeedDeleteRefuse))),
		},
		EmptyLayouts: inkpot.EmptyLayoutMode(inkpot.EnvOr("EMPTY_LAYOUTS", string(inkpot.EmptyLayoutKeep))),
	}

	// Convenience for local runs: hash a plaintext ADMIN_PASSWORD when no
	// pre-computed hash is configured.
	if cfg.AdminPasswordHash == "" {
		pass := inkpot.MustEnv("ADMIN_PASSWORD")
		hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("inkpot: hash admin password: %v", err)
		}
		cfg.AdminPasswordHash = string(hash)
	}

	app := inkpot.New(cfg, inkpot.DefaultViews(cfg))
	defer app.Close()

	if err := app.Start(); err != nil {
		log.Fatalf("inkpot: %v", err)
	}
}
