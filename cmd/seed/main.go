// Command seed fills the configured database with demo users, posts and
// reactions. Intended for local development only.
package main

import (
	"flag"
	"log/slog"
	"os"

	"ripple/internal/config"
	"ripple/internal/database"
	"ripple/internal/seed"
)

func main() {
	users := flag.Int("users", 0, "number of users to create (0 = default)")
	postsPerUser := flag.Int("posts", 0, "posts per user (0 = default)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.Env == "production" {
		slog.Error("refusing to seed a production database")
		os.Exit(1)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	opts := seed.DefaultOptions()
	if *users > 0 {
		opts.Users = *users
	}
	if *postsPerUser > 0 {
		opts.PostsPerUser = *postsPerUser
	}

	if err := seed.Run(db, opts); err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}
	slog.Info("seeding complete", "users", opts.Users, "posts_per_user", opts.PostsPerUser)
}
