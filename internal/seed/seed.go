// Package seed populates the database with demo data for local development.
package seed

import (
	"fmt"
	"math/rand"
	"strings"

	"ripple/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much demo data is generated.
type Options struct {
	Users         int
	PostsPerUser  int
	ReactionOdds  float64 // probability a user reacts to any given foreign post
	LikeBias      float64 // probability a generated reaction is a like
	PasswordPlain string  // plaintext password shared by all seeded users
}

// DefaultOptions returns a sensible demo dataset size.
func DefaultOptions() Options {
	return Options{
		Users:         8,
		PostsPerUser:  3,
		ReactionOdds:  0.4,
		LikeBias:      0.7,
		PasswordPlain: "ripple-demo-1",
	}
}

// Run seeds users, posts and reactions. It honors the ledger's invariants:
// at most one reaction per (post, user) pair and never a self-reaction.
func Run(db *gorm.DB, opts Options) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(opts.PasswordPlain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		username := fmt.Sprintf("%s%d", strings.ToLower(gofakeit.Username()), i)
		user := &models.User{
			Username: username,
			Email:    strings.ToLower(fmt.Sprintf("%s@%s", username, gofakeit.DomainName())),
			Password: string(hash),
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("seed user %q: %w", username, err)
		}
		users = append(users, user)
	}

	posts := make([]*models.Post, 0, opts.Users*opts.PostsPerUser)
	for _, user := range users {
		for i := 0; i < opts.PostsPerUser; i++ {
			post := &models.Post{
				Title:    gofakeit.Sentence(4),
				Content:  gofakeit.Paragraph(1, 3, 12, " "),
				AuthorID: user.ID,
			}
			if err := db.Create(post).Error; err != nil {
				return fmt.Errorf("seed post for user %d: %w", user.ID, err)
			}
			posts = append(posts, post)
		}
	}

	for _, post := range posts {
		for _, user := range users {
			if user.ID == post.AuthorID {
				continue
			}
			if rand.Float64() > opts.ReactionOdds {
				continue
			}
			reaction := &models.Reaction{
				PostID:     post.ID,
				UserID:     user.ID,
				IsPositive: rand.Float64() < opts.LikeBias,
			}
			if err := db.Create(reaction).Error; err != nil {
				return fmt.Errorf("seed reaction user=%d post=%d: %w", user.ID, post.ID, err)
			}
		}
	}

	return nil
}
