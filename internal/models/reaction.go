package models

import "time"

// Reaction represents a user's current sentiment toward a post.
// At most one row may exist per (post_id, user_id) pair; the unique index
// makes a concurrent double-insert a detectable conflict instead of a
// duplicate row. Absence of a row means the user is neutral on the post,
// so there is no soft delete here: removing a reaction removes the row.
type Reaction struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PostID     uint      `gorm:"not null;uniqueIndex:idx_reactions_post_user" json:"post_id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_reactions_post_user" json:"user_id"`
	IsPositive bool      `gorm:"not null" json:"is_positive"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Polarity is the direction of a reaction: a like or a dislike.
type Polarity bool

const (
	Positive Polarity = true
	Negative Polarity = false
)

// Label returns the user-facing name of the polarity.
func (p Polarity) Label() string {
	if p == Positive {
		return "Like"
	}
	return "Dislike"
}

// ReactionOp is the requested operation on a reaction.
type ReactionOp int

const (
	// ReactionAdd sets the caller's reaction to the requested polarity.
	ReactionAdd ReactionOp = iota
	// ReactionRemove clears the caller's reaction if it has the requested polarity.
	ReactionRemove
)

// ReactionStatus identifies which cell of the transition table an apply
// call landed in.
type ReactionStatus string

const (
	ReactionAdded          ReactionStatus = "added"
	ReactionUpdated        ReactionStatus = "updated"
	ReactionAlreadyAdded   ReactionStatus = "already_added"
	ReactionRemoved        ReactionStatus = "removed"
	ReactionAlreadyRemoved ReactionStatus = "already_removed"
	ReactionNotFound       ReactionStatus = "not_found"
)

// ReactionOutcome is the result of applying a reaction transition.
type ReactionOutcome struct {
	Status  ReactionStatus `json:"status"`
	Message string         `json:"message"`
}
