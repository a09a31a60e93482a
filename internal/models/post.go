package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a user-authored post. AuthorID is fixed at creation and
// never transfers.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"not null" json:"title"`
	Content  string `gorm:"type:text;not null" json:"content"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	// LikesCount is not persisted; computed at query time from the reactions table
	LikesCount int64 `gorm:"->" json:"-"`
	// DislikesCount is not persisted; computed at query time from the reactions table
	DislikesCount int64          `gorm:"->" json:"-"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// PostWithCounts pairs a post with its derived reaction counts. Read
// responses use this shape so the counts sit beside the post rather than
// inside it.
type PostWithCounts struct {
	Post          *Post `json:"post"`
	LikesCount    int64 `json:"likes_count"`
	DislikesCount int64 `json:"dislikes_count"`
}

// WithCounts lifts the query-time counts into the response shape.
func (p *Post) WithCounts() PostWithCounts {
	return PostWithCounts{
		Post:          p,
		LikesCount:    p.LikesCount,
		DislikesCount: p.DislikesCount,
	}
}
