package models

import "time"

// Like is a soft-deletable edge between a user and a post. Unliking sets
// Deleted instead of removing the row, so the full like history survives.
// At most one row per (user, post) may have Deleted unset at any time; the
// partial unique index uniq_likes_user_post_live (see internal/database)
// enforces this even when two requests race past the application pre-check.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    uint      `gorm:"not null;index:idx_likes_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;index:idx_likes_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
	Deleted   bool      `gorm:"not null;default:false" json:"deleted"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Post Post `gorm:"foreignKey:PostID" json:"-"`
}
