package models

import "time"

// Post is a top-level post or a reply (ParentID set). UID is the opaque
// public identifier exposed externally instead of the numeric key.
// ReplyCount and LikeCount are denormalized and maintained transactionally by
// the repository layer; they must always equal the number of live child posts
// and live likes respectively.
type Post struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	UID        string    `gorm:"uniqueIndex;not null;size:16" json:"uid"`
	ParentID   *uint     `gorm:"index" json:"-"`
	UserID     uint      `gorm:"not null;index" json:"-"`
	User       User      `gorm:"foreignKey:UserID" json:"poster,omitempty"`
	Body       string    `gorm:"not null" json:"body"`
	ReplyCount int       `gorm:"not null;default:0" json:"reply_count"`
	LikeCount  int       `gorm:"not null;default:0" json:"like_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"-"`
	Deleted    bool      `gorm:"not null;default:false;index" json:"-"`

	// Liked indicates whether the requesting user has an active like on this
	// post; computed at query time, never persisted.
	Liked bool `gorm:"->" json:"liked"`
}
