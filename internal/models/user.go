// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a registered account. Username is the immutable identity
// key; Deleted marks an account as soft-removed without losing history.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"uniqueIndex;not null" json:"username"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	DisplayName string    `json:"display_name"`
	Summary     string    `json:"summary"`
	Password    string    `gorm:"not null" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Deleted     bool      `gorm:"not null;default:false;index" json:"-"`
	Posts       []Post    `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// Identity is the authenticated caller resolved by the auth gate. It is the
// only thing handlers receive about the caller; the password hash never
// travels past the gate.
type Identity struct {
	UserID      uint   `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}
