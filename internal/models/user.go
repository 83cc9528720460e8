// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a registered account in the Ripple application.
// PasswordHash is stored at rest only; it is never serialized into API
// responses.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Name         string    `gorm:"not null" json:"name"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Avatar       string    `json:"avatar,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
