// Package models holds the client-side view of API payloads and the locally
// stored session.
package models

import "time"

// User is the public account projection returned by the API.
type User struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	Address     string    `json:"address,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SignupRequest is the body of POST /signup.
type SignupRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Address     string `json:"address,omitempty"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is the data of a successful signup or login.
type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Session is what the CLI keeps on disk between runs.
type Session struct {
	Token   string    `db:"token"`
	UserID  string    `db:"user_id"`
	Name    string    `db:"name"`
	Email   string    `db:"email"`
	SavedAt time.Time `db:"saved_at"`
}
