package model

import (
	"time"
)

// Identity is the authenticated user record the rest of the system reasons
// about. At most one identity is active per session.
type Identity struct {
	ID    string `json:"id" bson:"_id"`
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
}

// Credentials is the stored auth record in the delegated backend. The password
// is kept only as a bcrypt hash.
type Credentials struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	Name         string    `bson:"name"`
	PasswordHash string    `bson:"password_hash"`
	CreatedAt    time.Time `bson:"created_at"`
}

// Profile mirrors the identity into the relational profiles table. Written as
// a second, non-atomic step after the auth record exists.
type Profile struct {
	ID    string `db:"id"`
	Email string `db:"email"`
	Name  string `db:"name"`
}

type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name,omitempty" validate:"omitempty,min=2,max=60"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session is what sign-in and sign-up hand back: the identity plus the signed
// token that lets it survive a reload.
type Session struct {
	Token     string    `json:"token"`
	Identity  Identity  `json:"identity"`
	ExpiresAt time.Time `json:"expires_at"`
}
