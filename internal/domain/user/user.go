package user

import (
	"errors"
	"fmt"
	"time"
)

// UserType is the account variant discriminator. Every consumption
// site switches over it exhaustively; the default branch surfaces
// ErrUnknownUserType so a third variant is a compile-visible change,
// not a silent string comparison.
type UserType string

const (
	TypeArtist      UserType = "artist"
	TypeBusinessman UserType = "businessman"
)

var ErrUnknownUserType = errors.New("unknown user type")

func (t UserType) Valid() error {
	switch t {
	case TypeArtist, TypeBusinessman:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownUserType, string(t))
	}
}

// AllTypes lists every variant, for operations that scan all per-type
// collections (login does).
func AllTypes() []UserType {
	return []UserType{TypeArtist, TypeBusinessman}
}

var ErrNotFound = errors.New("user not found")

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	UserType     UserType  `json:"userType"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Artist profile fields. Zero-valued for businessman accounts.
	ArtType      string            `json:"artType,omitempty"`
	Location     string            `json:"location,omitempty"`
	Bio          string            `json:"bio,omitempty"`
	Skills       []string          `json:"skills,omitempty"`
	Experience   int               `json:"experience,omitempty"`
	SocialLinks  map[string]string `json:"socialLinks,omitempty"`
	ProfileImage string            `json:"profileImage,omitempty"`
}

// Stored is the persisted shape. Same record, but the hash round-trips
// through the store; API responses marshal User where it never does.
type Stored struct {
	User
	PasswordHash string `json:"passwordHash"`
}

func ToStored(u User) Stored {
	hash := u.PasswordHash
	u.PasswordHash = ""
	return Stored{User: u, PasswordHash: hash}
}

// Record rehydrates the in-memory User including its hash, for
// password checks during login.
func (s Stored) Record() User {
	u := s.User
	u.PasswordHash = s.PasswordHash
	return u
}

type RegisterRequest struct {
	Name     string   `json:"name" binding:"required,min=2,max=120"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=6"`
	UserType UserType `json:"userType" binding:"required,oneof=artist businessman"`

	ArtType     string            `json:"artType" binding:"omitempty,max=80"`
	Location    string            `json:"location" binding:"omitempty,max=120"`
	Bio         string            `json:"bio" binding:"omitempty,max=2000"`
	Skills      []string          `json:"skills" binding:"omitempty,dive,max=60"`
	Experience  int               `json:"experience" binding:"omitempty,min=0"`
	SocialLinks map[string]string `json:"socialLinks" binding:"omitempty"`
}

// a full update payload for the profile; identity fields (email, type,
// password) change through dedicated flows, not here.
type UpdateProfileRequest struct {
	Name         string            `json:"name" binding:"required,min=2,max=120"`
	ArtType      string            `json:"artType" binding:"omitempty,max=80"`
	Location     string            `json:"location" binding:"omitempty,max=120"`
	Bio          string            `json:"bio" binding:"omitempty,max=2000"`
	Skills       []string          `json:"skills" binding:"omitempty,dive,max=60"`
	Experience   int               `json:"experience" binding:"omitempty,min=0"`
	SocialLinks  map[string]string `json:"socialLinks" binding:"omitempty"`
	ProfileImage string            `json:"profileImage" binding:"omitempty,max=500"`
}
