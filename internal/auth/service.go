package auth

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/singerjob/singerjob/internal/domain/user"
	"github.com/singerjob/singerjob/internal/security"
	"github.com/singerjob/singerjob/internal/store"
)

// ErrInvalidCredentials deliberately covers both "no such email" and
// "wrong password" so the login path never leaks which one happened.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidationError carries a field-keyed message map, produced before
// any store I/O and surfaced verbatim to the caller.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))

	for k := range e.Fields {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return "validation failed: " + strings.Join(keys, ", ")
}

type Options struct {
	// EmailUniqueAcrossTypes extends the duplicate-email check beyond
	// the target variant's collection to every collection.
	EmailUniqueAcrossTypes bool
}

// Service owns the account collections and the device session record.
type Service struct {
	store store.Store
	opts  Options

	// serializes read-modify-writes of the users:<type> collections
	// so concurrent registers cannot both pass the duplicate check or
	// clobber each other's append
	mu sync.Mutex
}

func NewService(s store.Store, opts Options) *Service {
	return &Service{store: s, opts: opts}
}

// Register validates, hashes the password, assigns an id and appends
// the record to its variant's collection. The returned user never
// carries the hash.
func (s *Service) Register(ctx context.Context, req user.RegisterRequest) (user.User, error) {
	if verr := validateRegister(req); verr != nil {
		return user.User{}, verr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	scanTypes := []user.UserType{req.UserType}

	if s.opts.EmailUniqueAcrossTypes {
		scanTypes = user.AllTypes()
	}

	for _, t := range scanTypes {
		users, _, err := store.Load[[]user.Stored](ctx, s.store, store.UsersKey(t))

		if err != nil {
			return user.User{}, fmt.Errorf("register: %w", err)
		}

		for _, existing := range users {
			// exact, case-sensitive match per current policy
			if existing.Email == req.Email {
				return user.User{}, &ValidationError{Fields: map[string]string{
					"email": "email is already registered",
				}}
			}
		}
	}

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		return user.User{}, fmt.Errorf("register: %w", err)
	}

	now := time.Now().UTC()

	u := user.User{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Email:       req.Email,
		UserType:    req.UserType,
		CreatedAt:   now,
		UpdatedAt:   now,
		ArtType:     req.ArtType,
		Location:    req.Location,
		Bio:         req.Bio,
		Skills:      req.Skills,
		Experience:  req.Experience,
		SocialLinks: req.SocialLinks,
	}

	key := store.UsersKey(req.UserType)

	users, _, err := store.Load[[]user.Stored](ctx, s.store, key)

	if err != nil {
		return user.User{}, fmt.Errorf("register: %w", err)
	}

	rec := user.ToStored(u)
	rec.PasswordHash = hash

	users = append(users, rec)

	if err := store.Save(ctx, s.store, key, users); err != nil {
		return user.User{}, fmt.Errorf("register: %w", err)
	}

	return u, nil
}

// Login scans every variant's collection for the email, checks the
// password and persists the matched record as the current session.
func (s *Service) Login(ctx context.Context, email, password string) (user.User, error) {
	for _, t := range user.AllTypes() {
		users, _, err := store.Load[[]user.Stored](ctx, s.store, store.UsersKey(t))

		if err != nil {
			return user.User{}, fmt.Errorf("login: %w", err)
		}

		for _, rec := range users {
			if rec.Email != email {
				continue
			}

			if err := security.CheckPassword(rec.PasswordHash, password); err != nil {
				return user.User{}, ErrInvalidCredentials
			}

			u := rec.Record()

			if err := store.Save(ctx, s.store, store.KeySession, rec); err != nil {
				return user.User{}, fmt.Errorf("login: %w", err)
			}

			u.PasswordHash = ""
			return u, nil
		}
	}

	return user.User{}, ErrInvalidCredentials
}

// Logout removes the session record. Removing an absent session is a
// no-op; logging out twice succeeds.
func (s *Service) Logout(ctx context.Context) error {
	return s.store.Remove(ctx, store.KeySession)
}

// CurrentSession returns the logged-in user, or found=false when no
// session exists. Absence is not an error.
func (s *Service) CurrentSession(ctx context.Context) (user.User, bool, error) {
	rec, found, err := store.Load[user.Stored](ctx, s.store, store.KeySession)

	if err != nil {
		return user.User{}, false, fmt.Errorf("session: %w", err)
	}

	if !found {
		return user.User{}, false, nil
	}

	u := rec.Record()
	u.PasswordHash = ""

	return u, true, nil
}

// UpdateProfile rewrites the profile fields of the identified user in
// its collection, and refreshes the session record when it is the
// same user.
func (s *Service) UpdateProfile(ctx context.Context, id string, t user.UserType, req user.UpdateProfileRequest) (user.User, error) {
	if err := t.Valid(); err != nil {
		return user.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := store.UsersKey(t)

	users, _, err := store.Load[[]user.Stored](ctx, s.store, key)

	if err != nil {
		return user.User{}, fmt.Errorf("update profile: %w", err)
	}

	idx := -1

	for i, rec := range users {
		if rec.ID == id {
			idx = i
			break
		}
	}

	if idx == -1 {
		return user.User{}, user.ErrNotFound
	}

	rec := users[idx]
	rec.Name = req.Name
	rec.ArtType = req.ArtType
	rec.Location = req.Location
	rec.Bio = req.Bio
	rec.Skills = req.Skills
	rec.Experience = req.Experience
	rec.SocialLinks = req.SocialLinks
	rec.ProfileImage = req.ProfileImage
	rec.UpdatedAt = time.Now().UTC()
	users[idx] = rec

	if err := store.Save(ctx, s.store, key, users); err != nil {
		return user.User{}, fmt.Errorf("update profile: %w", err)
	}

	session, found, err := store.Load[user.Stored](ctx, s.store, store.KeySession)

	if err == nil && found && session.ID == id {
		if err := store.Save(ctx, s.store, store.KeySession, rec); err != nil {
			return user.User{}, fmt.Errorf("update profile: %w", err)
		}
	}

	u := rec.Record()
	u.PasswordHash = ""

	return u, nil
}

func validateRegister(req user.RegisterRequest) *ValidationError {
	fields := map[string]string{}

	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "name is required"
	}

	if strings.TrimSpace(req.Email) == "" {
		fields["email"] = "email is required"
	}

	if req.Password == "" {
		fields["password"] = "password is required"
	} else if len(req.Password) < 6 {
		fields["password"] = "password must be at least 6 characters"
	}

	if req.UserType == "" {
		fields["userType"] = "userType is required"
	} else if err := req.UserType.Valid(); err != nil {
		fields["userType"] = "userType must be artist or businessman"
	}

	if req.Experience < 0 {
		fields["experience"] = "experience cannot be negative"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	return nil
}
