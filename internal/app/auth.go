package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/neomorfeo/tourify/internal/catalog"
	"github.com/neomorfeo/tourify/internal/domain"
)

type credential struct {
	user domain.User
	hash []byte
}

// AuthService checks operator credentials against the catalog table and
// keeps the signed-in operator as a single record in the store.
type AuthService struct {
	store       domain.Store
	logger      *slog.Logger
	credentials map[string]credential
	users       []domain.User
}

// NewAuthService hashes the catalog passwords once so plain text is not
// kept around after startup.
func NewAuthService(cat *catalog.Catalog, store domain.Store, logger *slog.Logger) (*AuthService, error) {
	creds := make(map[string]credential, len(cat.Accounts))
	for _, a := range cat.Accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing password for %s: %w", a.Email, err)
		}
		creds[normalizeEmail(a.Email)] = credential{user: a.User, hash: hash}
	}

	return &AuthService{
		store:       store,
		logger:      logger,
		credentials: creds,
		users:       cat.Users(),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Authenticate returns the operator owning the credentials, or
// domain.ErrAuthenticationFailed whichever part was wrong.
func (s *AuthService) Authenticate(email, password string) (domain.User, error) {
	cred, ok := s.credentials[normalizeEmail(email)]
	if !ok {
		return domain.User{}, domain.ErrAuthenticationFailed
	}
	if err := bcrypt.CompareHashAndPassword(cred.hash, []byte(password)); err != nil {
		return domain.User{}, domain.ErrAuthenticationFailed
	}
	return cred.user, nil
}

// Users returns the operator table without credentials.
func (s *AuthService) Users() []domain.User {
	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out
}

// CurrentUser returns the signed-in operator, if any. An unreadable session
// record counts as signed out.
func (s *AuthService) CurrentUser(ctx context.Context) (domain.User, bool) {
	raw, err := s.store.Get(ctx, domain.KeyCurrentUser)
	if err != nil {
		s.logger.ErrorContext(ctx, "reading session", "error", err)
		return domain.User{}, false
	}
	if len(raw) == 0 {
		return domain.User{}, false
	}

	var u domain.User
	if err := json.Unmarshal(raw, &u); err != nil {
		s.logger.WarnContext(ctx, "discarding malformed session", "error", err)
		return domain.User{}, false
	}
	return u, true
}

// SetCurrentUser persists u as the signed-in operator.
func (s *AuthService) SetCurrentUser(ctx context.Context, u domain.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := s.store.Set(ctx, domain.KeyCurrentUser, raw); err != nil {
		return &domain.StorageUnavailableError{Op: "set", Key: domain.KeyCurrentUser, Err: err}
	}
	return nil
}

// Logout clears the session record.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, domain.KeyCurrentUser); err != nil {
		return &domain.StorageUnavailableError{Op: "delete", Key: domain.KeyCurrentUser, Err: err}
	}
	return nil
}

// Login authenticates and, on success, persists the session.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	u, err := s.Authenticate(email, password)
	if err != nil {
		s.logger.InfoContext(ctx, "rejected sign-in")
		return domain.User{}, err
	}
	if err := s.SetCurrentUser(ctx, u); err != nil {
		return domain.User{}, err
	}
	s.logger.InfoContext(ctx, "signed in", "user_id", u.ID)
	return u, nil
}
