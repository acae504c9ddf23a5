// Package service contains the business logic layer.
//
// The layering follows the usual three-layer shape:
//
//	Handler (HTTP):     parses requests, writes responses
//	Service (business): validates, enforces rules, orchestrates
//	Repository (data):  reads/writes SQLite
//
// Services take repository interfaces, never concrete types, so tests can
// inject in-memory mocks. Services return apperror values; handlers
// translate them to HTTP status codes.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/linkhubhq/linkhub/internal/apperror"
	"github.com/linkhubhq/linkhub/internal/auth"
	"github.com/linkhubhq/linkhub/internal/model"
	"github.com/linkhubhq/linkhub/internal/repository"
)

// AuthService owns accounts and sessions: signup, login, the current-user
// lookup, and profile updates.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// AuthResult bundles the user and the issued session token so the handler
// can set the cookie and respond in one step.
type AuthResult struct {
	User  *model.User
	Token string
}

// SignupInput is what the signup form submits.
type SignupInput struct {
	Email    string
	Username string
	Password string
	Name     string
}

// Signup validates the input, enforces email/username uniqueness, creates
// the account (plan "free", empty bio and photo) and issues a session.
//
// The username is lowercased before anything else: the public page URL is
// case-insensitive, so "Alice" and "alice" must be the same account.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	in.Name = strings.TrimSpace(in.Name)

	if err := validateEmail(in.Email); err != nil {
		return nil, err
	}
	if err := validateUsername(in.Username); err != nil {
		return nil, err
	}
	if len(in.Password) < MinPasswordLength {
		return nil, apperror.ValidationFailed("password",
			fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}
	if in.Name == "" {
		return nil, apperror.ValidationFailed("name", "name is required")
	}

	// Uniqueness checks up front for friendly messages. The UNIQUE
	// constraints in the store remain the hard backstop.
	if _, err := s.users.GetByUsername(ctx, in.Username); err == nil {
		return nil, apperror.Conflict("username already exists, please choose a different one")
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("checking username %q: %w", in.Username, err)
	}
	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperror.Conflict("email already exists, please use a different email")
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("checking email: %w", err)
	}

	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: hash,
		Name:         in.Name,
		Plan:         model.PlanFree,
	}
	if err := s.users.Create(ctx, user); err != nil {
		s.logger.Error("failed to create user",
			slog.String("username", in.Username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating user: %w", err)
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generating session for user %s: %w", user.ID, err)
	}

	s.logger.Info("user signed up",
		slog.String("userID", user.ID),
		slog.String("username", user.Username),
	)

	return &AuthResult{User: user, Token: token}, nil
}

// Login checks the credentials and issues a 24-hour session.
//
// Unknown email and wrong password return the same Unauthorized message so
// the login form can't be used to probe which emails have accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized("invalid email or password")
		}
		return nil, fmt.Errorf("looking up user by email: %w", err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return nil, apperror.Unauthorized("invalid email or password")
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generating session for user %s: %w", user.ID, err)
	}

	s.logger.Info("user logged in", slog.String("userID", user.ID))

	return &AuthResult{User: user, Token: token}, nil
}

// CurrentUser returns the account behind a validated session.
//
// The middleware already checked the token signature and expiry; this reads
// the database, so profile edits show up immediately without re-login. A
// token whose user has vanished counts as a dead session, not a 404.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized("session is no longer valid")
		}
		return nil, fmt.Errorf("fetching user %s: %w", userID, err)
	}
	return user, nil
}

// ProfileUpdate carries the editable profile fields. Nil means "leave this
// field alone"; a pointer to the empty string clears it (bio and photo can
// legitimately be emptied, so nil and "" must be distinguishable).
type ProfileUpdate struct {
	Name         *string
	Username     *string
	Bio          *string
	ProfilePhoto *string
}

// UpdateProfile merges the patch into the user record, enforcing the same
// username rules as signup plus uniqueness against other accounts.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, patch ProfileUpdate) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.Username != nil {
		username := strings.ToLower(strings.TrimSpace(*patch.Username))
		if err := validateUsername(username); err != nil {
			return nil, err
		}
		if username != user.Username {
			existing, err := s.users.GetByUsername(ctx, username)
			if err == nil && existing.ID != userID {
				return nil, apperror.Conflict("username already exists, please choose a different one")
			}
			if err != nil && !errors.Is(err, apperror.ErrNotFound) {
				return nil, fmt.Errorf("checking username %q: %w", username, err)
			}
			user.Username = username
		}
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, apperror.ValidationFailed("name", "name is required")
		}
		user.Name = name
	}

	if patch.Bio != nil {
		if len(*patch.Bio) > MaxBioLength {
			return nil, apperror.ValidationFailed("bio",
				fmt.Sprintf("bio must be %d characters or less", MaxBioLength))
		}
		user.Bio = *patch.Bio
	}

	if patch.ProfilePhoto != nil {
		user.ProfilePhoto = *patch.ProfilePhoto
	}

	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Error("failed to update profile",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating user %s: %w", userID, err)
	}

	s.logger.Info("profile updated", slog.String("userID", userID))

	return user, nil
}

// GetByUsername is the public profile lookup.
func (s *AuthService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, apperror.ValidationFailed("username", "username is required")
	}
	return s.users.GetByUsername(ctx, username)
}
