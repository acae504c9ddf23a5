package service

import (
	"fmt"
	"regexp"

	"github.com/linkhubhq/linkhub/internal/apperror"
)

// Validation limits shared across services.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 30
	MinPasswordLength = 6
	MaxBioLength      = 160
	MaxTitleLength    = 100
	MaxMessageLength  = 2000
)

var (
	// Usernames are lowercased before validation, so the charset here
	// deliberately has no uppercase range.
	usernameRe = regexp.MustCompile(`^[a-z0-9_]+$`)
	emailRe    = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	linkURLRe  = regexp.MustCompile(`^https?://`)
)

func validateUsername(username string) error {
	if username == "" {
		return apperror.ValidationFailed("username", "username is required")
	}
	if len(username) < MinUsernameLength {
		return apperror.ValidationFailed("username",
			fmt.Sprintf("username must be at least %d characters", MinUsernameLength))
	}
	if len(username) > MaxUsernameLength {
		return apperror.ValidationFailed("username",
			fmt.Sprintf("username must be %d characters or less", MaxUsernameLength))
	}
	if !usernameRe.MatchString(username) {
		return apperror.ValidationFailed("username",
			"username can only contain letters, numbers, and underscores")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return apperror.ValidationFailed("email", "email is required")
	}
	if !emailRe.MatchString(email) {
		return apperror.ValidationFailed("email", "invalid email format")
	}
	return nil
}

func validateLinkURL(url string) error {
	if url == "" {
		return apperror.ValidationFailed("url", "url is required")
	}
	if !linkURLRe.MatchString(url) {
		return apperror.ValidationFailed("url", "url must start with http:// or https://")
	}
	return nil
}
