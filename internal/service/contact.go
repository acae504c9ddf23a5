package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/linkhubhq/linkhub/internal/apperror"
	"github.com/linkhubhq/linkhub/internal/model"
	"github.com/linkhubhq/linkhub/internal/repository"
)

// ContactService owns the contact-form inbox.
type ContactService struct {
	contacts repository.ContactRepository
	logger   *slog.Logger
}

func NewContactService(contacts repository.ContactRepository, logger *slog.Logger) *ContactService {
	return &ContactService{contacts: contacts, logger: logger}
}

// Submit validates and stores one contact-form message.
func (s *ContactService) Submit(ctx context.Context, name, email, message string) (*model.ContactSubmission, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	message = strings.TrimSpace(message)

	if name == "" {
		return nil, apperror.ValidationFailed("name", "name is required")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if message == "" {
		return nil, apperror.ValidationFailed("message", "message is required")
	}
	if len(message) > MaxMessageLength {
		return nil, apperror.ValidationFailed("message",
			fmt.Sprintf("message must be %d characters or less", MaxMessageLength))
	}

	submission := &model.ContactSubmission{
		Name:    name,
		Email:   email,
		Message: message,
	}
	if err := s.contacts.Create(ctx, submission); err != nil {
		s.logger.Error("failed to store contact submission",
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("storing contact submission: %w", err)
	}

	s.logger.Info("contact submission received",
		slog.Int64("submissionID", submission.ID),
	)

	return submission, nil
}

// List returns every submission, newest first.
func (s *ContactService) List(ctx context.Context) ([]model.ContactSubmission, error) {
	submissions, err := s.contacts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing contact submissions: %w", err)
	}
	return submissions, nil
}
