package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mailam-cse/achievers-portal/internal/app/forms"
	"github.com/mailam-cse/achievers-portal/internal/app/models"
	"github.com/mailam-cse/achievers-portal/internal/pkg/apperrors"
)

// ContactService handles the public contact form and the staff inbox
type ContactService struct {
	contacts ContactStore
	logger   zerolog.Logger
}

// NewContactService creates a new ContactService
func NewContactService(contacts ContactStore, logger zerolog.Logger) *ContactService {
	return &ContactService{contacts: contacts, logger: logger}
}

// Submit validates and stores an inbound contact message
func (s *ContactService) Submit(ctx context.Context, form *forms.ContactForm) error {
	if fieldErrs := form.Validate(); len(fieldErrs) > 0 {
		return apperrors.NewValidationError(fieldErrs)
	}

	message := &models.ContactMessage{
		Name:    form.Name,
		Email:   form.Email,
		Subject: form.Subject,
		Message: form.Message,
	}
	if err := s.contacts.Create(ctx, message); err != nil {
		return fmt.Errorf("error storing contact message: %w", err)
	}

	s.logger.Info().Int64("messageID", message.ID).Msg("Contact message received")
	return nil
}

// Inbox returns all contact messages, newest first
func (s *ContactService) Inbox(ctx context.Context) ([]*models.ContactMessage, error) {
	return s.contacts.List(ctx)
}

// MarkRead flips the read flag on the matched messages and returns the count
func (s *ContactService) MarkRead(ctx context.Context, ids []int64, read bool) (int64, error) {
	count, err := s.contacts.SetRead(ctx, ids, read)
	if err != nil {
		return 0, err
	}
	s.logger.Info().Int64("count", count).Bool("read", read).Msg("Contact messages updated")
	return count, nil
}
