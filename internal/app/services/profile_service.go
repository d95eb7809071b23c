package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/rs/zerolog"

	"github.com/mailam-cse/achievers-portal/internal/app/forms"
	"github.com/mailam-cse/achievers-portal/internal/app/models"
	"github.com/mailam-cse/achievers-portal/internal/pkg/apperrors"
)

// ProfileService handles viewing and editing the caller's own profile
type ProfileService struct {
	profiles ProfileStore
	storage  FileStore
	logger   zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(profiles ProfileStore, storage FileStore, logger zerolog.Logger) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		storage:  storage,
		logger:   logger,
	}
}

// Get returns the user's profile. A user without one (possible only for
// accounts created outside the registration workflow) gets the placeholder
// profile created on the spot, keeping the one-to-one invariant.
func (s *ProfileService) Get(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	profile = models.PlaceholderProfile(userID)
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("error creating placeholder profile: %w", err)
	}
	s.logger.Info().Int64("userID", userID).Str("rollNumber", profile.RollNumber).Msg("Placeholder profile created")
	return profile, nil
}

// Update applies validated edits to the caller's own profile. Roll number
// uniqueness is re-checked excluding the caller's existing record.
func (s *ProfileService) Update(ctx context.Context, userID int64, form *forms.ProfileForm, avatar *multipart.FileHeader) (*models.StudentProfile, error) {
	if fieldErrs := form.Validate(); len(fieldErrs) > 0 {
		return nil, apperrors.NewValidationError(fieldErrs)
	}

	taken, err := s.profiles.RollNumberExists(ctx, form.RollNumber, userID)
	if err != nil {
		return nil, fmt.Errorf("error checking roll number: %w", err)
	}
	if taken {
		return nil, apperrors.FieldError("roll_number", "This roll number is already registered by another student.")
	}

	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if avatar != nil {
		avatarPath, err := s.storage.SaveFile(avatar, "avatars")
		if err != nil {
			return nil, apperrors.NewCustomError(apperrors.ErrStorage, "could not store the avatar image")
		}
		if profile.Avatar != "" {
			_ = s.storage.DeleteFile(profile.Avatar)
		}
		profile.Avatar = avatarPath
	}

	profile.RollNumber = form.RollNumber
	profile.Department = form.Department
	profile.Year = form.Year
	profile.Phone = form.Phone
	profile.Bio = form.Bio

	if err := s.profiles.Update(ctx, profile); err != nil {
		if errors.Is(err, apperrors.ErrRollNumberTaken) {
			return nil, apperrors.FieldError("roll_number", "This roll number is already registered by another student.")
		}
		return nil, fmt.Errorf("error updating profile: %w", err)
	}
	return profile, nil
}

// AvatarURL resolves the public URL of a profile's avatar, empty when unset
func (s *ProfileService) AvatarURL(p *models.StudentProfile) string {
	if p == nil || p.Avatar == "" || !s.storage.Exists(p.Avatar) {
		return ""
	}
	return s.storage.URL(p.Avatar)
}
