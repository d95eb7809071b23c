package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mailam-cse/achievers-portal/internal/app/forms"
	"github.com/mailam-cse/achievers-portal/internal/app/models"
	"github.com/mailam-cse/achievers-portal/internal/pkg/apperrors"
	pkgauth "github.com/mailam-cse/achievers-portal/internal/pkg/auth"
)

// AuthService handles registration, login and staff provisioning
type AuthService struct {
	users      UserStore
	profiles   ProfileStore
	jwtService *pkgauth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(users UserStore, profiles ProfileStore, jwtService *pkgauth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:      users,
		profiles:   profiles,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates a user and its profile atomically from the signup form.
// With asStaff set the account is provisioned as staff and the profile's
// student flag is cleared (the superuser-only flow).
//
// Uniqueness is pre-checked for friendly field errors, but the database
// constraints remain the authority: a registration that loses a race comes
// back as the same field error.
func (s *AuthService) Register(ctx context.Context, form *forms.RegistrationForm, asStaff bool) (*models.User, error) {
	if fieldErrs := form.Validate(); len(fieldErrs) > 0 {
		return nil, apperrors.NewValidationError(fieldErrs)
	}

	fieldErrs := map[string]string{}

	taken, err := s.users.UsernameExists(ctx, form.Username)
	if err != nil {
		return nil, fmt.Errorf("error checking username: %w", err)
	}
	if taken {
		fieldErrs["username"] = "This username is already taken."
	}

	taken, err = s.users.EmailExists(ctx, form.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if taken {
		fieldErrs["email"] = "This email is already registered."
	}

	taken, err = s.profiles.RollNumberExists(ctx, form.RollNumber, 0)
	if err != nil {
		return nil, fmt.Errorf("error checking roll number: %w", err)
	}
	if taken {
		fieldErrs["roll_number"] = "This roll number is already registered."
	}

	if len(fieldErrs) > 0 {
		return nil, apperrors.NewValidationError(fieldErrs)
	}

	hashed, err := pkgauth.HashPassword(form.Password1)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username:  form.Username,
		Email:     form.Email,
		Password:  hashed,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		IsStaff:   asStaff,
		IsActive:  true,
	}
	profile := &models.StudentProfile{
		RollNumber: form.RollNumber,
		Department: form.Department,
		Year:       form.Year,
		Phone:      form.Phone,
		IsStudent:  !asStaff,
	}

	if err := s.users.CreateWithProfile(ctx, user, profile); err != nil {
		if fieldErr := registrationFieldError(err); fieldErr != nil {
			return nil, fieldErr
		}
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	s.logger.Info().Int64("userID", user.ID).Str("username", user.Username).Bool("staff", asStaff).Msg("User registered")
	return user, nil
}

// registrationFieldError maps uniqueness races to the same field errors the
// pre-checks produce, nil for anything else.
func registrationFieldError(err error) *apperrors.ValidationError {
	switch {
	case errors.Is(err, apperrors.ErrUsernameTaken):
		return apperrors.FieldError("username", "This username is already taken.")
	case errors.Is(err, apperrors.ErrEmailTaken):
		return apperrors.FieldError("email", "This email is already registered.")
	case errors.Is(err, apperrors.ErrRollNumberTaken):
		return apperrors.FieldError("roll_number", "This roll number is already registered.")
	}
	return nil
}

// Authenticate verifies a username/password pair and stamps the login time
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if !pkgauth.CheckPassword(user.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		// Login still succeeds; the stamp is informational.
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to update last login")
	}

	return user, nil
}

// IssueSession creates the signed session token for a logged-in user
func (s *AuthService) IssueSession(user *models.User) (token string, maxAge int, err error) {
	token, err = s.jwtService.GenerateSessionToken(user)
	if err != nil {
		return "", 0, fmt.Errorf("error issuing session: %w", err)
	}
	return token, s.jwtService.SessionMaxAge(), nil
}
