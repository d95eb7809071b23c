package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/mailam-cse/achievers-portal/internal/app/models"
	appRepos "github.com/mailam-cse/achievers-portal/internal/app/repositories"
	pkgAuth "github.com/mailam-cse/achievers-portal/internal/pkg/auth"
)

// Default superuser credentials, meant to be changed after first login
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin12345"
	DefaultAdminEmail    = "admin@mailamengg.com"
)

// CreateDefaultData provisions the default superuser account if it does not
// exist yet. The account gets a placeholder profile so the one-profile-per-
// user invariant holds for seeded users too.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	exists, err := userRepo.UsernameExists(ctx, DefaultAdminUsername)
	if err != nil {
		return fmt.Errorf("failed to check for default superuser: %w", err)
	}
	if exists {
		lgr.Debug().Str("username", DefaultAdminUsername).Msg("Default superuser already present")
		return nil
	}

	hashed, err := pkgAuth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash default superuser password: %w", err)
	}

	admin := &appModels.User{
		Username:    DefaultAdminUsername,
		Email:       DefaultAdminEmail,
		Password:    hashed,
		FirstName:   "Portal",
		LastName:    "Admin",
		IsStaff:     true,
		IsSuperuser: true,
		IsActive:    true,
	}
	profile := &appModels.StudentProfile{
		Department: appModels.DefaultDepartment,
		Year:       appModels.DefaultYear,
		IsStudent:  false,
	}

	if err := userRepo.CreateWithProfile(ctx, admin, profile); err != nil {
		return fmt.Errorf("failed to create default superuser: %w", err)
	}

	lgr.Info().Str("username", DefaultAdminUsername).Msg("Default superuser created")
	return nil
}
