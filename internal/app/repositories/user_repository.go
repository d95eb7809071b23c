package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mailam-cse/achievers-portal/internal/app/models"
	"github.com/mailam-cse/achievers-portal/internal/pkg/apperrors"
	"github.com/mailam-cse/achievers-portal/internal/pkg/dberrors"
)

// Unique constraint names from migrations/001_init.sql
const (
	constraintUsername   = "users_username_key"
	constraintEmail      = "users_email_key"
	constraintRollNumber = "student_profiles_roll_number_key"
)

// UserRepository handles database operations for identity records
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, email, password, first_name, last_name,
	is_staff, is_superuser, is_active, last_login_at, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.Password,
		&user.FirstName, &user.LastName,
		&user.IsStaff, &user.IsSuperuser, &user.IsActive,
		&user.LastLoginAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error scanning user: %w", err)
	}
	return user, nil
}

// mapUniqueViolation translates unique violations on registration into the
// registration sentinels so the workflow can turn them into field errors.
// Concurrent registrations race on these constraints; the loser gets a
// validation failure, never a corrupt write.
func mapUniqueViolation(err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, constraintUsername):
		return apperrors.ErrUsernameTaken
	case dberrors.IsDuplicateConstraintError(err, constraintEmail):
		return apperrors.ErrEmailTaken
	case dberrors.IsDuplicateConstraintError(err, constraintRollNumber):
		return apperrors.ErrRollNumberTaken
	}
	return err
}

// CreateWithProfile creates a user and its student profile in one
// transaction, so a user row can never exist without exactly one profile.
func (r *UserRepository) CreateWithProfile(ctx context.Context, user *models.User, profile *models.StudentProfile) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO users (username, email, password, first_name, last_name, is_staff, is_superuser, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		user.Username, user.Email, user.Password, user.FirstName, user.LastName,
		user.IsStaff, user.IsSuperuser, user.IsActive,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return mapUniqueViolation(err)
	}

	if profile.RollNumber == "" {
		profile.RollNumber = models.PlaceholderRollNumber(user.ID)
	}
	profile.UserID = user.ID

	err = tx.QueryRow(ctx, `
		INSERT INTO student_profiles (user_id, roll_number, department, year, phone, bio, is_student)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7)
		RETURNING id, created_at, updated_at`,
		profile.UserID, profile.RollNumber, profile.Department, profile.Year,
		profile.Phone, profile.Bio, profile.IsStudent,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return mapUniqueViolation(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit registration: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return scanUser(row)
}

// UsernameExists checks if a username is already taken
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking username: %w", err)
	}
	return exists, nil
}

// EmailExists checks if an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}
	return exists, nil
}

// CountStudents counts non-staff users
func (r *UserRepository) CountStudents(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE is_staff = false`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting students: %w", err)
	}
	return count, nil
}

// CountStaff counts staff users
func (r *UserRepository) CountStaff(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE is_staff = true`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting staff: %w", err)
	}
	return count, nil
}

// UpdateLastLogin stamps a successful login
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET last_login_at = now() WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("error updating last login: %w", err)
	}
	return nil
}

// Delete deletes a user. Profile and achievements go with it via the
// ON DELETE CASCADE constraints.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
