package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mailam-cse/achievers-portal/internal/app/models"
	"github.com/mailam-cse/achievers-portal/internal/pkg/apperrors"
)

// ProfileRepository handles database operations for student profiles
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileColumns = `id, user_id, roll_number, department, year,
	COALESCE(phone, ''), COALESCE(avatar, ''), COALESCE(bio, ''),
	is_student, created_at, updated_at`

func scanProfile(row pgx.Row) (*models.StudentProfile, error) {
	p := &models.StudentProfile{}
	err := row.Scan(
		&p.ID, &p.UserID, &p.RollNumber, &p.Department, &p.Year,
		&p.Phone, &p.Avatar, &p.Bio,
		&p.IsStudent, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error scanning profile: %w", err)
	}
	return p, nil
}

// GetByUserID retrieves the profile belonging to a user
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	row := r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM student_profiles WHERE user_id = $1`, userID)
	return scanProfile(row)
}

// Create inserts a profile for a user
func (r *ProfileRepository) Create(ctx context.Context, p *models.StudentProfile) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO student_profiles (user_id, roll_number, department, year, phone, avatar, bio, is_student)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), $8)
		RETURNING id, created_at, updated_at`,
		p.UserID, p.RollNumber, p.Department, p.Year, p.Phone, p.Avatar, p.Bio, p.IsStudent,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return mapUniqueViolation(err)
	}
	return nil
}

// Update writes the editable profile fields and refreshes updated_at
func (r *ProfileRepository) Update(ctx context.Context, p *models.StudentProfile) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE student_profiles
		SET roll_number = $1, department = $2, year = $3,
			phone = NULLIF($4, ''), avatar = NULLIF($5, ''), bio = NULLIF($6, ''),
			is_student = $7, updated_at = now()
		WHERE user_id = $8`,
		p.RollNumber, p.Department, p.Year, p.Phone, p.Avatar, p.Bio, p.IsStudent, p.UserID,
	)
	if err != nil {
		return mapUniqueViolation(err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// RollNumberExists checks roll number uniqueness across all profiles,
// excluding the given user's own record.
func (r *ProfileRepository) RollNumberExists(ctx context.Context, rollNumber string, excludeUserID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM student_profiles WHERE roll_number = $1 AND user_id != $2)`,
		rollNumber, excludeUserID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking roll number: %w", err)
	}
	return exists, nil
}

// SetIsStudent flips the student flag, used when a user is promoted to staff
func (r *ProfileRepository) SetIsStudent(ctx context.Context, userID int64, isStudent bool) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE student_profiles SET is_student = $1, updated_at = now() WHERE user_id = $2`,
		isStudent, userID)
	if err != nil {
		return fmt.Errorf("error updating student flag: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
