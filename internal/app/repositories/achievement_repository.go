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

// AchievementRepository handles database operations for achievements
type AchievementRepository struct {
	db *pgxpool.Pool
}

// NewAchievementRepository creates a new achievement repository
func NewAchievementRepository(db *pgxpool.Pool) *AchievementRepository {
	return &AchievementRepository{db: db}
}

const achievementColumns = `a.id, a.student_id, a.name, a.event, a.prize, a.competition,
	COALESCE(a.image, ''), COALESCE(a.image_url, ''), COALESCE(a.description, ''),
	a.date_achieved, a.is_approved, a.created_at, a.updated_at`

func scanAchievement(row pgx.Row) (*models.Achievement, error) {
	a := &models.Achievement{}
	err := row.Scan(
		&a.ID, &a.StudentID, &a.Name, &a.Event, &a.Prize, &a.Competition,
		&a.Image, &a.ImageURL, &a.Description,
		&a.DateAchieved, &a.IsApproved, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error scanning achievement: %w", err)
	}
	return a, nil
}

func (r *AchievementRepository) queryMany(ctx context.Context, query string, args ...any) ([]*models.Achievement, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var achievements []*models.Achievement
	for rows.Next() {
		a, err := scanAchievement(rows)
		if err != nil {
			return nil, err
		}
		achievements = append(achievements, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return achievements, nil
}

// Create inserts a new achievement owned by its submitting student
func (r *AchievementRepository) Create(ctx context.Context, a *models.Achievement) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO achievements (student_id, name, event, prize, competition, image, image_url, description, is_approved)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), $9)
		RETURNING id, date_achieved, created_at, updated_at`,
		a.StudentID, a.Name, a.Event, a.Prize, a.Competition,
		a.Image, a.ImageURL, a.Description, a.IsApproved,
	).Scan(&a.ID, &a.DateAchieved, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating achievement: %w", err)
	}
	return nil
}

// GetByID retrieves an achievement by ID
func (r *AchievementRepository) GetByID(ctx context.Context, id int64) (*models.Achievement, error) {
	row := r.db.QueryRow(ctx, `SELECT `+achievementColumns+` FROM achievements a WHERE a.id = $1`, id)
	return scanAchievement(row)
}

// ListByStudent retrieves a student's own achievements, newest first
func (r *AchievementRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Achievement, error) {
	return r.queryMany(ctx, `
		SELECT `+achievementColumns+`
		FROM achievements a
		WHERE a.student_id = $1
		ORDER BY a.created_at DESC`, studentID)
}

// ListApproved retrieves approved achievements newest first. A non-empty
// search term restricts to records where it appears, case-insensitively, in
// name, event, competition or description.
func (r *AchievementRepository) ListApproved(ctx context.Context, search string) ([]*models.Achievement, error) {
	if search == "" {
		return r.queryMany(ctx, `
			SELECT `+achievementColumns+`
			FROM achievements a
			WHERE a.is_approved = true
			ORDER BY a.created_at DESC`)
	}

	pattern := "%" + search + "%"
	return r.queryMany(ctx, `
		SELECT `+achievementColumns+`
		FROM achievements a
		WHERE a.is_approved = true
		  AND (a.name ILIKE $1 OR a.event ILIKE $1 OR a.competition ILIKE $1 OR a.description ILIKE $1)
		ORDER BY a.created_at DESC`, pattern)
}

// RecentApproved retrieves the newest approved achievements up to limit
func (r *AchievementRepository) RecentApproved(ctx context.Context, limit int) ([]*models.Achievement, error) {
	return r.queryMany(ctx, `
		SELECT `+achievementColumns+`
		FROM achievements a
		WHERE a.is_approved = true
		ORDER BY a.created_at DESC
		LIMIT $1`, limit)
}

// ListForModeration retrieves all achievements for the staff review queue,
// pending records first.
func (r *AchievementRepository) ListForModeration(ctx context.Context) ([]*models.Achievement, error) {
	return r.queryMany(ctx, `
		SELECT `+achievementColumns+`
		FROM achievements a
		ORDER BY a.is_approved ASC, a.created_at DESC`)
}

// SetApproval flips the approval flag on every matched record in a single
// statement. The returned count is rows matched; zero matches is a no-op.
func (r *AchievementRepository) SetApproval(ctx context.Context, ids []int64, approved bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE achievements SET is_approved = $1, updated_at = now() WHERE id = ANY($2)`,
		approved, ids)
	if err != nil {
		return 0, fmt.Errorf("error updating approval: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

// DeleteOwned deletes an achievement only when it belongs to the given
// student. Returns false when nothing matched (missing or not the owner).
func (r *AchievementRepository) DeleteOwned(ctx context.Context, id, studentID int64) (bool, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM achievements WHERE id = $1 AND student_id = $2`, id, studentID)
	if err != nil {
		return false, fmt.Errorf("error deleting achievement: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// CountApproved counts approved achievements
func (r *AchievementRepository) CountApproved(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM achievements WHERE is_approved = true`)
}

// CountPending counts achievements awaiting review
func (r *AchievementRepository) CountPending(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM achievements WHERE is_approved = false`)
}

// CountAll counts every achievement
func (r *AchievementRepository) CountAll(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM achievements`)
}

// CountByStudent counts a student's achievements, optionally approved only
func (r *AchievementRepository) CountByStudent(ctx context.Context, studentID int64, approvedOnly bool) (int64, error) {
	if approvedOnly {
		return r.count(ctx, `SELECT COUNT(*) FROM achievements WHERE student_id = $1 AND is_approved = true`, studentID)
	}
	return r.count(ctx, `SELECT COUNT(*) FROM achievements WHERE student_id = $1`, studentID)
}

func (r *AchievementRepository) count(ctx context.Context, query string, args ...any) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting achievements: %w", err)
	}
	return count, nil
}
