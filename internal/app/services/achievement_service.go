package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/rs/zerolog"

	"github.com/mailam-cse/achievers-portal/internal/app/forms"
	"github.com/mailam-cse/achievers-portal/internal/app/models"
	"github.com/mailam-cse/achievers-portal/internal/pkg/apperrors"
)

// FeaturedCount is how many recent approved achievements the home page shows
const FeaturedCount = 6

// HomeStats is the featured data for the public home page
type HomeStats struct {
	Featured          []*models.Achievement
	TotalAchievements int64
	TotalStudents     int64
}

// AdminStats are the aggregate counts on the staff dashboard
type AdminStats struct {
	StudentCount     int64
	StaffCount       int64
	AchievementCount int64
	PendingCount     int64
	ApprovedCount    int64
	UnreadMessages   int64
}

// AchievementService coordinates the submission, approval and public query
// workflows over the achievement store.
type AchievementService struct {
	achievements AchievementStore
	users        UserStore
	contacts     ContactStore
	storage      FileStore
	logger       zerolog.Logger
}

// NewAchievementService creates a new AchievementService
func NewAchievementService(achievements AchievementStore, users UserStore, contacts ContactStore, storage FileStore, logger zerolog.Logger) *AchievementService {
	return &AchievementService{
		achievements: achievements,
		users:        users,
		contacts:     contacts,
		storage:      storage,
		logger:       logger,
	}
}

// Submit validates a submission form and creates the achievement in the
// pending state, owned by the submitting student. An uploaded image is
// stored under the owner's namespace before the record is written.
func (s *AchievementService) Submit(ctx context.Context, studentID int64, form *forms.AchievementForm, image *multipart.FileHeader) (*models.Achievement, error) {
	if fieldErrs := form.Validate(); len(fieldErrs) > 0 {
		return nil, apperrors.NewValidationError(fieldErrs)
	}

	var imagePath string
	if image != nil {
		var err error
		imagePath, err = s.storage.SaveFile(image, fmt.Sprintf("achievements/user_%d", studentID))
		if err != nil {
			return nil, apperrors.NewCustomError(apperrors.ErrStorage, "could not store the uploaded image")
		}
	}

	achievement := &models.Achievement{
		StudentID:   studentID,
		Name:        form.Name,
		Event:       form.Event,
		Prize:       form.Prize,
		Competition: form.Level(),
		Image:       imagePath,
		ImageURL:    form.ImageURL,
		Description: form.Description,
		IsApproved:  false, // submissions always start pending
	}

	if err := s.achievements.Create(ctx, achievement); err != nil {
		if imagePath != "" {
			_ = s.storage.DeleteFile(imagePath)
		}
		return nil, fmt.Errorf("error storing achievement: %w", err)
	}

	s.logger.Info().Int64("achievementID", achievement.ID).Int64("studentID", studentID).Msg("Achievement submitted for approval")
	return achievement, nil
}

// Delete removes an achievement when, and only when, the caller owns it.
// A missing record and an ownership mismatch are the same ErrNotFound; the
// workflow never reveals other students' records.
func (s *AchievementService) Delete(ctx context.Context, studentID, achievementID int64) error {
	achievement, err := s.achievements.GetByID(ctx, achievementID)
	if err != nil {
		return err
	}
	if achievement.StudentID != studentID {
		return apperrors.ErrNotFound
	}

	deleted, err := s.achievements.DeleteOwned(ctx, achievementID, studentID)
	if err != nil {
		return fmt.Errorf("error deleting achievement: %w", err)
	}
	if !deleted {
		return apperrors.ErrNotFound
	}

	if achievement.Image != "" {
		if err := s.storage.DeleteFile(achievement.Image); err != nil {
			s.logger.Warn().Err(err).Str("image", achievement.Image).Msg("Failed to remove achievement image")
		}
	}
	return nil
}

// ListOwn returns a student's achievements with the approved count
func (s *AchievementService) ListOwn(ctx context.Context, studentID int64) ([]*models.Achievement, int64, error) {
	achievements, err := s.achievements.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, 0, err
	}
	approved, err := s.achievements.CountByStudent(ctx, studentID, true)
	if err != nil {
		return nil, 0, err
	}
	return achievements, approved, nil
}

// ListApproved is the public, approval-filtered listing with optional search
func (s *AchievementService) ListApproved(ctx context.Context, search string) ([]*models.Achievement, error) {
	return s.achievements.ListApproved(ctx, search)
}

// Home gathers the featured data for the public home page
func (s *AchievementService) Home(ctx context.Context) (*HomeStats, error) {
	featured, err := s.achievements.RecentApproved(ctx, FeaturedCount)
	if err != nil {
		return nil, err
	}
	totalAchievements, err := s.achievements.CountApproved(ctx)
	if err != nil {
		return nil, err
	}
	totalStudents, err := s.users.CountStudents(ctx)
	if err != nil {
		return nil, err
	}
	return &HomeStats{
		Featured:          featured,
		TotalAchievements: totalAchievements,
		TotalStudents:     totalStudents,
	}, nil
}

// Approve marks every matched achievement approved and returns the matched
// count. Re-approving is a state no-op; the count still reflects matches.
func (s *AchievementService) Approve(ctx context.Context, ids []int64) (int64, error) {
	count, err := s.achievements.SetApproval(ctx, ids, true)
	if err != nil {
		return 0, err
	}
	s.logger.Info().Int64("count", count).Msg("Achievements approved")
	return count, nil
}

// Disapprove marks every matched achievement unapproved, symmetric to Approve
func (s *AchievementService) Disapprove(ctx context.Context, ids []int64) (int64, error) {
	count, err := s.achievements.SetApproval(ctx, ids, false)
	if err != nil {
		return 0, err
	}
	s.logger.Info().Int64("count", count).Msg("Achievements disapproved")
	return count, nil
}

// ModerationList returns all achievements for staff review, pending first
func (s *AchievementService) ModerationList(ctx context.Context) ([]*models.Achievement, error) {
	return s.achievements.ListForModeration(ctx)
}

// AdminDashboard gathers the aggregate counts for the staff dashboard
func (s *AchievementService) AdminDashboard(ctx context.Context) (*AdminStats, error) {
	stats := &AdminStats{}
	var err error

	if stats.StudentCount, err = s.users.CountStudents(ctx); err != nil {
		return nil, err
	}
	if stats.StaffCount, err = s.users.CountStaff(ctx); err != nil {
		return nil, err
	}
	if stats.AchievementCount, err = s.achievements.CountAll(ctx); err != nil {
		return nil, err
	}
	if stats.PendingCount, err = s.achievements.CountPending(ctx); err != nil {
		return nil, err
	}
	if stats.ApprovedCount, err = s.achievements.CountApproved(ctx); err != nil {
		return nil, err
	}
	if stats.UnreadMessages, err = s.contacts.CountUnread(ctx); err != nil {
		return nil, err
	}
	return stats, nil
}

// ImageURL resolves the displayable image for an achievement: the uploaded
// file when it still exists in storage, else the external URL, else empty.
func (s *AchievementService) ImageURL(a *models.Achievement) string {
	resolved := a.ResolveImage(s.storage.Exists)
	if resolved == a.Image && resolved != "" {
		return s.storage.URL(resolved)
	}
	return resolved
}
