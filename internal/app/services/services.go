package services

import (
	"context"
	"mime/multipart"

	"github.com/mailam-cse/achievers-portal/internal/app/models"
)

// Store interfaces consumed by the services. The pgx repositories satisfy
// them in production; tests substitute in-memory fakes.

// UserStore is the identity store contract
type UserStore interface {
	CreateWithProfile(ctx context.Context, user *models.User, profile *models.StudentProfile) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	CountStudents(ctx context.Context) (int64, error)
	CountStaff(ctx context.Context) (int64, error)
	UpdateLastLogin(ctx context.Context, userID int64) error
}

// ProfileStore is the student profile store contract
type ProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error)
	Create(ctx context.Context, p *models.StudentProfile) error
	Update(ctx context.Context, p *models.StudentProfile) error
	RollNumberExists(ctx context.Context, rollNumber string, excludeUserID int64) (bool, error)
}

// AchievementStore is the achievement store contract
type AchievementStore interface {
	Create(ctx context.Context, a *models.Achievement) error
	GetByID(ctx context.Context, id int64) (*models.Achievement, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*models.Achievement, error)
	ListApproved(ctx context.Context, search string) ([]*models.Achievement, error)
	RecentApproved(ctx context.Context, limit int) ([]*models.Achievement, error)
	ListForModeration(ctx context.Context) ([]*models.Achievement, error)
	SetApproval(ctx context.Context, ids []int64, approved bool) (int64, error)
	DeleteOwned(ctx context.Context, id, studentID int64) (bool, error)
	CountApproved(ctx context.Context) (int64, error)
	CountPending(ctx context.Context) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	CountByStudent(ctx context.Context, studentID int64, approvedOnly bool) (int64, error)
}

// ContactStore is the contact message store contract
type ContactStore interface {
	Create(ctx context.Context, m *models.ContactMessage) error
	List(ctx context.Context) ([]*models.ContactMessage, error)
	SetRead(ctx context.Context, ids []int64, read bool) (int64, error)
	CountUnread(ctx context.Context) (int64, error)
}

// FileStore is the upload storage contract
type FileStore interface {
	SaveFile(fileHeader *multipart.FileHeader, subPath string) (string, error)
	DeleteFile(relPath string) error
	Exists(relPath string) bool
	URL(relPath string) string
}
