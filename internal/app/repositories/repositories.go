package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles all repository instances
type Repositories struct {
	UserRepository        *UserRepository
	ProfileRepository     *ProfileRepository
	AchievementRepository *AchievementRepository
	ContactRepository     *ContactRepository
}

// NewRepositories creates all repositories over one pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db),
		ProfileRepository:     NewProfileRepository(db),
		AchievementRepository: NewAchievementRepository(db),
		ContactRepository:     NewContactRepository(db),
	}
}
