package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailam-cse/achievers-portal/internal/app/forms"
	"github.com/mailam-cse/achievers-portal/internal/app/models"
	"github.com/mailam-cse/achievers-portal/internal/pkg/apperrors"
)

type achievementFixture struct {
	svc          *AchievementService
	achievements *fakeAchievementStore
	users        *fakeUserStore
	contacts     *fakeContactStore
	storage      *fakeFileStore
}

func newAchievementFixture() *achievementFixture {
	achievements := newFakeAchievementStore()
	users := newFakeUserStore(newFakeProfileStore())
	contacts := newFakeContactStore()
	storage := newFakeFileStore()
	return &achievementFixture{
		svc:          NewAchievementService(achievements, users, contacts, storage, zerolog.Nop()),
		achievements: achievements,
		users:        users,
		contacts:     contacts,
		storage:      storage,
	}
}

func achievementForm() *forms.AchievementForm {
	return &forms.AchievementForm{
		Name:        "First Prize in Hackathon",
		Event:       "Smart India Hackathon",
		Prize:       "First Prize",
		Competition: "national",
	}
}

func TestSubmitStartsPendingAndOwned(t *testing.T) {
	f := newAchievementFixture()

	a, err := f.svc.Submit(context.Background(), 7, achievementForm(), nil)
	require.NoError(t, err)

	assert.Equal(t, int64(7), a.StudentID)
	assert.False(t, a.IsApproved)
	assert.Equal(t, models.CompetitionNational, a.Competition)
}

func TestSubmitInvalidForm(t *testing.T) {
	f := newAchievementFixture()

	form := achievementForm()
	form.Name = "Won"

	_, err := f.svc.Submit(context.Background(), 7, form, nil)
	fieldErrs, ok := apperrors.FieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fieldErrs, "name")
	assert.Empty(t, f.achievements.achievements)
}

func TestApproveReportsMatchedCount(t *testing.T) {
	f := newAchievementFixture()
	ctx := context.Background()

	a1, err := f.svc.Submit(ctx, 1, achievementForm(), nil)
	require.NoError(t, err)
	a2, err := f.svc.Submit(ctx, 2, achievementForm(), nil)
	require.NoError(t, err)

	count, err := f.svc.Approve(ctx, []int64{a1.ID, a2.ID, 999})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.True(t, f.achievements.achievements[a1.ID].IsApproved)

	// Re-approving matches the same rows again; the state does not change
	count, err = f.svc.Approve(ctx, []int64{a1.ID, a2.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = f.svc.Disapprove(ctx, []int64{a1.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.False(t, f.achievements.achievements[a1.ID].IsApproved)

	count, err = f.svc.Approve(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDeleteOwnerOnly(t *testing.T) {
	f := newAchievementFixture()
	ctx := context.Background()

	a, err := f.svc.Submit(ctx, 1, achievementForm(), nil)
	require.NoError(t, err)

	// Someone else's record reads as not found
	err = f.svc.Delete(ctx, 2, a.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Contains(t, f.achievements.achievements, a.ID)

	require.NoError(t, f.svc.Delete(ctx, 1, a.ID))
	assert.NotContains(t, f.achievements.achievements, a.ID)

	err = f.svc.Delete(ctx, 1, a.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteRemovesStoredImage(t *testing.T) {
	f := newAchievementFixture()
	ctx := context.Background()

	a, err := f.svc.Submit(ctx, 1, achievementForm(), nil)
	require.NoError(t, err)
	a.Image = "achievements/user_1/file-a.png"
	f.storage.saved[a.Image] = true

	require.NoError(t, f.svc.Delete(ctx, 1, a.ID))
	assert.Contains(t, f.storage.deleted, "achievements/user_1/file-a.png")
}

func TestListApprovedFiltersAndSearches(t *testing.T) {
	f := newAchievementFixture()
	ctx := context.Background()

	approved, err := f.svc.Submit(ctx, 1, achievementForm(), nil)
	require.NoError(t, err)
	pending := achievementForm()
	pending.Name = "Second Prize in Quiz"
	_, err = f.svc.Submit(ctx, 1, pending, nil)
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, []int64{approved.ID})
	require.NoError(t, err)

	list, err := f.svc.ListApproved(ctx, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, approved.ID, list[0].ID)

	list, err = f.svc.ListApproved(ctx, "hackathon")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = f.svc.ListApproved(ctx, "quiz")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListOwnCountsApproved(t *testing.T) {
	f := newAchievementFixture()
	ctx := context.Background()

	a1, err := f.svc.Submit(ctx, 1, achievementForm(), nil)
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, 1, achievementForm(), nil)
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, 2, achievementForm(), nil)
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, []int64{a1.ID})
	require.NoError(t, err)

	own, approvedCount, err := f.svc.ListOwn(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, own, 2)
	assert.Equal(t, int64(1), approvedCount)
}

func TestHomeStats(t *testing.T) {
	f := newAchievementFixture()
	ctx := context.Background()

	require.NoError(t, f.users.CreateWithProfile(ctx, &models.User{Username: "s1", Email: "s1@x.com"}, &models.StudentProfile{}))
	require.NoError(t, f.users.CreateWithProfile(ctx, &models.User{Username: "t1", Email: "t1@x.com", IsStaff: true}, &models.StudentProfile{}))

	a, err := f.svc.Submit(ctx, 1, achievementForm(), nil)
	require.NoError(t, err)
	_, err = f.svc.Approve(ctx, []int64{a.ID})
	require.NoError(t, err)

	stats, err := f.svc.Home(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalAchievements)
	assert.Equal(t, int64(1), stats.TotalStudents)
	assert.Len(t, stats.Featured, 1)
}

func TestAdminDashboardCounts(t *testing.T) {
	f := newAchievementFixture()
	ctx := context.Background()

	require.NoError(t, f.users.CreateWithProfile(ctx, &models.User{Username: "s1", Email: "s1@x.com"}, &models.StudentProfile{}))
	require.NoError(t, f.users.CreateWithProfile(ctx, &models.User{Username: "t1", Email: "t1@x.com", IsStaff: true}, &models.StudentProfile{}))

	a1, err := f.svc.Submit(ctx, 1, achievementForm(), nil)
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, 1, achievementForm(), nil)
	require.NoError(t, err)
	_, err = f.svc.Approve(ctx, []int64{a1.ID})
	require.NoError(t, err)

	require.NoError(t, f.contacts.Create(ctx, &models.ContactMessage{Name: "V", Email: "v@x.com", Subject: "Hi", Message: "Hello"}))

	stats, err := f.svc.AdminDashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.StudentCount)
	assert.Equal(t, int64(1), stats.StaffCount)
	assert.Equal(t, int64(2), stats.AchievementCount)
	assert.Equal(t, int64(1), stats.PendingCount)
	assert.Equal(t, int64(1), stats.ApprovedCount)
	assert.Equal(t, int64(1), stats.UnreadMessages)
}

func TestModerationListPendingFirst(t *testing.T) {
	f := newAchievementFixture()
	ctx := context.Background()

	a1, err := f.svc.Submit(ctx, 1, achievementForm(), nil)
	require.NoError(t, err)
	a2, err := f.svc.Submit(ctx, 1, achievementForm(), nil)
	require.NoError(t, err)
	_, err = f.svc.Approve(ctx, []int64{a1.ID})
	require.NoError(t, err)

	list, err := f.svc.ModerationList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a2.ID, list[0].ID)
	assert.False(t, list[0].IsApproved)
}

func TestImageURL(t *testing.T) {
	f := newAchievementFixture()

	stored := &models.Achievement{Image: "achievements/user_1/file-a.png", ImageURL: "https://example.com/x.png"}
	f.storage.saved[stored.Image] = true
	assert.Equal(t, "http://localhost:8080/uploads/achievements/user_1/file-a.png", f.svc.ImageURL(stored))

	missing := &models.Achievement{Image: "achievements/user_1/gone.png", ImageURL: "https://example.com/x.png"}
	assert.Equal(t, "https://example.com/x.png", f.svc.ImageURL(missing))

	assert.Empty(t, f.svc.ImageURL(&models.Achievement{}))
}
