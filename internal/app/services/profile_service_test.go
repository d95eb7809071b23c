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

func newProfileFixture() (*ProfileService, *fakeProfileStore, *fakeFileStore) {
	profiles := newFakeProfileStore()
	storage := newFakeFileStore()
	return NewProfileService(profiles, storage, zerolog.Nop()), profiles, storage
}

func profileForm() *forms.ProfileForm {
	return &forms.ProfileForm{
		RollNumber: "CSE2101",
		Department: "Computer Science & Engineering",
		Year:       2026,
		Phone:      "9876543210",
		Bio:        "Final year student",
	}
}

func TestGetCreatesPlaceholderWhenMissing(t *testing.T) {
	svc, profiles, _ := newProfileFixture()

	profile, err := svc.Get(context.Background(), 9)
	require.NoError(t, err)

	assert.Equal(t, "STU0009", profile.RollNumber)
	assert.Equal(t, models.DefaultDepartment, profile.Department)

	// The placeholder is persisted, not recreated every call
	stored, err := profiles.GetByUserID(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, profile, stored)
}

func TestUpdateProfile(t *testing.T) {
	svc, profiles, _ := newProfileFixture()
	ctx := context.Background()

	require.NoError(t, profiles.Create(ctx, &models.StudentProfile{UserID: 1, RollNumber: "OLD01", Department: "CSE", Year: 2024}))

	updated, err := svc.Update(ctx, 1, profileForm(), nil)
	require.NoError(t, err)
	assert.Equal(t, "CSE2101", updated.RollNumber)
	assert.Equal(t, 2026, updated.Year)
	assert.Equal(t, "Final year student", updated.Bio)
}

func TestUpdateRejectsDuplicateRollNumber(t *testing.T) {
	svc, profiles, _ := newProfileFixture()
	ctx := context.Background()

	require.NoError(t, profiles.Create(ctx, &models.StudentProfile{UserID: 1, RollNumber: "CSE2101", Department: "CSE", Year: 2024}))
	require.NoError(t, profiles.Create(ctx, &models.StudentProfile{UserID: 2, RollNumber: "CSE2102", Department: "CSE", Year: 2024}))

	// User 2 trying to claim user 1's roll number
	_, err := svc.Update(ctx, 2, profileForm(), nil)
	fieldErrs, ok := apperrors.FieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fieldErrs, "roll_number")
}

func TestUpdateKeepsOwnRollNumber(t *testing.T) {
	svc, profiles, _ := newProfileFixture()
	ctx := context.Background()

	require.NoError(t, profiles.Create(ctx, &models.StudentProfile{UserID: 1, RollNumber: "CSE2101", Department: "CSE", Year: 2024}))

	// Re-submitting your own roll number is not a conflict
	_, err := svc.Update(ctx, 1, profileForm(), nil)
	assert.NoError(t, err)
}

func TestUpdateInvalidForm(t *testing.T) {
	svc, _, _ := newProfileFixture()

	form := profileForm()
	form.Year = 1990

	_, err := svc.Update(context.Background(), 1, form, nil)
	fieldErrs, ok := apperrors.FieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fieldErrs, "year")
}

func TestAvatarURL(t *testing.T) {
	svc, _, storage := newProfileFixture()

	assert.Empty(t, svc.AvatarURL(nil))
	assert.Empty(t, svc.AvatarURL(&models.StudentProfile{}))
	assert.Empty(t, svc.AvatarURL(&models.StudentProfile{Avatar: "avatars/gone.png"}))

	storage.saved["avatars/a.png"] = true
	assert.Equal(t, "http://localhost:8080/uploads/avatars/a.png", svc.AvatarURL(&models.StudentProfile{Avatar: "avatars/a.png"}))
}
