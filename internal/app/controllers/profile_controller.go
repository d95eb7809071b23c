package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mailam-cse/achievers-portal/internal/app/forms"
	"github.com/mailam-cse/achievers-portal/internal/app/models"
	"github.com/mailam-cse/achievers-portal/internal/app/services"
	"github.com/mailam-cse/achievers-portal/internal/middleware"
	"github.com/mailam-cse/achievers-portal/internal/pkg/apperrors"
	"github.com/mailam-cse/achievers-portal/internal/pkg/flash"
)

// ProfileController handles viewing and editing the caller's own profile
type ProfileController struct {
	profileService *services.ProfileService
	logger         zerolog.Logger
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService *services.ProfileService, logger zerolog.Logger) *ProfileController {
	return &ProfileController{
		profileService: profileService,
		logger:         logger,
	}
}

func (c *ProfileController) renderProfile(ctx *gin.Context, profile *models.StudentProfile, form *forms.ProfileForm, fieldErrs map[string]string) {
	render(ctx, http.StatusOK, "profile.html", gin.H{
		"Title":     "My Profile",
		"Profile":   profile,
		"AvatarSrc": c.profileService.AvatarURL(profile),
		"Form":      form,
		"Errors":    fieldErrs,
	})
}

// Profile renders the caller's profile pre-filled into the edit form
func (c *ProfileController) Profile(ctx *gin.Context) {
	viewer := middleware.GetViewer(ctx)

	profile, err := c.profileService.Get(ctx.Request.Context(), viewer.UserID())
	if err != nil {
		c.logger.Error().Err(err).Int64("userID", viewer.UserID()).Msg("Failed to load profile")
		flash.Set(ctx, flash.Error, "Could not load your profile, please try again.")
		ctx.Redirect(http.StatusSeeOther, "/dashboard/")
		return
	}

	form := &forms.ProfileForm{
		RollNumber: profile.RollNumber,
		Department: profile.Department,
		Year:       profile.Year,
		Phone:      profile.Phone,
		Bio:        profile.Bio,
	}
	c.renderProfile(ctx, profile, form, map[string]string{})
}

// UpdateProfile applies the posted edits, with an optional avatar upload
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	viewer := middleware.GetViewer(ctx)

	var form forms.ProfileForm
	if err := ctx.ShouldBind(&form); err != nil {
		c.logger.Warn().Err(err).Msg("Malformed profile submission")
	}
	avatar, err := ctx.FormFile("avatar")
	if err != nil {
		avatar = nil
	}

	_, err = c.profileService.Update(ctx.Request.Context(), viewer.UserID(), &form, avatar)
	if err != nil {
		if fieldErrs, ok := apperrors.FieldErrors(err); ok {
			profile, loadErr := c.profileService.Get(ctx.Request.Context(), viewer.UserID())
			if loadErr != nil {
				profile = nil
			}
			c.renderProfile(ctx, profile, &form, fieldErrs)
			return
		}
		c.logger.Error().Err(err).Int64("userID", viewer.UserID()).Msg("Profile update failed")
		flash.Set(ctx, flash.Error, "Could not update your profile, please try again.")
		ctx.Redirect(http.StatusSeeOther, "/profile/")
		return
	}

	flash.Set(ctx, flash.Success, "Profile updated.")
	ctx.Redirect(http.StatusSeeOther, "/profile/")
}
