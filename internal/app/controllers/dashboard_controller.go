package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mailam-cse/achievers-portal/internal/app/forms"
	"github.com/mailam-cse/achievers-portal/internal/app/models"
	"github.com/mailam-cse/achievers-portal/internal/app/services"
	"github.com/mailam-cse/achievers-portal/internal/middleware"
	"github.com/mailam-cse/achievers-portal/internal/pkg/apperrors"
	"github.com/mailam-cse/achievers-portal/internal/pkg/flash"
)

// DashboardController handles the student workspace: own submissions,
// the submission form and owner-only deletion.
type DashboardController struct {
	achievementService *services.AchievementService
	logger             zerolog.Logger
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(achievementService *services.AchievementService, logger zerolog.Logger) *DashboardController {
	return &DashboardController{
		achievementService: achievementService,
		logger:             logger,
	}
}

func (c *DashboardController) renderDashboard(ctx *gin.Context, form *forms.AchievementForm, fieldErrs map[string]string) {
	viewer := middleware.GetViewer(ctx)

	achievements, approved, err := c.achievementService.ListOwn(ctx.Request.Context(), viewer.UserID())
	if err != nil {
		c.logger.Error().Err(err).Int64("userID", viewer.UserID()).Msg("Failed to load dashboard")
		achievements = nil
		approved = 0
	}

	views := make([]achievementView, 0, len(achievements))
	for _, a := range achievements {
		views = append(views, achievementView{Achievement: a, ImageSrc: c.achievementService.ImageURL(a)})
	}

	render(ctx, http.StatusOK, "dashboard.html", gin.H{
		"Title":             "My Dashboard",
		"Achievements":      views,
		"ApprovedCount":     approved,
		"Form":              form,
		"Errors":            fieldErrs,
		"CompetitionLevels": models.CompetitionLevels(),
	})
}

// Dashboard renders the student's own achievements with the submission form
func (c *DashboardController) Dashboard(ctx *gin.Context) {
	c.renderDashboard(ctx, &forms.AchievementForm{}, map[string]string{})
}

// SubmitAchievement creates a pending achievement from the dashboard form.
// The uploaded image is optional; so is the external image URL.
func (c *DashboardController) SubmitAchievement(ctx *gin.Context) {
	viewer := middleware.GetViewer(ctx)

	var form forms.AchievementForm
	if err := ctx.ShouldBind(&form); err != nil {
		c.logger.Warn().Err(err).Msg("Malformed achievement submission")
	}
	image, err := ctx.FormFile("image")
	if err != nil {
		image = nil
	}

	_, err = c.achievementService.Submit(ctx.Request.Context(), viewer.UserID(), &form, image)
	if err != nil {
		if fieldErrs, ok := apperrors.FieldErrors(err); ok {
			c.renderDashboard(ctx, &form, fieldErrs)
			return
		}
		c.logger.Error().Err(err).Int64("userID", viewer.UserID()).Msg("Achievement submission failed")
		flash.Set(ctx, flash.Error, "Could not save your achievement, please try again.")
		ctx.Redirect(http.StatusSeeOther, "/dashboard/")
		return
	}

	flash.Set(ctx, flash.Success, "Achievement submitted. It will appear once approved.")
	ctx.Redirect(http.StatusSeeOther, "/dashboard/")
}

// DeleteAchievement removes one of the caller's own achievements. Whatever
// happens the caller lands back on the dashboard with a notice; records of
// other students are reported as not found.
func (c *DashboardController) DeleteAchievement(ctx *gin.Context) {
	viewer := middleware.GetViewer(ctx)

	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		flash.Set(ctx, flash.Error, "Achievement not found.")
		ctx.Redirect(http.StatusSeeOther, "/dashboard/")
		return
	}

	if err := c.achievementService.Delete(ctx.Request.Context(), viewer.UserID(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			flash.Set(ctx, flash.Error, "Achievement not found.")
		} else {
			c.logger.Error().Err(err).Int64("achievementID", id).Msg("Achievement deletion failed")
			flash.Set(ctx, flash.Error, "Could not delete the achievement, please try again.")
		}
		ctx.Redirect(http.StatusSeeOther, "/dashboard/")
		return
	}

	flash.Set(ctx, flash.Success, "Achievement deleted.")
	ctx.Redirect(http.StatusSeeOther, "/dashboard/")
}
