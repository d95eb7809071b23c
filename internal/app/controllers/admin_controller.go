package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mailam-cse/achievers-portal/internal/app/services"
	"github.com/mailam-cse/achievers-portal/internal/pkg/flash"
)

// AdminController handles the staff surfaces: dashboard counts, the
// achievement moderation queue and the contact message inbox.
type AdminController struct {
	achievementService *services.AchievementService
	contactService     *services.ContactService
	logger             zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(achievementService *services.AchievementService, contactService *services.ContactService, logger zerolog.Logger) *AdminController {
	return &AdminController{
		achievementService: achievementService,
		contactService:     contactService,
		logger:             logger,
	}
}

// Dashboard renders the staff overview with aggregate counts
func (c *AdminController) Dashboard(ctx *gin.Context) {
	stats, err := c.achievementService.AdminDashboard(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to load admin dashboard")
		stats = &services.AdminStats{}
	}
	render(ctx, http.StatusOK, "admin_dashboard.html", gin.H{
		"Title": "Admin Dashboard",
		"Stats": stats,
	})
}

// Moderation renders the review queue, pending submissions first
func (c *AdminController) Moderation(ctx *gin.Context) {
	achievements, err := c.achievementService.ModerationList(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to load moderation queue")
		achievements = nil
	}

	views := make([]achievementView, 0, len(achievements))
	for _, a := range achievements {
		views = append(views, achievementView{Achievement: a, ImageSrc: c.achievementService.ImageURL(a)})
	}

	render(ctx, http.StatusOK, "moderation.html", gin.H{
		"Title":        "Review Achievements",
		"Achievements": views,
	})
}

// Moderate applies a bulk approve or disapprove to the selected submissions.
// The whole selection is updated in one statement; the notice reports how
// many records matched.
func (c *AdminController) Moderate(ctx *gin.Context) {
	ids := parseIDs(ctx.PostFormArray("ids"))
	action := ctx.PostForm("action")

	var count int64
	var err error
	switch action {
	case "approve":
		count, err = c.achievementService.Approve(ctx.Request.Context(), ids)
	case "disapprove":
		count, err = c.achievementService.Disapprove(ctx.Request.Context(), ids)
	default:
		flash.Set(ctx, flash.Error, "Unknown action.")
		ctx.Redirect(http.StatusSeeOther, "/admin-dashboard/achievements/")
		return
	}

	if err != nil {
		c.logger.Error().Err(err).Str("action", action).Msg("Bulk moderation failed")
		flash.Set(ctx, flash.Error, "Could not update the selected achievements.")
	} else {
		flash.Set(ctx, flash.Success, fmt.Sprintf("%d achievement(s) %sd.", count, action))
	}
	ctx.Redirect(http.StatusSeeOther, "/admin-dashboard/achievements/")
}

// Messages renders the contact inbox, newest first
func (c *AdminController) Messages(ctx *gin.Context) {
	messages, err := c.contactService.Inbox(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to load contact inbox")
		messages = nil
	}
	render(ctx, http.StatusOK, "messages.html", gin.H{
		"Title":    "Contact Messages",
		"Messages": messages,
	})
}

// UpdateMessages bulk-flips the read flag on the selected messages
func (c *AdminController) UpdateMessages(ctx *gin.Context) {
	ids := parseIDs(ctx.PostFormArray("ids"))
	action := ctx.PostForm("action")

	var read bool
	switch action {
	case "read":
		read = true
	case "unread":
		read = false
	default:
		flash.Set(ctx, flash.Error, "Unknown action.")
		ctx.Redirect(http.StatusSeeOther, "/admin-dashboard/messages/")
		return
	}

	count, err := c.contactService.MarkRead(ctx.Request.Context(), ids, read)
	if err != nil {
		c.logger.Error().Err(err).Str("action", action).Msg("Bulk message update failed")
		flash.Set(ctx, flash.Error, "Could not update the selected messages.")
	} else {
		flash.Set(ctx, flash.Success, fmt.Sprintf("%d message(s) marked as %s.", count, action))
	}
	ctx.Redirect(http.StatusSeeOther, "/admin-dashboard/messages/")
}

// parseIDs keeps the well-formed positive IDs and drops the rest
func parseIDs(raw []string) []int64 {
	ids := make([]int64, 0, len(raw))
	for _, s := range raw {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
