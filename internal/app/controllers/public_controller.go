package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mailam-cse/achievers-portal/internal/app/forms"
	"github.com/mailam-cse/achievers-portal/internal/app/models"
	"github.com/mailam-cse/achievers-portal/internal/app/services"
	"github.com/mailam-cse/achievers-portal/internal/pkg/apperrors"
	"github.com/mailam-cse/achievers-portal/internal/pkg/flash"
)

// PublicController handles the routes open to everyone: home, the approved
// achievements gallery, the JSON feed and the contact form.
type PublicController struct {
	achievementService *services.AchievementService
	contactService     *services.ContactService
	logger             zerolog.Logger
}

// NewPublicController creates a new PublicController
func NewPublicController(achievementService *services.AchievementService, contactService *services.ContactService, logger zerolog.Logger) *PublicController {
	return &PublicController{
		achievementService: achievementService,
		contactService:     contactService,
		logger:             logger,
	}
}

// achievementView pairs an achievement with its resolved display image
type achievementView struct {
	*models.Achievement
	ImageSrc string
}

func (c *PublicController) viewsOf(achievements []*models.Achievement) []achievementView {
	views := make([]achievementView, 0, len(achievements))
	for _, a := range achievements {
		views = append(views, achievementView{
			Achievement: a,
			ImageSrc:    c.achievementService.ImageURL(a),
		})
	}
	return views
}

// Home renders the landing page. Storage failures degrade to an empty
// showcase and zero counts rather than an error page.
func (c *PublicController) Home(ctx *gin.Context) {
	stats, err := c.achievementService.Home(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to load home page data")
		stats = &services.HomeStats{}
	}
	render(ctx, http.StatusOK, "home.html", gin.H{
		"Title":             "Home",
		"Featured":          c.viewsOf(stats.Featured),
		"TotalAchievements": stats.TotalAchievements,
		"TotalStudents":     stats.TotalStudents,
	})
}

// Achievements renders the public gallery with optional substring search
func (c *PublicController) Achievements(ctx *gin.Context) {
	search := ctx.Query("search")
	achievements, err := c.achievementService.ListApproved(ctx.Request.Context(), search)
	if err != nil {
		c.logger.Error().Err(err).Str("search", search).Msg("Failed to list achievements")
		achievements = nil
	}
	render(ctx, http.StatusOK, "achievements.html", gin.H{
		"Title":        "Achievements",
		"Achievements": c.viewsOf(achievements),
		"Search":       search,
	})
}

// achievementItem is the wire shape of the public JSON feed
type achievementItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Event       string `json:"event"`
	Prize       string `json:"prize"`
	Competition string `json:"competition"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

// AchievementsAPI serves the approved achievements as JSON. The feed is a
// best-effort surface: any failure yields an empty array with status 200.
func (c *PublicController) AchievementsAPI(ctx *gin.Context) {
	items := []achievementItem{}
	achievements, err := c.achievementService.ListApproved(ctx.Request.Context(), "")
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to serve achievements feed")
		ctx.JSON(http.StatusOK, items)
		return
	}
	for _, a := range achievements {
		items = append(items, achievementItem{
			ID:          a.ID,
			Name:        a.Name,
			Event:       a.Event,
			Prize:       a.Prize,
			Competition: string(a.Competition),
			Image:       a.Image,
			Description: a.Description,
		})
	}
	ctx.JSON(http.StatusOK, items)
}

// ContactSubmit stores a contact form submission. The caller always lands
// back on the home page with a notice, whatever the outcome.
func (c *PublicController) ContactSubmit(ctx *gin.Context) {
	var form forms.ContactForm
	if err := ctx.ShouldBind(&form); err != nil {
		c.logger.Warn().Err(err).Msg("Malformed contact submission")
	}

	if err := c.contactService.Submit(ctx.Request.Context(), &form); err != nil {
		if _, ok := apperrors.FieldErrors(err); ok {
			flash.Set(ctx, flash.Error, "Please fill in all contact fields correctly.")
		} else {
			c.logger.Error().Err(err).Msg("Failed to store contact message")
			flash.Set(ctx, flash.Error, "Something went wrong, please try again later.")
		}
		ctx.Redirect(http.StatusSeeOther, "/")
		return
	}

	flash.Set(ctx, flash.Success, "Thank you for reaching out. We will get back to you soon.")
	ctx.Redirect(http.StatusSeeOther, "/")
}

// NotFound renders the 404 page for unmatched routes
func (c *PublicController) NotFound(ctx *gin.Context) {
	render(ctx, http.StatusNotFound, "404.html", gin.H{
		"Title": "Page Not Found",
	})
}
