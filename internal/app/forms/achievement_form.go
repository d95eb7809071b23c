package forms

import (
	"github.com/mailam-cse/achievers-portal/internal/app/models"
)

// AchievementForm is the submission form on the student dashboard. The
// uploaded image file is handled separately from the bound fields; either the
// upload or ImageURL may be present, neither is required.
type AchievementForm struct {
	Name        string `form:"name" validate:"required,min=5,max=200"`
	Event       string `form:"event" validate:"required,max=200"`
	Prize       string `form:"prize" validate:"required,min=3,max=100"`
	Competition string `form:"competition" validate:"required,max=50"`
	ImageURL    string `form:"image_url" validate:"omitempty,url,max=200"`
	Description string `form:"description"`
}

// Validate returns field-level errors, empty when the form is well-formed
func (f *AchievementForm) Validate() map[string]string {
	errs := fieldErrors(validate.Struct(f))

	if f.Competition != "" {
		if _, err := models.ParseCompetitionLevel(f.Competition); err != nil {
			errs["competition"] = "Select a valid competition level."
		}
	}

	return errs
}

// Level returns the parsed competition level, defaulting to college
func (f *AchievementForm) Level() models.CompetitionLevel {
	level, err := models.ParseCompetitionLevel(f.Competition)
	if err != nil {
		return models.CompetitionCollege
	}
	return level
}
