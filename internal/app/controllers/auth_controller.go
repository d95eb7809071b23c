package controllers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mailam-cse/achievers-portal/internal/app/forms"
	"github.com/mailam-cse/achievers-portal/internal/app/models"
	"github.com/mailam-cse/achievers-portal/internal/app/services"
	"github.com/mailam-cse/achievers-portal/internal/pkg/apperrors"
	"github.com/mailam-cse/achievers-portal/internal/pkg/flash"
)

// AuthController handles signup, login, logout and staff provisioning
type AuthController struct {
	authService *services.AuthService
	cookieName  string
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, cookieName string, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		cookieName:  cookieName,
		logger:      logger,
	}
}

// ShowSignup renders the empty registration form
func (c *AuthController) ShowSignup(ctx *gin.Context) {
	render(ctx, http.StatusOK, "signup.html", gin.H{
		"Title":  "Sign Up",
		"Form":   &forms.RegistrationForm{},
		"Errors": map[string]string{},
	})
}

// Signup registers a student account, logs the new user in and sends them
// to their dashboard. Validation failures re-render the form with the
// submitted values and field errors.
func (c *AuthController) Signup(ctx *gin.Context) {
	var form forms.RegistrationForm
	if err := ctx.ShouldBind(&form); err != nil {
		c.logger.Warn().Err(err).Msg("Malformed signup submission")
	}

	user, err := c.authService.Register(ctx.Request.Context(), &form, false)
	if err != nil {
		if fieldErrs, ok := apperrors.FieldErrors(err); ok {
			render(ctx, http.StatusOK, "signup.html", gin.H{
				"Title":  "Sign Up",
				"Form":   &form,
				"Errors": fieldErrs,
			})
			return
		}
		c.logger.Error().Err(err).Msg("Registration failed")
		flash.Set(ctx, flash.Error, "Registration failed, please try again.")
		ctx.Redirect(http.StatusSeeOther, "/signup/")
		return
	}

	if err := c.startSession(ctx, user); err != nil {
		// Account exists; let them log in manually.
		flash.Set(ctx, flash.Success, "Account created. Please log in.")
		ctx.Redirect(http.StatusSeeOther, "/login/")
		return
	}

	flash.Set(ctx, flash.Success, "Welcome to the portal, "+user.FirstName+"!")
	ctx.Redirect(http.StatusSeeOther, "/dashboard/")
}

// ShowLogin renders the login form, carrying an optional return path
func (c *AuthController) ShowLogin(ctx *gin.Context) {
	render(ctx, http.StatusOK, "login.html", gin.H{
		"Title": "Login",
		"Next":  ctx.Query("next"),
	})
}

// Login authenticates the posted credentials and starts a session. A valid
// relative ?next= path is honored, anything else lands on the dashboard.
func (c *AuthController) Login(ctx *gin.Context) {
	var form forms.LoginForm
	if err := ctx.ShouldBind(&form); err != nil {
		c.logger.Warn().Err(err).Msg("Malformed login submission")
	}

	user, err := c.authService.Authenticate(ctx.Request.Context(), form.Username, form.Password)
	if err != nil {
		notice := "Invalid username or password."
		if errors.Is(err, apperrors.ErrAccountDisabled) {
			notice = "This account has been disabled."
		} else if !errors.Is(err, apperrors.ErrInvalidCredentials) {
			c.logger.Error().Err(err).Msg("Login failed")
			notice = "Login failed, please try again."
		}
		render(ctx, http.StatusOK, "login.html", gin.H{
			"Title":  "Login",
			"Notice": notice,
			"Next":   ctx.PostForm("next"),
		})
		return
	}

	if err := c.startSession(ctx, user); err != nil {
		render(ctx, http.StatusOK, "login.html", gin.H{
			"Title":  "Login",
			"Notice": "Login failed, please try again.",
		})
		return
	}

	flash.Set(ctx, flash.Success, "Welcome back, "+user.FullName()+"!")
	ctx.Redirect(http.StatusSeeOther, safeNext(ctx.PostForm("next")))
}

// Logout clears the session cookie and returns to the home page
func (c *AuthController) Logout(ctx *gin.Context) {
	ctx.SetCookie(c.cookieName, "", -1, "/", "", false, true)
	flash.Set(ctx, flash.Info, "You have been logged out.")
	ctx.Redirect(http.StatusSeeOther, "/")
}

// ShowRegisterStaff renders the staff provisioning form
func (c *AuthController) ShowRegisterStaff(ctx *gin.Context) {
	render(ctx, http.StatusOK, "register_staff.html", gin.H{
		"Title":  "Register Staff",
		"Form":   &forms.RegistrationForm{},
		"Errors": map[string]string{},
	})
}

// RegisterStaff provisions a staff account from the same registration form.
// The new account does not replace the caller's session.
func (c *AuthController) RegisterStaff(ctx *gin.Context) {
	var form forms.RegistrationForm
	if err := ctx.ShouldBind(&form); err != nil {
		c.logger.Warn().Err(err).Msg("Malformed staff registration submission")
	}

	user, err := c.authService.Register(ctx.Request.Context(), &form, true)
	if err != nil {
		if fieldErrs, ok := apperrors.FieldErrors(err); ok {
			render(ctx, http.StatusOK, "register_staff.html", gin.H{
				"Title":  "Register Staff",
				"Form":   &form,
				"Errors": fieldErrs,
			})
			return
		}
		c.logger.Error().Err(err).Msg("Staff registration failed")
		flash.Set(ctx, flash.Error, "Staff registration failed, please try again.")
		ctx.Redirect(http.StatusSeeOther, "/register-staff/")
		return
	}

	flash.Set(ctx, flash.Success, "Staff account created for "+user.Username+".")
	ctx.Redirect(http.StatusSeeOther, "/admin-dashboard/")
}

// startSession issues the signed session token and sets the session cookie
func (c *AuthController) startSession(ctx *gin.Context, user *models.User) error {
	token, maxAge, err := c.authService.IssueSession(user)
	if err != nil {
		c.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to issue session")
		return err
	}
	ctx.SetCookie(c.cookieName, token, maxAge, "/", "", false, true)
	return nil
}

// safeNext accepts only same-site relative paths as a post-login target
func safeNext(next string) string {
	decoded, err := url.QueryUnescape(next)
	if err != nil {
		return "/dashboard/"
	}
	if !strings.HasPrefix(decoded, "/") || strings.HasPrefix(decoded, "//") {
		return "/dashboard/"
	}
	return decoded
}
