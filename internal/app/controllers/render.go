// Package controllers handles HTTP request handling
package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/mailam-cse/achievers-portal/internal/middleware"
	"github.com/mailam-cse/achievers-portal/internal/pkg/flash"
)

// Site identity shown in the shared layout
const (
	SiteName    = "CSE Achievers Portal"
	CollegeName = "Mailam Engineering College"
)

// render executes a template with the shared layout data merged in: the
// current viewer, any pending flash notice and the site identity. Page
// handlers only supply what is specific to them.
func render(ctx *gin.Context, status int, template string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	viewer := middleware.GetViewer(ctx)
	data["Viewer"] = viewer
	data["SiteName"] = SiteName
	data["CollegeName"] = CollegeName
	if _, ok := data["Flash"]; !ok {
		data["Flash"] = flash.Pop(ctx)
	}
	ctx.HTML(status, template, data)
}
