package flash

import (
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// One-shot notices carried across a redirect in a short-lived cookie, read
// and cleared on the next render.

const cookieName = "portal_flash"

// Notice levels
const (
	Success = "success"
	Error   = "error"
	Info    = "info"
)

// Message is a user-facing notice with a severity level
type Message struct {
	Level string
	Text  string
}

// Set queues a notice for the next rendered page
func Set(c *gin.Context, level, text string) {
	value := url.QueryEscape(level + "|" + text)
	c.SetCookie(cookieName, value, 300, "/", "", false, true)
}

// Pop returns the pending notice, if any, and clears it
func Pop(c *gin.Context) *Message {
	raw, err := c.Cookie(cookieName)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(cookieName, "", -1, "/", "", false, true)

	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return nil
	}
	level, text, found := strings.Cut(decoded, "|")
	if !found || text == "" {
		return nil
	}
	return &Message{Level: level, Text: text}
}
