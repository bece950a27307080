package handlers

import (
	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Flash kinds, matching the template variables they surface as.
const (
	flashSuccess = "success_msg"
	flashError   = "error_msg"
	flashWarning = "warning_msg"
)

// Flash queues a one-shot message that survives the next redirect and is
// drained by Render on the page the user lands on.
func Flash(c *gin.Context, kind, message string) {
	session := sessions.Default(c)
	session.AddFlash(message, kind)
	_ = session.Save()
}

func FlashSuccess(c *gin.Context, message string) { Flash(c, flashSuccess, message) }
func FlashError(c *gin.Context, message string)   { Flash(c, flashError, message) }
func FlashWarning(c *gin.Context, message string) { Flash(c, flashWarning, message) }

func takeFlashes(c *gin.Context, kind string) []string {
	session := sessions.Default(c)
	raw := session.Flashes(kind)
	if len(raw) == 0 {
		return nil
	}
	_ = session.Save()
	msgs := make([]string, 0, len(raw))
	for _, m := range raw {
		if s, ok := m.(string); ok {
			msgs = append(msgs, s)
		}
	}
	return msgs
}

// Render injects the current user and any queued flash messages into every
// page before handing off to the template.
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	// Always present so templates can compare against them for guests too.
	obj["Username"] = ""
	obj["IsAdmin"] = false
	if user, exists := c.Get(middleware.CheckUserKey); exists {
		u := user.(*models.User)
		obj["CurrentUser"] = u
		obj["Username"] = u.Username
		obj["IsAdmin"] = u.IsAdmin()
	}

	obj["SuccessMsgs"] = takeFlashes(c, flashSuccess)
	obj["ErrorMsgs"] = takeFlashes(c, flashError)
	obj["WarningMsgs"] = takeFlashes(c, flashWarning)
	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// CurrentUsername returns the authenticated username, or "" for guests.
func CurrentUsername(c *gin.Context) string {
	if user, exists := c.Get(middleware.CheckUserKey); exists {
		return user.(*models.User).Username
	}
	return ""
}
