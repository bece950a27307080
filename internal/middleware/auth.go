package middleware

import (
	"net/http"

	"inkwell/internal/db"
	"inkwell/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const CheckUserKey = "user"

// LoadUser resolves the session's user_id to a models.User and sets it on
// the context for handlers and templates.
func LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")

		if userID != nil {
			var user models.User
			result := db.DB.First(&user, userID)
			if result.Error == nil {
				c.Set(CheckUserKey, &user)
			}
		}
		c.Next()
	}
}

// AuthRequired ensures a user is logged in.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); !exists {
			session := sessions.Default(c)
			session.AddFlash("You must be logged to access this content.", "warning_msg")
			_ = session.Save()
			c.Redirect(http.StatusFound, "/users/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminRequired ensures the logged-in user holds the admin role. Must run
// after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet(CheckUserKey).(*models.User)
		if !user.IsAdmin() {
			session := sessions.Default(c)
			session.AddFlash("You haven't permission to access this page.", "error_msg")
			_ = session.Save()
			c.Redirect(http.StatusFound, "/home")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GuestOnly bounces already-authenticated users away from signup/login.
func GuestOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); exists {
			session := sessions.Default(c)
			session.AddFlash("You're already logged in!", "success_msg")
			_ = session.Save()
			c.Redirect(http.StatusFound, "/home")
			c.Abort()
			return
		}
		c.Next()
	}
}
