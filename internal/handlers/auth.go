package handlers

import (
	"fmt"
	"net/http"
	"regexp"

	"inkwell/internal/db"
	"inkwell/internal/models"
	"inkwell/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	minUsernameLen = 3
	minPasswordLen = 8
)

// Usernames are plain letters and digits; they end up in URLs and on disk
// as avatar filenames.
var usernameRe = regexp.MustCompile(`^[a-zA-Z\d]+$`)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

func (h *AuthHandler) ShowSignup(c *gin.Context) {
	Render(c, http.StatusOK, "users/signup.html", gin.H{"FormUsername": "", "FormEmail": ""})
}

func (h *AuthHandler) Signup(c *gin.Context) {
	username := c.PostForm("username")
	email := c.PostForm("email")
	email2 := c.PostForm("email2")
	password := c.PostForm("password")
	password2 := c.PostForm("password2")

	formData := gin.H{"FormUsername": username, "FormEmail": email}

	var errors []string
	if len(username) < minUsernameLen {
		errors = append(errors, fmt.Sprintf("The chosen username is too short (minimum %d characters).", minUsernameLen))
	}
	if !usernameRe.MatchString(username) {
		errors = append(errors, "Invalid characters in username (must contain only letters and numbers).")
	}
	if email != email2 {
		errors = append(errors, "The e-mails do not match.")
	}
	if password != password2 {
		errors = append(errors, "The passwords do not match.")
	} else if len(password) < minPasswordLen {
		errors = append(errors, fmt.Sprintf("The chosen password is too short (minimum %d characters).", minPasswordLen))
	}

	if len(errors) == 0 {
		var count int64
		db.DB.Model(&models.User{}).Where("username = ?", username).Count(&count)
		if count > 0 {
			errors = append(errors, "Username already registered.")
		}
		count = 0
		db.DB.Model(&models.User{}).Where("email = ?", email).Count(&count)
		if count > 0 {
			errors = append(errors, "E-mail already registered.")
		}
	}

	if len(errors) > 0 {
		formData["Errors"] = errors
		Render(c, http.StatusBadRequest, "users/signup.html", formData)
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		FlashError(c, "Something went wrong while creating your account. Please, try again.")
		c.Redirect(http.StatusFound, "/users/signup")
		return
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: hash,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		FlashError(c, "Something went wrong while creating your account. Please, try again.")
		c.Redirect(http.StatusFound, "/users/signup")
		return
	}

	if err := db.DB.Create(&models.Profile{UserID: user.ID}).Error; err != nil {
		FlashWarning(c, "Your account has been created, however, some configurations may have errors. Contact an administrator if you see any abnormalities.")
		c.Redirect(http.StatusFound, "/home")
		return
	}

	FlashSuccess(c, "Account successfully registered! Log in to use it.")
	c.Redirect(http.StatusFound, "/users/login")
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "users/login.html", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	var user models.User
	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		FlashError(c, "Incorrect e-mail and/or password.")
		c.Redirect(http.StatusFound, "/users/login")
		return
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		FlashError(c, "Incorrect e-mail and/or password.")
		c.Redirect(http.StatusFound, "/users/login")
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	_ = session.Save()

	c.Redirect(http.StatusFound, "/home")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	_ = session.Save()
	FlashSuccess(c, "Successfully logged out!")
	c.Redirect(http.StatusFound, "/home")
}
