package handlers

import (
	"net/http"

	"inkwell/internal/db"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/services"

	"github.com/gin-gonic/gin"
)

// UserHandler serves public profiles and the profile settings page.
type UserHandler struct {
	posts        *services.PostService
	commentaries *services.CommentaryService
	avatars      *services.AvatarService
}

func NewUserHandler() *UserHandler {
	return &UserHandler{
		posts:        services.NewPostService(db.DB),
		commentaries: services.NewCommentaryService(db.DB),
		avatars:      services.NewAvatarService(),
	}
}

func (h *UserHandler) ProfileIndex(c *gin.Context) {
	c.Redirect(http.StatusFound, "/users/profile/"+CurrentUsername(c))
}

// Profile shows a user's posts, commentaries, and answers, plus the profile
// photo and, when the owner allows it, the e-mail address.
func (h *UserHandler) Profile(c *gin.Context) {
	username := c.Param("username")

	var user models.User
	if err := db.DB.Where("username = ?", username).First(&user).Error; err != nil {
		FlashError(c, "User not found.")
		c.Redirect(http.StatusFound, "/home")
		return
	}

	commentaries, answers, err := h.commentaries.ListByAuthor(username)
	if err != nil {
		FlashError(c, "It wasn't possible to load the profile. Please, try again.")
		c.Redirect(http.StatusFound, "/home")
		return
	}
	posts, err := h.posts.ListByAuthor(username)
	if err != nil {
		FlashError(c, "It wasn't possible to load the profile. Please, try again.")
		c.Redirect(http.StatusFound, "/home")
		return
	}

	var profile models.Profile
	db.DB.Where("user_id = ?", user.ID).First(&profile)

	Render(c, http.StatusOK, "users/profile.html", gin.H{
		"ProfileUser":  user,
		"Profile":      profile,
		"Commentaries": commentaries,
		"Answers":      answers,
		"Posts":        posts,
		"PhotoURL":     h.avatars.URL(&profile),
		"Title":        user.Username,
	})
}

func (h *UserHandler) ShowEditProfile(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	var profile models.Profile
	db.DB.Where("user_id = ?", user.ID).First(&profile)

	Render(c, http.StatusOK, "users/edit_profile.html", gin.H{
		"Profile":  profile,
		"PhotoURL": h.avatars.URL(&profile),
		"Title":    "Edit profile",
	})
}

// EditProfile updates the e-mail visibility flag and, when a file was
// attached, the profile picture.
func (h *UserHandler) EditProfile(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	if c.PostForm("user") != user.Username {
		FlashError(c, "Invalid form.")
		c.Redirect(http.StatusFound, "/users/profile/"+user.Username)
		return
	}

	var profile models.Profile
	if err := db.DB.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		FlashError(c, "It wasn't possible to load your profile. Please, try again.")
		c.Redirect(http.StatusFound, "/users/profile/"+user.Username)
		return
	}

	profile.IsEmailPublic = c.PostForm("publicEmail") != ""

	if file, header, err := c.Request.FormFile("photo"); err == nil {
		defer file.Close()
		name, saveErr := h.avatars.Save(user.Username, header.Filename, header.Size, file)
		if saveErr != nil {
			FlashError(c, "An error occurred while trying to update your profile picture. Please, try again.")
			c.Redirect(http.StatusFound, "/users/profile/"+user.Username)
			return
		}
		profile.Photo = name
	}

	if err := db.DB.Save(&profile).Error; err != nil {
		FlashError(c, "It wasn't possible to save your profile. Please, try again.")
		c.Redirect(http.StatusFound, "/users/profile/"+user.Username)
		return
	}

	FlashSuccess(c, "Your profile configurations have been successfully saved!")
	c.Redirect(http.StatusFound, "/users/profile/"+user.Username)
}
