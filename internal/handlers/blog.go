package handlers

import (
	"html/template"
	"net/http"
	"time"

	"inkwell/internal/db"
	"inkwell/internal/models"
	"inkwell/internal/services"
	"inkwell/internal/utils"

	"github.com/gin-gonic/gin"
)

const homeCacheKey = "page:home"

// BlogHandler serves the reader-facing pages: the home listing and the
// post read view with its commentary thread.
type BlogHandler struct {
	posts        *services.PostService
	categories   *services.CategoryService
	commentaries *services.CommentaryService
}

func NewBlogHandler() *BlogHandler {
	return &BlogHandler{
		posts:        services.NewPostService(db.DB),
		categories:   services.NewCategoryService(db.DB),
		commentaries: services.NewCommentaryService(db.DB),
	}
}

func (h *BlogHandler) Root(c *gin.Context) {
	c.Redirect(http.StatusFound, "/home")
}

func (h *BlogHandler) Home(c *gin.Context) {
	var posts []models.Post
	if cached := utils.GetCache().Get(homeCacheKey); cached != nil {
		posts = cached.([]models.Post)
	} else {
		var err error
		posts, err = h.posts.List()
		if err != nil {
			FlashError(c, "It wasn't possible to load the posts. Please, try again.")
			Render(c, http.StatusOK, "index/home.html", gin.H{"Posts": nil})
			return
		}
		utils.GetCache().Set(homeCacheKey, posts, 1*time.Minute)
	}

	Render(c, http.StatusOK, "index/home.html", gin.H{
		"Posts": posts,
		"Title": "Home",
	})
}

// commentaryView pairs a commentary with its rendered body for templates.
type commentaryView struct {
	models.Commentary
	BodyHTML template.HTML
}

func renderCommentaries(commentaries []models.Commentary) []commentaryView {
	views := make([]commentaryView, len(commentaries))
	for i, com := range commentaries {
		views[i] = commentaryView{
			Commentary: com,
			BodyHTML:   utils.RenderMarkdown(com.Body),
		}
	}
	return views
}

func (h *BlogHandler) ReadIndex(c *gin.Context) {
	c.Redirect(http.StatusFound, "/home")
}

// Read shows a post with its top-level commentaries (newest first) and
// answer threads (oldest first).
func (h *BlogHandler) Read(c *gin.Context) {
	slug := c.Param("slug")

	post, err := h.posts.GetBySlug(slug)
	if err != nil {
		if utils.IsErrorCode(err, utils.ErrNotFound) {
			FlashError(c, "Post not found.")
		} else {
			FlashError(c, "It wasn't possible to load the post. Please, try again.")
		}
		c.Redirect(http.StatusFound, "/home")
		return
	}

	commentaries, err := h.commentaries.ListTopLevel(slug)
	if err != nil {
		FlashError(c, "It wasn't possible to load the commentaries. Please, try again.")
		c.Redirect(http.StatusFound, "/home")
		return
	}
	answers, err := h.commentaries.ListReplies(slug)
	if err != nil {
		FlashError(c, "It wasn't possible to load the commentaries. Please, try again.")
		c.Redirect(http.StatusFound, "/home")
		return
	}

	// The category can be absent when the catalog got out of sync; the page
	// still renders without it.
	category, _ := h.categories.GetByName(post.Category)

	Render(c, http.StatusOK, "index/read.html", gin.H{
		"Post":         post,
		"PostBody":     utils.RenderMarkdown(post.Body),
		"Commentaries": renderCommentaries(commentaries),
		"Answers":      renderCommentaries(answers),
		"Category":     category,
		"Title":        post.Title,
	})
}

func (h *BlogHandler) Error(c *gin.Context) {
	Render(c, http.StatusOK, "index/error.html", nil)
}
