package handlers

import (
	"net/http"

	"inkwell/internal/db"
	"inkwell/internal/services"
	"inkwell/internal/utils"

	"github.com/gin-gonic/gin"
)

// CategoryHandler serves the public category browsing pages.
type CategoryHandler struct {
	categories *services.CategoryService
	posts      *services.PostService
}

func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{
		categories: services.NewCategoryService(db.DB),
		posts:      services.NewPostService(db.DB),
	}
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categories.List()
	if err != nil {
		FlashError(c, "It wasn't possible to load the categories. Please, try again.")
		c.Redirect(http.StatusFound, "/home")
		return
	}
	Render(c, http.StatusOK, "categories/all.html", gin.H{
		"Categories": categories,
		"Title":      "Categories",
	})
}

func (h *CategoryHandler) MoreIndex(c *gin.Context) {
	c.Redirect(http.StatusFound, "/categories")
}

// More lists every post under one category.
func (h *CategoryHandler) More(c *gin.Context) {
	slug := c.Param("slug")

	category, err := h.categories.GetBySlug(slug)
	if err != nil {
		if utils.IsErrorCode(err, utils.ErrNotFound) {
			FlashError(c, "Category not found.")
		} else {
			FlashError(c, "It wasn't possible to load the category. Please, try again.")
		}
		c.Redirect(http.StatusFound, "/categories")
		return
	}

	posts, err := h.posts.ListByCategory(category.Name)
	if err != nil {
		FlashError(c, "It wasn't possible to load the posts. Please, try again.")
		c.Redirect(http.StatusFound, "/categories")
		return
	}

	Render(c, http.StatusOK, "categories/more.html", gin.H{
		"Category": category,
		"Posts":    posts,
		"Title":    category.Name,
	})
}
