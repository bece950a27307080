package handlers

import (
	"net/http"

	"inkwell/internal/db"
	"inkwell/internal/services"
	"inkwell/internal/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler manages the content catalog: categories and posts. Every
// route behind it requires the admin role.
type AdminHandler struct {
	categories   *services.CategoryService
	posts        *services.PostService
	commentaries *services.CommentaryService
}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{
		categories:   services.NewCategoryService(db.DB),
		posts:        services.NewPostService(db.DB),
		commentaries: services.NewCommentaryService(db.DB),
	}
}

func (h *AdminHandler) invalidateHome() {
	utils.GetCache().Delete(homeCacheKey)
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	Render(c, http.StatusOK, "admin/admin.html", gin.H{"Title": "Administration"})
}

// flashServiceError maps a service failure to the right flash message.
func flashServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case utils.IsErrorCode(err, utils.ErrValidation), utils.IsErrorCode(err, utils.ErrNotFound):
		FlashError(c, err.Error())
	default:
		FlashError(c, fallback)
	}
}

// Categories

func (h *AdminHandler) ListCategories(c *gin.Context) {
	categories, err := h.categories.List()
	if err != nil {
		FlashError(c, "It wasn't possible to load the categories. Please, try again.")
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	Render(c, http.StatusOK, "admin/categories/all.html", gin.H{
		"Categories": categories,
		"Title":      "Categories",
	})
}

func (h *AdminHandler) CategoryIndex(c *gin.Context) {
	c.Redirect(http.StatusFound, "/admin/categories")
}

// ShowCategory lists a category's posts for the admin.
func (h *AdminHandler) ShowCategory(c *gin.Context) {
	category, err := h.categories.GetBySlug(c.Param("slug"))
	if err != nil {
		flashServiceError(c, err, "It wasn't possible to load the category. Please, try again.")
		c.Redirect(http.StatusFound, "/admin/categories")
		return
	}
	posts, err := h.posts.ListByCategory(category.Name)
	if err != nil {
		FlashError(c, "It wasn't possible to load the posts. Please, try again.")
		c.Redirect(http.StatusFound, "/admin/categories")
		return
	}
	Render(c, http.StatusOK, "admin/categories/specific.html", gin.H{
		"Category": category,
		"Posts":    posts,
		"Title":    category.Name,
	})
}

func (h *AdminHandler) ShowAddCategory(c *gin.Context) {
	Render(c, http.StatusOK, "admin/categories/add.html", gin.H{"MinSlug": services.MinSlugLen})
}

func (h *AdminHandler) AddCategory(c *gin.Context) {
	name := c.PostForm("category")
	slug := c.PostForm("slug")

	if _, err := h.categories.Create(name, slug); err != nil {
		if utils.IsErrorCode(err, utils.ErrValidation) {
			Render(c, http.StatusBadRequest, "admin/categories/add.html", gin.H{
				"Errors":  []string{err.Error()},
				"MinSlug": services.MinSlugLen,
			})
			return
		}
		FlashError(c, "It wasn't possible to save the category. Please, try again.")
		c.Redirect(http.StatusFound, "/admin/categories")
		return
	}

	FlashSuccess(c, "Category successfully saved!")
	c.Redirect(http.StatusFound, "/admin/categories")
}

func (h *AdminHandler) EditCategoryIndex(c *gin.Context) {
	c.Redirect(http.StatusFound, "/admin/categories")
}

func (h *AdminHandler) ShowEditCategory(c *gin.Context) {
	category, err := h.categories.GetBySlug(c.Param("slug"))
	if err != nil {
		flashServiceError(c, err, "It wasn't possible to load the category. Please, try again.")
		c.Redirect(http.StatusFound, "/admin/categories")
		return
	}
	Render(c, http.StatusOK, "admin/categories/edit.html", gin.H{
		"Category": category,
		"MinSlug":  services.MinSlugLen,
	})
}

func (h *AdminHandler) EditCategory(c *gin.Context) {
	id := utils.StringToUint(c.PostForm("id"))
	name := c.PostForm("category")
	slug := c.PostForm("slug")
	previousSlug := c.PostForm("previous_slug")

	category, err := h.categories.Edit(id, name, slug)
	if err != nil {
		flashServiceError(c, err, "It wasn't possible to save the category. Please, try again.")
		if utils.IsErrorCode(err, utils.ErrValidation) && previousSlug != "" {
			c.Redirect(http.StatusFound, "/admin/categories/edit/"+previousSlug)
			return
		}
		c.Redirect(http.StatusFound, "/admin/categories")
		return
	}

	h.invalidateHome()
	FlashSuccess(c, "Category \""+category.Name+"\" successfully saved!")
	c.Redirect(http.StatusFound, "/admin/categories")
}

func (h *AdminHandler) DeleteCategoryIndex(c *gin.Context) {
	c.Redirect(http.StatusFound, "/admin/categories")
}

func (h *AdminHandler) ShowDeleteCategory(c *gin.Context) {
	category, err := h.categories.GetBySlug(c.Param("slug"))
	if err != nil {
		flashServiceError(c, err, "It wasn't possible to load the category. Please, try again.")
		c.Redirect(http.StatusFound, "/admin/categories")
		return
	}
	Render(c, http.StatusOK, "admin/categories/delete.html", gin.H{"Category": category})
}

// DeleteCategory removes the category with its posts and their
// commentaries.
func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	slug := c.PostForm("slug")
	name := c.PostForm("category")

	if err := h.categories.Delete(slug); err != nil {
		flashServiceError(c, err, "It wasn't possible to delete the category. Please, try again.")
		c.Redirect(http.StatusFound, "/admin/categories")
		return
	}

	h.invalidateHome()
	FlashSuccess(c, "Category "+name+" successfully deleted!")
	c.Redirect(http.StatusFound, "/admin/categories")
}

func (h *AdminHandler) ShowDeleteAll(c *gin.Context) {
	Render(c, http.StatusOK, "admin/categories/delete_all.html", nil)
}

func (h *AdminHandler) DeleteAll(c *gin.Context) {
	if err := h.categories.DeleteAll(); err != nil {
		FlashError(c, "It wasn't possible to delete the catalog. Please, try again.")
		c.Redirect(http.StatusFound, "/admin/categories")
		return
	}

	h.invalidateHome()
	FlashSuccess(c, "All categories, posts and commentaries have been successfully deleted!")
	c.Redirect(http.StatusFound, "/admin/categories")
}

// Posts

func (h *AdminHandler) ListPosts(c *gin.Context) {
	posts, err := h.posts.List()
	if err != nil {
		FlashError(c, "It wasn't possible to load the posts. Please, try again.")
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	Render(c, http.StatusOK, "admin/posts/all.html", gin.H{
		"Posts": posts,
		"Title": "Posts",
	})
}

func (h *AdminHandler) ShowAddPost(c *gin.Context) {
	categories, err := h.categories.List()
	if err != nil || len(categories) == 0 {
		FlashError(c, "It isn't possible to create a post because there's no categories created.")
		c.Redirect(http.StatusFound, "/admin/posts")
		return
	}
	Render(c, http.StatusOK, "admin/posts/add.html", gin.H{
		"Categories": categories,
		"MinSlug":    services.MinSlugLen,
	})
}

func (h *AdminHandler) AddPost(c *gin.Context) {
	title := c.PostForm("title")
	description := c.PostForm("description")
	category := c.PostForm("category")
	body := c.PostForm("post")
	slug := c.PostForm("slug")

	if _, err := h.posts.Create(title, description, category, body, slug, CurrentUsername(c)); err != nil {
		if utils.IsErrorCode(err, utils.ErrValidation) {
			categories, _ := h.categories.List()
			Render(c, http.StatusBadRequest, "admin/posts/add.html", gin.H{
				"Errors":     []string{err.Error()},
				"Categories": categories,
				"MinSlug":    services.MinSlugLen,
			})
			return
		}
		FlashError(c, "It wasn't possible to save the post. Please, try again.")
		c.Redirect(http.StatusFound, "/admin/posts")
		return
	}

	h.invalidateHome()
	FlashSuccess(c, "Post successfully saved!")
	c.Redirect(http.StatusFound, "/admin/posts")
}

func (h *AdminHandler) ReadPostIndex(c *gin.Context) {
	c.Redirect(http.StatusFound, "/admin/posts")
}

// ReadPost shows a post with its whole commentary thread, as the readers
// see it.
func (h *AdminHandler) ReadPost(c *gin.Context) {
	slug := c.Param("slug")

	post, err := h.posts.GetBySlug(slug)
	if err != nil {
		flashServiceError(c, err, "It wasn't possible to load the post. Please, try again.")
		c.Redirect(http.StatusFound, "/admin/posts")
		return
	}

	commentaries, err := h.commentaries.ListTopLevel(slug)
	if err != nil {
		FlashError(c, "It wasn't possible to load the commentaries. Please, try again.")
		c.Redirect(http.StatusFound, "/admin/posts")
		return
	}
	answers, err := h.commentaries.ListReplies(slug)
	if err != nil {
		FlashError(c, "It wasn't possible to load the commentaries. Please, try again.")
		c.Redirect(http.StatusFound, "/admin/posts")
		return
	}

	Render(c, http.StatusOK, "admin/posts/read.html", gin.H{
		"Post":         post,
		"PostBody":     utils.RenderMarkdown(post.Body),
		"Commentaries": renderCommentaries(commentaries),
		"Answers":      renderCommentaries(answers),
		"Title":        post.Title,
	})
}

func (h *AdminHandler) EditPostIndex(c *gin.Context) {
	c.Redirect(http.StatusFound, "/admin/posts")
}

func (h *AdminHandler) ShowEditPost(c *gin.Context) {
	post, err := h.posts.GetBySlug(c.Param("slug"))
	if err != nil {
		flashServiceError(c, err, "It wasn't possible to load the post. Please, try again.")
		c.Redirect(http.StatusFound, "/admin/posts")
		return
	}
	categories, err := h.categories.List()
	if err != nil || len(categories) == 0 {
		FlashError(c, "It isn't possible to edit this post because there's no created categories.")
		c.Redirect(http.StatusFound, "/admin/posts")
		return
	}
	Render(c, http.StatusOK, "admin/posts/edit.html", gin.H{
		"Post":       post,
		"Categories": categories,
		"MinSlug":    services.MinSlugLen,
	})
}

func (h *AdminHandler) EditPost(c *gin.Context) {
	id := utils.StringToUint(c.PostForm("id"))
	title := c.PostForm("title")
	description := c.PostForm("description")
	category := c.PostForm("category")
	body := c.PostForm("post")
	slug := c.PostForm("slug")

	if _, err := h.posts.Edit(id, title, description, category, body, slug); err != nil {
		flashServiceError(c, err, "It wasn't possible to save the post. Please, try again.")
		if utils.IsErrorCode(err, utils.ErrValidation) {
			c.Redirect(http.StatusFound, "/admin/posts/edit/"+slug)
			return
		}
		c.Redirect(http.StatusFound, "/admin/posts")
		return
	}

	h.invalidateHome()
	FlashSuccess(c, "Post successfully edited!")
	c.Redirect(http.StatusFound, "/admin/posts")
}

func (h *AdminHandler) DeletePostIndex(c *gin.Context) {
	c.Redirect(http.StatusFound, "/admin/posts")
}

func (h *AdminHandler) ShowDeletePost(c *gin.Context) {
	post, err := h.posts.GetBySlug(c.Param("slug"))
	if err != nil {
		flashServiceError(c, err, "It wasn't possible to load the post. Please, try again.")
		c.Redirect(http.StatusFound, "/admin/posts")
		return
	}
	Render(c, http.StatusOK, "admin/posts/delete.html", gin.H{"Post": post})
}

// DeletePost removes the post together with its commentaries.
func (h *AdminHandler) DeletePost(c *gin.Context) {
	slug := c.PostForm("slug")

	if err := h.posts.Delete(slug); err != nil {
		flashServiceError(c, err, "It wasn't possible to delete the post. Please, try again.")
		c.Redirect(http.StatusFound, "/admin/posts")
		return
	}

	h.invalidateHome()
	FlashSuccess(c, "Post successfully deleted!")
	c.Redirect(http.StatusFound, "/admin/posts")
}
