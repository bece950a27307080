package handlers

import (
	"net/http"

	"inkwell/internal/db"
	"inkwell/internal/models"
	"inkwell/internal/services"
	"inkwell/internal/utils"

	"github.com/gin-gonic/gin"
)

// CommentaryHandler exposes the comment/reply endpoints. Authorship is
// checked twice: the author form field must match the session identity
// before anything is created, and the service re-checks ownership on every
// mutation.
type CommentaryHandler struct {
	commentaries *services.CommentaryService
	posts        *services.PostService
}

func NewCommentaryHandler() *CommentaryHandler {
	return &CommentaryHandler{
		commentaries: services.NewCommentaryService(db.DB),
		posts:        services.NewPostService(db.DB),
	}
}

// postExists is the boundary-layer existence check for the denormalized
// post key; the thread model itself treats the slug as opaque.
func (h *CommentaryHandler) postExists(slug string) bool {
	_, err := h.posts.GetBySlug(slug)
	return err == nil
}

// Create handles POST /read: a new top-level commentary.
func (h *CommentaryHandler) Create(c *gin.Context) {
	author := c.PostForm("author")
	body := c.PostForm("commentary")
	post := c.PostForm("post")

	if author != CurrentUsername(c) {
		FlashError(c, "Validation failure.")
		c.Redirect(http.StatusFound, "/home")
		return
	}
	if !h.postExists(post) {
		FlashError(c, "Post not found.")
		c.Redirect(http.StatusFound, "/home")
		return
	}

	if _, err := h.commentaries.Create(post, author, body, ""); err != nil {
		if utils.IsErrorCode(err, utils.ErrValidation) {
			FlashError(c, err.Error())
		} else {
			FlashError(c, "It wasn't possible to save your commentary. Please, try again.")
		}
		c.Redirect(http.StatusFound, "/read/"+post)
		return
	}

	FlashSuccess(c, "Commentary successfully added!")
	c.Redirect(http.StatusFound, "/read/"+post)
}

// CreateAnswer handles POST /answer: a reply to a top-level commentary.
func (h *CommentaryHandler) CreateAnswer(c *gin.Context) {
	reference := c.PostForm("id")
	author := c.PostForm("author")
	body := c.PostForm("answer")
	post := c.PostForm("post")

	if author != CurrentUsername(c) {
		FlashError(c, "Validation failure.")
		c.Redirect(http.StatusFound, "/home")
		return
	}
	if !h.postExists(post) {
		FlashError(c, "Post not found.")
		c.Redirect(http.StatusFound, "/home")
		return
	}
	// An empty id would read as a top-level commentary, not an answer.
	if reference == "" {
		FlashError(c, "Commentary not found.")
		c.Redirect(http.StatusFound, "/read/"+post)
		return
	}

	if _, err := h.commentaries.Create(post, author, body, reference); err != nil {
		switch {
		case utils.IsErrorCode(err, utils.ErrNotFound):
			FlashError(c, "Commentary not found.")
		case utils.IsErrorCode(err, utils.ErrValidation):
			FlashError(c, err.Error())
		default:
			FlashError(c, "It wasn't possible to save your answer. Please, try again.")
		}
		c.Redirect(http.StatusFound, "/read/"+post)
		return
	}

	FlashSuccess(c, "Answer successfully sent!")
	c.Redirect(http.StatusFound, "/read/"+post)
}

// load fetches the target commentary for the edit/delete pages, handling
// the not-found and ownership failures with the appropriate flash and
// redirect. kind is "commentary" or "answer" for message wording.
func (h *CommentaryHandler) load(c *gin.Context, cid, kind, verb string) *models.Commentary {
	commentary, err := h.commentaries.Get(cid)
	if err != nil {
		if utils.IsErrorCode(err, utils.ErrNotFound) {
			if kind == "answer" {
				FlashError(c, "Answer not found.")
			} else {
				FlashError(c, "Commentary not found.")
			}
		} else {
			FlashError(c, "It wasn't possible to load the "+kind+". Please, try again.")
		}
		c.Redirect(http.StatusFound, "/home")
		return nil
	}
	// The answer pages only operate on answers; a top-level cid through
	// them would otherwise cascade on delete.
	if kind == "answer" && !commentary.IsAnswer() {
		FlashError(c, "Answer not found.")
		c.Redirect(http.StatusFound, "/home")
		return nil
	}
	if commentary.Author != CurrentUsername(c) {
		FlashError(c, "You cannot "+verb+" this "+kind+", because you aren't its author.")
		c.Redirect(http.StatusFound, "/read/"+commentary.Post)
		return nil
	}
	return commentary
}

// Index handles the bare GET /commentary.
func (h *CommentaryHandler) Index(c *gin.Context) {
	c.Redirect(http.StatusFound, "/home")
}

// AnswerIndex handles the bare GET /answer.
func (h *CommentaryHandler) AnswerIndex(c *gin.Context) {
	c.Redirect(http.StatusFound, "/home")
}

// EditIndex handles the bare GET /commentary/edit.
func (h *CommentaryHandler) EditIndex(c *gin.Context) {
	FlashWarning(c, "You need a commentary to edit it.")
	c.Redirect(http.StatusFound, "/home")
}

func (h *CommentaryHandler) ShowEdit(c *gin.Context) {
	if commentary := h.load(c, c.Param("id"), "commentary", "edit"); commentary != nil {
		Render(c, http.StatusOK, "commentaries/edit.html", gin.H{"Commentary": commentary})
	}
}

func (h *CommentaryHandler) Edit(c *gin.Context) {
	cid := c.PostForm("id")
	body := c.PostForm("commentary")

	commentary := h.load(c, cid, "commentary", "edit")
	if commentary == nil {
		return
	}

	if _, err := h.commentaries.Edit(cid, CurrentUsername(c), body); err != nil {
		if utils.IsErrorCode(err, utils.ErrValidation) {
			FlashError(c, err.Error())
		} else {
			FlashError(c, "It wasn't possible to edit your commentary. Please, try again.")
		}
		c.Redirect(http.StatusFound, "/read/"+commentary.Post)
		return
	}

	FlashSuccess(c, "Commentary successfully edited!")
	c.Redirect(http.StatusFound, "/read/"+commentary.Post)
}

// DeleteIndex handles the bare GET /commentary/delete.
func (h *CommentaryHandler) DeleteIndex(c *gin.Context) {
	FlashWarning(c, "You need a commentary to delete it.")
	c.Redirect(http.StatusFound, "/home")
}

func (h *CommentaryHandler) ShowDelete(c *gin.Context) {
	if commentary := h.load(c, c.Param("id"), "commentary", "delete"); commentary != nil {
		Render(c, http.StatusOK, "commentaries/delete.html", gin.H{"Commentary": commentary})
	}
}

// Delete removes a top-level commentary and, with it, every answer in its
// thread.
func (h *CommentaryHandler) Delete(c *gin.Context) {
	cid := c.PostForm("id")

	commentary := h.load(c, cid, "commentary", "delete")
	if commentary == nil {
		return
	}

	if err := h.commentaries.Delete(cid, CurrentUsername(c)); err != nil {
		FlashError(c, "It wasn't possible to delete your commentary. Please, try again.")
		c.Redirect(http.StatusFound, "/read/"+commentary.Post)
		return
	}

	FlashSuccess(c, "Commentary successfully deleted!")
	c.Redirect(http.StatusFound, "/read/"+commentary.Post)
}

// AnswerEditIndex handles the bare GET /answer/edit.
func (h *CommentaryHandler) AnswerEditIndex(c *gin.Context) {
	FlashWarning(c, "You need an answer to edit it.")
	c.Redirect(http.StatusFound, "/home")
}

func (h *CommentaryHandler) ShowAnswerEdit(c *gin.Context) {
	if answer := h.load(c, c.Param("id"), "answer", "edit"); answer != nil {
		Render(c, http.StatusOK, "answers/edit.html", gin.H{"Answer": answer})
	}
}

func (h *CommentaryHandler) AnswerEdit(c *gin.Context) {
	cid := c.PostForm("id")
	body := c.PostForm("answer")

	answer := h.load(c, cid, "answer", "edit")
	if answer == nil {
		return
	}

	if _, err := h.commentaries.Edit(cid, CurrentUsername(c), body); err != nil {
		if utils.IsErrorCode(err, utils.ErrValidation) {
			FlashError(c, err.Error())
		} else {
			FlashError(c, "It wasn't possible to edit your answer. Please, try again.")
		}
		c.Redirect(http.StatusFound, "/read/"+answer.Post)
		return
	}

	FlashSuccess(c, "Answer successfully edited!")
	c.Redirect(http.StatusFound, "/read/"+answer.Post)
}

// AnswerDeleteIndex handles the bare GET /answer/delete.
func (h *CommentaryHandler) AnswerDeleteIndex(c *gin.Context) {
	FlashWarning(c, "You need an answer to delete it.")
	c.Redirect(http.StatusFound, "/home")
}

func (h *CommentaryHandler) ShowAnswerDelete(c *gin.Context) {
	if answer := h.load(c, c.Param("id"), "answer", "delete"); answer != nil {
		Render(c, http.StatusOK, "answers/delete.html", gin.H{"Answer": answer})
	}
}

// AnswerDelete removes a single answer. Answers have no children, so there
// is nothing to cascade.
func (h *CommentaryHandler) AnswerDelete(c *gin.Context) {
	cid := c.PostForm("id")

	answer := h.load(c, cid, "answer", "delete")
	if answer == nil {
		return
	}

	if err := h.commentaries.Delete(cid, CurrentUsername(c)); err != nil {
		FlashError(c, "It wasn't possible to delete your answer. Please, try again.")
		c.Redirect(http.StatusFound, "/read/"+answer.Post)
		return
	}

	FlashSuccess(c, "Answer successfully deleted!")
	c.Redirect(http.StatusFound, "/home")
}
