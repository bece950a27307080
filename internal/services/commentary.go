package services

import (
	"errors"

	"inkwell/internal/logger"
	"inkwell/internal/models"
	"inkwell/internal/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommentaryService owns the two-level comment/reply structure of a post:
// flat top-level commentaries plus single-level answers referencing them by
// Cid. All authorship rules live here; handlers only map failures to flash
// messages and redirects.
type CommentaryService struct {
	db *gorm.DB
}

func NewCommentaryService(db *gorm.DB) *CommentaryService {
	return &CommentaryService{db: db}
}

// ListTopLevel returns the post's top-level commentaries, newest first.
// An empty result is not an error.
func (s *CommentaryService) ListTopLevel(post string) ([]models.Commentary, error) {
	var commentaries []models.Commentary
	err := s.db.
		Where("post = ? AND reference = ''", post).
		Order("created_at DESC").
		Find(&commentaries).Error
	if err != nil {
		logger.Log.Errorw("list top-level commentaries failed", "post", post, "error", err)
		return nil, utils.NewStorageError(err)
	}
	return commentaries, nil
}

// ListReplies returns the post's answers, oldest first, so a thread reads
// top to bottom in submission order.
func (s *CommentaryService) ListReplies(post string) ([]models.Commentary, error) {
	var answers []models.Commentary
	err := s.db.
		Where("post = ? AND reference <> ''", post).
		Order("created_at ASC").
		Find(&answers).Error
	if err != nil {
		logger.Log.Errorw("list answers failed", "post", post, "error", err)
		return nil, utils.NewStorageError(err)
	}
	return answers, nil
}

// ListByAuthor returns the author's top-level commentaries and answers,
// both newest first, for profile pages.
func (s *CommentaryService) ListByAuthor(author string) (commentaries, answers []models.Commentary, err error) {
	err = s.db.
		Where("author = ? AND reference = ''", author).
		Order("created_at DESC").
		Find(&commentaries).Error
	if err == nil {
		err = s.db.
			Where("author = ? AND reference <> ''", author).
			Order("created_at DESC").
			Find(&answers).Error
	}
	if err != nil {
		logger.Log.Errorw("list commentaries by author failed", "author", author, "error", err)
		return nil, nil, utils.NewStorageError(err)
	}
	return commentaries, answers, nil
}

// Create stores a new commentary. An empty reference makes it top-level; a
// non-empty reference must name an existing top-level commentary, which keeps
// threads exactly one level deep.
func (s *CommentaryService) Create(post, author, body, reference string) (*models.Commentary, error) {
	if body == "" {
		return nil, utils.NewValidationError("The commentary cannot be empty.")
	}

	if reference != "" {
		var parent models.Commentary
		err := s.db.Where("cid = ?", reference).First(&parent).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("Commentary not found.")
		}
		if err != nil {
			logger.Log.Errorw("look up parent commentary failed", "cid", reference, "error", err)
			return nil, utils.NewStorageError(err)
		}
		if parent.IsAnswer() {
			return nil, utils.NewValidationError("You can only answer a top-level commentary.")
		}
	}

	commentary := models.Commentary{
		Cid:       uuid.NewString(),
		Author:    author,
		Body:      body,
		Post:      post,
		Reference: reference,
	}
	if err := s.db.Create(&commentary).Error; err != nil {
		logger.Log.Errorw("create commentary failed", "post", post, "author", author, "error", err)
		return nil, utils.NewStorageError(err)
	}
	return &commentary, nil
}

// Get loads a commentary by Cid.
func (s *CommentaryService) Get(cid string) (*models.Commentary, error) {
	var commentary models.Commentary
	err := s.db.Where("cid = ?", cid).First(&commentary).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("Commentary not found.")
	}
	if err != nil {
		logger.Log.Errorw("get commentary failed", "cid", cid, "error", err)
		return nil, utils.NewStorageError(err)
	}
	return &commentary, nil
}

// Edit replaces the body of the commentary. Only the original author may do
// so; every other field is immutable.
func (s *CommentaryService) Edit(cid, requestingUser, newBody string) (*models.Commentary, error) {
	commentary, err := s.Get(cid)
	if err != nil {
		return nil, err
	}
	if commentary.Author != requestingUser {
		return nil, utils.NewForbiddenError("You aren't the author of this commentary.")
	}
	if newBody == "" {
		return nil, utils.NewValidationError("The commentary cannot be empty.")
	}

	if err := s.db.Model(commentary).Update("body", newBody).Error; err != nil {
		logger.Log.Errorw("edit commentary failed", "cid", cid, "error", err)
		return nil, utils.NewStorageError(err)
	}
	commentary.Body = newBody
	return commentary, nil
}

// Delete removes the commentary. Deleting a top-level commentary also removes
// every answer referencing it; both phases run in one transaction so a crash
// cannot leave orphaned answers. Deleting an answer removes exactly one row.
func (s *CommentaryService) Delete(cid, requestingUser string) error {
	commentary, err := s.Get(cid)
	if err != nil {
		return err
	}
	if commentary.Author != requestingUser {
		return utils.NewForbiddenError("You aren't the author of this commentary.")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if !commentary.IsAnswer() {
			if err := tx.Where("reference = ?", commentary.Cid).Delete(&models.Commentary{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(commentary).Error
	})
	if err != nil {
		logger.Log.Errorw("delete commentary failed", "cid", cid, "error", err)
		return utils.NewStorageError(err)
	}
	return nil
}
