package services

import (
	"errors"
	"fmt"

	"inkwell/internal/logger"
	"inkwell/internal/models"
	"inkwell/internal/utils"

	"gorm.io/gorm"
)

const (
	MinSlugLen  = 3
	MaxTitleLen = 100
)

// CategoryService is the admin-facing CRUD for categories. Posts hang off a
// category by display name, so rename and delete both cascade down to posts
// (and from posts to their commentaries).
type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) List() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		logger.Log.Errorw("list categories failed", "error", err)
		return nil, utils.NewStorageError(err)
	}
	return categories, nil
}

func (s *CategoryService) GetBySlug(slug string) (*models.Category, error) {
	var category models.Category
	err := s.db.Where("slug = ?", slug).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("Category not found.")
	}
	if err != nil {
		logger.Log.Errorw("get category failed", "slug", slug, "error", err)
		return nil, utils.NewStorageError(err)
	}
	return &category, nil
}

// GetByName resolves a category by its display name, the key posts carry.
func (s *CategoryService) GetByName(name string) (*models.Category, error) {
	var category models.Category
	err := s.db.Where("name = ?", name).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("Category not found.")
	}
	if err != nil {
		logger.Log.Errorw("get category failed", "name", name, "error", err)
		return nil, utils.NewStorageError(err)
	}
	return &category, nil
}

func (s *CategoryService) Create(name, slug string) (*models.Category, error) {
	if len(slug) < MinSlugLen {
		return nil, utils.NewValidationError(fmt.Sprintf("The slug is too short (minimum %d characters).", MinSlugLen))
	}
	var existing models.Category
	err := s.db.Where("slug = ?", slug).First(&existing).Error
	if err == nil {
		return nil, utils.NewValidationError("There's already a category with this slug.")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Log.Errorw("check category slug failed", "slug", slug, "error", err)
		return nil, utils.NewStorageError(err)
	}

	category := models.Category{Name: name, Slug: slug}
	if err := s.db.Create(&category).Error; err != nil {
		logger.Log.Errorw("create category failed", "slug", slug, "error", err)
		return nil, utils.NewStorageError(err)
	}
	return &category, nil
}

// Edit renames a category and/or changes its slug. A renamed display name is
// propagated to every post carrying the old one, keeping the denormalized
// key resolvable.
func (s *CategoryService) Edit(id uint, name, slug string) (*models.Category, error) {
	var category models.Category
	err := s.db.First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("Category not found.")
	}
	if err != nil {
		logger.Log.Errorw("get category failed", "id", id, "error", err)
		return nil, utils.NewStorageError(err)
	}

	if len(slug) < MinSlugLen {
		return nil, utils.NewValidationError(fmt.Sprintf("The slug is too short (minimum %d characters).", MinSlugLen))
	}
	var repeated models.Category
	err = s.db.Where("slug = ? AND id <> ?", slug, id).First(&repeated).Error
	if err == nil {
		return nil, utils.NewValidationError("There's already a category with this slug.")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Log.Errorw("check category slug failed", "slug", slug, "error", err)
		return nil, utils.NewStorageError(err)
	}

	oldName := category.Name
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&category).Updates(map[string]interface{}{"name": name, "slug": slug}).Error; err != nil {
			return err
		}
		if oldName != name {
			if err := tx.Model(&models.Post{}).Where("category = ?", oldName).Update("category", name).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Log.Errorw("edit category failed", "id", id, "error", err)
		return nil, utils.NewStorageError(err)
	}
	category.Name = name
	category.Slug = slug
	return &category, nil
}

// Delete removes the category, its posts, and those posts' commentaries in
// one transaction.
func (s *CategoryService) Delete(slug string) error {
	category, err := s.GetBySlug(slug)
	if err != nil {
		return err
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		var slugs []string
		if err := tx.Model(&models.Post{}).Where("category = ?", category.Name).Pluck("slug", &slugs).Error; err != nil {
			return err
		}
		if len(slugs) > 0 {
			if err := tx.Where("post IN ?", slugs).Delete(&models.Commentary{}).Error; err != nil {
				return err
			}
			if err := tx.Where("category = ?", category.Name).Delete(&models.Post{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(category).Error
	})
	if txErr != nil {
		logger.Log.Errorw("delete category failed", "slug", slug, "error", txErr)
		return utils.NewStorageError(txErr)
	}
	return nil
}

// DeleteAll wipes the whole catalog: every category, post, and commentary.
func (s *CategoryService) DeleteAll() error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Commentary{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.Post{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&models.Category{}).Error
	})
	if err != nil {
		logger.Log.Errorw("delete all categories failed", "error", err)
		return utils.NewStorageError(err)
	}
	return nil
}

// PostService is the admin-facing CRUD for posts. A post's category must
// name an existing category; its slug is unique and doubles as the key
// commentaries attach to.
type PostService struct {
	db *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

func (s *PostService) List() ([]models.Post, error) {
	var posts []models.Post
	if err := s.db.Order("created_at DESC").Find(&posts).Error; err != nil {
		logger.Log.Errorw("list posts failed", "error", err)
		return nil, utils.NewStorageError(err)
	}
	return posts, nil
}

func (s *PostService) ListByCategory(name string) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.Where("category = ?", name).Order("created_at DESC").Find(&posts).Error
	if err != nil {
		logger.Log.Errorw("list posts by category failed", "category", name, "error", err)
		return nil, utils.NewStorageError(err)
	}
	return posts, nil
}

func (s *PostService) ListByAuthor(author string) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.Where("author = ?", author).Order("created_at DESC").Find(&posts).Error
	if err != nil {
		logger.Log.Errorw("list posts by author failed", "author", author, "error", err)
		return nil, utils.NewStorageError(err)
	}
	return posts, nil
}

func (s *PostService) GetBySlug(slug string) (*models.Post, error) {
	var post models.Post
	err := s.db.Where("slug = ?", slug).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("Post not found.")
	}
	if err != nil {
		logger.Log.Errorw("get post failed", "slug", slug, "error", err)
		return nil, utils.NewStorageError(err)
	}
	return &post, nil
}

func (s *PostService) validate(title, category, slug string, excludeID uint) error {
	if title == "" {
		return utils.NewValidationError("The post needs a title.")
	}
	if len(title) > MaxTitleLen {
		return utils.NewValidationError(fmt.Sprintf("Post's title is too big (maximum %d characters).", MaxTitleLen))
	}
	if len(slug) < MinSlugLen {
		return utils.NewValidationError(fmt.Sprintf("Post's slug is too short (minimum %d characters).", MinSlugLen))
	}

	var cat models.Category
	err := s.db.Where("name = ?", category).First(&cat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NewValidationError("Invalid category.")
	}
	if err != nil {
		logger.Log.Errorw("check post category failed", "category", category, "error", err)
		return utils.NewStorageError(err)
	}

	var repeated models.Post
	err = s.db.Where("slug = ? AND id <> ?", slug, excludeID).First(&repeated).Error
	if err == nil {
		return utils.NewValidationError("The informed slug already exists.")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Log.Errorw("check post slug failed", "slug", slug, "error", err)
		return utils.NewStorageError(err)
	}
	return nil
}

func (s *PostService) Create(title, description, category, body, slug, author string) (*models.Post, error) {
	if err := s.validate(title, category, slug, 0); err != nil {
		return nil, err
	}

	post := models.Post{
		Title:       title,
		Description: description,
		Category:    category,
		Body:        body,
		Slug:        slug,
		Author:      author,
	}
	if err := s.db.Create(&post).Error; err != nil {
		logger.Log.Errorw("create post failed", "slug", slug, "error", err)
		return nil, utils.NewStorageError(err)
	}
	return &post, nil
}

func (s *PostService) Edit(id uint, title, description, category, body, slug string) (*models.Post, error) {
	var post models.Post
	err := s.db.First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("Post not found.")
	}
	if err != nil {
		logger.Log.Errorw("get post failed", "id", id, "error", err)
		return nil, utils.NewStorageError(err)
	}

	if err := s.validate(title, category, slug, id); err != nil {
		return nil, err
	}

	oldSlug := post.Slug
	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"title":       title,
			"description": description,
			"category":    category,
			"body":        body,
			"slug":        slug,
		}
		if err := tx.Model(&post).Updates(updates).Error; err != nil {
			return err
		}
		// Commentaries key on the slug; keep them attached across a change.
		if oldSlug != slug {
			return tx.Model(&models.Commentary{}).Where("post = ?", oldSlug).Update("post", slug).Error
		}
		return nil
	})
	if err != nil {
		logger.Log.Errorw("edit post failed", "id", id, "error", err)
		return nil, utils.NewStorageError(err)
	}
	return &post, nil
}

// Delete removes the post and every commentary attached to it.
func (s *PostService) Delete(slug string) error {
	post, err := s.GetBySlug(slug)
	if err != nil {
		return err
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post = ?", post.Slug).Delete(&models.Commentary{}).Error; err != nil {
			return err
		}
		return tx.Delete(post).Error
	})
	if txErr != nil {
		logger.Log.Errorw("delete post failed", "slug", slug, "error", txErr)
		return utils.NewStorageError(txErr)
	}
	return nil
}
