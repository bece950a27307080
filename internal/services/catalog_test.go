package services

import (
	"strings"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedCatalog(t *testing.T, db *gorm.DB) (*CategoryService, *PostService) {
	t.Helper()
	return NewCategoryService(db), NewPostService(db)
}

func TestCategoryCreateValidation(t *testing.T) {
	db := newTestDB(t)
	categories, _ := seedCatalog(t, db)

	_, err := categories.Create("Go", "go")
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrValidation))

	created, err := categories.Create("Go", "golang")
	require.NoError(t, err)
	assert.Equal(t, "Go", created.Name)

	_, err = categories.Create("Another Go", "golang")
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrValidation))
}

func TestCategoryListSortedByName(t *testing.T) {
	db := newTestDB(t)
	categories, _ := seedCatalog(t, db)

	for _, pair := range [][2]string{{"Databases", "databases"}, {"Algorithms", "algorithms"}, {"Compilers", "compilers"}} {
		_, err := categories.Create(pair[0], pair[1])
		require.NoError(t, err)
	}

	all, err := categories.List()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Algorithms", all[0].Name)
	assert.Equal(t, "Compilers", all[1].Name)
	assert.Equal(t, "Databases", all[2].Name)
}

func TestCategoryEditPropagatesRename(t *testing.T) {
	db := newTestDB(t)
	categories, posts := seedCatalog(t, db)

	category, err := categories.Create("Golang", "golang")
	require.NoError(t, err)
	_, err = posts.Create("Generics", "about generics", "Golang", "body", "generics", "admin")
	require.NoError(t, err)
	_, err = posts.Create("Channels", "about channels", "Golang", "body", "channels", "admin")
	require.NoError(t, err)

	edited, err := categories.Edit(category.ID, "Go", "go-lang")
	require.NoError(t, err)
	assert.Equal(t, "Go", edited.Name)
	assert.Equal(t, "go-lang", edited.Slug)

	renamed, err := posts.ListByCategory("Go")
	require.NoError(t, err)
	assert.Len(t, renamed, 2)

	orphans, err := posts.ListByCategory("Golang")
	require.NoError(t, err)
	assert.Empty(t, orphans)
}

func TestCategoryEditSlugTaken(t *testing.T) {
	db := newTestDB(t)
	categories, _ := seedCatalog(t, db)

	_, err := categories.Create("Go", "golang")
	require.NoError(t, err)
	other, err := categories.Create("Rust", "rust")
	require.NoError(t, err)

	_, err = categories.Edit(other.ID, "Rust", "golang")
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrValidation))

	// Keeping your own slug is not a collision.
	_, err = categories.Edit(other.ID, "Rustlang", "rust")
	require.NoError(t, err)
}

func TestCategoryDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	categories, posts := seedCatalog(t, db)
	commentaries := NewCommentaryService(db)

	_, err := categories.Create("Go", "golang")
	require.NoError(t, err)
	_, err = categories.Create("Rust", "rust")
	require.NoError(t, err)

	_, err = posts.Create("Generics", "", "Go", "body", "generics", "admin")
	require.NoError(t, err)
	_, err = posts.Create("Ownership", "", "Rust", "body", "ownership", "admin")
	require.NoError(t, err)

	top, err := commentaries.Create("generics", "alice", "Nice!", "")
	require.NoError(t, err)
	_, err = commentaries.Create("generics", "bob", "Agreed.", top.Cid)
	require.NoError(t, err)
	_, err = commentaries.Create("ownership", "alice", "Also nice!", "")
	require.NoError(t, err)

	require.NoError(t, categories.Delete("golang"))

	_, err = categories.GetBySlug("golang")
	assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound))
	_, err = posts.GetBySlug("generics")
	assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound))

	var count int64
	require.NoError(t, db.Model(&models.Commentary{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// The untouched category keeps its content.
	_, err = posts.GetBySlug("ownership")
	assert.NoError(t, err)
}

func TestCategoryDeleteAll(t *testing.T) {
	db := newTestDB(t)
	categories, posts := seedCatalog(t, db)
	commentaries := NewCommentaryService(db)

	_, err := categories.Create("Go", "golang")
	require.NoError(t, err)
	_, err = posts.Create("Generics", "", "Go", "body", "generics", "admin")
	require.NoError(t, err)
	_, err = commentaries.Create("generics", "alice", "Nice!", "")
	require.NoError(t, err)

	require.NoError(t, categories.DeleteAll())

	for _, model := range []interface{}{&models.Category{}, &models.Post{}, &models.Commentary{}} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Zero(t, count)
	}
}

func TestPostCreateValidation(t *testing.T) {
	db := newTestDB(t)
	categories, posts := seedCatalog(t, db)

	_, err := categories.Create("Go", "golang")
	require.NoError(t, err)

	cases := []struct {
		name     string
		title    string
		category string
		slug     string
	}{
		{"missing title", "", "Go", "a-slug"},
		{"title too big", strings.Repeat("x", MaxTitleLen+1), "Go", "a-slug"},
		{"slug too short", "Title", "Go", "ab"},
		{"unknown category", "Title", "Python", "a-slug"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := posts.Create(tc.title, "", tc.category, "body", tc.slug, "admin")
			require.Error(t, err)
			assert.True(t, utils.IsErrorCode(err, utils.ErrValidation))
		})
	}

	_, err = posts.Create("Title", "", "Go", "body", "a-slug", "admin")
	require.NoError(t, err)

	_, err = posts.Create("Other title", "", "Go", "body", "a-slug", "admin")
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrValidation))
}

func TestPostEditSlugChangeKeepsCommentaries(t *testing.T) {
	db := newTestDB(t)
	categories, posts := seedCatalog(t, db)
	commentaries := NewCommentaryService(db)

	_, err := categories.Create("Go", "golang")
	require.NoError(t, err)
	post, err := posts.Create("Generics", "", "Go", "body", "generics", "admin")
	require.NoError(t, err)
	top, err := commentaries.Create("generics", "alice", "Nice!", "")
	require.NoError(t, err)
	_, err = commentaries.Create("generics", "bob", "Agreed.", top.Cid)
	require.NoError(t, err)

	_, err = posts.Edit(post.ID, "Generics in Go", "", "Go", "body", "go-generics")
	require.NoError(t, err)

	moved, err := commentaries.ListTopLevel("go-generics")
	require.NoError(t, err)
	assert.Len(t, moved, 1)
	answers, err := commentaries.ListReplies("go-generics")
	require.NoError(t, err)
	assert.Len(t, answers, 1)

	stale, err := commentaries.ListTopLevel("generics")
	require.NoError(t, err)
	assert.Empty(t, stale)
}

func TestPostDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	categories, posts := seedCatalog(t, db)
	commentaries := NewCommentaryService(db)

	_, err := categories.Create("Go", "golang")
	require.NoError(t, err)
	_, err = posts.Create("Generics", "", "Go", "body", "generics", "admin")
	require.NoError(t, err)
	top, err := commentaries.Create("generics", "alice", "Nice!", "")
	require.NoError(t, err)
	_, err = commentaries.Create("generics", "bob", "Agreed.", top.Cid)
	require.NoError(t, err)

	require.NoError(t, posts.Delete("generics"))

	_, err = posts.GetBySlug("generics")
	assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound))

	var count int64
	require.NoError(t, db.Model(&models.Commentary{}).Count(&count).Error)
	assert.Zero(t, count)

	// The category itself survives.
	_, err = categories.GetBySlug("golang")
	assert.NoError(t, err)
}
