package services

import (
	"testing"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Category{},
		&models.Post{},
		&models.Commentary{},
	))
	return db
}

// stampCommentary gives the row a fixed creation time so ordering tests do
// not depend on insert speed.
func stampCommentary(t *testing.T, db *gorm.DB, cid string, at time.Time) {
	t.Helper()
	err := db.Model(&models.Commentary{}).Where("cid = ?", cid).
		UpdateColumn("created_at", at).Error
	require.NoError(t, err)
}

func TestCommentaryCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommentaryService(db)

	created, err := svc.Create("first-post", "alice", "Nice write-up!", "")
	require.NoError(t, err)
	assert.NotEmpty(t, created.Cid)
	assert.False(t, created.IsAnswer())

	got, err := svc.Get(created.Cid)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Author)
	assert.Equal(t, "Nice write-up!", got.Body)
	assert.Equal(t, "first-post", got.Post)
	assert.Equal(t, "", got.Reference)
}

func TestCommentaryCreateEmptyBody(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommentaryService(db)

	_, err := svc.Create("first-post", "alice", "", "")
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrValidation))
}

func TestCommentaryAnswerUnknownParent(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommentaryService(db)

	_, err := svc.Create("first-post", "bob", "Replying to nothing", "no-such-cid")
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound))
}

func TestCommentaryAnswerToAnswerRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommentaryService(db)

	top, err := svc.Create("first-post", "alice", "Top level", "")
	require.NoError(t, err)
	answer, err := svc.Create("first-post", "bob", "An answer", top.Cid)
	require.NoError(t, err)
	assert.True(t, answer.IsAnswer())

	_, err = svc.Create("first-post", "carol", "Answer to an answer", answer.Cid)
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrValidation))
}

func TestCommentaryListTopLevelNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommentaryService(db)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	var cids []string
	for i, body := range []string{"oldest", "middle", "newest"} {
		commentary, err := svc.Create("first-post", "alice", body, "")
		require.NoError(t, err)
		stampCommentary(t, db, commentary.Cid, base.Add(time.Duration(i)*time.Minute))
		cids = append(cids, commentary.Cid)
	}
	// Another post's thread stays out of the result.
	_, err := svc.Create("other-post", "bob", "unrelated", "")
	require.NoError(t, err)

	commentaries, err := svc.ListTopLevel("first-post")
	require.NoError(t, err)
	require.Len(t, commentaries, 3)
	assert.Equal(t, "newest", commentaries[0].Body)
	assert.Equal(t, "middle", commentaries[1].Body)
	assert.Equal(t, "oldest", commentaries[2].Body)
	assert.Equal(t, cids[2], commentaries[0].Cid)
}

func TestCommentaryListRepliesOldestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommentaryService(db)

	top, err := svc.Create("first-post", "alice", "Top level", "")
	require.NoError(t, err)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, body := range []string{"first answer", "second answer", "third answer"} {
		answer, err := svc.Create("first-post", "bob", body, top.Cid)
		require.NoError(t, err)
		stampCommentary(t, db, answer.Cid, base.Add(time.Duration(i)*time.Minute))
	}

	answers, err := svc.ListReplies("first-post")
	require.NoError(t, err)
	require.Len(t, answers, 3)
	assert.Equal(t, "first answer", answers[0].Body)
	assert.Equal(t, "third answer", answers[2].Body)
	for _, answer := range answers {
		assert.Equal(t, top.Cid, answer.Reference)
	}
}

func TestCommentaryListByAuthor(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommentaryService(db)

	top, err := svc.Create("first-post", "alice", "Alice's commentary", "")
	require.NoError(t, err)
	_, err = svc.Create("first-post", "bob", "Bob's answer", top.Cid)
	require.NoError(t, err)
	_, err = svc.Create("other-post", "alice", "Alice's answer elsewhere", top.Cid)
	require.NoError(t, err)

	commentaries, answers, err := svc.ListByAuthor("alice")
	require.NoError(t, err)
	require.Len(t, commentaries, 1)
	require.Len(t, answers, 1)
	assert.Equal(t, "Alice's commentary", commentaries[0].Body)
	assert.Equal(t, "Alice's answer elsewhere", answers[0].Body)
}

func TestCommentaryEdit(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommentaryService(db)

	commentary, err := svc.Create("first-post", "alice", "Before", "")
	require.NoError(t, err)

	_, err = svc.Edit(commentary.Cid, "bob", "Hijacked")
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrForbidden))

	_, err = svc.Edit(commentary.Cid, "alice", "")
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrValidation))

	edited, err := svc.Edit(commentary.Cid, "alice", "After")
	require.NoError(t, err)
	assert.Equal(t, "After", edited.Body)

	got, err := svc.Get(commentary.Cid)
	require.NoError(t, err)
	assert.Equal(t, "After", got.Body)
	assert.Equal(t, "alice", got.Author)
}

func TestCommentaryDeleteCascadesAnswers(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommentaryService(db)

	top, err := svc.Create("first-post", "alice", "Top level", "")
	require.NoError(t, err)
	for _, author := range []string{"bob", "carol", "dave"} {
		_, err := svc.Create("first-post", author, "An answer", top.Cid)
		require.NoError(t, err)
	}
	other, err := svc.Create("first-post", "bob", "Another thread", "")
	require.NoError(t, err)

	err = svc.Delete(top.Cid, "bob")
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrForbidden))

	require.NoError(t, svc.Delete(top.Cid, "alice"))

	var count int64
	require.NoError(t, db.Model(&models.Commentary{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	_, err = svc.Get(other.Cid)
	assert.NoError(t, err)
}

func TestCommentaryDeleteAnswerLeavesThread(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommentaryService(db)

	top, err := svc.Create("first-post", "alice", "Top level", "")
	require.NoError(t, err)
	answer, err := svc.Create("first-post", "bob", "Bob's answer", top.Cid)
	require.NoError(t, err)
	sibling, err := svc.Create("first-post", "carol", "Carol's answer", top.Cid)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(answer.Cid, "bob"))

	_, err = svc.Get(top.Cid)
	assert.NoError(t, err)
	_, err = svc.Get(sibling.Cid)
	assert.NoError(t, err)

	answers, err := svc.ListReplies("first-post")
	require.NoError(t, err)
	assert.Len(t, answers, 1)
}

// TestCommentaryThreadLifecycle walks a whole thread: comment, answer,
// cross-author edits bouncing off ownership, then deletion taking the
// answer with it.
func TestCommentaryThreadLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommentaryService(db)

	top, err := svc.Create("go-generics", "alice", "Great post!", "")
	require.NoError(t, err)

	answer, err := svc.Create("go-generics", "bob", "Agreed.", top.Cid)
	require.NoError(t, err)

	_, err = svc.Edit(answer.Cid, "alice", "I speak for bob now")
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrForbidden))

	_, err = svc.Edit(answer.Cid, "bob", "Strongly agreed.")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(top.Cid, "alice"))

	_, err = svc.Edit(answer.Cid, "bob", "Still here?")
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound))
}
