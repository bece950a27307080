package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAvatarService(t *testing.T) *AvatarService {
	t.Helper()
	t.Setenv("AVATAR_DIR", t.TempDir())
	return NewAvatarService()
}

func TestAvatarSaveReplacesPrevious(t *testing.T) {
	svc := newTestAvatarService(t)

	name, err := svc.Save("alice", "selfie.PNG", 12, strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "alice.png", name)

	name, err = svc.Save("alice", "new.jpg", 12, strings.NewReader("jpg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "alice.jpg", name)

	files, err := filepath.Glob(filepath.Join(svc.dir, "alice.*"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Equal(t, "jpg-bytes", string(data))
}

func TestAvatarSaveRejectsBadUploads(t *testing.T) {
	svc := newTestAvatarService(t)

	_, err := svc.Save("alice", "notes.txt", 12, strings.NewReader("text"))
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrValidation))

	_, err = svc.Save("alice", "huge.png", MaxAvatarSize+1, strings.NewReader("x"))
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrValidation))
}

func TestAvatarURL(t *testing.T) {
	svc := newTestAvatarService(t)

	assert.Equal(t, "/static/img/user/"+models.DefaultPhoto, svc.URL(nil))
	assert.Equal(t, "/static/img/user/"+models.DefaultPhoto, svc.URL(&models.Profile{}))
	assert.Equal(t, "/static/img/user/alice.png", svc.URL(&models.Profile{Photo: "alice.png"}))
}
