package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"inkwell/internal/logger"
	"inkwell/internal/models"
	"inkwell/internal/utils"
)

// MaxAvatarSize caps uploaded profile pictures at 5 MB.
const MaxAvatarSize = 5 * 1024 * 1024

var allowedAvatarExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// AvatarService stores profile pictures on local disk under the public
// static directory, renamed to the owner's username so the old picture is
// replaced in place.
type AvatarService struct {
	dir string
}

func NewAvatarService() *AvatarService {
	dir := os.Getenv("AVATAR_DIR")
	if dir == "" {
		dir = filepath.Join("web", "static", "img", "user")
	}
	return &AvatarService{dir: dir}
}

// Save validates and writes the uploaded picture, removing any previous one
// the user had, and returns the stored filename.
func (s *AvatarService) Save(username, originalName string, size int64, src io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedAvatarExts[ext] {
		return "", utils.NewValidationError("Invalid image type.")
	}
	if size > MaxAvatarSize {
		return "", utils.NewValidationError("The image is too big (maximum 5 MB).")
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		logger.Log.Errorw("create avatar dir failed", "dir", s.dir, "error", err)
		return "", utils.NewStorageError(err)
	}

	// Drop any previous picture regardless of its extension.
	old, _ := filepath.Glob(filepath.Join(s.dir, username+".*"))
	for _, f := range old {
		_ = os.Remove(f)
	}

	name := username + ext
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		logger.Log.Errorw("create avatar file failed", "name", name, "error", err)
		return "", utils.NewStorageError(err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(src, MaxAvatarSize+1)); err != nil {
		logger.Log.Errorw("write avatar file failed", "name", name, "error", err)
		return "", utils.NewStorageError(err)
	}
	return name, nil
}

// URL returns the public path of a profile picture.
func (s *AvatarService) URL(profile *models.Profile) string {
	if profile == nil || profile.Photo == "" {
		return fmt.Sprintf("/static/img/user/%s", models.DefaultPhoto)
	}
	return fmt.Sprintf("/static/img/user/%s", profile.Photo)
}
