package utils

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	ErrImageType = errors.New("Only image files are allowed (jpeg, jpg, png, webp)")
	ErrImageSize = errors.New("Image exceeds the maximum upload size")
	ErrImagePath = errors.New("Invalid image path")
)

var allowedImageExt = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".webp": true,
}

// Uploader stores images under Dir/<kind> and returns their public path under /uploads.
type Uploader struct {
	Dir     string
	MaxSize int64
}

func NewUploader(dir string, maxSize int64) *Uploader {
	return &Uploader{Dir: dir, MaxSize: maxSize}
}

// SaveImage returns ("", nil) when the form has no file under field.
func (u *Uploader) SaveImage(c *gin.Context, field, kind string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", fmt.Errorf("read upload: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExt[ext] {
		return "", ErrImageType
	}
	if u.MaxSize > 0 && file.Size > u.MaxSize {
		return "", ErrImageSize
	}

	dir := filepath.Join(u.Dir, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := fmt.Sprintf("%s-%d-%s%s", kind, time.Now().UnixNano(), uuid.NewString()[:8], ext)
	if err := c.SaveUploadedFile(file, filepath.Join(dir, name)); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}

	return "/uploads/" + kind + "/" + name, nil
}

// CheckImageRef rejects image references that walk up the directory tree.
func CheckImageRef(ref string) error {
	parts := strings.FieldsFunc(ref, func(r rune) bool { return r == '/' || r == '\\' })
	for _, p := range parts {
		if p == ".." {
			return ErrImagePath
		}
	}
	return nil
}

// Remove deletes a file previously returned by SaveImage. Foreign URLs and paths outside Dir are ignored.
func (u *Uploader) Remove(publicPath string) {
	path, ok := u.localPath(publicPath)
	if !ok {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		ErrorLogger.Errorf("failed to remove upload %s: %v", publicPath, err)
	}
}

func (u *Uploader) localPath(publicPath string) (string, bool) {
	if !strings.HasPrefix(publicPath, "/uploads/") {
		return "", false
	}
	root := filepath.Clean(u.Dir)
	path := filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(publicPath, "/uploads/")))

	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return path, true
}
