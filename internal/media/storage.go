// Package media saves uploaded post images on disk and builds their public paths.
package media

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const postsDir = "posts"

var ErrNotImage = errors.New("uploaded file is not an image")

// MsgInvalidImage is reported under the image field for rejected uploads.
const MsgInvalidImage = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type Storage struct {
	root string
	url  string
}

// NewStorage keeps files under root and serves them under url, which must end with a slash.
func NewStorage(root, url string) *Storage {
	return &Storage{root: root, url: url}
}

func (s *Storage) Root() string { return s.root }

// URLPrefix returns the route the files are served under.
func (s *Storage) URLPrefix() string { return s.url }

// SavePostImage stores the upload as posts/<uuid><ext> and returns that relative path.
func (s *Storage) SavePostImage(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	return s.savePostImage(src)
}

func (s *Storage) savePostImage(src io.Reader) (string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read upload: %w", err)
	}
	ext, ok := allowedTypes[http.DetectContentType(head[:n])]
	if !ok {
		return "", ErrNotImage
	}

	rel := path.Join(postsDir, uuid.NewString()+ext)
	target := s.filePath(rel)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	dst, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}

	_, err = io.Copy(dst, io.MultiReader(bytes.NewReader(head[:n]), src))
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		// недописанный файл не оставляем
		_ = os.Remove(target)
		return "", fmt.Errorf("write media file: %w", err)
	}
	return rel, nil
}

// RemovePostImage deletes a file saved by SavePostImage. A missing file is not an error.
func (s *Storage) RemovePostImage(rel string) error {
	if rel == "" {
		return nil
	}
	err := os.Remove(s.filePath(rel))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove media file: %w", err)
	}
	return nil
}

func (s *Storage) filePath(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(path.Clean("/"+rel)))
}

// PublicPath maps a stored relative path to the path it is served under.
func (s *Storage) PublicPath(rel string) string {
	if rel == "" {
		return ""
	}
	return s.url + strings.TrimPrefix(rel, "/")
}
