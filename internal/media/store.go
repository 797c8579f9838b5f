package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// MaxImageSize 上传图片大小上限（10MB）
const MaxImageSize = 10 * 1024 * 1024

// ErrInvalidImage is returned for uploads that are not a decodable image.
var ErrInvalidImage = errors.New("upload a valid image; the file you uploaded was either not an image or a corrupted image")

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// Store keeps uploaded post images on the local filesystem.
type Store struct {
	root string
	dir  string // subdirectory under root for post images
}

func NewStore(root string) *Store {
	return &Store{root: root, dir: "posts"}
}

func (s *Store) Root() string {
	return s.root
}

// Save validates the upload and writes it under root. The returned name is
// relative to root and uses forward slashes.
func (s *Store) Save(header *multipart.FileHeader) (string, error) {
	if header.Size > MaxImageSize {
		return "", fmt.Errorf("%w: larger than 10MB", ErrInvalidImage)
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if len(data) > MaxImageSize {
		return "", fmt.Errorf("%w: larger than 10MB", ErrInvalidImage)
	}

	ext, err := validate(data)
	if err != nil {
		return "", err
	}

	name := path.Join(s.dir, uuid.NewString()+ext)
	full := filepath.Join(s.root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return name, nil
}

// Remove deletes a previously saved image. Missing files are ignored.
func (s *Store) Remove(name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(path.Clean("/"+name))))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// validate sniffs the content type and decodes the image header.
func validate(data []byte) (string, error) {
	mtype := mimetype.Detect(data)
	ext, ok := extensions[mtype.String()]
	if !ok {
		return "", fmt.Errorf("%w: detected %s", ErrInvalidImage, mtype.String())
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	return ext, nil
}
