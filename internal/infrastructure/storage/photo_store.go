package storage

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	apperrors "github.com/umeshkhanal/rumooz/pkg/errors"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// PhotoStore keeps uploaded team photos under a single directory and hands out
// public paths below urlPrefix.
type PhotoStore struct {
	fs        afero.Fs
	dir       string
	urlPrefix string
}

func NewPhotoStore(fs afero.Fs, dir, urlPrefix string) (*PhotoStore, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads dir: %w", err)
	}

	return &PhotoStore{
		fs:        fs,
		dir:       dir,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
	}, nil
}

// Save writes r under a random name keeping the original extension and returns the public path.
func (s *PhotoStore) Save(originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return "", apperrors.ErrUnsupportedFileType
	}

	name := uuid.NewString() + ext
	if err := afero.WriteReader(s.fs, filepath.Join(s.dir, name), r); err != nil {
		return "", fmt.Errorf("failed to store photo: %w", err)
	}

	return path.Join(s.urlPrefix, name), nil
}

// Remove deletes the file behind a public path. Missing files are not an error.
func (s *PhotoStore) Remove(publicPath string) error {
	name := path.Base(publicPath)
	if name == "." || name == "/" || !strings.HasPrefix(publicPath, s.urlPrefix+"/") {
		return fmt.Errorf("not an uploaded photo: %q", publicPath)
	}

	err := s.fs.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove photo: %w", err)
	}
	return nil
}

func (s *PhotoStore) URLPrefix() string {
	return s.urlPrefix
}

// HTTPFileSystem serves the stored photos. Directories, the uploads root included,
// are reported as missing so their contents are never listed.
func (s *PhotoStore) HTTPFileSystem() http.FileSystem {
	return filesOnly{afero.NewHttpFs(s.fs).Dir(s.dir)}
}

type filesOnly struct {
	http.FileSystem
}

func (fs filesOnly) Open(name string) (http.File, error) {
	f, err := fs.FileSystem.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}
