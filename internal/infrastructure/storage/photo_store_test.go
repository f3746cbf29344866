package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/umeshkhanal/rumooz/pkg/errors"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*PhotoStore, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	store, err := NewPhotoStore(fs, "uploads", "/uploads")
	require.NoError(t, err)
	return store, fs
}

func TestPhotoStore_Save(t *testing.T) {
	store, fs := newStore(t)

	public, err := store.Save("Portrait.JPG", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(public, "/uploads/"))
	assert.True(t, strings.HasSuffix(public, ".jpg"))

	data, err := afero.ReadFile(fs, filepath.Join("uploads", filepath.Base(public)))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))
}

func TestPhotoStore_SaveRejectsExtension(t *testing.T) {
	store, _ := newStore(t)

	_, err := store.Save("payload.exe", strings.NewReader("x"))
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedFileType)
}

func TestPhotoStore_Remove(t *testing.T) {
	store, fs := newStore(t)

	public, err := store.Save("a.png", strings.NewReader("png"))
	require.NoError(t, err)

	require.NoError(t, store.Remove(public))
	exists, err := afero.Exists(fs, filepath.Join("uploads", filepath.Base(public)))
	require.NoError(t, err)
	assert.False(t, exists)

	// already gone
	assert.NoError(t, store.Remove(public))
	assert.Error(t, store.Remove("/etc/passwd"))
}

func TestPhotoStore_HTTPFileSystem(t *testing.T) {
	store, _ := newStore(t)

	public, err := store.Save("a.gif", strings.NewReader("gif"))
	require.NoError(t, err)

	f, err := store.HTTPFileSystem().Open("/" + filepath.Base(public))
	require.NoError(t, err)
	defer f.Close()

	info, err := f.Stat()
	require.NoError(t, err)
	assert.Equal(t, int64(3), info.Size())
}

func TestPhotoStore_HTTPFileSystemHidesDirectories(t *testing.T) {
	store, fs := newStore(t)

	_, err := store.Save("a.png", strings.NewReader("png"))
	require.NoError(t, err)
	require.NoError(t, fs.MkdirAll(filepath.Join("uploads", "nested"), 0o755))

	for _, name := range []string{"/", "/nested", "/nested/"} {
		_, err := store.HTTPFileSystem().Open(name)
		assert.ErrorIs(t, err, os.ErrNotExist, name)
	}
}
