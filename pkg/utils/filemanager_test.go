package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func hasFBXExtension(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".fbx")
}

func TestDiscoverInputFiles_SelectsMatchingRegularFiles(t *testing.T) {
	in := t.TempDir()
	touch(t, filepath.Join(in, "chair.fbx"))
	touch(t, filepath.Join(in, "TABLE.FBX"))
	touch(t, filepath.Join(in, "Lamp.Fbx"))
	touch(t, filepath.Join(in, "notes.txt"))
	touch(t, filepath.Join(in, "model.obj"))
	touch(t, filepath.Join(in, "fbx"))
	require.NoError(t, os.Mkdir(filepath.Join(in, "nested.fbx"), 0o755))
	touch(t, filepath.Join(in, "nested.fbx", "deep.fbx"))

	fm := NewFileManager(in, t.TempDir())
	files, err := fm.DiscoverInputFiles(hasFBXExtension)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(in, "Lamp.Fbx"),
		filepath.Join(in, "TABLE.FBX"),
		filepath.Join(in, "chair.fbx"),
	}, files)
}

func TestDiscoverInputFiles_NilMatchAcceptsAll(t *testing.T) {
	in := t.TempDir()
	touch(t, filepath.Join(in, "a.txt"))
	require.NoError(t, os.Mkdir(filepath.Join(in, "dir"), 0o755))

	files, err := NewFileManager(in, "").DiscoverInputFiles(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(in, "a.txt")}, files)
}

func TestDiscoverInputFiles_SkipsDanglingLinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	in := t.TempDir()
	touch(t, filepath.Join(in, "real.fbx"))
	require.NoError(t, os.Symlink(filepath.Join(in, "gone.fbx"), filepath.Join(in, "dangling.fbx")))
	require.NoError(t, os.Symlink(filepath.Join(in, "real.fbx"), filepath.Join(in, "alias.fbx")))

	files, err := NewFileManager(in, "").DiscoverInputFiles(hasFBXExtension)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(in, "alias.fbx"),
		filepath.Join(in, "real.fbx"),
	}, files)
}

func TestDiscoverInputFiles_MissingDirectory(t *testing.T) {
	fm := NewFileManager(filepath.Join(t.TempDir(), "missing"), "")

	_, err := fm.DiscoverInputFiles(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEnsureDirectories(t *testing.T) {
	root := t.TempDir()
	fm := NewFileManager(filepath.Join(root, "fbx"), filepath.Join(root, "out", "dae"))

	require.NoError(t, fm.EnsureDirectories())
	assert.DirExists(t, fm.InputDir)
	assert.DirExists(t, fm.OutputDir)
}

func TestWriteFileAtomic_ReplacesContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.dae")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	require.NoError(t, WriteFileAtomic(path, []byte("new content")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new content", string(data))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary file is left behind")
}

func TestWriteFileAtomic_NewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.dae")

	require.NoError(t, WriteFileAtomic(path, []byte("<COLLADA/>")))
	assert.FileExists(t, path)
}

func TestWriteFileAtomic_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "scene.dae")

	err := WriteFileAtomic(path, []byte("x"))
	require.Error(t, err)
	assert.NoFileExists(t, path)
}

func TestIsRegularFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.fbx")
	touch(t, file)

	assert.True(t, IsRegularFile(file))
	assert.False(t, IsRegularFile(dir))
	assert.False(t, IsRegularFile(filepath.Join(dir, "missing")))
	assert.True(t, FileExists(file))
	assert.False(t, FileExists(filepath.Join(dir, "missing")))
}
