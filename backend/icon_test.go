package backend

import (
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConverter struct {
	err    error
	called bool
}

func (c *fakeConverter) Convert(srcPath, destPath string) error {
	c.called = true
	if c.err != nil {
		return c.err
	}
	return ioutil.WriteFile(destPath, []byte("ico"), 0644)
}

func TestResolveIcon_EmptyPath(t *testing.T) {
	resolved, err := ResolveIcon(&fakeConverter{}, "")
	require.NoError(t, err)
	assert.Empty(t, resolved)
}

func TestResolveIcon_IcoPassesThrough(t *testing.T) {
	tempDir, err := ioutil.TempDir("", "icon_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	icon := filepath.Join(tempDir, "app.ico")
	require.NoError(t, ioutil.WriteFile(icon, []byte("ico"), 0644))

	converter := &fakeConverter{}
	resolved, err := ResolveIcon(converter, icon)
	require.NoError(t, err)
	assert.Equal(t, icon, resolved)
	assert.False(t, converter.called)
}

func TestResolveIcon_ConvertsPng(t *testing.T) {
	tempDir, err := ioutil.TempDir("", "icon_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	icon := filepath.Join(tempDir, "app.png")
	require.NoError(t, ioutil.WriteFile(icon, []byte("png"), 0644))

	resolved, err := ResolveIcon(&fakeConverter{}, icon)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tempDir, "app.ico"), resolved)
}

// A failed conversion falls back to the original file instead of aborting
// the build.
func TestResolveIcon_ConversionFailureFallsBack(t *testing.T) {
	tempDir, err := ioutil.TempDir("", "icon_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	icon := filepath.Join(tempDir, "app.png")
	require.NoError(t, ioutil.WriteFile(icon, []byte("png"), 0644))

	resolved, err := ResolveIcon(&fakeConverter{err: errors.New("no backend")}, icon)
	require.NoError(t, err)
	assert.Equal(t, icon, resolved)
}

func TestResolveIcon_MissingFile(t *testing.T) {
	_, err := ResolveIcon(&fakeConverter{}, filepath.Join(os.TempDir(), "does-not-exist.png"))
	assert.Error(t, err)
}
