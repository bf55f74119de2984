package preset

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryStore() *Store {
	return NewStore(&MemoryPort{})
}

func TestStore_SaveAndLoadRoundTrip(t *testing.T) {
	store := newMemoryStore()

	icon := "app.ico"
	config := Config{
		ShowConsole:         false,
		IncludePackages:     []string{"core"},
		ExcludePackages:     []string{"tests"},
		SelectedDataFolders: []string{"config"},
		DemoMode:            true,
		DemoDuration:        120,
		IconPath:            &icon,
	}

	saved, err := store.Save("Release", config)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "Release", saved.Name)
	assert.False(t, saved.CreatedAt.IsZero())

	presets, err := store.Load()
	require.NoError(t, err)
	require.Len(t, presets, 1)
	assert.Equal(t, saved.ID, presets[0].ID)
	assert.Equal(t, config.DemoDuration, presets[0].Config.DemoDuration)
	require.NotNil(t, presets[0].Config.IconPath)
	assert.Equal(t, icon, *presets[0].Config.IconPath)
}

func TestStore_PreservesSaveOrder(t *testing.T) {
	store := newMemoryStore()
	// Distinct timestamps keep the ids unique.
	tick := time.Now()
	store.now = func() time.Time {
		tick = tick.Add(time.Millisecond)
		return tick
	}

	for _, name := range []string{"first", "second", "third"} {
		_, err := store.Save(name, Config{ShowConsole: true})
		require.NoError(t, err)
	}

	presets := store.List()
	require.Len(t, presets, 3)
	assert.Equal(t, "first", presets[0].Name)
	assert.Equal(t, "second", presets[1].Name)
	assert.Equal(t, "third", presets[2].Name)
}

func TestStore_RejectsBlankNames(t *testing.T) {
	store := newMemoryStore()

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := store.Save(name, Config{})
		assert.ErrorIs(t, err, ErrInvalidName)
	}

	presets, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, presets)
}

// Names are compared after trimming, so " Release " collides with "Release".
func TestStore_RejectsDuplicateTrimmedNames(t *testing.T) {
	store := newMemoryStore()

	_, err := store.Save("Release", Config{})
	require.NoError(t, err)

	_, err = store.Save(" Release ", Config{})
	assert.ErrorIs(t, err, ErrDuplicateName)

	// Case differs, so this is a distinct name.
	_, err = store.Save("release", Config{})
	assert.NoError(t, err)
}

func TestStore_Delete(t *testing.T) {
	store := newMemoryStore()

	saved, err := store.Save("temp", Config{})
	require.NoError(t, err)

	removed, err := store.Delete(saved.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = store.Delete(saved.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	presets, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, presets)
}

// Corrupted storage degrades to an empty collection with a recoverable
// error; the next save overwrites the broken data.
func TestStore_CorruptedStorageRecovers(t *testing.T) {
	port := &MemoryPort{}
	require.NoError(t, port.Write([]byte("{not json")))
	store := NewStore(port)

	presets, err := store.Load()
	assert.ErrorIs(t, err, ErrCorrupted)
	assert.Empty(t, presets)

	_, err = store.Save("fresh", Config{ShowConsole: true})
	require.NoError(t, err)

	presets, err = store.Load()
	require.NoError(t, err)
	require.Len(t, presets, 1)
	assert.Equal(t, "fresh", presets[0].Name)
}

func TestFilePort_MissingFileReadsEmpty(t *testing.T) {
	tempDir, err := ioutil.TempDir("", "preset_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	port := NewFilePort(filepath.Join(tempDir, "presets.json"))
	data, err := port.Read()
	require.NoError(t, err)
	assert.Empty(t, data)
}

// Writes go through a temp file and rename, and create missing parent
// directories.
func TestFilePort_WriteRoundTrip(t *testing.T) {
	tempDir, err := ioutil.TempDir("", "preset_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	path := filepath.Join(tempDir, "nested", "presets.json")
	port := NewFilePort(path)

	store := NewStore(port)
	_, err = store.Save("disk", Config{DemoMode: true, DemoDuration: 30})
	require.NoError(t, err)

	reloaded := NewStore(NewFilePort(path))
	presets, err := reloaded.Load()
	require.NoError(t, err)
	require.Len(t, presets, 1)
	assert.Equal(t, "disk", presets[0].Name)
	assert.Equal(t, 30, presets[0].Config.DemoDuration)

	// No stray temp files left behind after the rename.
	entries, err := ioutil.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "presets.json", entries[0].Name())
}
