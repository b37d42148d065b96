package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alinuxperson/tuxvantage/pkg/paths"
	"github.com/alinuxperson/tuxvantage/pkg/utils/ptr"
)

func loadAt(t *testing.T, dir string) (*Store, []error) {
	t.Helper()

	p, err := paths.At(dir)
	require.NoError(t, err)

	store, warnings, err := Load(p)
	require.NoError(t, err)

	return store, warnings
}

func TestLoadCreatesDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	store, warnings := loadAt(t, dir)
	assert.Empty(t, warnings)

	// First run persists the defaults so the user has a file to edit.
	_, err := os.Stat(filepath.Join(dir, "tuxvantage.json"))
	require.NoError(t, err)

	view := store.Read()
	defer view.Close()
	assert.Equal(t, "", view.TuxVantage().ResolveProfile())
}

func TestLoadReadsPersistedConfig(t *testing.T) {
	dir := t.TempDir()
	contents := `{"profile": "ideapad-amd", "handlers": {"default": "error"}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tuxvantage.json"), []byte(contents), 0644))

	store, _ := loadAt(t, dir)

	view := store.Read()
	defer view.Close()

	assert.Equal(t, "ideapad-amd", view.TuxVantage().ResolveProfile())
	assert.Equal(t, HandlerError, view.TuxVantage().ResolveHandlers().ResolveDefault())
}

func TestLoadRejectsMalformedConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tuxvantage.json"), []byte("{"), 0644))

	p, err := paths.At(dir)
	require.NoError(t, err)

	_, _, err = Load(p)
	require.Error(t, err)
}

func TestLoadTreatsEmptyConfigAsDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tuxvantage.json"), []byte("  \n"), 0644))

	store, _ := loadAt(t, dir)

	view := store.Read()
	defer view.Close()
	assert.Equal(t, "", view.TuxVantage().ResolveProfile())
}

func TestLoadCollectsProfileWarnings(t *testing.T) {
	dir := t.TempDir()
	profiles := filepath.Join(dir, "profiles")
	require.NoError(t, os.MkdirAll(profiles, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(profiles, "broken.json"), []byte("not json"), 0644))

	_, warnings := loadAt(t, dir)
	assert.Len(t, warnings, 1)
}

func TestWriteViewDowngradeKeepsMutationsVisible(t *testing.T) {
	store, _ := loadAt(t, t.TempDir())

	write := store.Write()
	write.TuxVantage().Overrides.Profile = ptr.To("ideapad-15iil05")

	read := write.Downgrade()
	defer read.Close()

	assert.Equal(t, "ideapad-15iil05", read.TuxVantage().ResolveProfile())
}

func TestWriteViewDumpDoesNotPersistOverrides(t *testing.T) {
	dir := t.TempDir()
	store, _ := loadAt(t, dir)

	write := store.Write()
	write.TuxVantage().Profile = ptr.To("ideapad-amd")
	write.TuxVantage().Overrides.Profile = ptr.To("scratch")
	require.NoError(t, write.Dump())
	write.Close()

	b, err := os.ReadFile(filepath.Join(dir, "tuxvantage.json"))
	require.NoError(t, err)

	var doc TuxVantage
	require.NoError(t, json.Unmarshal(b, &doc))

	require.NotNil(t, doc.Profile)
	assert.Equal(t, "ideapad-amd", *doc.Profile)
	assert.Nil(t, doc.Overrides.Profile)
}

func TestViewCloseIsIdempotent(t *testing.T) {
	store, _ := loadAt(t, t.TempDir())

	view := store.Read()
	view.Close()
	view.Close()

	// The lock must be free again.
	write := store.Write()
	write.Close()
}
