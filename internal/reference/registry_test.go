package reference_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartstow/move-planner/internal/reference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"
)

func TestLoadPresets(t *testing.T) {
	r, err := reference.LoadPresets()
	require.NoError(t, err)
	assert.Equal(t, []string{"2.0", "3.0"}, r.Versions())

	table, err := r.Lookup(reference.DefaultVersion)
	require.NoError(t, err)
	assert.Equal(t, "range", table.Name)
	assert.Equal(t, 0.10, table.Coefficients.Variance)
	assert.Len(t, table.Trucks.Classes, 3)
}

func TestDefaultTableIsDefaultVersion(t *testing.T) {
	assert.Equal(t, reference.DefaultVersion, reference.DefaultTable().Version)
	assert.Same(t, reference.Default(), reference.Default())
}

func TestLookupUnknownVersion(t *testing.T) {
	_, err := reference.Default().Lookup("9.9")
	require.Error(t, err)

	var cfgErr *reference.ErrConfiguration
	assert.True(t, errors.As(err, &cfgErr))
}

func TestRegistryRejectsDuplicateVersion(t *testing.T) {
	table := loadDefault(t)
	_, err := reference.NewRegistry(table, table)
	require.Error(t, err)
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	_, err := reference.Decode([]byte("version: \"1.0\"\nbogus: true\n"))
	require.Error(t, err)
}

func TestLoadFileRoundTrip(t *testing.T) {
	table := loadDefault(t)
	clone := *table
	clone.Version = "3.1-custom"

	data, err := yaml.Marshal(&clone)
	require.NoError(t, err)

	filename := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(filename, data, 0o600))

	loaded, err := reference.LoadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "3.1-custom", loaded.Version)
	assert.Equal(t, table.Coefficients, loaded.Coefficients)
	assert.Equal(t, table.Trucks, loaded.Trucks)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := reference.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

// loadDefault returns a private copy of the default table that tests may alter.
func loadDefault(t *testing.T) *reference.Table {
	t.Helper()
	r, err := reference.LoadPresets()
	require.NoError(t, err)
	table, err := r.Lookup(reference.DefaultVersion)
	require.NoError(t, err)
	return table
}
