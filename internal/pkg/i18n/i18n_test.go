package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Bundled(t *testing.T) {
	require.NoError(t, Load())

	assert.True(t, Supported("en"))
	assert.True(t, Supported("uk"))
	assert.Equal(t, "Approved", Label("en", "request_status", "approved"))
	assert.Equal(t, "Схвалено", Label("uk", "request_status", "approved"))
}

func TestTranslate_FallsBackToEnglish(t *testing.T) {
	require.NoError(t, Load())

	// uk has no label for healthcare requests
	assert.Equal(t, "Healthcare", Label("uk", "request_type", "healthcare"))
	assert.Equal(t, "Healthcare", Label("fr", "request_type", "healthcare"))
}

func TestLabel_UnknownValueReturnsValue(t *testing.T) {
	require.NoError(t, Load())

	assert.Equal(t, "teleport", Label("en", "request_type", "teleport"))
	assert.Equal(t, "missing.key", Translate("en", "missing.key"))
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"loc/xx.yaml": &fstest.MapFile{Data: []byte("LABELS: [unclosed")},
	}

	err := LoadFrom(fsys, "loc")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}
