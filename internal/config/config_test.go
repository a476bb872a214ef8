package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFillsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`color: always`))
	assert.NoError(t, err)
	assert.Equal(t, ColorAlways, cfg.Color)
	assert.Equal(t, 10, cfg.InferenceIterations)
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("color: [not a scalar"))
	assert.Error(t, err)
}

func TestDefaultValues(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ColorAuto, cfg.Color)
	assert.Equal(t, 0, cfg.MaxErrors)
	assert.Equal(t, 10, cfg.InferenceIterations)
}

func TestFindReturnsEmptyWhenMissing(t *testing.T) {
	path, err := Find(t.TempDir())
	assert.NoError(t, err)
	assert.Equal(t, "", path)
}
