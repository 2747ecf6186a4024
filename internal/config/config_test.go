package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mrf.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()
	path := writeFile(t, `
concurrency: 4
max_previews: 9
patterns:
  underscore: "{}{=_}{}"
  pad: "{}{n:03}{}"
`)

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, config.Concurrency)
	assert.Equal(t, 9, config.MaxPreviews)
	assert.Equal(t, map[string]string{
		"underscore": "{}{=_}{}",
		"pad":        "{}{n:03}{}",
	}, config.Patterns)
}

func TestLoadEmptyFileKeepsDefaults(t *testing.T) {
	t.Parallel()
	config, err := Load(writeFile(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), config)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown field", content: "concurency: 2\n"},
		{name: "negative concurrency", content: "concurrency: -1\n"},
		{name: "negative previews", content: "max_previews: -3\n"},
		{name: "bad pattern name", content: "patterns:\n  \"a b\": \"{}\"\n"},
		{name: "nested pattern", content: "patterns:\n  a:\n    b: \"{}\"\n"},
		{name: "not yaml", content: "concurrency: [\n"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(writeFile(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Parallel()
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestResolveReplacer(t *testing.T) {
	t.Parallel()
	config := Default()
	config.Patterns["pad"] = "{}{n:03}{}"

	got, err := config.ResolveReplacer("@pad")
	require.NoError(t, err)
	assert.Equal(t, "{}{n:03}{}", got)

	got, err = config.ResolveReplacer("{}{=_}{}")
	require.NoError(t, err)
	assert.Equal(t, "{}{=_}{}", got)

	_, err = config.ResolveReplacer("@missing")
	assert.Error(t, err)
}

func TestWriteRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "out.yaml")
	config := Default()
	config.Concurrency = 2
	config.Patterns["dash"] = "{}{=-}{}"

	require.NoError(t, Write(path, config))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, config, loaded)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("MRF_CONCURRENCY", "3")
	t.Setenv("MRF_MAX_PREVIEWS", "11")

	config, err := Load(writeFile(t, "concurrency: 4\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, config.Concurrency)
	assert.Equal(t, 11, config.MaxPreviews)
}

func TestLoadPatternNamesAreCaseInsensitive(t *testing.T) {
	t.Parallel()
	config, err := Load(writeFile(t, "patterns:\n  PadNumber: \"{}{n:03}{}\"\n"))
	require.NoError(t, err)

	got, err := config.ResolveReplacer("@PadNumber")
	require.NoError(t, err)
	assert.Equal(t, "{}{n:03}{}", got)
}
