package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "smallos.toml", `
format = "yaml"
deep_trim = true
color = false
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, FormatYAML, cfg.Format)
	assert.True(t, cfg.DeepTrim)
	assert.False(t, cfg.Color)
	// untouched keys keep their defaults
	assert.Equal(t, 3, cfg.Verbosity)
	assert.Equal(t, "smallos> ", cfg.Prompt)
}

func TestLoad_YAML(t *testing.T) {
	for _, name := range []string{"smallos.yaml", "smallos.YML"} {
		path := writeFile(t, name, "format: spew\ntrim: true\nverbosity: 5\nprompt: \"> \"\n")
		cfg, err := Load(path)
		require.NoError(t, err, name)

		assert.Equal(t, FormatSpew, cfg.Format)
		assert.True(t, cfg.Trim)
		assert.Equal(t, 5, cfg.Verbosity)
		assert.Equal(t, "> ", cfg.Prompt)
		assert.True(t, cfg.Color)
	}
}

func TestLoad_ExpandsEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.toml"), []byte(`trim = true`), 0o644))
	t.Setenv("SMALLOS_TEST_DIR", dir)

	cfg, err := Load("$SMALLOS_TEST_DIR/c.toml")
	require.NoError(t, err)
	assert.True(t, cfg.Trim)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{"unknown extension", "c.json", `{}`, "unsupported config format"},
		{"malformed toml", "c.toml", `format = `, "failed to parse config"},
		{"malformed yaml", "c.yaml", "format: [", "failed to parse config"},
		{"unknown format", "c.toml", `format = "xml"`, "unknown output format"},
		{"verbosity too high", "c.yaml", "verbosity: 9", "out of range"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tc.file, tc.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Verbosity = -1
	assert.Error(t, cfg.Validate())
}

// TestEncode_RoundTrip writes a configuration in each format and loads it back.
func TestEncode_RoundTrip(t *testing.T) {
	want := &Config{Format: FormatYAML, Trim: true, DeepTrim: true, Verbosity: 4, Color: false, Prompt: "st> "}

	for _, ext := range []string{".toml", ".yaml"} {
		var buf bytes.Buffer
		require.NoError(t, want.Encode(&buf, ext))

		got, err := Load(writeFile(t, "round"+ext, buf.String()))
		require.NoError(t, err, ext)
		assert.Equal(t, want, got, ext)
	}

	assert.Error(t, want.Encode(&bytes.Buffer{}, ".ini"))
}
