package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettingsFile(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigName+".yaml"), []byte(body), 0o600))
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	s, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", s.LogLevel)
	assert.True(t, s.Audio.Enabled)
	assert.InDelta(t, 0.8, s.Audio.Volume, 1e-9)
	assert.Equal(t, 44100, s.Audio.SampleRate)
	assert.InDelta(t, 0.9, s.Speech.Rate, 1e-9)
	assert.Equal(t, "2222", s.SSH.Port)
	assert.Equal(t, "8080", s.Web.Port)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := writeSettingsFile(t, `
log_level: debug
deck_path: decks/travel.yaml
audio:
  volume: 0.25
speech:
  backend: espeak-ng
`)
	t.Setenv("SSH_PORT", "2022")
	t.Setenv("AUDIO_ENABLED", "false")

	s, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "decks/travel.yaml", s.DeckPath)
	assert.InDelta(t, 0.25, s.Audio.Volume, 1e-9)
	assert.False(t, s.Audio.Enabled)
	assert.Equal(t, "espeak-ng", s.Speech.Backend)
	assert.Equal(t, "2022", s.SSH.Port)
}

func TestLoad_ConfigDirFromEnv(t *testing.T) {
	t.Setenv(ConfigDirEnv, writeSettingsFile(t, "log_level: warn\n"))

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", s.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "unknown log level",
			body:    "log_level: loud\n",
			wantErr: "LogLevel",
		},
		{
			name:    "volume out of range",
			body:    "audio:\n  volume: 3\n",
			wantErr: "Volume",
		},
		{
			name:    "unknown speech backend",
			body:    "speech:\n  backend: festival\n",
			wantErr: "Backend",
		},
		{
			name:    "broken yaml",
			body:    "log_level: [\n",
			wantErr: "failed to read config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeSettingsFile(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("VOCABSHOOTER_TEST_KEY", "set")
	assert.Equal(t, "set", GetEnv("VOCABSHOOTER_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("VOCABSHOOTER_TEST_MISSING", "fallback"))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, &Settings{LogLevel: "warn"})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "key", "value")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "key=value")

	_, err = NewLogger(&buf, &Settings{LogLevel: "loud"})
	assert.Error(t, err)
}

func TestOpenLogFile(t *testing.T) {
	w, closeFn, err := OpenLogFile(&Settings{})
	require.NoError(t, err)
	assert.Equal(t, io.Discard, w)
	assert.NoError(t, closeFn())

	path := filepath.Join(t.TempDir(), "game.log")
	w, closeFn, err = OpenLogFile(&Settings{LogFile: path})
	require.NoError(t, err)
	_, err = io.WriteString(w, "line\n")
	require.NoError(t, err)
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line\n", string(data))
}
