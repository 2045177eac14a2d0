package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"chatty", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestInit_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tunedeck.log")
	closer, err := Init(Config{Output: OutputFile, Level: "info", File: path})
	require.NoError(t, err)

	zlog.Info().Msgf("hello %s", "deck")
	zlog.Debug().Msg("hidden")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello deck"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestInit_Errors(t *testing.T) {
	_, err := Init(Config{Output: OutputFile})
	assert.Error(t, err)

	_, err = Init(Config{Output: "syslog"})
	assert.Error(t, err)
}

func TestInit_Discard(t *testing.T) {
	closer, err := Init(Config{Output: OutputDiscard})
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
}

func TestShortCaller(t *testing.T) {
	file := filepath.Join("root", "internal", "session", "manager.go")
	assert.Equal(t, filepath.Join("session", "manager.go")+":42", shortCaller(0, file, 42))
	assert.Equal(t, "main.go:7", shortCaller(0, "main.go", 7))
}
