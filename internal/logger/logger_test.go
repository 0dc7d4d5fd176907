package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/peterldowns/testy/assert"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func restoreGlobals(t *testing.T) {
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})
}

func TestSetup_InvalidLevel(t *testing.T) {
	restoreGlobals(t)
	_, err := Setup(Options{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestSetup_JSONFiltersByLevel(t *testing.T) {
	restoreGlobals(t)
	var buf bytes.Buffer
	l, err := Setup(Options{Level: "warn", Format: "json"}, &buf)
	assert.NoError(t, err)

	l.Info().Msg("hidden")
	l.Warn().Str("ticker", "GGAL").Msg("giving up on ticker")

	out := buf.String()
	assert.False(t, strings.Contains(out, "hidden"))
	assert.True(t, strings.Contains(out, `"ticker":"GGAL"`))
	assert.True(t, strings.Contains(out, `"level":"warn"`))
}

func TestSetup_WritesFile(t *testing.T) {
	restoreGlobals(t)
	path := filepath.Join(t.TempDir(), "breadth.log")
	_, err := Setup(Options{Level: "info", File: path}, &bytes.Buffer{})
	assert.NoError(t, err)

	log.Info().Msg("run started")

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"message":"run started"`))
}
