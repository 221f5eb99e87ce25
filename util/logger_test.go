package util

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "warn", false)
	l.Info().Msg("hidden")
	l.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"shown"`)
	assert.Contains(t, buf.String(), `"time"`)
}

func TestNewLoggerUnknownLevelFallsBackToInfo(t *testing.T) {
	l := newLogger(&bytes.Buffer{}, "loud", false)
	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())

	l = newLogger(&bytes.Buffer{}, "", false)
	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())
}

func TestNewLoggerPretty(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "info", true)
	l.Info().Msg("console")
	assert.Contains(t, buf.String(), "console")
	assert.NotContains(t, buf.String(), `"message"`)
}
