package logging

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", DebugLevel.String())
	assert.Equal(t, "INFO", InfoLevel.String())
	assert.Equal(t, "WARN", WarnLevel.String())
	assert.Equal(t, "ERROR", ErrorLevel.String())
	assert.Equal(t, "UNKNOWN", Level(99).String())
}

func TestFormatMessage(t *testing.T) {
	l := NewDefaultLoggerNoColor()

	msg := l.formatMessage(InfoLevel, nil, "decoded file")
	assert.Equal(t, "[INFO] decoded file", msg)

	msg = l.formatMessage(ErrorLevel, errors.New("boom"), "decode failed")
	assert.Contains(t, msg, "[ERROR] decode failed: boom")

	msg = l.formatMessage(InfoLevel, nil, "decoded file", Fields{"rate": 8000})
	assert.Contains(t, msg, "rate:8000")
}

func TestWithFieldsMerges(t *testing.T) {
	l := NewDefaultLoggerNoColor().WithFields(Fields{"component": "formats"})
	dl := l.(*DefaultLogger)

	msg := dl.formatMessage(InfoLevel, nil, "hello", Fields{"path": "a.wav"})
	assert.Contains(t, msg, "component:formats")
	assert.Contains(t, msg, "path:a.wav")

	// Call-site fields override preset fields.
	msg = dl.formatMessage(InfoLevel, nil, "hello", Fields{"component": "convert"})
	assert.Contains(t, msg, "component:convert")
	assert.False(t, strings.Contains(msg, "formats"))
}

func TestColoredWarnAndError(t *testing.T) {
	l := NewDefaultLogger()
	l.useColors = true

	msg := l.formatMessage(WarnLevel, nil, "careful")
	assert.True(t, strings.HasPrefix(msg, ColorYellow))
	assert.True(t, strings.HasSuffix(msg, ColorReset))

	msg = l.formatMessage(InfoLevel, nil, "plain")
	assert.False(t, strings.Contains(msg, ColorReset))
}

func TestSetGlobalLoggerNilSilences(t *testing.T) {
	orig := GetGlobalLogger()
	defer SetGlobalLogger(orig)

	SetGlobalLogger(nil)
	_, ok := GetGlobalLogger().(*NoOpLogger)
	assert.True(t, ok)
}
