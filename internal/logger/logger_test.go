package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWritesLevels(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "dashboard", false)

	l.Info("rendered %d sections", 4)
	l.Warn("memory unavailable")
	l.Debug("hidden %s", "detail")

	out := buf.String()
	assert.Contains(t, out, "rendered 4 sections")
	assert.Contains(t, out, "memory unavailable")
	assert.Contains(t, out, "component=dashboard")
	assert.NotContains(t, out, "hidden detail")
}

func TestNewDebugEnabled(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "", true)

	l.Debug("width fallback to %d", 80)

	assert.Contains(t, buf.String(), "width fallback to 80")
}

func TestNoopLogger(t *testing.T) {
	l := Noop()
	assert.NotPanics(t, func() {
		l.Debug("x")
		l.Info("x")
		l.Warn("x")
		l.Error("x")
	})
}

func TestBufferLogger(t *testing.T) {
	l := NewBufferLogger()

	l.Debug("d %d", 1)
	l.Warn("w")
	l.Warn("w2")
	l.Error("e")

	assert.Len(t, l.Messages, 4)
	assert.Equal(t, "d 1", l.Messages[0].Message)
	assert.True(t, l.HasLevel("warn"))
	assert.False(t, l.HasLevel("info"))
	assert.Equal(t, 2, l.Count("warn"))
}

func TestSetDefault(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	buf := NewBufferLogger()
	SetDefault(buf)
	Default().Info("hello")

	assert.True(t, buf.HasLevel("info"))
}
