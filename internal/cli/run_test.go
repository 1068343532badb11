package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingFramer cancels its context after limit frames.
type countingFramer struct {
	cancel context.CancelFunc
	limit  int
	frames int
}

func (f *countingFramer) Frame(context.Context) string {
	f.frames++
	if f.frames >= f.limit {
		f.cancel()
	}
	return "frame\n"
}

type countingScreen struct {
	clears int
}

func (s *countingScreen) ClearScreen() { s.clears++ }

func TestLoopRedrawsUntilCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f := &countingFramer{cancel: cancel, limit: 3}
	scr := &countingScreen{}
	var out bytes.Buffer

	err := loop(ctx, f, scr, &out, time.Millisecond)
	require.NoError(t, err)

	assert.Equal(t, 3, f.frames)
	assert.Equal(t, 3, scr.clears)
	assert.Equal(t, 3, strings.Count(out.String(), "frame\n"))
	assert.True(t, strings.HasSuffix(out.String(), ExitMessage+"\n"))
}

func TestLoopCanceledBeforeFirstFrame(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := &countingFramer{cancel: cancel, limit: 1}
	var out bytes.Buffer

	require.NoError(t, loop(ctx, f, nil, &out, time.Hour))
	assert.Zero(t, f.frames)
	assert.Equal(t, ExitMessage+"\n", out.String())
}

func TestLoopInterruptDuringSleep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f := &countingFramer{cancel: func() {}, limit: 100}
	var out bytes.Buffer

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	done := make(chan error, 1)
	go func() { done <- loop(ctx, f, nil, &out, time.Hour) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not return after cancel")
	}
	assert.Equal(t, 1, f.frames)
}
