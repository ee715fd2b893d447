package dirwalk

import (
	"bytes"
	"errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failWriter accepts limit bytes and then fails every write with err.
type failWriter struct {
	buf   bytes.Buffer
	limit int
	err   error
	calls int
}

func (w *failWriter) Write(p []byte) (int, error) {
	w.calls++
	room := w.limit - w.buf.Len()
	if room <= 0 {
		return 0, w.err
	}
	if len(p) > room {
		w.buf.Write(p[:room])
		return room, w.err
	}
	return w.buf.Write(p)
}

func TestStreamSink(t *testing.T) {
	var buf bytes.Buffer
	s := NewStreamSink(&buf)
	require.NoError(t, s.Emit("a"))
	require.NoError(t, s.Emit("a/b c"))
	require.NoError(t, s.Flush())
	assert.Equal(t, "a\na/b c\n", buf.String())
}

func TestStreamSinkFailureIsSticky(t *testing.T) {
	w := &failWriter{limit: 2, err: errors.New("disk full")}
	s := NewStreamSink(w)
	s.FlushEachLine = true

	require.NoError(t, s.Emit("a"))
	err := s.Emit("bb")
	var oe *OutputError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, "bb", oe.Path)

	calls := w.calls
	assert.Error(t, s.Emit("c"))
	assert.Error(t, s.Flush())
	assert.Equal(t, calls, w.calls, "no writes after a failure")
	assert.Equal(t, "a\n", w.buf.String(), "earlier output stands")
}

func TestStreamSinkBufferedFailureSurfacesOnFlush(t *testing.T) {
	w := &failWriter{err: errors.New("closed")}
	s := NewStreamSink(w)
	require.NoError(t, s.Emit("a"))
	err := s.Flush()
	var oe *OutputError
	assert.ErrorAs(t, err, &oe)
	assert.True(t, IsFatal(err))
}

func TestStreamSinkBrokenPipe(t *testing.T) {
	w := &failWriter{err: fmt.Errorf("write |1: %w", syscall.EPIPE)}
	s := NewStreamSink(w)
	s.FlushEachLine = true

	err := s.Emit("a")
	assert.ErrorIs(t, err, ErrBrokenPipe)
	assert.ErrorIs(t, err, syscall.EPIPE)
}

func TestCollectSinkFlushSorts(t *testing.T) {
	var buf bytes.Buffer
	s := NewCollectSink(&buf, nil)
	for _, p := range []string{"b", "a/c", "a", "C"} {
		require.NoError(t, s.Emit(p))
	}
	assert.Equal(t, []string{"b", "a/c", "a", "C"}, s.Paths(), "discovery order before flush")
	assert.Zero(t, buf.Len(), "nothing written before flush")

	require.NoError(t, s.Flush())
	assert.Equal(t, "C\na\na/c\nb\n", buf.String())
	assert.Zero(t, s.Len(), "record released after flush")

	require.NoError(t, s.Flush())
	assert.Equal(t, "C\na\na/c\nb\n", buf.String(), "second flush writes nothing")
}

func TestCollectSinkCustomComparer(t *testing.T) {
	var buf bytes.Buffer
	reverse := func(a, b string) int { return ByteOrder(b, a) }
	s := NewCollectSink(&buf, reverse)
	for _, p := range []string{"a", "c", "b"} {
		require.NoError(t, s.Emit(p))
	}
	require.NoError(t, s.Flush())
	assert.Equal(t, "c\nb\na\n", buf.String())
}

func TestCollectSinkFlushFailure(t *testing.T) {
	w := &failWriter{err: errors.New("disk full")}
	s := NewCollectSink(w, nil)
	require.NoError(t, s.Emit("a"))
	require.NoError(t, s.Emit("b"))

	err := s.Flush()
	var oe *OutputError
	require.ErrorAs(t, err, &oe)
	assert.Zero(t, s.Len())
	assert.Zero(t, w.buf.Len())
}
