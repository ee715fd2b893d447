package dirwalk

import (
	"bufio"
	"io"
	"slices"
)

// Sink receives the paths of matching entries.
type Sink interface {
	Emit(path string) error
}

// Flusher is implemented by sinks that hold output back until the walk ends.
// Flush is called once, after Walk returns without a fatal error.
type Flusher interface {
	Flush() error
}

// --------------------------------------------------------------------------
// Streaming
// --------------------------------------------------------------------------

// StreamSink writes each path as one line as soon as it is emitted.
type StreamSink struct {
	w *bufio.Writer

	// FlushEachLine pushes every line through to the underlying writer
	// instead of waiting for the buffer to fill. Used when output must be
	// seen as it happens, e.g. in watch mode.
	FlushEachLine bool

	err error
}

// NewStreamSink returns a StreamSink writing to w.
func NewStreamSink(w io.Writer) *StreamSink {
	return &StreamSink{w: bufio.NewWriter(w)}
}

// Emit writes path followed by a newline. Once a write has failed every
// further call returns the same error and writes nothing.
func (s *StreamSink) Emit(path string) error {
	if s.err != nil {
		return s.err
	}
	if _, err := s.w.WriteString(path); err != nil {
		s.err = outputError(path, err)
		return s.err
	}
	if err := s.w.WriteByte('\n'); err != nil {
		s.err = outputError(path, err)
		return s.err
	}
	if s.FlushEachLine {
		if err := s.w.Flush(); err != nil {
			s.err = outputError(path, err)
			return s.err
		}
	}
	return nil
}

// Flush writes any buffered lines.
func (s *StreamSink) Flush() error {
	if s.err != nil {
		return s.err
	}
	if err := s.w.Flush(); err != nil {
		s.err = outputError("", err)
		return s.err
	}
	return nil
}

// --------------------------------------------------------------------------
// Collecting
// --------------------------------------------------------------------------

// CollectSink keeps every path in discovery order and writes them sorted
// when flushed.
type CollectSink struct {
	w       io.Writer
	compare Comparer
	paths   []string
	flushed bool
}

// NewCollectSink returns a CollectSink that sorts with compare and writes to
// w. A nil compare sorts by bytes.
func NewCollectSink(w io.Writer, compare Comparer) *CollectSink {
	if compare == nil {
		compare = ByteOrder
	}
	return &CollectSink{w: w, compare: compare}
}

// Emit records path. It never fails; running out of memory while the
// record grows aborts the program.
func (s *CollectSink) Emit(path string) error {
	s.paths = append(s.paths, path)
	return nil
}

// Paths returns the collected paths, in discovery order until Sort is called.
func (s *CollectSink) Paths() []string {
	return s.paths
}

// Len returns the number of collected paths.
func (s *CollectSink) Len() int {
	return len(s.paths)
}

// Sort orders the collected paths with the sink's Comparer.
func (s *CollectSink) Sort() {
	slices.SortStableFunc(s.paths, s.compare)
}

// Flush sorts the collected paths and writes them one per line. The first
// write failure aborts the flush. The collected paths are released
// afterwards, whatever the outcome; a second Flush writes nothing.
func (s *CollectSink) Flush() error {
	if s.flushed {
		return nil
	}
	s.flushed = true
	defer func() { s.paths = nil }()

	s.Sort()
	bw := bufio.NewWriter(s.w)
	for _, p := range s.paths {
		if _, err := bw.WriteString(p); err != nil {
			return outputError(p, err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return outputError(p, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return outputError("", err)
	}
	return nil
}
