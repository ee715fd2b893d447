// Package walk lists a directory tree by entry type.
//
// It is the public face of the dirwalk engine: a physical, depth-first walk
// that reports symbolic links without following them, emits matching paths
// to a Sink as it goes, and keeps going past entries it cannot read.
package walk

import (
	"context"
	"io"

	"go.uber.org/zap"

	internal "github.com/TFMV/dirwalk/internal/walk"
	"github.com/TFMV/dirwalk/internal/watch"
)

// Re-export the types from the internal package
type (
	// FilterConfig selects which entry kinds are emitted.
	FilterConfig = internal.FilterConfig

	// EntryKind is the type of a filesystem entry.
	EntryKind = internal.EntryKind

	// Sink receives the paths of matching entries.
	Sink = internal.Sink

	// Flusher is implemented by sinks that hold output back until the walk ends.
	Flusher = internal.Flusher

	// StreamSink writes each path as soon as it is emitted.
	StreamSink = internal.StreamSink

	// CollectSink collects paths and writes them sorted on Flush.
	CollectSink = internal.CollectSink

	// Comparer orders two paths for sorted output.
	Comparer = internal.Comparer

	// Result summarises a completed walk.
	Result = internal.Result

	// Walker performs the walk.
	Walker = internal.Walker

	// Error types.
	MetadataError    = internal.MetadataError
	EnumerationError = internal.EnumerationError
	OutputError      = internal.OutputError
	StartPathError   = internal.StartPathError

	// WatchOptions configures Watch.
	WatchOptions = watch.Options
)

// Entry kinds
const (
	KindUnknown       = internal.KindUnknown
	KindDirectory     = internal.KindDirectory
	KindRegular       = internal.KindRegular
	KindSymlink       = internal.KindSymlink
	KindUnreadableDir = internal.KindUnreadableDir
	KindOther         = internal.KindOther
)

// ErrBrokenPipe is wrapped by an OutputError when the output reader went away.
var ErrBrokenPipe = internal.ErrBrokenPipe

// NewFilterConfig builds a FilterConfig from explicitly requested types.
// With none requested every kind is listed.
func NewFilterConfig(links, dirs, files bool) FilterConfig {
	return internal.NewFilterConfig(links, dirs, files)
}

// Matches reports whether an entry kind passes the filter.
func Matches(kind EntryKind, cfg FilterConfig) bool {
	return internal.Matches(kind, cfg)
}

// New returns a Walker emitting to sink. A nil logger discards diagnostics.
func New(filter FilterConfig, sink Sink, logger *zap.Logger) *Walker {
	return internal.New(filter, sink, logger)
}

// NewStreamSink returns a sink writing one path per line to w.
func NewStreamSink(w io.Writer) *StreamSink {
	return internal.NewStreamSink(w)
}

// NewCollectSink returns a sink that writes the paths sorted by compare when
// flushed. A nil compare sorts by bytes.
func NewCollectSink(w io.Writer, compare Comparer) *CollectSink {
	return internal.NewCollectSink(w, compare)
}

// LocaleComparer returns the Comparer for a POSIX locale name such as
// "fr_FR.UTF-8". C, POSIX and unusable names compare by bytes; err explains
// an unusable name.
func LocaleComparer(name string) (Comparer, error) {
	return internal.ResolveComparer(name)
}

// EnvComparer resolves collation from LC_ALL, LC_COLLATE and LANG.
func EnvComparer() (Comparer, error) {
	return internal.ResolveComparer(internal.LocaleEnvFromOS().Name())
}

// List walks root and writes matching paths to w, sorted when compare is
// non-nil. It returns the walk summary; isolated errors are in Result.Errors.
func List(ctx context.Context, root string, filter FilterConfig, compare Comparer, w io.Writer) (Result, error) {
	var sink Sink
	if compare != nil {
		sink = NewCollectSink(w, compare)
	} else {
		sink = NewStreamSink(w)
	}
	res, err := New(filter, sink, nil).Walk(ctx, root)
	if err != nil {
		return res, err
	}
	if f, ok := sink.(Flusher); ok {
		if err := f.Flush(); err != nil {
			return res, err
		}
	}
	return res, nil
}

// Watch lists root to sink and then emits matching entries created beneath
// it until ctx is done.
func Watch(ctx context.Context, root string, opts WatchOptions, sink Sink) (Result, error) {
	return watch.Watch(ctx, root, opts, sink)
}
