package dirwalk

import (
	"context"
	"errors"
	"time"

	"github.com/karrick/godirwalk"
	"go.uber.org/zap"
)

// Result summarises a completed walk.
type Result struct {
	Root    string        // Normalised start path
	Visited int64         // Entries whose metadata was read
	Emitted int64         // Entries handed to the sink
	Dirs    int64         // Directories opened for enumeration
	Errors  []error       // Isolated MetadataError and EnumerationError values
	Elapsed time.Duration // Wall time of the walk
}

// Partial reports whether the walk completed with isolated errors.
func (r Result) Partial() bool {
	return len(r.Errors) > 0
}

// Err joins the isolated errors, or returns nil.
func (r Result) Err() error {
	return errors.Join(r.Errors...)
}

// Merge adds the counters and errors of other to r. Root and Elapsed are
// left unchanged.
func (r *Result) Merge(other Result) {
	r.Visited += other.Visited
	r.Emitted += other.Emitted
	r.Dirs += other.Dirs
	r.Errors = append(r.Errors, other.Errors...)
}

// Walker performs a physical, depth-first, pre-order walk and emits the
// paths of entries matching its filter.
type Walker struct {
	filter FilterConfig
	sink   Sink
	logger *zap.Logger
	onDir  func(dir string)
}

// New returns a Walker. The filter is resolved here, once. A nil logger
// discards diagnostics.
func New(filter FilterConfig, sink Sink, logger *zap.Logger) *Walker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Walker{
		filter: filter.Resolve(),
		sink:   sink,
		logger: logger,
	}
}

// OnDirectory registers fn to be called with every directory the walk opens,
// before its entries are read.
func (w *Walker) OnDirectory(fn func(dir string)) {
	w.onDir = fn
}

// Walk visits root and everything beneath it without following symbolic
// links. Unreadable entries are logged, recorded in the Result and skipped.
// The returned error is non-nil only when the walk could not start, the sink
// failed or ctx was cancelled.
func (w *Walker) Walk(ctx context.Context, root string) (Result, error) {
	root = NormalizeStart(root)
	res := Result{Root: root}
	start := time.Now()

	kind, err := Lstat(root)
	if err != nil {
		return res, &StartPathError{Path: root, Err: err}
	}

	w.logger.Debug("starting walk",
		zap.String("root", root),
		zap.Stringer("kind", kind),
		zap.Bool("links", w.filter.Links),
		zap.Bool("dirs", w.filter.Dirs),
		zap.Bool("files", w.filter.Files),
	)

	err = w.visit(ctx, root, kind, &res)
	res.Elapsed = time.Since(start)
	return res, err
}

// visit classifies one entry, emits it if it matches and descends into it
// when it is a directory.
func (w *Walker) visit(ctx context.Context, path string, kind EntryKind, res *Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	res.Visited++

	if Matches(kind, w.filter) {
		if err := w.sink.Emit(path); err != nil {
			var oe *OutputError
			if !errors.As(err, &oe) {
				err = outputError(path, err)
			}
			return err
		}
		res.Emitted++
	}

	if kind != KindDirectory {
		return nil
	}
	return w.descend(ctx, path, res)
}

// descend visits the children of dir. The directory is read in full and
// its handle released before any child is visited, so the number of open
// handles does not grow with depth.
func (w *Walker) descend(ctx context.Context, dir string, res *Result) error {
	for _, name := range w.readNames(dir, res) {
		child := JoinPath(dir, name)
		kind, err := Lstat(child)
		if err != nil {
			w.isolate(res, &MetadataError{Path: child, Err: err}, KindUnknown)
			continue
		}
		if err := w.visit(ctx, child, kind, res); err != nil {
			return err
		}
	}
	return nil
}

// readNames lists the entries of dir, excluding "." and "..". Names read
// before an enumeration error are still returned. The scanner is closed on
// every return path.
func (w *Walker) readNames(dir string, res *Result) []string {
	scanner, err := godirwalk.NewScanner(dir)
	if err != nil {
		w.isolate(res, &EnumerationError{Path: dir, Err: err}, KindUnreadableDir)
		return nil
	}
	defer scanner.Close()
	res.Dirs++
	if w.onDir != nil {
		w.onDir(dir)
	}

	var names []string
	for scanner.Scan() {
		names = append(names, scanner.Name())
	}
	if err := scanner.Err(); err != nil {
		w.isolate(res, &EnumerationError{Path: dir, Err: err}, KindUnreadableDir)
	}
	return names
}

// isolate records a non-fatal error and logs it.
func (w *Walker) isolate(res *Result, err error, kind EntryKind) {
	res.Errors = append(res.Errors, err)
	w.logger.Warn("skipping entry",
		zap.Stringer("kind", kind),
		zap.Error(err),
	)
}
