// Package watch lists a directory tree and then keeps emitting the paths of
// entries created beneath it.
//
// The watcher uses fsnotify. Every directory the walk opens is added to the
// watch list; a created entry is walked with the same filter as the initial
// listing, so a new directory contributes its own subtree.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	dirwalk "github.com/TFMV/dirwalk/internal/walk"
)

// Options defines options for watching a tree.
type Options struct {
	Filter dirwalk.FilterConfig

	// Timeout stops watching after the given duration (0 means no timeout).
	Timeout time.Duration

	Logger *zap.Logger

	// Ready, if set, is called once the initial listing has been written and
	// the watches are in place.
	Ready func()
}

// Watch walks root, emitting matches to sink, then emits matching entries
// created under root until ctx is done or the timeout expires. Entries are
// never emitted twice unless they are removed and created again.
func Watch(ctx context.Context, root string, opts Options, sink dirwalk.Sink) (dirwalk.Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return dirwalk.Result{}, fmt.Errorf("error creating watcher: %w", err)
	}
	defer watcher.Close()

	t := &tracker{
		watcher: watcher,
		logger:  logger,
		dirs:    make(map[string]string),
		seen:    make(map[string]struct{}),
		sink:    sink,
	}
	walker := dirwalk.New(opts.Filter, t, logger)
	walker.OnDirectory(t.addDir)

	total, err := walker.Walk(ctx, root)
	if err != nil {
		return total, err
	}
	if err := flush(sink); err != nil {
		return total, err
	}
	if opts.Ready != nil {
		opts.Ready()
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return total, nil
			}
			path, known := t.resolve(event.Name)
			if !known {
				continue
			}
			switch {
			case event.Has(fsnotify.Create):
				res, err := walker.Walk(ctx, path)
				total.Merge(res)
				if err != nil {
					var se *dirwalk.StartPathError
					if errors.As(err, &se) {
						// Gone again before we got to it.
						logger.Debug("created entry vanished", zap.String("path", path), zap.Error(err))
						continue
					}
					if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
						return total, nil
					}
					return total, err
				}
				if err := flush(sink); err != nil {
					return total, err
				}
			case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
				t.forget(path)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return total, nil
			}
			logger.Warn("watcher error", zap.Error(err))

		case <-ctx.Done():
			return total, nil
		}
	}
}

// tracker sits between the walker and the real sink. It suppresses
// duplicate emissions and remembers the caller's spelling of every watched
// directory, since fsnotify reports cleaned paths.
type tracker struct {
	watcher *fsnotify.Watcher
	logger  *zap.Logger
	dirs    map[string]string   // cleaned path -> path as emitted
	seen    map[string]struct{} // emitted paths
	sink    dirwalk.Sink
}

func (t *tracker) Emit(path string) error {
	if _, ok := t.seen[path]; ok {
		return nil
	}
	if err := t.sink.Emit(path); err != nil {
		return err
	}
	t.seen[path] = struct{}{}
	return nil
}

func (t *tracker) addDir(dir string) {
	clean := filepath.Clean(dir)
	if _, ok := t.dirs[clean]; ok {
		return
	}
	if err := t.watcher.Add(dir); err != nil {
		t.logger.Warn("error watching directory", zap.String("path", dir), zap.Error(err))
		return
	}
	t.dirs[clean] = dir
}

// resolve maps an fsnotify event name back onto the emitted spelling.
func (t *tracker) resolve(name string) (string, bool) {
	parent, ok := t.dirs[filepath.Dir(name)]
	if !ok {
		return "", false
	}
	return dirwalk.JoinPath(parent, filepath.Base(name)), true
}

// forget drops a removed entry, and everything recorded beneath it, so that
// it is reported again if it reappears.
func (t *tracker) forget(path string) {
	delete(t.seen, path)
	prefix := dirwalk.JoinPath(path, "")
	for p := range t.seen {
		if strings.HasPrefix(p, prefix) {
			delete(t.seen, p)
		}
	}
	clean := filepath.Clean(path)
	cleanPrefix := dirwalk.JoinPath(clean, "")
	for c := range t.dirs {
		if c == clean || strings.HasPrefix(c, cleanPrefix) {
			delete(t.dirs, c)
		}
	}
}

func flush(sink dirwalk.Sink) error {
	if f, ok := sink.(dirwalk.Flusher); ok {
		return f.Flush()
	}
	return nil
}
