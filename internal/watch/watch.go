// Package watch renames files as they appear in a directory.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/kerlilow/mrf/internal/action"
	"github.com/kerlilow/mrf/internal/resolve"
	"github.com/kerlilow/mrf/replacer"
)

// Watcher applies a replacer to the base name of every file created in a
// directory and renames the file when the name changes.
type Watcher struct {
	dir      string
	replacer *replacer.Replacer
	logger   *zap.Logger
	move     action.Job
	watcher  *fsnotify.Watcher
	// names this watcher renamed files to; only touched by Run
	produced map[string]struct{}

	// OnRename, when set, is called after every successful rename.
	OnRename func(resolve.Pair)
}

// New starts watching dir. Events are handled once Run is called.
func New(dir string, r *replacer.Replacer, logger *zap.Logger, force bool) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("error adding directory to watcher: %w", err)
	}

	return &Watcher{
		dir:      dir,
		replacer: r,
		logger:   logger,
		move:     action.Move(force),
		watcher:  fw,
		produced: make(map[string]struct{}),
	}, nil
}

// Run handles events until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				w.handleCreate(ctx, event.Name)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleCreate(ctx context.Context, path string) {
	name := filepath.Base(path)
	if w.consumeProduced(name) {
		return
	}

	out, err := w.replacer.Replace(name)
	if err != nil {
		if errors.Is(err, replacer.ErrNoMatch) {
			w.logger.Debug("item not matched", zap.String("item", name))
		} else {
			w.logger.Error("Error replacing name", zap.String("item", name), zap.Error(err))
		}
		return
	}
	if out == name {
		return
	}

	pair := resolve.Pair{Left: path, Right: filepath.Join(w.dir, out)}
	w.markProduced(out)
	if err := w.move(ctx, pair); err != nil {
		w.consumeProduced(out)
		w.logger.Error("Error renaming file",
			zap.String("left", pair.Left),
			zap.String("right", pair.Right),
			zap.Error(err))
		return
	}
	w.logger.Debug("renamed", zap.String("left", pair.Left), zap.String("right", pair.Right))
	if w.OnRename != nil {
		w.OnRename(pair)
	}
}

func (w *Watcher) markProduced(name string) {
	w.produced[name] = struct{}{}
}

// consumeProduced reports whether name was produced by a rename and forgets it.
func (w *Watcher) consumeProduced(name string) bool {
	if _, ok := w.produced[name]; ok {
		delete(w.produced, name)
		return true
	}
	return false
}
