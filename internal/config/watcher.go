package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yegors/atc24-radar/pkg/logger"
)

// Watcher reloads the configuration file when it changes on disk and hands
// the new snapshot to the apply callback. A reload that fails to parse or
// validate is logged and discarded; the previously applied snapshot stays
// authoritative.
type Watcher struct {
	path   string
	apply  func(*Config)
	logger *logger.Logger
}

// NewWatcher creates a watcher for the given config file path
func NewWatcher(path string, apply func(*Config), log *logger.Logger) *Watcher {
	return &Watcher{
		path:   path,
		apply:  apply,
		logger: log.Named("config-watcher"),
	}
}

// Run watches the config file until the context is cancelled. The watch is
// placed on the parent directory and filtered by file name: editors that
// save via rename-and-replace would otherwise detach a watch on the file
// itself for the rest of the process.
func (w *Watcher) Run(ctx context.Context) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsWatcher.Close()

	if err := fsWatcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	fileName := filepath.Base(w.path)

	w.logger.Info("Config file watcher started", logger.String("path", w.path))

	for {
		select {
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != fileName {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.logger.Debug("Config file event", logger.String("op", event.Op.String()))

			// Editors often truncate then write; give the writer a moment
			// to finish before parsing.
			select {
			case <-time.After(100 * time.Millisecond):
			case <-ctx.Done():
				return ctx.Err()
			}

			cfg, err := Load(w.path)
			if err != nil {
				w.logger.Error("Failed to reload config, keeping previous snapshot", logger.Error(err))
				continue
			}
			w.apply(cfg)
			w.logger.Info("Configuration reloaded successfully")

		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watch error", logger.Error(err))

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
