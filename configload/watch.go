package configload

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/go-logr/logr"
	"github.com/luxas/tracing"
)

// Watch loads the configuration at path, applies it to the given entry
// points with tracing.Configure, and then re-loads and re-applies it on
// every write to the file until ctx is done.
//
// Watch blocks; run it in its own goroutine. The initial load and apply
// must succeed or Watch returns the error immediately; later failures
// are logged and the previous configuration stays in effect. Watch
// returns nil once ctx is done.
func Watch(ctx context.Context, log logr.Logger, path string, points ...tracing.ControlPoint) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// Watch the directory, not the file: editors and config management
	// tools typically replace the file on save, which would drop a
	// watch registered on the file itself.
	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}

	if err := applyFile(ctx, path, points); err != nil {
		return err
	}
	log.Info("applied trace configuration", "path", path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(path) ||
				!ev.Op.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if err := applyFile(ctx, path, points); err != nil {
				log.Error(err, "failed to apply trace configuration", "path", path)
				continue
			}
			log.Info("applied trace configuration", "path", path)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Error(err, "watching trace configuration", "path", path)
		}
	}
}

func applyFile(ctx context.Context, path string, points []tracing.ControlPoint) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	return tracing.Configure(ctx, cfg, points...)
}
