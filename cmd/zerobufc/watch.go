package main

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watch regenerates a schema file whenever it is written or replaced,
// until ctx is done. Directories are watched rather than the files, so
// editors that save by renaming a temporary file are seen too. Failed
// regenerations are logged and watching goes on.
func watch(ctx context.Context, log *slog.Logger, paths []string, regenerate func(context.Context, []string) error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	inputs := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		inputs[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			return err
		}
		dirs[dir] = true
	}
	log.Info("watching schema files", "files", len(inputs), "dirs", len(dirs))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil || !inputs[abs] {
				continue
			}
			log.Debug("schema changed", "path", abs, "op", ev.Op.String())
			if err := regenerate(ctx, []string{abs}); err != nil {
				log.Error("regenerating schema", "path", abs, "error", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Error("watching schema files", "error", err)
		}
	}
}
