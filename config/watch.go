package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watch reloads the file at path each time it is written or replaced and
// passes the result to onChange, or the load or validation error to onError.
// The parent directory is watched so editors that save by rename are seen.
// Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, onChange func(Config), onError func(error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}

	if dir, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		abs = filepath.Join(dir, filepath.Base(abs))
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	logrus.WithFields(logrus.Fields{
		"function": "Watch",
		"file":     abs,
	}).Info("Watching configuration file")

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			cfg, err := Load(abs)
			if err == nil {
				err = cfg.Validate()
			}
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"function": "Watch",
					"file":     abs,
					"error":    err.Error(),
				}).Warn("Reloaded configuration is invalid")
				if onError != nil {
					onError(err)
				}
				continue
			}
			onChange(cfg)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logrus.WithFields(logrus.Fields{
				"function": "Watch",
				"error":    err.Error(),
			}).Warn("File watcher error")
		}
	}
}
