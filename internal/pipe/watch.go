package pipe

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watchRemoval signals removed whenever the FIFO at path is deleted or
// renamed away. The parent directory is watched because inotify drops a
// watch on the file itself once it is unlinked. Signals are coalesced.
func watchRemoval(path string, removed chan<- struct{}, logger *slog.Logger) (func(), error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	target := filepath.Clean(path)
	if err := fsWatcher.Add(filepath.Dir(target)); err != nil {
		_ = fsWatcher.Close()
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case event, ok := <-fsWatcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				logger.Debug("fsnotify", "op", event.Op.String(), "path", event.Name)
				select {
				case removed <- struct{}{}:
				default:
				}
			case err, ok := <-fsWatcher.Errors:
				if !ok {
					return
				}
				logger.Warn("pipe watch error", "error", err)
			}
		}
	}()

	return func() {
		close(done)
		_ = fsWatcher.Close()
	}, nil
}
