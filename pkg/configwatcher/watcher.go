package configwatcher

import (
	"lawyer_exam_backend/internal/config"
	"lawyer_exam_backend/pkg/logger"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

type ConfigReloader func(cfg *config.Config)

// WatchConfig watches the config file and calls reloader with the freshly
// parsed config. Rapid write bursts are debounced to a single reload.
// Hot reload is best effort: when the watch cannot be established the
// server keeps running on its startup config.
func WatchConfig(configPath string, reloader ConfigReloader) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Log.Error("Config watcher disabled", zap.Error(err))
		return
	}
	defer watcher.Close()

	absPath, err := filepath.Abs(configPath)
	if err != nil {
		logger.Log.Error("Config watcher disabled", zap.Error(err))
		return
	}

	if err := watcher.Add(absPath); err != nil {
		logger.Log.Error("Config watcher disabled", zap.String("path", absPath), zap.Error(err))
		return
	}

	var mu sync.Mutex
	timer := time.NewTimer(0)
	<-timer.C

	schedule := func() {
		mu.Lock()
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(1 * time.Second)
		mu.Unlock()
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Write == fsnotify.Write {
				schedule()
			}
			// Editors and configmap mounts replace the file instead of
			// writing it in place, which drops the watch.
			if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				watcher.Remove(absPath)
				if err := watcher.Add(absPath); err != nil {
					logger.Log.Warn("Config file replaced and lost", zap.Error(err))
					continue
				}
				schedule()
			}
		case <-timer.C:
			newCfg, err := config.LoadConfig(filepath.Dir(configPath))
			if err != nil {
				logger.Log.Error("Failed to reload config", zap.Error(err))
				continue
			}
			reloader(newCfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Log.Error("Config watcher error", zap.Error(err))
		}
	}
}
