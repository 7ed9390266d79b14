package generator

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ros-acados/nodegen/internal/logging"
	"github.com/ros-acados/nodegen/internal/solverexport"
)

// DefaultDebounce batches the burst of events an editor save produces.
const DefaultDebounce = 200 * time.Millisecond

// watchDir lists the files that matter in one watched directory.
type watchDir struct {
	names map[string]struct{}
	// exports matches any solver export file in the directory.
	exports bool
}

// watchSet maps a watched directory to the files that matter in it.
type watchSet map[string]*watchDir

func (s watchSet) dir(path string) *watchDir {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	d, ok := s[abs]
	if !ok {
		d = &watchDir{names: make(map[string]struct{})}
		s[abs] = d
	}
	return d
}

func (s watchSet) addFile(path string) {
	if strings.TrimSpace(path) == "" {
		return
	}
	s.dir(filepath.Dir(path)).names[filepath.Base(path)] = struct{}{}
}

func (s watchSet) addExportDir(path string) {
	s.dir(path).exports = true
}

func (s watchSet) matches(path string) bool {
	d, ok := s[filepath.Dir(path)]
	if !ok {
		return false
	}
	name := filepath.Base(path)
	if _, ok := d.names[name]; ok {
		return true
	}
	return d.exports && strings.EqualFold(filepath.Ext(name), solverexport.Extension)
}

// inputs lists every file req reads.
func inputs(req Request) watchSet {
	set := make(watchSet)
	set.addFile(req.DescriptorPath)
	for _, f := range req.OverrideFiles {
		set.addFile(f)
	}
	if solver := strings.TrimSpace(req.SolverPath); solver != "" {
		if info, err := os.Stat(solver); err == nil && info.IsDir() {
			set.addExportDir(solver)
		} else {
			set.addFile(solver)
		}
	}
	return set
}

// Watch runs req once and again after every change to one of its input
// files, until ctx is done. A failed run is logged and watching continues, so
// a broken descriptor can be fixed in place. debounce <= 0 uses DefaultDebounce.
func Watch(ctx context.Context, req Request, emitter Emitter, logger *slog.Logger, debounce time.Duration) error {
	if logger == nil {
		logger = logging.Discard()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	targets := inputs(req)
	if len(targets) == 0 {
		return fmt.Errorf("watch requires a descriptor, solver export or override file")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	for dir := range targets {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch directory %q: %w", dir, err)
		}
		logger.Debug("watching", "dir", dir)
	}

	regenerate := func() {
		res, err := Run(ctx, req, emitter, logger)
		if err != nil {
			if ctx.Err() == nil {
				logger.Error("generation failed", "error", err)
			}
			return
		}
		logger.Info("context generated", "request_id", res.RequestID, "warnings", len(res.Warnings))
	}
	regenerate()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !targets.matches(event.Name) {
				continue
			}
			logger.Debug("input changed", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("file watcher error", "error", err)

		case <-fire:
			fire = nil
			regenerate()
		}
	}
}
