package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gofrs/flock"

	"autoreel/internal/assembly"
	"autoreel/internal/catalog"
	"autoreel/internal/history"
	"autoreel/internal/logging"
	"autoreel/internal/notifications"
	"autoreel/internal/playlist"
	"autoreel/internal/services"
)

// ErrAlreadyWatching reports that another watcher holds the output folder lock.
var ErrAlreadyWatching = errors.New("another autoreel watcher is already using this output folder")

const (
	lockFileName = ".autoreel.lock"
	wakeDebounce = 500 * time.Millisecond
)

// Assembler runs one pipeline invocation.
type Assembler interface {
	Run(ctx context.Context, req assembly.Request, trigger string, observer playlist.ProgressObserver) (assembly.Result, error)
}

// Watcher polls the input folder and re-runs the pipeline on change.
type Watcher struct {
	pipeline Assembler
	req      assembly.Request
	interval time.Duration
	fsEvents bool
	observer playlist.ProgressObserver
	logger   *slog.Logger

	notifier   notifications.Service
	initialRun bool
	onInitial  func(assembly.Result)

	mu    sync.Mutex
	state State
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithInterval sets the polling period.
func WithInterval(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.interval = d
		}
	}
}

// WithFSEvents enables fsnotify wake-ups between ticks.
func WithFSEvents(enabled bool) Option {
	return func(w *Watcher) {
		w.fsEvents = enabled
	}
}

// WithAuto arms or disarms automatic re-runs.
func WithAuto(armed bool) Option {
	return func(w *Watcher) {
		w.state.Armed = armed
	}
}

// WithObserver forwards run progress to o.
func WithObserver(o playlist.ProgressObserver) Option {
	return func(w *Watcher) {
		w.observer = o
	}
}

// WithInitialRun makes Run start with a manual run once the lock is held.
// report, when non-nil, receives the successful result.
func WithInitialRun(report func(assembly.Result)) Option {
	return func(w *Watcher) {
		w.initialRun = true
		w.onInitial = report
	}
}

// WithNotifier announces changes seen while auto mode is disarmed.
func WithNotifier(n notifications.Service) Option {
	return func(w *Watcher) {
		w.notifier = n
	}
}

// WithLogger sets the watcher logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logging.NewComponentLogger(logger, "watcher")
	}
}

// New constructs a watcher for req. Auto mode is armed by default.
func New(pipeline Assembler, req assembly.Request, opts ...Option) *Watcher {
	w := &Watcher{
		pipeline: pipeline,
		req:      req,
		interval: 3 * time.Second,
		logger:   logging.NewComponentLogger(nil, "watcher"),
		state:    State{Armed: true},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// State returns a copy of the current watcher state.
func (w *Watcher) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	s := w.state
	s.Baseline = s.Baseline.Clone()
	return s
}

func (w *Watcher) setState(s State) {
	w.mu.Lock()
	w.state = s
	w.mu.Unlock()
}

// ManualRun runs the pipeline on request. Success records the folder
// snapshot taken before the run as the new baseline and enables auto mode.
func (w *Watcher) ManualRun(ctx context.Context) (assembly.Result, error) {
	items, err := catalog.List(w.req.InputFolder, w.req.Order)
	if err != nil {
		return assembly.Result{}, services.Wrap(services.ErrConfiguration, "watcher", "snapshot input", w.req.InputFolder, err)
	}
	snapshot := catalog.NewSnapshot(items)

	result, runErr := w.pipeline.Run(ctx, w.req, history.TriggerManual, w.observer)
	if runErr != nil {
		return result, runErr
	}
	w.setState(AcceptManualRun(w.State(), snapshot))
	return result, nil
}

// Tick takes one snapshot and acts on it. Run failures are logged and
// returned; they never change the accepted baseline.
func (w *Watcher) Tick(ctx context.Context) (Action, error) {
	snapshot, err := catalog.Take(w.req.InputFolder)
	if err != nil {
		w.logger.Warn("input snapshot failed", logging.String("input", w.req.InputFolder), logging.Error(err))
		return Idle, err
	}

	next, action := Decide(w.State(), snapshot)
	w.setState(next)

	switch action {
	case Notice:
		w.logger.Info("input folder changed; auto mode disarmed",
			logging.String(logging.FieldEventType, "change_detected"),
			logging.Int("items", len(snapshot)),
		)
		if w.notifier != nil {
			if err := w.notifier.NotifyChangesDetected(ctx, len(snapshot)); err != nil {
				logging.WarnWithContext(w.logger, "notification not delivered", "notification_failed", logging.Error(err))
			}
		}
	case Trigger:
		w.logger.Info("input folder changed; starting assembly",
			logging.String(logging.FieldEventType, "change_detected"),
			logging.Int("items", len(snapshot)),
		)
		if _, err := w.pipeline.Run(ctx, w.req, history.TriggerWatch, w.observer); err != nil {
			return action, err
		}
	}
	return action, nil
}

// Run polls until ctx is canceled. It holds an exclusive lock on the output
// folder for its lifetime. A failed initial run ends Run with that error.
func (w *Watcher) Run(ctx context.Context) error {
	lock, err := acquireLock(w.req.OutputFolder)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			w.logger.Warn("failed to release watcher lock", logging.Error(err))
		}
	}()

	if w.initialRun {
		result, err := w.ManualRun(ctx)
		if err != nil {
			return err
		}
		if w.onInitial != nil {
			w.onInitial(result)
		}
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	wake, stopEvents := w.startEvents()
	defer stopEvents()

	w.logger.Info("watching input folder",
		logging.String(logging.FieldEventType, "watch_started"),
		logging.String("input", w.req.InputFolder),
		logging.Duration("interval", w.interval),
		logging.Bool("auto", w.State().Armed),
		logging.Bool("fs_events", wake != nil),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopped", logging.String(logging.FieldEventType, "watch_stopped"))
			return nil
		case <-ticker.C:
		case <-wake:
		}
		if _, err := w.Tick(ctx); err != nil && ctx.Err() == nil {
			w.logger.Debug("tick finished with error", logging.Error(err))
		}
	}
}

func acquireLock(outputFolder string) (*flock.Flock, error) {
	if strings.TrimSpace(outputFolder) == "" {
		return nil, errors.New("watcher: output folder is required")
	}
	if err := os.MkdirAll(outputFolder, 0o755); err != nil {
		return nil, fmt.Errorf("create output folder: %w", err)
	}
	lock := flock.New(filepath.Join(outputFolder, lockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, ErrAlreadyWatching
	}
	return lock, nil
}

// startEvents returns a channel that fires shortly after filesystem activity
// in the input folder. It returns a nil channel when events are disabled or
// the folder cannot be watched.
func (w *Watcher) startEvents() (<-chan struct{}, func()) {
	if !w.fsEvents {
		return nil, func() {}
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		w.logger.Debug("fsnotify unavailable", logging.Error(err))
		return nil, func() {}
	}
	if err := fw.Add(w.req.InputFolder); err != nil {
		w.logger.Debug("input folder not watchable; polling only",
			logging.String("input", w.req.InputFolder),
			logging.Error(err),
		)
		_ = fw.Close()
		return nil, func() {}
	}

	wake := make(chan struct{}, 1)
	done := make(chan struct{})
	go func() {
		var timer *time.Timer
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()
		for {
			select {
			case event, ok := <-fw.Events:
				if !ok {
					return
				}
				if strings.HasPrefix(filepath.Base(event.Name), ".") {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(wakeDebounce, func() {
					select {
					case wake <- struct{}{}:
					default:
					}
				})
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				w.logger.Debug("fsnotify error", logging.Error(err))
			case <-done:
				return
			}
		}
	}()
	return wake, func() {
		close(done)
		_ = fw.Close()
	}
}
