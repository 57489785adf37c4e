// Package watch re-runs the gather pass whenever the board file changes
// on disk. It debounces editor write bursts, suppresses events caused by
// its own writes, and rate-limits passes so a misbehaving tool cannot spin
// the engine.
package watch

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/mdkanban/kb/internal/gather"
	"github.com/mdkanban/kb/internal/markdown"
)

// Watcher watches one board file.
type Watcher struct {
	path     string
	engine   *gather.Engine
	debounce time.Duration
	limiter  *rate.Limiter

	// OnPass, when set, is called after every gather pass that ran.
	OnPass func(*gather.PassResult)

	mu         sync.Mutex
	isOwnWrite bool
}

// Options configures a Watcher.
type Options struct {
	// Debounce is how long to wait after the last write event before
	// gathering. Zero means 500ms.
	Debounce time.Duration

	// MaxPassesPerMinute caps pass frequency. Zero means uncapped.
	MaxPassesPerMinute int
}

// New creates a watcher for the board file at path.
func New(path string, engine *gather.Engine, opts Options) *Watcher {
	debounce := opts.Debounce
	if debounce == 0 {
		debounce = 500 * time.Millisecond
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.MaxPassesPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(opts.MaxPassesPerMinute)/60.0), 1)
	}

	return &Watcher{
		path:     path,
		engine:   engine,
		debounce: debounce,
		limiter:  limiter,
	}
}

// Run watches until ctx is cancelled. The first pass runs immediately so a
// stale board is fixed up at startup.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.path); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.path, err)
	}

	if err := w.process(ctx); err != nil {
		return err
	}

	var debounceTimer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if w.consumeOwnWrite() {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.NewTimer(w.debounce)
			timerC = debounceTimer.C

		case <-timerC:
			timerC = nil
			if err := w.process(ctx); err != nil {
				return err
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch error: %w", err)
		}
	}
}

// process loads the board, gathers, and writes the result back when the
// serialized board differs from what is on disk. Comparing bytes instead
// of counting moves catches sort-directive reorders too.
func (w *Watcher) process(ctx context.Context) error {
	if err := w.limiter.Wait(ctx); err != nil {
		return err
	}

	data, err := os.ReadFile(w.path)
	if err != nil {
		return fmt.Errorf("reading board file: %w", err)
	}
	doc, err := markdown.Parse(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", w.path, err)
	}

	// A file with no column headings is not a board; leave it alone
	// rather than rewriting it to nothing.
	if len(doc.Board.Columns) == 0 {
		return nil
	}

	result, ok := w.engine.Pass(doc.Board)
	if !ok {
		return fmt.Errorf("board %s has no columns", w.path)
	}
	if w.OnPass != nil {
		w.OnPass(result)
	}

	out, err := doc.Marshal()
	if err != nil {
		return err
	}
	if bytes.Equal(out, data) {
		return nil
	}

	w.markOwnWrite()
	if err := os.WriteFile(w.path, out, 0644); err != nil {
		return fmt.Errorf("writing board file: %w", err)
	}
	return nil
}

// markOwnWrite flags the next write event as ours, so saving the gathered
// board does not trigger another pass.
func (w *Watcher) markOwnWrite() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.isOwnWrite = true
}

func (w *Watcher) consumeOwnWrite() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.isOwnWrite {
		w.isOwnWrite = false
		return true
	}
	return false
}
