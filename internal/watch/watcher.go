// =============================================================================
// FBX to DAE Automation - Watch Module
// =============================================================================
//
// This module keeps converting files as they appear in the input directory.
//
// FLOW:
//   fsnotify event -> pending (per path, last event time)
//                  -> settled for Settle -> queue -> single worker
//
//   A file is only handed to the pipeline after no event was seen for it
//   during the settle delay, so exporters that write in several chunks are
//   converted once, after they are done. Jobs run one at a time.
//
// =============================================================================

package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ginjaninja78/fbx-to-dae-automation/internal/logger"
	"github.com/ginjaninja78/fbx-to-dae-automation/internal/types"
	"github.com/ginjaninja78/fbx-to-dae-automation/pkg/utils"
)

// DefaultSettle is the quiet period required before a file is processed.
const DefaultSettle = 500 * time.Millisecond

// Processor handles a single settled input file.
type Processor interface {
	ProcessFile(ctx context.Context, inputPath string) types.JobResult
}

// Options configures a Watcher.
type Options struct {
	// Settle is the quiet period after the last event for a file.
	// Default: DefaultSettle
	Settle time.Duration

	// Match selects input files by base name. A nil Match accepts all.
	Match func(name string) bool

	// OnResult is called from the worker after every processed file.
	OnResult func(types.JobResult)
}

// Watcher feeds new and rewritten input files to a Processor.
type Watcher struct {
	dir       string
	processor Processor
	opts      Options
	logger    logger.Logger
}

// New creates a Watcher for dir.
func New(dir string, processor Processor, opts Options, log logger.Logger) *Watcher {
	if log == nil {
		log = logger.NewNop()
	}
	if opts.Settle <= 0 {
		opts.Settle = DefaultSettle
	}
	return &Watcher{
		dir:       dir,
		processor: processor,
		opts:      opts,
		logger:    log,
	}
}

// Relevant reports whether ev announces new content for a matching file.
func Relevant(ev fsnotify.Event, match func(name string) bool) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return false
	}
	return match == nil || match(filepath.Base(ev.Name))
}

// Run watches the input directory until ctx is done. The backlog paths are
// processed first, without waiting for them to settle.
//
// RETURNS:
//   - nil once ctx is done and the running job has returned.
//   - An error if the directory cannot be watched.
func (w *Watcher) Run(ctx context.Context, backlog []string) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	w.logger.Info("Watching for input files", "dir", w.dir, "settle", w.opts.Settle)

	jobs := make(chan string)
	done := make(chan struct{})
	go w.work(ctx, jobs, done)
	defer func() {
		close(jobs)
		<-done
	}()

	s := newScheduler(w.opts.Settle)
	for _, path := range backlog {
		s.enqueue(path)
	}

	ticker := time.NewTicker(w.opts.Settle / 2)
	defer ticker.Stop()

	for {
		var (
			send chan<- string
			next string
		)
		if path, ok := s.peek(); ok {
			send, next = jobs, path
		}

		select {
		case <-ctx.Done():
			w.logger.Info("Stopping watcher")
			return nil

		case send <- next:
			s.pop()

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			switch {
			case Relevant(ev, w.opts.Match):
				w.logger.Debug("Input changed, waiting for it to settle", "file", ev.Name, "op", ev.Op.String())
				s.touch(ev.Name, time.Now())
			case ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename):
				s.forget(ev.Name)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", "error", err)

		case now := <-ticker.C:
			for _, path := range s.settled(now) {
				if utils.IsRegularFile(path) {
					s.enqueue(path)
				}
			}
		}
	}
}

// work is the single consumer of settled files.
func (w *Watcher) work(ctx context.Context, jobs <-chan string, done chan<- struct{}) {
	defer close(done)
	for path := range jobs {
		if ctx.Err() != nil {
			continue
		}
		result := w.processor.ProcessFile(ctx, path)
		if w.opts.OnResult != nil {
			w.opts.OnResult(result)
		}
	}
}

// =============================================================================
// SCHEDULER
// =============================================================================

// scheduler tracks files that changed recently and the FIFO of files ready
// to be processed. It is owned by the Run loop.
type scheduler struct {
	settle  time.Duration
	pending map[string]time.Time
	queue   []string
	queued  map[string]bool
}

func newScheduler(settle time.Duration) *scheduler {
	return &scheduler{
		settle:  settle,
		pending: make(map[string]time.Time),
		queued:  make(map[string]bool),
	}
}

// touch records an event for path at t.
func (s *scheduler) touch(path string, t time.Time) {
	s.pending[path] = t
}

// forget drops a pending path.
func (s *scheduler) forget(path string) {
	delete(s.pending, path)
}

// settled removes and returns, in name order, the pending paths whose last
// event is at least settle before now.
func (s *scheduler) settled(now time.Time) []string {
	var ready []string
	for path, last := range s.pending {
		if now.Sub(last) >= s.settle {
			ready = append(ready, path)
		}
	}
	sort.Strings(ready)
	for _, path := range ready {
		delete(s.pending, path)
	}
	return ready
}

// enqueue appends path to the queue unless it is already waiting there.
func (s *scheduler) enqueue(path string) {
	if s.queued[path] {
		return
	}
	s.queued[path] = true
	s.queue = append(s.queue, path)
}

func (s *scheduler) peek() (string, bool) {
	if len(s.queue) == 0 {
		return "", false
	}
	return s.queue[0], true
}

func (s *scheduler) pop() {
	delete(s.queued, s.queue[0])
	s.queue = s.queue[1:]
}
