// Package scheduler runs named periodic tasks. Each task loops in its own goroutine, runs of the
// same task never overlap and a trigger firing while the task is still busy is skipped.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/postguard/pkg/metrics"
)

var (
	// ErrTaskRunning is returned by RunNow when the task is in progress
	ErrTaskRunning = errors.New("task is already running")
	// ErrUnknownTask is returned for a task name that was never registered
	ErrUnknownTask = errors.New("unknown task")
)

// Trigger decides when a task runs next
type Trigger interface {
	Next(now time.Time) time.Time
	String() string
}

// Task is a named unit of periodic work
type Task struct {
	Name       string
	Trigger    Trigger
	Run        func(ctx context.Context) error
	RunOnStart bool
}

// TaskStatus describes the state of a task
type TaskStatus struct {
	Name      string    `json:"name"`
	Schedule  string    `json:"schedule"`
	Running   bool      `json:"running"`
	LastRun   time.Time `json:"last_run,omitzero"`
	LastError string    `json:"last_error,omitempty"`
	NextRun   time.Time `json:"next_run,omitzero"`
	Runs      int64     `json:"runs"`
	Skips     int64     `json:"skips"`
}

// Params defines scheduler parameters
type Params struct {
	Metrics *metrics.Metrics
	Clock   func() time.Time
}

// Scheduler runs registered tasks
type Scheduler struct {
	Params

	mu      sync.Mutex
	tasks   map[string]*task
	started bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

type task struct {
	Task
	running atomic.Bool

	mu      sync.Mutex
	lastRun time.Time
	lastErr error
	nextRun time.Time
	runs    int64
	skips   int64
}

// New makes scheduler
func New(params Params) *Scheduler {
	if params.Clock == nil {
		params.Clock = time.Now
	}
	return &Scheduler{Params: params, tasks: map[string]*task{}}
}

// Add registers a task. Tasks can't be added after Start.
func (s *Scheduler) Add(t Task) error {
	if t.Name == "" || t.Trigger == nil || t.Run == nil {
		return fmt.Errorf("task %q needs name, trigger and run func", t.Name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return fmt.Errorf("can't add task %q to running scheduler", t.Name)
	}
	if _, ok := s.tasks[t.Name]; ok {
		return fmt.Errorf("task %q already registered", t.Name)
	}
	s.tasks[t.Name] = &task{Task: t}
	return nil
}

// Start launches all registered tasks
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	ctx, s.cancel = context.WithCancel(ctx)
	for _, t := range s.tasks {
		s.wg.Add(1)
		go s.loop(ctx, t)
	}
	lgr.Printf("[INFO] scheduler started with %d tasks", len(s.tasks))
}

// Stop cancels all tasks and waits for running ones to finish
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// RunNow runs the named task synchronously and returns its error
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	s.mu.Lock()
	t, ok := s.tasks[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTask, name)
	}
	if !t.running.CompareAndSwap(false, true) {
		return fmt.Errorf("%w: %s", ErrTaskRunning, name)
	}
	lgr.Printf("[INFO] task %s triggered manually", name)
	return s.execute(ctx, t)
}

// Status returns the state of all tasks sorted by name
func (s *Scheduler) Status() []TaskStatus {
	s.mu.Lock()
	tasks := make([]*task, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, t)
	}
	s.mu.Unlock()

	res := make([]TaskStatus, 0, len(tasks))
	for _, t := range tasks {
		t.mu.Lock()
		st := TaskStatus{Name: t.Name, Schedule: t.Trigger.String(), Running: t.running.Load(),
			LastRun: t.lastRun, NextRun: t.nextRun, Runs: t.runs, Skips: t.skips}
		if t.lastErr != nil {
			st.LastError = t.lastErr.Error()
		}
		t.mu.Unlock()
		res = append(res, st)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res
}

func (s *Scheduler) loop(ctx context.Context, t *task) {
	defer s.wg.Done()

	if t.RunOnStart {
		s.fire(ctx, t)
	}
	for {
		next := t.Trigger.Next(s.Clock())
		t.mu.Lock()
		t.nextRun = next
		t.mu.Unlock()

		timer := time.NewTimer(max(next.Sub(s.Clock()), 0))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.fire(ctx, t)
		}
	}
}

// fire starts the task in background unless the previous run is still going
func (s *Scheduler) fire(ctx context.Context, t *task) {
	if !t.running.CompareAndSwap(false, true) {
		t.mu.Lock()
		t.skips++
		t.mu.Unlock()
		s.Metrics.TaskSkipped(t.Name)
		lgr.Printf("[DEBUG] task %s is still running, skip", t.Name)
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		_ = s.execute(ctx, t)
	}()
}

// execute runs the task, the caller must have set the running flag
func (s *Scheduler) execute(ctx context.Context, t *task) (err error) {
	defer t.running.Store(false)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task %s panicked: %v", t.Name, r)
		}
		t.mu.Lock()
		t.lastRun = s.Clock()
		t.lastErr = err
		t.runs++
		t.mu.Unlock()
		s.Metrics.TaskRun(t.Name, err)
		if err != nil {
			lgr.Printf("[WARN] task %s failed: %v", t.Name, err)
		}
	}()
	return t.Run(ctx)
}

type every time.Duration

// Every makes a trigger firing with a fixed interval
func Every(d time.Duration) Trigger { return every(d) }

// Next returns now plus the interval
func (e every) Next(now time.Time) time.Time { return now.Add(time.Duration(e)) }

func (e every) String() string { return "every " + time.Duration(e).String() }

type daily struct {
	hour, minute int
	loc          *time.Location
}

// Daily makes a trigger firing once a day at hour:minute in loc, UTC if loc is nil
func Daily(hour, minute int, loc *time.Location) Trigger {
	if loc == nil {
		loc = time.UTC
	}
	return daily{hour: hour, minute: minute, loc: loc}
}

// Next returns the first hour:minute strictly after now
func (d daily) Next(now time.Time) time.Time {
	local := now.In(d.loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), d.hour, d.minute, 0, 0, d.loc)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, d.hour, d.minute, 0, 0, d.loc)
	}
	return next
}

func (d daily) String() string { return fmt.Sprintf("daily at %02d:%02d %s", d.hour, d.minute, d.loc) }
