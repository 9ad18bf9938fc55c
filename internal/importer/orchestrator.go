// Package importer decides between a first-run import and a plain read, runs
// the import pipeline and delivers its outcome to the front end.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/josephgoksu/tasknest/internal/source"
	"github.com/josephgoksu/tasknest/internal/task"
)

// State is the orchestrator's position in the load pipeline.
type State int32

const (
	StateIdle State = iota
	StateInFlight
	StateImporting
	StateSaving
	StateReloading
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInFlight:
		return "in_flight"
	case StateImporting:
		return "importing"
	case StateSaving:
		return "saving"
	case StateReloading:
		return "reloading"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Store is what the orchestrator needs from persistence.
type Store interface {
	TaskCreator
	CreateTasks(ctx context.Context, batch []task.NewTask) error
	ListTasks(ctx context.Context) ([]task.Task, error)
}

// FirstRunChecker reports whether this is the first launch. Implementations
// must return true at most once.
type FirstRunChecker interface {
	IsInitialLaunch(ctx context.Context) (bool, error)
}

// Output receives the single outcome of a GetTasksList call.
type Output struct {
	SendTasks func(tasks []task.Task)
	SendError func(message, category string)
}

// Config wires an Orchestrator.
type Config struct {
	Store  Store
	Gate   FirstRunChecker
	Source source.Source
	Output Output

	// Dispatcher delivers Output callbacks. When nil the orchestrator owns
	// one and Close shuts it down.
	Dispatcher *SerialDispatcher

	// Atomic saves the import in one transaction instead of concurrent
	// independent writes.
	Atomic bool

	Now    func() time.Time
	Logger *slog.Logger
}

// Orchestrator runs the load pipeline.
type Orchestrator struct {
	store      Store
	gate       FirstRunChecker
	src        source.Source
	out        Output
	dispatcher *SerialDispatcher
	ownsDisp   bool
	atomic     bool
	now        func() time.Time
	logger     *slog.Logger

	guard  LoadGuard
	state  atomic.Int32
	flight singleflight.Group
	bg     sync.WaitGroup
	// writes tracks batch creates still running after a failure was
	// reported.
	writes sync.WaitGroup
}

// New validates cfg and returns an orchestrator.
func New(cfg Config) (*Orchestrator, error) {
	if cfg.Store == nil {
		return nil, errors.New("importer: store is required")
	}
	if cfg.Gate == nil {
		return nil, errors.New("importer: first run gate is required")
	}
	if cfg.Source == nil {
		return nil, errors.New("importer: source is required")
	}

	o := &Orchestrator{
		store:      cfg.Store,
		gate:       cfg.Gate,
		src:        cfg.Source,
		out:        cfg.Output,
		dispatcher: cfg.Dispatcher,
		atomic:     cfg.Atomic,
		now:        cfg.Now,
		logger:     cfg.Logger,
	}
	if o.dispatcher == nil {
		o.dispatcher = NewSerialDispatcher()
		o.ownsDisp = true
	}
	if o.now == nil {
		o.now = time.Now
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o, nil
}

// State returns the current pipeline state.
func (o *Orchestrator) State() State {
	return State(o.state.Load())
}

func (o *Orchestrator) setState(s State) {
	o.state.Store(int32(s))
	o.logger.Debug("load state", "state", s.String())
}

// GetTasksList starts a load in the background and delivers exactly one
// outcome through Output. If a load is already running the call does nothing
// and returns false.
func (o *Orchestrator) GetTasksList(ctx context.Context) bool {
	if !o.guard.TryAcquire() {
		o.logger.Debug("load already in flight, ignoring request")
		return false
	}

	o.bg.Add(1)
	go func() {
		defer o.bg.Done()

		tasks, err := o.Load(ctx)
		o.deliver(tasks, err)
		o.guard.Release()
	}()
	return true
}

// Wait blocks until background loads started by GetTasksList have finished
// and their outcomes have been queued for delivery.
func (o *Orchestrator) Wait() {
	o.bg.Wait()
}

// Close waits for background loads and for every import write they issued,
// then flushes pending deliveries. The store must stay open until Close
// returns.
func (o *Orchestrator) Close() {
	o.bg.Wait()
	o.writes.Wait()
	if o.ownsDisp {
		o.dispatcher.Close()
	}
}

// Load runs the pipeline synchronously. Concurrent callers share one run.
func (o *Orchestrator) Load(ctx context.Context) ([]task.Task, error) {
	v, err, shared := o.flight.Do("load", func() (any, error) {
		return o.run(ctx)
	})
	if shared {
		o.logger.Debug("load result shared with concurrent caller")
	}
	if err != nil {
		return nil, err
	}
	return slices.Clone(v.([]task.Task)), nil
}

func (o *Orchestrator) run(ctx context.Context) ([]task.Task, error) {
	o.setState(StateInFlight)
	defer o.setState(StateIdle)

	first, err := o.gate.IsInitialLaunch(ctx)
	if err != nil {
		return nil, err
	}

	if first {
		o.logger.Info("first launch, importing tasks")
		if _, err := o.importFrom(ctx, o.src); err != nil {
			return nil, err
		}
	}

	o.setState(StateReloading)
	return o.store.ListTasks(ctx)
}

// Import fetches from src and saves the result, regardless of the first run
// flag. It returns the number of tasks written.
func (o *Orchestrator) Import(ctx context.Context, src source.Source) (int, error) {
	o.setState(StateInFlight)
	defer o.setState(StateIdle)
	return o.importFrom(ctx, src)
}

func (o *Orchestrator) importFrom(ctx context.Context, src source.Source) (int, error) {
	o.setState(StateImporting)
	list, err := src.Fetch(ctx)
	if err != nil {
		o.logger.Warn("fetch import list failed", "error", err)
		return 0, err
	}

	o.setState(StateSaving)
	start := time.Now()
	if err := o.save(ctx, list.Todos); err != nil {
		o.logger.Warn("save imported tasks failed", "count", len(list.Todos), "error", err)
		return 0, err
	}
	o.logger.Info("imported tasks", "count", len(list.Todos), "atomic", o.atomic, "duration", time.Since(start))
	return len(list.Todos), nil
}

func (o *Orchestrator) save(ctx context.Context, raw []source.RawTask) error {
	if !o.atomic {
		wait, err := startBatch(ctx, o.store, raw, o.now)
		o.writes.Add(1)
		go func() {
			defer o.writes.Done()
			wait()
		}()
		return err
	}

	batch := make([]task.NewTask, 0, len(raw))
	for _, r := range raw {
		batch = append(batch, toNewTask(r, o.now))
	}
	return o.store.CreateTasks(context.WithoutCancel(ctx), batch)
}

func (o *Orchestrator) deliver(tasks []task.Task, err error) {
	var fn func()
	if err != nil {
		c := Classify(err)
		o.logger.Debug("delivering error", "category", c.Category, "error", err)
		fn = func() {
			if o.out.SendError != nil {
				o.out.SendError(c.Message, c.Category)
			}
		}
	} else {
		fn = func() {
			if o.out.SendTasks != nil {
				o.out.SendTasks(tasks)
			}
		}
	}

	if !o.dispatcher.Dispatch(fn) {
		o.logger.Warn("dispatcher closed, dropping load outcome")
	}
}
