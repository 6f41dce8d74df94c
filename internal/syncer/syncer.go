package syncer

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/five82/dnsdeck/internal/logging"
	"github.com/five82/dnsdeck/internal/notify"
	"github.com/five82/dnsdeck/internal/resolvex"
	"github.com/five82/dnsdeck/internal/state"
)

// Phase is the synchronizer's externally visible state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFetching
)

func (p Phase) String() string {
	if p == PhaseFetching {
		return "fetching"
	}
	return "idle"
}

// Result is the outcome of one sync cycle.
type Result string

const (
	ResultOK     Result = "ok"
	ResultFailed Result = "failed"
	ResultEmpty  Result = "empty"
	ResultStale  Result = "stale"
)

// Pusher accepts user-facing alerts. *notify.Queue implements it.
type Pusher interface {
	Push(kind notify.Kind, message string) int64
}

// Reporter observes finished cycles, typically for metrics.
type Reporter interface {
	SyncFinished(result Result, took time.Duration)
}

// Refresher runs one sync cycle.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Options configure a Synchronizer.
type Options struct {
	Fetcher  resolvex.Fetcher
	Store    *state.Store
	Alerts   Pusher
	Logger   *slog.Logger
	Reporter Reporter
	Now      func() time.Time
}

// Synchronizer fetches the full record list and publishes a new snapshot.
// Concurrent Refresh calls are allowed; each runs to completion and the
// store keeps whichever result belongs to the newest cycle.
type Synchronizer struct {
	fetcher  resolvex.Fetcher
	store    *state.Store
	alerts   Pusher
	logger   *slog.Logger
	reporter Reporter
	now      func() time.Time

	cycles atomic.Uint64
	active atomic.Int32

	mu         sync.Mutex
	phaseHooks []func(Phase)
}

// Ensure Synchronizer implements Refresher at compile time.
var _ Refresher = (*Synchronizer)(nil)

// New builds a Synchronizer. Fetcher and Store are required.
func New(opts Options) (*Synchronizer, error) {
	if opts.Fetcher == nil {
		return nil, errors.New("syncer requires a fetcher")
	}
	if opts.Store == nil {
		return nil, errors.New("syncer requires a store")
	}
	s := &Synchronizer{
		fetcher:  opts.Fetcher,
		store:    opts.Store,
		alerts:   opts.Alerts,
		logger:   opts.Logger,
		reporter: opts.Reporter,
		now:      opts.Now,
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s, nil
}

// Phase reports PhaseFetching while any cycle is in progress.
func (s *Synchronizer) Phase() Phase {
	if s.active.Load() > 0 {
		return PhaseFetching
	}
	return PhaseIdle
}

// OnPhaseChange registers fn to run when the first cycle starts or the last
// running cycle finishes. It runs on the refreshing goroutine.
func (s *Synchronizer) OnPhaseChange(fn func(Phase)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phaseHooks = append(s.phaseHooks, fn)
}

func (s *Synchronizer) enter() {
	if s.active.Add(1) == 1 {
		s.notifyPhase(PhaseFetching)
	}
}

func (s *Synchronizer) leave() {
	if s.active.Add(-1) == 0 {
		s.notifyPhase(PhaseIdle)
	}
}

func (s *Synchronizer) notifyPhase(p Phase) {
	s.mu.Lock()
	hooks := s.phaseHooks
	s.mu.Unlock()
	for _, fn := range hooks {
		fn(p)
	}
}

// Refresh runs one cycle. It returns the fetch error, if any; a response
// without a record collection is not an error.
func (s *Synchronizer) Refresh(ctx context.Context) error {
	_, err := s.RefreshResult(ctx)
	return err
}

// RefreshResult is Refresh with the cycle outcome.
func (s *Synchronizer) RefreshResult(ctx context.Context) (Result, error) {
	cycle := s.cycles.Add(1)
	s.enter()
	defer s.leave()

	start := s.now()
	log := s.logger.With(slog.Uint64("cycle", cycle))
	log.Debug("sync started")

	list, err := s.fetcher.List(ctx)
	if err != nil {
		msg := resolvex.Message(err)
		log.Warn("sync failed", slog.String("error", err.Error()))
		s.store.Fail(cycle, err)
		if s.alerts != nil {
			s.alerts.Push(notify.KindFailure, msg)
		}
		s.report(ResultFailed, start)
		return ResultFailed, err
	}

	if !list.HasList() {
		log.Debug("sync returned no record list; keeping snapshot")
		s.report(ResultEmpty, start)
		return ResultEmpty, nil
	}

	snap := state.Build(list.List, s.now())
	if !s.store.Publish(cycle, snap) {
		log.Debug("dropping stale sync result")
		s.report(ResultStale, start)
		return ResultStale, nil
	}

	log.Debug("sync published",
		slog.Int("records", snap.RecordCount),
		slog.Int("values", snap.TotalValues),
		slog.Int("unique", snap.UniqueValues))
	s.report(ResultOK, start)
	return ResultOK, nil
}

func (s *Synchronizer) report(result Result, start time.Time) {
	if s.reporter != nil {
		s.reporter.SyncFinished(result, s.now().Sub(start))
	}
}
