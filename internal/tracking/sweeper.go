package tracking

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// SweepRun captures details about a single sweeper pass.
type SweepRun struct {
	Trigger     string    `json:"trigger,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at,omitempty"`
	DurationMs  int64     `json:"duration_ms,omitempty"`
	Reclaimed   int       `json:"reclaimed"`
	Deactivated int       `json:"deactivated"`
	Error       string    `json:"error,omitempty"`
}

// SweeperStatus represents the current state of the liveness sweeper.
type SweeperStatus struct {
	Interval         string    `json:"interval"`
	LastRunAt        time.Time `json:"last_run_at"`
	LastRunError     string    `json:"last_run_error,omitempty"`
	RunCount         int64     `json:"run_count"`
	TotalReclaimed   int64     `json:"total_reclaimed"`
	TotalDeactivated int64     `json:"total_deactivated"`
	IsHealthy        bool      `json:"is_healthy"`
	LastRun          *SweepRun `json:"last_run,omitempty"`
}

// Sweeper periodically reaps sessions whose heartbeat has gone stale and
// clears the active flag of vehicles left without a session. Both steps are
// idempotent and safe to run on every instance at once.
type Sweeper struct {
	reg      *Registry
	interval time.Duration

	manualTrigger chan struct{}
	stop          chan struct{}
	stopOnce      sync.Once
	wg            sync.WaitGroup

	// OnRun, if set, is called after every pass started by Start.
	OnRun func(SweepRun)

	// Retention, if positive, bounds the age of the position log on stores
	// that implement PositionPruner.
	Retention time.Duration

	mu               sync.RWMutex
	lastRunAt        time.Time
	lastRunError     error
	runCount         int64
	totalReclaimed   int64
	totalDeactivated int64
	lastRun          *SweepRun
}

// NewSweeper returns a sweeper for reg. A non-positive interval selects
// DefaultSweepInterval.
func NewSweeper(reg *Registry, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{
		reg:      reg,
		interval: interval,
		// Buffered so that rapid manual triggers coalesce into one pending run.
		manualTrigger: make(chan struct{}, 1),
		stop:          make(chan struct{}),
	}
}

func (s *Sweeper) Interval() time.Duration { return s.interval }

// RunOnce deletes stale sessions and then deactivates orphaned vehicles.
func (s *Sweeper) RunOnce(ctx context.Context) (reclaimed, deactivated int, err error) {
	r := s.reg
	now := r.clock.Now()

	reclaimed, err = r.store.DeleteStaleSessions(ctx, now.Add(-r.staleAfter))
	if err != nil {
		err = fmt.Errorf("delete stale sessions: %w", err)
		r.metrics.ObserveSweep(0, 0, err)
		return 0, 0, err
	}
	deactivated, err = r.store.DeactivateOrphans(ctx, now)
	if err != nil {
		err = fmt.Errorf("deactivate orphaned vehicles: %w", err)
		r.metrics.ObserveSweep(reclaimed, 0, err)
		return reclaimed, 0, err
	}
	r.metrics.ObserveSweep(reclaimed, deactivated, nil)
	if reclaimed > 0 || deactivated > 0 {
		r.log.Info("sweeper reclaimed sessions", "reclaimed", reclaimed, "deactivated", deactivated)
	}
	s.prune(ctx, now)
	return reclaimed, deactivated, nil
}

// prune drops position log entries older than Retention. Failures are logged
// and never fail the pass.
func (s *Sweeper) prune(ctx context.Context, now time.Time) {
	p, ok := s.reg.store.(PositionPruner)
	if s.Retention <= 0 || !ok {
		return
	}
	n, err := p.PrunePositions(ctx, now.Add(-s.Retention))
	if err != nil {
		s.reg.log.Warn("failed to prune position log", "error", err)
		return
	}
	if n > 0 {
		s.reg.log.Debug("pruned position log", "removed", n, "retention", s.Retention)
	}
}

// Start runs the sweeper loop in a goroutine until Stop is called or ctx is
// done.
func (s *Sweeper) Start(ctx context.Context) {
	ticker := s.reg.clock.NewTicker(s.interval)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer ticker.Stop()
		s.reg.log.Info("sweeper loop started", "interval", s.interval, "stale_after", s.reg.staleAfter)
		for {
			select {
			case <-ticker.C():
				s.run(ctx, "periodic")
				s.reg.LogFleetSummary(ctx)
			case <-s.manualTrigger:
				s.run(ctx, "manual")
			case <-s.stop:
				s.reg.log.Info("sweeper stopped")
				return
			case <-ctx.Done():
				s.reg.log.Info("sweeper terminated")
				return
			}
		}
	}()
}

// Stop requests the loop to exit and waits for it.
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	s.wg.Wait()
}

// TriggerManualRun requests an immediate pass from the running loop. It is
// non-blocking and reports false if a manual run is already pending.
func (s *Sweeper) TriggerManualRun() bool {
	select {
	case s.manualTrigger <- struct{}{}:
		return true
	default:
		s.reg.log.Debug("sweeper manual trigger skipped (already pending)")
		return false
	}
}

func (s *Sweeper) run(ctx context.Context, trigger string) {
	started := s.reg.clock.Now()
	reclaimed, deactivated, err := s.RunOnce(ctx)
	finished := s.reg.clock.Now()

	run := SweepRun{
		Trigger:     trigger,
		StartedAt:   started,
		FinishedAt:  finished,
		DurationMs:  finished.Sub(started).Milliseconds(),
		Reclaimed:   reclaimed,
		Deactivated: deactivated,
	}
	if err != nil {
		run.Error = err.Error()
		s.reg.log.Error("sweeper run failed", "trigger", trigger, "error", err)
	}

	s.mu.Lock()
	s.lastRun = &run
	s.lastRunAt = finished
	s.lastRunError = err
	s.runCount++
	s.totalReclaimed += int64(reclaimed)
	s.totalDeactivated += int64(deactivated)
	s.mu.Unlock()

	if s.OnRun != nil {
		s.OnRun(run)
	}
}

// Status returns the current state of the sweeper.
func (s *Sweeper) Status() SweeperStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := SweeperStatus{
		Interval:         s.interval.String(),
		LastRunAt:        s.lastRunAt,
		RunCount:         s.runCount,
		TotalReclaimed:   s.totalReclaimed,
		TotalDeactivated: s.totalDeactivated,
		IsHealthy:        true,
	}
	if s.lastRunError != nil {
		st.LastRunError = s.lastRunError.Error()
		st.IsHealthy = false
	}
	if s.lastRun != nil {
		runCopy := *s.lastRun
		st.LastRun = &runCopy
	}
	// Unhealthy if it has not run in twice the interval.
	if !s.lastRunAt.IsZero() && s.reg.clock.Since(s.lastRunAt) > 2*s.interval {
		st.IsHealthy = false
	}
	return st
}
