package tracking

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/vehicle.tracker/internal/monitoring"
	"github.com/banshee-data/vehicle.tracker/internal/timeutil"
)

// DefaultOutboundBuffer is the number of acknowledgements a stream can queue
// before enqueueing blocks.
const DefaultOutboundBuffer = 32

// releaseTimeout bounds the store calls made while tearing a stream down.
const releaseTimeout = 5 * time.Second

// Options configures a Registry. Zero values select the package defaults.
type Options struct {
	InstanceID     string
	HistorySize    int
	StaleAfter     time.Duration
	ConflictGrace  time.Duration
	OutboundBuffer int
	Clock          timeutil.Clock
	Logger         *slog.Logger
	Metrics        *monitoring.Metrics
}

// Registry is the per-instance half of the session registry. It owns the map
// from identity to live stream for this instance and shares the durable
// Store with every other instance.
type Registry struct {
	store          Store
	instanceID     string
	historySize    int
	staleAfter     time.Duration
	conflictGrace  time.Duration
	outboundBuffer int
	clock          timeutil.Clock
	log            *slog.Logger
	metrics        *monitoring.Metrics

	mu      sync.RWMutex
	streams map[VehicleID]*Stream
}

// NewRegistry returns a Registry backed by store.
func NewRegistry(store Store, opts Options) *Registry {
	r := &Registry{
		store:          store,
		instanceID:     opts.InstanceID,
		historySize:    opts.HistorySize,
		staleAfter:     opts.StaleAfter,
		conflictGrace:  opts.ConflictGrace,
		outboundBuffer: opts.OutboundBuffer,
		clock:          opts.Clock,
		log:            opts.Logger,
		metrics:        opts.Metrics,
		streams:        make(map[VehicleID]*Stream),
	}
	if r.instanceID == "" {
		r.instanceID = uuid.NewString()
	}
	if r.historySize <= 0 {
		r.historySize = DefaultHistorySize
	}
	if r.staleAfter <= 0 {
		r.staleAfter = DefaultStaleAfter
	}
	if r.conflictGrace <= 0 {
		r.conflictGrace = DefaultConflictGrace
	}
	if r.outboundBuffer <= 0 {
		r.outboundBuffer = DefaultOutboundBuffer
	}
	if r.clock == nil {
		r.clock = timeutil.RealClock{}
	}
	if r.log == nil {
		r.log = slog.Default()
	}
	r.log = r.log.With("instance_id", r.instanceID)
	return r
}

func (r *Registry) InstanceID() string       { return r.instanceID }
func (r *Registry) Store() Store             { return r.store }
func (r *Registry) StaleAfter() time.Duration { return r.staleAfter }

// NewStream returns an Unbound stream attached to this registry. The caller
// feeds it reports with Handle, drains Outbound, and must call Close.
func (r *Registry) NewStream() *Stream {
	return &Stream{
		reg:      r,
		outbound: make(chan Ack, r.outboundBuffer),
		done:     make(chan struct{}),
	}
}

// register makes s the local stream for its identity. A previous local
// stream for the same identity, whose session has already been reclaimed,
// is returned so the caller can log it.
func (r *Registry) register(s *Stream) *Stream {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev := r.streams[s.id]
	r.streams[s.id] = s
	r.metrics.SetActiveStreams(len(r.streams))
	return prev
}

// unregister drops s from the local map only if it is still the stream
// registered for its identity.
func (r *Registry) unregister(s *Stream) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.streams[s.id]; ok && cur == s {
		delete(r.streams, s.id)
	}
	r.metrics.SetActiveStreams(len(r.streams))
}

func (r *Registry) lookup(id VehicleID) *Stream {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.streams[id]
}

// ActiveStreams returns the number of live streams on this instance.
func (r *Registry) ActiveStreams() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.streams)
}

// LocalVehicles returns the identities with a live stream on this instance,
// sorted.
func (r *Registry) LocalVehicles() []VehicleID {
	r.mu.RLock()
	ids := make([]VehicleID, 0, len(r.streams))
	for id := range r.streams {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	slices.Sort(ids)
	return ids
}

// History returns the in-memory history of a vehicle streaming to this
// instance, oldest first.
func (r *Registry) History(id VehicleID) ([]PositionSample, bool) {
	s := r.lookup(id)
	if s == nil {
		return nil, false
	}
	return s.History(), true
}

// Stats returns the speed stats of a vehicle streaming to this instance.
func (r *Registry) Stats(id VehicleID) (SpeedStats, bool) {
	s := r.lookup(id)
	if s == nil {
		return SpeedStats{}, false
	}
	return s.Stats(), true
}

// VehicleStatus answers the status query for one identity. A vehicle counts
// as connected when it streams to this instance or holds a fresh session on
// any instance.
func (r *Registry) VehicleStatus(ctx context.Context, id VehicleID) (*VehicleStatus, error) {
	rec, err := r.store.Vehicle(ctx, id)
	if err != nil {
		return nil, err
	}
	sess, err := r.store.Session(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load session for %s: %w", id, err)
	}
	st := r.statusFor(rec, sess, r.clock.Now())
	if err := r.attachSpeedSummary(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// ActiveVehicles answers the status query for every vehicle marked active.
func (r *Registry) ActiveVehicles(ctx context.Context) ([]*VehicleStatus, error) {
	recs, err := r.store.ActiveVehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active vehicles: %w", err)
	}
	sessions, err := r.store.Sessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	byID := make(map[VehicleID]*SessionRecord, len(sessions))
	for _, s := range sessions {
		byID[s.VehicleID] = s
	}

	now := r.clock.Now()
	out := make([]*VehicleStatus, 0, len(recs))
	for _, rec := range recs {
		out = append(out, r.statusFor(rec, byID[rec.ID], now))
	}
	slices.SortFunc(out, func(a, b *VehicleStatus) int { return cmp.Compare(a.VehicleID, b.VehicleID) })
	return out, nil
}

func (r *Registry) statusFor(rec *VehicleRecord, sess *SessionRecord, now time.Time) *VehicleStatus {
	connected := r.lookup(rec.ID) != nil || sess.Fresh(now, r.staleAfter)
	st := &VehicleStatus{
		VehicleID:        rec.ID,
		IsConnected:      connected,
		LastPosition:     rec.CurrentPosition,
		TotalPoints:      rec.TotalPointsReceived,
		SpeedChangeCount: rec.SpeedChangeCount,
		Status:           StatusOffline,
	}
	if connected {
		st.Status = StatusOnline
	}
	return st
}

func (r *Registry) attachSpeedSummary(ctx context.Context, st *VehicleStatus) error {
	samples, err := r.store.RecentPositions(ctx, st.VehicleID, r.historySize)
	if err != nil {
		return fmt.Errorf("load positions for %s: %w", st.VehicleID, err)
	}
	st.Speed = SummarizeSpeeds(samples)
	return nil
}

// SummarizeSpeeds returns the mean, sample standard deviation and maximum of
// the sample speeds, or nil for no samples.
func SummarizeSpeeds(samples []PositionSample) *SpeedSummary {
	if len(samples) == 0 {
		return nil
	}
	speeds := make([]float64, len(samples))
	for i, s := range samples {
		speeds[i] = s.SpeedKmh
	}
	sum := &SpeedSummary{Samples: len(speeds), Max: floats.Max(speeds)}
	if len(speeds) < 2 {
		sum.Mean = speeds[0]
		return sum
	}
	sum.Mean, sum.StdDev = stat.MeanStdDev(speeds, nil)
	return sum
}

// SendCommand pushes cmd to the vehicle on its live local stream.
func (r *Registry) SendCommand(ctx context.Context, id VehicleID, cmd Command) error {
	if cmd == CommandNone {
		return ErrEmptyCommand
	}
	s := r.lookup(id)
	if s == nil {
		return fmt.Errorf("%s: %w", id, ErrStreamNotFound)
	}
	ack := Ack{
		VehicleID:       id,
		ServerTimestamp: r.clock.Now().UnixMilli(),
		Command:         cmd,
		Status:          StatusCommandSent,
	}
	if last, ok := s.lastSample(); ok {
		ack.Lat, ack.Lon, ack.SpeedKmh = last.Lat, last.Lon, last.SpeedKmh
	}
	if err := s.enqueue(ctx, ack); err != nil {
		if errors.Is(err, ErrStreamClosed) {
			return fmt.Errorf("%s: %w", id, ErrStreamNotFound)
		}
		return err
	}
	r.metrics.IncCommands(string(cmd))
	r.log.Info("manual command sent", "vehicle_id", id, "command", cmd)
	return nil
}

// LogFleetSummary logs the number of vehicles online and, for each vehicle
// streaming to this instance, its latest speed and change count.
func (r *Registry) LogFleetSummary(ctx context.Context) {
	local := r.LocalVehicles()
	if len(local) == 0 {
		return
	}
	active, err := r.store.ActiveVehicles(ctx)
	if err != nil {
		r.log.Warn("fleet summary: list active vehicles failed", "error", err)
	}
	r.log.Info("fleet status", "online_local", len(local), "active_total", len(active))
	for _, id := range local {
		s := r.lookup(id)
		if s == nil {
			continue
		}
		last, ok := s.lastSample()
		if !ok {
			continue
		}
		r.log.Info("fleet status vehicle",
			"vehicle_id", id,
			"speed_kmh", last.SpeedKmh,
			"speed_changes", s.Stats().SpeedChangeCount)
	}
}
