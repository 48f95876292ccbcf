package tracking

import (
	"context"
	"sync"
	"time"
)

// StreamState is the lifecycle position of one vehicle stream.
type StreamState int

const (
	StateUnbound StreamState = iota
	StateAdmitted
	StateClosed
)

func (s StreamState) String() string {
	switch s {
	case StateUnbound:
		return "unbound"
	case StateAdmitted:
		return "admitted"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// Stream is the registry side of one long-lived vehicle stream. Reports are
// fed to Handle from a single goroutine in arrival order; acknowledgements
// and commands are read from Outbound by the transport's writer.
type Stream struct {
	reg       *Registry
	outbound  chan Ack
	done      chan struct{}
	closeOnce sync.Once

	mu            sync.Mutex
	state         StreamState
	id            VehicleID
	sessionID     string
	connectedAt   time.Time
	history       *PositionHistory
	stats         SpeedStats
	lastCommandAt int64
}

// Outbound delivers the messages queued for the vehicle, in order.
func (s *Stream) Outbound() <-chan Ack { return s.outbound }

// Done is closed once the stream has been closed.
func (s *Stream) Done() <-chan struct{} { return s.done }

func (s *Stream) State() StreamState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// VehicleID returns the bound identity, or "" before admission.
func (s *Stream) VehicleID() VehicleID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

func (s *Stream) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// History returns a copy of the in-memory history, oldest first.
func (s *Stream) History() []PositionSample {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.history == nil {
		return nil
	}
	return s.history.Samples()
}

func (s *Stream) Stats() SpeedStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *Stream) lastSample() (PositionSample, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.history == nil {
		return PositionSample{}, false
	}
	return s.history.Last()
}

// Handle runs one inbound report through the stream. The first report with a
// non-empty identity runs admission; later reports must carry the bound
// identity and are otherwise dropped. It returns ErrDuplicateIdentity when
// the stream is refused or loses its session, after queueing the conflict
// notice; the caller should then close the stream.
func (s *Stream) Handle(ctx context.Context, rep Report) error {
	s.mu.Lock()
	state, bound := s.state, s.id
	s.mu.Unlock()

	switch state {
	case StateClosed:
		return ErrStreamClosed
	case StateUnbound:
		if rep.VehicleID == "" {
			return nil
		}
		if err := s.admit(ctx, rep.VehicleID); err != nil {
			return err
		}
	case StateAdmitted:
		if rep.VehicleID != bound {
			s.reg.log.Warn("dropping report with mismatched identity",
				"vehicle_id", bound, "reported_id", rep.VehicleID)
			return nil
		}
	}
	return s.process(ctx, rep)
}

// enqueue queues ack for the writer, blocking while the buffer is full.
func (s *Stream) enqueue(ctx context.Context, ack Ack) error {
	select {
	case <-s.done:
		return ErrStreamClosed
	default:
	}

	select {
	case <-s.done:
		return ErrStreamClosed
	case <-ctx.Done():
		return ctx.Err()
	case s.outbound <- ack:
		return nil
	}
}

// conflict queues the duplicate identity notice and marks the stream closed
// for further reports. The outbound queue stays open until Close so the
// notice can still be written.
func (s *Stream) conflict(ctx context.Context, id VehicleID) {
	s.mu.Lock()
	s.state = StateClosed
	s.mu.Unlock()

	err := s.enqueue(ctx, Ack{
		VehicleID:       id,
		ServerTimestamp: s.reg.clock.Now().UnixMilli(),
		Command:         CommandDuplicateIdentity,
		Status:          StatusDuplicateID,
	})
	if err != nil {
		s.reg.log.Debug("conflict notice not queued", "vehicle_id", id, "error", err)
	}
}

// Close tears the stream down. If it was admitted, its local registration is
// dropped, its session row is released if it still owns it and the vehicle
// is marked inactive when no other session holds it. Close is idempotent and
// does not depend on the stream's own context, which is usually already
// cancelled.
func (s *Stream) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.state = StateClosed
		id, sessionID := s.id, s.sessionID
		s.mu.Unlock()
		close(s.done)

		if sessionID == "" {
			return
		}
		r := s.reg
		r.unregister(s)

		ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
		defer cancel()
		if err := r.store.ReleaseSession(ctx, id, sessionID); err != nil {
			r.log.Warn("release session failed", "vehicle_id", id, "error", err)
		}
		if err := r.store.MarkInactive(ctx, id, r.clock.Now()); err != nil {
			r.log.Warn("mark vehicle inactive failed", "vehicle_id", id, "error", err)
		}
		r.log.Info("vehicle disconnected", "vehicle_id", id, "session_id", sessionID)
	})
}
