package tracking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// admit claims id for this stream. The vehicle record is upserted before the
// session row so that a session never references a missing vehicle. The
// claim itself is a single conditional write: it succeeds only when no
// session exists for id or the existing one is stale.
func (s *Stream) admit(ctx context.Context, id VehicleID) error {
	r := s.reg
	now := r.clock.Now()

	if err := r.store.UpsertActive(ctx, id, now); err != nil {
		return fmt.Errorf("upsert vehicle %s: %w", id, err)
	}

	rec := SessionRecord{
		VehicleID:       id,
		SessionID:       uuid.NewString(),
		OwnerInstanceID: r.instanceID,
		ConnectedAt:     now,
		LastHeartbeat:   now,
	}
	claimed, err := r.store.ClaimSession(ctx, rec, now.Add(-r.staleAfter))
	if err != nil {
		return fmt.Errorf("claim session %s: %w", id, err)
	}
	if !claimed {
		r.metrics.IncRejections()
		r.log.Warn("duplicate identity rejected", "vehicle_id", id)
		s.conflict(ctx, id)
		return ErrDuplicateIdentity
	}

	s.mu.Lock()
	s.state = StateAdmitted
	s.id = id
	s.sessionID = rec.SessionID
	s.connectedAt = now
	s.history = NewPositionHistory(r.historySize)
	s.stats = SpeedStats{}
	s.mu.Unlock()

	if prev := r.register(s); prev != nil && prev != s {
		r.log.Warn("replaced local stream with reclaimed session", "vehicle_id", id, "previous_session_id", prev.SessionID())
	}
	r.metrics.IncAdmissions()
	r.log.Info("vehicle admitted", "vehicle_id", id, "session_id", rec.SessionID)
	return nil
}

// reclaim re-claims the session row after a heartbeat found it gone, which
// happens when the sweeper reaped a stream that went quiet for longer than
// the staleness window. It reports false when another stream holds a fresh
// session for the identity.
func (s *Stream) reclaim(ctx context.Context, id VehicleID, sessionID string, now time.Time) (bool, error) {
	r := s.reg
	if err := r.store.UpsertActive(ctx, id, now); err != nil {
		return false, fmt.Errorf("upsert vehicle %s: %w", id, err)
	}
	rec := SessionRecord{
		VehicleID:       id,
		SessionID:       sessionID,
		OwnerInstanceID: r.instanceID,
		ConnectedAt:     now,
		LastHeartbeat:   now,
	}
	claimed, err := r.store.ClaimSession(ctx, rec, now.Add(-r.staleAfter))
	if err != nil {
		return false, fmt.Errorf("reclaim session %s: %w", id, err)
	}
	if claimed {
		s.mu.Lock()
		s.connectedAt = now
		s.mu.Unlock()
		// A stream admitted in the meantime may have replaced and then
		// dropped this one from the local map.
		if prev := r.register(s); prev != nil && prev != s {
			r.log.Warn("replaced local stream with reclaimed session", "vehicle_id", id, "previous_session_id", prev.SessionID())
		}
		r.log.Info("vehicle session reclaimed", "vehicle_id", id, "session_id", sessionID)
	}
	return claimed, nil
}
