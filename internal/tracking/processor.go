package tracking

import (
	"context"
)

// process runs one report from an admitted stream: heartbeat, speed stats,
// history, persistence, command derivation and the acknowledgement. Store
// failures on the heartbeat and persist steps are logged and do not stop the
// stream; the in-memory view has already advanced.
func (s *Stream) process(ctx context.Context, rep Report) error {
	r := s.reg
	now := r.clock.Now()
	ts := ResolveTimestamp(rep.ClientTimestamp, now)

	s.mu.Lock()
	id, sessionID := s.id, s.sessionID
	s.mu.Unlock()

	owned, err := r.store.TouchSession(ctx, id, sessionID, now)
	if err != nil {
		r.log.Warn("heartbeat failed", "vehicle_id", id, "error", err)
	} else if !owned {
		owned, err = s.reclaim(ctx, id, sessionID, now)
		if err != nil {
			r.log.Warn("session reclaim failed", "vehicle_id", id, "error", err)
		} else if !owned {
			r.log.Warn("session lost to another stream", "vehicle_id", id, "session_id", sessionID)
			s.conflict(ctx, id)
			return ErrDuplicateIdentity
		}
	}

	sample := PositionSample{
		Lat:             rep.Lat,
		Lon:             rep.Lon,
		SpeedKmh:        rep.SpeedKmh,
		SourceTimestamp: ts,
		ReceivedAt:      now.UnixMilli(),
	}

	s.mu.Lock()
	if s.history.Len() == 0 {
		s.lastCommandAt = ts
	}
	prevSpeed := s.stats.LastSpeed
	significant := s.stats.Observe(rep.SpeedKmh, ts)
	s.history.Append(sample)
	cmd := DeriveCommand(rep.SpeedKmh, ts, s.lastCommandAt, significant)
	if cmd != CommandNone {
		s.lastCommandAt = ts
	}
	s.mu.Unlock()

	r.metrics.IncReports()
	if err := r.store.RecordPosition(ctx, id, sample, significant); err != nil {
		r.metrics.IncPersistFailures()
		r.log.Warn("persist vehicle position failed", "vehicle_id", id, "error", err)
	}
	if err := r.store.AppendPosition(ctx, id, sample); err != nil {
		r.metrics.IncPersistFailures()
		r.log.Warn("append position log failed", "vehicle_id", id, "error", err)
	}

	r.log.Debug("position report",
		"vehicle_id", id,
		"lat", rep.Lat,
		"lon", rep.Lon,
		"speed_kmh", rep.SpeedKmh,
		"timestamp", ts)
	if significant {
		r.log.Info("significant speed change", "vehicle_id", id, "from_kmh", prevSpeed, "to_kmh", rep.SpeedKmh)
	}
	if cmd != CommandNone {
		r.metrics.IncCommands(string(cmd))
		r.log.Info("command issued", "vehicle_id", id, "command", cmd, "speed_kmh", rep.SpeedKmh)
	}

	return s.enqueue(ctx, Ack{
		VehicleID:       id,
		Lat:             rep.Lat,
		Lon:             rep.Lon,
		SpeedKmh:        rep.SpeedKmh,
		ServerTimestamp: now.UnixMilli(),
		Command:         cmd,
		Status:          StatusTrackingActive,
	})
}
