package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/banshee-data/vehicle.tracker/internal/tracking"
)

// TrackingStore is the SQLite implementation of tracking.Store. Every
// instance pointing at the same database file shares one vehicle directory,
// session table and position log. Each mutating method is a single
// statement keyed by vehicle id.
type TrackingStore struct {
	db *DB
}

// NewTrackingStore returns a store over db. The schema must already be
// migrated.
func NewTrackingStore(db *DB) *TrackingStore {
	return &TrackingStore{db: db}
}

var _ tracking.Store = (*TrackingStore)(nil)

func ms(t time.Time) int64 { return t.UnixMilli() }

func fromMS(v int64) time.Time { return time.UnixMilli(v).UTC() }

func (s *TrackingStore) UpsertActive(ctx context.Context, id tracking.VehicleID, now time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vehicles (vehicle_id, first_seen_ms, last_seen_ms, is_active)
		VALUES (?, ?, ?, 1)
		ON CONFLICT(vehicle_id) DO UPDATE SET
			is_active = 1,
			last_seen_ms = excluded.last_seen_ms
	`, string(id), ms(now), ms(now))
	if err != nil {
		return fmt.Errorf("failed to upsert vehicle: %w", err)
	}
	return nil
}

func (s *TrackingStore) RecordPosition(ctx context.Context, id tracking.VehicleID, p tracking.PositionSample, speedChanged bool) error {
	changed := 0
	if speedChanged {
		changed = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vehicles (
			vehicle_id, first_seen_ms, last_seen_ms, is_active, total_points, speed_changes,
			lat, lon, speed_kmh, source_ts_ms, received_at_ms
		) VALUES (?, ?, ?, 1, 1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(vehicle_id) DO UPDATE SET
			last_seen_ms = excluded.last_seen_ms,
			total_points = total_points + 1,
			speed_changes = speed_changes + excluded.speed_changes,
			lat = excluded.lat,
			lon = excluded.lon,
			speed_kmh = excluded.speed_kmh,
			source_ts_ms = excluded.source_ts_ms,
			received_at_ms = excluded.received_at_ms
	`, string(id), p.ReceivedAt, p.ReceivedAt, changed,
		p.Lat, p.Lon, p.SpeedKmh, p.SourceTimestamp, p.ReceivedAt)
	if err != nil {
		return fmt.Errorf("failed to record position: %w", err)
	}
	return nil
}

const vehicleColumns = `vehicle_id, first_seen_ms, last_seen_ms, is_active, total_points,
	speed_changes, lat, lon, speed_kmh, source_ts_ms, received_at_ms`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVehicle(row rowScanner) (*tracking.VehicleRecord, error) {
	var (
		v                      tracking.VehicleRecord
		id                     string
		firstSeen, lastSeen    int64
		active                 bool
		lat, lon, speed        sql.NullFloat64
		sourceTS, receivedAtMS sql.NullInt64
	)
	if err := row.Scan(&id, &firstSeen, &lastSeen, &active, &v.TotalPointsReceived,
		&v.SpeedChangeCount, &lat, &lon, &speed, &sourceTS, &receivedAtMS); err != nil {
		return nil, err
	}
	v.ID = tracking.VehicleID(id)
	v.FirstSeenAt = fromMS(firstSeen)
	v.LastSeenAt = fromMS(lastSeen)
	v.IsActive = active
	if receivedAtMS.Valid {
		v.CurrentPosition = &tracking.PositionSample{
			Lat:             lat.Float64,
			Lon:             lon.Float64,
			SpeedKmh:        speed.Float64,
			SourceTimestamp: sourceTS.Int64,
			ReceivedAt:      receivedAtMS.Int64,
		}
	}
	return &v, nil
}

func (s *TrackingStore) Vehicle(ctx context.Context, id tracking.VehicleID) (*tracking.VehicleRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE vehicle_id = ?`, string(id))
	v, err := scanVehicle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, tracking.ErrVehicleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load vehicle: %w", err)
	}
	return v, nil
}

func (s *TrackingStore) ActiveVehicles(ctx context.Context) ([]*tracking.VehicleRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE is_active = 1 ORDER BY vehicle_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query active vehicles: %w", err)
	}
	defer rows.Close()

	var out []*tracking.VehicleRecord
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *TrackingStore) MarkInactive(ctx context.Context, id tracking.VehicleID, now time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE vehicles SET is_active = 0, last_seen_ms = ?
		WHERE vehicle_id = ?
		  AND is_active = 1
		  AND NOT EXISTS (SELECT 1 FROM sessions WHERE sessions.vehicle_id = vehicles.vehicle_id)
	`, ms(now), string(id))
	if err != nil {
		return fmt.Errorf("failed to mark vehicle inactive: %w", err)
	}
	return nil
}

func (s *TrackingStore) DeactivateOrphans(ctx context.Context, now time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE vehicles SET is_active = 0, last_seen_ms = ?
		WHERE is_active = 1
		  AND NOT EXISTS (SELECT 1 FROM sessions WHERE sessions.vehicle_id = vehicles.vehicle_id)
	`, ms(now))
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate orphaned vehicles: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// ClaimSession inserts the session row, or overwrites an existing one only
// when its heartbeat is older than staleBefore. A fresh row makes the upsert
// a no-op, which shows up as zero affected rows.
func (s *TrackingStore) ClaimSession(ctx context.Context, rec tracking.SessionRecord, staleBefore time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (vehicle_id, session_id, owner_instance_id, connected_at_ms, last_heartbeat_ms)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(vehicle_id) DO UPDATE SET
			session_id = excluded.session_id,
			owner_instance_id = excluded.owner_instance_id,
			connected_at_ms = excluded.connected_at_ms,
			last_heartbeat_ms = excluded.last_heartbeat_ms
		WHERE sessions.last_heartbeat_ms < ?
	`, string(rec.VehicleID), rec.SessionID, rec.OwnerInstanceID,
		ms(rec.ConnectedAt), ms(rec.LastHeartbeat), ms(staleBefore))
	if err != nil {
		return false, fmt.Errorf("failed to claim session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to claim session: %w", err)
	}
	return n == 1, nil
}

func (s *TrackingStore) TouchSession(ctx context.Context, id tracking.VehicleID, sessionID string, now time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE sessions SET last_heartbeat_ms = ?
		WHERE vehicle_id = ? AND session_id = ?
	`, ms(now), string(id), sessionID)
	if err != nil {
		return false, fmt.Errorf("failed to touch session: %w", err)
	}
	n, _ := res.RowsAffected()
	return n == 1, nil
}

func (s *TrackingStore) ReleaseSession(ctx context.Context, id tracking.VehicleID, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE vehicle_id = ? AND session_id = ?`, string(id), sessionID)
	if err != nil {
		return fmt.Errorf("failed to release session: %w", err)
	}
	return nil
}

const sessionColumns = `vehicle_id, session_id, owner_instance_id, connected_at_ms, last_heartbeat_ms`

func scanSession(row rowScanner) (*tracking.SessionRecord, error) {
	var (
		rec                      tracking.SessionRecord
		id                       string
		connectedAt, heartbeatMS int64
	)
	if err := row.Scan(&id, &rec.SessionID, &rec.OwnerInstanceID, &connectedAt, &heartbeatMS); err != nil {
		return nil, err
	}
	rec.VehicleID = tracking.VehicleID(id)
	rec.ConnectedAt = fromMS(connectedAt)
	rec.LastHeartbeat = fromMS(heartbeatMS)
	return &rec, nil
}

func (s *TrackingStore) Session(ctx context.Context, id tracking.VehicleID) (*tracking.SessionRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE vehicle_id = ?`, string(id))
	rec, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return rec, nil
}

func (s *TrackingStore) Sessions(ctx context.Context) ([]*tracking.SessionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+sessionColumns+` FROM sessions ORDER BY vehicle_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var out []*tracking.SessionRecord
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *TrackingStore) DeleteStaleSessions(ctx context.Context, staleBefore time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE last_heartbeat_ms < ?`, ms(staleBefore))
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale sessions: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// ReleaseInstanceSessions deletes every session row owned by instanceID.
// A restarted instance that keeps its id calls it at startup, since none of
// its previous streams can still be alive.
func (s *TrackingStore) ReleaseInstanceSessions(ctx context.Context, instanceID string) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE owner_instance_id = ?`, instanceID)
	if err != nil {
		return 0, fmt.Errorf("failed to release instance sessions: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func (s *TrackingStore) AppendPosition(ctx context.Context, id tracking.VehicleID, p tracking.PositionSample) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO positions (vehicle_id, lat, lon, speed_kmh, source_ts_ms, received_at_ms)
		VALUES (?, ?, ?, ?, ?, ?)
	`, string(id), p.Lat, p.Lon, p.SpeedKmh, p.SourceTimestamp, p.ReceivedAt)
	if err != nil {
		return fmt.Errorf("failed to append position: %w", err)
	}
	return nil
}

func (s *TrackingStore) RecentPositions(ctx context.Context, id tracking.VehicleID, limit int) ([]tracking.PositionSample, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT lat, lon, speed_kmh, source_ts_ms, received_at_ms FROM (
			SELECT position_id, lat, lon, speed_kmh, source_ts_ms, received_at_ms
			FROM positions
			WHERE vehicle_id = ?
			ORDER BY position_id DESC
			LIMIT ?
		) ORDER BY position_id ASC
	`, string(id), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	var out []tracking.PositionSample
	for rows.Next() {
		var p tracking.PositionSample
		if err := rows.Scan(&p.Lat, &p.Lon, &p.SpeedKmh, &p.SourceTimestamp, &p.ReceivedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// PrunePositions deletes position log entries received before cutoff and
// returns how many it removed.
func (s *TrackingStore) PrunePositions(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM positions WHERE received_at_ms < ?`, ms(cutoff))
	if err != nil {
		return 0, fmt.Errorf("failed to prune positions: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}
