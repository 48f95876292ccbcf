package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/banshee-data/vehicle.tracker/internal/tracking"
)

var base = time.UnixMilli(1_700_000_000_000).UTC()

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "tracker.db"))
	if err != nil {
		t.Fatalf("NewDB failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func session(id tracking.VehicleID, sessionID, owner string, at time.Time) tracking.SessionRecord {
	return tracking.SessionRecord{
		VehicleID:       id,
		SessionID:       sessionID,
		OwnerInstanceID: owner,
		ConnectedAt:     at,
		LastHeartbeat:   at,
	}
}

func TestNewDB_MigratesToLatest(t *testing.T) {
	db := newTestDB(t)

	version, dirty, err := db.MigrateVersion()
	if err != nil {
		t.Fatalf("MigrateVersion failed: %v", err)
	}
	latest, err := LatestMigrationVersion()
	if err != nil {
		t.Fatalf("LatestMigrationVersion failed: %v", err)
	}
	if version != latest || dirty {
		t.Fatalf("expected version %d clean, got %d dirty=%v", latest, version, dirty)
	}

	// Reopening an up-to-date database is a no-op.
	again, err := NewDB(db.Path())
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	again.Close()
}

func TestMigrateDownAndUp(t *testing.T) {
	db := newTestDB(t)

	if err := db.MigrateDown(); err != nil {
		t.Fatalf("MigrateDown failed: %v", err)
	}
	version, _, _ := db.MigrateVersion()
	if version != 1 {
		t.Fatalf("expected version 1 after down, got %d", version)
	}
	if err := db.MigrateTo(2); err != nil {
		t.Fatalf("MigrateTo failed: %v", err)
	}
	version, _, _ = db.MigrateVersion()
	if version != 2 {
		t.Fatalf("expected version 2, got %d", version)
	}
}

func TestTrackingStore_ClaimSession(t *testing.T) {
	ctx := context.Background()
	s := NewTrackingStore(newTestDB(t))

	ok, err := s.ClaimSession(ctx, session("v1", "s1", "a", base), base.Add(-2*time.Minute))
	if err != nil || !ok {
		t.Fatalf("first claim: ok=%v err=%v", ok, err)
	}

	// Exactly at the window edge the holder is still fresh.
	later := base.Add(2 * time.Minute)
	ok, err = s.ClaimSession(ctx, session("v1", "s2", "b", later), later.Add(-2*time.Minute))
	if err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if ok {
		t.Fatal("claim over a fresh session should fail")
	}
	got, _ := s.Session(ctx, "v1")
	if got == nil || got.SessionID != "s1" || got.OwnerInstanceID != "a" {
		t.Fatalf("session was overwritten: %+v", got)
	}

	later = later.Add(time.Millisecond)
	ok, err = s.ClaimSession(ctx, session("v1", "s2", "b", later), later.Add(-2*time.Minute))
	if err != nil || !ok {
		t.Fatalf("claim over stale session: ok=%v err=%v", ok, err)
	}
	got, _ = s.Session(ctx, "v1")
	if got.SessionID != "s2" || got.OwnerInstanceID != "b" || !got.LastHeartbeat.Equal(later) {
		t.Fatalf("unexpected session after reclaim: %+v", got)
	}
}

func TestTrackingStore_TouchAndRelease(t *testing.T) {
	ctx := context.Background()
	s := NewTrackingStore(newTestDB(t))

	if _, err := s.ClaimSession(ctx, session("v1", "s1", "a", base), base); err != nil {
		t.Fatal(err)
	}

	ok, err := s.TouchSession(ctx, "v1", "other", base.Add(time.Second))
	if err != nil || ok {
		t.Fatalf("touch with wrong session: ok=%v err=%v", ok, err)
	}
	ok, err = s.TouchSession(ctx, "v1", "s1", base.Add(time.Second))
	if err != nil || !ok {
		t.Fatalf("touch: ok=%v err=%v", ok, err)
	}
	got, _ := s.Session(ctx, "v1")
	if !got.LastHeartbeat.Equal(base.Add(time.Second)) {
		t.Fatalf("heartbeat not refreshed: %v", got.LastHeartbeat)
	}

	if err := s.ReleaseSession(ctx, "v1", "other"); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.Session(ctx, "v1"); got == nil {
		t.Fatal("release with wrong session removed the row")
	}
	if err := s.ReleaseSession(ctx, "v1", "s1"); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.Session(ctx, "v1"); got != nil {
		t.Fatalf("expected no session, got %+v", got)
	}
}

func TestTrackingStore_Directory(t *testing.T) {
	ctx := context.Background()
	s := NewTrackingStore(newTestDB(t))

	if _, err := s.Vehicle(ctx, "v1"); !errors.Is(err, tracking.ErrVehicleNotFound) {
		t.Fatalf("expected ErrVehicleNotFound, got %v", err)
	}

	if err := s.UpsertActive(ctx, "v1", base); err != nil {
		t.Fatal(err)
	}
	v, err := s.Vehicle(ctx, "v1")
	if err != nil {
		t.Fatal(err)
	}
	if !v.IsActive || v.CurrentPosition != nil || !v.FirstSeenAt.Equal(base) {
		t.Fatalf("unexpected vehicle: %+v", v)
	}

	p := tracking.PositionSample{Lat: -8.05, Lon: -34.88, SpeedKmh: 55, SourceTimestamp: 42, ReceivedAt: base.Add(time.Second).UnixMilli()}
	if err := s.RecordPosition(ctx, "v1", p, false); err != nil {
		t.Fatal(err)
	}
	p.SpeedKmh = 70
	p.ReceivedAt = base.Add(2 * time.Second).UnixMilli()
	if err := s.RecordPosition(ctx, "v1", p, true); err != nil {
		t.Fatal(err)
	}

	v, _ = s.Vehicle(ctx, "v1")
	if v.TotalPointsReceived != 2 || v.SpeedChangeCount != 1 {
		t.Fatalf("counters: points=%d changes=%d", v.TotalPointsReceived, v.SpeedChangeCount)
	}
	if v.CurrentPosition == nil || *v.CurrentPosition != p {
		t.Fatalf("current position: %+v", v.CurrentPosition)
	}
	if !v.FirstSeenAt.Equal(base) || !v.LastSeenAt.Equal(base.Add(2*time.Second)) {
		t.Fatalf("timestamps: first=%v last=%v", v.FirstSeenAt, v.LastSeenAt)
	}

	// A re-admission keeps the counters.
	if err := s.UpsertActive(ctx, "v1", base.Add(time.Minute)); err != nil {
		t.Fatal(err)
	}
	v, _ = s.Vehicle(ctx, "v1")
	if v.TotalPointsReceived != 2 || !v.FirstSeenAt.Equal(base) {
		t.Fatalf("upsert reset the record: %+v", v)
	}
}

func TestTrackingStore_MarkInactiveKeepsOwnedVehicles(t *testing.T) {
	ctx := context.Background()
	s := NewTrackingStore(newTestDB(t))

	_ = s.UpsertActive(ctx, "v1", base)
	_, _ = s.ClaimSession(ctx, session("v1", "s1", "a", base), base)

	if err := s.MarkInactive(ctx, "v1", base); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.Vehicle(ctx, "v1"); !v.IsActive {
		t.Fatal("vehicle with a session was marked inactive")
	}

	_ = s.ReleaseSession(ctx, "v1", "s1")
	if err := s.MarkInactive(ctx, "v1", base.Add(time.Second)); err != nil {
		t.Fatal(err)
	}
	v, _ := s.Vehicle(ctx, "v1")
	if v.IsActive || !v.LastSeenAt.Equal(base.Add(time.Second)) {
		t.Fatalf("expected inactive at release time, got %+v", v)
	}

	active, err := s.ActiveVehicles(ctx)
	if err != nil || len(active) != 0 {
		t.Fatalf("active vehicles: %v %v", active, err)
	}
}

func TestTrackingStore_SweepOperations(t *testing.T) {
	ctx := context.Background()
	s := NewTrackingStore(newTestDB(t))

	for _, id := range []tracking.VehicleID{"old", "new", "orphan"} {
		_ = s.UpsertActive(ctx, id, base)
	}
	_, _ = s.ClaimSession(ctx, session("old", "s1", "a", base), base)
	_, _ = s.ClaimSession(ctx, session("new", "s2", "b", base.Add(time.Minute)), base)

	now := base.Add(2*time.Minute + time.Second)
	n, err := s.DeleteStaleSessions(ctx, now.Add(-2*time.Minute))
	if err != nil || n != 1 {
		t.Fatalf("DeleteStaleSessions: n=%d err=%v", n, err)
	}
	n, err = s.DeactivateOrphans(ctx, now)
	if err != nil || n != 2 {
		t.Fatalf("DeactivateOrphans: n=%d err=%v", n, err)
	}
	n, _ = s.DeactivateOrphans(ctx, now)
	if n != 0 {
		t.Fatalf("second DeactivateOrphans changed %d rows", n)
	}

	active, _ := s.ActiveVehicles(ctx)
	if len(active) != 1 || active[0].ID != "new" {
		t.Fatalf("unexpected active set: %+v", active)
	}
	sessions, _ := s.Sessions(ctx)
	if len(sessions) != 1 || sessions[0].VehicleID != "new" {
		t.Fatalf("unexpected sessions: %+v", sessions)
	}
}

func TestTrackingStore_ReleaseInstanceSessions(t *testing.T) {
	ctx := context.Background()
	s := NewTrackingStore(newTestDB(t))

	_, _ = s.ClaimSession(ctx, session("v1", "s1", "a", base), base)
	_, _ = s.ClaimSession(ctx, session("v2", "s2", "a", base), base)
	_, _ = s.ClaimSession(ctx, session("v3", "s3", "b", base), base)

	n, err := s.ReleaseInstanceSessions(ctx, "a")
	if err != nil || n != 2 {
		t.Fatalf("ReleaseInstanceSessions: n=%d err=%v", n, err)
	}
	sessions, _ := s.Sessions(ctx)
	if len(sessions) != 1 || sessions[0].OwnerInstanceID != "b" {
		t.Fatalf("unexpected sessions: %+v", sessions)
	}
}

func TestTrackingStore_PositionLog(t *testing.T) {
	ctx := context.Background()
	s := NewTrackingStore(newTestDB(t))

	for i := range 5 {
		p := tracking.PositionSample{SpeedKmh: float64(i), ReceivedAt: base.Add(time.Duration(i) * time.Second).UnixMilli()}
		if err := s.AppendPosition(ctx, "v1", p); err != nil {
			t.Fatal(err)
		}
	}
	_ = s.AppendPosition(ctx, "v2", tracking.PositionSample{SpeedKmh: 99})

	recent, err := s.RecentPositions(ctx, "v1", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 3 || recent[0].SpeedKmh != 2 || recent[2].SpeedKmh != 4 {
		t.Fatalf("expected speeds 2..4 oldest first, got %+v", recent)
	}
	all, _ := s.RecentPositions(ctx, "v1", 0)
	if len(all) != 5 {
		t.Fatalf("expected 5 positions, got %d", len(all))
	}

	n, err := s.PrunePositions(ctx, base.Add(2*time.Second))
	if err != nil || n != 3 {
		t.Fatalf("PrunePositions: n=%d err=%v", n, err)
	}
	all, _ = s.RecentPositions(ctx, "v1", 0)
	if len(all) != 3 || all[0].SpeedKmh != 2 {
		t.Fatalf("unexpected positions after prune: %+v", all)
	}
}
