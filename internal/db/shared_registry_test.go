package db

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/banshee-data/vehicle.tracker/internal/timeutil"
	"github.com/banshee-data/vehicle.tracker/internal/tracking"
)

func newSharedRegistry(store tracking.Store, clock timeutil.Clock, instance string) *tracking.Registry {
	return tracking.NewRegistry(store, tracking.Options{
		InstanceID:    instance,
		Clock:         clock,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		ConflictGrace: 10 * time.Millisecond,
	})
}

func locationReport(id tracking.VehicleID, speed float64, ts time.Time) tracking.Report {
	return tracking.Report{
		VehicleID:       id,
		Lat:             -8.05,
		Lon:             -34.88,
		SpeedKmh:        speed,
		ClientTimestamp: strconv.FormatInt(ts.UnixMilli(), 10),
	}
}

// Two instances over one database file arbitrate identities through the
// sessions table.
func TestSharedStore_DuplicateAcrossInstances(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	clock := timeutil.NewMockClock(base)

	regA := newSharedRegistry(NewTrackingStore(db), clock, "a")
	regB := newSharedRegistry(NewTrackingStore(db), clock, "b")

	first := regA.NewStream()
	defer first.Close()
	if err := first.Handle(ctx, locationReport("v1", 40, base)); err != nil {
		t.Fatalf("first stream rejected: %v", err)
	}
	<-first.Outbound()

	clock.Advance(30 * time.Second)
	dup := regB.NewStream()
	err := dup.Handle(ctx, locationReport("v1", 40, clock.Now()))
	if !errors.Is(err, tracking.ErrDuplicateIdentity) {
		t.Fatalf("expected ErrDuplicateIdentity, got %v", err)
	}
	notice := <-dup.Outbound()
	if notice.Status != tracking.StatusDuplicateID || notice.Command != tracking.CommandDuplicateIdentity {
		t.Fatalf("unexpected notice: %+v", notice)
	}
	dup.Close()

	sess, err := NewTrackingStore(db).Session(ctx, "v1")
	if err != nil || sess == nil {
		t.Fatalf("session lost: %v", err)
	}
	if sess.OwnerInstanceID != "a" || sess.SessionID != first.SessionID() {
		t.Fatalf("session changed hands: %+v", sess)
	}
	if len(regB.LocalVehicles()) != 0 {
		t.Fatal("rejected stream was registered")
	}
}

// Registries on separate connections to one file race to admit the same
// identity. The conditional claim lets exactly one of them through.
func TestSharedStore_ConcurrentAdmission(t *testing.T) {
	const instances = 8
	ctx := context.Background()
	db := newTestDB(t)
	clock := timeutil.NewMockClock(base)

	streams := make([]*tracking.Stream, instances)
	for i := range streams {
		conn, err := OpenDB(db.Path())
		if err != nil {
			t.Fatalf("OpenDB failed: %v", err)
		}
		t.Cleanup(func() { conn.Close() })
		reg := newSharedRegistry(NewTrackingStore(conn), clock, "instance-"+strconv.Itoa(i))
		streams[i] = reg.NewStream()
		t.Cleanup(streams[i].Close)
	}

	start := make(chan struct{})
	errs := make([]error, instances)
	var wg sync.WaitGroup
	for i, st := range streams {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			errs[i] = st.Handle(ctx, locationReport("v1", 40, base))
		}()
	}
	close(start)
	wg.Wait()

	admitted, rejected := -1, 0
	for i, err := range errs {
		switch {
		case err == nil:
			if admitted >= 0 {
				t.Fatalf("instances %d and %d were both admitted", admitted, i)
			}
			admitted = i
		case errors.Is(err, tracking.ErrDuplicateIdentity):
			rejected++
		default:
			t.Fatalf("instance %d: unexpected error %v", i, err)
		}
	}
	if admitted < 0 {
		t.Fatal("no instance was admitted")
	}
	if rejected != instances-1 {
		t.Fatalf("expected %d rejections, got %d", instances-1, rejected)
	}

	sess, err := NewTrackingStore(db).Session(ctx, "v1")
	if err != nil || sess == nil {
		t.Fatalf("session missing: %v", err)
	}
	if sess.SessionID != streams[admitted].SessionID() {
		t.Fatalf("session %s does not belong to the admitted stream %s", sess.SessionID, streams[admitted].SessionID())
	}
}

// A stream that went silent past the staleness window loses its identity to
// a new connection on another instance.
func TestSharedStore_StaleSessionReclaimed(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	clock := timeutil.NewMockClock(base)
	store := NewTrackingStore(db)

	regA := newSharedRegistry(store, clock, "a")
	regB := newSharedRegistry(NewTrackingStore(db), clock, "b")

	silent := regA.NewStream()
	if err := silent.Handle(ctx, locationReport("v1", 40, base)); err != nil {
		t.Fatal(err)
	}

	clock.Advance(2*time.Minute + time.Second)
	fresh := regB.NewStream()
	defer fresh.Close()
	if err := fresh.Handle(ctx, locationReport("v1", 50, clock.Now())); err != nil {
		t.Fatalf("stale session was not reclaimed: %v", err)
	}

	sess, _ := store.Session(ctx, "v1")
	if sess == nil || sess.OwnerInstanceID != "b" {
		t.Fatalf("expected instance b to own v1, got %+v", sess)
	}

	// The old stream closing must not release the new owner's session.
	silent.Close()
	sess, _ = store.Session(ctx, "v1")
	if sess == nil || sess.SessionID != fresh.SessionID() {
		t.Fatalf("old stream released the new session: %+v", sess)
	}
	v, _ := store.Vehicle(ctx, "v1")
	if !v.IsActive || v.TotalPointsReceived != 2 {
		t.Fatalf("unexpected vehicle: %+v", v)
	}

	status, err := regA.VehicleStatus(ctx, "v1")
	if err != nil {
		t.Fatal(err)
	}
	if !status.IsConnected {
		t.Fatal("instance a should see v1 connected through the shared session")
	}
}

func TestSharedStore_SweeperReapsStaleSessions(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	clock := timeutil.NewMockClock(base)
	store := NewTrackingStore(db)
	reg := newSharedRegistry(store, clock, "a")

	st := reg.NewStream()
	if err := st.Handle(ctx, locationReport("v1", 40, base)); err != nil {
		t.Fatal(err)
	}

	clock.Advance(3 * time.Minute)
	reclaimed, deactivated, err := tracking.NewSweeper(reg, time.Minute).RunOnce(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if reclaimed != 1 || deactivated != 1 {
		t.Fatalf("reclaimed=%d deactivated=%d", reclaimed, deactivated)
	}
	active, _ := store.ActiveVehicles(ctx)
	if len(active) != 0 {
		t.Fatalf("expected no active vehicles, got %d", len(active))
	}
	st.Close()
}
