package tracking

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"testing"
	"time"

	"github.com/banshee-data/vehicle.tracker/internal/timeutil"
)

// t0 is 2023-11-14T22:13:20Z.
var t0 = time.UnixMilli(1_700_000_000_000).UTC()

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRegistry(t *testing.T, store Store, clock timeutil.Clock, instance string) *Registry {
	t.Helper()
	return NewRegistry(store, Options{
		InstanceID:    instance,
		Clock:         clock,
		Logger:        discardLogger(),
		ConflictGrace: 20 * time.Millisecond,
	})
}

func report(id VehicleID, speed float64, ts time.Time) Report {
	return Report{
		VehicleID:       id,
		Lat:             -8.05,
		Lon:             -34.88,
		SpeedKmh:        speed,
		ClientTimestamp: strconv.FormatInt(ts.UnixMilli(), 10),
	}
}

// nextAck pops the next queued message. Handle queues synchronously, so a
// message is either already there or was never sent.
func nextAck(t *testing.T, st *Stream) Ack {
	t.Helper()
	select {
	case a := <-st.Outbound():
		return a
	default:
		t.Fatal("no message queued on stream")
		return Ack{}
	}
}

func assertNoAck(t *testing.T, st *Stream) {
	t.Helper()
	select {
	case a := <-st.Outbound():
		t.Fatalf("unexpected message queued: %+v", a)
	default:
	}
}

var errStoreDown = errors.New("database is locked")

// flakyStore fails the selected operations and delegates the rest.
type flakyStore struct {
	*MemStore
	failUpsert   bool
	failRecord   bool
	failAppend   bool
	failSessions bool
}

func (f *flakyStore) UpsertActive(ctx context.Context, id VehicleID, now time.Time) error {
	if f.failUpsert {
		return errStoreDown
	}
	return f.MemStore.UpsertActive(ctx, id, now)
}

func (f *flakyStore) RecordPosition(ctx context.Context, id VehicleID, s PositionSample, changed bool) error {
	if f.failRecord {
		return errStoreDown
	}
	return f.MemStore.RecordPosition(ctx, id, s, changed)
}

func (f *flakyStore) AppendPosition(ctx context.Context, id VehicleID, s PositionSample) error {
	if f.failAppend {
		return errStoreDown
	}
	return f.MemStore.AppendPosition(ctx, id, s)
}

func (f *flakyStore) DeleteStaleSessions(ctx context.Context, staleBefore time.Time) (int, error) {
	if f.failSessions {
		return 0, errStoreDown
	}
	return f.MemStore.DeleteStaleSessions(ctx, staleBefore)
}
