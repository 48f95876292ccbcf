package tracking

import (
	"context"
	"time"
)

// Directory is the durable record of every vehicle ever seen.
type Directory interface {
	// UpsertActive creates the record for id if absent, otherwise marks it
	// active and refreshes LastSeenAt.
	UpsertActive(ctx context.Context, id VehicleID, now time.Time) error

	// RecordPosition stores sample as the current position, bumps the point
	// count and, when speedChanged is set, the speed change count.
	RecordPosition(ctx context.Context, id VehicleID, sample PositionSample, speedChanged bool) error

	// Vehicle returns ErrVehicleNotFound for an unknown id.
	Vehicle(ctx context.Context, id VehicleID) (*VehicleRecord, error)

	ActiveVehicles(ctx context.Context) ([]*VehicleRecord, error)

	// MarkInactive clears the active flag of id unless a session row still
	// exists for it.
	MarkInactive(ctx context.Context, id VehicleID, now time.Time) error

	// DeactivateOrphans clears the active flag of every active vehicle with
	// no session row and returns how many it changed.
	DeactivateOrphans(ctx context.Context, now time.Time) (int, error)
}

// SessionTable is the deployment-wide arbitration point for identities.
type SessionTable interface {
	// ClaimSession writes rec if no row exists for its vehicle or the
	// existing row's heartbeat is older than staleBefore. It reports false,
	// leaving the existing row untouched, when a fresh session holds the
	// identity.
	ClaimSession(ctx context.Context, rec SessionRecord, staleBefore time.Time) (bool, error)

	// TouchSession refreshes the heartbeat of the row owned by sessionID. It
	// reports false when that session no longer owns the row.
	TouchSession(ctx context.Context, id VehicleID, sessionID string, now time.Time) (bool, error)

	// ReleaseSession deletes the row for id only if sessionID owns it. A
	// missing row is not an error.
	ReleaseSession(ctx context.Context, id VehicleID, sessionID string) error

	// Session returns nil, nil when id has no session row.
	Session(ctx context.Context, id VehicleID) (*SessionRecord, error)

	Sessions(ctx context.Context) ([]*SessionRecord, error)

	// DeleteStaleSessions removes every row whose heartbeat is older than
	// staleBefore and returns how many it removed.
	DeleteStaleSessions(ctx context.Context, staleBefore time.Time) (int, error)
}

// PositionLog is the durable history of accepted samples.
type PositionLog interface {
	AppendPosition(ctx context.Context, id VehicleID, sample PositionSample) error

	// RecentPositions returns at most limit samples for id, oldest first.
	RecentPositions(ctx context.Context, id VehicleID, limit int) ([]PositionSample, error)
}

// PositionPruner is implemented by stores that can drop old position log
// entries. The sweeper uses it when a retention period is configured.
type PositionPruner interface {
	PrunePositions(ctx context.Context, cutoff time.Time) (int, error)
}

// Store is the shared state every instance of the registry reads and writes.
type Store interface {
	Directory
	SessionTable
	PositionLog
}
