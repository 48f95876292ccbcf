// Package tracking is the connection and session registry for vehicles that
// stream position reports: stream admission with duplicate-identity
// arbitration, per-report processing, the liveness sweeper and the query
// surface built on the shared store.
package tracking

import (
	"errors"
	"time"
)

// VehicleID is the client-chosen identity of one vehicle. It is the only key
// for registry lookups and is never generated server-side.
type VehicleID string

const (
	// DefaultHistorySize bounds the in-memory history kept per vehicle.
	DefaultHistorySize = 100

	// DefaultStaleAfter is the staleness window past which a session is
	// considered abandoned and may be reclaimed.
	DefaultStaleAfter = 2 * time.Minute

	// DefaultSweepInterval is how often the liveness sweeper runs.
	DefaultSweepInterval = 60 * time.Second

	// DefaultConflictGrace is how long a rejected stream is held open so the
	// duplicate-identity notice can flush before the server ends the call.
	DefaultConflictGrace = 500 * time.Millisecond

	// SignificantSpeedDelta is the speed change, in km/h, counted as a
	// significant change between consecutive reports.
	SignificantSpeedDelta = 10.0

	// CommandCooldown is the minimum gap between derived commands.
	CommandCooldown = 30 * time.Second

	HighSpeedKmh = 85.0
	LowSpeedKmh  = 15.0
)

// Command is pushed to a vehicle on its stream. The empty Command means no
// command.
type Command string

const (
	CommandNone              Command = ""
	CommandReduceSpeed       Command = "reduce_speed"
	CommandAccelerate        Command = "accelerate"
	CommandDuplicateIdentity Command = "duplicate_identity"
)

// Status is the status marker on stream responses and query results.
type Status string

const (
	StatusTrackingActive Status = "tracking_active"
	StatusDuplicateID    Status = "error_duplicate_id"
	StatusCommandSent    Status = "command_sent"
	StatusOnline         Status = "online"
	StatusOffline        Status = "offline"
)

var (
	// ErrVehicleNotFound is returned by lookups for an identity the
	// directory has never seen.
	ErrVehicleNotFound = errors.New("vehicle not found")

	// ErrDuplicateIdentity is returned when a stream is refused because the
	// identity already has a fresh session, or has lost its session to one.
	ErrDuplicateIdentity = errors.New("vehicle identity already connected")

	// ErrStreamNotFound is returned when a command targets an identity with
	// no live stream on this instance.
	ErrStreamNotFound = errors.New("vehicle not connected to this instance")

	// ErrStreamClosed is returned when work is offered to a closed stream.
	ErrStreamClosed = errors.New("stream closed")

	ErrEmptyCommand = errors.New("command is required")
)

// PositionSample is one accepted report. Timestamps are epoch milliseconds.
type PositionSample struct {
	Lat             float64 `json:"lat"`
	Lon             float64 `json:"lon"`
	SpeedKmh        float64 `json:"speed_kmh"`
	SourceTimestamp int64   `json:"source_timestamp"`
	ReceivedAt      int64   `json:"received_at"`
}

// VehicleRecord is the directory entry for every vehicle ever seen.
type VehicleRecord struct {
	ID                  VehicleID       `json:"vehicle_id"`
	FirstSeenAt         time.Time       `json:"first_seen_at"`
	LastSeenAt          time.Time       `json:"last_seen_at"`
	IsActive            bool            `json:"is_active"`
	TotalPointsReceived int64           `json:"total_points_received"`
	SpeedChangeCount    int64           `json:"speed_change_count"`
	CurrentPosition     *PositionSample `json:"current_position,omitempty"`
}

// SessionRecord claims an identity for one stream on one instance.
// SessionID names the owning stream so that heartbeats and release only
// touch the row that stream created.
type SessionRecord struct {
	VehicleID       VehicleID `json:"vehicle_id"`
	SessionID       string    `json:"session_id"`
	OwnerInstanceID string    `json:"owner_instance_id"`
	ConnectedAt     time.Time `json:"connected_at"`
	LastHeartbeat   time.Time `json:"last_heartbeat"`
}

// Fresh reports whether the session heartbeat is within the staleness window
// ending at now.
func (s *SessionRecord) Fresh(now time.Time, staleAfter time.Duration) bool {
	if s == nil {
		return false
	}
	return !s.LastHeartbeat.Before(now.Add(-staleAfter))
}

// Report is one inbound position report as received on a stream.
type Report struct {
	VehicleID       VehicleID
	Lat             float64
	Lon             float64
	SpeedKmh        float64
	ClientTimestamp string
}

// Ack is one outbound message on a vehicle's command channel.
type Ack struct {
	VehicleID       VehicleID
	Lat             float64
	Lon             float64
	SpeedKmh        float64
	ServerTimestamp int64
	Command         Command
	Status          Status
}

// SpeedSummary describes the speeds in a vehicle's recent position log.
type SpeedSummary struct {
	Samples int     `json:"samples"`
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"std_dev"`
	Max     float64 `json:"max"`
}

// VehicleStatus is the query view of one vehicle.
type VehicleStatus struct {
	VehicleID        VehicleID       `json:"vehicle_id"`
	IsConnected      bool            `json:"is_connected"`
	LastPosition     *PositionSample `json:"last_position,omitempty"`
	TotalPoints      int64           `json:"total_points"`
	SpeedChangeCount int64           `json:"speed_change_count"`
	Status           Status          `json:"status"`
	Speed            *SpeedSummary   `json:"speed,omitempty"`
}
