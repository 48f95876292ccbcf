package tracking

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ResolveTimestamp parses the client timestamp as base-10 epoch milliseconds.
// Empty, unparsable or non-positive values resolve to receivedAt.
func ResolveTimestamp(client string, receivedAt time.Time) int64 {
	ms, err := strconv.ParseInt(strings.TrimSpace(client), 10, 64)
	if err != nil || ms <= 0 {
		return receivedAt.UnixMilli()
	}
	return ms
}

// SpeedStats tracks the last observed speed of one vehicle and how many
// significant changes it has made.
type SpeedStats struct {
	LastSpeed        float64 `json:"last_speed"`
	SpeedChangeCount int     `json:"speed_change_count"`
	LastUpdate       int64   `json:"last_update"`

	seeded bool
}

// Observe records a new speed at ts and reports whether the transition from
// the previous speed was significant. The first observation only seeds the
// stats.
func (s *SpeedStats) Observe(speed float64, ts int64) bool {
	changed := false
	if s.seeded {
		changed = math.Abs(speed-s.LastSpeed) >= SignificantSpeedDelta
	}
	if changed {
		s.SpeedChangeCount++
	}
	s.LastSpeed = speed
	s.LastUpdate = ts
	s.seeded = true
	return changed
}

// DeriveCommand picks the steering command for speed. It returns CommandNone
// unless the cooldown since lastCommandAt has elapsed and the current
// transition was not itself a significant change.
func DeriveCommand(speed float64, ts, lastCommandAt int64, significant bool) Command {
	if significant || ts-lastCommandAt <= CommandCooldown.Milliseconds() {
		return CommandNone
	}
	switch {
	case speed > HighSpeedKmh:
		return CommandReduceSpeed
	case speed < LowSpeedKmh:
		return CommandAccelerate
	}
	return CommandNone
}
