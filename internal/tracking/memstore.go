package tracking

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"
)

// memLogLimit bounds the per-vehicle position log kept by MemStore.
const memLogLimit = 1000

// MemStore is an in-memory Store. It is shared safely by every Registry in
// one process, which makes it usable for tests and single-instance runs.
type MemStore struct {
	mu        sync.Mutex
	vehicles  map[VehicleID]*VehicleRecord
	sessions  map[VehicleID]*SessionRecord
	positions map[VehicleID][]PositionSample
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		vehicles:  make(map[VehicleID]*VehicleRecord),
		sessions:  make(map[VehicleID]*SessionRecord),
		positions: make(map[VehicleID][]PositionSample),
	}
}

var _ Store = (*MemStore)(nil)

func (m *MemStore) UpsertActive(_ context.Context, id VehicleID, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vehicles[id]
	if !ok {
		m.vehicles[id] = &VehicleRecord{ID: id, FirstSeenAt: now, LastSeenAt: now, IsActive: true}
		return nil
	}
	v.IsActive = true
	v.LastSeenAt = now
	return nil
}

func (m *MemStore) RecordPosition(_ context.Context, id VehicleID, sample PositionSample, speedChanged bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.UnixMilli(sample.ReceivedAt).UTC()
	v, ok := m.vehicles[id]
	if !ok {
		v = &VehicleRecord{ID: id, FirstSeenAt: now, IsActive: true}
		m.vehicles[id] = v
	}
	pos := sample
	v.CurrentPosition = &pos
	v.LastSeenAt = now
	v.TotalPointsReceived++
	if speedChanged {
		v.SpeedChangeCount++
	}
	return nil
}

func (m *MemStore) Vehicle(_ context.Context, id VehicleID) (*VehicleRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vehicles[id]
	if !ok {
		return nil, ErrVehicleNotFound
	}
	return cloneVehicle(v), nil
}

func (m *MemStore) ActiveVehicles(_ context.Context) ([]*VehicleRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*VehicleRecord
	for _, v := range m.vehicles {
		if v.IsActive {
			out = append(out, cloneVehicle(v))
		}
	}
	slices.SortFunc(out, func(a, b *VehicleRecord) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (m *MemStore) MarkInactive(_ context.Context, id VehicleID, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, held := m.sessions[id]; held {
		return nil
	}
	if v, ok := m.vehicles[id]; ok && v.IsActive {
		v.IsActive = false
		v.LastSeenAt = now
	}
	return nil
}

func (m *MemStore) DeactivateOrphans(_ context.Context, now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, v := range m.vehicles {
		if !v.IsActive {
			continue
		}
		if _, held := m.sessions[id]; held {
			continue
		}
		v.IsActive = false
		v.LastSeenAt = now
		n++
	}
	return n, nil
}

func (m *MemStore) ClaimSession(_ context.Context, rec SessionRecord, staleBefore time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.sessions[rec.VehicleID]; ok && !cur.LastHeartbeat.Before(staleBefore) {
		return false, nil
	}
	r := rec
	m.sessions[rec.VehicleID] = &r
	return true, nil
}

func (m *MemStore) TouchSession(_ context.Context, id VehicleID, sessionID string, now time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.sessions[id]
	if !ok || cur.SessionID != sessionID {
		return false, nil
	}
	cur.LastHeartbeat = now
	return true, nil
}

func (m *MemStore) ReleaseSession(_ context.Context, id VehicleID, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.sessions[id]; ok && cur.SessionID == sessionID {
		delete(m.sessions, id)
	}
	return nil
}

func (m *MemStore) Session(_ context.Context, id VehicleID) (*SessionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	r := *cur
	return &r, nil
}

func (m *MemStore) Sessions(_ context.Context) ([]*SessionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*SessionRecord, 0, len(m.sessions))
	for _, s := range m.sessions {
		r := *s
		out = append(out, &r)
	}
	slices.SortFunc(out, func(a, b *SessionRecord) int { return cmp.Compare(a.VehicleID, b.VehicleID) })
	return out, nil
}

func (m *MemStore) DeleteStaleSessions(_ context.Context, staleBefore time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.LastHeartbeat.Before(staleBefore) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

func (m *MemStore) AppendPosition(_ context.Context, id VehicleID, sample PositionSample) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	log := append(m.positions[id], sample)
	if len(log) > memLogLimit {
		log = slices.Clone(log[len(log)-memLogLimit:])
	}
	m.positions[id] = log
	return nil
}

func (m *MemStore) RecentPositions(_ context.Context, id VehicleID, limit int) ([]PositionSample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	log := m.positions[id]
	if limit > 0 && len(log) > limit {
		log = log[len(log)-limit:]
	}
	return slices.Clone(log), nil
}

func cloneVehicle(v *VehicleRecord) *VehicleRecord {
	out := *v
	if v.CurrentPosition != nil {
		pos := *v.CurrentPosition
		out.CurrentPosition = &pos
	}
	return &out
}

func (m *MemStore) PrunePositions(_ context.Context, cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	limit := cutoff.UnixMilli()
	n := 0
	for id, log := range m.positions {
		kept := slices.DeleteFunc(log, func(p PositionSample) bool { return p.ReceivedAt < limit })
		n += len(log) - len(kept)
		if len(kept) == 0 {
			delete(m.positions, id)
		} else {
			m.positions[id] = kept
		}
	}
	return n, nil
}
