package tracking

// PositionHistory is a bounded, insertion-ordered buffer of samples. Once
// full, each Append evicts the oldest sample.
type PositionHistory struct {
	buf   []PositionSample
	start int
	size  int
}

// NewPositionHistory returns an empty history holding at most capacity
// samples. A non-positive capacity selects DefaultHistorySize.
func NewPositionHistory(capacity int) *PositionHistory {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &PositionHistory{buf: make([]PositionSample, capacity)}
}

// Append adds s as the newest sample and reports whether the oldest sample
// was evicted to make room.
func (h *PositionHistory) Append(s PositionSample) bool {
	if h.size < len(h.buf) {
		h.buf[(h.start+h.size)%len(h.buf)] = s
		h.size++
		return false
	}
	h.buf[h.start] = s
	h.start = (h.start + 1) % len(h.buf)
	return true
}

func (h *PositionHistory) Len() int { return h.size }
func (h *PositionHistory) Cap() int { return len(h.buf) }

// Last returns the newest sample.
func (h *PositionHistory) Last() (PositionSample, bool) {
	if h.size == 0 {
		return PositionSample{}, false
	}
	return h.buf[(h.start+h.size-1)%len(h.buf)], true
}

// Samples returns a copy of the retained samples, oldest first.
func (h *PositionHistory) Samples() []PositionSample {
	out := make([]PositionSample, h.size)
	for i := range out {
		out[i] = h.buf[(h.start+i)%len(h.buf)]
	}
	return out
}
