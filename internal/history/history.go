package history

// Snapshot is the contract an actor state must satisfy to be recorded.
// Interpolate and Extrapolate must not modify their receiver.
type Snapshot[A any] interface {
	Interpolate(other A, portion float64) A
	Extrapolate(elapsed float64) A // seconds, may be negative
	CreatedAt() int64
	DestroyedAt() int64
}

type entry[A any] struct {
	timestamp int64
	value     A
}

// History keeps the snapshots of one actor received over the last duration
// milliseconds and answers point-in-time queries by interpolating between
// them or extrapolating past either end. Not safe for concurrent use; callers
// serialize Record and Get (see sim.RecordSystem).
type History[A Snapshot[A]] struct {
	duration int64
	entries  []entry[A]
}

// New creates a history seeded with one snapshot.
func New[A Snapshot[A]](timestamp int64, value A, duration int64) *History[A] {
	h := &History[A]{duration: duration, entries: make([]entry[A], 0, 8)}
	h.entries = append(h.entries, entry[A]{timestamp: timestamp, value: value})
	return h
}

func (h *History[A]) Duration() int64 { return h.duration }
func (h *History[A]) Len() int        { return len(h.entries) }

func (h *History[A]) OldestTimestamp() int64 { return h.entries[0].timestamp }
func (h *History[A]) NewestTimestamp() int64 { return h.entries[len(h.entries)-1].timestamp }

// Newest returns the most recently recorded snapshot.
func (h *History[A]) Newest() A { return h.entries[len(h.entries)-1].value }

// Record appends a snapshot and evicts entries older than
// timestamp - duration. Snapshots that are not newer than the newest entry
// arrived out of order and are ignored.
func (h *History[A]) Record(timestamp int64, value A) bool {
	if timestamp <= h.NewestTimestamp() {
		return false
	}
	h.entries = append(h.entries, entry[A]{timestamp: timestamp, value: value})
	cutoff := timestamp - h.duration
	drop := 0
	for drop < len(h.entries)-1 && h.entries[drop].timestamp < cutoff {
		drop++
	}
	if drop > 0 {
		n := copy(h.entries, h.entries[drop:])
		clear(h.entries[n:])
		h.entries = h.entries[:n]
	}
	return true
}

// Reset replaces the whole window with one snapshot.
func (h *History[A]) Reset(timestamp int64, value A) {
	clear(h.entries)
	h.entries = append(h.entries[:0], entry[A]{timestamp: timestamp, value: value})
}

// Get returns the state at timestamp. At a recorded sample timestamp the
// recorded snapshot is reproduced exactly.
func (h *History[A]) Get(timestamp int64) A {
	first := h.entries[0]
	if timestamp <= first.timestamp {
		return first.value.Extrapolate(float64(timestamp-first.timestamp) / 1000)
	}
	last := h.entries[len(h.entries)-1]
	if timestamp >= last.timestamp {
		return last.value.Extrapolate(float64(timestamp-last.timestamp) / 1000)
	}
	lo, hi := h.bracket(timestamp)
	start, end := h.entries[lo], h.entries[hi]
	if timestamp == start.timestamp {
		return start.value.Extrapolate(0)
	}
	portion := float64(timestamp-start.timestamp) / float64(end.timestamp-start.timestamp)
	return start.value.Interpolate(end.value, portion)
}

// bracket finds lo, hi = lo+1 with entries[lo] <= timestamp < entries[hi].
// Each probe first guesses an index proportional to the timestamp's position
// within the current range and falls back to bisection when the guess leaves
// the open interval (lo, hi).
func (h *History[A]) bracket(timestamp int64) (int, int) {
	lo, hi := 0, len(h.entries)-1
	for hi-lo > 1 {
		lt, ht := h.entries[lo].timestamp, h.entries[hi].timestamp
		mid := lo + int(float64(timestamp-lt)/float64(ht-lt)*float64(hi-lo))
		if mid <= lo || mid >= hi {
			mid = (lo + hi) / 2
		}
		if h.entries[mid].timestamp <= timestamp {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo, hi
}

// IsCreated reports whether the actor exists at timestamp according to the
// oldest snapshot.
func (h *History[A]) IsCreated(timestamp int64) bool {
	return timestamp >= h.entries[0].value.CreatedAt()
}

// IsDestroyed reports whether the actor is gone at timestamp according to the
// newest snapshot.
func (h *History[A]) IsDestroyed(timestamp int64) bool {
	return timestamp >= h.entries[len(h.entries)-1].value.DestroyedAt()
}
