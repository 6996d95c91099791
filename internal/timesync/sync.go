package timesync

import (
	"sync"

	"fhsslink/internal/domain"
	"fhsslink/internal/packet"
)

// Default timing parameters, in milliseconds.
const (
	DefaultHopInterval    = 500
	DefaultBeaconInterval = 1000
	DefaultMaxRetries     = 3
)

// State describes a synchronizer's standing relative to the shared clock.
type State int

const (
	// StateUnsynchronized means no beacon has been adopted yet.
	StateUnsynchronized State = iota
	// StateSynchronized means the shared clock is anchored.
	StateSynchronized
	// StateRetryExceeded means too many consecutive beacons were missed
	// and the link must re-synchronize from scratch.
	StateRetryExceeded
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateUnsynchronized:
		return "unsynchronized"
	case StateSynchronized:
		return "synchronized"
	case StateRetryExceeded:
		return "retry-exceeded"
	default:
		return "unknown"
	}
}

// Synchronizer maintains a shared notion of time between the two ends of
// the link. The master's local clock is authoritative; slaves converge to
// it by adopting the midpoint between a beacon's timestamp and their own
// clock at the instant of reception, which halves the one-way propagation
// error on every beacon.
type Synchronizer struct {
	role           domain.Role
	clock          domain.Clock
	hopInterval    uint32
	beaconInterval uint32
	scheduleLen    int

	mu         sync.Mutex
	synced     bool
	anchor     uint32 // shared time at the last sync point
	lastSync   uint32 // local time at the last sync point
	lastBeacon uint32
	haveBeacon bool
	seq        uint32
	drift      int32
	retries    packet.RetryCounter
}

// NewSynchronizer builds a synchronizer for the given role. Zero intervals
// fall back to the defaults; scheduleLen must match the hop schedule length
// used by both ends.
func NewSynchronizer(role domain.Role, clock domain.Clock, hopInterval, beaconInterval uint32, maxRetries, scheduleLen int) *Synchronizer {
	if hopInterval == 0 {
		hopInterval = DefaultHopInterval
	}
	if beaconInterval == 0 {
		beaconInterval = DefaultBeaconInterval
	}
	if scheduleLen <= 0 {
		scheduleLen = domain.ScheduleLength
	}
	s := &Synchronizer{
		role:           role,
		clock:          clock,
		hopInterval:    hopInterval,
		beaconInterval: beaconInterval,
		scheduleLen:    scheduleLen,
	}
	s.retries.Max = maxRetries
	if role == domain.RoleMaster {
		now := clock.Now()
		s.anchor = now
		s.lastSync = now
		s.synced = true
	}
	return s
}

// Role returns the role this synchronizer was built for.
func (s *Synchronizer) Role() domain.Role { return s.role }

// Status reports the current synchronization state.
func (s *Synchronizer) Status() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.retries.Exceeded() {
		return StateRetryExceeded
	}
	if !s.synced {
		return StateUnsynchronized
	}
	return StateSynchronized
}

// Synchronized reports whether a shared clock anchor is in place.
func (s *Synchronizer) Synchronized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.synced
}

// SharedTime returns the link's agreed time in milliseconds. Before the
// first synchronization it falls back to the local clock.
func (s *Synchronizer) SharedTime() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sharedTimeLocked()
}

func (s *Synchronizer) sharedTimeLocked() uint32 {
	now := s.clock.Now()
	if !s.synced {
		return now
	}
	return s.anchor + (now - s.lastSync)
}

// EmitBeacon produces the next sync beacon, rate limited to one per beacon
// interval. Only a synchronized master emits; the second return value is
// false when no beacon is due.
func (s *Synchronizer) EmitBeacon() (Beacon, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.role != domain.RoleMaster || !s.synced {
		return Beacon{}, false
	}
	now := s.clock.Now()
	if s.haveBeacon && now-s.lastBeacon < s.beaconInterval {
		return Beacon{}, false
	}
	s.lastBeacon = now
	s.haveBeacon = true

	// Re-anchor at emission so lastSync always marks the newest sync point.
	shared := s.sharedTimeLocked()
	s.anchor = shared
	s.lastSync = now

	b := Beacon{Seq: s.seq, Timestamp: shared}
	s.seq++
	return b, true
}

// HandleBeacon adopts a received beacon's timestamp. The new anchor is the
// midpoint between the beacon time and the local shared time, computed with
// a signed delta so it behaves across uint32 wraparound in either
// direction. Adoption also clears the missed-beacon counter.
func (s *Synchronizer) HandleBeacon(b Beacon) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prior := s.sharedTimeLocked()
	delta := int32(b.Timestamp - prior)
	adopted := b.Timestamp - uint32(delta/2)

	s.drift = int32(adopted - prior)
	s.anchor = adopted
	s.lastSync = s.clock.Now()
	s.seq = b.Seq
	s.synced = true
	s.retries.Reset()
}

// BeaconMissed records one missed beacon and returns the resulting retry
// status. Once the ceiling is crossed the synchronizer drops back to an
// unsynchronized anchor and reports StatusRetryExceeded.
func (s *Synchronizer) BeaconMissed() packet.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.retries.Request()
	if st == packet.StatusRetryExceeded {
		s.synced = false
	}
	return st
}

// Drift returns the signed correction applied by the most recent beacon
// adoption, in milliseconds.
func (s *Synchronizer) Drift() int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drift
}

// DriftFrom reports how far a remote timestamp sits ahead of the local
// shared time. Negative means the remote clock is behind.
func (s *Synchronizer) DriftFrom(remote uint32) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int32(remote - s.sharedTimeLocked())
}

// Seq returns the sequence number of the next beacon to emit, or the last
// one adopted on the slave side.
func (s *Synchronizer) Seq() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

// CurrentSlot returns the active index into the hop schedule, derived from
// shared time and the hop interval.
func (s *Synchronizer) CurrentSlot() int {
	return int((s.SharedTime() / s.hopInterval) % uint32(s.scheduleLen))
}

// CurrentChannel resolves the active slot against a hop schedule.
func (s *Synchronizer) CurrentChannel(sched domain.Schedule) uint8 {
	return sched[s.CurrentSlot()]
}

// Reset discards all synchronization state. Masters re-anchor on their
// local clock; slaves return to StateUnsynchronized.
func (s *Synchronizer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq = 0
	s.drift = 0
	s.haveBeacon = false
	s.retries.Reset()
	if s.role == domain.RoleMaster {
		now := s.clock.Now()
		s.anchor = now
		s.lastSync = now
		s.synced = true
		return
	}
	s.synced = false
	s.anchor = 0
	s.lastSync = 0
}
