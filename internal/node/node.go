package node

import (
	"errors"
	"fmt"
	"sync"

	"fhsslink/internal/crypto"
	"fhsslink/internal/domain"
	"fhsslink/internal/hop"
	"fhsslink/internal/keyexchange"
	"fhsslink/internal/mux"
	"fhsslink/internal/packet"
	"fhsslink/internal/timesync"
)

// Node is one end of the hopping link. It owns the shared secret, the hop
// schedule derived from it, the synchronizer for its role and the chunk
// multiplexer, and exposes the operations a link endpoint performs:
// pairing, beaconing and payload transfer.
type Node struct {
	role    domain.Role
	cfg     Config
	entropy domain.EntropySource

	mu       sync.Mutex
	secret   domain.Secret
	schedule []uint8
	keys     crypto.LinkKeys
	paired   bool

	sync  *timesync.Synchronizer
	mux   *mux.Multiplexer
	demux *mux.Demultiplexer
}

// New builds a node for the given role. The entropy source is only used
// by masters during key generation; slaves may pass nil.
func New(role domain.Role, cfg Config, clock domain.Clock, entropy domain.EntropySource) *Node {
	return &Node{
		role:    role,
		cfg:     cfg,
		entropy: entropy,
		sync:    timesync.NewSynchronizer(role, clock, cfg.HopInterval, cfg.BeaconInterval, cfg.MaxRetries, cfg.ScheduleLength),
		mux:     mux.NewMultiplexer(),
		demux:   mux.NewDemultiplexer(),
	}
}

// Role returns the node's role on the link.
func (n *Node) Role() domain.Role { return n.role }

// Paired reports whether a shared secret is in place.
func (n *Node) Paired() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.paired
}

// Synchronized reports whether the shared clock is anchored.
func (n *Node) Synchronized() bool { return n.sync.Synchronized() }

// Status reports the synchronization state.
func (n *Node) Status() timesync.State { return n.sync.Status() }

// Schedule returns a copy of the derived hop schedule, or nil before
// pairing.
func (n *Node) Schedule() []uint8 {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.paired {
		return nil
	}
	out := make([]uint8, len(n.schedule))
	copy(out, n.schedule)
	return out
}

// CurrentChannel returns the active hop channel. It fails with
// ErrNotPaired before a schedule exists.
func (n *Node) CurrentChannel() (uint8, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.paired {
		return 0, domain.ErrNotPaired
	}
	return n.schedule[n.sync.CurrentSlot()], nil
}

// InitiateKeyExchange generates a fresh secret and pushes it over the
// transport. Master side of pairing.
func (n *Node) InitiateKeyExchange(t domain.Transport) error {
	if n.role != domain.RoleMaster {
		return fmt.Errorf("role %s cannot initiate key exchange", n.role)
	}
	m := keyexchange.NewMaster(n.entropy)
	if err := m.Generate(); err != nil {
		return err
	}
	if err := m.Transmit(t); err != nil {
		return err
	}
	err := n.adopt(m.Key())
	m.Reset()
	return err
}

// CompleteKeyExchange pulls the secret off the transport. Slave side of
// pairing.
func (n *Node) CompleteKeyExchange(t domain.Transport) error {
	if n.role != domain.RoleSlave {
		return fmt.Errorf("role %s cannot complete key exchange", n.role)
	}
	s := keyexchange.NewSlave()
	if err := s.Receive(t); err != nil {
		return err
	}
	err := n.adopt(s.Key())
	s.Reset()
	return err
}

// Pair runs a full key exchange between a master and a slave over the
// shared transport.
func Pair(master, slave *Node, t domain.Transport) error {
	if err := master.InitiateKeyExchange(t); err != nil {
		return fmt.Errorf("master: %w", err)
	}
	if err := slave.CompleteKeyExchange(t); err != nil {
		return fmt.Errorf("slave: %w", err)
	}
	return nil
}

// adopt installs a shared secret: the hop schedule and the link subkeys
// both derive from it.
func (n *Node) adopt(secret domain.Secret) error {
	keys, err := crypto.DeriveLinkKeys(secret)
	if err != nil {
		return fmt.Errorf("derive link keys: %w", err)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.secret = secret
	n.schedule = hop.DeriveN(secret, n.cfg.ScheduleLength, n.cfg.ChannelCount)
	n.keys = keys
	n.paired = true
	return nil
}

// EmitBeacon produces the next wire-format beacon if one is due. Paired
// nodes append a truncated HMAC tag over the beacon bytes so a slave can
// reject beacons from anyone who does not hold the shared secret.
func (n *Node) EmitBeacon() ([]byte, bool) {
	b, ok := n.sync.EmitBeacon()
	if !ok {
		return nil, false
	}
	raw := b.Encode()

	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.paired {
		return raw, true
	}
	tag := crypto.Tag(n.keys.BeaconAuth, raw)
	return append(raw, tag[:]...), true
}

// HandleBeacon parses and adopts an incoming beacon. Paired nodes require
// a valid authentication tag; a bad tag fails with
// ErrBeaconAuthentication before any clock state changes.
func (n *Node) HandleBeacon(raw []byte) error {
	n.mu.Lock()
	paired := n.paired
	keys := n.keys
	n.mu.Unlock()

	if paired {
		if len(raw) != timesync.BeaconSize+crypto.TagSize {
			return domain.ErrBeaconAuthentication
		}
		var tag [crypto.TagSize]byte
		copy(tag[:], raw[timesync.BeaconSize:])
		if !crypto.VerifyTag(keys.BeaconAuth, raw[:timesync.BeaconSize], tag) {
			return domain.ErrBeaconAuthentication
		}
		raw = raw[:timesync.BeaconSize]
	}

	b := timesync.DecodeBeacon(raw)
	if b == nil {
		return errors.New("malformed beacon")
	}
	n.sync.HandleBeacon(*b)
	return nil
}

// BeaconMissed records a missed beacon against the retry ceiling. Crossing
// the ceiling fails with ErrRetryLimitExceeded and drops synchronization.
func (n *Node) BeaconMissed() error {
	if n.sync.BeaconMissed() == packet.StatusRetryExceeded {
		return domain.ErrRetryLimitExceeded
	}
	return nil
}

// Send chunks a payload over the transport. The node must be paired and
// synchronized. With SecurePayload enabled the payload is sealed with the
// link's payload key before chunking.
func (n *Node) Send(t domain.Transport, payload []byte) error {
	n.mu.Lock()
	paired := n.paired
	key := n.keys.Payload
	n.mu.Unlock()

	if !paired {
		return domain.ErrNotPaired
	}
	if !n.sync.Synchronized() {
		return domain.ErrNotSynchronized
	}

	if n.cfg.SecurePayload {
		sealed, err := crypto.Seal(key, payload)
		if err != nil {
			return fmt.Errorf("seal payload: %w", err)
		}
		payload = sealed
	}
	return n.mux.Transmit(t, payload)
}

// Receive drains one chunked transfer from the transport and writes the
// reassembled payload into buf, returning its length. A corrupt chunk
// fails with ErrCorruptChunk; an incomplete transfer reports the missing
// sequence numbers.
func (n *Node) Receive(t domain.Transport, buf []byte) (int, error) {
	n.mu.Lock()
	paired := n.paired
	key := n.keys.Payload
	n.mu.Unlock()

	if !paired {
		return 0, domain.ErrNotPaired
	}
	if !n.sync.Synchronized() {
		return 0, domain.ErrNotSynchronized
	}

	n.demux.Reset()
	for {
		raw, err := t.ReadExact(mux.ChunkSize)
		if err != nil {
			if errors.Is(err, domain.ErrShortRead) {
				break
			}
			return 0, err
		}
		c := mux.DecodeChunk(raw)
		if c == nil {
			return 0, domain.ErrCorruptChunk
		}
		if err := n.demux.Receive(*c); err != nil {
			return 0, err
		}
	}

	if n.demux.HasGap() {
		return 0, fmt.Errorf("transfer incomplete, missing chunks %v", n.demux.Missing())
	}

	assembled := make([]byte, n.demux.Count()*mux.ChunkPayloadSize)
	size, err := n.demux.Reassemble(assembled)
	if err != nil {
		return 0, err
	}
	payload := assembled[:size]

	if n.cfg.SecurePayload {
		opened, err := crypto.Open(key, payload)
		if err != nil {
			return 0, fmt.Errorf("open payload: %w", err)
		}
		payload = opened
	}
	if len(payload) > len(buf) {
		return 0, domain.ErrBufferTooSmall
	}
	return copy(buf, payload), nil
}

// Reset erases the secret and all derived state, returning the node to
// its unpaired, unsynchronized (for slaves) starting point.
func (n *Node) Reset() {
	n.mu.Lock()
	crypto.Wipe(n.secret[:])
	crypto.Wipe(n.keys.BeaconAuth[:])
	crypto.Wipe(n.keys.Payload[:])
	n.schedule = nil
	n.paired = false
	n.mu.Unlock()

	n.sync.Reset()
	n.mux.Reset()
	n.demux.Reset()
}
