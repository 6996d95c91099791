package domain

// KeyLength is the size of the shared link secret in bytes.
const KeyLength = 32

// Secret is the pre-shared TRANSEC key both ends of a link hold. A master
// generates it once per session; slaves receive a bit-identical copy over the
// pairing transport. It is wiped on session reset.
type Secret [KeyLength]byte

func (s Secret) Slice() []byte { return s[:] }

// IsZero reports whether the secret is still the all-zero placeholder.
func (s Secret) IsZero() bool {
	var zero Secret
	return s == zero
}

const (
	// ScheduleLength is the number of entries in a derived hop schedule.
	ScheduleLength = 10

	// ChannelCount bounds every schedule entry: values fall in [0, ChannelCount).
	ChannelCount = 100
)

// Schedule is the ordered sequence of channel indices a synchronized link
// follows. Both ends derive it independently from the shared secret; it is
// never sent over the air.
type Schedule [ScheduleLength]uint8

func (s Schedule) Slice() []byte { return s[:] }

// Role selects master or slave behaviour for a node.
type Role uint8

const (
	RoleMaster Role = iota
	RoleSlave
)

func (r Role) String() string {
	if r == RoleMaster {
		return "master"
	}
	return "slave"
}

// Chunk is one bounded fragment of a multiplexed payload. Immutable once
// created; the CRC covers the payload bytes only.
type Chunk struct {
	Payload []byte
	Channel uint8
	Seq     uint32
	CRC     uint16
}
