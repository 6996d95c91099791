package timesync

import (
	"encoding/binary"

	"fhsslink/internal/crypto"
)

const (
	// BeaconSentinel marks the first byte of every sync beacon.
	BeaconSentinel = 0xAA

	// BeaconSize is the encoded beacon length in bytes:
	// sentinel (1) + sequence (4) + timestamp (4) + CRC (2).
	BeaconSize = 11
)

// Beacon is a time announcement broadcast by the master node. Slaves use
// the embedded timestamp to re-anchor their shared clock.
type Beacon struct {
	Seq       uint32
	Timestamp uint32
}

// Encode serialises the beacon into its wire form. The CRC covers the
// sentinel, sequence and timestamp bytes.
func (b Beacon) Encode() []byte {
	buf := make([]byte, BeaconSize)
	buf[0] = BeaconSentinel
	binary.LittleEndian.PutUint32(buf[1:5], b.Seq)
	binary.LittleEndian.PutUint32(buf[5:9], b.Timestamp)
	binary.LittleEndian.PutUint16(buf[9:11], crypto.CRC16(buf[:9]))
	return buf
}

// DecodeBeacon parses a wire-format beacon. It returns nil if the input is
// not exactly BeaconSize bytes, the sentinel is wrong, or the CRC does not
// match.
func DecodeBeacon(raw []byte) *Beacon {
	if len(raw) != BeaconSize {
		return nil
	}
	if raw[0] != BeaconSentinel {
		return nil
	}
	if binary.LittleEndian.Uint16(raw[9:11]) != crypto.CRC16(raw[:9]) {
		return nil
	}
	return &Beacon{
		Seq:       binary.LittleEndian.Uint32(raw[1:5]),
		Timestamp: binary.LittleEndian.Uint32(raw[5:9]),
	}
}
