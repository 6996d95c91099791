// Package timesync keeps both ends of the hopping link on a shared clock.
//
// # Overview
//
// Frequency hopping only works when master and slave agree on what time it
// is: the active channel is a pure function of shared time, the hop
// interval and the hop schedule. The master's clock is authoritative and
// is advertised through periodic beacons; slaves adopt each beacon using a
// midpoint estimator that converges on the master's clock while absorbing
// one-way propagation delay.
//
// # Flows
//
// Master:
//
//  1. Anchor the shared clock on the local clock at construction.
//  2. Every beacon interval, emit a Beacon carrying the current shared
//     time and a monotonically increasing sequence number.
//
// Slave:
//
//  1. Start unsynchronized; shared time falls back to the local clock.
//  2. On each valid beacon, re-anchor at the midpoint between the beacon
//     timestamp and the local shared time.
//  3. Count missed beacons against a retry ceiling; crossing it drops the
//     link back to unsynchronized and surfaces a retry-exceeded status so
//     the caller can re-pair.
//
// Beacons are CRC-protected on the wire; a corrupt beacon decodes to nil
// and counts as missed.
package timesync
