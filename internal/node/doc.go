// Package node assembles the link building blocks into a full endpoint.
//
// # Overview
//
// A Node binds together the pieces the lower packages provide: key
// exchange establishes a shared secret, the hop schedule and the link
// subkeys derive from that secret, the synchronizer keeps both ends on a
// shared clock, and the multiplexer moves payloads as CRC-protected
// chunks. Config carries the parameters both ends must agree on and can
// be loaded from YAML.
//
// # Flows
//
// Bring-up:
//
//  1. Pair a master and a slave over the transport; both ends derive the
//     same hop schedule and link subkeys from the exchanged secret.
//  2. The master emits authenticated beacons; the slave adopts them and
//     converges on the master's clock.
//
// Transfer:
//
//  1. The sender chunks the payload (sealing it first when SecurePayload
//     is on) and writes it in one transport transaction.
//  2. The receiver drains the chunks, rejects corruption, reports gaps
//     and reassembles the payload.
package node
