// Package keyexchange establishes the shared TRANSEC secret between a master
// and its slaves.
//
// # Overview
//
// The key-exchange primitive is a symmetric pre-shared-key transfer, not a
// public-key negotiation: the master pulls the secret from its entropy source
// and pushes the raw bytes to each slave over the pairing transport while the
// transaction signal is asserted. Both sides then hold bit-identical copies
// from which the hop schedule and link subkeys are derived.
//
// # Flows
//
// Master:
//  1. Generate pulls one byte per entropy word until the key is full,
//     rejecting known-weak results.
//  2. Transmit asserts the transaction signal, writes the key, and releases
//     the signal. Retransmitting produces byte-identical output.
//
// Slave:
//  1. Receive reads exactly the key length from the transport; a partial
//     transfer is never accepted as a complete key.
//  2. Reset wipes the stored key so nothing leaks into the next session.
package keyexchange
