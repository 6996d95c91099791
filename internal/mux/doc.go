// Package mux splits payloads into CRC-protected chunks for transfer over
// the hopping link and reassembles them on the far side.
//
// # Overview
//
// The link moves data in windows of at most 32 bytes. The Multiplexer
// owns a pool of 16 logical channels and a running sequence counter:
// every chunk it creates records the channel it was built on, its
// position in the stream and a CRC over its live payload bytes. The
// Demultiplexer accepts chunks in any order, rejects corrupt ones at
// reception and restores the original payload by sequence number, so a
// reordered but complete stream reassembles cleanly while a true loss
// shows up as a sequence gap.
//
// # Flows
//
// Sender:
//
//  1. Split the payload into 32-byte windows, claiming a pool channel
//     per window.
//  2. Encode each chunk and write it inside one transport transaction.
//
// Receiver:
//
//  1. Decode and Receive each chunk; CRC failures are dropped with
//     ErrCorruptChunk.
//  2. Check HasGap (and Missing for specifics) to decide whether a
//     retransmission is needed.
//  3. Reassemble into a caller-supplied buffer once the stream is
//     complete.
package mux
