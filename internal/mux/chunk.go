package mux

import (
	"encoding/binary"

	"fhsslink/internal/crypto"
	"fhsslink/internal/domain"
)

const (
	// ChunkPayloadSize is the maximum payload carried by one chunk.
	ChunkPayloadSize = 32

	// ChunkSize is the encoded chunk length in bytes:
	// channel (1) + length (1) + sequence (4) + payload (32) + CRC (2).
	ChunkSize = 40
)

// EncodeChunk serialises a chunk into its wire form. Payloads shorter than
// ChunkPayloadSize are zero padded; the CRC covers only the live payload
// bytes, so padding never influences it.
func EncodeChunk(c domain.Chunk) []byte {
	buf := make([]byte, ChunkSize)
	buf[0] = c.Channel
	buf[1] = uint8(len(c.Payload))
	binary.LittleEndian.PutUint32(buf[2:6], c.Seq)
	copy(buf[6:6+ChunkPayloadSize], c.Payload)
	binary.LittleEndian.PutUint16(buf[38:40], c.CRC)
	return buf
}

// DecodeChunk parses a wire-format chunk. It returns nil if the input is
// not exactly ChunkSize bytes or the length byte exceeds the payload
// capacity. The CRC is carried through unverified; Demultiplexer.Receive
// is the integrity gate.
func DecodeChunk(raw []byte) *domain.Chunk {
	if len(raw) != ChunkSize {
		return nil
	}
	length := int(raw[1])
	if length > ChunkPayloadSize {
		return nil
	}
	payload := make([]byte, length)
	copy(payload, raw[6:6+length])
	return &domain.Chunk{
		Channel: raw[0],
		Seq:     binary.LittleEndian.Uint32(raw[2:6]),
		Payload: payload,
		CRC:     binary.LittleEndian.Uint16(raw[38:40]),
	}
}

// ChunkCRC computes the integrity checksum for a chunk payload.
func ChunkCRC(payload []byte) uint16 {
	return crypto.CRC16(payload)
}
