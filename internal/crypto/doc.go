// Package crypto exposes the primitives used by the link core.
//
// Contents
//
//   - CRC-16 integrity codes for wire records (CRC16)
//   - Shannon-entropy and weak-key statistics for generated secrets
//     (Entropy, AllSame, RepeatingPattern, Weak)
//   - Link subkey derivation from the shared secret (LinkKeys)
//   - Beacon authentication tags (Tag, VerifyTag)
//   - Authenticated payload sealing (Seal, Open)
//   - Best-effort memory wiping for sensitive byte slices (Wipe)
//
// # Notes
//
// The CRC parameters (polynomial 0xA001, reflected, init 0xFFFF) are part of
// the wire contract shared with peer devices and must not change. Subkeys are
// derived with HKDF-SHA256 so the raw shared secret is never used directly as
// a MAC or cipher key.
package crypto
