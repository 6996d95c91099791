// Package hop derives channel-hopping schedules from a shared secret.
//
// Derivation is a pure function: master and slave compute the schedule
// independently and agree on hop order without ever exchanging the schedule
// itself. The secrecy of the sequence rests entirely on the secrecy of the
// key it is derived from.
package hop

import "fhsslink/internal/domain"

// Derive computes the standard-sized schedule for a shared secret.
// Identical secrets always yield identical schedules.
func Derive(secret domain.Secret) domain.Schedule {
	var s domain.Schedule
	copy(s[:], DeriveN(secret, domain.ScheduleLength, domain.ChannelCount))
	return s
}

// DeriveN computes a schedule of n entries, each reduced modulo channels:
// entry i is secret[i mod len(secret)] mod channels.
func DeriveN(secret domain.Secret, n, channels int) []uint8 {
	out := make([]uint8, n)
	for i := range out {
		out[i] = secret[i%domain.KeyLength] % uint8(channels)
	}
	return out
}
