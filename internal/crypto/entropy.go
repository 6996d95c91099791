package crypto

import "math"

// Entropy returns the Shannon entropy of data in bits per byte.
func Entropy(data []byte) float64 {
	if len(data) == 0 {
		return 0
	}
	var counts [256]int
	for _, b := range data {
		counts[b]++
	}
	var h float64
	n := float64(len(data))
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		h -= p * math.Log2(p)
	}
	return h
}

// AllSame reports whether every byte of data has the same value.
func AllSame(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	first := data[0]
	for _, b := range data[1:] {
		if b != first {
			return false
		}
	}
	return true
}

// RepeatingPattern reports whether data is a whole number of repetitions of a
// pattern no longer than maxPeriod bytes.
func RepeatingPattern(data []byte, maxPeriod int) bool {
	for period := 1; period <= maxPeriod && period < len(data); period++ {
		if len(data)%period != 0 {
			continue
		}
		match := true
		for i := period; i < len(data); i++ {
			if data[i] != data[i%period] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// weakPatternPeriod bounds the repeating-pattern scan for Weak.
const weakPatternPeriod = 4

// Weak reports whether key belongs to the known-weak set: all-identical bytes
// or a short repeating pattern.
func Weak(key []byte) bool {
	return AllSame(key) || RepeatingPattern(key, weakPatternPeriod)
}
