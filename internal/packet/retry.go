package packet

// RetryCounter bounds consecutive retransmission attempts on one link. It is
// shared infrastructure: synchronization uses it for failed beacon attempts,
// reception handlers for re-requested units.
type RetryCounter struct {
	Max   int
	count int
}

// Request records one retry. It returns StatusRetryExceeded once the count
// passes Max, signalling the caller to escalate instead of looping.
func (r *RetryCounter) Request() Status {
	r.count++
	if r.count > r.Max {
		return StatusRetryExceeded
	}
	return StatusOK
}

// Exceeded reports whether the ceiling has been passed.
func (r *RetryCounter) Exceeded() bool { return r.count > r.Max }

// Count returns consecutive retries since the last Reset.
func (r *RetryCounter) Count() int { return r.count }

// Reset clears the counter after a successful exchange.
func (r *RetryCounter) Reset() { r.count = 0 }
