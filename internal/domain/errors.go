package domain

import "errors"

var (
	ErrTransportInactive    = errors.New("transport transaction not active")
	ErrEntropyUnavailable   = errors.New("entropy source unavailable")
	ErrNoKey                = errors.New("no key generated")
	ErrWeakKey              = errors.New("generated key failed weakness checks")
	ErrShortRead            = errors.New("fewer bytes available than requested")
	ErrIncompleteKey        = errors.New("incomplete key transfer")
	ErrCorruptChunk         = errors.New("chunk integrity check failed")
	ErrChannelsExhausted    = errors.New("no logical channels available")
	ErrBufferTooSmall       = errors.New("output buffer too small")
	ErrNotSynchronized      = errors.New("node not synchronized")
	ErrNotPaired            = errors.New("no shared key established")
	ErrRetryLimitExceeded   = errors.New("retransmission limit exceeded")
	ErrBeaconAuthentication = errors.New("beacon authentication failed")
)
