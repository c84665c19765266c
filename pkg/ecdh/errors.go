package ecdh

import "errors"

// Common errors returned by the key-agreement library.
var (
	// ErrRandomSource means the random source failed to produce bytes.
	ErrRandomSource = errors.New("ecdh: random source failure")

	// ErrScalarOutOfRange means the bounded resampling loop exhausted its
	// attempts without drawing a scalar in [1, n-1]. This indicates a
	// defective random source, not bad luck.
	ErrScalarOutOfRange = errors.New("ecdh: scalar sampling exhausted")

	// ErrInvalidPeerPoint means the peer's public point is not a valid
	// point on the configured curve, or is the point at infinity.
	ErrInvalidPeerPoint = errors.New("ecdh: invalid peer public point")

	// ErrDegenerateSecret means the key agreement produced the identity
	// element. The result carries no secret and must not be used.
	ErrDegenerateSecret = errors.New("ecdh: degenerate shared secret")

	// ErrArithmetic means an underlying curve operation reported an
	// inconsistency. Treated as a fatal configuration problem.
	ErrArithmetic = errors.New("ecdh: curve arithmetic failure")

	// ErrBufferTooSmall means the destination buffer cannot hold the
	// serialized output. Nothing is written in that case.
	ErrBufferTooSmall = errors.New("ecdh: destination buffer too small")

	// ErrInvalidState means an operation was called out of order, e.g.
	// computing a shared secret before a key pair exists.
	ErrInvalidState = errors.New("ecdh: operation called out of order")

	// ErrUnknownCurve means a named-curve identifier is not registered.
	ErrUnknownCurve = errors.New("ecdh: unknown named curve")

	// ErrBadParams means received key-exchange parameters are malformed.
	ErrBadParams = errors.New("ecdh: malformed key exchange parameters")
)
