package auth

import "errors"

// Token and session verification failures. The Session Resolver collapses
// every token-level kind into ErrUnauthenticated before it reaches handlers
// or the route gate; ErrInactive and ErrNotFound surface only from the
// live-lookup path.
var (
	ErrMalformed        = errors.New("token malformed")
	ErrInvalidSignature = errors.New("token signature invalid")
	ErrExpired          = errors.New("token expired")
	ErrWrongTokenKind   = errors.New("wrong token kind")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrNotFound         = errors.New("identity not found")
	ErrInactive         = errors.New("identity inactive")
)
