package identity

import "errors"

// ErrUnauthenticated signals that no credential was presented at all.
var ErrUnauthenticated = errors.New("missing credential")

// ErrInvalidToken signals a malformed, badly signed, or expired credential.
var ErrInvalidToken = errors.New("invalid or expired credential")
