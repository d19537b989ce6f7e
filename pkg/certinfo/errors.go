package certinfo

import (
	"errors"
	"fmt"
	"net"
	"strconv"
)

// Kind classifies an inspection failure.
type Kind int

const (
	// KindConnection covers DNS resolution and TCP connect failures.
	KindConnection Kind = iota + 1
	// KindHandshake covers TLS negotiation failures (trust, name mismatch, protocol).
	KindHandshake
	// KindTimeout means the connection or handshake exceeded the bound.
	KindTimeout
	// KindDecode means the retrieved bytes are not a usable certificate.
	KindDecode
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "connection"
	case KindHandshake:
		return "handshake"
	case KindTimeout:
		return "timeout"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Sentinel errors, one per Kind.
// Use errors.Is() to check for these errors through the error chain.
var (
	// ErrConnection indicates the host could not be reached.
	ErrConnection = errors.New("connection failed")

	// ErrHandshake indicates the TLS handshake failed.
	ErrHandshake = errors.New("TLS handshake failed")

	// ErrTimeout indicates the connection timed out.
	ErrTimeout = errors.New("connection timed out")

	// ErrDecode indicates the certificate could not be decoded.
	ErrDecode = errors.New("certificate decode failed")
)

// Error is an inspection failure with its kind and target.
// It supports errors.Is() against the Kind sentinels and errors.As() for the cause.
type Error struct {
	Kind Kind
	Host string // empty for decode errors raised outside a fetch
	Port int
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Host != "" {
		addr := net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
		return fmt.Sprintf("%s %s: %v", e.Kind, addr, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func (k Kind) sentinel() error {
	switch k {
	case KindConnection:
		return ErrConnection
	case KindHandshake:
		return ErrHandshake
	case KindTimeout:
		return ErrTimeout
	case KindDecode:
		return ErrDecode
	default:
		return nil
	}
}

func newError(kind Kind, host string, port int, err error) *Error {
	return &Error{Kind: kind, Host: host, Port: port, Err: err}
}

func decodeError(format string, args ...any) *Error {
	return &Error{Kind: KindDecode, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the Kind of err, or 0 if err is not an inspection error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
