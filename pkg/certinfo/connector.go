package certinfo

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"
)

// DefaultTimeout bounds dialing plus the TLS handshake.
const DefaultTimeout = 5 * time.Second

// DialFunc opens the underlying TCP connection.
type DialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// Connector retrieves the leaf certificate presented by a TLS server.
type Connector struct {
	// RootCAs is the trust store used to verify the server chain.
	// Nil selects the platform trust store.
	RootCAs *x509.CertPool

	// Timeout bounds dial and handshake together. Zero means DefaultTimeout.
	Timeout time.Duration

	// Dial opens the TCP connection. Nil uses a net.Dialer.
	Dial DialFunc
}

// NewConnector creates a Connector with the given trust store and timeout.
func NewConnector(roots *x509.CertPool, timeout time.Duration) *Connector {
	return &Connector{RootCAs: roots, Timeout: timeout}
}

// Fetch connects to host:port, performs a verified TLS handshake with
// ServerName set to host, and returns the DER encoding of the leaf certificate.
// The connection is always closed before Fetch returns.
func (c *Connector) Fetch(ctx context.Context, host string, port int) ([]byte, error) {
	if host == "" {
		return nil, newError(KindConnection, host, port, errors.New("empty host"))
	}
	if port < 1 || port > 65535 {
		return nil, newError(KindConnection, host, port, fmt.Errorf("invalid port %d", port))
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	dial := c.Dial
	if dial == nil {
		dial = (&net.Dialer{}).DialContext
	}

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	raw, err := dial(ctx, "tcp", addr)
	if err != nil {
		return nil, classify(ctx, KindConnection, host, port, err)
	}

	conn := tls.Client(raw, &tls.Config{
		ServerName: host,
		RootCAs:    c.RootCAs,
		MinVersion: tls.VersionTLS12,
	})
	defer func() { _ = conn.Close() }()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	if err := conn.HandshakeContext(ctx); err != nil {
		return nil, classify(ctx, KindHandshake, host, port, err)
	}

	certs := conn.ConnectionState().PeerCertificates
	if len(certs) == 0 {
		return nil, newError(KindHandshake, host, port, errors.New("server presented no certificate"))
	}

	der := make([]byte, len(certs[0].Raw))
	copy(der, certs[0].Raw)
	return der, nil
}

// classify turns a dial or handshake error into an *Error, promoting
// deadline expiry to KindTimeout.
func classify(ctx context.Context, kind Kind, host string, port int, err error) *Error {
	if isTimeout(ctx, err) {
		return newError(KindTimeout, host, port, err)
	}
	return newError(kind, host, port, err)
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
