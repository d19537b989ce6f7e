package certinfo

import (
	"context"
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"math/big"
	"net"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// certOptions describes a certificate to generate.
type certOptions struct {
	subject   pkix.Name
	serial    *big.Int
	notBefore time.Time
	notAfter  time.Time
	dnsNames  []string
	ips       []net.IP
	emails    []string
	sigAlg    x509.SignatureAlgorithm
	isCA      bool
}

// defaults fills in unset fields.
func (o certOptions) defaults() certOptions {
	if o.subject.CommonName == "" && len(o.subject.Organization) == 0 {
		o.subject = pkix.Name{CommonName: "Test Certificate"}
	}
	if o.serial == nil {
		o.serial = big.NewInt(1)
	}
	if o.notBefore.IsZero() {
		o.notBefore = time.Now().Add(-1 * time.Hour)
	}
	if o.notAfter.IsZero() {
		o.notAfter = time.Now().Add(24 * time.Hour)
	}
	return o
}

// generateECDSAKey generates an ECDSA key on the given curve.
func generateECDSAKey(t *testing.T, curve elliptic.Curve) *ecdsa.PrivateKey {
	t.Helper()
	priv, err := ecdsa.GenerateKey(curve, rand.Reader)
	if err != nil {
		t.Fatalf("Failed to generate ECDSA key: %v", err)
	}
	return priv
}

// createCert signs a certificate built from opts with signer. When parent is
// nil the certificate is self-signed.
func createCert(t *testing.T, opts certOptions, pub crypto.PublicKey, parent *x509.Certificate, signer crypto.Signer) *x509.Certificate {
	t.Helper()
	opts = opts.defaults()

	template := &x509.Certificate{
		SerialNumber:          opts.serial,
		Subject:               opts.subject,
		NotBefore:             opts.notBefore,
		NotAfter:              opts.notAfter,
		DNSNames:              opts.dnsNames,
		IPAddresses:           opts.ips,
		EmailAddresses:        opts.emails,
		SignatureAlgorithm:    opts.sigAlg,
		BasicConstraintsValid: true,
		IsCA:                  opts.isCA,
	}
	if opts.isCA {
		template.KeyUsage = x509.KeyUsageCertSign | x509.KeyUsageCRLSign
	} else {
		template.KeyUsage = x509.KeyUsageDigitalSignature
		template.ExtKeyUsage = []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth}
	}

	if parent == nil {
		parent = template
	}

	der, err := x509.CreateCertificate(rand.Reader, template, parent, pub, signer)
	if err != nil {
		t.Fatalf("Failed to create certificate: %v", err)
	}

	cert, err := x509.ParseCertificate(der)
	if err != nil {
		t.Fatalf("Failed to parse certificate: %v", err)
	}
	return cert
}

// selfSignedCert creates a self-signed ECDSA P-256 certificate.
func selfSignedCert(t *testing.T, opts certOptions) *x509.Certificate {
	t.Helper()
	priv := generateECDSAKey(t, elliptic.P256())
	return createCert(t, opts, &priv.PublicKey, nil, priv)
}

// testPKI is a CA plus a server leaf usable by a TLS listener.
type testPKI struct {
	ca      *x509.Certificate
	leaf    *x509.Certificate
	leafKey crypto.Signer
	pool    *x509.CertPool
}

// newTestPKI issues a leaf for localhost/127.0.0.1 under a fresh CA signed
// with caKey.
func newTestPKI(t *testing.T, caPub crypto.PublicKey, caKey crypto.Signer) *testPKI {
	t.Helper()

	ca := createCert(t, certOptions{
		subject: pkix.Name{CommonName: "Test Root CA", Organization: []string{"Test Org"}},
		serial:  big.NewInt(100),
		isCA:    true,
	}, caPub, nil, caKey)

	leafKey := generateECDSAKey(t, elliptic.P256())
	leaf := createCert(t, certOptions{
		subject:  pkix.Name{CommonName: "localhost"},
		serial:   big.NewInt(0x1A2B3C),
		dnsNames: []string{"localhost", "www.localhost"},
		ips:      []net.IP{net.ParseIP("127.0.0.1")},
	}, &leafKey.PublicKey, ca, caKey)

	pool := x509.NewCertPool()
	pool.AddCert(ca)

	return &testPKI{ca: ca, leaf: leaf, leafKey: leafKey, pool: pool}
}

// newECDSAPKI creates a test PKI whose CA signs with ECDSA P-256.
func newECDSAPKI(t *testing.T) *testPKI {
	t.Helper()
	caKey := generateECDSAKey(t, elliptic.P256())
	return newTestPKI(t, &caKey.PublicKey, caKey)
}

// startTLSServer serves the PKI leaf on 127.0.0.1 and returns the port.
// Each accepted connection completes a handshake and is closed.
func startTLSServer(t *testing.T, pki *testPKI) int {
	t.Helper()

	cfg := &tls.Config{
		Certificates: []tls.Certificate{{
			Certificate: [][]byte{pki.leaf.Raw, pki.ca.Raw},
			PrivateKey:  pki.leafKey,
			Leaf:        pki.leaf,
		}},
	}

	ln, err := tls.Listen("tcp", "127.0.0.1:0", cfg)
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(c net.Conn) {
				defer func() { _ = c.Close() }()
				_ = c.SetDeadline(time.Now().Add(5 * time.Second))
				_ = c.(*tls.Conn).Handshake()
			}(conn)
		}
	}()

	return listenerPort(t, ln.Addr())
}

// startSilentServer accepts TCP connections and never answers.
func startSilentServer(t *testing.T) int {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}

	var mu sync.Mutex
	var held []net.Conn
	t.Cleanup(func() {
		_ = ln.Close()
		mu.Lock()
		defer mu.Unlock()
		for _, c := range held {
			_ = c.Close()
		}
	})

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			held = append(held, conn)
			mu.Unlock()
		}
	}()

	return listenerPort(t, ln.Addr())
}

// closedPort returns a port on 127.0.0.1 with nothing listening.
func closedPort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}
	port := listenerPort(t, ln.Addr())
	_ = ln.Close()
	return port
}

func listenerPort(t *testing.T, addr net.Addr) int {
	t.Helper()
	_, portStr, err := net.SplitHostPort(addr.String())
	if err != nil {
		t.Fatalf("Failed to split address: %v", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatalf("Failed to parse port: %v", err)
	}
	return port
}

// trackingConn records whether Close was called.
type trackingConn struct {
	net.Conn
	closed *atomic.Bool
}

func (c *trackingConn) Close() error {
	c.closed.Store(true)
	return c.Conn.Close()
}

// trackingDialer dials target regardless of the requested address and records
// whether the connection it handed out was closed.
func trackingDialer(target string) (DialFunc, *atomic.Bool) {
	closed := &atomic.Bool{}
	dial := func(ctx context.Context, network, _ string) (net.Conn, error) {
		var d net.Dialer
		conn, err := d.DialContext(ctx, network, target)
		if err != nil {
			return nil, err
		}
		return &trackingConn{Conn: conn, closed: closed}, nil
	}
	return dial, closed
}

// tbsCertificate mirrors RFC 5280 TBSCertificate closely enough to rewrite
// the signature algorithm.
type tbsCertificate struct {
	Version            int `asn1:"optional,explicit,default:0,tag:0"`
	SerialNumber       *big.Int
	SignatureAlgorithm pkix.AlgorithmIdentifier
	Issuer             asn1.RawValue
	Validity           asn1.RawValue
	Subject            asn1.RawValue
	PublicKey          asn1.RawValue
	Extensions         []pkix.Extension `asn1:"omitempty,optional,explicit,tag:3"`
}

type certificateSeq struct {
	TBSCertificate     asn1.RawValue
	SignatureAlgorithm pkix.AlgorithmIdentifier
	SignatureValue     asn1.BitString
}

// withSignatureOID re-encodes der with oid as both the inner and outer
// signature algorithm. The signature itself is left untouched, which is fine
// for parsing but not for verification.
func withSignatureOID(t *testing.T, der []byte, oid asn1.ObjectIdentifier) []byte {
	t.Helper()

	var outer certificateSeq
	if _, err := asn1.Unmarshal(der, &outer); err != nil {
		t.Fatalf("Failed to unmarshal certificate: %v", err)
	}
	var tbs tbsCertificate
	if _, err := asn1.Unmarshal(outer.TBSCertificate.FullBytes, &tbs); err != nil {
		t.Fatalf("Failed to unmarshal TBSCertificate: %v", err)
	}

	alg := pkix.AlgorithmIdentifier{Algorithm: oid}
	tbs.SignatureAlgorithm = alg
	tbsDER, err := asn1.Marshal(tbs)
	if err != nil {
		t.Fatalf("Failed to marshal TBSCertificate: %v", err)
	}

	outer.TBSCertificate = asn1.RawValue{FullBytes: tbsDER}
	outer.SignatureAlgorithm = alg
	out, err := asn1.Marshal(outer)
	if err != nil {
		t.Fatalf("Failed to marshal certificate: %v", err)
	}
	return out
}

// fixedClock returns a Now function pinned to ts.
func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func assertKind(t *testing.T, err error, want Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	if got := KindOf(err); got != want {
		t.Fatalf("expected %s error, got %s (%v)", want, got, err)
	}
}

// derTLV encodes a DER element with the given identifier octet.
func derTLV(tag byte, parts ...[]byte) []byte {
	var content []byte
	for _, p := range parts {
		content = append(content, p...)
	}

	out := []byte{tag}
	switch n := len(content); {
	case n < 0x80:
		out = append(out, byte(n))
	case n <= 0xff:
		out = append(out, 0x81, byte(n))
	default:
		out = append(out, 0x82, byte(n>>8), byte(n))
	}
	return append(out, content...)
}

// derATV encodes an AttributeTypeAndValue around an already encoded value.
func derATV(t *testing.T, oid asn1.ObjectIdentifier, value []byte) []byte {
	t.Helper()
	rawOID, err := asn1.Marshal(oid)
	if err != nil {
		t.Fatalf("Failed to marshal OID: %v", err)
	}
	return derTLV(0x30, rawOID, value)
}

// derName encodes a Name from RDNs given in encoding order, each RDN being
// a list of encoded AttributeTypeAndValues.
func derName(rdns ...[][]byte) []byte {
	var sets [][]byte
	for _, rdn := range rdns {
		sets = append(sets, derTLV(0x31, rdn...))
	}
	return derTLV(0x30, sets...)
}
