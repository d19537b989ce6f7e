package certinfo

import (
	"crypto/x509"
	"strings"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// Extractor decodes DER certificates into Records.
type Extractor struct {
	// Now returns the evaluation instant for DaysRemaining.
	Now func() time.Time
}

// NewExtractor creates an Extractor that evaluates expiry against the wall clock.
func NewExtractor() *Extractor {
	return &Extractor{Now: time.Now}
}

// Parse decodes a DER certificate. Host and Port are left empty; Inspector
// fills them in. Any failure is an *Error of KindDecode and no Record is returned.
func (e *Extractor) Parse(der []byte) (*Record, error) {
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, decodeError("failed to parse certificate: %w", err)
	}

	subject, err := FormatDN(cert.RawSubject)
	if err != nil {
		return nil, decodeError("failed to parse subject: %w", err)
	}
	issuer, err := FormatDN(cert.RawIssuer)
	if err != nil {
		return nil, decodeError("failed to parse issuer: %w", err)
	}

	fingerprint, err := Fingerprint(cert)
	if err != nil {
		return nil, decodeError("%w", err)
	}

	sans, err := DNSNames(cert)
	if err != nil {
		return nil, decodeError("%w", err)
	}

	now := time.Now
	if e.Now != nil {
		now = e.Now
	}

	notBefore := cert.NotBefore.UTC()
	notAfter := cert.NotAfter.UTC()

	return &Record{
		Subject:         subject,
		Issuer:          issuer,
		ValidFrom:       notBefore,
		ValidTo:         notAfter,
		DaysRemaining:   DaysRemaining(notAfter, now()),
		Serial:          strings.ToUpper(cert.SerialNumber.Text(16)),
		Fingerprint:     fingerprint,
		SubjectAltNames: sans,
	}, nil
}

// DaysRemaining returns the whole number of days from now until notAfter,
// rounded toward negative infinity: 23 hours left is 0, 1 hour past is -1.
// It works in Unix seconds so far-future dates do not overflow time.Duration.
func DaysRemaining(notAfter, now time.Time) int {
	secs := notAfter.Unix() - now.Unix()
	if notAfter.Nanosecond() < now.Nanosecond() {
		secs--
	}
	days := secs / secondsPerDay
	if secs%secondsPerDay < 0 {
		days--
	}
	return int(days)
}
