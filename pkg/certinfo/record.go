// Package certinfo fetches a server's leaf certificate over TLS and decodes
// it into a flat Record suitable for display or JSON output.
package certinfo

import "time"

// Record is the decoded view of a single leaf certificate.
// Field order is the JSON key order.
type Record struct {
	Subject         string    `json:"subject"`
	Issuer          string    `json:"issuer"`
	ValidFrom       time.Time `json:"valid_from"`
	ValidTo         time.Time `json:"valid_to"`
	DaysRemaining   int       `json:"days_remaining"`
	Serial          string    `json:"serial"`
	Fingerprint     string    `json:"fingerprint"`
	SubjectAltNames []string  `json:"subject_alt_names"`
	Host            string    `json:"host"`
	Port            int       `json:"port"`
}

