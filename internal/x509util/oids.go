// Package x509util provides OID definitions and low-level helpers for
// reading fields that Go's crypto/x509 does not expose or does not recognise.
package x509util

import (
	"encoding/asn1"
)

// Standard X.509 extension OIDs.
var (
	// Subject Alternative Name extension
	OIDExtSubjectAltName = asn1.ObjectIdentifier{2, 5, 29, 17}

	// Key Usage extension
	OIDExtKeyUsage = asn1.ObjectIdentifier{2, 5, 29, 15}

	// Basic Constraints extension
	OIDExtBasicConstraints = asn1.ObjectIdentifier{2, 5, 29, 19}
)

// Distinguished name attribute OIDs, keyed for RFC 4514 rendering.
var (
	OIDAttrCommonName         = asn1.ObjectIdentifier{2, 5, 4, 3}
	OIDAttrCountry            = asn1.ObjectIdentifier{2, 5, 4, 6}
	OIDAttrLocality           = asn1.ObjectIdentifier{2, 5, 4, 7}
	OIDAttrProvince           = asn1.ObjectIdentifier{2, 5, 4, 8}
	OIDAttrStreetAddress      = asn1.ObjectIdentifier{2, 5, 4, 9}
	OIDAttrOrganization       = asn1.ObjectIdentifier{2, 5, 4, 10}
	OIDAttrOrganizationalUnit = asn1.ObjectIdentifier{2, 5, 4, 11}
	OIDAttrDomainComponent    = asn1.ObjectIdentifier{0, 9, 2342, 19200300, 100, 1, 25}
	OIDAttrUserID             = asn1.ObjectIdentifier{0, 9, 2342, 19200300, 100, 1, 1}
)

// Signature Algorithm OIDs (classical).
var (
	// ECDSA with SHA-256
	OIDSignatureECDSAWithSHA256 = asn1.ObjectIdentifier{1, 2, 840, 10045, 4, 3, 2}
	// ECDSA with SHA-384
	OIDSignatureECDSAWithSHA384 = asn1.ObjectIdentifier{1, 2, 840, 10045, 4, 3, 3}
	// ECDSA with SHA-512
	OIDSignatureECDSAWithSHA512 = asn1.ObjectIdentifier{1, 2, 840, 10045, 4, 3, 4}

	// Ed25519
	OIDSignatureEd25519 = asn1.ObjectIdentifier{1, 3, 101, 112}
	// Ed448
	OIDSignatureEd448 = asn1.ObjectIdentifier{1, 3, 101, 113}

	// RSA with SHA-256
	OIDSignatureRSAWithSHA256 = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 11}
	// RSA with SHA-384
	OIDSignatureRSAWithSHA384 = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 12}
	// RSA with SHA-512
	OIDSignatureRSAWithSHA512 = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 13}
)

// Signature Algorithm OIDs using SHA-3 (NIST CSOR arc 2.16.840.1.101.3.4.3).
// Go's x509 parser reports these as UnknownSignatureAlgorithm.
var (
	OIDSignatureECDSAWithSHA3_224 = asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 3, 9}
	OIDSignatureECDSAWithSHA3_256 = asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 3, 10}
	OIDSignatureECDSAWithSHA3_384 = asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 3, 11}
	OIDSignatureECDSAWithSHA3_512 = asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 3, 12}

	OIDSignatureRSAWithSHA3_224 = asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 3, 13}
	OIDSignatureRSAWithSHA3_256 = asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 3, 14}
	OIDSignatureRSAWithSHA3_384 = asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 3, 15}
	OIDSignatureRSAWithSHA3_512 = asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 3, 16}
)

// Post-Quantum signature OIDs (NIST FIPS 204).
var (
	OIDMLDSA44 = asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 3, 17}
	OIDMLDSA65 = asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 3, 18}
	OIDMLDSA87 = asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 3, 19}
)

// OIDEqual compares two OIDs for equality.
func OIDEqual(a, b asn1.ObjectIdentifier) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
