package x509util

import (
	"crypto/x509/pkix"
	"encoding/asn1"
	"fmt"
)

// rawCertificate mirrors the outer Certificate SEQUENCE of RFC 5280.
// Only the signature algorithm is decoded.
type rawCertificate struct {
	TBSCertificate     asn1.RawValue
	SignatureAlgorithm pkix.AlgorithmIdentifier
	SignatureValue     asn1.BitString
}

// ExtractSignatureAlgorithmOID extracts the outer signature algorithm OID from
// a DER-encoded certificate. It is used when Go's x509 reports
// UnknownSignatureAlgorithm.
func ExtractSignatureAlgorithmOID(rawCert []byte) (asn1.ObjectIdentifier, error) {
	var cert rawCertificate
	rest, err := asn1.Unmarshal(rawCert, &cert)
	if err != nil {
		return nil, fmt.Errorf("failed to parse certificate: %w", err)
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("trailing data after certificate")
	}
	return cert.SignatureAlgorithm.Algorithm, nil
}

// algorithmNames maps signature algorithm OIDs Go does not name itself.
var algorithmNames = []struct {
	oid  asn1.ObjectIdentifier
	name string
}{
	{OIDSignatureECDSAWithSHA3_224, "ECDSA-SHA3-224"},
	{OIDSignatureECDSAWithSHA3_256, "ECDSA-SHA3-256"},
	{OIDSignatureECDSAWithSHA3_384, "ECDSA-SHA3-384"},
	{OIDSignatureECDSAWithSHA3_512, "ECDSA-SHA3-512"},
	{OIDSignatureRSAWithSHA3_224, "SHA3-224-RSA"},
	{OIDSignatureRSAWithSHA3_256, "SHA3-256-RSA"},
	{OIDSignatureRSAWithSHA3_384, "SHA3-384-RSA"},
	{OIDSignatureRSAWithSHA3_512, "SHA3-512-RSA"},
	{OIDSignatureEd448, "Ed448"},
	{OIDMLDSA44, "ML-DSA-44"},
	{OIDMLDSA65, "ML-DSA-65"},
	{OIDMLDSA87, "ML-DSA-87"},
}

// AlgorithmName returns a human-readable name for a signature algorithm OID,
// or the dotted OID when the algorithm is not known.
func AlgorithmName(oid asn1.ObjectIdentifier) string {
	for _, a := range algorithmNames {
		if OIDEqual(a.oid, oid) {
			return a.name
		}
	}
	return oid.String()
}

// FindExtension looks up an extension by OID. The boolean reports whether the
// extension is present.
func FindExtension(exts []pkix.Extension, oid asn1.ObjectIdentifier) (pkix.Extension, bool) {
	for _, ext := range exts {
		if ext.Id.Equal(oid) {
			return ext, true
		}
	}
	return pkix.Extension{}, false
}
