package certinfo

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/x509"
	"encoding/asn1"
	"fmt"
	"hash"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/remiblancher/certinfo/internal/x509util"
)

// signatureHashes maps the signature algorithms Go recognises to the digest
// they sign over.
var signatureHashes = map[x509.SignatureAlgorithm]func() hash.Hash{
	x509.MD5WithRSA:       md5.New,
	x509.SHA1WithRSA:      sha1.New,
	x509.DSAWithSHA1:      sha1.New,
	x509.ECDSAWithSHA1:    sha1.New,
	x509.SHA256WithRSA:    sha256.New,
	x509.SHA256WithRSAPSS: sha256.New,
	x509.DSAWithSHA256:    sha256.New,
	x509.ECDSAWithSHA256:  sha256.New,
	x509.SHA384WithRSA:    sha512.New384,
	x509.SHA384WithRSAPSS: sha512.New384,
	x509.ECDSAWithSHA384:  sha512.New384,
	x509.SHA512WithRSA:    sha512.New,
	x509.SHA512WithRSAPSS: sha512.New,
	x509.ECDSAWithSHA512:  sha512.New,
}

// sha3Hashes covers SHA-3 based signatures, which Go reports as
// UnknownSignatureAlgorithm and which must be matched by OID.
var sha3Hashes = []struct {
	oid asn1.ObjectIdentifier
	new func() hash.Hash
}{
	{x509util.OIDSignatureECDSAWithSHA3_224, sha3.New224},
	{x509util.OIDSignatureECDSAWithSHA3_256, sha3.New256},
	{x509util.OIDSignatureECDSAWithSHA3_384, sha3.New384},
	{x509util.OIDSignatureECDSAWithSHA3_512, sha3.New512},
	{x509util.OIDSignatureRSAWithSHA3_224, sha3.New224},
	{x509util.OIDSignatureRSAWithSHA3_256, sha3.New256},
	{x509util.OIDSignatureRSAWithSHA3_384, sha3.New384},
	{x509util.OIDSignatureRSAWithSHA3_512, sha3.New512},
}

// SignatureHash returns a constructor for the digest used by the
// certificate's own signature algorithm. Algorithms that do not pre-hash
// (Ed25519, ML-DSA) or are not recognised return an error.
func SignatureHash(cert *x509.Certificate) (func() hash.Hash, error) {
	if h, ok := signatureHashes[cert.SignatureAlgorithm]; ok {
		return h, nil
	}
	if cert.SignatureAlgorithm != x509.UnknownSignatureAlgorithm {
		return nil, fmt.Errorf("signature algorithm %s has no fingerprint hash", cert.SignatureAlgorithm)
	}

	oid, err := x509util.ExtractSignatureAlgorithmOID(cert.Raw)
	if err != nil {
		return nil, err
	}
	for _, h := range sha3Hashes {
		if h.oid.Equal(oid) {
			return h.new, nil
		}
	}
	return nil, fmt.Errorf("signature algorithm %s has no fingerprint hash", x509util.AlgorithmName(oid))
}

// Fingerprint digests the DER encoding with the certificate's signature hash
// and renders it as colon-separated uppercase hex octets.
func Fingerprint(cert *x509.Certificate) (string, error) {
	newHash, err := SignatureHash(cert)
	if err != nil {
		return "", err
	}
	h := newHash()
	_, _ = h.Write(cert.Raw)
	return FormatHex(h.Sum(nil)), nil
}

// FormatHex renders bytes as "AA:BB:CC".
func FormatHex(data []byte) string {
	parts := make([]string, len(data))
	for i, b := range data {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(parts, ":")
}
