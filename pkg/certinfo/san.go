package certinfo

import (
	"crypto/x509"
	"errors"

	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"

	"github.com/remiblancher/certinfo/internal/x509util"
)

// tagDNSName is GeneralName [2] IMPLICIT IA5String.
var tagDNSName = cbasn1.Tag(2).ContextSpecific()

// DNSNames returns the dNSName entries of the Subject Alternative Name
// extension in extension order. A certificate without the extension yields
// an empty, non-nil slice.
func DNSNames(cert *x509.Certificate) ([]string, error) {
	ext, ok := x509util.FindExtension(cert.Extensions, x509util.OIDExtSubjectAltName)
	if !ok {
		return []string{}, nil
	}
	return parseSANDNSNames(ext.Value)
}

// parseSANDNSNames walks a GeneralNames SEQUENCE and keeps only dNSName
// entries. IP addresses, emails, URIs and directory names are skipped.
func parseSANDNSNames(value []byte) ([]string, error) {
	input := cryptobyte.String(value)
	var seq cryptobyte.String
	if !input.ReadASN1(&seq, cbasn1.SEQUENCE) || !input.Empty() {
		return nil, errors.New("malformed subject alternative name extension")
	}

	names := []string{}
	for !seq.Empty() {
		var name cryptobyte.String
		var tag cbasn1.Tag
		if !seq.ReadAnyASN1(&name, &tag) {
			return nil, errors.New("malformed subject alternative name entry")
		}
		if tag == tagDNSName {
			names = append(names, string(name))
		}
	}
	return names, nil
}
