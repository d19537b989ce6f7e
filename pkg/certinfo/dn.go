package certinfo

import (
	"encoding/asn1"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"

	"github.com/remiblancher/certinfo/internal/x509util"
)

// attributeNames lists the short names RFC 4514 section 3 defines.
var attributeNames = []struct {
	oid  asn1.ObjectIdentifier
	name string
}{
	{x509util.OIDAttrCommonName, "CN"},
	{x509util.OIDAttrLocality, "L"},
	{x509util.OIDAttrProvince, "ST"},
	{x509util.OIDAttrOrganization, "O"},
	{x509util.OIDAttrOrganizationalUnit, "OU"},
	{x509util.OIDAttrCountry, "C"},
	{x509util.OIDAttrStreetAddress, "STREET"},
	{x509util.OIDAttrDomainComponent, "DC"},
	{x509util.OIDAttrUserID, "UID"},
}

// String types cryptobyte/asn1 has no constant for.
const (
	tagNumericString   = cbasn1.Tag(18)
	tagVisibleString   = cbasn1.Tag(26)
	tagUniversalString = cbasn1.Tag(28)
	tagBMPString       = cbasn1.Tag(30)
)

// FormatDN renders a DER-encoded Name as an RFC 4514 string: most specific
// RDN first, RDNs joined by ',' and multi-valued RDNs by '+'.
func FormatDN(raw []byte) (string, error) {
	input := cryptobyte.String(raw)
	var seq cryptobyte.String
	if !input.ReadASN1(&seq, cbasn1.SEQUENCE) {
		return "", errors.New("malformed name")
	}
	if !input.Empty() {
		return "", errors.New("trailing data after name")
	}

	var rdns []string
	for !seq.Empty() {
		var set cryptobyte.String
		if !seq.ReadASN1(&set, cbasn1.SET) {
			return "", errors.New("malformed relative distinguished name")
		}

		var attrs []string
		for !set.Empty() {
			s, err := readAttribute(&set)
			if err != nil {
				return "", err
			}
			attrs = append(attrs, s)
		}
		if len(attrs) == 0 {
			return "", errors.New("empty relative distinguished name")
		}
		rdns = append(rdns, strings.Join(attrs, "+"))
	}

	for i, j := 0, len(rdns)-1; i < j; i, j = i+1, j-1 {
		rdns[i], rdns[j] = rdns[j], rdns[i]
	}
	return strings.Join(rdns, ","), nil
}

// readAttribute consumes one AttributeTypeAndValue and renders it as
// type=value. Types without a short name, and short-name types whose value is
// not a string, use dotted-decimal form with the value's DER encoding as
// '#'-prefixed hex (RFC 4514 section 2.4).
func readAttribute(set *cryptobyte.String) (string, error) {
	var atv cryptobyte.String
	var oid asn1.ObjectIdentifier
	if !set.ReadASN1(&atv, cbasn1.SEQUENCE) || !atv.ReadASN1ObjectIdentifier(&oid) {
		return "", errors.New("malformed attribute")
	}

	element := atv
	var content cryptobyte.String
	var tag cbasn1.Tag
	if !atv.ReadAnyASN1(&content, &tag) || !atv.Empty() {
		return "", fmt.Errorf("attribute %s: malformed value", oid)
	}

	for _, a := range attributeNames {
		if !a.oid.Equal(oid) {
			continue
		}
		s, ok, err := decodeString(tag, content)
		if err != nil {
			return "", fmt.Errorf("attribute %s: %w", a.name, err)
		}
		if ok {
			return a.name + "=" + escapeDNValue(s), nil
		}
		break
	}

	return oid.String() + "=#" + hex.EncodeToString(element), nil
}

// decodeString converts a DirectoryString-style value to UTF-8. ok is false
// when tag is not a string type.
func decodeString(tag cbasn1.Tag, b []byte) (s string, ok bool, err error) {
	switch tag {
	case cbasn1.UTF8String:
		if !utf8.Valid(b) {
			return "", true, errors.New("invalid UTF8String")
		}
		return string(b), true, nil
	case cbasn1.PrintableString, cbasn1.IA5String, tagNumericString, tagVisibleString:
		return string(b), true, nil
	case cbasn1.T61String:
		// Treated as Latin-1.
		r := make([]rune, len(b))
		for i, c := range b {
			r[i] = rune(c)
		}
		return string(r), true, nil
	case tagBMPString:
		if len(b)%2 != 0 {
			return "", true, errors.New("invalid BMPString length")
		}
		u := make([]uint16, len(b)/2)
		for i := range u {
			u[i] = binary.BigEndian.Uint16(b[2*i:])
		}
		return string(utf16.Decode(u)), true, nil
	case tagUniversalString:
		if len(b)%4 != 0 {
			return "", true, errors.New("invalid UniversalString length")
		}
		r := make([]rune, len(b)/4)
		for i := range r {
			r[i] = rune(binary.BigEndian.Uint32(b[4*i:]))
			if !utf8.ValidRune(r[i]) {
				return "", true, errors.New("invalid UniversalString character")
			}
		}
		return string(r), true, nil
	}
	return "", false, nil
}

// escapeDNValue applies the RFC 4514 section 2.4 escaping rules.
func escapeDNValue(s string) string {
	var b strings.Builder
	last := len(s) - 1
	for i, r := range s {
		switch {
		case r == ',' || r == '+' || r == '"' || r == '\\' || r == '<' || r == '>' || r == ';':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == ' ' && (i == 0 || i == last):
			b.WriteString("\\ ")
		case r == '#' && i == 0:
			b.WriteString("\\#")
		case r == 0:
			b.WriteString("\\00")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
