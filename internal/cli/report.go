// Package cli renders inspection results for the terminal.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/net/publicsuffix"

	"github.com/remiblancher/certinfo/pkg/certinfo"
)

const separator = "----------------------------------------"

// TextOptions controls RenderText.
type TextOptions struct {
	// Color enables ANSI coloring of the days-remaining value.
	Color bool

	// Now is the reference for the humanized expiry. Nil means time.Now.
	Now func() time.Time
}

// RenderText writes the human-readable report for rec.
func RenderText(w io.Writer, rec *certinfo.Record, opts TextOptions) error {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔐 Certificate Info for %s\n", net.JoinHostPort(rec.Host, fmt.Sprint(rec.Port)))
	fmt.Fprintln(&b, separator)
	fmt.Fprintf(&b, "📄 Subject:   %s\n", rec.Subject)
	fmt.Fprintf(&b, "🏢 Issuer:    %s\n", rec.Issuer)
	fmt.Fprintf(&b, "📅 Validity:  %s → %s\n", formatTime(rec.ValidFrom), formatTime(rec.ValidTo))

	days := Colorize(fmt.Sprintf("%d days", rec.DaysRemaining), DaysColor(rec.DaysRemaining), opts.Color)
	expiry := humanize.RelTime(rec.ValidTo, now(), "ago", "from now")
	fmt.Fprintf(&b, "⏰ Expires in: %s (%s)\n", days, expiry)

	fmt.Fprintf(&b, "🔢 Serial:    %s\n", rec.Serial)
	fmt.Fprintf(&b, "🔑 Fingerprint: %s\n", rec.Fingerprint)
	if domain, ok := RegistrableDomain(rec.Host); ok {
		fmt.Fprintf(&b, "🌍 Domain:    %s\n", domain)
	}

	fmt.Fprintln(&b, "🌐 Subject Alternative Names:")
	for _, san := range rec.SubjectAltNames {
		fmt.Fprintf(&b, "  - %s\n", san)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderJSON writes rec as a single JSON object indented by two spaces.
func RenderJSON(w io.Writer, rec *certinfo.Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(rec)
}

// RegistrableDomain returns the eTLD+1 of host. It reports false for IP
// addresses and names that have no registrable part (localhost, bare TLDs).
func RegistrableDomain(host string) (string, bool) {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	if host == "" || net.ParseIP(host) != nil {
		return "", false
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return "", false
	}
	return domain, true
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
