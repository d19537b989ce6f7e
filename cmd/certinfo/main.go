// Command certinfo prints the leaf certificate presented by a TLS server.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/remiblancher/certinfo/internal/audit"
	"github.com/remiblancher/certinfo/pkg/certinfo"
)

// Build-time variables (injected by GoReleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1  // connection, handshake, timeout, audit
	exitDecode  = 2  // certificate could not be decoded
	exitUsage   = 64 // bad arguments or configuration
)

// Global flags
var (
	configPath   string
	auditLogPath string
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the root command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if closeErr := audit.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close audit log: %w", closeErr)
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "❌ Error: %s\n", err)
		return exitCode(err)
	}
	return exitOK
}

// usageError marks an invocation that was malformed rather than one that failed.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func newUsageError(format string, args ...any) error {
	return usageError{fmt.Errorf(format, args...)}
}

func exitCode(err error) int {
	var ue usageError
	if errors.As(err, &ue) {
		return exitUsage
	}
	if certinfo.KindOf(err) == certinfo.KindDecode {
		return exitDecode
	}
	return exitFailure
}

var rootCmd = &cobra.Command{
	Use:   "certinfo <host> [port]",
	Short: "Show the TLS certificate presented by a server",
	Long: `certinfo connects to a TLS server, completes a verified handshake and prints
the leaf certificate the server presented: subject, issuer, validity, days
until expiry, serial number, fingerprint and DNS subject alternative names.

The connection is verified against the system trust store, or against the
PEM bundle given with --ca-file. A certificate that does not match the host
name fails the handshake.

Exit codes:
  0   success
  1   connection, handshake or timeout failure
  2   the certificate could not be decoded
  64  invalid arguments or configuration

Examples:
  # Inspect a public site on port 443
  certinfo example.com

  # Inspect a non-standard port and print JSON
  certinfo mail.example.com 8443 --json

  # Trust a private CA
  certinfo intranet.local --ca-file roots.pem`,
	Version:           fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	Args:              inspectArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRun,
	RunE:              runInspect,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to YAML config file (or set CERTINFO_CONFIG env var)")
	rootCmd.PersistentFlags().StringVar(&auditLogPath, "audit-log", "",
		"Path to audit log file (or set CERTINFO_AUDIT_LOG env var)")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(auditCmd)
}

// setupRun resolves settings and opens the audit log.
func setupRun(cmd *cobra.Command, args []string) error {
	if err := loadSettings(cmd); err != nil {
		return err
	}
	if settings.AuditLog != "" {
		if err := audit.InitFile(settings.AuditLog); err != nil {
			return fmt.Errorf("failed to initialize audit log: %w", err)
		}
	}
	return nil
}
