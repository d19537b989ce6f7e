package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/remiblancher/certinfo/internal/audit"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit log management",
	Long: `Commands for verifying and reading the inspection audit log.

Every inspection run with an audit log configured appends one event. Events
are chained with SHA-256 hashes, so edits, deletions and insertions are
detected by 'audit verify'.

Examples:
  # Verify audit log integrity
  certinfo audit verify --log /var/log/certinfo/audit.jsonl

  # Show last 10 events
  certinfo audit tail --log /var/log/certinfo/audit.jsonl -n 10`,
	// Reading the log must not open it for writing.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadSettings(cmd)
	},
}

var auditVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify audit log integrity",
	Long: `Verify the hash chain of an audit log file.

Each event contains:
  - hash_prev: hash of the previous event
  - hash: SHA-256 of this event's canonical JSON followed by hash_prev

The chain starts with hash_prev="sha256:genesis".`,
	Args: cobra.NoArgs,
	RunE: runAuditVerify,
}

var auditTailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Show recent audit events",
	Args:  cobra.NoArgs,
	RunE:  runAuditTail,
}

var (
	auditLogFile  string
	auditTailNum  int
	auditShowJSON bool
)

func init() {
	auditVerifyCmd.Flags().StringVar(&auditLogFile, "log", "", "Path to audit log file (default: configured audit log)")

	auditTailCmd.Flags().StringVar(&auditLogFile, "log", "", "Path to audit log file (default: configured audit log)")
	auditTailCmd.Flags().IntVarP(&auditTailNum, "num", "n", 10, "Number of events to show")
	auditTailCmd.Flags().BoolVar(&auditShowJSON, "json", false, "Output as JSON")

	auditCmd.AddCommand(auditVerifyCmd)
	auditCmd.AddCommand(auditTailCmd)
}

// auditLogTarget returns --log, falling back to the configured audit log.
func auditLogTarget() (string, error) {
	if auditLogFile != "" {
		return auditLogFile, nil
	}
	if settings != nil && settings.AuditLog != "" {
		return settings.AuditLog, nil
	}
	return "", newUsageError("no audit log given: use --log, --audit-log or CERTINFO_AUDIT_LOG")
}

func runAuditVerify(cmd *cobra.Command, args []string) error {
	path, err := auditLogTarget()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	_, _ = fmt.Fprintf(out, "Verifying audit log: %s\n\n", path)

	count, err := audit.VerifyChain(path)
	if err != nil {
		_, _ = fmt.Fprintln(out, "VERIFICATION FAILED")
		_, _ = fmt.Fprintf(out, "  Valid events: %d\n", count)
		_, _ = fmt.Fprintf(out, "  Error: %s\n", err)
		return fmt.Errorf("audit log verification failed: %w", err)
	}

	_, _ = fmt.Fprintln(out, "VERIFICATION PASSED")
	_, _ = fmt.Fprintf(out, "  Total events: %d\n", count)
	_, _ = fmt.Fprintln(out, "  Hash chain: VALID")
	return nil
}

func runAuditTail(cmd *cobra.Command, args []string) error {
	path, err := auditLogTarget()
	if err != nil {
		return err
	}
	if auditTailNum < 1 {
		return newUsageError("-n must be at least 1")
	}

	events, err := audit.ReadTail(path, auditTailNum)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if auditShowJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(events)
	}

	if len(events) == 0 {
		_, _ = fmt.Fprintln(out, "Audit log is empty")
		return nil
	}
	for _, e := range events {
		printEvent(out, e)
	}
	return nil
}

func printEvent(w io.Writer, e *audit.Event) {
	resultIcon := "✓"
	if e.Result == audit.ResultFailure {
		resultIcon = "✗"
	}

	_, _ = fmt.Fprintf(w, "[%s] %s %s\n", e.Timestamp, resultIcon, e.EventType)
	_, _ = fmt.Fprintf(w, "    Actor:    %s@%s\n", e.Actor.ID, e.Actor.Host)
	_, _ = fmt.Fprintf(w, "    Endpoint: %s:%d\n", e.Object.Host, e.Object.Port)

	if e.Object.Subject != "" {
		_, _ = fmt.Fprintf(w, "    Subject:  %s\n", e.Object.Subject)
	}
	if e.Object.Serial != "" {
		_, _ = fmt.Fprintf(w, "    Serial:   %s\n", e.Object.Serial)
	}
	if e.Context.DaysRemaining != nil {
		_, _ = fmt.Fprintf(w, "    Expires:  %d days\n", *e.Context.DaysRemaining)
	}
	if e.Context.Reason != "" {
		_, _ = fmt.Fprintf(w, "    Reason:   %s\n", e.Context.Reason)
	}

	_, _ = fmt.Fprintln(w)
}
