package main

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/remiblancher/certinfo/internal/audit"
	"github.com/remiblancher/certinfo/internal/cli"
	"github.com/remiblancher/certinfo/pkg/certinfo"
)

// Inspect flags
var (
	inspectJSON    bool
	inspectTimeout time.Duration
	inspectCAFile  string
	inspectNoColor bool
)

func init() {
	rootCmd.Flags().BoolVar(&inspectJSON, "json", false, "Output as JSON")
	rootCmd.Flags().DurationVar(&inspectTimeout, "timeout", certinfo.DefaultTimeout, "Connection and handshake timeout")
	rootCmd.Flags().StringVar(&inspectCAFile, "ca-file", "", "PEM file of trusted roots (default: system roots)")
	rootCmd.Flags().BoolVar(&inspectNoColor, "no-color", false, "Disable colored output")
}

func inspectArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.RangeArgs(1, 2)(cmd, args); err != nil {
		return usageError{err}
	}
	if args[0] == "" {
		return newUsageError("host must not be empty")
	}
	if len(args) == 2 {
		if _, err := parsePort(args[1]); err != nil {
			return err
		}
	}
	return nil
}

func parsePort(s string) (int, error) {
	port, err := strconv.Atoi(s)
	if err != nil || port < 1 || port > 65535 {
		return 0, newUsageError("invalid port %q: must be an integer between 1 and 65535", s)
	}
	return port, nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	host := args[0]
	port := settings.Port
	if len(args) == 2 {
		port, _ = parsePort(args[1])
	}

	insp, err := newInspector(settings)
	if err != nil {
		return err
	}

	rec, err := insp.Inspect(cmd.Context(), host, port)
	if auditErr := audit.LogInspection("cli", host, port, rec, err); auditErr != nil && err == nil {
		return auditErr
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if inspectJSON {
		return cli.RenderJSON(out, rec)
	}
	return cli.RenderText(out, rec, cli.TextOptions{Color: colorEnabled(settings, out)})
}
