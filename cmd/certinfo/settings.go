package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/remiblancher/certinfo/internal/cli"
	"github.com/remiblancher/certinfo/internal/config"
	"github.com/remiblancher/certinfo/pkg/certinfo"
)

// settings is the effective configuration for the running command.
var settings *config.Config

// loadSettings applies flags over environment over config file over defaults.
func loadSettings(cmd *cobra.Command) error {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return usageError{err}
	}

	flags := cmd.Flags()
	if flags.Changed("audit-log") {
		cfg.AuditLog = auditLogPath
	}
	if flags.Lookup("timeout") != nil && flags.Changed("timeout") {
		cfg.Timeout = inspectTimeout
	}
	if flags.Lookup("ca-file") != nil && flags.Changed("ca-file") {
		cfg.CAFile = inspectCAFile
	}
	if flags.Lookup("no-color") != nil && inspectNoColor {
		cfg.Color = false
	}
	if cmd == serveCmd {
		if flags.Changed("host") {
			cfg.Serve.Host = serveHost
		}
		if flags.Changed("port") {
			cfg.Serve.Port = servePort
		}
	}

	if err := cfg.Validate(); err != nil {
		return usageError{err}
	}

	settings = cfg
	return nil
}

// newInspector builds the pipeline from the effective settings.
func newInspector(cfg *config.Config) (*certinfo.Inspector, error) {
	pool, err := cli.LoadCertPool(cfg.CAFile)
	if err != nil {
		return nil, usageError{err}
	}
	return certinfo.NewInspector(certinfo.NewConnector(pool, cfg.Timeout), certinfo.NewExtractor()), nil
}

// colorEnabled reports whether ANSI colors should be written to out.
func colorEnabled(cfg *config.Config, out io.Writer) bool {
	if !cfg.Color || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
