package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Officialstjp/STKeytab-sub001/internal/config"
	"github.com/Officialstjp/STKeytab-sub001/pkg/keytab"
)

// Exit codes, spec.md §6.
const (
	exitSuccess              = 0
	exitUsageError           = 2
	exitParseError           = 3
	exitDerivationError      = 4
	exitRiskNotAcknowledged  = 5
	exitIOError              = 6
	exitProtectionError      = 7
)

var (
	verbose   bool
	logFormat string
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:           "keytabctl",
	Short:         "Build, inspect, compare, merge, and protect Kerberos keytab files",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig()
		if err != nil {
			return err
		}
		cfg = loaded
		setupLogging()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json (overrides config)")
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	format := logFormat
	if format == "" {
		format = cfg.LogFormat
	}
	if format == "" {
		format = "text"
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func loadConfig() (config.Config, error) {
	path := config.DefaultPath()
	if path == "" || !config.FileExists(path) {
		return config.Default(), nil
	}
	return config.Load(path)
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps an error returned from the keytab engine (or a
// plain usage error from flag parsing/validation) to the CLI's stable
// exit code, per spec.md §6.
func exitCodeFor(err error) int {
	var ke *keytab.Error
	if e, ok := err.(*keytab.Error); ok {
		ke = e
	} else {
		return exitUsageError
	}

	switch ke.Kind {
	case keytab.ErrKindParse, keytab.ErrKindMalformedKeytab:
		return exitParseError
	case keytab.ErrKindUnsupportedEtype, keytab.ErrKindInvalidIterationCount,
		keytab.ErrKindDerivationFailed, keytab.ErrKindInvalidPrincipal,
		keytab.ErrKindKeyLengthMismatch:
		return exitDerivationError
	case keytab.ErrKindRiskNotAcknowledged:
		return exitRiskNotAcknowledged
	case keytab.ErrKindIO:
		return exitIOError
	case keytab.ErrKindProtectionError:
		return exitProtectionError
	case keytab.ErrKindMergeConflict:
		return exitParseError
	default:
		return exitUsageError
	}
}
