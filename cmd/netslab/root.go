package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/hupe1980/netslab"
	"github.com/hupe1980/netslab/resource"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose     bool
	quiet       bool
	jsonOut     bool
	ioLimit     int64
	memoryLimit int64
)

var rootCmd = &cobra.Command{
	Use:   "netslab",
	Short: "Inspect gate-level netlists and manage design snapshots",
	Long: `netslab reads structural Verilog netlists into index-addressed tables,
reports statistics, checks connectivity and saves designs as snapshots in a
local directory, S3 or MinIO.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().Int64Var(&ioLimit, "io-limit", 0, "Snapshot IO limit in bytes per second (0 = unlimited)")
	rootCmd.PersistentFlags().Int64Var(&memoryLimit, "memory-limit", 0, "Memory budget in bytes for loading snapshots (0 = unlimited)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// logger returns a text logger on stderr, at debug level with --verbose.
func logger() *netslab.Logger {
	if quiet {
		return netslab.NoopLogger()
	}
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return netslab.NewTextLogger(level)
}

// controller returns a resource controller for the limit flags, or nil.
func controller() *resource.Controller {
	if ioLimit <= 0 && memoryLimit <= 0 {
		return nil
	}
	return resource.NewController(resource.Config{
		MemoryLimitBytes:   memoryLimit,
		IOLimitBytesPerSec: ioLimit,
	})
}

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
