package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/internal/logger"
	"github.com/joshuapare/memkit/mem/alloc"
)

var (
	// Global flags
	verbose   bool
	quiet     bool
	jsonOut   bool
	noColor   bool
	allocKind string
	budget    int
	history   int
)

var rootCmd = &cobra.Command{
	Use:   "memctl",
	Short: "Exercise and inspect memkit collections",
	Long: `memctl drives the memkit allocator and collection core from the command
line. It builds vectors, bit masks and reference-counted boxes under an
instrumented allocator and reports what the allocator saw.`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logger.Options{
			Enabled: verbose && !quiet,
			Level:   slog.LevelDebug,
			JSON:    jsonOut,
			NoColor: noColor,
		})
	},
	SilenceUsage: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().
		StringVar(&allocKind, "alloc", "heap", "Backing allocator: heap or mmap")
	rootCmd.PersistentFlags().
		IntVar(&budget, "budget", 0, "Fail allocations beyond this many bytes (0 = unlimited)")
	rootCmd.PersistentFlags().
		IntVar(&history, "history", 32, "Allocator events to keep for reporting")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newAllocator builds the allocator stack selected by the global flags:
// a Tracking allocator over an optional budget over heap or mmap.
func newAllocator(kind string, budget, history int) (*alloc.Tracking, error) {
	var base alloc.Allocator
	switch kind {
	case "", "heap":
		base = alloc.Default()
	case "mmap":
		base = alloc.NewMmap()
	default:
		return nil, fmt.Errorf("unknown allocator %q (want heap or mmap)", kind)
	}
	if budget > 0 {
		base = alloc.NewLimited(base, budget)
	}
	logger.L.Debug("allocator ready", "kind", kind, "budget", budget, "history", history)
	return alloc.NewTracking(base, history), nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// printStats prints allocator counters in the text layout shared by commands.
func printStats(st alloc.Stats) {
	printInfo("Allocator:\n")
	printInfo("  Allocs: %d  Reallocs: %d (moved %d)  Frees: %d\n", st.Allocs, st.Reallocs, st.Moves, st.Frees)
	printInfo("  Live: %d blocks, %d bytes  Peak: %d bytes\n", st.LiveBlocks, st.LiveBytes, st.PeakBytes)
	if st.Failures > 0 || st.Violations > 0 {
		printInfo("  Failures: %d  Violations: %d\n", st.Failures, st.Violations)
	}
}

// printHistory prints recorded allocator events when verbose.
func printHistory(events []alloc.Event) {
	for _, ev := range events {
		if ev.Err != nil {
			printVerbose("  %-12s size=%-6d addr=%#x err=%v\n", ev.Op, ev.Size, ev.Addr, ev.Err)
			continue
		}
		printVerbose("  %-12s size=%-6d addr=%#x\n", ev.Op, ev.Size, ev.Addr)
	}
}
