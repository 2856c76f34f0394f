package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/internal/snapshot"
	"github.com/joshuapare/memkit/mem/vec"
)

var dumpElemSize int

func init() {
	rootCmd.AddCommand(newDumpCmd())
	rootCmd.AddCommand(newLoadCmd())
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file> <values...>",
		Short: "Write a vector of values to a compressed snapshot",
		Long: `The dump command builds a vector from the given values and writes its live
elements to a zstd-compressed snapshot file.

Example:
  memctl dump out.mksn 1 2 3 4
  memctl dump --elem-size 8 out.mksn 18446744073709551615`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	cmd.Flags().IntVar(&dumpElemSize, "elem-size", 4, "Element width in bytes (1, 2, 4 or 8)")
	return cmd
}

func newLoadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load <file>",
		Short: "Load a snapshot into a vector and print it",
		Long: `The load command maps a snapshot file, decompresses it into a fresh vector
and prints the elements.

Example:
  memctl load out.mksn
  memctl load out.mksn --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(args)
		},
	}
	return cmd
}

func runDump(args []string) error {
	path := args[0]

	a, err := newAllocator(allocKind, budget, history)
	if err != nil {
		return err
	}
	v, err := vec.WithCapacity(a, dumpElemSize, len(args)-1)
	if err != nil {
		return fmt.Errorf("failed to create vector: %w", err)
	}
	defer v.Free()

	for _, arg := range args[1:] {
		x, err := encodeElement(arg, dumpElemSize)
		if err != nil {
			return err
		}
		if err := v.Push(x); err != nil {
			return fmt.Errorf("failed to push %s: %w", arg, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := snapshot.Write(f, v); err != nil {
		f.Close()
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	printInfo("Wrote %d elements of %d bytes to %s\n", v.Len(), v.ElemSize(), path)
	return nil
}

func runLoad(args []string) error {
	path := args[0]

	a, err := newAllocator(allocKind, budget, history)
	if err != nil {
		return err
	}

	printVerbose("Loading snapshot: %s\n", path)
	v, err := snapshot.Load(a, path)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}
	defer v.Free()

	if jsonOut {
		return printJSON(map[string]interface{}{
			"elem_size": v.ElemSize(),
			"len":       v.Len(),
			"values":    formatElements(v.Slice()),
		})
	}

	printInfo("\nSnapshot: %s\n", path)
	printInfo("  Element size: %d\n", v.ElemSize())
	printInfo("  Length: %d\n", v.Len())
	printInfo("  Values: %v\n", formatElements(v.Slice()))
	return nil
}
