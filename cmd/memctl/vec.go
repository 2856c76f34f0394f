package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/mem/alloc"
	"github.com/joshuapare/memkit/mem/vec"
)

var (
	vecElemSize int
	vecReserve  int
)

func init() {
	rootCmd.AddCommand(newVecCmd())
}

func newVecCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vec <values...>",
		Short: "Push values into a vector and report its growth",
		Long: `The vec command pushes each value onto a fresh vector, one element per
argument, and prints the resulting length, capacity, contents and allocator
counters.

Example:
  memctl vec 10 20 30 40 50
  memctl vec --elem-size 8 --reserve 16 1 2 3
  memctl vec --alloc mmap --json 1 2 3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVec(args)
		},
	}
	cmd.Flags().IntVar(&vecElemSize, "elem-size", 4, "Element width in bytes (1, 2, 4 or 8)")
	cmd.Flags().IntVar(&vecReserve, "reserve", 0, "Reserve capacity before pushing")
	return cmd
}

type vecReport struct {
	ElemSize int         `json:"elem_size"`
	Len      int         `json:"len"`
	Cap      int         `json:"cap"`
	Values   []string    `json:"values"`
	Growth   []int       `json:"growth"`
	Stats    alloc.Stats `json:"stats"`
}

func runVec(args []string) error {
	a, err := newAllocator(allocKind, budget, history)
	if err != nil {
		return err
	}

	v, err := vec.New(a, vecElemSize)
	if err != nil {
		return fmt.Errorf("failed to create vector: %w", err)
	}
	defer v.Free()

	if vecReserve > 0 {
		printVerbose("Reserving %d elements\n", vecReserve)
		if err := v.Reserve(vecReserve); err != nil {
			return fmt.Errorf("failed to reserve %d elements: %w", vecReserve, err)
		}
	}

	var growth []int
	for _, arg := range args {
		x, err := encodeElement(arg, vecElemSize)
		if err != nil {
			return err
		}
		before := v.Cap()
		if err := v.Push(x); err != nil {
			return fmt.Errorf("failed to push %s: %w", arg, err)
		}
		if v.Cap() != before {
			growth = append(growth, v.Cap())
			printVerbose("Grew capacity %d -> %d\n", before, v.Cap())
		}
	}

	report := vecReport{
		ElemSize: v.ElemSize(),
		Len:      v.Len(),
		Cap:      v.Cap(),
		Values:   formatElements(v.Slice()),
		Growth:   growth,
		Stats:    a.Stats(),
	}

	if jsonOut {
		return printJSON(report)
	}

	printInfo("\nVector:\n")
	printInfo("  Element size: %d\n", report.ElemSize)
	printInfo("  Length: %d\n", report.Len)
	printInfo("  Capacity: %d\n", report.Cap)
	printInfo("  Values: %v\n", report.Values)
	printInfo("  Growth: %v\n", report.Growth)
	printStats(report.Stats)
	printHistory(a.History())
	return nil
}
