package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/mem/bitmask"
)

var bitmaskBits int

func init() {
	rootCmd.AddCommand(newBitmaskCmd())
}

func newBitmaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bitmask <positions...>",
		Short: "Set bits in a bit mask and print it",
		Long: `The bitmask command allocates a mask of --bits bits, sets every listed
position and prints the mask from bit 0 upwards.

Example:
  memctl bitmask --bits 16 0 3 15`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBitmask(args)
		},
	}
	cmd.Flags().IntVar(&bitmaskBits, "bits", 64, "Number of bits in the mask")
	return cmd
}

func runBitmask(args []string) error {
	a, err := newAllocator(allocKind, budget, history)
	if err != nil {
		return err
	}

	m, err := bitmask.New(a, bitmaskBits)
	if err != nil {
		return fmt.Errorf("failed to create bit mask: %w", err)
	}
	defer m.Free()

	for _, arg := range args {
		pos, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid bit position %q: %w", arg, err)
		}
		if err := m.Set(pos, true); err != nil {
			return fmt.Errorf("failed to set bit %d: %w", pos, err)
		}
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"bits":  m.Len(),
			"set":   m.Count(),
			"mask":  m.String(),
			"stats": a.Stats(),
		})
	}

	printInfo("\nBit mask:\n")
	printInfo("  Bits: %d\n", m.Len())
	printInfo("  Set: %d\n", m.Count())
	printInfo("  Mask: %s\n", m.String())
	printStats(a.Stats())
	return nil
}
