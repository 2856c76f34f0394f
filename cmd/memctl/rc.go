package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/mem/alloc"
	"github.com/joshuapare/memkit/mem/rc"
)

var rcShares int

func init() {
	rootCmd.AddCommand(newRcCmd())
}

func newRcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rc <value>",
		Short: "Share a reference-counted value and release every instance",
		Long: `The rc command boxes a 64-bit value, shares it --shares times, then frees
the instances in creation order. It reports the count after each step and the
point at which the value was released.

Example:
  memctl rc 42 --shares 3
  memctl rc 42 --shares 3 --verbose`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRc(args)
		},
	}
	cmd.Flags().IntVar(&rcShares, "shares", 1, "Number of extra instances to share")
	return cmd
}

type rcStep struct {
	Action   string `json:"action"`
	Count    int    `json:"count"`
	Released bool   `json:"released,omitempty"`
}

func runRc(args []string) error {
	x, err := encodeElement(args[0], 8)
	if err != nil {
		return err
	}
	if rcShares < 0 {
		return fmt.Errorf("--shares must not be negative")
	}

	a, err := newAllocator(allocKind, budget, history)
	if err != nil {
		return err
	}

	first, err := rc.New(a, x)
	if err != nil {
		return fmt.Errorf("failed to box value: %w", err)
	}
	steps := []rcStep{{Action: "new", Count: first.Count()}}

	instances := []*rc.Rc{first}
	for i := 0; i < rcShares; i++ {
		next, err := first.Share()
		if err != nil {
			return fmt.Errorf("failed to share: %w", err)
		}
		instances = append(instances, next)
		steps = append(steps, rcStep{Action: "share", Count: first.Count()})
	}

	for i, inst := range instances {
		released, err := inst.Free()
		if err != nil {
			return fmt.Errorf("failed to free instance %d: %w", i, err)
		}
		steps = append(steps, rcStep{Action: fmt.Sprintf("free #%d", i), Count: inst.Count(), Released: released})
	}

	if jsonOut {
		return printJSON(struct {
			Steps []rcStep    `json:"steps"`
			Stats alloc.Stats `json:"stats"`
		}{steps, a.Stats()})
	}

	printInfo("\nReference count:\n")
	for _, s := range steps {
		if s.Released {
			printInfo("  %-8s count=%d released\n", s.Action, s.Count)
			continue
		}
		printInfo("  %-8s count=%d\n", s.Action, s.Count)
	}
	printStats(a.Stats())
	printHistory(a.History())
	return nil
}
