package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/joshuapare/memkit/mem/alloc"
	"github.com/joshuapare/memkit/mem/vec"
)

func init() {
	rootCmd.AddCommand(newRunCmd())
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <workload.yaml>",
		Short: "Replay a YAML workload of vector operations",
		Long: `The run command replays a list of vector operations from a YAML file
against a tracking allocator and reports the final vector and allocator
counters. Settings in the file override the global --alloc, --budget and
--history flags.

Workload format:
  elem_size: 4
  allocator: heap      # or mmap
  budget: 4096         # optional, bytes
  history: 64          # optional
  ops:
    - {op: push, value: 10}
    - {op: insert, value: 5, index: 0}
    - {op: reserve, n: 32}
    - {op: remove, index: 1}
    - {op: pop}
    - {op: resize, n: 8}
    - {op: shrink}
    - {op: clear}

Example:
  memctl run workload.yaml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkload(args)
		},
	}
	return cmd
}

// Workload is the YAML document accepted by the run command.
type Workload struct {
	ElemSize  int    `yaml:"elem_size"`
	Allocator string `yaml:"allocator"`
	Budget    int    `yaml:"budget"`
	History   int    `yaml:"history"`
	Ops       []Op   `yaml:"ops"`
}

// Op is one step of a workload.
type Op struct {
	Op    string `yaml:"op"`
	Value uint64 `yaml:"value"`
	Index int    `yaml:"index"`
	N     int    `yaml:"n"`
}

type workloadReport struct {
	Ops      int         `json:"ops"`
	Failed   int         `json:"failed"`
	Len      int         `json:"len"`
	Cap      int         `json:"cap"`
	Values   []string    `json:"values"`
	Stats    alloc.Stats `json:"stats"`
	Failures []string    `json:"failures,omitempty"`
}

func loadWorkload(path string) (*Workload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workload: %w", err)
	}
	wl := &Workload{ElemSize: 4, Allocator: allocKind, Budget: budget, History: history}
	if err := yaml.Unmarshal(data, wl); err != nil {
		return nil, fmt.Errorf("failed to parse workload: %w", err)
	}
	if len(wl.Ops) == 0 {
		return nil, errors.New("workload has no ops")
	}
	return wl, nil
}

// apply runs a single op. Ops that fail leave the vector unchanged, so the
// caller records the failure and keeps going.
func apply(v *vec.Vector, op Op) error {
	switch op.Op {
	case "push":
		x, err := encodeElement(strconv.FormatUint(op.Value, 10), v.ElemSize())
		if err != nil {
			return err
		}
		return v.Push(x)
	case "insert":
		x, err := encodeElement(strconv.FormatUint(op.Value, 10), v.ElemSize())
		if err != nil {
			return err
		}
		return v.Insert(x, op.Index)
	case "pop":
		if _, ok := v.Pop(); !ok {
			return errors.New("pop on empty vector")
		}
		return nil
	case "remove":
		return v.Remove(op.Index)
	case "swap_remove":
		return v.SwapRemove(op.Index)
	case "reserve":
		return v.Reserve(op.N)
	case "resize":
		return v.Resize(op.N)
	case "shrink":
		return v.Shrink()
	case "clear":
		v.Clear()
		return nil
	default:
		return fmt.Errorf("unknown op %q", op.Op)
	}
}

func runWorkload(args []string) error {
	wl, err := loadWorkload(args[0])
	if err != nil {
		return err
	}

	a, err := newAllocator(wl.Allocator, wl.Budget, wl.History)
	if err != nil {
		return err
	}
	v, err := vec.New(a, wl.ElemSize)
	if err != nil {
		return fmt.Errorf("failed to create vector: %w", err)
	}
	defer v.Free()

	report := workloadReport{Ops: len(wl.Ops)}
	for i, op := range wl.Ops {
		if err := apply(v, op); err != nil {
			report.Failed++
			report.Failures = append(report.Failures, fmt.Sprintf("#%d %s: %v", i, op.Op, err))
			printVerbose("op #%d %s failed: %v\n", i, op.Op, err)
			continue
		}
		printVerbose("op #%d %s: len=%d cap=%d\n", i, op.Op, v.Len(), v.Cap())
	}

	report.Len = v.Len()
	report.Cap = v.Cap()
	report.Values = formatElements(v.Slice())
	report.Stats = a.Stats()

	if jsonOut {
		return printJSON(report)
	}

	printInfo("\nWorkload: %s\n", args[0])
	printInfo("  Ops: %d (%d failed)\n", report.Ops, report.Failed)
	for _, f := range report.Failures {
		printInfo("    %s\n", f)
	}
	printInfo("  Length: %d\n", report.Len)
	printInfo("  Capacity: %d\n", report.Cap)
	printInfo("  Values: %v\n", report.Values)
	printStats(report.Stats)
	printHistory(a.History())
	return nil
}
