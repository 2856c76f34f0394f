package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult represents a parsed benchmark result.
type BenchmarkResult struct {
	Name        string
	Operation   string
	Size        string
	Impl        string // "memkit" or "builtin"
	Iterations  int
	NsPerOp     float64
	BytesPerOp  int64
	AllocsPerOp int64
}

// ComparisonResult represents a comparison between memkit and the builtin
// baseline for one operation and size.
type ComparisonResult struct {
	Operation     string
	Size          string
	MemkitNs      float64
	BuiltinNs     float64
	Ratio         float64
	MemkitMem     int64
	BuiltinMem    int64
	MemkitAllocs  int64
	BuiltinAllocs int64
	MemkitOnly    bool
}

var (
	inputFile = flag.String(
		"input",
		"",
		"Input file with benchmark output (stdin if not specified)",
	)
	outputFile = flag.String("output", "", "Output markdown file (stdout if not specified)")
	quiet      = flag.Bool("quiet", false, "Suppress progress output")
)

// benchmarkRegex matches lines such as
// BenchmarkPush/memkit/small-8    10000    12450 ns/op    4096 B/op    8 allocs/op
var benchmarkRegex = regexp.MustCompile(
	`^(Benchmark\S+)\s+(\d+)\s+([\d.]+)\s+ns/op(?:\s+([\d.]+)\s+(?:B|MB)/op)?(?:\s+([\d.]+)\s+allocs/op)?`,
)

func main() {
	flag.Parse()

	var scanner *bufio.Scanner
	var inputF *os.File
	if *inputFile != "" {
		f, err := os.Open(*inputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening input file: %v\n", err)
			os.Exit(1)
		}
		inputF = f
		scanner = bufio.NewScanner(f)
	} else {
		scanner = bufio.NewScanner(os.Stdin)
	}

	results := parseBenchmarks(scanner)
	if inputF != nil {
		inputF.Close()
	}

	if !*quiet {
		fmt.Fprintf(os.Stderr, "Parsed %d benchmark results\n", len(results))
	}

	comparisons := generateComparisons(results)

	if !*quiet {
		fmt.Fprintf(os.Stderr, "Generated %d comparisons\n", len(comparisons))
	}

	report := generateMarkdownReport(comparisons, time.Now())

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(report), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		if !*quiet {
			fmt.Fprintf(os.Stderr, "Report written to %s\n", *outputFile)
		}
		return
	}
	fmt.Fprint(os.Stdout, report)
}

func parseBenchmarks(scanner *bufio.Scanner) []BenchmarkResult {
	var results []BenchmarkResult

	for scanner.Scan() {
		line := scanner.Text()

		// Lines from go test -json carry the text in Output
		var testEvent map[string]any
		if err := json.Unmarshal([]byte(line), &testEvent); err == nil {
			if output, ok := testEvent["Output"].(string); ok {
				line = output
			}
		}

		matches := benchmarkRegex.FindStringSubmatch(strings.TrimSpace(line))
		if matches == nil {
			continue
		}

		name := matches[1]
		iterations, _ := strconv.Atoi(matches[2])
		nsPerOp, _ := strconv.ParseFloat(matches[3], 64)

		var bytesPerOp, allocsPerOp int64
		if matches[4] != "" {
			bytesPerOp, _ = strconv.ParseInt(matches[4], 10, 64)
		}
		if matches[5] != "" {
			allocsPerOp, _ = strconv.ParseInt(matches[5], 10, 64)
		}

		operation, impl, size := splitName(name)
		if operation == "" {
			continue
		}
		results = append(results, BenchmarkResult{
			Name:        name,
			Operation:   operation,
			Size:        size,
			Impl:        impl,
			Iterations:  iterations,
			NsPerOp:     nsPerOp,
			BytesPerOp:  bytesPerOp,
			AllocsPerOp: allocsPerOp,
		})
	}

	return results
}

// splitName breaks a benchmark name into operation, implementation and size.
//
//	BenchmarkPush/memkit/small-8        -> Push, memkit, small
//	BenchmarkPushMmap_Memkit/large-8    -> PushMmap, memkit, large
func splitName(name string) (operation, impl, size string) {
	parts := strings.Split(name, "/")
	first := strings.TrimPrefix(parts[0], "Benchmark")

	last := parts[len(parts)-1]
	if dashIdx := strings.LastIndex(last, "-"); dashIdx > 0 {
		last = last[:dashIdx]
	}

	switch len(parts) {
	case 1:
		return "", "", ""
	case 2:
		// memkit-only: the variant suffix names the implementation
		if idx := strings.Index(first, "_"); idx > 0 {
			first = first[:idx]
		}
		return first, "memkit", last
	default:
		return first, parts[1], last
	}
}

func generateComparisons(results []BenchmarkResult) []ComparisonResult {
	type key struct {
		operation string
		size      string
	}

	grouped := make(map[key]map[string]BenchmarkResult)
	for _, result := range results {
		k := key{result.Operation, result.Size}
		if grouped[k] == nil {
			grouped[k] = make(map[string]BenchmarkResult)
		}
		grouped[k][result.Impl] = result
	}

	var comparisons []ComparisonResult
	for k, impls := range grouped {
		memkit, hasMemkit := impls["memkit"]
		if !hasMemkit {
			continue
		}
		comp := ComparisonResult{
			Operation:    k.operation,
			Size:         k.size,
			MemkitNs:     memkit.NsPerOp,
			MemkitMem:    memkit.BytesPerOp,
			MemkitAllocs: memkit.AllocsPerOp,
			MemkitOnly:   true,
		}
		if builtin, ok := impls["builtin"]; ok && memkit.NsPerOp > 0 {
			comp.BuiltinNs = builtin.NsPerOp
			comp.BuiltinMem = builtin.BytesPerOp
			comp.BuiltinAllocs = builtin.AllocsPerOp
			comp.Ratio = builtin.NsPerOp / memkit.NsPerOp
			comp.MemkitOnly = false
		}
		comparisons = append(comparisons, comp)
	}

	sort.Slice(comparisons, func(i, j int) bool {
		if comparisons[i].Operation != comparisons[j].Operation {
			return comparisons[i].Operation < comparisons[j].Operation
		}
		return sizeRank(comparisons[i].Size) < sizeRank(comparisons[j].Size)
	})

	return comparisons
}

func sizeRank(size string) int {
	switch size {
	case "small":
		return 0
	case "medium":
		return 1
	case "large":
		return 2
	default:
		return 3
	}
}

func generateMarkdownReport(comparisons []ComparisonResult, now time.Time) string {
	var sb strings.Builder

	sb.WriteString("# Benchmark Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format("2006-01-02 15:04:05")))

	memkitFaster, builtinFaster, memkitOnly := 0, 0, 0
	totalRatio := 0.0
	for _, comp := range comparisons {
		switch {
		case comp.MemkitOnly:
			memkitOnly++
			continue
		case comp.Ratio > 1.0:
			memkitFaster++
		case comp.Ratio < 1.0:
			builtinFaster++
		}
		totalRatio += comp.Ratio
	}

	comparableCount := len(comparisons) - memkitOnly
	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Total benchmarks**: %d\n", len(comparisons)))
	sb.WriteString(fmt.Sprintf("- **Comparable** (with builtin baseline): %d\n", comparableCount))
	if comparableCount > 0 {
		sb.WriteString(fmt.Sprintf("  - memkit faster: %d (%.1f%%)\n",
			memkitFaster, float64(memkitFaster)/float64(comparableCount)*100))
		sb.WriteString(fmt.Sprintf("  - builtin faster: %d (%.1f%%)\n",
			builtinFaster, float64(builtinFaster)/float64(comparableCount)*100))
		sb.WriteString(fmt.Sprintf("  - Average ratio: **%.2fx**\n", totalRatio/float64(comparableCount)))
	}
	sb.WriteString(fmt.Sprintf("- **memkit-only**: %d\n\n", memkitOnly))

	sb.WriteString("## Detailed Results\n\n")
	sb.WriteString("| Operation | Size | memkit (ns/op) | builtin (ns/op) | Ratio | Memory (B/op) | Allocs |\n")
	sb.WriteString("|-----------|------|----------------|-----------------|-------|---------------|--------|\n")

	for _, comp := range comparisons {
		if comp.MemkitOnly {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | *N/A* | *memkit only* | %s | %s |\n",
				comp.Operation,
				comp.Size,
				formatNumber(comp.MemkitNs),
				formatBytes(comp.MemkitMem),
				formatNumber(float64(comp.MemkitAllocs)),
			))
			continue
		}

		indicator := "✓"
		style := "**"
		if comp.Ratio < 1.0 {
			indicator = "✗"
			style = ""
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s%.2fx%s %s | %s vs %s | %s vs %s |\n",
			comp.Operation,
			comp.Size,
			formatNumber(comp.MemkitNs),
			formatNumber(comp.BuiltinNs),
			style,
			comp.Ratio,
			style,
			indicator,
			formatBytes(comp.MemkitMem),
			formatBytes(comp.BuiltinMem),
			formatNumber(float64(comp.MemkitAllocs)),
			formatNumber(float64(comp.BuiltinAllocs)),
		))
	}

	sb.WriteString("\n## Notes\n\n")
	sb.WriteString("- **Ratio > 1.0**: memkit is faster ✓\n")
	sb.WriteString("- **Ratio < 1.0**: the builtin baseline is faster ✗\n")
	sb.WriteString("- **Memory and allocations** count only Go heap use; memkit blocks from\n")
	sb.WriteString("  the mmap allocator do not show up in B/op\n")

	return sb.String()
}

func formatNumber(n float64) string {
	if n >= 1000000 {
		return fmt.Sprintf("%.2fM", n/1000000)
	} else if n >= 1000 {
		return fmt.Sprintf("%.1fK", n/1000)
	}
	return fmt.Sprintf("%.0f", n)
}

func formatBytes(b int64) string {
	if b >= 1024*1024 {
		return fmt.Sprintf("%.2fMB", float64(b)/(1024*1024))
	} else if b >= 1024 {
		return fmt.Sprintf("%.1fKB", float64(b)/1024)
	}
	return fmt.Sprintf("%dB", b)
}
