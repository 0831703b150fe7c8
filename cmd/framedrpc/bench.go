package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"framed-rpc/client"
)

var (
	benchIterations int
	benchPayload    int
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure call latency and throughput",
	Long: `Times repeated calls against a live server and prints per-case
latency statistics plus a small-payload throughput figure.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		return c.WithConnection(runBench)
	},
}

func init() {
	benchCmd.Flags().IntVar(&benchIterations, "iterations", 25, "timed iterations per test case")
	benchCmd.Flags().IntVar(&benchPayload, "throughput-calls", 1000, "calls for the throughput measurement")
	rootCmd.AddCommand(benchCmd)
}

type benchCase struct {
	label    string
	function string
	args     []any
}

func intRange(n int) []any {
	xs := make([]any, n)
	for i := range xs {
		xs[i] = i
	}
	return xs
}

func runBench(c *client.Client) error {
	// Warmup so connection setup cost does not skew the first case.
	for i := 0; i < 10; i++ {
		if _, err := c.Call("add", 1, 1); err != nil {
			return err
		}
	}

	cases := []benchCase{
		{"no args/results", "no_return", nil},
		{"1 arg/result", "is_positive", []any{5}},
		{"2 args/1 result", "add", []any{5, 10}},
		{"4-byte payload", "echo", []any{strings.Repeat("x", 4)}},
		{"40-byte payload", "echo", []any{strings.Repeat("x", 40)}},
		{"100-byte payload", "echo", []any{strings.Repeat("x", 100)}},
		{"1000-byte payload", "echo", []any{strings.Repeat("x", 1000)}},
		{"1 word array", "sum_array", []any{intRange(1)}},
		{"4 word array", "sum_array", []any{intRange(4)}},
		{"10 word array", "sum_array", []any{intRange(10)}},
		{"40 word array", "sum_array", []any{intRange(40)}},
		{"100 word array", "sum_array", []any{intRange(100)}},
	}

	fmt.Printf("%-22s %10s %12s %10s %10s\n", "Test case", "Min (ms)", "Median (ms)", "Avg (ms)", "Max (ms)")
	fmt.Println(strings.Repeat("-", 68))

	for _, bc := range cases {
		latencies := make([]float64, 0, benchIterations)
		for i := 0; i < benchIterations; i++ {
			start := time.Now()
			if _, err := c.Call(bc.function, bc.args...); err != nil {
				return fmt.Errorf("%s: %w", bc.function, err)
			}
			latencies = append(latencies, float64(time.Since(start).Microseconds())/1000)
		}
		min, median, avg, max := latencyStats(latencies)
		fmt.Printf("%-22s %10.3f %12.3f %10.3f %10.3f\n", bc.label, min, median, avg, max)
	}

	// Throughput: rapid small calls, counting verified results.
	start := time.Now()
	success := 0
	for i := 0; i < benchPayload; i++ {
		result, err := c.Call("add", i, i)
		if err != nil {
			continue
		}
		if n, ok := result.(float64); ok && int(n) == i*2 {
			success++
		}
	}
	elapsed := time.Since(start)
	fmt.Printf("\nThroughput: %d/%d calls in %.2fs (%.0f calls/s)\n",
		success, benchPayload, elapsed.Seconds(), float64(success)/elapsed.Seconds())
	return nil
}

func latencyStats(latencies []float64) (min, median, avg, max float64) {
	sorted := append([]float64(nil), latencies...)
	sort.Float64s(sorted)

	min = sorted[0]
	max = sorted[len(sorted)-1]
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		median = sorted[mid]
	}
	var sum float64
	for _, l := range sorted {
		sum += l
	}
	avg = sum / float64(len(sorted))
	return min, median, avg, max
}
