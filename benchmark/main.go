// Package main provides a performance benchmarking tool for the chessions CLI.
// It measures fetch and report times across players with differently sized
// archives, running each test multiple times, treating the first run against
// a cleared cache as cold and averaging the rest as warm, generating CSV
// output for performance analysis and documentation.
//
// Prerequisites:
// - chessions binary installed and available in PATH
// - Network access to the Chess.com API
//
// Usage: go run benchmark/main.go [username...]
//
//	username: one or more Chess.com usernames to benchmark (defaults below)
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (cold run and average of warm runs).
type BenchmarkResult struct {
	User     string
	Command  string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	Timeout  time.Duration
	WarmRuns int
	Users    []string
	CacheDir string
}

func main() {
	users := os.Args[1:]
	if len(users) == 0 {
		users = []string{"hikaru", "gothamchess", "annacramling"}
	}

	cacheDir, err := os.MkdirTemp("", "chessions-bench-*")
	if err != nil {
		fmt.Printf("Failed to create cache dir: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = os.RemoveAll(cacheDir) }()

	config := BenchmarkConfig{
		Timeout:  2 * time.Minute,
		WarmRuns: 3,
		Users:    users,
		CacheDir: cacheDir,
	}

	if err := checkPrerequisites(); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the chessions binary exists
func checkPrerequisites() error {
	if _, err := exec.LookPath("chessions"); err != nil {
		return fmt.Errorf("chessions binary not found in PATH")
	}
	return nil
}

// runBenchmarks executes all benchmark tests across configured users
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d users, %v timeout, %d warm runs\n",
		len(config.Users), config.Timeout, config.WarmRuns)

	for _, user := range config.Users {
		fmt.Printf("Benchmarking %s\n", user)

		// Week-long report exercises the month cache
		results = append(results, runBenchmarkSuite(config, user, "report", "--user", user, "--days", "7"))

		// Last-N walks months backward until satisfied
		results = append(results, runBenchmarkSuite(config, user, "last", "--user", user, "--last", "25"))
	}

	return results
}

// runBenchmarkSuite runs a cold pass against a cleared cache, then averages warm passes
func runBenchmarkSuite(config BenchmarkConfig, user, command string, args ...string) BenchmarkResult {
	fmt.Printf("Running %s benchmark for %s\n", command, user)

	args = append(args, "--cache-dir", config.CacheDir, "--color", "no")

	// Clear this user's cache so the first run is cold
	clearCmd := exec.Command("chessions", "cache", "clear", user, "--cache-dir", config.CacheDir)
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear cache: %v\nOutput: %s\n", err, string(output))
	}

	cold, err := timeRun(config.Timeout, args)
	if err != nil {
		fmt.Printf("Cold run failed for %s: %v\n", user, err)
		return BenchmarkResult{User: user, Command: command, ColdTime: "failed", WarmTime: "failed"}
	}

	var warmTotal time.Duration
	warmOK := 0
	for i := 0; i < config.WarmRuns; i++ {
		warm, err := timeRun(config.Timeout, args)
		if err != nil {
			fmt.Printf("Warm run failed for %s: %v\n", user, err)
			continue
		}
		warmTotal += warm
		warmOK++
	}

	warmTime := "failed"
	if warmOK > 0 {
		warmTime = (warmTotal / time.Duration(warmOK)).Round(time.Millisecond).String()
	}

	return BenchmarkResult{
		User:     user,
		Command:  command,
		ColdTime: cold.Round(time.Millisecond).String(),
		WarmTime: warmTime,
	}
}

// timeRun executes one chessions invocation and returns its wall time
func timeRun(timeout time.Duration, args []string) (time.Duration, error) {
	cmd := exec.Command("chessions", args...)
	cmd.Stdout = nil
	cmd.Stderr = nil

	start := time.Now()
	done := make(chan error, 1)
	if err := cmd.Start(); err != nil {
		return 0, err
	}
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		return time.Since(start), err
	case <-time.After(timeout):
		_ = cmd.Process.Kill()
		return 0, fmt.Errorf("timed out after %v", timeout)
	}
}

// saveResults writes benchmark results to a CSV file
func saveResults(results []BenchmarkResult) error {
	file, err := os.Create("benchmark_results.csv")
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"user", "command", "cold_time", "warm_time"}); err != nil {
		return err
	}
	for _, r := range results {
		if err := writer.Write([]string{r.User, r.Command, r.ColdTime, r.WarmTime}); err != nil {
			return err
		}
	}
	return nil
}

// printSummary prints a human-readable summary of all results
func printSummary(results []BenchmarkResult) {
	fmt.Printf("\n%s\n", strings.Repeat("=", 56))
	fmt.Printf("%-20s %-10s %-12s %-12s\n", "USER", "COMMAND", "COLD", "WARM")
	for _, r := range results {
		fmt.Printf("%-20s %-10s %-12s %-12s\n", r.User, r.Command, r.ColdTime, r.WarmTime)
	}
	fmt.Println("Results written to benchmark_results.csv")
}
