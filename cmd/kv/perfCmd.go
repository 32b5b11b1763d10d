package kv

import (
	"encoding/csv"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cornichon-db/cornichon/cmd/util"
	"github.com/cornichon-db/cornichon/lib/store"
	"github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	perfTestCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for database files",
		RunE:    runPerf,
		PreRunE: processPerfConfig,
	}
	perfKeyPrefix        = "__test"
	perfOps              = 10_000
	perfLargeValueSizeKB = 100
	perfKeySpread        = 100
	perfSkip             = make([]string, 0)
)

func init() {
	// add flags
	key := "skip"
	perfTestCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. set,get)"))
	key = "ops"
	perfTestCmd.Flags().Int(key, 10_000, util.WrapString("Number of operations to run per benchmark"))
	key = "large-value-size"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How large the value for the set-large test should be (in KB)"))
	key = "keys"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How many different keys to use for the tests"))
	key = "csv"
	perfTestCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	perfOps = viper.GetInt("ops")
	perfLargeValueSizeKB = viper.GetInt("large-value-size")
	perfKeySpread = viper.GetInt("keys")
	perfSkip = strings.Split(viper.GetString("skip"), ",")

	return nil
}

func runPerf(_ *cobra.Command, _ []string) error {

	fmt.Println("Performance testing tool for database files")

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Printf("Database:   %s\n", kvStore.Path())
	fmt.Printf("Serializer: %s\n", kvStore.Method())
	fmt.Printf("Policy:     %s\n", kvStore.Policy())
	fmt.Printf("Operations: %d\n", perfOps)
	fmt.Println()

	fmt.Println("starting tests...")

	// Create results map
	results := make(map[string]metrics.Timer)

	results["set"] = runBenchmark("set", func(timer metrics.Timer) {
		getKey, iter := getKeys("set")
		defer cleanupKeys("set", iter)

		for i := 0; i < perfOps; i++ {
			key := getKey(i)
			timer.Time(func() {
				if err := kvStore.Set(key, "test"); err != nil {
					log.Printf("(set) - error setting key: %v\n", err)
				}
			})
		}
	})
	printResult("set", results["set"])

	results["set-large"] = runBenchmark("set-large", func(timer metrics.Timer) {
		largeValue := strings.Repeat("x", perfLargeValueSizeKB*1024)

		getKey, iter := getKeys("set-large")
		defer cleanupKeys("set-large", iter)

		for i := 0; i < perfOps; i++ {
			key := getKey(i)
			timer.Time(func() {
				if err := kvStore.Set(key, largeValue); err != nil {
					log.Printf("(set-large) - error setting key: %v\n", err)
				}
			})
		}
	})
	printResult("set-large", results["set-large"])

	results["get"] = runBenchmark("get", func(timer metrics.Timer) {
		getKey, iter := getKeys("get")
		iter(func(k string) {
			if err := kvStore.Set(k, "test"); err != nil {
				log.Printf("(get) - error setting key: %v\n", err)
			}
		})
		defer cleanupKeys("get", iter)

		for i := 0; i < perfOps; i++ {
			key := getKey(i)
			timer.Time(func() {
				if _, err := store.Get[string](kvStore, key); err != nil {
					log.Printf("(get) - error getting key: %v\n", err)
				}
			})
		}
	})
	printResult("get", results["get"])

	results["has"] = runBenchmark("has", func(timer metrics.Timer) {
		getKey, iter := getKeys("has")
		iter(func(k string) {
			if err := kvStore.Set(k, "test"); err != nil {
				log.Printf("(has) - error setting key: %v\n", err)
			}
		})
		defer cleanupKeys("has", iter)

		for i := 0; i < perfOps; i++ {
			key := getKey(i)
			timer.Time(func() {
				kvStore.Exists(key)
			})
		}
	})
	printResult("has", results["has"])

	results["has-not"] = runBenchmark("has-not", func(timer metrics.Timer) {
		for i := 0; i < perfOps; i++ {
			key := fmt.Sprintf("%s/has-not-%d", perfKeyPrefix, i%perfKeySpread)
			timer.Time(func() {
				kvStore.Exists(key)
			})
		}
	})
	printResult("has-not", results["has-not"])

	results["delete"] = runBenchmark("delete", func(timer metrics.Timer) {
		getKey, iter := getKeys("delete")
		iter(func(k string) {
			if err := kvStore.Set(k, "test"); err != nil {
				log.Printf("(delete) - error setting key: %v\n", err)
			}
		})

		for i := 0; i < perfOps; i++ {
			key := getKey(i)
			timer.Time(func() {
				if _, err := kvStore.Remove(key); err != nil {
					log.Printf("(delete) - error deleting key: %v\n", err)
				}
			})
		}
	})
	printResult("delete", results["delete"])

	results["list-add"] = runBenchmark("list-add", func(timer metrics.Timer) {
		listKey := perfKeyPrefix + "-list-add"
		if _, err := kvStore.ListCreate(listKey); err != nil {
			log.Printf("(list-add) - error creating list: %v\n", err)
			return
		}
		defer func() {
			if _, err := kvStore.ListDelete(listKey); err != nil {
				log.Printf("(list-add) - error deleting list: %v\n", err)
			}
		}()

		for i := 0; i < perfOps; i++ {
			timer.Time(func() {
				if err := kvStore.ListAdd(listKey, i); err != nil {
					log.Printf("(list-add) - error adding element: %v\n", err)
				}
			})
		}
	})
	printResult("list-add", results["list-add"])

	results["list-get"] = runBenchmark("list-get", func(timer metrics.Timer) {
		listKey := perfKeyPrefix + "-list-get"
		if _, err := kvStore.ListCreate(listKey); err != nil {
			log.Printf("(list-get) - error creating list: %v\n", err)
			return
		}
		for i := 0; i < perfKeySpread; i++ {
			if err := kvStore.ListAdd(listKey, i); err != nil {
				log.Printf("(list-get) - error adding element: %v\n", err)
			}
		}
		defer func() {
			if _, err := kvStore.ListDelete(listKey); err != nil {
				log.Printf("(list-get) - error deleting list: %v\n", err)
			}
		}()

		for i := 0; i < perfOps; i++ {
			index := i % perfKeySpread
			timer.Time(func() {
				if _, err := store.ListGet[int](kvStore, listKey, index); err != nil {
					log.Printf("(list-get) - error getting element: %v\n", err)
				}
			})
		}
	})
	printResult("list-get", results["list-get"])

	results["mixed"] = runBenchmark("mixed", func(timer metrics.Timer) {
		getKey, iter := getKeys("mixed")
		iter(func(k string) {
			if err := kvStore.Set(k, "test"); err != nil {
				log.Printf("(mixed) - error setting key: %v\n", err)
			}
		})
		defer cleanupKeys("mixed", iter)

		for i := 0; i < perfOps; i++ {
			key := getKey(i)
			op := i % 4
			timer.Time(func() {
				var err error
				switch op {
				case 0: // set
					err = kvStore.Set(key, "test")
				case 1: // get
					_, err = store.Get[string](kvStore, key)
				case 2: // delete
					_, err = kvStore.Remove(key)
				case 3: // has
					kvStore.Exists(key)
				}

				if err != nil {
					log.Printf("(mixed) - error performing operation (%d): %v\n", op, err)
				}
			})
		}
	})
	printResult("mixed", results["mixed"])

	// Write results to csv if specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Printf("\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, results); err != nil {
			return fmt.Errorf("failed to export results to CSV: %v", err)
		}
		fmt.Println("Export complete")
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// runBenchmark runs a single benchmark with a fresh timer unless it is
// listed in the skip configuration
func runBenchmark(test string, fn func(timer metrics.Timer)) metrics.Timer {
	timer := metrics.NewTimer()
	if shouldSkip(test) {
		return timer
	}
	fn(timer)
	return timer
}

func shouldSkip(test string) bool {
	// Check if the test is in the skip list
	for _, skip := range perfSkip {
		if test == skip {
			return true
		}
	}
	return false
}

// creates an array of test keys and functions to work with them
func getKeys(prefix string) (func(int) string, func(func(string))) {
	keys := make([]string, perfKeySpread)
	for i := 0; i < perfKeySpread; i++ {
		keys[i] = fmt.Sprintf("%s-%s-%d", perfKeyPrefix, prefix, i)
	}

	// Function to get a key by index (with wraparound)
	getKey := func(i int) string {
		return keys[i%perfKeySpread]
	}

	// Function to iterate over all keys and apply a function to each
	iterateKeys := func(fn func(string)) {
		for _, key := range keys {
			fn(key)
		}
	}

	return getKey, iterateKeys
}

// cleanupKeys removes all keys a benchmark created
func cleanupKeys(test string, iter func(func(string))) {
	iter(func(k string) {
		if _, err := kvStore.Remove(k); err != nil {
			log.Printf("(%s) - error deleting key: %v\n", test, err)
		}
	})
}

// printResult prints the result of a benchmark test in a formatted way
func printResult(test string, timer metrics.Timer) {
	if timer.Count() == 0 {
		fmt.Printf("%-20sskipped\n", test)
		return
	}

	nsPerOp := math.Max(timer.Mean(), 1) // prevent division by zero
	opsPerSec := 1.0 / (nsPerOp / 1e9)

	// Print the formatted result
	fmt.Printf("%-20s%.0fns/op (%s/op)\tp99=%s\t%.0f ops/sec\n",
		test, nsPerOp, time.Duration(nsPerOp), time.Duration(timer.Percentile(0.99)), opsPerSec)
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, results map[string]metrics.Timer) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	header := []string{
		"Test", "Count", "NsPerOp", "DurationPerOp", "P95", "P99", "OpsPerSec", "Skipped",
		"Database", "Serializer", "Policy",
		"Operations", "LargeValueSizeKB", "Keys Count",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	// Write test results
	for test, timer := range results {
		var nsPerOp float64
		var opsPerSec float64
		var skipped string

		if timer.Count() == 0 {
			skipped = "true"
		} else {
			skipped = "false"
			nsPerOp = math.Max(timer.Mean(), 1)
			opsPerSec = 1.0 / (nsPerOp / 1e9)
		}

		row := []string{
			test,
			strconv.FormatInt(timer.Count(), 10),
			fmt.Sprintf("%.0f", nsPerOp),
			time.Duration(nsPerOp).String(),
			time.Duration(timer.Percentile(0.95)).String(),
			time.Duration(timer.Percentile(0.99)).String(),
			fmt.Sprintf("%.0f", opsPerSec),
			skipped,
			kvStore.Path(),
			kvStore.Method().String(),
			kvStore.Policy().String(),
			strconv.Itoa(perfOps),
			strconv.Itoa(perfLargeValueSizeKB),
			strconv.Itoa(perfKeySpread),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %v", test, err)
		}
	}

	return nil
}
