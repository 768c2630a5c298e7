package main

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/slotkit/internal/logger"
	"github.com/joshuapare/slotkit/slotmap"
)

var (
	churnOps         int
	churnMax         int
	churnSeed        int64
	churnRemoveRatio float64
	churnStaleRatio  float64
)

func init() {
	cmd := newChurnCmd()
	cmd.Flags().IntVar(&churnOps, "ops", 1_000_000, "Number of operations to run")
	cmd.Flags().IntVar(&churnMax, "max", 0, "Maximum live objects (0 = unbounded)")
	cmd.Flags().Int64Var(&churnSeed, "seed", 1, "Random seed")
	cmd.Flags().Float64Var(&churnRemoveRatio, "remove-ratio", 0.45, "Fraction of operations that remove a live object")
	cmd.Flags().Float64Var(&churnStaleRatio, "stale-ratio", 0.05, "Fraction of operations that probe a removed handle")
	rootCmd.AddCommand(cmd)
}

func newChurnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "churn",
		Short: "Run a randomized create/remove workload",
		Long: `The churn command drives an allocator with a seeded random mix of creates,
removes and stale-handle probes, then reports allocator statistics, throughput
and peak memory.

Example:
  slotctl churn --ops 5000000 --max 65536
  slotctl churn --remove-ratio 0.5 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChurn()
		},
	}
	return cmd
}

type churnPayload struct {
	id   int
	data [8]uint64
}

// ChurnReport is the result of a churn run.
type ChurnReport struct {
	Ops          int           `json:"ops"`
	Seed         int64         `json:"seed"`
	Elapsed      time.Duration `json:"elapsed_ns"`
	StaleHits    int           `json:"stale_hits"` // stale probes that wrongly succeeded; always 0
	Stats        slotmap.Stats `json:"stats"`
	PeakRSSBytes int64         `json:"peak_rss_bytes,omitempty"`
}

func runChurn() error {
	if churnOps < 0 {
		return errors.New("--ops must not be negative")
	}
	if churnMax < 0 {
		return errors.New("--max must not be negative")
	}
	if churnRemoveRatio < 0 || churnStaleRatio < 0 || churnRemoveRatio+churnStaleRatio > 1 {
		return errors.New("--remove-ratio and --stale-ratio must be non-negative and sum to at most 1")
	}

	printVerbose("Running %d ops (seed %d, max %d)\n", churnOps, churnSeed, churnMax)

	rep, err := churn(churnOps, churnMax, churnSeed, churnRemoveRatio, churnStaleRatio)
	if err != nil {
		return err
	}
	if rss, ok := peakRSS(); ok {
		rep.PeakRSSBytes = rss
	}

	if jsonOut {
		return printJSON(rep)
	}
	printChurnReport(rep)
	return nil
}

// churn runs the workload. Live handles are kept in a slice for O(1) random
// removal; removed handles go to a bounded ring used for stale probes.
func churn(ops, maxLive int, seed int64, removeRatio, staleRatio float64) (*ChurnReport, error) {
	const deadRing = 1024

	rng := rand.New(rand.NewSource(seed))
	a := slotmap.New(&slotmap.Options[churnPayload]{MaxCapacity: maxLive, Logger: logger.L})

	live := make([]slotmap.Handle, 0, 1024)
	dead := make([]slotmap.Handle, 0, deadRing)
	rep := &ChurnReport{Ops: ops, Seed: seed}

	start := time.Now()
	for i := range ops {
		r := rng.Float64()
		switch {
		case r < removeRatio && len(live) > 0:
			j := rng.Intn(len(live))
			h := live[j]
			live[j] = live[len(live)-1]
			live = live[:len(live)-1]
			if err := a.Remove(h); err != nil {
				return nil, fmt.Errorf("op %d: remove %s: %w", i, h, err)
			}
			if len(dead) < deadRing {
				dead = append(dead, h)
			} else {
				dead[rng.Intn(deadRing)] = h
			}

		case r < removeRatio+staleRatio && len(dead) > 0:
			h := dead[rng.Intn(len(dead))]
			if a.Contains(h) {
				rep.StaleHits++
			}

		default:
			h, err := a.Insert(churnPayload{id: i, data: [8]uint64{uint64(i)}})
			if errors.Is(err, slotmap.ErrCapacityExceeded) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("op %d: insert: %w", i, err)
			}
			live = append(live, h)
		}
	}
	rep.Elapsed = time.Since(start)
	rep.Stats = a.Stats()

	if rep.StaleHits > 0 {
		return rep, fmt.Errorf("%d stale handle(s) resolved to live objects", rep.StaleHits)
	}
	return rep, nil
}

func printChurnReport(rep *ChurnReport) {
	p := message.NewPrinter(language.English)
	st := rep.Stats

	printInfo("Churn Report (seed %d)\n", rep.Seed)
	printInfo("%s\n", p.Sprintf("  Operations: %d in %v", rep.Ops, rep.Elapsed.Round(time.Microsecond)))
	if secs := rep.Elapsed.Seconds(); secs > 0 {
		printInfo("%s\n", p.Sprintf("  Throughput: %.0f ops/s", float64(rep.Ops)/secs))
	}
	printInfo("\nAllocator:\n")
	printInfo("%s\n", p.Sprintf("  Creates: %d (%d reused, %d appended)", st.Creates, st.Reused, st.Appended))
	printInfo("%s\n", p.Sprintf("  Removes: %d", st.Removes))
	printInfo("%s\n", p.Sprintf("  Capacity rejects: %d", st.CapacityRejects))
	printInfo("%s\n", p.Sprintf("  Live: %d / Free: %d / Slots: %d", st.Live, st.Free, st.Slots))
	if st.Creates > 0 {
		printInfo("  Reuse rate: %.1f%%\n", float64(st.Reused)*100/float64(st.Creates))
	}
	if rep.PeakRSSBytes > 0 {
		printInfo("\nPeak RSS: %s\n", formatBytes(rep.PeakRSSBytes))
	}
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
