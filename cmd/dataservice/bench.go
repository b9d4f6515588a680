package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/discochess/dataservice"
	promstats "github.com/discochess/dataservice/internal/stats/prometheus"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run a concurrent workload and report cache metrics",
	Long: `Seed the store with records, then run concurrent retrievals,
occasional deletes and cache clears across several workers. Metrics are
collected in a Prometheus registry and printed at the end.`,
	RunE: runBench,
}

var (
	benchRecords int
	benchOps     int
	benchWorkers int
)

func init() {
	benchCmd.Flags().IntVar(&benchRecords, "records", 1000, "records saved before the workload starts")
	benchCmd.Flags().IntVar(&benchOps, "ops", 100000, "total operations across all workers")
	benchCmd.Flags().IntVarP(&benchWorkers, "workers", "w", 4, "concurrent workers")
	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	if benchRecords <= 0 || benchWorkers <= 0 || benchOps < 0 {
		return fmt.Errorf("records and workers must be positive, ops non-negative")
	}

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	registry := prometheus.NewRegistry()
	client, err := newClient(log, promstats.New(registry))
	if err != nil {
		return err
	}
	defer client.Close()

	start := time.Now()
	if err := bench(cmd.Context(), client, benchRecords, benchOps, benchWorkers); err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Operations: %d in %s (%d workers)\n", benchOps, elapsed, benchWorkers)
	if cache := client.Cache(); cache != nil {
		st := cache.Stats()
		fmt.Fprintf(w, "Cache:      %d entries, %.2f%% hit rate\n", st.Size, st.HitRate()*100)
	}
	return printMetrics(w, registry)
}

// bench seeds records and runs ops operations spread over workers.
func bench(ctx context.Context, client *dataservice.Client, records, ops, workers int) error {
	ids := make([]string, records)
	for i := range ids {
		id, err := client.Save(ctx, fmt.Sprintf("record-%d", i))
		if err != nil {
			return fmt.Errorf("seeding: %w", err)
		}
		ids[i] = id
	}

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		n := ops / workers
		if w < ops%workers {
			n++
		}
		g.Go(func() error {
			for i := 0; i < n; i++ {
				id := ids[rand.IntN(len(ids))]
				var err error
				switch r := rand.IntN(1000); {
				case r == 0:
					err = client.ClearCache(ctx)
				case r < 10:
					_, err = client.Delete(ctx, id)
				case r < 50:
					_, err = client.Save(ctx, "payload for "+id)
				default:
					_, _, err = client.Retrieve(ctx, id)
				}
				if err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// printMetrics writes every gathered sample as "name value".
func printMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	sort.Slice(families, func(i, j int) bool { return families[i].GetName() < families[j].GetName() })

	for _, f := range families {
		for _, m := range f.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				fmt.Fprintf(w, "%s %g\n", f.GetName(), m.GetCounter().GetValue())
			case m.GetGauge() != nil:
				fmt.Fprintf(w, "%s %g\n", f.GetName(), m.GetGauge().GetValue())
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				fmt.Fprintf(w, "%s_count %d\n", f.GetName(), h.GetSampleCount())
				fmt.Fprintf(w, "%s_sum %g\n", f.GetName(), h.GetSampleSum())
			}
		}
	}
	return nil
}
