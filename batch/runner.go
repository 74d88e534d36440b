// Package batch runs many independent simulations of the same parameters and
// reports the spread of their results.
package batch

import (
	"context"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/rustyeddy/tradesim/sim"
)

// Runner executes Runs simulations, run i seeded with BaseSeed+i, so a batch
// is reproducible for a given BaseSeed.
type Runner struct {
	Runs     int
	Workers  int
	BaseSeed int64

	// OnProgress is called once per finished run. It may be called from
	// several goroutines at once.
	OnProgress func()
}

// Distribution summarizes the final balances of a batch.
type Distribution struct {
	Runs            int     `json:"runs" yaml:"runs"`
	ProfitableRuns  int     `json:"profitable_runs" yaml:"profitable_runs"`
	ProfitableRatio float64 `json:"profitable_ratio" yaml:"profitable_ratio"`

	MeanFinal   float64 `json:"mean_final" yaml:"mean_final"`
	StdDevFinal float64 `json:"stddev_final" yaml:"stddev_final"`
	MinFinal    float64 `json:"min_final" yaml:"min_final"`
	MaxFinal    float64 `json:"max_final" yaml:"max_final"`
	P5Final     float64 `json:"p5_final" yaml:"p5_final"`
	P50Final    float64 `json:"p50_final" yaml:"p50_final"`
	P95Final    float64 `json:"p95_final" yaml:"p95_final"`

	MeanFees    float64 `json:"mean_fees" yaml:"mean_fees"`
	MeanWinRate float64 `json:"mean_win_rate" yaml:"mean_win_rate"`
}

// Run simulates p Runs times and aggregates the summaries. It returns
// ctx.Err() if the context is cancelled before every run finished.
func (r *Runner) Run(ctx context.Context, p sim.Params) (Distribution, error) {
	if r.Runs <= 0 {
		return Distribution{}, nil
	}

	workers := r.Workers
	if workers <= 0 {
		workers = 1
	}

	summaries := make([]sim.Summary, r.Runs)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < r.Runs; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			trades := sim.Run(p, r.BaseSeed+int64(i))
			summaries[i] = sim.Summarize(p, trades)
			if r.OnProgress != nil {
				r.OnProgress()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Distribution{}, err
	}
	if err := ctx.Err(); err != nil {
		return Distribution{}, err
	}

	return Aggregate(summaries), nil
}

// Aggregate builds a Distribution from per-run summaries.
func Aggregate(summaries []sim.Summary) Distribution {
	n := len(summaries)
	if n == 0 {
		return Distribution{}
	}

	d := Distribution{Runs: n}
	finals := make([]float64, n)
	var sumFinal, sumFees, sumWinRate float64
	for i, s := range summaries {
		finals[i] = s.EndBalance
		sumFinal += s.EndBalance
		sumFees += s.TotalFees
		sumWinRate += s.RealizedWinRate
		if s.Profitable {
			d.ProfitableRuns++
		}
	}

	d.ProfitableRatio = float64(d.ProfitableRuns) / float64(n)
	d.MeanFinal = sumFinal / float64(n)
	d.MeanFees = sumFees / float64(n)
	d.MeanWinRate = sumWinRate / float64(n)

	variance := 0.0
	for _, f := range finals {
		variance += (f - d.MeanFinal) * (f - d.MeanFinal)
	}
	d.StdDevFinal = math.Sqrt(variance / float64(n))

	sort.Float64s(finals)
	d.MinFinal = finals[0]
	d.MaxFinal = finals[n-1]
	d.P5Final = percentile(finals, 0.05)
	d.P50Final = percentile(finals, 0.50)
	d.P95Final = percentile(finals, 0.95)
	return d
}

// percentile returns the nearest-rank q-quantile of sorted values.
func percentile(sorted []float64, q float64) float64 {
	idx := int(math.Ceil(float64(len(sorted))*q)) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
