package nn

import (
	"context"
	"fmt"
	"runtime"

	"github.com/sourcegraph/conc/pool"

	"github.com/baldhumanity/neat-innov/neat"
)

// FitnessFunc scores a decoded network.
type FitnessFunc func(ctx context.Context, net *Network) (float64, error)

// EvaluateAll decodes every genome and stores the score returned by fitness,
// running at most workers evaluations at once (GOMAXPROCS when workers < 1).
// Each genome is handled by exactly one goroutine. The first error cancels the
// remaining evaluations and is returned.
func EvaluateAll(ctx context.Context, genomes []*neat.Genome, fitness FitnessFunc, workers int) error {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	p := pool.New().
		WithMaxGoroutines(workers).
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError()

	for i, g := range genomes {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			score, err := fitness(ctx, Decode(g))
			if err != nil {
				return fmt.Errorf("genome %d: %w", i, err)
			}
			g.SetFitness(score)
			return nil
		})
	}
	return p.Wait()
}
