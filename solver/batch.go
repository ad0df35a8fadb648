package solver

import (
	"context"
	"fmt"

	"row-major.net/boggle/board"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// SolveAll solves each grid, running at most parallelism searches at once.
// The result at index i belongs to grids[i].
func (s *Solver) SolveAll(ctx context.Context, grids []board.Grid, parallelism int) ([]WordSet, error) {
	if parallelism < 1 {
		parallelism = 1
	}

	results := make([]WordSet, len(grids))

	// Use errgroup and semaphore to limit concurrency.
	eg, ctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(parallelism))

	for i, g := range grids {
		i, g := i, g // per-iteration copies (go directive < 1.22)
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, fmt.Errorf("while acquiring concurrency limiter semaphore: %w", err)
		}

		eg.Go(func() error {
			defer sem.Release(1)
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("while solving board %d: %w", i, err)
			}
			words, _ := s.Solve(ctx, g)
			results[i] = words
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("while waiting for completion of errgroup: %w", err)
	}

	return results, nil
}
