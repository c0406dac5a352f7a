package enumerate

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// RunAll runs independent enumerators concurrently. Results keep the order of enumerators,
// each session reports its own outcome and the first error is returned. A failing session
// does not cancel the others.
func RunAll(ctx context.Context, enumerators ...*Enumerator) ([]Result, error) {
	results := make([]Result, len(enumerators))

	var group errgroup.Group
	for i, enumerator := range enumerators {
		group.Go(func() error {
			result, err := enumerator.Run(ctx)
			results[i] = result
			return err
		})
	}

	err := group.Wait()
	return results, err
}
