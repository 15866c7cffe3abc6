package catalog

import (
	"context"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"

	"gemstore/internal/models"
)

// SimilarResult aggregates a fan-out of per-reference lookups. Failed
// references are reported alongside the successes instead of being
// silently dropped.
type SimilarResult struct {
	Diamonds []models.Diamond
	Failed   map[string]error
}

// Similar resolves a list of stock references with a bounded-concurrency
// join. Lookup order in the result follows the input order; one failed
// reference does not cancel the rest.
func (s *Service) Similar(ctx context.Context, creds []*http.Cookie, stockRefs []string) (SimilarResult, error) {
	result := SimilarResult{
		Diamonds: make([]models.Diamond, 0, len(stockRefs)),
		Failed:   make(map[string]error),
	}
	if len(stockRefs) == 0 {
		return result, nil
	}

	found := make([]*models.Diamond, len(stockRefs))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.lookupLimit)
	for i, ref := range stockRefs {
		i, ref := i, ref
		g.Go(func() error {
			d, err := s.Get(gctx, creds, ref)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed[ref] = err
				return nil
			}
			found[i] = &d
			return nil
		})
	}
	// Workers never return errors; Wait only joins them.
	_ = g.Wait()

	for _, d := range found {
		if d != nil {
			result.Diamonds = append(result.Diamonds, *d)
		}
	}
	if len(result.Failed) > 0 {
		s.lg.Warnw("similar lookup partial failure", "failed", len(result.Failed), "total", len(stockRefs))
	}
	return result, nil
}
