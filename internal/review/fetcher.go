package review

import (
	"context"
	"sync"

	"storefront/internal/domain"
)

// Source is the upstream the Fetcher pulls reviews from.
type Source interface {
	ForProduct(ctx context.Context, slug string) ([]domain.Review, error)
}

// Result is what the Fetcher delivers for the product that is still current.
type Result struct {
	Slug    string
	Reviews []domain.Review
	Summary Summary
	Err     error
}

// Fetcher serializes the "reviews for the currently displayed product"
// concern. Every Fetch supersedes the previous one: a fetch that resolves
// after a newer one has started is dropped instead of overwriting fresher
// data, so the outcome is last-requested-wins rather than last-resolved-wins.
type Fetcher struct {
	source Source

	mu  sync.Mutex
	gen uint64
}

func NewFetcher(source Source) *Fetcher {
	return &Fetcher{source: source}
}

// Fetch starts an asynchronous load for slug and invokes deliver with the
// result only if no newer Fetch has started in the meantime.
func (f *Fetcher) Fetch(ctx context.Context, slug string, deliver func(Result)) {
	f.mu.Lock()
	f.gen++
	gen := f.gen
	f.mu.Unlock()

	go func() {
		reviews, err := f.source.ForProduct(ctx, slug)

		f.mu.Lock()
		stale := gen != f.gen
		f.mu.Unlock()
		if stale {
			return
		}

		res := Result{Slug: slug, Err: err}
		if err == nil {
			res.Reviews = reviews
			res.Summary = Summarize(reviews)
		}
		deliver(res)
	}()
}
