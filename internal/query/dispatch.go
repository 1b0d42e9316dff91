// Package query wires a search provider to the ranker: one user query in,
// one ranked, capped result list out.
package query

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"devsearch/internal/rank"
	"devsearch/internal/search"
)

const (
	// DefaultMaxResults bounds how many results reach the presentation layer
	// when the configuration does not say otherwise.
	DefaultMaxResults = 10

	// DefaultTimeout bounds a whole dispatch, including the optional
	// site-scoped query.
	DefaultTimeout = 10 * time.Second
)

// ErrEmptyQuery is returned for queries that are empty after trimming.
var ErrEmptyQuery = errors.New("empty query")

// Dispatcher forwards a free-text query to a search provider, applying the
// configured timeout and result cap, and ranks the answer against the
// priority list. It performs exactly one dispatch per call; provider failures
// are surfaced, never retried.
type Dispatcher struct {
	Provider   search.Provider
	Priorities rank.PriorityList

	// MaxResults caps the returned list. Zero means DefaultMaxResults.
	MaxResults int

	// Timeout bounds the dispatch. Zero means DefaultTimeout.
	Timeout time.Duration

	// SiteScoped issues an additional query restricted to the priority sites
	// and merges both answers before ranking, so priority sites are
	// represented even when the general query misses them.
	SiteScoped bool
}

// Search runs one query cycle. The returned error is a *search.ProviderError;
// classify it with search.IsTimeout and search.IsRateLimited.
func (d *Dispatcher) Search(ctx context.Context, query string) ([]search.Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	max := d.MaxResults
	if max <= 0 {
		max = DefaultMaxResults
	}
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	started := time.Now()
	groups := make([][]search.Result, 0, 2)

	if d.SiteScoped && len(d.Priorities) > 0 {
		scoped := d.Priorities.ScopedQuery(query)
		results, err := d.Provider.Search(ctx, scoped, max)
		switch {
		case err == nil:
			groups = append(groups, results)
		case ctx.Err() != nil:
			// Timed out or cancelled; no point issuing the general query.
			return nil, d.wrap(ctx.Err())
		default:
			// The general query still stands on its own.
			log.Warn().Err(err).Str("provider", d.Provider.Name()).Msg("site-scoped query failed")
		}
	}

	results, err := d.Provider.Search(ctx, query, max)
	if err != nil {
		return nil, d.wrap(err)
	}
	groups = append(groups, results)

	merged := rank.Merge(groups...)
	ranked := rank.Rank(merged, d.Priorities)
	out := rank.Cap(ranked, max)

	log.Debug().
		Str("provider", d.Provider.Name()).
		Str("query", query).
		Int("results", len(out)).
		Dur("elapsed", time.Since(started)).
		Msg("dispatched query")
	return out, nil
}

func (d *Dispatcher) wrap(err error) error {
	return &search.ProviderError{Provider: d.Provider.Name(), Err: err}
}
