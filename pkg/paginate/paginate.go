// Package paginate walks cursor-paginated listings.
package paginate

import (
	"context"
	"time"

	"igclient/pkg/logger"
	"igclient/pkg/metrics"
	"igclient/pkg/model"
	"igclient/pkg/ratelimit"
)

// Unlimited disables the item limit
const Unlimited = -1

// Stop reasons reported to metrics and logs
const (
	StopLimit     = "limit"
	StopExhausted = "exhausted"
	StopDuplicate = "duplicate"
	StopPredicate = "predicate"
	StopBudget    = "budget"
)

// Page is one fetched page of raw nodes
type Page struct {
	Nodes   []model.Node
	Cursor  string
	HasMore bool
}

// FetchFunc fetches the page that starts at cursor. The first call receives
// Options.Cursor.
type FetchFunc func(ctx context.Context, cursor string) (*Page, error)

// Options control a pagination run
type Options[T any] struct {
	// Limit caps the number of returned items. Unlimited means no cap.
	Limit int
	// Cursor is the starting cursor, empty for the first page
	Cursor string
	// Hydrate turns a raw node into an item
	Hydrate func(model.Node) T
	// DedupeKey, when set, stops the run at the first item whose key was
	// already collected. Items with an empty key are never duplicates.
	DedupeKey func(T) string
	// Stop, when set, stops the run at the first item it matches. That item
	// is not returned.
	Stop func(T) bool
	// Pacer is waited on between pages
	Pacer ratelimit.Limiter
	// Budget bounds the wall-clock time of the run. Zero means no bound.
	Budget time.Duration
	// Clock returns the current time, time.Now when nil
	Clock func() time.Time
	// Name labels the listing in logs and metrics
	Name string
	// Logger receives progress messages
	Logger logger.Logger
}

// Result is the outcome of a pagination run
type Result[T any] struct {
	Items []T
	// Cursor resumes the listing after the last fully consumed page
	Cursor string
	// Consumed is how many items of the page at Cursor were returned before
	// the run stopped inside it
	Consumed int
	// HasMore reports whether the upstream offered more pages
	HasMore bool
	// StopReason says why the run ended
	StopReason string
}

// Paginate collects items page by page until the limit is reached, the
// listing is exhausted, a duplicate or stop item is met, or the budget runs
// out. A budget overrun is not an error: the items collected so far are
// returned. A fetch error aborts the run.
func Paginate[T any](ctx context.Context, fetch FetchFunc, opts Options[T]) (*Result[T], error) {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNopLogger()
	}
	log = log.WithField("listing", opts.Name)

	result := &Result[T]{Cursor: opts.Cursor, HasMore: true}
	if opts.Limit == 0 {
		result.StopReason = StopLimit
		return result, nil
	}

	seen := make(map[string]struct{})
	start := clock()
	cursor := opts.Cursor

	finish := func(reason string) (*Result[T], error) {
		result.StopReason = reason
		metrics.PaginationStopped(reason)
		log.DebugWithFields("pagination finished", map[string]interface{}{
			"reason": reason,
			"items":  len(result.Items),
		})
		return result, nil
	}

	for pageNum := 0; ; pageNum++ {
		if pageNum > 0 {
			if opts.Budget > 0 && clock().Sub(start) >= opts.Budget {
				log.WarnWithFields("pagination time limit reached, returning partial results", map[string]interface{}{
					"budget": opts.Budget,
					"items":  len(result.Items),
				})
				return finish(StopBudget)
			}
			if opts.Pacer != nil {
				opts.Pacer.Wait()
			}
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := fetch(ctx, cursor)
		if err != nil {
			return nil, err
		}
		metrics.PageFetched(opts.Name)

		if page == nil || len(page.Nodes) == 0 {
			result.HasMore = false
			return finish(StopExhausted)
		}

		result.Consumed = 0
		for _, node := range page.Nodes {
			if opts.Limit != Unlimited && len(result.Items) >= opts.Limit {
				return finish(StopLimit)
			}

			item := opts.Hydrate(node)

			if opts.DedupeKey != nil {
				if key := opts.DedupeKey(item); key != "" {
					if _, dup := seen[key]; dup {
						return finish(StopDuplicate)
					}
					seen[key] = struct{}{}
				}
			}

			if opts.Stop != nil && opts.Stop(item) {
				return finish(StopPredicate)
			}

			result.Items = append(result.Items, item)
			result.Consumed++
		}

		result.Consumed = 0
		result.Cursor = page.Cursor
		result.HasMore = page.HasMore

		if opts.Limit != Unlimited && len(result.Items) >= opts.Limit {
			return finish(StopLimit)
		}
		if !page.HasMore || page.Cursor == "" {
			result.HasMore = false
			return finish(StopExhausted)
		}
		cursor = page.Cursor
	}
}
