package fedi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// PageGetter issues the single GET a Pager needs to fetch one page. The
// pathOrURL may be a relative API path or the absolute URL taken from a
// navigation link. Implemented by the internal transport.
type PageGetter interface {
	GetPage(ctx context.Context, pathOrURL string, query url.Values) (body []byte, header http.Header, err error)
}

// pageCursor is the "where to fetch next" state of one Pager. It is owned
// exclusively by that Pager and mutated only after a successful fetch.
type pageCursor struct {
	url   string
	query url.Values
}

// PageOptions tunes a single Advance call.
type PageOptions struct {
	// Reset restores the cursor to the initial path and params before
	// fetching, restarting iteration regardless of prior progress.
	Reset bool

	// URL overrides the cursor's URL for exactly this fetch.
	URL string

	// Query overrides the cursor's query for exactly this fetch.
	Query url.Values
}

// Pager presents one logical collection as a forward-only, restartable lazy
// sequence of pages linked by the server's Link header. A Pager is
// single-owner: fetches are strictly sequential and it must not be shared
// across goroutines.
type Pager[T any] struct {
	client  PageGetter
	initial pageCursor
	cursor  pageCursor
	done    bool
}

// NewPager creates a Pager over the collection at path.
func NewPager[T any](client PageGetter, path string, params *QueryParams) *Pager[T] {
	initial := pageCursor{url: path, query: params.ToValues()}

	return &Pager[T]{
		client:  client,
		initial: initial,
		cursor:  initial,
	}
}

// Advance fetches and returns the next page. It returns ErrNoMorePages on
// the call after the response that carried no usable "next" link: the page
// that lacked the link is itself still returned, so the sequence ends one
// step after data runs out.
//
// On a transport error the cursor is left unchanged, so calling Advance
// again (without Reset) retries the same logical page.
func (p *Pager[T]) Advance(ctx context.Context, opts *PageOptions) ([]T, error) {
	if opts != nil && opts.Reset {
		p.cursor = p.initial
		p.done = false
	}

	target := p.cursor
	overridden := false

	if opts != nil {
		if opts.URL != "" {
			target.url = opts.URL
			target.query = nil
			overridden = true
		}

		if opts.Query != nil {
			target.query = opts.Query
			overridden = true
		}
	}

	if p.done && !overridden {
		return nil, ErrNoMorePages
	}

	body, header, err := p.client.GetPage(ctx, target.url, target.query)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}

	var page []T

	err = json.Unmarshal(body, &page)
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}

	// A next link with an empty URI terminates exactly like a missing link.
	links := LinksFromHeader(header)
	if links.Next == "" {
		p.done = true
	} else {
		p.cursor = pageCursor{url: links.Next}
		p.done = false
	}

	return page, nil
}

// HasNext reports whether a subsequent Advance may yield another page. It
// is optimistic before the first fetch.
func (p *Pager[T]) HasNext() bool {
	return !p.done
}

// All drains the remaining pages and returns their records in server order.
func (p *Pager[T]) All(ctx context.Context) ([]T, error) {
	var all []T

	for {
		page, err := p.Advance(ctx, nil)
		if err != nil {
			if errors.Is(err, ErrNoMorePages) {
				return all, nil
			}

			return nil, err
		}

		all = append(all, page...)
	}
}

// ForEach invokes fn for every remaining record in server order. Iteration
// stops on the first error from fn.
func (p *Pager[T]) ForEach(ctx context.Context, fn func(T) error) error {
	for {
		page, err := p.Advance(ctx, nil)
		if err != nil {
			if errors.Is(err, ErrNoMorePages) {
				return nil
			}

			return err
		}

		for _, item := range page {
			err = fn(item)
			if err != nil {
				return err
			}
		}
	}
}

// PaginationOptions configures the page-draining helpers.
type PaginationOptions struct {
	// MaxPages limits how many pages are fetched. Zero means no limit.
	MaxPages int
}

// FetchAllPages fetches every page of a collection and returns the combined
// records.
func FetchAllPages[T any](ctx context.Context, client PageGetter, path string, params *QueryParams, options *PaginationOptions) ([]T, error) {
	pager := NewPager[T](client, path, params)

	var all []T

	fetched := 0

	for {
		if options != nil && options.MaxPages > 0 && fetched >= options.MaxPages {
			return all, nil
		}

		page, err := pager.Advance(ctx, nil)
		if err != nil {
			if errors.Is(err, ErrNoMorePages) {
				return all, nil
			}

			return nil, err
		}

		all = append(all, page...)
		fetched++
	}
}

// PageResult is one page delivered by StreamPages.
type PageResult[T any] struct {
	Items []T
	Err   error
}

// StreamPages fetches pages sequentially and delivers them on the returned
// channel. The channel is closed after the last page, the first error, or
// context cancellation.
func StreamPages[T any](ctx context.Context, client PageGetter, path string, params *QueryParams, options *PaginationOptions) <-chan PageResult[T] {
	results := make(chan PageResult[T])

	go func() {
		defer close(results)

		pager := NewPager[T](client, path, params)
		fetched := 0

		for {
			if options != nil && options.MaxPages > 0 && fetched >= options.MaxPages {
				return
			}

			page, err := pager.Advance(ctx, nil)
			if err != nil {
				if !errors.Is(err, ErrNoMorePages) {
					select {
					case results <- PageResult[T]{Err: err}:
					case <-ctx.Done():
					}
				}

				return
			}

			fetched++

			select {
			case results <- PageResult[T]{Items: page}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return results
}
