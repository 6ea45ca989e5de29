package building

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// Overview holds the dashboard counters.
type Overview struct {
	Apartments int
	Residents  int
	Vehicles   int
	Invoices   int
	FetchedAt  time.Time
}

// Counter returns the number of elements of a resource.
type Counter interface {
	Count(ctx context.Context, resource string) (int, error)
}

// OverviewFetcher is implemented by *Client and used by the poller.
type OverviewFetcher interface {
	FetchOverview(ctx context.Context) (Overview, error)
}

var (
	_ Counter         = (*Client)(nil)
	_ OverviewFetcher = (*Client)(nil)
)

// FetchOverview counts the main resources concurrently.
func (c *Client) FetchOverview(ctx context.Context) (Overview, error) {
	if c == nil {
		return Overview{}, ErrNilClient
	}
	return CountAll(ctx, c)
}

// CountAll fills an Overview using counter. The first failure cancels the
// remaining counts.
func CountAll(ctx context.Context, counter Counter) (Overview, error) {
	var ov Overview
	g, gctx := errgroup.WithContext(ctx)
	targets := []struct {
		resource string
		dest     *int
	}{
		{Apartments.Name, &ov.Apartments},
		{Residents.Name, &ov.Residents},
		{Vehicles.Name, &ov.Vehicles},
		{Invoices.Name, &ov.Invoices},
	}
	for _, t := range targets {
		g.Go(func() error {
			n, err := counter.Count(gctx, t.resource)
			if err != nil {
				return fmt.Errorf("count %s: %w", t.resource, err)
			}
			*t.dest = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}
	ov.FetchedAt = time.Now()
	return ov, nil
}
