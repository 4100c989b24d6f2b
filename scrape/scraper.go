package scrape

import (
	"context"
	"errors"

	"github.com/poiesic/proflens/core"
)

// ErrScrapeFailed is returned when a profile page could not be turned
// into a record.
var ErrScrapeFailed = errors.New("scrape failed")

// Scraper extracts an instructor profile from a review page URL.
// Implementations live outside this module; the server exposes one when
// configured with it.
type Scraper interface {
	Scrape(ctx context.Context, url string) (*core.ProfileRecord, error)
}

// Func adapts a plain function to the Scraper interface.
type Func func(ctx context.Context, url string) (*core.ProfileRecord, error)

// Scrape calls f.
func (f Func) Scrape(ctx context.Context, url string) (*core.ProfileRecord, error) {
	return f(ctx, url)
}
