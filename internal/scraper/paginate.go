package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/pfrederiksen/cube-sniper/internal/logger"
	"github.com/pfrederiksen/cube-sniper/internal/metrics"
)

// APISort is the fixed sort order requested from the competition API
const APISort = "start_date,end_date,name"

// Paginator walks the competition_index API one page at a time
type Paginator struct {
	fetcher Fetcher
	origin  string
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewPaginator creates a Paginator. log and m may be nil.
func NewPaginator(fetcher Fetcher, origin string, log *logger.Logger, m *metrics.Metrics) *Paginator {
	if log == nil {
		log = logger.Nop()
	}
	return &Paginator{
		fetcher: fetcher,
		origin:  strings.TrimRight(origin, "/"),
		log:     log,
		metrics: m,
	}
}

// PageURL builds the API URL for one page of present and future competitions
func (p *Paginator) PageURL(region, asOf string, page int) string {
	return fmt.Sprintf("%s/api/v0/competition_index?region=%s&include_cancelled=false&sort=%s&ongoing_and_future=%s&page=%d",
		p.origin, url.QueryEscape(region), APISort, url.QueryEscape(asOf), page)
}

// FetchAll requests pages 1, 2, ... until a response carries no rel="next"
// link, returning one raw body per page in request order. Any failure aborts
// the walk and no partial result is returned. A response without a Link
// header is ErrMissingPaginationSignal.
func (p *Paginator) FetchAll(ctx context.Context, region, asOf string) ([][]byte, error) {
	var pages [][]byte

	for page := 1; ; page++ {
		reqURL := p.PageURL(region, asOf, page)

		start := time.Now()
		resp, err := p.fetcher.Fetch(ctx, reqURL)
		if err != nil {
			return nil, fmt.Errorf("fetching page %d: %w", page, err)
		}
		p.metrics.PageFetched(time.Since(start))

		pages = append(pages, resp.Body)

		// Several Link lines mean the same as one comma-joined value
		next, err := HasNextLink(strings.Join(resp.Header.Values("Link"), ", "))
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}

		p.log.Debug("Fetched competition page", logger.Fields{
			"page":  page,
			"bytes": len(resp.Body),
			"next":  next,
		})

		if !next {
			return pages, nil
		}
	}
}
