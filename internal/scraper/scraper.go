package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/pfrederiksen/cube-sniper/internal/event"
	"github.com/pfrederiksen/cube-sniper/internal/logger"
	"github.com/pfrederiksen/cube-sniper/internal/metrics"
)

// DefaultOrigin is the public WCA website
const DefaultOrigin = "https://www.worldcubeassociation.org"

// Source selects which upstream endpoint and parser are used
type Source string

const (
	SourceAPI    Source = "api"
	SourceLegacy Source = "legacy"
)

// ParseSource validates a source name
func ParseSource(s string) (Source, error) {
	switch Source(strings.ToLower(strings.TrimSpace(s))) {
	case SourceAPI:
		return SourceAPI, nil
	case SourceLegacy:
		return SourceLegacy, nil
	}
	return "", fmt.Errorf("invalid source: %s (must be 'api' or 'legacy')", s)
}

// Options configures a Scraper
type Options struct {
	Origin  string
	Source  Source
	Logger  *logger.Logger
	Metrics *metrics.Metrics
}

// Scraper fetches competitions for a region and normalizes them into events
type Scraper struct {
	fetcher Fetcher
	origin  string
	source  Source
	log     *logger.Logger
	metrics *metrics.Metrics
}

// New creates a Scraper. Empty options default to the public site, the API
// source and a discarding logger.
func New(fetcher Fetcher, opts Options) *Scraper {
	s := &Scraper{
		fetcher: fetcher,
		origin:  strings.TrimRight(opts.Origin, "/"),
		source:  opts.Source,
		log:     opts.Logger,
		metrics: opts.Metrics,
	}
	if s.origin == "" {
		s.origin = DefaultOrigin
	}
	if s.source == "" {
		s.source = SourceAPI
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	return s
}

// Parser returns the parser matching the configured source
func (s *Scraper) Parser() Parser {
	if s.source == SourceLegacy {
		return NewLegacyParser(s.origin)
	}
	return NewAPIParser(s.origin)
}

// LegacyURL builds the legacy competitions map page URL for a region
func (s *Scraper) LegacyURL(region string) string {
	return fmt.Sprintf("%s/competitions?region=%s&search=&state=present&year=all+years&from_date=&to_date=&delegate=&display=map",
		s.origin, url.QueryEscape(region))
}

// FetchEvents fetches every present and future competition for region,
// anchored at asOf (YYYY-MM-DD, only used by the API source). Pages are
// parsed in fetch order and concatenated without deduplication.
func (s *Scraper) FetchEvents(ctx context.Context, region, asOf string) ([]*event.Event, error) {
	payloads, err := s.fetchPayloads(ctx, region, asOf)
	if err != nil {
		return nil, fmt.Errorf("fetching competitions: %w", err)
	}

	parser := s.Parser()
	events := make([]*event.Event, 0)
	for i, payload := range payloads {
		parsed, err := parser.Parse(payload)
		if err != nil {
			return nil, fmt.Errorf("parsing page %d: %w", i+1, err)
		}
		events = append(events, parsed...)
	}

	s.metrics.EventsParsed(string(s.source), len(events))
	s.log.Info("Fetched competitions", logger.Fields{
		"source": string(s.source),
		"region": region,
		"pages":  len(payloads),
		"events": len(events),
	})

	return events, nil
}

func (s *Scraper) fetchPayloads(ctx context.Context, region, asOf string) ([][]byte, error) {
	if s.source == SourceAPI {
		return NewPaginator(s.fetcher, s.origin, s.log, s.metrics).FetchAll(ctx, region, asOf)
	}

	reqURL := s.LegacyURL(region)
	s.log.Debug("Fetching legacy competitions page", logger.Fields{"url": reqURL})

	start := time.Now()
	resp, err := s.fetcher.Fetch(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	s.metrics.PageFetched(time.Since(start))

	return [][]byte{resp.Body}, nil
}
