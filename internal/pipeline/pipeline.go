package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/athletics-rankings-etl/internal/catalog"
	"github.com/couchcryptid/athletics-rankings-etl/internal/domain"
	"github.com/couchcryptid/athletics-rankings-etl/internal/observability"
	"github.com/robfig/cron/v3"
)

// Extractor fetches the raw markup of an event's ranking page.
type Extractor interface {
	Extract(ctx context.Context, event catalog.Event) (string, error)
}

// Transformer converts ranking page markup into a result set.
type Transformer interface {
	Transform(ctx context.Context, code, markup string) (domain.ResultSet, error)
}

// Loader receives every freshly fetched result set.
type Loader interface {
	Load(ctx context.Context, rs domain.ResultSet) error
}

// Pipeline serves result sets from the cache and runs extract-transform-load
// for events whose cached entry is missing or stale.
type Pipeline struct {
	catalog     *catalog.Catalog
	extractor   Extractor
	transformer Transformer
	cache       *ResultCache
	loaders     []Loader
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// New creates a Pipeline with the given stages and observability. Loaders are
// optional.
func New(cat *catalog.Catalog, e Extractor, t Transformer, cache *ResultCache, logger *slog.Logger, metrics *observability.Metrics, loaders ...Loader) *Pipeline {
	return &Pipeline{
		catalog:     cat,
		extractor:   e,
		transformer: t,
		cache:       cache,
		loaders:     loaders,
		logger:      logger,
		metrics:     metrics,
	}
}

// Catalog returns the events the pipeline serves.
func (p *Pipeline) Catalog() *catalog.Catalog {
	return p.catalog
}

// CheckReadiness returns nil when the result cache's store is reachable.
func (p *Pipeline) CheckReadiness(ctx context.Context) error {
	if err := p.cache.Ping(ctx); err != nil {
		return fmt.Errorf("result cache unavailable: %w", err)
	}
	return nil
}

// Rankings returns the result set for code, from the cache while it is fresh
// and from the upstream page otherwise. refresh skips the cache read. A failed
// fetch is returned as an error even when a stale entry exists.
func (p *Pipeline) Rankings(ctx context.Context, code string, refresh bool) (domain.ResultSet, error) {
	event, err := p.catalog.Lookup(code)
	if err != nil {
		return domain.ResultSet{}, err
	}

	if !refresh {
		rs, lookup, err := p.cache.Get(ctx, code)
		if err != nil {
			p.logger.Warn("cache read failed, refetching", "event", code, "error", err)
			p.metrics.CacheLookups.WithLabelValues("error").Inc()
		} else {
			p.metrics.CacheLookups.WithLabelValues(lookup.String()).Inc()
			if lookup == LookupHit {
				return rs, nil
			}
		}
	}

	return p.refresh(ctx, event)
}

func (p *Pipeline) refresh(ctx context.Context, event catalog.Event) (domain.ResultSet, error) {
	start := time.Now()
	markup, err := p.extractor.Extract(ctx, event)
	p.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		p.metrics.Fetches.WithLabelValues("error").Inc()
		return domain.ResultSet{}, fmt.Errorf("fetch %s: %w", event.Code, err)
	}

	rs, err := p.transformer.Transform(ctx, event.Code, markup)
	if err != nil {
		if errors.Is(err, domain.ErrNoDataBlock) {
			p.metrics.Fetches.WithLabelValues("no_data").Inc()
		} else {
			p.metrics.Fetches.WithLabelValues("error").Inc()
		}
		return domain.ResultSet{}, fmt.Errorf("parse %s: %w", event.Code, err)
	}
	p.metrics.Fetches.WithLabelValues("success").Inc()

	if err := p.cache.Put(ctx, rs); err != nil {
		p.logger.Warn("cache write failed", "event", event.Code, "error", err)
	}

	for _, l := range p.loaders {
		if err := l.Load(ctx, rs); err != nil {
			p.logger.Warn("load result set failed", "event", event.Code, "error", err)
		}
	}

	p.logger.Info("rankings refreshed", "event", event.Code, "count", rs.Count)
	return rs, nil
}

// RefreshAll refetches every cataloged event in code order. It keeps going
// after failures and returns them joined.
func (p *Pipeline) RefreshAll(ctx context.Context) error {
	p.metrics.RefreshRunning.Set(1)
	defer p.metrics.RefreshRunning.Set(0)

	var errs []error
	for _, event := range p.catalog.All() {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		if _, err := p.refresh(ctx, event); err != nil {
			p.logger.Error("scheduled refresh failed", "event", event.Code, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Run refreshes the catalog on the given cron schedule until the context is
// cancelled. Runs never overlap; a tick that arrives while a refresh is still
// going is skipped.
func (p *Pipeline) Run(ctx context.Context, schedule string) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(schedule, func() {
		if err := p.RefreshAll(ctx); err != nil {
			p.logger.Warn("catalog refresh finished with errors", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule refresh %q: %w", schedule, err)
	}

	p.logger.Info("refresh scheduler started", "schedule", schedule, "events", p.catalog.Len())
	c.Start()

	<-ctx.Done()
	p.logger.Info("refresh scheduler stopping", "reason", ctx.Err())
	<-c.Stop().Done()
	return nil
}
