// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package trends keeps the trending-topics list fresh by polling a fetcher
// on a fixed interval.
package trends

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"worldpulse/internal/models"
)

// DefaultInterval is the refresh period when Options.Interval is zero.
const DefaultInterval = 30 * time.Minute

// Fetcher returns the current trends, or an empty list on failure.
type Fetcher interface {
	FetchTrends(ctx context.Context) []models.TrendingTopic
}

// Store receives fresh trend lists.
type Store interface {
	Replace(trends []models.TrendingTopic) bool
}

// Options tunes a Poller.
type Options struct {
	Interval time.Duration
	// OnUpdate runs after each successful replacement.
	OnUpdate func(ctx context.Context)
	Logger   *slog.Logger
}

// Poller refreshes a Store from a Fetcher.
type Poller struct {
	fetcher  Fetcher
	store    Store
	interval time.Duration
	onUpdate func(ctx context.Context)
	logger   *slog.Logger
}

// New creates a Poller. It does nothing until Start or Tick is called.
func New(fetcher Fetcher, store Store, opts Options) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Poller{
		fetcher:  fetcher,
		store:    store,
		interval: opts.Interval,
		onUpdate: opts.OnUpdate,
		logger:   opts.Logger,
	}
}

// Tick performs one fetch and reports whether the store was updated.
// Results that arrive after ctx is done are discarded.
func (p *Poller) Tick(ctx context.Context) bool {
	start := time.Now()
	trends := p.fetcher.FetchTrends(ctx)

	if ctx.Err() != nil {
		p.logger.Debug("trend poll discarded after shutdown")
		return false
	}
	if len(trends) == 0 {
		p.logger.Warn("trend poll returned nothing, keeping previous list",
			"duration", time.Since(start).Round(time.Millisecond))
		return false
	}
	if !p.store.Replace(trends) {
		return false
	}

	p.logger.Info("trends refreshed", "count", len(trends),
		"duration", time.Since(start).Round(time.Millisecond))
	if p.onUpdate != nil {
		p.onUpdate(ctx)
	}
	return true
}

// Start launches the polling goroutine: one tick immediately, then one per
// interval until ctx is done or the returned handle is stopped.
func (p *Poller) Start(ctx context.Context) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(h.done)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		p.Tick(ctx)
		for {
			select {
			case <-ticker.C:
				p.Tick(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()

	return h
}

// Handle controls a running poller.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Stop cancels the poller and waits for its goroutine to exit. Calling Stop
// more than once is safe.
func (h *Handle) Stop() {
	h.once.Do(h.cancel)
	<-h.done
}

// Done is closed once the polling goroutine has exited.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}
