package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
)

const (
	// FallbackSourceLabel identifies the primary source's hardcoded record
	FallbackSourceLabel = "Historical Average (Fallback)"
	// DefaultSourceLabel identifies the alternate source's hardcoded record
	DefaultSourceLabel = "Default Historical Average"
)

// ErrUnknownIndex is returned when an index-backed source names a fund that is not in StockIndices
var ErrUnknownIndex = errors.New("unknown index")

// ErrNegativeReturn means a fund's return for the chosen period is below zero.
// Projections need a non-negative base rate.
var ErrNegativeReturn = errors.New("negative index return")

// MarketRate is the base annual return the projections are built on
type MarketRate struct {
	TenYearReturn float64   `json:"ten_year_return"`
	LastUpdated   time.Time `json:"last_updated"`
	Source        string    `json:"source"`
}

// IsFallback reports whether the record is one of the hardcoded defaults rather than fetched data
func (m MarketRate) IsFallback() bool {
	return strings.Contains(m.Source, "Fallback") || strings.Contains(m.Source, "Default")
}

// FallbackMarketRate is the documented record used whenever no source answers
func FallbackMarketRate(now time.Time) MarketRate {
	return MarketRate{TenYearReturn: FallbackAnnualReturn, LastUpdated: now, Source: FallbackSourceLabel}
}

// MarketDataSource supplies the base annual return
type MarketDataSource interface {
	Name() string
	FetchRate(ctx context.Context) (MarketRate, error)
}

// FallbackMarketData stands in for the fund provider's performance page.
// It never reaches the network: after a simulated delay it reports the fallback record.
type FallbackMarketData struct {
	Latency time.Duration
	Clock   Clock
}

func (f *FallbackMarketData) Name() string { return "fund-performance" }

func (f *FallbackMarketData) FetchRate(ctx context.Context) (MarketRate, error) {
	if err := simulateLatency(ctx, f.Latency); err != nil {
		return MarketRate{}, err
	}
	return FallbackMarketRate(clockOrSystem(f.Clock).Now()), nil
}

// AlternateMarketData stands in for a financial data API and reports its own default record
type AlternateMarketData struct {
	Latency time.Duration
	Clock   Clock
}

func (a *AlternateMarketData) Name() string { return "financial-api" }

func (a *AlternateMarketData) FetchRate(ctx context.Context) (MarketRate, error) {
	if err := simulateLatency(ctx, a.Latency); err != nil {
		return MarketRate{}, err
	}
	return MarketRate{
		TenYearReturn: FallbackAnnualReturn,
		LastUpdated:   clockOrSystem(a.Clock).Now(),
		Source:        DefaultSourceLabel,
	}, nil
}

// IndexMarketData reads a fund's return for a period from the StockIndices table
type IndexMarketData struct {
	IndexID     string
	PeriodYears int
	Clock       Clock
}

func (i *IndexMarketData) Name() string { return "index-table:" + i.IndexID }

func (i *IndexMarketData) FetchRate(ctx context.Context) (MarketRate, error) {
	idx := GetStockIndex(i.IndexID)
	if idx == nil {
		return MarketRate{}, fmt.Errorf("%w: %q", ErrUnknownIndex, i.IndexID)
	}
	period := i.PeriodYears
	if period <= 0 {
		period = DefaultHorizonYears
	}
	rate := GetReturnForPeriod(idx, period)
	if rate < 0 {
		return MarketRate{}, fmt.Errorf("%w: %s %d year %s", ErrNegativeReturn, idx.ShortName, period, FormatRate(rate))
	}
	return MarketRate{
		TenYearReturn: rate,
		LastUpdated:   clockOrSystem(i.Clock).Now(),
		Source:        fmt.Sprintf("%s %d Year (index table)", idx.ShortName, period),
	}, nil
}

// GetBaseReturnRate asks the primary source and, when it only had its fallback record,
// the alternate source. The alternate is kept only if it returned real data.
// Failures never surface: the fallback record is the answer of last resort.
func GetBaseReturnRate(ctx context.Context, primary, alternate MarketDataSource, clock Clock) MarketRate {
	ctx, span := tracer.Start(ctx, "market_data.base_rate")
	defer span.End()

	data, err := primary.FetchRate(ctx)
	if err != nil {
		log.Printf("Market data: %s failed: %v", primary.Name(), err)
		span.RecordError(err)
		data = FallbackMarketRate(clockOrSystem(clock).Now())
	}

	if data.IsFallback() && alternate != nil {
		alt, err := alternate.FetchRate(ctx)
		switch {
		case err != nil:
			log.Printf("Market data: %s failed: %v", alternate.Name(), err)
		case !alt.IsFallback():
			data = alt
		}
	}

	span.SetAttributes(
		attribute.String("market_data.source", data.Source),
		attribute.Float64("market_data.rate", data.TenYearReturn),
		attribute.Bool("market_data.fallback", data.IsFallback()),
	)
	return data
}

// RateCache holds the session's market rate. Load runs the sources once; Rate never blocks
// and answers with the fallback record until the load has finished.
type RateCache struct {
	primary   MarketDataSource
	alternate MarketDataSource
	clock     Clock

	once   sync.Once
	done   chan struct{}
	mu     sync.RWMutex
	rate   MarketRate
	loaded bool
}

// NewRateCache creates an empty cache over the given sources (alternate may be nil)
func NewRateCache(primary, alternate MarketDataSource, clock Clock) *RateCache {
	return &RateCache{
		primary:   primary,
		alternate: alternate,
		clock:     clockOrSystem(clock),
		done:      make(chan struct{}),
	}
}

// Load fetches the rate on first call; later calls wait for that fetch and return its result
func (c *RateCache) Load(ctx context.Context) MarketRate {
	c.once.Do(func() {
		rate := GetBaseReturnRate(ctx, c.primary, c.alternate, c.clock)
		if rate.IsFallback() {
			log.Printf("Market data: using %s at %s", rate.Source, FormatRate(rate.TenYearReturn))
		} else {
			log.Printf("Market data: loaded %s at %s", rate.Source, FormatRate(rate.TenYearReturn))
		}
		c.mu.Lock()
		c.rate = rate
		c.loaded = true
		c.mu.Unlock()
		close(c.done)
	})
	return c.Rate()
}

// Rate returns the cached record, or the fallback record if loading has not finished
func (c *RateCache) Rate() MarketRate {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.loaded {
		return FallbackMarketRate(c.clock.Now())
	}
	return c.rate
}

// Loaded reports whether Load has completed
func (c *RateCache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Done is closed once the first Load completes
func (c *RateCache) Done() <-chan struct{} {
	return c.done
}

func clockOrSystem(c Clock) Clock {
	if c == nil {
		return SystemClock{}
	}
	return c
}

// CustomMarketData reports a rate set in the configuration file
type CustomMarketData struct {
	Rate  float64
	Clock Clock
}

func (c *CustomMarketData) Name() string { return "custom" }

func (c *CustomMarketData) FetchRate(ctx context.Context) (MarketRate, error) {
	return MarketRate{
		TenYearReturn: c.Rate,
		LastUpdated:   clockOrSystem(c.Clock).Now(),
		Source:        "Custom Rate (config)",
	}, nil
}
