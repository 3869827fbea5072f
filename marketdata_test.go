package main

import (
	"context"
	"errors"
	"math"
	"slices"
	"testing"
	"time"
)

// stubSource is a MarketDataSource with a canned answer
type stubSource struct {
	rate  MarketRate
	err   error
	calls int
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) FetchRate(ctx context.Context) (MarketRate, error) {
	s.calls++
	return s.rate, s.err
}

// blockingSource answers only once release is closed
type blockingSource struct {
	release chan struct{}
	rate    MarketRate
}

func (b *blockingSource) Name() string { return "blocking" }

func (b *blockingSource) FetchRate(ctx context.Context) (MarketRate, error) {
	select {
	case <-b.release:
		return b.rate, nil
	case <-ctx.Done():
		return MarketRate{}, ctx.Err()
	}
}

func TestMarketRate_IsFallback(t *testing.T) {
	tests := []struct {
		source string
		want   bool
	}{
		{FallbackSourceLabel, true},
		{DefaultSourceLabel, true},
		{"VTSAX 10 Year (index table)", false},
		{"Custom Rate (config)", false},
	}
	for _, tc := range tests {
		if got := (MarketRate{Source: tc.source}).IsFallback(); got != tc.want {
			t.Errorf("IsFallback(%q) = %v, want %v", tc.source, got, tc.want)
		}
	}
}

func TestGetBaseReturnRate(t *testing.T) {
	clock := fakeClock{t: testNow}
	ctx := context.Background()
	fetched := MarketRate{TenYearReturn: 0.122, LastUpdated: testNow, Source: "VTSAX 10 Year (index table)"}

	t.Run("default chain keeps the primary fallback", func(t *testing.T) {
		got := GetBaseReturnRate(ctx,
			&FallbackMarketData{Clock: clock}, &AlternateMarketData{Clock: clock}, clock)
		if got.Source != FallbackSourceLabel || got.TenYearReturn != FallbackAnnualReturn {
			t.Errorf("got %+v, want the primary's fallback record", got)
		}
		if !got.LastUpdated.Equal(testNow) {
			t.Errorf("LastUpdated = %v, want %v", got.LastUpdated, testNow)
		}
	})

	t.Run("alternate replaces fallback with real data", func(t *testing.T) {
		alt := &stubSource{rate: fetched}
		got := GetBaseReturnRate(ctx, &FallbackMarketData{Clock: clock}, alt, clock)
		if got != fetched {
			t.Errorf("got %+v, want %+v", got, fetched)
		}
	})

	t.Run("real primary skips the alternate", func(t *testing.T) {
		alt := &stubSource{rate: fetched}
		got := GetBaseReturnRate(ctx, &stubSource{rate: fetched}, alt, clock)
		if got != fetched || alt.calls != 0 {
			t.Errorf("got %+v after %d alternate calls", got, alt.calls)
		}
	})

	t.Run("failing sources fall back", func(t *testing.T) {
		got := GetBaseReturnRate(ctx,
			&stubSource{err: errors.New("timeout")}, &stubSource{err: errors.New("timeout")}, clock)
		if got != FallbackMarketRate(testNow) {
			t.Errorf("got %+v, want the fallback record", got)
		}
	})

	t.Run("nil alternate", func(t *testing.T) {
		got := GetBaseReturnRate(ctx, &FallbackMarketData{Clock: clock}, nil, clock)
		if got.Source != FallbackSourceLabel {
			t.Errorf("got %+v", got)
		}
	})
}

func TestIndexMarketData(t *testing.T) {
	clock := fakeClock{t: testNow}

	src := &IndexMarketData{IndexID: "vtsax", PeriodYears: 10, Clock: clock}
	rate, err := src.FetchRate(context.Background())
	if err != nil {
		t.Fatalf("FetchRate: %v", err)
	}
	if math.Abs(rate.TenYearReturn-0.122) > 1e-12 || rate.IsFallback() {
		t.Errorf("got %+v", rate)
	}

	// A period the table lacks uses the fund's long-term default
	src = &IndexMarketData{IndexID: "vfiax", PeriodYears: 7, Clock: clock}
	rate, _ = src.FetchRate(context.Background())
	if rate.TenYearReturn != GetStockIndex("vfiax").DefaultReturn {
		t.Errorf("missing period returned %v", rate.TenYearReturn)
	}

	src = &IndexMarketData{IndexID: "nope", Clock: clock}
	if _, err := src.FetchRate(context.Background()); !errors.Is(err, ErrUnknownIndex) {
		t.Errorf("expected ErrUnknownIndex, got %v", err)
	}
}

func TestIndexMarketData_NegativeReturn(t *testing.T) {
	clock := fakeClock{t: testNow}
	bonds := &IndexMarketData{IndexID: "vbtlx", PeriodYears: 3, Clock: clock}

	if _, err := bonds.FetchRate(context.Background()); !errors.Is(err, ErrNegativeReturn) {
		t.Fatalf("expected ErrNegativeReturn, got %v", err)
	}

	// The chain treats it as a failure and answers with the fallback rate
	got := GetBaseReturnRate(context.Background(), bonds, nil, clock)
	if !got.IsFallback() || got.TenYearReturn != FallbackAnnualReturn {
		t.Errorf("got %+v, want the fallback record", got)
	}

	p := ProjectGrowth(1000, got.TenYearReturn, DefaultHorizonYears)
	if p.Optimistic <= p.Conservative {
		t.Errorf("optimistic %v not above conservative %v", p.Optimistic, p.Conservative)
	}
}

func TestRateCache_FallbackUntilLoaded(t *testing.T) {
	clock := fakeClock{t: testNow}
	custom := &CustomMarketData{Rate: 0.07, Clock: clock}
	cache := NewRateCache(custom, nil, clock)

	if cache.Loaded() {
		t.Fatal("new cache reports loaded")
	}
	if got := cache.Rate(); got != FallbackMarketRate(testNow) {
		t.Errorf("Rate before load = %+v, want fallback", got)
	}

	got := cache.Load(context.Background())
	if got.TenYearReturn != 0.07 || got.Source != "Custom Rate (config)" {
		t.Errorf("Load = %+v", got)
	}
	if !cache.Loaded() || cache.Rate() != got {
		t.Errorf("cache not updated after load")
	}
	select {
	case <-cache.Done():
	default:
		t.Error("Done not closed after load")
	}
}

func TestRateCache_RateDoesNotBlock(t *testing.T) {
	clock := fakeClock{t: testNow}
	src := &blockingSource{release: make(chan struct{}), rate: MarketRate{TenYearReturn: 0.122, Source: "VTSAX"}}
	cache := NewRateCache(src, nil, clock)

	go cache.Load(context.Background())

	// Load is parked in FetchRate; Rate must still answer immediately
	if got := cache.Rate(); got.Source != FallbackSourceLabel {
		t.Errorf("Rate during load = %+v, want fallback", got)
	}

	close(src.release)
	select {
	case <-cache.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("load did not finish")
	}
	if got := cache.Rate(); got.Source != "VTSAX" {
		t.Errorf("Rate after load = %+v", got)
	}
}

func TestRateCache_LoadsOnce(t *testing.T) {
	src := &stubSource{rate: MarketRate{TenYearReturn: 0.08, Source: "stub"}}
	cache := NewRateCache(src, nil, fakeClock{t: testNow})

	cache.Load(context.Background())
	cache.Load(context.Background())
	if src.calls != 1 {
		t.Errorf("source fetched %d times, want 1", src.calls)
	}
}

func TestStockIndices(t *testing.T) {
	if GetStockIndex("vtsax") == nil {
		t.Fatal("vtsax missing")
	}
	if GetStockIndex("unknown") != nil {
		t.Error("unknown index found")
	}

	periods := GetAllReturnPeriods()
	for i := 1; i < len(periods); i++ {
		if periods[i] <= periods[i-1] {
			t.Errorf("periods not ascending and unique: %v", periods)
		}
	}
	if !slices.Contains(periods, 10) {
		t.Errorf("10-year period missing from %v", periods)
	}
}

