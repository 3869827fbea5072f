package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ProjectionSummary holds the display strings for a projection
type ProjectionSummary struct {
	Amount                 string `json:"amount"`
	Conservative           string `json:"conservative"`
	Optimistic             string `json:"optimistic"`
	ConservativeGain       string `json:"conservative_gain"`
	OptimisticGain         string `json:"optimistic_gain"`
	ConservativeMultiplier string `json:"conservative_multiplier"`
	OptimisticMultiplier   string `json:"optimistic_multiplier"`
	ConservativeAnnual     string `json:"conservative_annual"`
	OptimisticAnnual       string `json:"optimistic_annual"`
}

// Summarize formats a projection of amount for display
func Summarize(amount float64, p Projection) ProjectionSummary {
	return ProjectionSummary{
		Amount:                 FormatCurrency(amount),
		Conservative:           FormatCurrency(p.Conservative),
		Optimistic:             FormatCurrency(p.Optimistic),
		ConservativeGain:       FormatCurrency(p.ConservativeGain(amount)),
		OptimisticGain:         FormatCurrency(p.OptimisticGain(amount)),
		ConservativeMultiplier: FormatMultiplier(p.ConservativeMultiplier(amount)),
		OptimisticMultiplier:   FormatMultiplier(p.OptimisticMultiplier(amount)),
		ConservativeAnnual:     FormatRate(ImpliedAnnualRate(p.Conservative, amount, p.Years)),
		OptimisticAnnual:       FormatRate(ImpliedAnnualRate(p.Optimistic, amount, p.Years)),
	}
}

// CalculationResult is everything the results view shows for one submission
type CalculationResult struct {
	ID               string            `json:"id"`
	Amount           float64           `json:"amount"`
	Projection       Projection        `json:"projection"`
	Schedule         []YearValue       `json:"schedule"`
	Summary          ProjectionSummary `json:"summary"`
	MarketData       MarketRate        `json:"market_data"`
	ConservativeRate float64           `json:"conservative_rate"`
	OptimisticRate   float64           `json:"optimistic_rate"`
	Suggestion       PetSuggestion     `json:"suggestion"`
	Quote            string            `json:"quote"`
	CalculatedAt     time.Time         `json:"calculated_at"`
}

// SessionState is a snapshot of the single user's session
type SessionState struct {
	Amount           *float64           `json:"amount"`
	Projection       *Projection        `json:"projection"`
	Last             *CalculationResult `json:"last,omitempty"`
	MarketData       MarketRate         `json:"market_data"`
	MarketDataLoaded bool               `json:"market_data_loaded"`
	Loading          bool               `json:"loading"`
	Error            string             `json:"error,omitempty"`
}

// Session orchestrates the calculator for one user: it owns the cached market rate,
// the entered amount and the latest projection.
type Session struct {
	config  *Config
	rates   *RateCache
	catalog CatalogProvider
	clock   Clock

	mu         sync.Mutex
	rng        *rand.Rand
	amount     *float64
	projection *Projection
	last       *CalculationResult
	loading    bool
	errMsg     string
}

// NewSession wires a session from its collaborators. A nil clock uses the wall clock.
func NewSession(config *Config, rates *RateCache, catalog CatalogProvider, clock Clock) *Session {
	clock = clockOrSystem(clock)
	return &Session{
		config:  config,
		rates:   rates,
		catalog: catalog,
		clock:   clock,
		rng:     rand.New(rand.NewSource(clock.Now().UnixNano())),
	}
}

// NewSessionFromConfig builds the market data and catalog sources described by config and env
func NewSessionFromConfig(config *Config, env EnvConfig, clock Clock) *Session {
	primary, alternate := config.MarketDataSources(clock)
	return NewSession(config, NewRateCache(primary, alternate, clock), config.CatalogProvider(env), clock)
}

// Start begins loading market data in the background. Calculations submitted before it
// finishes use the fallback rate.
func (s *Session) Start(ctx context.Context) {
	go s.rates.Load(ctx)
}

// Warm loads market data and prefetches the catalog concurrently and waits for both.
// Only a catalog failure is reported; market data always resolves to some rate.
// A catalog failure does not cancel the rate load.
func (s *Session) Warm(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		s.rates.Load(ctx)
		return nil
	})
	g.Go(func() error {
		if _, err := s.catalog.ListItems(ctx, AllCategories, catalogSearchLimit); err != nil {
			return fmt.Errorf("prefetch catalog %s: %w", s.catalog.Name(), err)
		}
		return nil
	})
	return g.Wait()
}

// Config returns the session's configuration
func (s *Session) Config() *Config {
	return s.config
}

// MarketData returns the cached market rate (the fallback record until loading finishes)
func (s *Session) MarketData() MarketRate {
	return s.rates.Rate()
}

// Catalog returns the session's catalog provider
func (s *Session) Catalog() CatalogProvider {
	return s.catalog
}

// CalculateInput parses form input and runs Calculate. Validation failures are returned
// as ValidationError and recorded as the session's error message.
func (s *Session) CalculateInput(ctx context.Context, input string) (CalculationResult, error) {
	amount, err := ParseAmount(input, s.config.Calculator.MaxAmount)
	if err != nil {
		s.setError(err.Error())
		return CalculationResult{}, err
	}
	return s.Calculate(ctx, amount)
}

// Calculate projects amount with the most recently cached rate and picks the dog's
// suggestion (budgeted on the optimistic value) and a quote.
func (s *Session) Calculate(ctx context.Context, amount float64) (CalculationResult, error) {
	if err := ValidateAmount(amount, s.config.Calculator.MaxAmount); err != nil {
		s.setError(err.Error())
		return CalculationResult{}, err
	}

	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	rate := s.rates.Rate()
	projection := ProjectGrowth(amount, rate.TenYearReturn, s.config.Calculator.HorizonYears)

	budget := projection.Optimistic
	if budget <= 0 {
		budget = amount
	}
	item, found := AffordableCatalogItem(ctx, s.catalog, budget)

	now := s.clock.Now()
	result := CalculationResult{
		ID:               uuid.NewString(),
		Amount:           amount,
		Projection:       projection,
		Schedule:         GrowthSchedule(amount, rate.TenYearReturn, projection.Years),
		Summary:          Summarize(amount, projection),
		MarketData:       rate,
		ConservativeRate: ConservativeRate(rate.TenYearReturn),
		OptimisticRate:   OptimisticRate(rate.TenYearReturn),
		Suggestion:       SuggestTreat(item, found, budget),
		Quote:            QuoteForAmount(amount, now),
		CalculatedAt:     now,
	}

	s.mu.Lock()
	s.amount = &result.Amount
	s.projection = &result.Projection
	s.last = &result
	s.loading = false
	s.mu.Unlock()

	log.Printf("Calculated %s: %s to %s over %d years (%s)",
		result.Summary.Amount, result.Summary.Conservative, result.Summary.Optimistic,
		projection.Years, rate.Source)
	return result, nil
}

// AnotherQuote returns a fresh quote for amount, or for the current amount when amount <= 0
func (s *Session) AnotherQuote(amount float64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if amount <= 0 && s.amount != nil {
		amount = *s.amount
	}
	return AnotherQuote(amount, s.clock.Now(), s.rng)
}

// Reset clears the amount, projection and error. The cached market rate is kept.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.amount = nil
	s.projection = nil
	s.last = nil
	s.loading = false
	s.errMsg = ""
}

// State returns a snapshot of the session
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionState{
		Amount:           s.amount,
		Projection:       s.projection,
		Last:             s.last,
		MarketData:       s.rates.Rate(),
		MarketDataLoaded: s.rates.Loaded(),
		Loading:          s.loading,
		Error:            s.errMsg,
	}
}

func (s *Session) setError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = msg
}
