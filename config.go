package main

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default-config.yaml
var defaultConfigYAML string

// DefaultMaxAmount is the largest purchase amount the input form accepts
const DefaultMaxAmount = 1_000_000

// Market data source names accepted in market_data.source
const (
	SourceFallback = "fallback" // hardcoded historical average (default)
	SourceIndex    = "index"    // StockIndices table, see market_data.index_id
	SourceCustom   = "custom"   // market_data.custom_rate
)

// CalculatorConfig holds projection settings
type CalculatorConfig struct {
	HorizonYears int     `yaml:"horizon_years" json:"horizon_years"`
	MaxAmount    float64 `yaml:"max_amount" json:"max_amount"`
}

// MarketDataConfig selects where the base annual rate comes from
type MarketDataConfig struct {
	Source           string        `yaml:"source" json:"source"`
	IndexID          string        `yaml:"index_id,omitempty" json:"index_id,omitempty"`
	PeriodYears      int           `yaml:"period_years,omitempty" json:"period_years,omitempty"`
	CustomRate       float64       `yaml:"custom_rate,omitempty" json:"custom_rate,omitempty"`
	Latency          time.Duration `yaml:"latency" json:"latency"`
	AlternateLatency time.Duration `yaml:"alternate_latency" json:"alternate_latency"`
}

// CatalogConfig controls the product catalog used for the dog's suggestions
type CatalogConfig struct {
	Category string        `yaml:"category" json:"category"`
	Limit    int           `yaml:"limit" json:"limit"`
	Latency  time.Duration `yaml:"latency" json:"latency"`
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

// ReportsConfig controls where HTML and PDF exports are written
type ReportsConfig struct {
	OutputDir string `yaml:"output_dir" json:"output_dir"`
}

// Config is the complete application configuration
type Config struct {
	Calculator CalculatorConfig `yaml:"calculator" json:"calculator"`
	MarketData MarketDataConfig `yaml:"market_data" json:"market_data"`
	Catalog    CatalogConfig    `yaml:"catalog" json:"catalog"`
	Server     ServerConfig     `yaml:"server" json:"server"`
	Reports    ReportsConfig    `yaml:"reports" json:"reports"`
}

// LoadConfig loads configuration from a YAML file.
// Percentages such as "10%" are accepted for rates.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return parseConfig(string(data))
}

// LoadDefaultConfig loads the configuration compiled into the binary
func LoadDefaultConfig() (*Config, error) {
	return parseConfig(defaultConfigYAML)
}

// LoadConfigOrDefault loads filename, falling back to the embedded defaults when it does not exist
func LoadConfigOrDefault(filename string) (*Config, error) {
	config, err := LoadConfig(filename)
	if os.IsNotExist(err) {
		return LoadDefaultConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", filename, err)
	}
	return config, nil
}

func parseConfig(content string) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal([]byte(preprocessPercentages(content)), &config); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// applyDefaults fills zero values so a partial config file behaves like the default one
func (c *Config) applyDefaults() {
	if c.Calculator.HorizonYears <= 0 {
		c.Calculator.HorizonYears = DefaultHorizonYears
	}
	if c.Calculator.MaxAmount <= 0 {
		c.Calculator.MaxAmount = DefaultMaxAmount
	}
	if c.MarketData.Source == "" {
		c.MarketData.Source = SourceFallback
	}
	if c.MarketData.PeriodYears <= 0 {
		c.MarketData.PeriodYears = DefaultHorizonYears
	}
	if c.Catalog.Category == "" {
		c.Catalog.Category = AllCategories
	}
	if c.Catalog.Limit <= 0 {
		c.Catalog.Limit = catalogSearchLimit
	}
	if c.Server.Addr == "" {
		c.Server.Addr = "localhost:0"
	}
	if c.Reports.OutputDir == "" {
		c.Reports.OutputDir = "exports"
	}
}

// Validate checks settings that cannot be defaulted
func (c *Config) Validate() error {
	switch c.MarketData.Source {
	case SourceFallback:
	case SourceIndex:
		idx := GetStockIndex(c.MarketData.IndexID)
		if idx == nil {
			return ValidationError{Field: "market_data.index_id", Message: fmt.Sprintf("unknown index %q", c.MarketData.IndexID)}
		}
		period := c.MarketData.PeriodYears
		if period <= 0 {
			period = DefaultHorizonYears
		}
		if rate := GetReturnForPeriod(idx, period); rate < 0 {
			return ValidationError{Field: "market_data.period_years", Message: fmt.Sprintf("%s %d year return is %s; pick a period with a non-negative return", idx.ShortName, period, FormatRate(rate))}
		}
	case SourceCustom:
		if err := validatePercent(c.MarketData.CustomRate, "market_data.custom_rate"); err != nil {
			return err
		}
	default:
		return ValidationError{Field: "market_data.source", Message: fmt.Sprintf("unknown market data source %q (want fallback, index or custom)", c.MarketData.Source)}
	}
	return nil
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	header := []byte(`# Simple Path Calculator Configuration
#
#   Percentages: 0.10 = 10% (or write 10%)
#   Durations:   500ms, 1s
#   market_data.source: fallback | index | custom
#
# See default-config.yaml for all available options with comments.

`)
	return os.WriteFile(filename, append(header, data...), 0644)
}

// preprocessPercentages converts percentage values like "5%" to decimal "0.05"
func preprocessPercentages(content string) string {
	re := regexp.MustCompile(`(:\s*)(-?\d+\.?\d*)%`)
	return re.ReplaceAllStringFunc(content, func(match string) string {
		parts := re.FindStringSubmatch(match)
		if len(parts) >= 3 {
			num, err := strconv.ParseFloat(parts[2], 64)
			if err == nil {
				return parts[1] + strconv.FormatFloat(num/100.0, 'f', -1, 64)
			}
		}
		return match
	})
}

// MarketDataSources builds the primary and alternate rate sources the config asks for
func (c *Config) MarketDataSources(clock Clock) (primary, alternate MarketDataSource) {
	switch c.MarketData.Source {
	case SourceIndex:
		return &IndexMarketData{IndexID: c.MarketData.IndexID, PeriodYears: c.MarketData.PeriodYears, Clock: clock}, nil
	case SourceCustom:
		return &CustomMarketData{Rate: c.MarketData.CustomRate, Clock: clock}, nil
	default:
		return &FallbackMarketData{Latency: c.MarketData.Latency, Clock: clock},
			&AlternateMarketData{Latency: c.MarketData.AlternateLatency, Clock: clock}
	}
}

// CatalogProvider builds the catalog chain: the pet product API when configured, then the fixture
func (c *Config) CatalogProvider(env EnvConfig) CatalogProvider {
	fixture := NewFixtureCatalog(c.Catalog.Latency)
	api := &PetProductAPI{APIKey: env.PetAPIKey, BaseURL: env.PetAPIURL}
	if !api.Configured() {
		return fixture
	}
	return &FallbackCatalog{Primary: api, Secondary: fixture}
}
