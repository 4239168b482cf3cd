package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Classifier ClassifierConfig  `yaml:"classifier"`
	Filter     FilterConfig      `yaml:"filter"`
	Fees       FeeScheduleConfig `yaml:"fees"`
	Feed       FeedConfig        `yaml:"feed"`
}

func LoadConfig(filename string) (Config, error) {
	var cfg Config
	input, err := os.ReadFile(filename)
	if err != nil {
		return cfg, fmt.Errorf("%w: can't read file", err)
	}

	if err := yaml.Unmarshal(input, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: can't unmarshal config", err)
	}

	if err := cfg.ValidateAndSetup(); err != nil {
		return cfg, fmt.Errorf("%w: can't setup cfg", err)
	}

	return cfg, nil
}

func (c *Config) ValidateAndSetup() error {
	if err := c.Classifier.Setup(); err != nil {
		return fmt.Errorf("%w: can't setup classifier", err)
	}
	c.Filter.Setup()
	c.Fees.Setup()
	if err := c.Feed.Setup(); err != nil {
		return fmt.Errorf("%w: can't setup feed", err)
	}
	return nil
}

type FeedConfig struct {
	Address           string `yaml:"address"`
	RequestsPerMinute int    `yaml:"requests_per_minute"`
}

const _requestsPerMinuteDefault = 300

func (c *FeedConfig) Setup() error {
	if c.Address == "" {
		return fmt.Errorf("feed address is required")
	}
	if _, err := url.Parse(c.Address); err != nil {
		return err
	}
	if c.RequestsPerMinute <= 0 {
		c.RequestsPerMinute = _requestsPerMinuteDefault
	}
	return nil
}

type ClassifierConfig struct {
	BenchmarkSymbol  string    `yaml:"benchmark_symbol"`
	VolatilitySymbol string    `yaml:"volatility_symbol"`
	SMAWindow        int       `yaml:"sma_window"`
	BackfillDays     int       `yaml:"backfill_days"`
	ExtremeVol       float64   `yaml:"extreme_vol_threshold"`
	HighVol          float64   `yaml:"high_vol_threshold"`
	ElevatedVol      float64   `yaml:"elevated_vol_threshold"`
	From             time.Time `yaml:"from"`
	To               time.Time `yaml:"to"`
}

const (
	_benchmarkSymbolDefault  = "SPY"
	_volatilitySymbolDefault = "VIX"
	_smaWindowDefault        = 200
	_backfillDaysDefault     = 5
	_extremeVolDefault       = 35
	_highVolDefault          = 25
	_elevatedVolDefault      = 20
)

func (c *ClassifierConfig) Setup() error {
	if c.BenchmarkSymbol == "" {
		c.BenchmarkSymbol = _benchmarkSymbolDefault
	}
	if c.VolatilitySymbol == "" {
		c.VolatilitySymbol = _volatilitySymbolDefault
	}
	if c.SMAWindow <= 0 {
		c.SMAWindow = _smaWindowDefault
	}
	if c.BackfillDays <= 0 {
		c.BackfillDays = _backfillDaysDefault
	}
	if c.ExtremeVol <= 0 {
		c.ExtremeVol = _extremeVolDefault
	}
	if c.HighVol <= 0 {
		c.HighVol = _highVolDefault
	}
	if c.ElevatedVol <= 0 {
		c.ElevatedVol = _elevatedVolDefault
	}
	if !c.From.IsZero() && !c.To.IsZero() && c.From.After(c.To) {
		return fmt.Errorf("classifier interval: from after to")
	}
	return nil
}
