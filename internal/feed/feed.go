package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/pivotlab/regime-core/internal/config"
	"github.com/pivotlab/regime-core/internal/logger"
	"github.com/pivotlab/regime-core/internal/model"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

const _dailyBarsURL = "/v1/daily"

// TimeSeries supplies normalized daily bars for a symbol. The feed may
// return an empty series; callers tolerate partial or missing data without
// failing a classification run.
type TimeSeries interface {
	Fetch(ctx context.Context, symbol string, from, to time.Time) ([]model.PriceSample, error)
	FetchVolatility(ctx context.Context, symbol string, from, to time.Time) ([]model.VolatilitySample, error)
}

type Client struct {
	c           *resty.Client
	rateLimiter ratelimit.Limiter

	logger logger.Logger
}

var _ TimeSeries = (*Client)(nil)

func NewClient(cfg config.FeedConfig, logger logger.Logger) *Client {
	client := resty.New().
		SetLogger(logger).
		SetBaseURL(cfg.Address)

	return &Client{
		c:           client,
		rateLimiter: ratelimit.New(cfg.RequestsPerMinute, ratelimit.Per(1*time.Minute)),
		logger:      logger,
	}
}

// Fetch returns the daily closes for symbol within [from, to]. An empty
// payload is not an error.
func (c *Client) Fetch(ctx context.Context, symbol string, from, to time.Time) ([]model.PriceSample, error) {
	bars, err := c.fetchBars(ctx, symbol, from, to)
	if err != nil {
		return nil, err
	}

	samples := make([]model.PriceSample, 0, len(bars))
	for _, bar := range bars {
		ts, err := time.Parse(time.DateOnly, bar.Date)
		if err != nil {
			c.logger.Warnf("%s: skipping bar with bad date %q for %s", err, bar.Date, symbol)
			continue
		}
		samples = append(samples, model.PriceSample{Ts: ts, ClosePrice: bar.Close})
	}
	return samples, nil
}

func (c *Client) FetchVolatility(ctx context.Context, symbol string, from, to time.Time) ([]model.VolatilitySample, error) {
	bars, err := c.fetchBars(ctx, symbol, from, to)
	if err != nil {
		return nil, err
	}

	samples := make([]model.VolatilitySample, 0, len(bars))
	for _, bar := range bars {
		ts, err := time.Parse(time.DateOnly, bar.Date)
		if err != nil {
			c.logger.Warnf("%s: skipping bar with bad date %q for %s", err, bar.Date, symbol)
			continue
		}
		samples = append(samples, model.VolatilitySample{Ts: ts, IndexClose: bar.Close})
	}
	return samples, nil
}

func (c *Client) fetchBars(ctx context.Context, symbol string, from, to time.Time) ([]model.FeedBar, error) {
	if from.After(to) {
		return nil, fmt.Errorf("invalid interval")
	}
	if symbol == "" {
		return nil, fmt.Errorf("no symbol")
	}

	c.rateLimiter.Take()

	req := c.c.R().
		SetQueryParams(map[string]string{
			"symbol": symbol,
			"from":   from.UTC().Format(time.DateOnly),
			"to":     to.UTC().Format(time.DateOnly),
		}).
		SetResult(&model.FeedBarsResponse{}).
		SetError(&model.FeedErrorResponse{}).
		SetContext(ctx)

	resp, err := req.Get(_dailyBarsURL)
	if err != nil {
		return nil, fmt.Errorf("%w: can't send request for daily bars", err)
	}
	defer resp.Body.Close()

	c.logger.Debugf("got response %s status: %s, %s", resp.Request.URL, resp.Status(), resp.Duration())

	if resp.IsError() {
		response := resp.Error().(*model.FeedErrorResponse)
		return nil, fmt.Errorf("%s: daily bars request error", response.Message)
	}
	if resp.IsSuccess() {
		bars := resp.Result().(*model.FeedBarsResponse).Bars
		if len(bars) == 0 {
			c.logger.Warnf("empty daily bars for %s from %s to %s",
				symbol, from.Format(time.DateOnly), to.Format(time.DateOnly))
		}
		return bars, nil
	}

	return nil, fmt.Errorf("daily bars unexpected request error: %s", resp.Status())
}
