// Package analyzer turns a question into numeric text metrics by querying an
// external text-analysis service, falling back to locally computed counts.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/alvmarrod/hl3-confirmer/internal/search"
	"github.com/alvmarrod/hl3-confirmer/internal/version"
)

// Result is the outcome of one analysis.
type Result struct {
	Metrics  []search.Metric
	Fallback bool
}

// Client queries the text-analysis endpoint
type Client struct {
	endpoint  string
	collector *colly.Collector
	limiter   *rate.Limiter
}

// NewClient creates a client for endpoint. ratePerSec <= 0 disables rate limiting.
func NewClient(endpoint string, timeout time.Duration, ratePerSec float64) *Client {
	collector := colly.NewCollector(
		colly.AllowURLRevisit(),
		colly.UserAgent("hl3-confirmer/"+version.Version),
	)
	collector.SetRequestTimeout(timeout)

	limit, burst := rate.Inf, 1
	if ratePerSec > 0 {
		limit = rate.Limit(ratePerSec)
		if int(ratePerSec) > burst {
			burst = int(ratePerSec)
		}
	}

	return &Client{
		endpoint:  endpoint,
		collector: collector,
		limiter:   rate.NewLimiter(limit, burst),
	}
}

// Analyze returns the metrics of message. Any failure is logged and answered
// with Fallback(message).
func (c *Client) Analyze(ctx context.Context, message string) Result {
	metrics, err := c.fetch(ctx, message)
	if err != nil {
		logrus.Warnf("Text analysis failed, using fallback metrics: %v", err)
		return Result{Metrics: Fallback(message), Fallback: true}
	}
	logrus.Debugf("Text analysis returned %d numeric metrics", len(metrics))
	return Result{Metrics: metrics}
}

func (c *Client) fetch(ctx context.Context, message string) ([]search.Metric, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	// Callbacks are per request; Clone shares the HTTP backend.
	collector := c.collector.Clone()

	var body []byte
	var fetchErr error
	collector.OnResponse(func(r *colly.Response) {
		body = r.Body
	})
	collector.OnError(func(r *colly.Response, err error) {
		status := 0
		if r != nil {
			status = r.StatusCode
		}
		fetchErr = fmt.Errorf("status %d: %w", status, err)
	})

	target := c.endpoint + "?text=" + url.QueryEscape(message)
	if err := collector.Visit(target); err != nil && fetchErr == nil {
		fetchErr = err
	}
	if fetchErr != nil {
		return nil, fmt.Errorf("request to %s failed: %w", c.endpoint, fetchErr)
	}
	if body == nil {
		return nil, errors.New("empty response")
	}

	return DecodeMetrics(body)
}
