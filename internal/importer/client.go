package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/stwalsh4118/vanprop/internal/logger"
)

// maxErrorBody bounds how much of a failed upstream response is logged.
const maxErrorBody = 512

// Client pages through the open-data records endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *logger.Logger
}

// NewClient creates a Client that issues at most ratePerSec requests per second.
func NewClient(baseURL string, timeout time.Duration, ratePerSec float64, log *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(ratePerSec), 1),
		log:     log.WithComponent("importer_client"),
	}
}

// FetchPage returns one page of records starting at offset.
func (c *Client) FetchPage(ctx context.Context, offset, limit int) (*Page, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid source url: %w", err)
	}
	params := u.Query()
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.log.Warn("Upstream returned an error", logger.Fields{
			"status": resp.StatusCode,
			"offset": offset,
			"body":   string(body),
		})
		return nil, fmt.Errorf("upstream status %d", resp.StatusCode)
	}

	var page Page
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}

	c.log.Debug("Fetched records page", logger.Fields{
		"offset":      offset,
		"count":       len(page.Results),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return &page, nil
}

// FetchAll pages through the endpoint in batches of batchSize until
// maxRecords have been requested or a page comes back empty.
func (c *Client) FetchAll(ctx context.Context, batchSize, maxRecords int) ([]Record, error) {
	var all []Record

	for offset := 0; offset < maxRecords; offset += batchSize {
		limit := batchSize
		if remaining := maxRecords - offset; remaining < limit {
			limit = remaining
		}

		page, err := c.FetchPage(ctx, offset, limit)
		if err != nil {
			return nil, err
		}
		if len(page.Results) == 0 {
			break
		}
		all = append(all, page.Results...)
	}

	c.log.Info("Fetched upstream records", logger.Fields{"count": len(all)})
	return all, nil
}
