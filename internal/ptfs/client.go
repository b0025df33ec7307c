package ptfs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/yegors/atc24-radar/pkg/logger"
)

// Client is the REST API client for the feed's on-demand query endpoints,
// used as a fallback/poll path independent of the stream. Outbound requests
// are capped by a rate limiter shared across all endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logger.Logger
}

// NewClient creates a REST client for the given base URL
func NewClient(baseURL string, timeout time.Duration, maxRequestsPerSec int, log *logger.Logger) *Client {
	if maxRequestsPerSec <= 0 {
		maxRequestsPerSec = 1
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(maxRequestsPerSec), maxRequestsPerSec),
		logger:  log.Named("rest-client"),
	}
}

// AircraftData fetches the current aircraft map from the REST endpoint
func (c *Client) AircraftData(ctx context.Context) (AircraftBatch, error) {
	var batch AircraftBatch
	if err := c.getJSON(ctx, "/acft-data", &batch); err != nil {
		return nil, fmt.Errorf("failed to fetch aircraft data: %w", err)
	}
	return batch, nil
}

// Controllers fetches the current controller position list
func (c *Client) Controllers(ctx context.Context) ([]ControllerPosition, error) {
	var positions []ControllerPosition
	if err := c.getJSON(ctx, "/controllers", &positions); err != nil {
		return nil, fmt.Errorf("failed to fetch controllers: %w", err)
	}
	return positions, nil
}

// ATIS fetches the ATIS broadcasts for all airports
func (c *Client) ATIS(ctx context.Context) ([]Atis, error) {
	var atis []Atis
	if err := c.getJSON(ctx, "/atis", &atis); err != nil {
		return nil, fmt.Errorf("failed to fetch ATIS: %w", err)
	}
	return atis, nil
}

// IsController checks whether the given external (Discord) identity holds a
// controller position.
func (c *Client) IsController(ctx context.Context, discordID string) (bool, error) {
	var isController bool
	path := "/is-controller/" + url.PathEscape(discordID)
	if err := c.getJSON(ctx, path, &isController); err != nil {
		return false, fmt.Errorf("failed to check controller status: %w", err)
	}
	return isController, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	urlStr := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("Fetching", logger.String("url", urlStr))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	return nil
}
