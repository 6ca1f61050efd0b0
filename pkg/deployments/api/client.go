package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"mercator-hq/saturn/pkg/deployments"
)

// Config contains configuration for the deployment API client.
type Config struct {
	// BaseURL is the deployment API base URL.
	BaseURL string

	// Token is the opaque access token sent verbatim as a bearer
	// credential. It is never logged.
	Token string

	// Timeout is the per-request timeout.
	// Default: 30s
	Timeout time.Duration

	// PageSize is the number of deployments requested per listing page.
	// Default: 100
	PageSize int

	// UserAgent identifies this client to the API.
	// Default: "saturn"
	UserAgent string

	// MaxIdleConns caps the connection pool across all hosts.
	// Default: 10
	MaxIdleConns int

	// MaxIdleConnsPerHost caps the connection pool per host.
	// Default: 5
	MaxIdleConnsPerHost int

	// IdleConnTimeout is how long an idle connection stays pooled.
	// Default: 90s
	IdleConnTimeout time.Duration
}

// Client talks to the deployment API over HTTP. It implements
// deployments.Repository.
//
// Every call makes exactly one attempt per request: failures surface as
// errors and are never retried here.
type Client struct {
	config Config
	client *http.Client
	logger *slog.Logger
}

// NewClient creates a deployment API client. The base URL is required;
// all other settings fall back to defaults when unset.
func NewClient(config Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if _, err := url.Parse(config.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.PageSize <= 0 {
		config.PageSize = 100
	}
	if config.UserAgent == "" {
		config.UserAgent = "saturn"
	}
	if config.MaxIdleConns == 0 {
		config.MaxIdleConns = 10
	}
	if config.MaxIdleConnsPerHost == 0 {
		config.MaxIdleConnsPerHost = 5
	}
	if config.IdleConnTimeout == 0 {
		config.IdleConnTimeout = 90 * time.Second
	}

	transport := &http.Transport{
		MaxIdleConns:        config.MaxIdleConns,
		MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
		IdleConnTimeout:     config.IdleConnTimeout,
		DisableCompression:  false,
		ForceAttemptHTTP2:   true,
	}

	return &Client{
		config: config,
		client: &http.Client{
			Transport: transport,
			Timeout:   config.Timeout,
		},
		logger: slog.Default().With("component", "deployments.api"),
	}, nil
}

// List fetches all deployments for an environment, following pagination
// until the API reports no further pages. The returned slice preserves the
// API's ordering across pages.
func (c *Client) List(ctx context.Context, environment string) ([]deployments.Deployment, error) {
	endpoint := fmt.Sprintf("%s/v1/environments/%s/deployments", c.config.BaseURL, url.PathEscape(environment))

	var all []deployments.Deployment
	pageToken := ""
	pages := 0
	for {
		query := url.Values{}
		query.Set("page_size", strconv.Itoa(c.config.PageSize))
		if pageToken != "" {
			query.Set("page_token", pageToken)
		}

		page, next, err := c.fetchPage(ctx, endpoint+"?"+query.Encode())
		if err != nil {
			return nil, deployments.NewListingError(environment, err)
		}

		all = append(all, page...)
		pages++
		if next == "" {
			break
		}
		pageToken = next
	}

	c.logger.Debug("deployments listed",
		"environment", environment,
		"count", len(all),
		"pages", pages)

	return all, nil
}

// listResponse is the deployment API's listing page envelope.
type listResponse struct {
	Deployments   []deployments.Deployment `json:"deployments"`
	NextPageToken string                   `json:"next_page_token"`
}

// fetchPage requests a single listing page and returns its deployments
// along with the token for the next page, if any.
func (c *Client) fetchPage(ctx context.Context, endpoint string) ([]deployments.Deployment, string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, endpoint)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", decodeStatusError(resp)
	}

	var page listResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, "", fmt.Errorf("failed to decode listing page: %w", err)
	}

	return page.Deployments, page.NextPageToken, nil
}

// Delete removes a single deployment. It makes exactly one attempt and
// treats 200, 202 and 204 as success.
func (c *Client) Delete(ctx context.Context, id int64) error {
	endpoint := fmt.Sprintf("%s/v1/deployments/%d", c.config.BaseURL, id)

	req, err := c.newRequest(ctx, http.MethodDelete, endpoint)
	if err != nil {
		return deployments.NewDeletionError(id, fmt.Errorf("failed to create request: %w", err))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return deployments.NewDeletionError(id, fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		c.logger.Debug("deployment deleted", "deployment_id", id)
		return nil
	default:
		return deployments.NewDeletionError(id, decodeStatusError(resp))
	}
}

// newRequest builds a request carrying the client's standing headers.
func (c *Client) newRequest(ctx context.Context, method, endpoint string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)
	if c.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}

	return req, nil
}

// Close releases pooled connections held by the client.
func (c *Client) Close() {
	c.client.CloseIdleConnections()
}
