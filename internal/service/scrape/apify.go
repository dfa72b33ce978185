package scrape

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/careerpilot/linkedin-optimizer-go/internal/constants"
	"github.com/careerpilot/linkedin-optimizer-go/pkg/errors"
	"go.uber.org/zap"
)

// ActorClient fetches one raw profile dataset item for a username
type ActorClient interface {
	FetchProfile(ctx context.Context, username string) (map[string]any, error)
}

// ApifyClient runs the hosted LinkedIn scraping actor synchronously and
// returns its dataset items. One attempt per call; failures surface to the
// caller, which falls back per the chat path's rules.
type ApifyClient struct {
	httpClient *http.Client
	apiToken   string
	logger     *zap.Logger
}

func NewApifyClient(httpClient *http.Client, apiToken string, logger *zap.Logger) *ApifyClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.APIConfig.ApifyTimeout}
	}
	return &ApifyClient{
		httpClient: httpClient,
		apiToken:   apiToken,
		logger:     logger,
	}
}

func (c *ApifyClient) FetchProfile(ctx context.Context, username string) (map[string]any, error) {
	if c.apiToken == "" {
		return nil, errors.NewScrapeError("Apify API token not configured", username, 0, nil)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.APIConfig.ApifyTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/acts/%s/run-sync-get-dataset-items?token=%s",
		constants.APIConfig.ApifyBaseURL,
		constants.APIConfig.ApifyActorID,
		url.QueryEscape(c.apiToken),
	)

	payload := map[string]any{
		"usernames":    []string{username},
		"includeEmail": false,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal actor input: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Info("Running scraping actor",
		zap.String("username", username),
		zap.String("actor", constants.APIConfig.ApifyActorID),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewScrapeError("actor request failed", username, 0, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewScrapeError("failed to read actor response", username, resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("Actor run failed",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", respBody[:min(len(respBody), 300)]),
		)
		return nil, errors.NewScrapeError(
			fmt.Sprintf("actor run failed with status %d", resp.StatusCode),
			username, resp.StatusCode, nil,
		)
	}

	var items []map[string]any
	if err := json.Unmarshal(respBody, &items); err != nil {
		return nil, errors.NewScrapeError("invalid actor response", username, resp.StatusCode, err)
	}

	if len(items) == 0 {
		return nil, errors.NewScrapeError("actor returned no profile data", username, resp.StatusCode, nil)
	}

	c.logger.Info("Actor run completed",
		zap.String("username", username),
		zap.Int("items", len(items)),
	)

	return items[0], nil
}
