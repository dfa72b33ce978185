package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/careerpilot/linkedin-optimizer-go/internal/constants"
	"github.com/careerpilot/linkedin-optimizer-go/pkg/errors"
	"go.uber.org/zap"
)

// Job boards the search is pinned to; anything else returns listicles
// instead of actual postings.
var jobBoardDomains = []string{
	"linkedin.com",
	"indeed.com",
	"glassdoor.com",
	"monster.com",
	"ziprecruiter.com",
}

// TavilyClient queries the hosted search API for live job descriptions.
// A nil client or empty key reports Enabled() == false and the jobs
// service skips this tier.
type TavilyClient struct {
	httpClient *http.Client
	apiKey     string
	logger     *zap.Logger
}

type tavilyRequest struct {
	APIKey            string   `json:"api_key"`
	Query             string   `json:"query"`
	SearchDepth       string   `json:"search_depth"`
	IncludeDomains    []string `json:"include_domains,omitempty"`
	MaxResults        int      `json:"max_results"`
	IncludeAnswer     bool     `json:"include_answer"`
	IncludeRawContent bool     `json:"include_raw_content"`
}

type tavilyResult struct {
	Title      string `json:"title"`
	URL        string `json:"url"`
	Content    string `json:"content"`
	RawContent string `json:"raw_content"`
}

type tavilyResponse struct {
	Answer  string         `json:"answer"`
	Results []tavilyResult `json:"results"`
}

func NewTavilyClient(httpClient *http.Client, apiKey string, logger *zap.Logger) *TavilyClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.APIConfig.TavilyTimeout}
	}
	return &TavilyClient{
		httpClient: httpClient,
		apiKey:     apiKey,
		logger:     logger,
	}
}

func (t *TavilyClient) Enabled() bool {
	return t != nil && t.apiKey != ""
}

// SearchJobDescription fetches posting text for a role. The returned text
// is the search answer plus the top three result contents, HTML stripped.
func (t *TavilyClient) SearchJobDescription(ctx context.Context, role, location string) (string, error) {
	if !t.Enabled() {
		return "", errors.NewAPIError("search API key not configured", 0, nil)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.APIConfig.TavilyTimeout)
	defer cancel()

	query := fmt.Sprintf("%s job description requirements skills", role)
	if location != "" {
		query += " " + location
	}

	reqBody := tavilyRequest{
		APIKey:            t.apiKey,
		Query:             query,
		SearchDepth:       "advanced",
		IncludeDomains:    jobBoardDomains,
		MaxResults:        constants.APIConfig.MaxSearchResult,
		IncludeAnswer:     true,
		IncludeRawContent: true,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		constants.APIConfig.TavilyBaseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	t.logger.Debug("Searching job descriptions",
		zap.String("role", role),
		zap.String("location", location),
	)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", errors.NewAPIError("search request failed", 0, map[string]any{"role": role}).WithCause(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.NewAPIError("failed to read search response", resp.StatusCode, nil).WithCause(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errors.NewAPIError(
			fmt.Sprintf("search failed with status %d", resp.StatusCode),
			resp.StatusCode, map[string]any{"role": role},
		)
	}

	var parsed tavilyResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", errors.NewAPIError("invalid search response", resp.StatusCode, nil).WithCause(err)
	}

	text := t.assembleText(parsed)
	if text == "" {
		return "", errors.NewAPIError("search returned no usable content", resp.StatusCode, map[string]any{"role": role})
	}

	t.logger.Info("Job description found online",
		zap.String("role", role),
		zap.Int("results", len(parsed.Results)),
		zap.Int("text_length", len(text)),
	)

	return text, nil
}

func (t *TavilyClient) assembleText(resp tavilyResponse) string {
	var parts []string

	if answer := strings.TrimSpace(resp.Answer); answer != "" {
		parts = append(parts, answer)
	}

	for i, result := range resp.Results {
		if i >= 3 {
			break
		}
		content := result.Content
		if result.RawContent != "" {
			content = result.RawContent
		}
		if cleaned := CleanHTML(content); cleaned != "" {
			parts = append(parts, cleaned)
		}
	}

	return strings.Join(parts, "\n\n")
}

// CleanHTML strips markup from raw page content, returning plain text.
// Non-HTML input passes through with whitespace squeezed.
func CleanHTML(content string) string {
	content = strings.TrimSpace(content)
	if content == "" {
		return ""
	}

	if strings.Contains(content, "<") && strings.Contains(content, ">") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
		if err == nil {
			doc.Find("script, style, nav, footer, noscript").Remove()
			content = doc.Text()
		}
	}

	return squeezeWhitespace(content)
}

func squeezeWhitespace(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
