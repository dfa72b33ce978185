package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/careerpilot/linkedin-optimizer-go/internal/constants"
	"github.com/careerpilot/linkedin-optimizer-go/internal/util"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// chainEntry pairs a provider with its own circuit breaker so an outage in
// one provider never blocks the rest of the chain.
type chainEntry struct {
	provider Provider
	breaker  *util.CircuitBreaker
}

// ModelManager runs the ordered provider chain: Gemini first, then OpenAI,
// then Anthropic, each attempted once per call. Callers that exhaust the
// chain substitute their own static fallback text.
type ModelManager struct {
	gemini  *GeminiProvider
	entries []chainEntry
	logger  *zap.Logger
}

type ModelManagerConfig struct {
	GeminiAPIKey            string
	GeminiModel             string
	OpenAIAPIKey            string
	OpenAIModel             string
	AnthropicAPIKey         string
	AnthropicModel          string
	EnableOpenAIFallback    bool
	EnableAnthropicFallback bool
}

func NewModelManager(ctx context.Context, cfg ModelManagerConfig, logger *zap.Logger) (*ModelManager, error) {
	geminiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	geminiModel := cfg.GeminiModel
	if geminiModel == "" {
		geminiModel = "gemini-2.5-flash"
	}

	mm := &ModelManager{
		gemini: NewGeminiProvider(geminiClient, geminiModel, logger),
		logger: logger,
	}
	mm.addProvider(mm.gemini)

	if cfg.EnableOpenAIFallback {
		openaiModel := cfg.OpenAIModel
		if openaiModel == "" {
			openaiModel = "gpt-4o-mini"
		}
		if p := NewOpenAIProvider(cfg.OpenAIAPIKey, openaiModel, logger); p != nil {
			mm.addProvider(p)
			logger.Info("OpenAI fallback enabled", zap.String("model", openaiModel))
		} else {
			logger.Info("OpenAI fallback disabled (no API key)")
		}
	}

	if cfg.EnableAnthropicFallback {
		anthropicModel := cfg.AnthropicModel
		if anthropicModel == "" {
			anthropicModel = "claude-3-7-sonnet-latest"
		}
		if p := NewAnthropicProvider(cfg.AnthropicAPIKey, anthropicModel, logger); p != nil {
			mm.addProvider(p)
			logger.Info("Anthropic fallback enabled", zap.String("model", anthropicModel))
		} else {
			logger.Info("Anthropic fallback disabled (no API key)")
		}
	}

	return mm, nil
}

func (mm *ModelManager) addProvider(p Provider) {
	breaker := util.NewCircuitBreaker(
		constants.CircuitBreakerConfig.FailureThreshold,
		constants.CircuitBreakerConfig.ResetTimeout,
		constants.CircuitBreakerConfig.HealthCheckInterval,
		func() bool {
			ctx, cancel := context.WithTimeout(context.Background(), constants.CircuitBreakerConfig.HealthCheckTimeout)
			defer cancel()
			return p.Ping(ctx)
		},
		mm.logger,
	)
	mm.entries = append(mm.entries, chainEntry{provider: p, breaker: breaker})
}

// GeminiClient exposes the underlying client for the embedding service
func (mm *ModelManager) GeminiClient() *genai.Client {
	if mm.gemini == nil {
		return nil
	}
	return mm.gemini.Client()
}

// Generate walks the provider chain and returns the first successful text
// response. Every provider gets exactly one attempt; open breakers are
// skipped outright.
func (mm *ModelManager) Generate(ctx context.Context, prompt string, preset ModelPreset, opts *GenerateOptions) (string, *GenerateMetadata, error) {
	var lastErr error

	for i, entry := range mm.entries {
		if !entry.breaker.CanExecute() {
			mm.logger.Warn("Skipping provider (circuit OPEN)",
				zap.String("provider", entry.provider.Name()),
				zap.Int("failure_count", entry.breaker.GetStatus().FailureCount),
			)
			continue
		}

		result, err := entry.provider.Generate(ctx, prompt, preset, opts)
		if err == nil {
			entry.breaker.RecordSuccess()
			return result.Text, &GenerateMetadata{
				Provider:     entry.provider.Name(),
				Model:        result.Model,
				UsedFallback: i > 0,
			}, nil
		}

		mm.recordFailure(entry.breaker, err)
		lastErr = err
	}

	if lastErr == nil {
		return "", nil, fmt.Errorf("no model provider available")
	}
	return "", nil, fmt.Errorf("all model providers failed: %w", lastErr)
}

// GenerateJSON generates in JSON mode and unmarshals the (fence-stripped)
// reply into dest.
func (mm *ModelManager) GenerateJSON(ctx context.Context, prompt string, preset ModelPreset, dest any, opts *GenerateOptions) (*GenerateMetadata, error) {
	var options GenerateOptions
	if opts != nil {
		options = *opts
	}
	options.JSONMode = true

	text, metadata, err := mm.Generate(ctx, prompt, preset, &options)
	if err != nil {
		return nil, err
	}

	return mm.decodeJSON(text, metadata, dest)
}

func (mm *ModelManager) decodeJSON(text string, metadata *GenerateMetadata, dest any) (*GenerateMetadata, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("%s API returned empty response", metadata.Provider)
	}

	cleaned := trimmed
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSpace(cleaned)
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}
	if strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	if err := json.Unmarshal([]byte(cleaned), dest); err != nil {
		previewLen := util.Min(len(cleaned), 200)
		mm.logger.Error("Failed to unmarshal JSON response",
			zap.String("provider", metadata.Provider),
			zap.Error(err),
			zap.String("response_preview", cleaned[:previewLen]),
		)
		return nil, fmt.Errorf("invalid JSON from %s: %w", metadata.Provider, err)
	}

	return metadata, nil
}

func (mm *ModelManager) recordFailure(breaker *util.CircuitBreaker, err error) {
	if err == nil {
		return
	}

	if !mm.isServiceFailure(err) {
		return
	}

	timeout := constants.CircuitBreakerConfig.ResetTimeout
	if mm.isRateLimitError(err) {
		timeout = constants.CircuitBreakerConfig.RateLimitTimeout
	}

	breaker.RecordFailure(timeout)
}

func (mm *ModelManager) isServiceFailure(err error) bool {
	if err == nil {
		return false
	}

	msg := err.Error()

	if strings.Contains(msg, "timeout") || strings.Contains(msg, "ETIMEDOUT") {
		return true
	}

	if mm.isRateLimitError(err) {
		return true
	}

	statusRegex := regexp.MustCompile(`\b(5\d{2})\b`)
	if statusRegex.MatchString(msg) {
		return true
	}

	geminiCodeRegex := regexp.MustCompile(`"code":(\d{3})`)
	if matches := geminiCodeRegex.FindStringSubmatch(msg); len(matches) > 1 {
		if code, err := strconv.Atoi(matches[1]); err == nil {
			return code >= 500 && code < 600
		}
	}

	openaiCodeRegex := regexp.MustCompile(`^(\d{3})\s`)
	if matches := openaiCodeRegex.FindStringSubmatch(msg); len(matches) > 1 {
		if code, err := strconv.Atoi(matches[1]); err == nil {
			return code >= 500 && code < 600
		}
	}

	return false
}

func (mm *ModelManager) isRateLimitError(err error) bool {
	if err == nil {
		return false
	}

	msg := err.Error()

	if strings.Contains(msg, "429") || strings.Contains(msg, "Rate limit") || strings.Contains(msg, "quota") {
		return true
	}

	geminiCodeRegex := regexp.MustCompile(`"code":(\d{3})`)
	if matches := geminiCodeRegex.FindStringSubmatch(msg); len(matches) > 1 {
		if code, err := strconv.Atoi(matches[1]); err == nil {
			return code == 429
		}
	}

	openaiCodeRegex := regexp.MustCompile(`^(\d{3})\s`)
	if matches := openaiCodeRegex.FindStringSubmatch(msg); len(matches) > 1 {
		if code, err := strconv.Atoi(matches[1]); err == nil {
			return code == 429
		}
	}

	return false
}

// CircuitStatus reports every provider's breaker state, keyed by name
func (mm *ModelManager) CircuitStatus() map[string]util.CircuitBreakerStatus {
	status := make(map[string]util.CircuitBreakerStatus, len(mm.entries))
	for _, entry := range mm.entries {
		status[entry.provider.Name()] = entry.breaker.GetStatus()
	}
	return status
}

// ResetCircuits manually closes every provider breaker
func (mm *ModelManager) ResetCircuits() {
	for _, entry := range mm.entries {
		entry.breaker.Reset()
	}
}
