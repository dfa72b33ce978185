package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"
)

// AnthropicProvider wraps the Anthropic messages client.
type AnthropicProvider struct {
	client       *anthropic.Client
	defaultModel string
	logger       *zap.Logger
}

func NewAnthropicProvider(apiKey string, defaultModel string, logger *zap.Logger) *AnthropicProvider {
	if apiKey == "" {
		return nil
	}
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicProvider{
		client:       &client,
		defaultModel: defaultModel,
		logger:       logger,
	}
}

func (a *AnthropicProvider) Name() string {
	return "Anthropic"
}

func (a *AnthropicProvider) Generate(ctx context.Context, prompt string, preset ModelPreset, opts *GenerateOptions) (ProviderResult, error) {
	if a.client == nil {
		return ProviderResult{}, fmt.Errorf("anthropic client not initialized")
	}

	modelName := a.getModel(opts)
	config := GetPresetConfig(preset)

	if opts != nil && opts.Overrides != nil {
		if opts.Overrides.Temperature > 0 {
			config.Temperature = opts.Overrides.Temperature
		}
		if opts.Overrides.TopP > 0 {
			config.TopP = opts.Overrides.TopP
		}
		if opts.Overrides.MaxOutputTokens > 0 {
			config.MaxOutputTokens = opts.Overrides.MaxOutputTokens
		}
	}

	a.logger.Info("Fallback: Generating with Anthropic",
		zap.String("model", modelName),
		zap.String("preset", string(preset)),
	)

	userPrompt := prompt
	if opts != nil && opts.JSONMode {
		userPrompt = prompt + "\n\nRespond with valid JSON only. Do not include any text outside the JSON object."
	}

	params := anthropic.MessageNewParams{
		Model:       a.resolveModel(modelName),
		MaxTokens:   int64(config.MaxOutputTokens),
		Temperature: anthropic.Float(float64(config.Temperature)),
		TopP:        anthropic.Float(float64(config.TopP)),
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: userPrompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	}

	if opts != nil && opts.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: opts.System}}
	}

	resp, err := a.client.Messages.New(ctx, params)
	if err != nil {
		a.logger.Error("Anthropic generation failed", zap.Error(err))
		return ProviderResult{}, err
	}

	if len(resp.Content) == 0 {
		return ProviderResult{}, fmt.Errorf("empty response from Anthropic")
	}

	var text string
	for _, block := range resp.Content {
		text = block.AsText().Text
		break
	}
	if text == "" {
		return ProviderResult{}, fmt.Errorf("no text content in Anthropic response")
	}

	a.logger.Info("Anthropic response received", zap.Int("length", len(text)))
	return ProviderResult{Text: text, Model: modelName}, nil
}

func (a *AnthropicProvider) Ping(ctx context.Context) bool {
	if a.client == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	a.logger.Debug("Pinging Anthropic API...")

	_, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     a.resolveModel(a.defaultModel),
		MaxTokens: 10,
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: "ping"},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})

	if err != nil {
		a.logger.Debug("Anthropic ping failed", zap.Error(err))
		return false
	}

	return true
}

func (a *AnthropicProvider) resolveModel(modelName string) anthropic.Model {
	switch modelName {
	case "claude-3-7-sonnet-latest":
		return anthropic.ModelClaude3_7SonnetLatest
	default:
		return anthropic.Model(modelName)
	}
}

func (a *AnthropicProvider) getModel(opts *GenerateOptions) string {
	if opts != nil && opts.Model != "" {
		return opts.Model
	}
	return a.defaultModel
}
