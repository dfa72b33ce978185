package llm

import "context"

// ModelPreset represents the model usage preset
type ModelPreset string

const (
	PresetRouter   ModelPreset = "router"   // deterministic classification
	PresetAnalysis ModelPreset = "analysis" // report generation
	PresetCreative ModelPreset = "creative" // content rewriting
)

// ModelConfig holds model configuration
type ModelConfig struct {
	Temperature      float32
	TopP             float32
	TopK             int
	MaxOutputTokens  int
	ResponseMimeType string // "application/json" or "text/plain"
}

// GetPresetConfig returns the configuration for a preset
func GetPresetConfig(preset ModelPreset) ModelConfig {
	switch preset {
	case PresetRouter:
		return ModelConfig{
			Temperature:     0.1,
			TopP:            0.9,
			TopK:            20,
			MaxOutputTokens: 256,
		}
	case PresetCreative:
		return ModelConfig{
			Temperature:     0.7,
			TopP:            0.95,
			TopK:            40,
			MaxOutputTokens: 2048,
		}
	case PresetAnalysis:
		return ModelConfig{
			Temperature:     0.6,
			TopP:            0.9,
			TopK:            40,
			MaxOutputTokens: 2048,
		}
	default:
		return GetPresetConfig(PresetAnalysis)
	}
}

// GenerateMetadata contains metadata about the generation
type GenerateMetadata struct {
	Provider     string
	Model        string
	UsedFallback bool
}

// GenerateOptions holds options for generation
type GenerateOptions struct {
	Model     string
	JSONMode  bool
	System    string
	Overrides *ModelConfig
}

// ProviderResult is a single provider's raw response
type ProviderResult struct {
	Text  string
	Model string
}

// Provider is one hosted LLM behind the fallback chain
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string, preset ModelPreset, opts *GenerateOptions) (ProviderResult, error)
	Ping(ctx context.Context) bool
}
