package router

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/dgraph-io/ristretto"
	"go.uber.org/zap"

	"github.com/careerpilot/linkedin-optimizer-go/internal/constants"
	"github.com/careerpilot/linkedin-optimizer-go/internal/domain"
	"github.com/careerpilot/linkedin-optimizer-go/internal/prompt"
	"github.com/careerpilot/linkedin-optimizer-go/internal/service/llm"
	"github.com/careerpilot/linkedin-optimizer-go/internal/util"
)

// ModelInvoker is the slice of the model manager the router needs
type ModelInvoker interface {
	GenerateJSON(ctx context.Context, prompt string, preset llm.ModelPreset, dest any, opts *llm.GenerateOptions) (*llm.GenerateMetadata, error)
}

var controlCharsPattern = regexp.MustCompile(`[\x00-\x1F\x7F]`)
var whitespacePattern = regexp.MustCompile(`\s+`)

// Router classifies each user message into an agent branch. It tries
// keywords first, then the LLM, and answers from a short-lived decision
// cache for repeated queries.
type Router struct {
	invoker ModelInvoker
	cache   *ristretto.Cache
	logger  *zap.Logger
}

func NewRouter(invoker ModelInvoker, logger *zap.Logger) (*Router, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 50_000,
		MaxCost:     5_000,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create decision cache: %w", err)
	}

	return &Router{
		invoker: invoker,
		cache:   cache,
		logger:  logger,
	}, nil
}

// routerReply mirrors the JSON contract of the classification prompt
type routerReply struct {
	Agent      string  `json:"agent"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// Route decides which agent handles the query. It never fails: when
// both stages come up empty the counseling agent takes the turn.
func (r *Router) Route(ctx context.Context, query string, hasProfile bool, targetRole string) *domain.RouteDecision {
	sanitized := sanitizeQuery(query)
	if sanitized == "" {
		return &domain.RouteDecision{
			Branch:     domain.BranchCareerCounseling,
			Confidence: 0,
			Reasoning:  "empty query",
			Source:     domain.RouteSourceDefault,
		}
	}

	normalized := util.Normalize(sanitized)
	cacheKey := "route:" + normalized

	if cached, ok := r.cache.Get(cacheKey); ok {
		if decision, ok := cached.(*domain.RouteDecision); ok {
			hit := *decision
			hit.Source = domain.RouteSourceCache
			return &hit
		}
	}

	if branch, phrase, ok := matchKeywords(normalized); ok {
		decision := &domain.RouteDecision{
			Branch:     branch,
			Confidence: 0.9,
			Reasoning:  fmt.Sprintf("keyword %q", phrase),
			Source:     domain.RouteSourceKeyword,
		}
		r.remember(cacheKey, decision)
		r.logger.Debug("Routed by keyword",
			zap.String("branch", branch.String()),
			zap.String("keyword", phrase),
		)
		return decision
	}

	decision := r.routeByLLM(ctx, sanitized, hasProfile, targetRole)
	if decision.Source == domain.RouteSourceLLM {
		r.remember(cacheKey, decision)
	}
	return decision
}

func (r *Router) routeByLLM(ctx context.Context, query string, hasProfile bool, targetRole string) *domain.RouteDecision {
	promptText := prompt.BuildRouterPrompt(prompt.RouterPromptVars{
		Query:      query,
		HasProfile: hasProfile,
		TargetRole: targetRole,
	})

	var reply routerReply
	metadata, err := r.invoker.GenerateJSON(ctx, promptText, llm.PresetRouter, &reply, nil)
	if err != nil {
		r.logger.Warn("Routing LLM call failed, defaulting to counseling", zap.Error(err))
		return &domain.RouteDecision{
			Branch:     domain.BranchCareerCounseling,
			Confidence: 0,
			Reasoning:  "classification unavailable",
			Source:     domain.RouteSourceDefault,
		}
	}

	branch, ok := branchFromReply(reply.Agent)
	if !ok {
		r.logger.Warn("Router returned unknown agent, defaulting to counseling",
			zap.String("agent", reply.Agent),
		)
		return &domain.RouteDecision{
			Branch:     domain.BranchCareerCounseling,
			Confidence: 0,
			Reasoning:  "unrecognized agent name",
			Source:     domain.RouteSourceDefault,
		}
	}

	confidence := reply.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	r.logger.Info("Routed by LLM",
		zap.String("branch", branch.String()),
		zap.Float64("confidence", confidence),
		zap.String("provider", metadata.Provider),
	)

	return &domain.RouteDecision{
		Branch:     branch,
		Confidence: confidence,
		Reasoning:  reply.Reasoning,
		Source:     domain.RouteSourceLLM,
	}
}

// branchFromReply maps the model's agent string onto a branch, tolerating
// synonyms and formatting drift
func branchFromReply(raw string) (domain.Branch, bool) {
	v := util.Normalize(raw)
	v = strings.ReplaceAll(v, "-", "_")
	v = strings.ReplaceAll(v, " ", "_")

	if b := domain.Branch(v); b.IsValid() {
		return b, true
	}

	switch {
	case strings.Contains(v, "profile"):
		return domain.BranchProfileAnalysis, true
	case strings.Contains(v, "match") || strings.Contains(v, "job"):
		return domain.BranchJobMatching, true
	case strings.Contains(v, "content") || strings.Contains(v, "writ") || strings.Contains(v, "generat"):
		return domain.BranchContentGeneration, true
	case strings.Contains(v, "career") || strings.Contains(v, "counsel") || strings.Contains(v, "coach"):
		return domain.BranchCareerCounseling, true
	}
	return domain.BranchUnknown, false
}

func (r *Router) remember(key string, decision *domain.RouteDecision) {
	r.cache.SetWithTTL(key, decision, 1, constants.CacheTTL.RouterDecision)
}

// sanitizeQuery strips control characters, squeezes whitespace and
// bounds the query length before it reaches a prompt
func sanitizeQuery(input string) string {
	withoutControl := controlCharsPattern.ReplaceAllString(input, " ")
	normalized := whitespacePattern.ReplaceAllString(withoutControl, " ")
	trimmed := strings.TrimSpace(normalized)

	runes := []rune(trimmed)
	if len(runes) > constants.InputLimits.MaxQueryLength {
		return string(runes[:constants.InputLimits.MaxQueryLength])
	}
	return trimmed
}
