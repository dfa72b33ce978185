package agent

import (
	"context"

	"go.uber.org/zap"

	"github.com/careerpilot/linkedin-optimizer-go/internal/constants"
	"github.com/careerpilot/linkedin-optimizer-go/internal/domain"
	"github.com/careerpilot/linkedin-optimizer-go/internal/prompt"
	"github.com/careerpilot/linkedin-optimizer-go/internal/service/llm"
	"github.com/careerpilot/linkedin-optimizer-go/internal/util"
)

// FollowUpGenerator suggests the next questions rendered under each
// reply. It always returns a full trio, padding from the static set
// when the model returns fewer or nothing.
type FollowUpGenerator struct {
	invoker ModelInvoker
	logger  *zap.Logger
}

func NewFollowUpGenerator(invoker ModelInvoker, logger *zap.Logger) *FollowUpGenerator {
	return &FollowUpGenerator{invoker: invoker, logger: logger}
}

func (g *FollowUpGenerator) Questions(ctx context.Context, branch domain.Branch, reply string, hasProfile bool) []string {
	promptText := prompt.BuildFollowUpPrompt(prompt.FollowUpPromptVars{
		Branch:       branch.DisplayName(),
		ReplySummary: util.TruncateString(reply, constants.StringLimits.SnippetLength),
		HasProfile:   hasProfile,
	})

	text, _, err := g.invoker.Generate(ctx, promptText, llm.PresetRouter, nil)
	if err != nil {
		g.logger.Debug("Follow-up generation failed, using static set", zap.Error(err))
		return fallbackFollowUps(branch)
	}

	questions := make([]string, 0, constants.StringLimits.FollowUpCount)
	for _, line := range bulletLines(text, constants.StringLimits.FollowUpCount) {
		questions = append(questions, util.TruncateString(line, constants.StringLimits.FollowUpLength))
	}

	// pad a short list from the static set, skipping duplicates
	for _, static := range fallbackFollowUps(branch) {
		if len(questions) >= constants.StringLimits.FollowUpCount {
			break
		}
		if !util.Contains(questions, static) {
			questions = append(questions, static)
		}
	}
	return questions
}
