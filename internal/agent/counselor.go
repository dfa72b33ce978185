package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/careerpilot/linkedin-optimizer-go/internal/constants"
	"github.com/careerpilot/linkedin-optimizer-go/internal/domain"
	"github.com/careerpilot/linkedin-optimizer-go/internal/prompt"
	"github.com/careerpilot/linkedin-optimizer-go/internal/service/llm"
	"github.com/careerpilot/linkedin-optimizer-go/internal/util"
)

// comprehensiveKeywords mark queries that deserve a full development
// plan instead of a conversational answer
var comprehensiveKeywords = []string{
	"career path", "roadmap", "transition", "long term", "long-term",
	"next role", "grow", "plan", "strategy", "5 years", "five years",
	"development plan", "where should i be",
}

// Counselor answers career questions, either as a structured plan or a
// conversational reply depending on the question's scope.
type Counselor struct {
	invoker ModelInvoker
	logger  *zap.Logger
}

func NewCounselor(invoker ModelInvoker, logger *zap.Logger) *Counselor {
	return &Counselor{invoker: invoker, logger: logger}
}

// CounselInputs carries the session state the counselor reads
type CounselInputs struct {
	Profile     *domain.Profile
	TargetRole  string
	CareerGoals string
	Memory      string
	Query       string
}

// Advise answers the career question. Comprehensive requests get the
// structured plan prompt and reply parsing; short questions get the
// conversational prompt and pass through.
func (c *Counselor) Advise(ctx context.Context, in CounselInputs) *domain.CareerAdvice {
	comprehensive := isComprehensiveQuery(in.Query)
	evolution := analyzeSkillEvolution(in.Profile, time.Now())

	advice := &domain.CareerAdvice{
		Comprehensive:  comprehensive,
		SkillEvolution: evolution,
	}

	var promptText string
	preset := llm.PresetCreative
	if comprehensive {
		preset = llm.PresetAnalysis
		promptText = prompt.BuildCounselorPrompt(prompt.CounselorPromptVars{
			ProfileSummary: summarizeProfile(in.Profile),
			SkillEvolution: formatSkillEvolution(evolution),
			TargetRole:     in.TargetRole,
			CareerGoals:    in.CareerGoals,
			MemoryContext:  in.Memory,
			Query:          in.Query,
		})
	} else {
		promptText = prompt.BuildConversationalPrompt(prompt.ConversationalPromptVars{
			ProfileSummary: summarizeProfile(in.Profile),
			MemoryContext:  in.Memory,
			Query:          in.Query,
		})
	}

	reply, metadata, err := c.invoker.Generate(ctx, promptText, preset, nil)
	if err != nil {
		c.logger.Warn("Career advice failed, using fallback", zap.Error(err))
		advice.Narrative = counselFallback
		return advice
	}

	advice.Narrative = reply
	if comprehensive {
		advice.Gaps = linesAfterHeading(reply, []string{"skill gap", "gaps"}, 8)
		advice.Resources = linesAfterHeading(reply, []string{"resource"}, 6)
		advice.Steps = linesAfterHeading(reply, []string{"action step", "steps"}, 5)
		advice.Timeline = firstTimelineLine(reply)
	}

	c.logger.Info("Career advice complete",
		zap.Bool("comprehensive", comprehensive),
		zap.Int("gaps", len(advice.Gaps)),
		zap.String("provider", metadata.Provider),
	)
	return advice
}

func isComprehensiveQuery(query string) bool {
	lower := strings.ToLower(query)
	for _, kw := range comprehensiveKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// analyzeSkillEvolution attributes skills to the roles that mention
// them and splits the set into recent, older, and consistent buckets
func analyzeSkillEvolution(p *domain.Profile, now time.Time) domain.SkillEvolution {
	evolution := domain.SkillEvolution{}
	if p == nil {
		return evolution
	}

	type roleInfo struct {
		text   string
		start  time.Time
		dated  bool
		recent bool
	}

	var roles []roleInfo
	var earliest time.Time
	for _, exp := range p.Experiences {
		info := roleInfo{text: util.Normalize(exp.Title + " " + exp.Description)}
		if start, err := util.ParseProfileDate(exp.StartDate); err == nil {
			info.start = start
			info.dated = true
			info.recent = util.WithinYears(start, constants.EmbeddingConfig.RecencyYears, now)
			if earliest.IsZero() || start.Before(earliest) {
				earliest = start
			}
		}
		roles = append(roles, info)
	}

	skills := p.AllSkillNames()
	for _, skill := range skills {
		needle := util.Normalize(skill)
		mentions, recentMentions := 0, 0
		for _, role := range roles {
			if !strings.Contains(role.text, needle) {
				continue
			}
			mentions++
			if role.recent {
				recentMentions++
			}
		}

		switch {
		case recentMentions > 0:
			evolution.Recent = append(evolution.Recent, skill)
		case mentions > 0:
			evolution.Older = append(evolution.Older, skill)
		}
		if mentions >= constants.EmbeddingConfig.ConsistentMin {
			evolution.Consistent = append(evolution.Consistent, skill)
		}
	}

	if !earliest.IsZero() {
		evolution.CareerYears = float64(util.MonthsBetween(earliest, now)) / 12
		if evolution.CareerYears > 0 {
			evolution.AcquisitionRate = float64(len(skills)) / evolution.CareerYears
		}
	}
	return evolution
}

func formatSkillEvolution(e domain.SkillEvolution) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Career span: %.1f years, %.1f skills picked up per year\n", e.CareerYears, e.AcquisitionRate)
	fmt.Fprintf(&b, "Recent skills (used in roles started within %d years): %s\n",
		constants.EmbeddingConfig.RecencyYears, joinOrNone(e.Recent))
	fmt.Fprintf(&b, "Older skills: %s\n", joinOrNone(e.Older))
	fmt.Fprintf(&b, "Consistent skills (across %d+ roles): %s",
		constants.EmbeddingConfig.ConsistentMin, joinOrNone(e.Consistent))
	return b.String()
}

// firstTimelineLine pulls the transition estimate: the TIMELINE block
// when present, else the first duration-mentioning line
func firstTimelineLine(reply string) string {
	if lines := linesAfterHeading(reply, []string{"timeline"}, 1); len(lines) > 0 {
		return lines[0]
	}

	var fallback string
	for _, line := range strings.Split(reply, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lower := strings.ToLower(trimmed)
		if strings.HasPrefix(lower, "timeline") {
			rest := strings.TrimSpace(strings.TrimPrefix(trimmed[len("timeline"):], ":"))
			if rest != "" {
				return rest
			}
			continue
		}
		if fallback == "" && !looksLikeHeading(trimmed) &&
			(strings.Contains(lower, "month") || strings.Contains(lower, "year")) {
			fallback = stripMarker(trimmed)
		}
	}
	return fallback
}
