package agent

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/careerpilot/linkedin-optimizer-go/internal/domain"
	"github.com/careerpilot/linkedin-optimizer-go/internal/prompt"
	"github.com/careerpilot/linkedin-optimizer-go/internal/service/llm"
)

// thresholds behind the section-priority and quick-win rules
const (
	headlineShortChars  = 50
	headlineQuickWinLen = 80
	aboutHighChars      = 200
	aboutMediumChars    = 500
	descriptionShortLen = 100
	minSkillCount       = 10
	minProofRate        = 0.5
	maxUnprovenQuickWin = 3
)

var roleKeywords = []string{
	"engineer", "analyst", "manager", "scientist", "developer",
	"designer", "consultant", "architect", "specialist", "director", "lead",
}

var impactVerbs = []string{"helped", "delivered", "built", "led", "increased", "reduced"}

var contentLabelPattern = regexp.MustCompile(`(?im)^[^\S\n]*(?:#+[^\S\n]*)?(?:\*\*)?(REWRITTEN|IMPROVEMENTS|KEYWORDS|CREDIBILITY|TIPS)(?:\*\*)?[^\S\n]*:`)

// ContentAgent rewrites one profile section per turn, guided by the
// computed priorities and quick wins.
type ContentAgent struct {
	invoker ModelInvoker
	logger  *zap.Logger
}

func NewContentAgent(invoker ModelInvoker, logger *zap.Logger) *ContentAgent {
	return &ContentAgent{invoker: invoker, logger: logger}
}

// Rewrite picks the target section from the query, builds the rewriting
// prompt, and parses the labeled reply. A reply that ignores the label
// contract is kept whole as the rewritten text.
func (c *ContentAgent) Rewrite(ctx context.Context, profile *domain.Profile, targetRole, memoryContext, query string) *domain.ContentRevision {
	section := targetSection(query)
	priorities := sectionPriorities(profile)
	quickWins := quickWins(profile)

	revision := &domain.ContentRevision{
		Section:    section,
		Priorities: priorities,
		QuickWins:  quickWins,
	}

	promptText := prompt.BuildContentPrompt(prompt.ContentPromptVars{
		Section:       section,
		SectionText:   sectionText(profile, section),
		Priorities:    formatPriorities(priorities),
		QuickWins:     formatQuickWins(quickWins),
		TargetRole:    targetRole,
		MemoryContext: memoryContext,
		Query:         query,
	})

	reply, metadata, err := c.invoker.Generate(ctx, promptText, llm.PresetCreative, nil)
	if err != nil {
		c.logger.Warn("Content rewrite failed, using fallback", zap.Error(err))
		revision.Narrative = contentFallback
		return revision
	}

	revision.Narrative = reply
	parseContentReply(reply, revision)

	c.logger.Info("Content rewrite complete",
		zap.String("section", section),
		zap.Int("quick_wins", len(quickWins)),
		zap.String("provider", metadata.Provider),
	)
	return revision
}

// parseContentReply fills the revision from the labeled blocks; when the
// REWRITTEN label is missing the whole reply stands in for it
func parseContentReply(reply string, revision *domain.ContentRevision) {
	matches := contentLabelPattern.FindAllStringSubmatchIndex(reply, -1)
	if len(matches) == 0 {
		revision.Rewritten = strings.TrimSpace(reply)
		return
	}

	blocks := make(map[string]string, len(matches))
	for i, m := range matches {
		label := strings.ToUpper(reply[m[2]:m[3]])
		end := len(reply)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		blocks[label] = strings.TrimSpace(reply[m[1]:end])
	}

	revision.Rewritten = blocks["REWRITTEN"]
	revision.Improvements = splitListBlock(blocks["IMPROVEMENTS"])
	revision.Keywords = splitListBlock(blocks["KEYWORDS"])
	revision.CredibilityNotes = splitListBlock(blocks["CREDIBILITY"])
	revision.Tips = splitListBlock(blocks["TIPS"])

	if revision.Rewritten == "" {
		revision.Rewritten = strings.TrimSpace(reply)
	}
}

// targetSection finds which profile section the query asks about,
// defaulting to the about section
func targetSection(query string) string {
	lower := strings.ToLower(query)
	switch {
	case strings.Contains(lower, "headline"):
		return "headline"
	case strings.Contains(lower, "experience") || strings.Contains(lower, "bullet"):
		return "experience"
	case strings.Contains(lower, "skill"):
		return "skills"
	case strings.Contains(lower, "education"):
		return "education"
	default:
		return "about"
	}
}

func sectionText(p *domain.Profile, section string) string {
	if p == nil {
		return "(no profile loaded)"
	}

	switch section {
	case "headline":
		return emptyAs(p.Headline, "(empty)")
	case "about":
		return emptyAs(p.About, "(empty)")
	case "experience":
		if len(p.Experiences) == 0 {
			return "(no experience entries)"
		}
		var b strings.Builder
		for _, exp := range p.Experiences {
			fmt.Fprintf(&b, "%s%s\n", exp.Label(), dateRangeSuffix(exp))
			if exp.Description != "" {
				fmt.Fprintf(&b, "%s\n", exp.Description)
			}
			b.WriteString("\n")
		}
		return strings.TrimSpace(b.String())
	case "skills":
		return emptyAs(strings.Join(p.AllSkillNames(), ", "), "(no skills listed)")
	case "education":
		if len(p.Educations) == 0 {
			return "(no education entries)"
		}
		var b strings.Builder
		for _, edu := range p.Educations {
			fmt.Fprintf(&b, "%s - %s %s\n", edu.School, edu.Degree, edu.FieldOfStudy)
		}
		return strings.TrimSpace(b.String())
	default:
		return "(empty)"
	}
}

func emptyAs(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}

// sectionPriorities grades each section by how urgently it needs work
func sectionPriorities(p *domain.Profile) []domain.SectionPriority {
	if p == nil {
		return nil
	}
	var priorities []domain.SectionPriority

	if len(p.Headline) < headlineShortChars {
		priorities = append(priorities, domain.SectionPriority{
			Section: "headline", Priority: domain.PriorityHigh,
			Reason: "headline is too short to say what you do",
		})
	} else if !containsAny(strings.ToLower(p.Headline), roleKeywords) {
		priorities = append(priorities, domain.SectionPriority{
			Section: "headline", Priority: domain.PriorityHigh,
			Reason: "headline names no recognizable role",
		})
	}

	aboutPriority := domain.PriorityLow
	aboutReason := "about section has substance, tighten wording"
	switch {
	case len(p.About) < aboutHighChars:
		aboutPriority = domain.PriorityHigh
		aboutReason = "about section is missing or minimal"
	case len(p.About) < aboutMediumChars:
		aboutPriority = domain.PriorityMedium
		aboutReason = "about section is thin for a full story"
	}
	priorities = append(priorities, domain.SectionPriority{
		Section: "about", Priority: aboutPriority, Reason: aboutReason,
	})

	if len(p.Experiences) == 0 {
		priorities = append(priorities, domain.SectionPriority{
			Section: "experience", Priority: domain.PriorityHigh,
			Reason: "no experience entries",
		})
	} else {
		for _, exp := range p.Experiences {
			if strings.TrimSpace(exp.Description) == "" {
				priorities = append(priorities, domain.SectionPriority{
					Section: "experience", Priority: domain.PriorityHigh,
					Reason: fmt.Sprintf("%s has no description", exp.Label()),
				})
				break
			}
		}
	}

	quality := assessSkills(p)
	if quality.Total < minSkillCount || quality.ProofRate < minProofRate {
		priorities = append(priorities, domain.SectionPriority{
			Section: "skills", Priority: domain.PriorityMedium,
			Reason: "skill list is short or mostly unproven",
		})
	}

	if len(p.Educations) == 0 {
		priorities = append(priorities, domain.SectionPriority{
			Section: "education", Priority: domain.PriorityHigh,
			Reason: "education section is empty",
		})
	}

	return priorities
}

// quickWins lists small edits with outsized effect
func quickWins(p *domain.Profile) []string {
	if p == nil {
		return nil
	}
	var wins []string

	if len(p.Headline) < headlineQuickWinLen {
		wins = append(wins, "Use the full headline space: add your specialty and one outcome")
	}
	if p.About != "" && !containsAny(strings.ToLower(p.About), impactVerbs) {
		wins = append(wins, "Add impact verbs (built, led, delivered, reduced) to your about section")
	}

	short := 0
	for _, exp := range p.Experiences {
		if len(exp.Description) < descriptionShortLen {
			wins = append(wins, fmt.Sprintf("Expand the description for %s", exp.Label()))
			short++
			if short == 2 {
				break
			}
		}
	}

	if quality := assessSkills(p); len(quality.Orphans) > maxUnprovenQuickWin {
		wins = append(wins, fmt.Sprintf("Back up your skills: %d listed skills have no endorsements or linked roles", len(quality.Orphans)))
	}

	return wins
}

func formatPriorities(priorities []domain.SectionPriority) string {
	if len(priorities) == 0 {
		return "No section priorities computed."
	}
	var b strings.Builder
	for _, p := range priorities {
		fmt.Fprintf(&b, "- [%s] %s: %s\n", strings.ToUpper(p.Priority), p.Section, p.Reason)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatQuickWins(wins []string) string {
	if len(wins) == 0 {
		return "None, the fundamentals are in place."
	}
	var b strings.Builder
	for _, w := range wins {
		fmt.Fprintf(&b, "- %s\n", w)
	}
	return strings.TrimRight(b.String(), "\n")
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
