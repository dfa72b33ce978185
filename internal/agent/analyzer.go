package agent

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/careerpilot/linkedin-optimizer-go/internal/constants"
	"github.com/careerpilot/linkedin-optimizer-go/internal/domain"
	"github.com/careerpilot/linkedin-optimizer-go/internal/prompt"
	"github.com/careerpilot/linkedin-optimizer-go/internal/service/llm"
	"github.com/careerpilot/linkedin-optimizer-go/internal/util"
)

// Credit thresholds for the completeness score: strings below
// shortStringChars and lists below minListItems earn partial credit.
const (
	shortStringChars = 50
	minListItems     = 2
)

// Analyzer scores profile completeness, flags date problems, and asks
// the model for a narrative assessment.
type Analyzer struct {
	invoker ModelInvoker
	logger  *zap.Logger
}

func NewAnalyzer(invoker ModelInvoker, logger *zap.Logger) *Analyzer {
	return &Analyzer{invoker: invoker, logger: logger}
}

// Analyze produces the full profile report. The scoring is local; only
// the narrative needs the model, so a model outage degrades to the
// static fallback text instead of failing the turn.
func (a *Analyzer) Analyze(ctx context.Context, profile *domain.Profile, memoryContext, query string) *domain.ProfileAnalysis {
	completeness, grade, sections := scoreCompleteness(profile)
	issues := validateDates(profile, time.Now())
	quality := assessSkills(profile)

	analysis := &domain.ProfileAnalysis{
		Completeness:  completeness,
		Grade:         grade,
		SectionScores: sections,
		DateIssues:    issues,
		SkillsQuality: quality,
	}

	promptText := prompt.BuildAnalyzerPrompt(prompt.AnalyzerPromptVars{
		CurrentDate:        time.Now().Format("January 2, 2006"),
		ProfileSummary:     summarizeProfile(profile),
		CompletenessReport: formatCompleteness(completeness, grade, sections),
		DateIssues:         formatDateIssues(issues),
		SkillsQuality:      formatSkillsQuality(quality),
		MemoryContext:      memoryContext,
		Query:              query,
	})

	reply, metadata, err := a.invoker.Generate(ctx, promptText, llm.PresetAnalysis, nil)
	if err != nil {
		a.logger.Warn("Analysis narrative failed, using fallback", zap.Error(err))
		analysis.Narrative = analysisFallback
		return analysis
	}

	analysis.Narrative = reply
	analysis.Recommendations = bulletLines(reply, 10)

	a.logger.Info("Profile analysis complete",
		zap.Int("completeness", completeness),
		zap.String("grade", grade),
		zap.Int("date_issues", len(issues)),
		zap.String("provider", metadata.Provider),
	)
	return analysis
}

// scoreCompleteness applies the section weights and credit rules and
// returns the rounded 0-100 score with its grade band
func scoreCompleteness(p *domain.Profile) (int, string, []domain.SectionScore) {
	w := constants.CompletenessWeights

	sections := []domain.SectionScore{
		{Section: "about", Earned: stringCredit(p.About) * float64(w.About), Weight: w.About},
		{Section: "headline", Earned: stringCredit(p.Headline) * float64(w.Headline), Weight: w.Headline},
		{Section: "experience", Earned: listCredit(len(p.Experiences)) * float64(w.Experience), Weight: w.Experience},
		{Section: "education", Earned: listCredit(len(p.Educations)) * float64(w.Education), Weight: w.Education},
		{Section: "skills", Earned: listCredit(len(p.AllSkillNames())) * float64(w.Skills), Weight: w.Skills},
		{Section: "certifications", Earned: listCredit(len(p.Certifications)) * float64(w.Certs), Weight: w.Certs},
	}

	var earned, total float64
	for _, s := range sections {
		earned += s.Earned
		total += float64(s.Weight)
	}

	score := int(math.Round(100 * earned / total))
	return score, gradeFor(score), sections
}

func stringCredit(s string) float64 {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return 0
	case len(s) < shortStringChars:
		return constants.CompletenessWeights.PartialLow
	default:
		return 1
	}
}

func listCredit(n int) float64 {
	switch {
	case n == 0:
		return 0
	case n < minListItems:
		return constants.CompletenessWeights.PartialHigh
	default:
		return 1
	}
}

func gradeFor(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}

// validateDates flags experience entries whose dates cannot be true:
// unreadable starts, starts in the future, ends before their start
func validateDates(p *domain.Profile, now time.Time) []domain.DateIssue {
	var issues []domain.DateIssue

	for _, exp := range p.Experiences {
		if strings.TrimSpace(exp.StartDate) == "" {
			continue
		}

		start, err := util.ParseProfileDate(exp.StartDate)
		if err != nil {
			issues = append(issues, domain.DateIssue{
				Section: "experience",
				Company: exp.Company,
				Problem: fmt.Sprintf("unreadable start date %q", exp.StartDate),
			})
			continue
		}

		if start.After(now) {
			issues = append(issues, domain.DateIssue{
				Section: "experience",
				Company: exp.Company,
				Problem: fmt.Sprintf("start date %s is in the future", exp.StartDate),
			})
		}

		if util.IsPresentDate(exp.EndDate) {
			continue
		}
		if end, err := util.ParseProfileDate(exp.EndDate); err == nil && end.Before(start) {
			issues = append(issues, domain.DateIssue{
				Section: "experience",
				Company: exp.Company,
				Problem: fmt.Sprintf("end date %s precedes start date %s", exp.EndDate, exp.StartDate),
			})
		}
	}
	return issues
}

// assessSkills measures how much of the skill list carries evidence:
// endorsements or links to experience entries
func assessSkills(p *domain.Profile) domain.SkillsQuality {
	names := p.AllSkillNames()
	quality := domain.SkillsQuality{Total: len(names)}
	if quality.Total == 0 {
		return quality
	}

	detail := make(map[string]domain.SkillDetail, len(p.SkillsDetailed))
	for _, d := range p.SkillsDetailed {
		detail[strings.ToLower(d.Name)] = d
	}

	for _, name := range names {
		d, ok := detail[strings.ToLower(name)]
		endorsed := ok && d.EndorsementCount > 0
		linked := ok && d.RelatedExperiences > 0

		if endorsed {
			quality.Endorsed++
		}
		if linked {
			quality.Linked++
		}
		if !endorsed && !linked {
			quality.Orphans = append(quality.Orphans, name)
		}
	}

	quality.ProofRate = math.Min(float64(quality.Endorsed+quality.Linked)/float64(quality.Total), 1)
	return quality
}

func formatCompleteness(score int, grade string, sections []domain.SectionScore) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Overall: %d/100 (grade %s)\n", score, grade)
	for _, s := range sections {
		fmt.Fprintf(&b, "- %s: %.1f of %d points\n", s.Section, s.Earned, s.Weight)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatDateIssues(issues []domain.DateIssue) string {
	if len(issues) == 0 {
		return "None detected."
	}
	var b strings.Builder
	for _, issue := range issues {
		fmt.Fprintf(&b, "- %s at %s: %s\n", issue.Section, issue.Company, issue.Problem)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatSkillsQuality(q domain.SkillsQuality) string {
	if q.Total == 0 {
		return "No skills listed."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d skills listed, %d endorsed, %d linked to roles (proof rate %.0f%%)",
		q.Total, q.Endorsed, q.Linked, q.ProofRate*100)

	if len(q.Orphans) > 0 {
		orphans := q.Orphans
		if len(orphans) > 10 {
			orphans = orphans[:10]
		}
		fmt.Fprintf(&b, "\nUnproven skills: %s", strings.Join(orphans, ", "))
	}
	return b.String()
}
