package adapter

import (
	"fmt"
	"strings"

	"github.com/careerpilot/linkedin-optimizer-go/internal/constants"
	"github.com/careerpilot/linkedin-optimizer-go/internal/domain"
	"github.com/careerpilot/linkedin-optimizer-go/internal/util"
)

// ResponseFormatter renders agent results into the markdown-ish chat
// messages the web client displays
type ResponseFormatter struct{}

// NewResponseFormatter creates a new ResponseFormatter
func NewResponseFormatter() *ResponseFormatter {
	return &ResponseFormatter{}
}

// FormatWelcome formats the confirmation shown right after a profile
// was scraped or imported
func (f *ResponseFormatter) FormatWelcome(profile *domain.Profile) string {
	if profile == nil {
		return "❌ No profile data available."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("✅ Profile loaded: %s\n", profile.Name))
	if profile.Headline != "" {
		sb.WriteString(fmt.Sprintf("💼 %s\n", profile.Headline))
	}
	if profile.Location != "" {
		sb.WriteString(fmt.Sprintf("📍 %s\n", profile.Location))
	}

	sb.WriteString(fmt.Sprintf("\n📦 Imported %d experience entries, %d education entries, %d skills",
		len(profile.Experiences), len(profile.Educations), len(profile.Skills)))
	if n := len(profile.Certifications); n > 0 {
		sb.WriteString(fmt.Sprintf(", %d certifications", n))
	}
	sb.WriteString(".\n\n")

	sb.WriteString(f.capabilities())
	return strings.TrimSpace(sb.String())
}

// FormatAnalysis formats a profile analysis report
func (f *ResponseFormatter) FormatAnalysis(a *domain.ProfileAnalysis) string {
	if a == nil {
		return "❌ Analysis produced no result."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 Profile Analysis: %d/100 (grade %s)\n\n", a.Completeness, a.Grade))

	if a.Narrative != "" {
		sb.WriteString(a.Narrative)
		sb.WriteString("\n\n")
	}

	if len(a.SectionScores) > 0 {
		sb.WriteString("📋 Section scores\n")
		for _, s := range a.SectionScores {
			sb.WriteString(fmt.Sprintf("- %s: %.1f/%d\n", s.Section, s.Earned, s.Weight))
		}
		sb.WriteString("\n")
	}

	if len(a.DateIssues) > 0 {
		sb.WriteString("⚠️ Date checks\n")
		for _, issue := range a.DateIssues {
			sb.WriteString(fmt.Sprintf("- %s (%s): %s\n", issue.Section, issue.Company, issue.Problem))
		}
		sb.WriteString("\n")
	}

	q := a.SkillsQuality
	if q.Total > 0 {
		sb.WriteString(fmt.Sprintf("🛠 Skills evidence: %d skills, %.0f%% backed by endorsements or work history\n",
			q.Total, q.ProofRate*100))
		if len(q.Orphans) > 0 {
			sb.WriteString(fmt.Sprintf("   Unproven: %s\n", joinCapped(q.Orphans, 8)))
		}
		sb.WriteString("\n")
	}

	if len(a.Recommendations) > 0 {
		sb.WriteString("💡 Recommendations\n")
		writeNumbered(&sb, a.Recommendations, 10)
	}

	return strings.TrimSpace(sb.String())
}

// FormatMatchReport formats a job match report
func (f *ResponseFormatter) FormatMatchReport(r *domain.MatchReport) string {
	if r == nil {
		return "❌ Matching produced no result."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🎯 Job Match: %s\n", r.JobTitle))
	sb.WriteString(fmt.Sprintf("⭐ Score: %.1f/100 (%s confidence)\n", r.Score, r.Confidence))
	if r.Similarity > 0 {
		sb.WriteString(fmt.Sprintf("🔍 Semantic similarity: %.0f%%\n", r.Similarity*100))
	}
	sb.WriteString(fmt.Sprintf("📄 Job description source: %s\n\n", jdSourceLabel(r.JDSource)))

	if len(r.MatchedSkills) > 0 {
		sb.WriteString(fmt.Sprintf("✅ Matched skills (%d): %s\n", len(r.MatchedSkills), joinCapped(r.MatchedSkills, 12)))
	}
	if len(r.MissingSkills) > 0 {
		sb.WriteString(fmt.Sprintf("❌ Missing skills (%d): %s\n", len(r.MissingSkills), joinCapped(r.MissingSkills, 8)))
	}
	if len(r.MatchedSkills) > 0 || len(r.MissingSkills) > 0 {
		sb.WriteString("\n")
	}

	if len(r.RelevantExperiences) > 0 {
		sb.WriteString("💼 Most relevant experience\n")
		for _, exp := range r.RelevantExperiences {
			sb.WriteString(fmt.Sprintf("- %s\n", exp.Label()))
		}
		sb.WriteString("\n")
	}

	if r.Narrative != "" {
		sb.WriteString(r.Narrative)
		sb.WriteString("\n\n")
	}

	if len(r.Improvements) > 0 {
		sb.WriteString("📈 To improve your fit\n")
		writeNumbered(&sb, r.Improvements, 8)
	}

	return strings.TrimSpace(sb.String())
}

// FormatRevision formats a content rewrite result
func (f *ResponseFormatter) FormatRevision(r *domain.ContentRevision) string {
	if r == nil {
		return "❌ Rewrite produced no result."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("✍️ Content Review: %s section\n\n", r.Section))

	if len(r.Priorities) > 0 {
		sb.WriteString("🗂 Where to focus first\n")
		for _, p := range r.Priorities {
			sb.WriteString(fmt.Sprintf("- [%s] %s: %s\n", strings.ToUpper(p.Priority), p.Section, p.Reason))
		}
		sb.WriteString("\n")
	}

	if len(r.QuickWins) > 0 {
		sb.WriteString("⚡ Quick wins\n")
		for _, win := range r.QuickWins {
			sb.WriteString(fmt.Sprintf("- %s\n", win))
		}
		sb.WriteString("\n")
	}

	if strings.TrimSpace(r.Rewritten) != "" {
		sb.WriteString("📝 Suggested rewrite\n")
		sb.WriteString(strings.TrimSpace(r.Rewritten))
		sb.WriteString("\n\n")
	}

	if len(r.Improvements) > 0 {
		sb.WriteString("🔧 What changed\n")
		writeNumbered(&sb, r.Improvements, 8)
		sb.WriteString("\n")
	}

	if len(r.Keywords) > 0 {
		sb.WriteString(fmt.Sprintf("🔑 Keywords worked in: %s\n", joinCapped(r.Keywords, 10)))
	}
	if len(r.CredibilityNotes) > 0 {
		sb.WriteString(fmt.Sprintf("⚠️ Verify before publishing: %s\n", joinCapped(r.CredibilityNotes, 5)))
	}
	if len(r.Tips) > 0 {
		sb.WriteString("\n💡 Tips\n")
		for _, tip := range r.Tips {
			sb.WriteString(fmt.Sprintf("- %s\n", tip))
		}
	}

	return strings.TrimSpace(sb.String())
}

// FormatAdvice formats career counseling output. Conversational
// replies pass through as plain text; comprehensive ones get the full
// report layout.
func (f *ResponseFormatter) FormatAdvice(a *domain.CareerAdvice) string {
	if a == nil {
		return "❌ Counseling produced no result."
	}

	if !a.Comprehensive {
		return strings.TrimSpace(a.Narrative)
	}

	var sb strings.Builder
	sb.WriteString("🧭 Career Plan\n\n")

	if a.Narrative != "" {
		sb.WriteString(a.Narrative)
		sb.WriteString("\n\n")
	}

	evo := a.SkillEvolution
	if evo.CareerYears > 0 {
		sb.WriteString(fmt.Sprintf("📈 Trajectory: %.1f years of experience, about %.1f new skills per year\n",
			evo.CareerYears, evo.AcquisitionRate))
		if len(evo.Recent) > 0 {
			sb.WriteString(fmt.Sprintf("   Recently added: %s\n", joinCapped(evo.Recent, 8)))
		}
		if len(evo.Consistent) > 0 {
			sb.WriteString(fmt.Sprintf("   Core strengths: %s\n", joinCapped(evo.Consistent, 8)))
		}
		sb.WriteString("\n")
	}

	if len(a.Gaps) > 0 {
		sb.WriteString("🧩 Gaps to close\n")
		writeNumbered(&sb, a.Gaps, 8)
		sb.WriteString("\n")
	}

	if len(a.Resources) > 0 {
		sb.WriteString("📚 Resources\n")
		for _, res := range a.Resources {
			sb.WriteString(fmt.Sprintf("- %s\n", res))
		}
		sb.WriteString("\n")
	}

	if len(a.Steps) > 0 {
		sb.WriteString("✅ Action steps\n")
		writeNumbered(&sb, a.Steps, 5)
		sb.WriteString("\n")
	}

	if a.Timeline != "" {
		sb.WriteString(fmt.Sprintf("🗓 Timeline: %s\n", a.Timeline))
	}

	return strings.TrimSpace(sb.String())
}

// FormatFollowUps renders the suggested next questions appended below
// a reply
func (f *ResponseFormatter) FormatFollowUps(questions []string) string {
	if len(questions) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("💬 You could ask next:\n")
	max := len(questions)
	if max > constants.StringLimits.FollowUpCount {
		max = constants.StringLimits.FollowUpCount
	}
	for i := 0; i < max; i++ {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, util.TruncateString(questions[i], constants.StringLimits.FollowUpLength)))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// FormatNoProfile explains how to load a profile when a request needs
// one
func (f *ResponseFormatter) FormatNoProfile() string {
	return "ℹ️ No profile loaded yet.\n\n" +
		"Load one first so I have something to work with:\n" +
		"- paste your LinkedIn profile URL, or\n" +
		"- upload your resume (PDF, DOCX or TXT).\n\n" +
		"After that, ask me anything about your profile or target role."
}

// FormatCleared confirms the conversation was reset
func (f *ResponseFormatter) FormatCleared(hasProfile bool) string {
	if hasProfile {
		return "🧹 Conversation cleared. Your profile is still loaded."
	}
	return "🧹 Conversation cleared."
}

// FormatError formats an error message
func (f *ResponseFormatter) FormatError(message string) string {
	return fmt.Sprintf("❌ %s", message)
}

// Helper methods

func (f *ResponseFormatter) capabilities() string {
	return "Here is what I can do:\n" +
		"- 📊 \"Analyze my profile\" scores completeness and flags weak sections\n" +
		"- 🎯 \"How do I match a data scientist role?\" compares you against a job description\n" +
		"- ✍️ \"Rewrite my headline\" drafts stronger profile copy\n" +
		"- 🧭 \"Help me plan a move into product management\" builds a career plan"
}

func jdSourceLabel(source domain.JDSource) string {
	switch source {
	case domain.JDSourceCustom:
		return "your pasted job description"
	case domain.JDSourceOnline:
		return "live job search results"
	case domain.JDSourceBuiltin:
		return "built-in role template"
	default:
		return "generic role template"
	}
}

func writeNumbered(sb *strings.Builder, items []string, max int) {
	if len(items) < max {
		max = len(items)
	}
	for i := 0; i < max; i++ {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, items[i]))
	}
}

func joinCapped(items []string, max int) string {
	if len(items) <= max {
		return strings.Join(items, ", ")
	}
	return fmt.Sprintf("%s (+%d more)", strings.Join(items[:max], ", "), len(items)-max)
}
