package agent

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/careerpilot/linkedin-optimizer-go/internal/domain"
)

func TestTargetSection(t *testing.T) {
	cases := []struct {
		query string
		want  string
	}{
		{"improve my headline", "headline"},
		{"rewrite the experience section", "experience"},
		{"punch up my bullet points", "experience"},
		{"reorder my skills", "skills"},
		{"how do I present my education", "education"},
		{"make my profile pop", "about"},
	}
	for _, tc := range cases {
		if got := targetSection(tc.query); got != tc.want {
			t.Fatalf("targetSection(%q): expected %s, got %s", tc.query, tc.want, got)
		}
	}
}

func TestParseContentReplyLabeledBlocks(t *testing.T) {
	reply := `REWRITTEN:
Staff Engineer | Data Platforms | I cut infra spend 40%

IMPROVEMENTS:
- sharper verb
- added a metric

KEYWORDS: go, kubernetes, leadership

CREDIBILITY:
- verify the 40% savings claim

TIPS:
- keep it under 220 characters`

	var revision domain.ContentRevision
	parseContentReply(reply, &revision)

	if revision.Rewritten != "Staff Engineer | Data Platforms | I cut infra spend 40%" {
		t.Fatalf("unexpected rewritten text: %q", revision.Rewritten)
	}
	if len(revision.Improvements) != 2 || revision.Improvements[0] != "sharper verb" {
		t.Fatalf("unexpected improvements: %v", revision.Improvements)
	}
	if len(revision.Keywords) != 3 || revision.Keywords[1] != "kubernetes" {
		t.Fatalf("expected comma-separated keywords split, got %v", revision.Keywords)
	}
	if len(revision.CredibilityNotes) != 1 {
		t.Fatalf("unexpected credibility notes: %v", revision.CredibilityNotes)
	}
	if len(revision.Tips) != 1 || revision.Tips[0] != "keep it under 220 characters" {
		t.Fatalf("unexpected tips: %v", revision.Tips)
	}
}

func TestParseContentReplyMarkdownLabels(t *testing.T) {
	reply := "## REWRITTEN:\nNew about text.\n\n**IMPROVEMENTS**:\n- tightened the opener"

	var revision domain.ContentRevision
	parseContentReply(reply, &revision)

	if revision.Rewritten != "New about text." {
		t.Fatalf("expected markdown-decorated labels to parse, got %q", revision.Rewritten)
	}
	if len(revision.Improvements) != 1 || revision.Improvements[0] != "tightened the opener" {
		t.Fatalf("unexpected improvements: %v", revision.Improvements)
	}
}

func TestParseContentReplyWithoutLabels(t *testing.T) {
	reply := "  Here is a better headline you could use.  "

	var revision domain.ContentRevision
	parseContentReply(reply, &revision)

	if revision.Rewritten != "Here is a better headline you could use." {
		t.Fatalf("expected whole reply as rewritten text, got %q", revision.Rewritten)
	}
	if len(revision.Improvements) != 0 {
		t.Fatalf("expected no improvements, got %v", revision.Improvements)
	}
}

func TestParseContentReplyMissingRewrittenBlock(t *testing.T) {
	reply := "TIPS:\n- post at least weekly"

	var revision domain.ContentRevision
	parseContentReply(reply, &revision)

	if revision.Rewritten != reply {
		t.Fatalf("expected fallback to whole reply, got %q", revision.Rewritten)
	}
	if len(revision.Tips) != 1 {
		t.Fatalf("expected tips still parsed, got %v", revision.Tips)
	}
}

func TestSectionPrioritiesFlagsWeakSections(t *testing.T) {
	p := &domain.Profile{
		Headline:    "Engineer at Acme",
		Experiences: []domain.Experience{{Title: "Engineer", Company: "Acme"}},
		Skills:      []string{"Go", "SQL"},
	}

	priorities := sectionPriorities(p)

	if len(priorities) != 5 {
		t.Fatalf("expected 5 priorities, got %d: %+v", len(priorities), priorities)
	}

	bySection := make(map[string]domain.SectionPriority, len(priorities))
	for _, pr := range priorities {
		bySection[pr.Section] = pr
	}
	if bySection["headline"].Priority != domain.PriorityHigh {
		t.Fatalf("expected short headline flagged high, got %+v", bySection["headline"])
	}
	if bySection["about"].Priority != domain.PriorityHigh || !strings.Contains(bySection["about"].Reason, "missing") {
		t.Fatalf("expected empty about flagged high, got %+v", bySection["about"])
	}
	if !strings.Contains(bySection["experience"].Reason, "no description") {
		t.Fatalf("expected undescribed experience flagged, got %+v", bySection["experience"])
	}
	if bySection["skills"].Priority != domain.PriorityMedium {
		t.Fatalf("expected short skill list flagged medium, got %+v", bySection["skills"])
	}
	if bySection["education"].Priority != domain.PriorityHigh {
		t.Fatalf("expected empty education flagged high, got %+v", bySection["education"])
	}
}

func TestSectionPrioritiesStrongProfile(t *testing.T) {
	skills := []string{"Go", "Kubernetes", "PostgreSQL", "Terraform", "AWS", "Docker", "Python", "Kafka", "Redis", "Linux"}
	detailed := make([]domain.SkillDetail, 0, len(skills))
	for _, s := range skills {
		detailed = append(detailed, domain.SkillDetail{Name: s, EndorsementCount: 3})
	}

	p := &domain.Profile{
		Headline: "Staff Software Engineer building large-scale data platforms",
		About:    strings.Repeat("Led data platform work with measurable outcomes. ", 11),
		Experiences: []domain.Experience{
			{Title: "Staff Engineer", Company: "Acme", Description: "Led the platform team through a replatforming effort."},
		},
		Educations:     []domain.Education{{School: "State University", Degree: "BSc"}},
		Skills:         skills,
		SkillsDetailed: detailed,
	}

	priorities := sectionPriorities(p)

	if len(priorities) != 1 {
		t.Fatalf("expected only the standing about entry, got %+v", priorities)
	}
	if priorities[0].Section != "about" || priorities[0].Priority != domain.PriorityLow {
		t.Fatalf("expected low-priority about entry, got %+v", priorities[0])
	}
}

func TestQuickWins(t *testing.T) {
	p := &domain.Profile{
		Headline: "Engineer",
		About:    "I am a professional with many years in the field.",
		Experiences: []domain.Experience{
			{Title: "Engineer", Company: "Acme", Description: "Ran the team."},
			{Title: "Engineer", Company: "Initech", Description: "Wrote code."},
			{Title: "Intern", Company: "Globex", Description: "Did support."},
		},
		Skills: []string{"Go", "SQL", "Docker", "Linux", "Kafka"},
	}

	wins := quickWins(p)

	if len(wins) != 5 {
		t.Fatalf("expected 5 quick wins, got %d: %v", len(wins), wins)
	}
	if !strings.Contains(wins[0], "headline space") {
		t.Fatalf("expected headline win first, got %q", wins[0])
	}
	if !strings.Contains(wins[1], "impact verbs") {
		t.Fatalf("expected about verbs win, got %q", wins[1])
	}
	if !strings.Contains(wins[2], "Expand the description") || !strings.Contains(wins[3], "Expand the description") {
		t.Fatalf("expected two expansion wins, got %v", wins[2:4])
	}
	if !strings.Contains(wins[4], "5 listed skills") {
		t.Fatalf("expected orphan skill win, got %q", wins[4])
	}
}

func TestQuickWinsQuietWhenFundamentalsArePresent(t *testing.T) {
	p := &domain.Profile{
		Headline: "Staff Software Engineer | Data Platforms | Building streaming systems at global scale",
		About:    "Built and led data platform teams for a decade, delivered streaming infrastructure used by hundreds of engineers.",
		Experiences: []domain.Experience{
			{
				Title: "Staff Engineer", Company: "Acme",
				Description: "Led the platform group through a three year replatforming effort, cutting infra spend 40% while doubling deploy frequency.",
			},
		},
		Skills: []string{"Go", "Kubernetes"},
		SkillsDetailed: []domain.SkillDetail{
			{Name: "Go", EndorsementCount: 12},
			{Name: "Kubernetes", EndorsementCount: 9},
		},
	}

	if wins := quickWins(p); len(wins) != 0 {
		t.Fatalf("expected no quick wins, got %v", wins)
	}
}

func TestRewriteParsesModelReply(t *testing.T) {
	model := &fakeModel{reply: "REWRITTEN:\nData Engineer | Pipelines that pay for themselves\n\nTIPS:\n- mention the team size"}
	agent := NewContentAgent(model, zap.NewNop())

	revision := agent.Rewrite(context.Background(), fullProfile(), "Data Engineer", "", "rewrite my headline")

	if revision.Section != "headline" {
		t.Fatalf("expected headline section, got %s", revision.Section)
	}
	if revision.Rewritten != "Data Engineer | Pipelines that pay for themselves" {
		t.Fatalf("unexpected rewritten text: %q", revision.Rewritten)
	}
	if revision.Narrative != model.reply {
		t.Fatalf("expected narrative to keep the full reply, got %q", revision.Narrative)
	}
	if len(model.prompts) != 1 {
		t.Fatalf("expected one model call, got %d", len(model.prompts))
	}
}

func TestRewriteFallsBackOnModelFailure(t *testing.T) {
	model := &fakeModel{err: context.DeadlineExceeded}
	agent := NewContentAgent(model, zap.NewNop())

	p := &domain.Profile{Headline: "Engineer"}
	revision := agent.Rewrite(context.Background(), p, "", "", "fix my headline")

	if revision.Narrative != contentFallback {
		t.Fatalf("expected fallback narrative, got %q", revision.Narrative)
	}
	if revision.Rewritten != "" {
		t.Fatalf("expected no rewritten text on fallback, got %q", revision.Rewritten)
	}
	if revision.Section != "headline" {
		t.Fatalf("expected section still resolved, got %s", revision.Section)
	}
	if len(revision.Priorities) == 0 || len(revision.QuickWins) == 0 {
		t.Fatal("expected deterministic priorities and quick wins to survive the fallback")
	}
}

func TestSectionText(t *testing.T) {
	if got := sectionText(nil, "about"); got != "(no profile loaded)" {
		t.Fatalf("expected nil profile placeholder, got %q", got)
	}
	if got := sectionText(&domain.Profile{}, "headline"); got != "(empty)" {
		t.Fatalf("expected empty placeholder, got %q", got)
	}

	p := &domain.Profile{
		Experiences: []domain.Experience{
			{Title: "Engineer", Company: "Acme", Description: "Built services.", StartDate: "Jan 2020", EndDate: "Present"},
		},
	}
	text := sectionText(p, "experience")
	if !strings.Contains(text, "Engineer at Acme (Jan 2020 - Present)") || !strings.Contains(text, "Built services.") {
		t.Fatalf("unexpected experience text:\n%s", text)
	}
}
