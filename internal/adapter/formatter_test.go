package adapter

import (
	"strings"
	"testing"

	"github.com/careerpilot/linkedin-optimizer-go/internal/domain"
)

func TestFormatWelcome(t *testing.T) {
	f := NewResponseFormatter()

	profile := &domain.Profile{
		Name:     "Jane Smith",
		Headline: "Data Analyst",
		Location: "Berlin, Germany",
		Experiences: []domain.Experience{
			{Title: "Analyst", Company: "Acme"},
			{Title: "Intern", Company: "Initech"},
		},
		Educations:     []domain.Education{{School: "State University"}},
		Skills:         []string{"Python", "SQL", "Tableau"},
		Certifications: []domain.Certification{{Name: "CKA"}},
	}

	out := f.FormatWelcome(profile)

	for _, want := range []string{
		"Profile loaded: Jane Smith",
		"💼 Data Analyst",
		"📍 Berlin, Germany",
		"2 experience entries, 1 education entries, 3 skills, 1 certifications",
		"Analyze my profile",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected welcome to contain %q, got:\n%s", want, out)
		}
	}

	if got := f.FormatWelcome(nil); got != "❌ No profile data available." {
		t.Fatalf("unexpected nil response: %q", got)
	}
}

func TestFormatAnalysis(t *testing.T) {
	f := NewResponseFormatter()

	analysis := &domain.ProfileAnalysis{
		Completeness: 72,
		Grade:        "C",
		Narrative:    "You are close to a strong profile.",
		SectionScores: []domain.SectionScore{
			{Section: "about", Earned: 4.5, Weight: 15},
		},
		DateIssues: []domain.DateIssue{
			{Section: "experience", Company: "Acme", Problem: "end date Jan 2020 precedes start date Mar 2021"},
		},
		SkillsQuality: domain.SkillsQuality{
			Total:     4,
			Endorsed:  1,
			Linked:    1,
			ProofRate: 0.5,
			Orphans:   []string{"Rust"},
		},
		Recommendations: []string{"Expand the about section", "Add endorsements"},
	}

	out := f.FormatAnalysis(analysis)

	for _, want := range []string{
		"Profile Analysis: 72/100 (grade C)",
		"You are close to a strong profile.",
		"- about: 4.5/15",
		"Date checks",
		"precedes start date",
		"4 skills, 50% backed",
		"Unproven: Rust",
		"1. Expand the about section",
		"2. Add endorsements",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected analysis to contain %q, got:\n%s", want, out)
		}
	}

	if got := f.FormatAnalysis(nil); got != "❌ Analysis produced no result." {
		t.Fatalf("unexpected nil response: %q", got)
	}
}

func TestFormatMatchReport(t *testing.T) {
	f := NewResponseFormatter()

	report := &domain.MatchReport{
		Score:               66.67,
		Confidence:          domain.ConfidenceMedium,
		Similarity:          0.82,
		MatchedSkills:       []string{"python", "sql"},
		MissingSkills:       []string{"airflow"},
		RelevantExperiences: []domain.Experience{{Title: "Analyst", Company: "Acme"}},
		JobTitle:            "Data Engineer",
		JDSource:            domain.JDSourceCustom,
		Narrative:           "Solid base, close the pipeline gap.",
		Improvements:        []string{"Build an airflow side project"},
	}

	out := f.FormatMatchReport(report)

	for _, want := range []string{
		"Job Match: Data Engineer",
		"Score: 66.7/100 (medium confidence)",
		"Semantic similarity: 82%",
		"your pasted job description",
		"Matched skills (2): python, sql",
		"Missing skills (1): airflow",
		"- Analyst at Acme",
		"1. Build an airflow side project",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected report to contain %q, got:\n%s", want, out)
		}
	}
}

func TestFormatMatchReportOmitsZeroSimilarity(t *testing.T) {
	f := NewResponseFormatter()

	out := f.FormatMatchReport(&domain.MatchReport{
		Score:      50,
		Confidence: domain.ConfidenceLow,
		JobTitle:   "Analyst",
		JDSource:   domain.JDSourceGeneric,
	})

	if strings.Contains(out, "Semantic similarity") {
		t.Fatalf("expected zero similarity omitted, got:\n%s", out)
	}
	if !strings.Contains(out, "generic role template") {
		t.Fatalf("expected generic source label, got:\n%s", out)
	}
}

func TestFormatRevision(t *testing.T) {
	f := NewResponseFormatter()

	revision := &domain.ContentRevision{
		Section: "headline",
		Priorities: []domain.SectionPriority{
			{Section: "headline", Priority: domain.PriorityHigh, Reason: "too short"},
		},
		QuickWins:        []string{"Use the full headline space"},
		Rewritten:        "Data Engineer | Pipelines that pay for themselves",
		Improvements:     []string{"Added a concrete outcome"},
		Keywords:         []string{"data engineering", "etl"},
		CredibilityNotes: []string{"verify the cost figure"},
		Tips:             []string{"keep it under 220 characters"},
	}

	out := f.FormatRevision(revision)

	for _, want := range []string{
		"Content Review: headline section",
		"[HIGH] headline: too short",
		"Quick wins",
		"Suggested rewrite",
		"Data Engineer | Pipelines that pay for themselves",
		"1. Added a concrete outcome",
		"Keywords worked in: data engineering, etl",
		"Verify before publishing: verify the cost figure",
		"- keep it under 220 characters",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected revision to contain %q, got:\n%s", want, out)
		}
	}
}

func TestFormatAdviceConversationalPassthrough(t *testing.T) {
	f := NewResponseFormatter()

	out := f.FormatAdvice(&domain.CareerAdvice{
		Comprehensive: false,
		Narrative:     "  Reach out, the worst case is silence.  ",
	})

	if out != "Reach out, the worst case is silence." {
		t.Fatalf("expected trimmed passthrough, got %q", out)
	}
	if strings.Contains(out, "Career Plan") {
		t.Fatal("expected no plan layout for conversational advice")
	}
}

func TestFormatAdviceComprehensive(t *testing.T) {
	f := NewResponseFormatter()

	advice := &domain.CareerAdvice{
		Comprehensive: true,
		Narrative:     "Here is the plan.",
		SkillEvolution: domain.SkillEvolution{
			Recent:          []string{"Kubernetes"},
			Consistent:      []string{"Go"},
			CareerYears:     6,
			AcquisitionRate: 1.5,
		},
		Gaps:      []string{"System design depth"},
		Resources: []string{"Designing Data-Intensive Applications"},
		Steps:     []string{"Ship a small Go service"},
		Timeline:  "9 to 12 months",
	}

	out := f.FormatAdvice(advice)

	for _, want := range []string{
		"Career Plan",
		"Here is the plan.",
		"6.0 years of experience, about 1.5 new skills per year",
		"Recently added: Kubernetes",
		"Core strengths: Go",
		"Gaps to close",
		"1. System design depth",
		"- Designing Data-Intensive Applications",
		"1. Ship a small Go service",
		"Timeline: 9 to 12 months",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected advice to contain %q, got:\n%s", want, out)
		}
	}
}

func TestFormatFollowUps(t *testing.T) {
	f := NewResponseFormatter()

	out := f.FormatFollowUps([]string{"First?", "Second?", "Third?", "Fourth?"})

	if !strings.Contains(out, "You could ask next:") {
		t.Fatalf("missing header: %q", out)
	}
	if !strings.Contains(out, "3. Third?") || strings.Contains(out, "Fourth?") {
		t.Fatalf("expected cap at three questions, got:\n%s", out)
	}

	if got := f.FormatFollowUps(nil); got != "" {
		t.Fatalf("expected empty output for no questions, got %q", got)
	}
}

func TestFormatCleared(t *testing.T) {
	f := NewResponseFormatter()

	if got := f.FormatCleared(true); !strings.Contains(got, "profile is still loaded") {
		t.Fatalf("unexpected cleared-with-profile text: %q", got)
	}
	if got := f.FormatCleared(false); strings.Contains(got, "profile") {
		t.Fatalf("unexpected cleared text: %q", got)
	}
}

func TestFormatNoProfile(t *testing.T) {
	f := NewResponseFormatter()

	out := f.FormatNoProfile()
	if !strings.Contains(out, "paste your LinkedIn profile URL") || !strings.Contains(out, "upload your resume") {
		t.Fatalf("expected loading instructions, got:\n%s", out)
	}
}

func TestJoinCapped(t *testing.T) {
	if got := joinCapped([]string{"a", "b"}, 3); got != "a, b" {
		t.Fatalf("expected plain join, got %q", got)
	}
	if got := joinCapped([]string{"a", "b", "c", "d", "e"}, 3); got != "a, b, c (+2 more)" {
		t.Fatalf("expected capped join, got %q", got)
	}
}
