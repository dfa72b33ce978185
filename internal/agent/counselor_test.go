package agent

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/careerpilot/linkedin-optimizer-go/internal/domain"
)

func TestIsComprehensiveQuery(t *testing.T) {
	comprehensive := []string{
		"map out my career path",
		"what roadmap should I follow",
		"I want to transition into data engineering",
		"help me grow into a staff role",
		"give me a development plan",
	}
	for _, q := range comprehensive {
		if !isComprehensiveQuery(q) {
			t.Fatalf("expected %q to be comprehensive", q)
		}
	}

	conversational := []string{
		"thanks, that was helpful",
		"should I message this recruiter",
		"what salary should I ask for",
	}
	for _, q := range conversational {
		if isComprehensiveQuery(q) {
			t.Fatalf("expected %q to be conversational", q)
		}
	}
}

func TestAnalyzeSkillEvolution(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	p := &domain.Profile{
		Experiences: []domain.Experience{
			{Title: "Platform Engineer", Description: "Go and Kubernetes platform work", StartDate: "Jan 2025", EndDate: "Present"},
			{Title: "Backend Engineer", Description: "Go services with PostgreSQL", StartDate: "Jan 2019", EndDate: "Dec 2024"},
		},
		Skills: []string{"Go", "Kubernetes", "PostgreSQL", "Figma"},
	}

	evolution := analyzeSkillEvolution(p, now)

	if len(evolution.Recent) != 2 || evolution.Recent[0] != "Go" || evolution.Recent[1] != "Kubernetes" {
		t.Fatalf("unexpected recent skills: %v", evolution.Recent)
	}
	if len(evolution.Older) != 1 || evolution.Older[0] != "PostgreSQL" {
		t.Fatalf("unexpected older skills: %v", evolution.Older)
	}
	if len(evolution.Consistent) != 1 || evolution.Consistent[0] != "Go" {
		t.Fatalf("unexpected consistent skills: %v", evolution.Consistent)
	}
	if evolution.CareerYears < 7.1 || evolution.CareerYears > 7.2 {
		t.Fatalf("expected roughly 7.2 career years, got %.2f", evolution.CareerYears)
	}
	if evolution.AcquisitionRate < 0.5 || evolution.AcquisitionRate > 0.6 {
		t.Fatalf("expected roughly 0.56 skills per year, got %.2f", evolution.AcquisitionRate)
	}
}

func TestAnalyzeSkillEvolutionNilProfile(t *testing.T) {
	evolution := analyzeSkillEvolution(nil, time.Now())
	if evolution.CareerYears != 0 || len(evolution.Recent) != 0 {
		t.Fatalf("expected zero evolution, got %+v", evolution)
	}
}

func TestAdviseComprehensiveParsesPlan(t *testing.T) {
	reply := `Here is your plan.

Skill Gaps:
- Kubernetes operations experience
- System design depth

Resources:
- Designing Data-Intensive Applications

Action Steps:
1. Ship a small Go service to production
2. Take an on-call rotation

Timeline:
- 9 to 12 months to a senior role`

	model := &fakeModel{reply: reply}
	counselor := NewCounselor(model, zap.NewNop())

	advice := counselor.Advise(context.Background(), CounselInputs{
		Profile: fullProfile(),
		Query:   "map out my career path for the next two years",
	})

	if !advice.Comprehensive {
		t.Fatal("expected comprehensive advice")
	}
	if advice.Narrative != reply {
		t.Fatalf("expected narrative to keep the full reply, got %q", advice.Narrative)
	}
	if len(advice.Gaps) != 2 || advice.Gaps[0] != "Kubernetes operations experience" {
		t.Fatalf("unexpected gaps: %v", advice.Gaps)
	}
	if len(advice.Resources) != 1 {
		t.Fatalf("unexpected resources: %v", advice.Resources)
	}
	if len(advice.Steps) != 2 || advice.Steps[0] != "Ship a small Go service to production" {
		t.Fatalf("unexpected steps: %v", advice.Steps)
	}
	if advice.Timeline != "9 to 12 months to a senior role" {
		t.Fatalf("unexpected timeline: %q", advice.Timeline)
	}
}

func TestAdviseConversationalSkipsPlanParsing(t *testing.T) {
	model := &fakeModel{reply: "Skill Gaps:\n- none worth blocking on\n\nReach out, the worst case is silence."}
	counselor := NewCounselor(model, zap.NewNop())

	advice := counselor.Advise(context.Background(), CounselInputs{
		Profile: fullProfile(),
		Query:   "should I reach out to recruiters directly?",
	})

	if advice.Comprehensive {
		t.Fatal("expected conversational advice")
	}
	if len(advice.Gaps) != 0 || len(advice.Steps) != 0 || advice.Timeline != "" {
		t.Fatalf("expected no plan fields on conversational replies, got %+v", advice)
	}
	if advice.Narrative != model.reply {
		t.Fatalf("expected reply passed through, got %q", advice.Narrative)
	}
}

func TestAdviseFallsBackOnModelFailure(t *testing.T) {
	model := &fakeModel{err: context.DeadlineExceeded}
	counselor := NewCounselor(model, zap.NewNop())

	advice := counselor.Advise(context.Background(), CounselInputs{
		Profile: fullProfile(),
		Query:   "what roadmap should I follow",
	})

	if advice.Narrative != counselFallback {
		t.Fatalf("expected fallback narrative, got %q", advice.Narrative)
	}
	if !advice.Comprehensive {
		t.Fatal("expected query classification to survive the fallback")
	}
	if advice.SkillEvolution.CareerYears == 0 {
		t.Fatal("expected skill evolution computed before the model call")
	}
}

func TestFirstTimelineLine(t *testing.T) {
	cases := []struct {
		name  string
		reply string
		want  string
	}{
		{"heading block", "TIMELINE:\n- 12 months", "12 months"},
		{"inline prefix", "Timeline: about 6 months", "about 6 months"},
		{"bare duration line", "Expect roughly 9 months of focused prep.", "Expect roughly 9 months of focused prep."},
		{"no estimate", "Just keep shipping.", ""},
	}
	for _, tc := range cases {
		if got := firstTimelineLine(tc.reply); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}
