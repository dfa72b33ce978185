package agent

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/careerpilot/linkedin-optimizer-go/internal/domain"
)

func TestQuestionsParsesModelReply(t *testing.T) {
	model := &fakeModel{reply: "- How do I fix my headline?\n- What roles fit my skills?\n- Should I add certifications?"}
	gen := NewFollowUpGenerator(model, zap.NewNop())

	questions := gen.Questions(context.Background(), domain.BranchProfileAnalysis, "analysis reply", true)

	want := []string{
		"How do I fix my headline?",
		"What roles fit my skills?",
		"Should I add certifications?",
	}
	if len(questions) != 3 {
		t.Fatalf("expected 3 questions, got %v", questions)
	}
	for i := range want {
		if questions[i] != want[i] {
			t.Fatalf("question %d: expected %q, got %q", i, want[i], questions[i])
		}
	}
}

func TestQuestionsPadsShortReplies(t *testing.T) {
	model := &fakeModel{reply: "- How do I fix my headline?"}
	gen := NewFollowUpGenerator(model, zap.NewNop())

	questions := gen.Questions(context.Background(), domain.BranchProfileAnalysis, "reply", true)

	if len(questions) != 3 {
		t.Fatalf("expected padded trio, got %v", questions)
	}
	if questions[0] != "How do I fix my headline?" {
		t.Fatalf("expected the model question first, got %q", questions[0])
	}
	if questions[1] != "Which section should I improve first?" {
		t.Fatalf("expected static padding, got %q", questions[1])
	}
}

func TestQuestionsFallBackToStaticSet(t *testing.T) {
	model := &fakeModel{err: context.DeadlineExceeded}
	gen := NewFollowUpGenerator(model, zap.NewNop())

	questions := gen.Questions(context.Background(), domain.BranchJobMatching, "reply", true)

	want := fallbackFollowUps(domain.BranchJobMatching)
	if len(questions) != len(want) {
		t.Fatalf("expected the static trio, got %v", questions)
	}
	for i := range want {
		if questions[i] != want[i] {
			t.Fatalf("question %d: expected %q, got %q", i, want[i], questions[i])
		}
	}
}

func TestQuestionsTruncateLongLines(t *testing.T) {
	long := "- Could you walk me through rewriting every single experience entry so each one leads with a measurable outcome and names the stack?"
	model := &fakeModel{reply: long}
	gen := NewFollowUpGenerator(model, zap.NewNop())

	questions := gen.Questions(context.Background(), domain.BranchContentGeneration, "reply", true)

	if !strings.HasSuffix(questions[0], "...") {
		t.Fatalf("expected truncation marker, got %q", questions[0])
	}
	if n := utf8.RuneCountInString(questions[0]); n != 93 {
		t.Fatalf("expected 90 runes plus marker, got %d", n)
	}
}

func TestBulletLines(t *testing.T) {
	reply := "Intro line\n- first\n* second\n3. third\n4) fourth\nplain line"

	lines := bulletLines(reply, 10)

	want := []string{"first", "second", "third", "fourth"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d bullets, got %v", len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("bullet %d: expected %q, got %q", i, want[i], lines[i])
		}
	}

	if capped := bulletLines(reply, 2); len(capped) != 2 {
		t.Fatalf("expected cap at 2, got %v", capped)
	}
}

func TestLooksLikeHeading(t *testing.T) {
	cases := []struct {
		line string
		want bool
	}{
		{"Skill Gaps:", true},
		{"# Resources", true},
		{"**Action Steps**", true},
		{"- a list item:", false},
		{"a sentence that simply ends without punctuation", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := looksLikeHeading(tc.line); got != tc.want {
			t.Fatalf("looksLikeHeading(%q): expected %v, got %v", tc.line, tc.want, got)
		}
	}
}
