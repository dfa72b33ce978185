package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/careerpilot/linkedin-optimizer-go/internal/constants"
	"github.com/careerpilot/linkedin-optimizer-go/internal/util"
)

type fakeProvider struct {
	name     string
	text     string
	err      error
	calls    int
	lastOpts *GenerateOptions
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Generate(ctx context.Context, prompt string, preset ModelPreset, opts *GenerateOptions) (ProviderResult, error) {
	f.calls++
	f.lastOpts = opts
	if f.err != nil {
		return ProviderResult{}, f.err
	}
	return ProviderResult{Text: f.text, Model: f.name + "-model"}, nil
}

func (f *fakeProvider) Ping(ctx context.Context) bool { return false }

func newTestManager(providers ...Provider) *ModelManager {
	mm := &ModelManager{logger: zap.NewNop()}
	for _, p := range providers {
		mm.addProvider(p)
	}
	return mm
}

func TestGenerateUsesFirstProvider(t *testing.T) {
	primary := &fakeProvider{name: "gemini", text: "primary reply"}
	backup := &fakeProvider{name: "openai", text: "backup reply"}
	mm := newTestManager(primary, backup)

	text, meta, err := mm.Generate(context.Background(), "prompt", PresetAnalysis, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "primary reply" {
		t.Fatalf("expected primary reply, got %q", text)
	}
	if meta.Provider != "gemini" || meta.UsedFallback {
		t.Fatalf("unexpected metadata: %+v", meta)
	}
	if backup.calls != 0 {
		t.Fatalf("expected backup untouched, got %d calls", backup.calls)
	}
}

func TestGenerateFallsBackInOrder(t *testing.T) {
	primary := &fakeProvider{name: "gemini", err: errors.New("503 service unavailable")}
	backup := &fakeProvider{name: "openai", text: "backup reply"}
	mm := newTestManager(primary, backup)

	text, meta, err := mm.Generate(context.Background(), "prompt", PresetAnalysis, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "backup reply" {
		t.Fatalf("expected backup reply, got %q", text)
	}
	if meta.Provider != "openai" || !meta.UsedFallback {
		t.Fatalf("expected fallback metadata, got %+v", meta)
	}
	if primary.calls != 1 || backup.calls != 1 {
		t.Fatalf("expected one attempt each, got %d/%d", primary.calls, backup.calls)
	}
}

func TestGenerateReportsExhaustedChain(t *testing.T) {
	mm := newTestManager(
		&fakeProvider{name: "gemini", err: errors.New("timeout")},
		&fakeProvider{name: "openai", err: errors.New("timeout")},
	)

	_, _, err := mm.Generate(context.Background(), "prompt", PresetAnalysis, nil)
	if err == nil {
		t.Fatal("expected error when every provider fails")
	}
	if !strings.Contains(err.Error(), "all model providers failed") {
		t.Fatalf("unexpected error text: %v", err)
	}
}

func TestGenerateWithoutProviders(t *testing.T) {
	mm := newTestManager()
	_, _, err := mm.Generate(context.Background(), "prompt", PresetAnalysis, nil)
	if err == nil || !strings.Contains(err.Error(), "no model provider available") {
		t.Fatalf("expected no-provider error, got %v", err)
	}
}

func TestBreakerOpensAfterRepeatedServiceFailures(t *testing.T) {
	failing := &fakeProvider{name: "gemini", err: errors.New("500 internal error")}
	mm := newTestManager(failing)

	for i := 0; i < constants.CircuitBreakerConfig.FailureThreshold; i++ {
		if _, _, err := mm.Generate(context.Background(), "prompt", PresetAnalysis, nil); err == nil {
			t.Fatal("expected failure")
		}
	}

	status := mm.CircuitStatus()["gemini"]
	if status.State != util.CircuitStateOpen {
		t.Fatalf("expected OPEN after %d failures, got %s",
			constants.CircuitBreakerConfig.FailureThreshold, status.State)
	}

	// Open breaker short-circuits without touching the provider
	attempts := failing.calls
	_, _, err := mm.Generate(context.Background(), "prompt", PresetAnalysis, nil)
	if err == nil || !strings.Contains(err.Error(), "no model provider available") {
		t.Fatalf("expected chain skip error, got %v", err)
	}
	if failing.calls != attempts {
		t.Fatalf("expected skipped provider to not be called, got %d calls", failing.calls)
	}

	mm.ResetCircuits()
	if got := mm.CircuitStatus()["gemini"].State; got != util.CircuitStateClosed {
		t.Fatalf("expected CLOSED after reset, got %s", got)
	}
	mm.Generate(context.Background(), "prompt", PresetAnalysis, nil)
	if failing.calls != attempts+1 {
		t.Fatalf("expected provider attempted after reset, got %d calls", failing.calls)
	}
}

func TestClientErrorsDoNotTripBreaker(t *testing.T) {
	failing := &fakeProvider{name: "gemini", err: errors.New("invalid request payload")}
	mm := newTestManager(failing)

	for i := 0; i < constants.CircuitBreakerConfig.FailureThreshold+2; i++ {
		mm.Generate(context.Background(), "prompt", PresetAnalysis, nil)
	}

	status := mm.CircuitStatus()["gemini"]
	if status.State != util.CircuitStateClosed {
		t.Fatalf("expected client errors to leave breaker CLOSED, got %s", status.State)
	}
	if failing.calls != constants.CircuitBreakerConfig.FailureThreshold+2 {
		t.Fatalf("expected every call attempted, got %d", failing.calls)
	}
}

func TestGenerateJSONStripsCodeFences(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{name: "json fence", raw: "```json\n{\"intent\":\"job_matching\"}\n```"},
		{name: "bare fence", raw: "```\n{\"intent\":\"job_matching\"}\n```"},
		{name: "no fence", raw: "{\"intent\":\"job_matching\"}"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider := &fakeProvider{name: "gemini", text: tc.raw}
			mm := newTestManager(provider)

			var dest struct {
				Intent string `json:"intent"`
			}
			meta, err := mm.GenerateJSON(context.Background(), "prompt", PresetRouter, &dest, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if dest.Intent != "job_matching" {
				t.Fatalf("expected parsed intent, got %q", dest.Intent)
			}
			if meta.Provider != "gemini" {
				t.Fatalf("expected provider metadata, got %+v", meta)
			}
			if provider.lastOpts == nil || !provider.lastOpts.JSONMode {
				t.Fatal("expected JSON mode forced on")
			}
		})
	}
}

func TestGenerateJSONRejectsInvalidPayloads(t *testing.T) {
	mm := newTestManager(&fakeProvider{name: "gemini", text: "not json at all"})
	var dest map[string]any
	if _, err := mm.GenerateJSON(context.Background(), "prompt", PresetRouter, &dest, nil); err == nil {
		t.Fatal("expected error for unparseable reply")
	}

	mm = newTestManager(&fakeProvider{name: "gemini", text: "   "})
	if _, err := mm.GenerateJSON(context.Background(), "prompt", PresetRouter, &dest, nil); err == nil {
		t.Fatal("expected error for empty reply")
	}
}
