package scrape

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

type fakeActorClient struct {
	usernames []string
	item      map[string]any
	err       error
}

func (f *fakeActorClient) FetchProfile(ctx context.Context, username string) (map[string]any, error) {
	f.usernames = append(f.usernames, username)
	if f.err != nil {
		return nil, f.err
	}
	return f.item, nil
}

func TestExtractUsername(t *testing.T) {
	cases := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{name: "plain profile url", url: "https://www.linkedin.com/in/john-doe", want: "john-doe"},
		{name: "trailing slash", url: "https://www.linkedin.com/in/john-doe/", want: "john-doe"},
		{name: "no scheme", url: "linkedin.com/in/john-doe", want: "john-doe"},
		{name: "query string stripped", url: "https://www.linkedin.com/in/john-doe?trk=public_profile", want: "john-doe"},
		{name: "fragment stripped", url: "https://www.linkedin.com/in/john-doe#experience", want: "john-doe"},
		{name: "subpath stripped", url: "https://www.linkedin.com/in/john-doe/details/skills/", want: "john-doe"},
		{name: "mixed case host", url: "https://WWW.LinkedIn.com/in/John-Doe", want: "John-Doe"},
		{name: "percent encoded", url: "https://www.linkedin.com/in/jos%C3%A9-garcia", want: "josé-garcia"},
		{name: "surrounding whitespace", url: "  https://www.linkedin.com/in/john-doe  ", want: "john-doe"},
		{name: "empty", url: "", wantErr: true},
		{name: "blank", url: "   ", wantErr: true},
		{name: "not linkedin", url: "https://example.com/in/john-doe", wantErr: true},
		{name: "company page", url: "https://www.linkedin.com/company/acme", wantErr: true},
		{name: "missing username", url: "https://www.linkedin.com/in/", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractUsername(tc.url)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got username %q", tc.url, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tc.url, err)
			}
			if got != tc.want {
				t.Fatalf("expected username %q, got %q", tc.want, got)
			}
		})
	}
}

func TestScrapeProfileNormalizesActorItem(t *testing.T) {
	client := &fakeActorClient{
		item: map[string]any{
			"basic_info": map[string]any{
				"fullname": "Jane Smith",
				"headline": "Staff Engineer",
			},
			"skills": []any{"Go", "Kubernetes"},
		},
	}
	scraper := NewScraper(client, nil, zap.NewNop())

	profile, err := scraper.ScrapeProfile(context.Background(), "https://www.linkedin.com/in/jane-smith/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(client.usernames) != 1 || client.usernames[0] != "jane-smith" {
		t.Fatalf("expected actor fetch for jane-smith, got %v", client.usernames)
	}
	if profile.Name != "Jane Smith" {
		t.Fatalf("expected name Jane Smith, got %q", profile.Name)
	}
	if profile.Username != "jane-smith" {
		t.Fatalf("expected username jane-smith, got %q", profile.Username)
	}
	if profile.URL != "https://www.linkedin.com/in/jane-smith" {
		t.Fatalf("expected canonical URL to be filled in, got %q", profile.URL)
	}
	if profile.ScrapedAt.IsZero() {
		t.Fatal("expected ScrapedAt to be set")
	}
}

func TestScrapeProfileRejectsBadURL(t *testing.T) {
	client := &fakeActorClient{}
	scraper := NewScraper(client, nil, zap.NewNop())

	if _, err := scraper.ScrapeProfile(context.Background(), "https://example.com/jane"); err == nil {
		t.Fatal("expected error for non-LinkedIn URL")
	}
	if len(client.usernames) != 0 {
		t.Fatalf("expected no actor calls for invalid URL, got %d", len(client.usernames))
	}
}

func TestScrapeProfilePropagatesActorError(t *testing.T) {
	client := &fakeActorClient{err: context.DeadlineExceeded}
	scraper := NewScraper(client, nil, zap.NewNop())

	if _, err := scraper.ScrapeProfile(context.Background(), "https://www.linkedin.com/in/jane"); err == nil {
		t.Fatal("expected actor error to propagate")
	}
}
