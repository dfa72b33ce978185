package scrape

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/careerpilot/linkedin-optimizer-go/internal/domain"
	"github.com/careerpilot/linkedin-optimizer-go/internal/service/cache"
	"github.com/careerpilot/linkedin-optimizer-go/pkg/errors"
	"go.uber.org/zap"
)

// Scraper turns a LinkedIn profile URL into a normalized Profile,
// consulting the cache before running the hosted actor.
type Scraper struct {
	client ActorClient
	cache  *cache.CacheService
	logger *zap.Logger
}

func NewScraper(client ActorClient, cacheService *cache.CacheService, logger *zap.Logger) *Scraper {
	return &Scraper{
		client: client,
		cache:  cacheService,
		logger: logger,
	}
}

func (s *Scraper) ScrapeProfile(ctx context.Context, linkedinURL string) (*domain.Profile, error) {
	username, err := ExtractUsername(linkedinURL)
	if err != nil {
		return nil, err
	}

	if cached, ok := s.cache.GetProfile(ctx, username); ok {
		s.logger.Info("Profile cache hit", zap.String("username", username))
		return cached, nil
	}

	item, err := s.client.FetchProfile(ctx, username)
	if err != nil {
		return nil, err
	}

	profile := NormalizeItem(item)
	profile.Source = domain.ProfileSourceLinkedIn
	profile.Username = username
	if profile.URL == "" {
		profile.URL = "https://www.linkedin.com/in/" + username
	}
	profile.ScrapedAt = time.Now()

	s.cache.SetProfile(ctx, username, profile)

	s.logger.Info("Profile scraped",
		zap.String("username", username),
		zap.String("name", profile.Name),
		zap.Int("experiences", len(profile.Experiences)),
		zap.Int("skills", len(profile.Skills)),
	)

	return profile, nil
}

// ExtractUsername validates a LinkedIn profile URL and returns the public
// identifier: the path segment after "/in/", stripped of query, fragment
// and trailing slash.
func ExtractUsername(profileURL string) (string, error) {
	raw := strings.TrimSpace(profileURL)
	if raw == "" {
		return "", errors.NewValidationError("profile URL is empty", "linkedin_url", profileURL)
	}

	marker := "linkedin.com/in/"
	idx := strings.Index(strings.ToLower(raw), marker)
	if idx < 0 {
		return "", errors.NewValidationError("not a LinkedIn profile URL", "linkedin_url", profileURL)
	}

	rest := raw[idx+len(marker):]
	for _, sep := range []string{"?", "#", "/"} {
		if cut := strings.Index(rest, sep); cut >= 0 {
			rest = rest[:cut]
		}
	}

	if unescaped, err := url.PathUnescape(rest); err == nil {
		rest = unescaped
	}
	rest = strings.TrimSpace(rest)

	if rest == "" {
		return "", errors.NewValidationError("profile URL has no username", "linkedin_url", profileURL)
	}

	return rest, nil
}
