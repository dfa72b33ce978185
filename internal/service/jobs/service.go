package jobs

import (
	"context"
	"fmt"

	"github.com/careerpilot/linkedin-optimizer-go/internal/domain"
	"github.com/careerpilot/linkedin-optimizer-go/internal/service/cache"
	"go.uber.org/zap"
)

// SearchClient is the online job description source
type SearchClient interface {
	SearchJobDescription(ctx context.Context, role, location string) (string, error)
	Enabled() bool
}

// Service resolves a job description through the priority chain:
// custom JD > online search > built-in table > generic fallback.
// Every tier failure logs and falls through; Resolve never errors.
type Service struct {
	search SearchClient
	cache  *cache.CacheService
	logger *zap.Logger
}

func NewService(search SearchClient, cacheService *cache.CacheService, logger *zap.Logger) *Service {
	return &Service{
		search: search,
		cache:  cacheService,
		logger: logger,
	}
}

func (s *Service) Resolve(ctx context.Context, role, location, customJD string) *domain.JobDescription {
	if customJD != "" {
		title := role
		if title == "" {
			title = "Custom Role"
		}
		s.logger.Debug("Using custom job description", zap.String("role", title))
		return &domain.JobDescription{
			Title:          title,
			Text:           customJD,
			RequiredSkills: ExtractSkills(customJD),
			Location:       location,
			Source:         domain.JDSourceCustom,
		}
	}

	if role != "" {
		if jd := s.resolveOnline(ctx, role, location); jd != nil {
			return jd
		}

		if builtin, ok := lookupBuiltin(role); ok {
			s.logger.Info("Using built-in job description",
				zap.String("role", role),
				zap.String("matched", builtin.Title),
			)
			jd := builtin
			jd.Location = location
			jd.Source = domain.JDSourceBuiltin
			return &jd
		}
	}

	title := role
	if title == "" {
		title = "Professional"
	}
	s.logger.Info("Using generic job description", zap.String("role", title))
	return &domain.JobDescription{
		Title:          title,
		Text:           fmt.Sprintf(genericJobText, title),
		RequiredSkills: append([]string(nil), genericSkills...),
		Location:       location,
		Source:         domain.JDSourceGeneric,
	}
}

func (s *Service) resolveOnline(ctx context.Context, role, location string) *domain.JobDescription {
	if s.search == nil || !s.search.Enabled() {
		return nil
	}

	if cached, ok := s.cache.GetJobSearch(ctx, role, location); ok {
		s.logger.Debug("Job search cache hit", zap.String("role", role))
		return cached
	}

	text, err := s.search.SearchJobDescription(ctx, role, location)
	if err != nil {
		s.logger.Warn("Online job search failed, falling through",
			zap.String("role", role),
			zap.Error(err),
		)
		return nil
	}

	jd := &domain.JobDescription{
		Title:          role,
		Text:           text,
		RequiredSkills: ExtractSkills(text),
		Location:       location,
		Source:         domain.JDSourceOnline,
	}

	s.cache.SetJobSearch(ctx, role, location, jd)
	return jd
}
