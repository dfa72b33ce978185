package app

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/careerpilot/linkedin-optimizer-go/internal/adapter"
	"github.com/careerpilot/linkedin-optimizer-go/internal/agent"
	"github.com/careerpilot/linkedin-optimizer-go/internal/config"
	"github.com/careerpilot/linkedin-optimizer-go/internal/constants"
	"github.com/careerpilot/linkedin-optimizer-go/internal/router"
	"github.com/careerpilot/linkedin-optimizer-go/internal/server"
	"github.com/careerpilot/linkedin-optimizer-go/internal/service/cache"
	"github.com/careerpilot/linkedin-optimizer-go/internal/service/embedding"
	"github.com/careerpilot/linkedin-optimizer-go/internal/service/importer"
	"github.com/careerpilot/linkedin-optimizer-go/internal/service/jobs"
	"github.com/careerpilot/linkedin-optimizer-go/internal/service/llm"
	"github.com/careerpilot/linkedin-optimizer-go/internal/service/match"
	"github.com/careerpilot/linkedin-optimizer-go/internal/service/scrape"
	"github.com/careerpilot/linkedin-optimizer-go/internal/service/search"
	"github.com/careerpilot/linkedin-optimizer-go/internal/session"
)

// Container holds the assembled service graph
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	Server   *server.Server
	Sessions *session.Store
	Models   *llm.ModelManager

	closers []func()
}

// Close releases resources in reverse construction order
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// Build assembles all infrastructure services. Heavy initialization
// (cache, database, LLM clients) happens here so the server and agents
// stay focused on request handling.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	// Cache is optional: a nil service degrades to misses
	cacheSvc, cacheErr := cache.NewCacheService(cache.CacheConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, logger)
	if cacheErr != nil {
		logger.Warn("Redis unavailable, running without cache", zap.Error(cacheErr))
		cacheSvc = nil
	} else {
		closers = append(closers, func() {
			_ = cacheSvc.Close()
		})
	}

	// Postgres mirror is optional: session files stay authoritative
	var archive *session.Archive
	if cfg.Database.URL != "" {
		archive, err = session.NewArchive(cfg.Database.URL, logger)
		if err != nil {
			logger.Warn("Session archive unavailable, sessions stay file-only", zap.Error(err))
			archive = nil
			err = nil
		} else {
			closers = append(closers, func() {
				_ = archive.Close()
			})
		}
	}

	sessions, err := session.NewStore(cfg.Session.Dir, archive, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create session store: %w", err)
	}

	// LLM stack
	modelManager, err := llm.NewModelManager(ctx, llm.ModelManagerConfig{
		GeminiAPIKey:            cfg.Gemini.APIKey,
		GeminiModel:             cfg.Gemini.Model,
		OpenAIAPIKey:            cfg.OpenAI.APIKey,
		OpenAIModel:             cfg.OpenAI.Model,
		AnthropicAPIKey:         cfg.Anthropic.APIKey,
		AnthropicModel:          cfg.Anthropic.Model,
		EnableOpenAIFallback:    cfg.OpenAI.EnableFallback,
		EnableAnthropicFallback: cfg.Anthropic.EnableFallback,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create model manager: %w", err)
	}

	// Embeddings fall back to local hashing vectors when the API is out
	geminiEmbedder := embedding.NewGeminiEmbedder(modelManager.GeminiClient(), cfg.Gemini.EmbeddingModel, cacheSvc, logger)
	hashingEmbedder := embedding.NewHashingEmbedder(constants.EmbeddingConfig.Dimensions)
	embedder := embedding.NewFallbackEmbedder(geminiEmbedder, hashingEmbedder, logger)

	vectorIndex := match.NewIndex(logger)

	// External data sources
	apifyClient := scrape.NewApifyClient(&http.Client{Timeout: constants.APIConfig.ApifyTimeout}, cfg.Apify.APIToken, logger)
	scraper := scrape.NewScraper(apifyClient, cacheSvc, logger)

	tavilyClient := search.NewTavilyClient(&http.Client{Timeout: constants.APIConfig.TavilyTimeout}, cfg.Tavily.APIKey, logger)
	jobsSvc := jobs.NewService(tavilyClient, cacheSvc, logger)

	importerSvc := importer.NewImporter(logger)

	// Routing and agents
	chatRouter, err := router.NewRouter(modelManager, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create router: %w", err)
	}

	analyzer := agent.NewAnalyzer(modelManager, logger)
	matcher := agent.NewMatcher(modelManager, jobsSvc, embedder, vectorIndex, logger)
	contentAgent := agent.NewContentAgent(modelManager, logger)
	counselor := agent.NewCounselor(modelManager, logger)
	followUps := agent.NewFollowUpGenerator(modelManager, logger)

	formatter := adapter.NewResponseFormatter()

	chatSvc := server.NewChatService(server.ChatDeps{
		Router:    chatRouter,
		Analyzer:  analyzer,
		Matcher:   matcher,
		Content:   contentAgent,
		Counselor: counselor,
		FollowUps: followUps,
		Scraper:   scraper,
		Importer:  importerSvc,
		Sessions:  sessions,
		Formatter: formatter,
		Logger:    logger,
	})

	srv := server.NewServer(cfg, chatSvc, sessions, modelManager, cacheSvc, logger)

	logger.Info("Service graph assembled",
		zap.Bool("cache", cacheSvc != nil),
		zap.Bool("archive", archive != nil),
		zap.Bool("search", tavilyClient.Enabled()),
	)

	return &Container{
		Config:   cfg,
		Logger:   logger,
		Server:   srv,
		Sessions: sessions,
		Models:   modelManager,
		closers:  closers,
	}, nil
}
