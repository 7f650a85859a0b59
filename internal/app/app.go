// Package app wires configuration into a ready DocumentProcessor. Both the
// HTTP server and the batch command build their object graph here.
package app

import (
	"context"
	"fmt"
	"time"

	"quiz-extractor/internal/adapter"
	"quiz-extractor/internal/adapter/llm"
	"quiz-extractor/internal/adapter/pdftext"
	"quiz-extractor/internal/adapter/store"
	"quiz-extractor/internal/cache"
	"quiz-extractor/internal/config"
	"quiz-extractor/internal/domain"
	"quiz-extractor/internal/service"

	"github.com/redis/go-redis/v9"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// Supported values of llm.provider and storage.backend.
const (
	ProviderHTTP   = "http"
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"

	BackendRedis = "redis"
	BackendBolt  = "bolt"
)

const defaultReplyTTL = 24 * time.Hour

// App holds the wired services and the resources that must be released on
// shutdown.
type App struct {
	Processor domain.DocumentProcessor

	closers []func() error
	logger  *zap.Logger
}

// Build connects to storage, selects the model provider and assembles the
// extraction, verification and persistence services.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{logger: logger}

	completer, modelName, err := newCompleter(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("Model provider initialized",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", modelName),
	)

	var redisClient *redis.Client
	needsRedis := cfg.Storage.Backend == BackendRedis || cfg.Cache.Enabled
	if needsRedis {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			if cfg.Storage.Backend == BackendRedis {
				return nil, err
			}
			logger.Warn("Redis unavailable, model reply cache disabled", zap.Error(err))
		} else {
			a.closers = append(a.closers, redisClient.Close)
			logger.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))
		}
	}

	questionStore, err := a.newStore(cfg, redisClient)
	if err != nil {
		a.Close()
		return nil, err
	}

	var replyCache domain.Cache
	if cfg.Cache.Enabled && redisClient != nil {
		replyCache = adapter.NewRedisCacheAdapter(redisClient)
	}

	extraction, err := service.NewExtractionService(
		pdftext.NewExtractor(),
		completer,
		replyCache,
		modelName,
		cfg.ParseTTLStringOrDefault(cfg.Cache.ReplyTTL, defaultReplyTTL),
		logger,
	)
	if err != nil {
		a.Close()
		return nil, err
	}

	var verification domain.VerificationService
	if cfg.Verification.Enabled {
		lookup, err := llm.NewTextGenerationClient(cfg.VerificationURL(), cfg.LLM.APIKey, llm.NewHTTPClient(cfg.LLM.Timeout))
		if err != nil {
			a.Close()
			return nil, err
		}
		verification, err = service.NewVerificationService(lookup, cfg.Verification.SourceTag, logger)
		if err != nil {
			a.Close()
			return nil, err
		}
		logger.Info("Answer verification enabled", zap.String("endpoint", cfg.VerificationURL()))
	}

	storeService, err := service.NewQuestionStoreService(questionStore, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Processor, err = service.NewDocumentService(extraction, verification, storeService, questionStore, logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// Close releases storage connections. It is safe to call more than once.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("Failed to close resource", zap.Error(err))
		}
	}
	a.closers = nil
}

// newCompleter returns the extraction model client for cfg.LLM.Provider and
// the model name used in reply cache keys.
func newCompleter(cfg *config.Config) (domain.Completer, string, error) {
	httpClient := llm.NewHTTPClient(cfg.LLM.Timeout)

	switch cfg.LLM.Provider {
	case ProviderHTTP, "":
		client, err := llm.NewChatCompletionClient(cfg.LLM.APIURL, cfg.LLM.APIKey, cfg.LLM.Model, httpClient)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create chat completion client: %w", err)
		}
		return client, cfg.LLM.Model, nil

	case ProviderOllama:
		model, err := ollama.New(
			ollama.WithServerURL(cfg.Ollama.ServerURL),
			ollama.WithModel(cfg.Ollama.Model),
			ollama.WithHTTPClient(httpClient),
		)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create Ollama client: %w", err)
		}
		completer, err := llm.NewLangchainCompleter(model)
		if err != nil {
			return nil, "", err
		}
		return completer, cfg.Ollama.Model, nil

	case ProviderOpenAI:
		opts := []openai.Option{
			openai.WithToken(cfg.OpenAI.APIKey),
			openai.WithModel(cfg.OpenAI.Model),
			openai.WithHTTPClient(httpClient),
		}
		if cfg.OpenAI.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.OpenAI.BaseURL))
		}
		model, err := openai.New(opts...)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create OpenAI client: %w", err)
		}
		completer, err := llm.NewLangchainCompleter(model)
		if err != nil {
			return nil, "", err
		}
		return completer, cfg.OpenAI.Model, nil

	default:
		return nil, "", fmt.Errorf("unsupported llm provider: %q", cfg.LLM.Provider)
	}
}

func (a *App) newStore(cfg *config.Config, redisClient *redis.Client) (domain.QuestionStore, error) {
	switch cfg.Storage.Backend {
	case BackendRedis:
		return store.NewRedisQuestionStore(redisClient, cfg.Storage.Key)
	case BackendBolt:
		boltStore, err := store.OpenBoltQuestionStore(cfg.Storage.BoltPath, cfg.Storage.Key)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, boltStore.Close)
		a.logger.Info("Opened BoltDB question store", zap.String("path", cfg.Storage.BoltPath))
		return boltStore, nil
	default:
		return nil, fmt.Errorf("unsupported storage backend: %q", cfg.Storage.Backend)
	}
}
