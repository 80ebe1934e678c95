package config

import (
	"context"
	"errors"
	"fmt"

	"wordmine-server/internal/domain"
	"wordmine-server/internal/infra/dashscope"
	"wordmine-server/internal/infra/vertex"
	"wordmine-server/internal/service"
	"wordmine-server/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config          *AppConfig
	Logger          domain.Logger
	AnalysisService domain.AnalysisService
	FileHandler     domain.FileHandler

	closers []func() error
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context) (*Container, error) {
	cfg, err := NewConfig()
	if err != nil {
		return nil, err
	}
	appLogger := logger.NewLogger(cfg.GetLogLevel(), cfg.GetLogFormat())

	c := &Container{
		Config: cfg,
		Logger: appLogger,
	}

	extractor := buildTextExtractor(cfg, appLogger)

	var validator domain.PDFValidator
	if cfg.PDF.Validate {
		validator = service.NewPDFCPUValidator()
	}

	parser, err := service.NewJSONWordListParser()
	if err != nil {
		return nil, fmt.Errorf("failed to compile word list schema: %w", err)
	}

	model, err := c.buildLanguageModel(ctx, cfg, appLogger)
	if err != nil {
		return nil, err
	}

	vocabulary := service.NewLLMVocabularyExtractor(model, parser)
	orchestrator := service.NewBatchOrchestrator(vocabulary, appLogger)

	c.AnalysisService = service.NewAnalysisService(
		extractor,
		validator,
		service.NewRecursiveChunker(),
		orchestrator,
		cfg.Analysis.MaxConcurrent,
		appLogger,
	)
	c.FileHandler = service.NewTempStorage(cfg.GetUploadPath(), appLogger)

	appLogger.Info("Container initialized",
		"llm_provider", cfg.GetLLMProvider(),
		"llm_model", cfg.LLM.Model,
		"pdf_backend", cfg.GetPDFBackend(),
		"pdf_validate", cfg.PDF.Validate,
		"upload_path", cfg.GetUploadPath(),
	)
	return c, nil
}

func buildTextExtractor(cfg *AppConfig, log domain.Logger) domain.TextExtractor {
	if cfg.PDF.Backend == PDFBackendPlain {
		return service.NewPlainPDFExtractor(log)
	}
	return service.NewPDFProcessor(log, cfg.PDF.PageTimeout)
}

func (c *Container) buildLanguageModel(ctx context.Context, cfg *AppConfig, log domain.Logger) (domain.LanguageModel, error) {
	switch cfg.LLM.Provider {
	case ProviderVertex:
		client, err := vertex.NewClient(ctx, vertex.Options{
			ProjectID:       cfg.LLM.GCPProjectID,
			Location:        cfg.LLM.GCPLocation,
			Model:           cfg.LLM.Model,
			Temperature:     cfg.LLM.Temperature,
			Timeout:         cfg.LLM.RequestTimeout,
			CredentialsFile: cfg.LLM.GCPCredentialsFile,
		}, log)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, client.Close)
		return client, nil
	case ProviderDashScope:
		return dashscope.NewClient(dashscope.Options{
			APIKey:      cfg.LLM.DashScopeAPIKey,
			BaseURL:     cfg.LLM.DashScopeBaseURL,
			Model:       cfg.LLM.Model,
			Temperature: float64(cfg.LLM.Temperature),
			Timeout:     cfg.LLM.RequestTimeout,
		}, log)
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLM.Provider)
	}
}

// Close releases backend clients
func (c *Container) Close() error {
	var errs []error
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}
