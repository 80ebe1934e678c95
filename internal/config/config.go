package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"wordmine-server/internal/domain"
)

const (
	ProviderDashScope = "dashscope"
	ProviderVertex    = "vertex"

	PDFBackendFitz  = "fitz"
	PDFBackendPlain = "plain"

	defaultVertexModel = "gemini-2.0-flash-001"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerHost      string        `env:"SERVER_HOST"             env-default:"127.0.0.1"`
	ServerPort      string        `env:"PORT,SERVER_PORT"        env-default:"8000"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	UploadPath      string        `env:"UPLOAD_PATH"`
	MaxFileSize     int64         `env:"MAX_FILE_SIZE"           env-default:"52428800"` // 50MB
	LogLevel        string        `env:"LOG_LEVEL"               env-default:"info"`
	LogFormat       string        `env:"LOG_FORMAT"              env-default:"text"`

	LLM      LLMConfig
	PDF      PDFConfig
	Analysis AnalysisConfig
}

// LLMConfig selects and configures the language model backend.
type LLMConfig struct {
	Provider       string        `env:"LLM_PROVIDER"        env-default:"dashscope"`
	Model          string        `env:"LLM_MODEL"`
	Temperature    float32       `env:"LLM_TEMPERATURE"     env-default:"0.2"`
	RequestTimeout time.Duration `env:"LLM_REQUEST_TIMEOUT" env-default:"60s"`

	DashScopeAPIKey  string `env:"DASHSCOPE_API_KEY"`
	DashScopeBaseURL string `env:"DASHSCOPE_BASE_URL" env-default:"https://dashscope.aliyuncs.com/compatible-mode/v1"`

	GCPProjectID       string `env:"GCP_PROJECT_ID"`
	GCPLocation        string `env:"GCP_LOCATION"                   env-default:"us-central1"`
	GCPCredentialsFile string `env:"GOOGLE_APPLICATION_CREDENTIALS"`
}

// PDFConfig controls text extraction.
type PDFConfig struct {
	Backend     string        `env:"PDF_BACKEND"      env-default:"fitz"`
	Validate    bool          `env:"PDF_VALIDATE"     env-default:"false"`
	PageTimeout time.Duration `env:"PDF_PAGE_TIMEOUT" env-default:"90s"`
}

// AnalysisConfig bounds process-wide analysis work.
type AnalysisConfig struct {
	MaxConcurrent int64 `env:"MAX_CONCURRENT_ANALYSES" env-default:"4"`
}

// NewConfig reads the configuration from the environment and validates it
func NewConfig() (*AppConfig, error) {
	var cfg AppConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if cfg.UploadPath == "" {
		cfg.UploadPath = os.TempDir()
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = defaultModelFor(cfg.LLM.Provider)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks cross-field constraints that env tags cannot express.
func (c *AppConfig) Validate() error {
	switch c.LLM.Provider {
	case ProviderDashScope:
		if c.LLM.DashScopeAPIKey == "" {
			return fmt.Errorf("DASHSCOPE_API_KEY is required for provider %q", c.LLM.Provider)
		}
	case ProviderVertex:
		if c.LLM.GCPProjectID == "" {
			return fmt.Errorf("GCP_PROJECT_ID is required for provider %q", c.LLM.Provider)
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLM.Provider)
	}

	switch c.PDF.Backend {
	case PDFBackendFitz, PDFBackendPlain:
	default:
		return fmt.Errorf("unknown PDF_BACKEND %q", c.PDF.Backend)
	}

	if c.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive, got %d", c.MaxFileSize)
	}
	if c.Analysis.MaxConcurrent <= 0 {
		return fmt.Errorf("MAX_CONCURRENT_ANALYSES must be positive, got %d", c.Analysis.MaxConcurrent)
	}
	return nil
}

func defaultModelFor(provider string) string {
	if provider == ProviderVertex {
		return defaultVertexModel
	}
	return "qwen-turbo"
}

// GetServerAddr returns the listen address
func (c *AppConfig) GetServerAddr() string {
	return net.JoinHostPort(c.ServerHost, c.ServerPort)
}

// GetUploadPath returns the upload directory path
func (c *AppConfig) GetUploadPath() string {
	return c.UploadPath
}

// GetMaxFileSize returns the maximum allowed file size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetLogFormat returns the log output format
func (c *AppConfig) GetLogFormat() string {
	return c.LogFormat
}

// GetLLMProvider returns the configured language model backend
func (c *AppConfig) GetLLMProvider() string {
	return c.LLM.Provider
}

// GetPDFBackend returns the configured text extraction backend
func (c *AppConfig) GetPDFBackend() string {
	return c.PDF.Backend
}

var _ domain.Config = (*AppConfig)(nil)
