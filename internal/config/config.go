package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "NEWSLETTER_CONFIG"
	logLevelEnv       = "NEWSLETTER_LOG_LEVEL"
	openAIAPIKeyEnv   = "OPENAI_API_KEY"
	geminiAPIKeyEnv   = "GEMINI_API_KEY"
	llmModelEnv       = "NEWSLETTER_LLM_MODEL"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"

	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	StorageJSON   = "json"
	StorageSQLite = "sqlite"
)

// Config holds every setting a run needs. It is built once at start-up and
// passed by value into the components that need it.
type Config struct {
	Logging       LoggingConfig         `yaml:"logging"`
	Feeds         FeedsConfig           `yaml:"feeds"`
	SourceNames   map[string]string     `yaml:"sourceNames"`
	NonRSS        map[string]NonRSSSite `yaml:"nonRssSites"`
	Pipeline      PipelineConfig        `yaml:"pipeline"`
	Fetch         FetchConfig           `yaml:"fetch"`
	Storage       StorageConfig         `yaml:"storage"`
	LLM           LLMConfig             `yaml:"llm"`
	Enrichment    EnrichmentConfig      `yaml:"enrichment"`
	Newsletter    NewsletterConfig      `yaml:"newsletter"`
	Notifications NotificationConfig    `yaml:"notifications"`
	UI            UIConfig              `yaml:"ui"`
}

// LoggingConfig selects verbosity and destination.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// FeedsConfig lists feed references per ingestion strategy.
type FeedsConfig struct {
	RSS    []string `yaml:"rss"`
	Hybrid []string `yaml:"hybrid"`
	NonRSS []string `yaml:"nonRss"`
}

// NonRSSSite describes how to discover articles on a plain listing page.
type NonRSSSite struct {
	ArticlePattern    string `yaml:"articlePattern"`
	AllowFallbackDate bool   `yaml:"allowFallbackDate"`
}

// PipelineConfig bounds the candidate set.
type PipelineConfig struct {
	MaxArticles int `yaml:"maxArticles"`
	RecencyDays int `yaml:"recencyDays"`
}

// FetchConfig drives the retrying HTTP client.
type FetchConfig struct {
	Timeout     time.Duration `yaml:"timeout"`
	Attempts    int           `yaml:"attempts"`
	InitialWait time.Duration `yaml:"initialWait"`
	UserAgent   string        `yaml:"userAgent"`
}

// StorageConfig points at the used-URL store.
type StorageConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

// LLMConfig defines how to contact the summarisation model.
type LLMConfig struct {
	Provider        string        `yaml:"provider"`
	Endpoint        string        `yaml:"endpoint"`
	Model           string        `yaml:"model"`
	APIKey          string        `yaml:"apiKey"`
	Timeout         time.Duration `yaml:"timeout"`
	RequestInterval time.Duration `yaml:"requestInterval"`
	ServerRetries   int           `yaml:"serverRetries"`
	RetryWait       time.Duration `yaml:"retryWait"`
	MaxAttempts     int           `yaml:"maxAttempts"`
}

// EnrichmentConfig controls the prompt vocabulary.
type EnrichmentConfig struct {
	Tags         []string `yaml:"tags"`
	SummaryWords int      `yaml:"summaryWords"`
	Audience     string   `yaml:"audience"`
}

// NewsletterConfig sets the issue header and output.
type NewsletterConfig struct {
	Title        string `yaml:"title"`
	Summary      string `yaml:"summary"`
	OutputPath   string `yaml:"outputPath"`
	TemplatePath string `yaml:"templatePath"`
}

// NotificationConfig encapsulates outbound channels.
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// UIConfig tunes the terminal.
type UIConfig struct {
	Colors *bool `yaml:"colors"`
}

// ColorsEnabled defaults to true when unset.
func (u UIConfig) ColorsEnabled() bool {
	return u.Colors == nil || *u.Colors
}

// Load reads YAML configuration from path (or the NEWSLETTER_CONFIG variable
// when path is empty) and applies environment overrides.
func Load(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	switch c.LLM.Provider {
	case ProviderGemini:
		if v := os.Getenv(geminiAPIKeyEnv); v != "" {
			c.LLM.APIKey = v
		}
	default:
		if v := os.Getenv(openAIAPIKeyEnv); v != "" {
			c.LLM.APIKey = v
		}
	}

	if v := os.Getenv(llmModelEnv); v != "" {
		c.LLM.Model = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.File != "" {
		base.Logging.File = override.Logging.File
	}

	if len(override.Feeds.RSS) > 0 {
		base.Feeds.RSS = override.Feeds.RSS
	}
	if len(override.Feeds.Hybrid) > 0 {
		base.Feeds.Hybrid = override.Feeds.Hybrid
	}
	if len(override.Feeds.NonRSS) > 0 {
		base.Feeds.NonRSS = override.Feeds.NonRSS
	}
	if len(override.SourceNames) > 0 {
		base.SourceNames = override.SourceNames
	}
	if len(override.NonRSS) > 0 {
		base.NonRSS = override.NonRSS
	}

	if override.Pipeline.MaxArticles != 0 {
		base.Pipeline.MaxArticles = override.Pipeline.MaxArticles
	}
	if override.Pipeline.RecencyDays > 0 {
		base.Pipeline.RecencyDays = override.Pipeline.RecencyDays
	}

	if override.Fetch.Timeout > 0 {
		base.Fetch.Timeout = override.Fetch.Timeout
	}
	if override.Fetch.Attempts > 0 {
		base.Fetch.Attempts = override.Fetch.Attempts
	}
	if override.Fetch.InitialWait > 0 {
		base.Fetch.InitialWait = override.Fetch.InitialWait
	}
	if override.Fetch.UserAgent != "" {
		base.Fetch.UserAgent = override.Fetch.UserAgent
	}

	if override.Storage.Driver != "" {
		base.Storage.Driver = override.Storage.Driver
	}
	if override.Storage.Path != "" {
		base.Storage.Path = override.Storage.Path
	}

	if override.LLM.Provider != "" {
		base.LLM.Provider = override.LLM.Provider
		// Endpoint and model defaults belong to the default provider.
		if override.LLM.Provider != ProviderOpenAI {
			base.LLM.Endpoint = ""
			base.LLM.Model = ""
		}
	}
	if override.LLM.Endpoint != "" {
		base.LLM.Endpoint = override.LLM.Endpoint
	}
	if override.LLM.Model != "" {
		base.LLM.Model = override.LLM.Model
	}
	if override.LLM.APIKey != "" {
		base.LLM.APIKey = override.LLM.APIKey
	}
	if override.LLM.Timeout > 0 {
		base.LLM.Timeout = override.LLM.Timeout
	}
	if override.LLM.RequestInterval > 0 {
		base.LLM.RequestInterval = override.LLM.RequestInterval
	}
	if override.LLM.ServerRetries > 0 {
		base.LLM.ServerRetries = override.LLM.ServerRetries
	}
	if override.LLM.RetryWait > 0 {
		base.LLM.RetryWait = override.LLM.RetryWait
	}
	if override.LLM.MaxAttempts > 0 {
		base.LLM.MaxAttempts = override.LLM.MaxAttempts
	}

	if len(override.Enrichment.Tags) > 0 {
		base.Enrichment.Tags = override.Enrichment.Tags
	}
	if override.Enrichment.SummaryWords > 0 {
		base.Enrichment.SummaryWords = override.Enrichment.SummaryWords
	}
	if override.Enrichment.Audience != "" {
		base.Enrichment.Audience = override.Enrichment.Audience
	}

	if override.Newsletter.Title != "" {
		base.Newsletter.Title = override.Newsletter.Title
	}
	if override.Newsletter.Summary != "" {
		base.Newsletter.Summary = override.Newsletter.Summary
	}
	if override.Newsletter.OutputPath != "" {
		base.Newsletter.OutputPath = override.Newsletter.OutputPath
	}
	if override.Newsletter.TemplatePath != "" {
		base.Newsletter.TemplatePath = override.Newsletter.TemplatePath
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if override.UI.Colors != nil {
		base.UI.Colors = override.UI.Colors
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging:     LoggingConfig{Level: "info"},
		SourceNames: map[string]string{},
		NonRSS:      map[string]NonRSSSite{},
		Pipeline:    PipelineConfig{MaxArticles: 20, RecencyDays: 14},
		Fetch: FetchConfig{
			Timeout:     10 * time.Second,
			Attempts:    3,
			InitialWait: 3 * time.Second,
			UserAgent:   "NewsletterCurator/1.0",
		},
		Storage: StorageConfig{Driver: StorageJSON, Path: "data/urls.json"},
		LLM: LLMConfig{
			Provider:        ProviderOpenAI,
			Endpoint:        "https://api.openai.com/v1/chat/completions",
			Model:           "gpt-4o-mini",
			Timeout:         60 * time.Second,
			RequestInterval: 4 * time.Second,
			ServerRetries:   3,
			RetryWait:       5 * time.Second,
			MaxAttempts:     5,
		},
		Enrichment: EnrichmentConfig{
			Tags:         []string{"P2SA", "P2SB"},
			SummaryWords: 100,
		},
		Newsletter: NewsletterConfig{
			Title:      "This Week in English",
			OutputPath: "newsletter.html",
		},
	}
}
