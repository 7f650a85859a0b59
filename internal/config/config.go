package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig
	Logger       LoggerConfig
	LLM          LLMConfig
	Ollama       OllamaConfig
	OpenAI       OpenAIConfig
	Storage      StorageConfig
	Redis        RedisConfig
	Cache        CacheConfig
	Verification VerificationConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

type LoggerConfig struct {
	Level string
	Env   string
}

// LLMConfig points at the chat-completion endpoint used for extraction. The
// verification endpoint is APIURL with Model appended.
type LLMConfig struct {
	Provider string // "http", "ollama" or "openai"
	APIURL   string
	APIKey   string
	Model    string
	Timeout  time.Duration // 0 disables the client timeout
}

type OllamaConfig struct {
	ServerURL string
	Model     string
}

type OpenAIConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

type StorageConfig struct {
	Backend  string // "redis" or "bolt"
	Key      string
	BoltPath string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type CacheConfig struct {
	Enabled  bool
	ReplyTTL string
}

type VerificationConfig struct {
	Enabled   bool
	SourceTag string
}

const (
	DefaultAPIURL     = "https://router.huggingface.co/nebius/v1/chat/completions"
	DefaultModel      = "google/gemma-2-2b-it"
	DefaultStorageKey = "quiz_questions"
	DefaultSourceTag  = "Internet"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", 60)
	v.SetDefault("server.write_timeout", 120)
	v.SetDefault("server.body_limit", 20*1024*1024)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")

	v.SetDefault("llm.provider", "http")
	v.SetDefault("llm.api_url", DefaultAPIURL)
	v.SetDefault("llm.model", DefaultModel)
	v.SetDefault("llm.timeout", 0)

	v.SetDefault("ollama.server_url", "http://localhost:11434")
	v.SetDefault("ollama.model", "qwen3:0.6b")

	v.SetDefault("storage.backend", "redis")
	v.SetDefault("storage.key", DefaultStorageKey)
	v.SetDefault("storage.bolt_path", "data/questions.db")

	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.reply_ttl", "24h")

	v.SetDefault("verification.enabled", true)
	v.SetDefault("verification.source_tag", DefaultSourceTag)
}

// LoadConfig reads config.yaml from the working directory (or ./config) and
// applies environment overrides.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Add config paths based on environment
	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		fmt.Println("No config file found, using defaults and environment")
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	return build(v), nil
}

// LoadConfigFile reads the given YAML file and applies environment overrides.
func LoadConfigFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return build(v), nil
}

func build(v *viper.Viper) *Config {
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	config := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  time.Duration(v.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("server.write_timeout")) * time.Second,
			BodyLimit:    v.GetInt("server.body_limit"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
		LLM: LLMConfig{
			Provider: v.GetString("llm.provider"),
			APIURL:   v.GetString("llm.api_url"),
			APIKey:   v.GetString("llm.api_key"),
			Model:    v.GetString("llm.model"),
			Timeout:  time.Duration(v.GetInt("llm.timeout")) * time.Second,
		},
		Ollama: OllamaConfig{
			ServerURL: v.GetString("ollama.server_url"),
			Model:     v.GetString("ollama.model"),
		},
		OpenAI: OpenAIConfig{
			BaseURL: v.GetString("openai.base_url"),
			APIKey:  v.GetString("openai.api_key"),
			Model:   v.GetString("openai.model"),
		},
		Storage: StorageConfig{
			Backend:  v.GetString("storage.backend"),
			Key:      v.GetString("storage.key"),
			BoltPath: v.GetString("storage.bolt_path"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Cache: CacheConfig{
			Enabled:  v.GetBool("cache.enabled"),
			ReplyTTL: v.GetString("cache.reply_ttl"),
		},
		Verification: VerificationConfig{
			Enabled:   v.GetBool("verification.enabled"),
			SourceTag: v.GetString("verification.source_tag"),
		},
	}

	// Legacy variable names used by existing deployments
	if apiKey := os.Getenv("HF_API_KEY"); apiKey != "" && config.LLM.APIKey == "" {
		config.LLM.APIKey = apiKey
	}
	if openAIKey := os.Getenv("OPENAI_API_KEY"); openAIKey != "" && config.OpenAI.APIKey == "" {
		config.OpenAI.APIKey = openAIKey
	}

	return config
}

// ParseTTLStringOrDefault parses a duration string such as "24h", falling
// back to defaultTTL when the string is empty or invalid.
func (c *Config) ParseTTLStringOrDefault(ttlString string, defaultTTL time.Duration) time.Duration {
	if ttlString == "" {
		return defaultTTL
	}
	duration, err := time.ParseDuration(ttlString)
	if err != nil {
		return defaultTTL
	}
	return duration
}

// VerificationURL is the text-generation endpoint: the extraction URL with
// the model name appended.
func (c *Config) VerificationURL() string {
	return c.LLM.APIURL + c.LLM.Model
}
