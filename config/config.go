package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port            string          `mapstructure:"port"`
	AWSRegion       string          `mapstructure:"aws_region"`
	KnowledgeBucket string          `mapstructure:"knowledge_bucket"`
	SourceBucket    string          `mapstructure:"source_bucket"`
	OutputBucket    string          `mapstructure:"output_bucket"`
	KnowledgePrefix string          `mapstructure:"knowledge_prefix"`
	SlackToken      string          `mapstructure:"SLACK_VERIFICATION_TOKEN"`
	PromptStyle     string          `mapstructure:"prompt_style"`
	Retrieval       RetrievalConfig `mapstructure:"retrieval"`
	Generator       GeneratorConfig `mapstructure:"generator"`
	Cache           CacheConfig     `mapstructure:"cache"`
}

type RetrievalConfig struct {
	KnowledgeBaseID string `mapstructure:"knowledge_base_id"`
	ModelARN        string `mapstructure:"model_arn"`
}

type GeneratorConfig struct {
	// Provider selects the generation backend: "bedrock", "openai" or "gemini".
	Provider       string        `mapstructure:"provider"`
	ModelID        string        `mapstructure:"model_id"`
	OpenAIEndpoint string        `mapstructure:"openai_endpoint"`
	OpenAIAPIKey   string        `mapstructure:"OPENAI_API_KEY"`
	GeminiAPIKeys  []string      `mapstructure:"GEMINI_API_KEYS"`
	MaxTokens      int           `mapstructure:"max_tokens"`
	Temperature    float64       `mapstructure:"temperature"`
	TopK           int           `mapstructure:"top_k"`
	TopP           float64       `mapstructure:"top_p"`
	MaxAttempts    int           `mapstructure:"max_attempts"`
	InitialBackoff time.Duration `mapstructure:"initial_backoff"`
}

type CacheConfig struct {
	// Backend is "none", "memory" or "redis".
	Backend   string        `mapstructure:"backend"`
	TTL       time.Duration `mapstructure:"ttl"`
	RedisAddr string        `mapstructure:"redis_addr"`
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set up Viper to read from config file
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Set up Viper to read from environment variables
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Bind environment variables
	v.BindEnv("SLACK_VERIFICATION_TOKEN")
	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("GEMINI_API_KEYS")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if config.Generator.MaxAttempts == 0 {
		config.Generator.MaxAttempts = 4
	}
	if config.Generator.InitialBackoff == 0 {
		config.Generator.InitialBackoff = 2 * time.Second
	}

	return &config, nil
}
