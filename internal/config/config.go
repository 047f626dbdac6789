// Package config loads application configuration from a YAML file,
// environment variables, and an optional .env file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Scan     Scan     `mapstructure:"scan"`
	Gemini   Gemini   `mapstructure:"gemini"`
	Publish  Publish  `mapstructure:"publish"`
	Output   Output   `mapstructure:"output"`
	Keywords Keywords `mapstructure:"keywords"`
}

// Scan configures the acquisition-and-ranking stage.
type Scan struct {
	Sources         []string `mapstructure:"sources"`           // Forum names; empty means the built-in UAE set
	PerSourceLimit  int      `mapstructure:"per_source_limit"`  // Threads fetched per source per sort order
	MinRelevance    float64  `mapstructure:"min_relevance"`     // Combined-score filter threshold
	MaxPosts        int      `mapstructure:"max_posts"`         // Top-K threads handed to generation
	CommentsPerPost int      `mapstructure:"comments_per_post"` // Replies fetched per analyzed thread
}

// Gemini configures the text-generation service.
type Gemini struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// Publish configures the posting backends.
type Publish struct {
	Method              string `mapstructure:"method"` // auto, zapier, make, linkedin, ayrshare
	ZapierWebhookURL    string `mapstructure:"zapier_webhook_url"`
	MakeWebhookURL      string `mapstructure:"make_webhook_url"`
	AyrshareAPIKey      string `mapstructure:"ayrshare_api_key"`
	LinkedInAccessToken string `mapstructure:"linkedin_access_token"`
	LinkedInPersonID    string `mapstructure:"linkedin_person_id"`
}

// Output configures artifact writing.
type Output struct {
	Directory string `mapstructure:"directory"`
}

// Keywords allows overriding the built-in scoring vocabularies.
type Keywords struct {
	Legal       []string `mapstructure:"legal"`
	Translation []string `mapstructure:"translation"`
}

// Load reads configuration in precedence order: explicit file (or
// .forumpulse.yaml in cwd/home), environment variables, then defaults.
// A .env file in the working directory is loaded first if present.
func Load(configFile string) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".forumpulse")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(config); err != nil {
		return nil, err
	}
	return config, nil
}

func setDefaults() {
	viper.SetDefault("scan.per_source_limit", 30)
	viper.SetDefault("scan.min_relevance", 0.15)
	viper.SetDefault("scan.max_posts", 10)
	viper.SetDefault("scan.comments_per_post", 5)

	viper.SetDefault("gemini.model", "gemini-flash-lite-latest")

	viper.SetDefault("publish.method", "auto")

	viper.SetDefault("output.directory", "output")
}

func bindEnvironmentVariables() {
	bindEnvKeys("gemini.api_key", []string{"GEMINI_API_KEY", "GOOGLE_GEMINI_API_KEY"})
	bindEnvKeys("publish.zapier_webhook_url", []string{"ZAPIER_WEBHOOK_URL"})
	bindEnvKeys("publish.make_webhook_url", []string{"MAKE_WEBHOOK_URL"})
	bindEnvKeys("publish.ayrshare_api_key", []string{"AYRSHARE_API_KEY"})
	bindEnvKeys("publish.linkedin_access_token", []string{"LINKEDIN_ACCESS_TOKEN"})
	bindEnvKeys("publish.linkedin_person_id", []string{"LINKEDIN_PERSON_ID"})
}

func bindEnvKeys(configKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(configKey, value)
			return
		}
	}
}

func validate(config *Config) error {
	if config.Scan.PerSourceLimit <= 0 {
		return fmt.Errorf("scan.per_source_limit must be positive, got %d", config.Scan.PerSourceLimit)
	}
	if config.Scan.MinRelevance < 0 || config.Scan.MinRelevance > 1 {
		return fmt.Errorf("scan.min_relevance must be in [0,1], got %f", config.Scan.MinRelevance)
	}
	if config.Scan.MaxPosts < 0 {
		return fmt.Errorf("scan.max_posts must not be negative, got %d", config.Scan.MaxPosts)
	}
	return nil
}
