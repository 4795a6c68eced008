// Package config loads the server configuration from environment variables
// and Docker secrets.
package config

import (
	"fmt"
	"log"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// HTTP server
	Port           string   `envconfig:"PORT" default:"8080"`
	GinMode        string   `envconfig:"GIN_MODE" default:"release"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173"`

	// Logging
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding   string `envconfig:"LOG_ENCODING" default:"json"`
	LogOutputPath string `envconfig:"LOG_OUTPUT_PATH" default:""`

	// AI completion provider
	AIProvider       string        `envconfig:"AI_PROVIDER" default:"openai"`
	AIBaseURL        string        `envconfig:"AI_BASE_URL" default:""`
	AIModel          string        `envconfig:"AI_MODEL" default:"gpt-4o-mini"`
	AITimeout        time.Duration `envconfig:"AI_TIMEOUT" default:"120s"`
	AIMaxAttempts    int           `envconfig:"AI_MAX_ATTEMPTS" default:"3"`
	AIBaseRetryDelay time.Duration `envconfig:"AI_BASE_RETRY_DELAY" default:"2s"`
	AIRateEvery      time.Duration `envconfig:"AI_RATE_EVERY" default:"1s"`
	AIRateBurst      int           `envconfig:"AI_RATE_BURST" default:"2"`
	OllamaHost       string        `envconfig:"OLLAMA_HOST" default:"http://localhost:11434"`
	// Secret field, no envconfig tag
	AIAPIKey string

	// Video generation
	VideoModel           string        `envconfig:"VIDEO_MODEL" default:"veo-2.0-generate-001"`
	VideoPollInterval    time.Duration `envconfig:"VIDEO_POLL_INTERVAL" default:"5s"`
	VideoMaxPollDuration time.Duration `envconfig:"VIDEO_MAX_POLL_DURATION" default:"10m"`
	// Secret field, no envconfig tag
	VideoAPIKey string

	// Persistence: "redis", "file" or "memory"
	StorageBackend string `envconfig:"STORAGE_BACKEND" default:"file"`
	DataDir        string `envconfig:"DATA_DIR" default:"./data"`
	RedisAddr      string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB        int    `envconfig:"REDIS_DB" default:"0"`
	// Secret field, no envconfig tag
	RedisPassword string
}

// LoadConfig reads environment variables, then the secrets the selected
// backends require. The completion key is mandatory unless the ollama
// provider is selected; the video key and the redis password are optional
// and their features degrade without them.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}

	if cfg.AIProvider != "ollama" {
		key, err := ReadSecret("ai_api_key")
		if err != nil {
			return nil, err
		}
		cfg.AIAPIKey = key
	}

	if key, err := ReadSecret("video_api_key"); err != nil {
		log.Printf("[WARN] video_api_key secret not available, video generation disabled: %v", err)
	} else {
		cfg.VideoAPIKey = key
	}

	if cfg.StorageBackend == "redis" {
		if password, err := ReadSecret("redis_password"); err != nil {
			log.Printf("[WARN] redis_password secret not available, connecting without auth: %v", err)
		} else {
			cfg.RedisPassword = password
		}
	}

	return &cfg, nil
}
