// Package config loads service settings from the environment, reading a
// local .env file first when one exists.
package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port         string        `env:"PORT" envDefault:"8080"`
	Domain       string        `env:"DOMAIN"`
	PublicURL    string        `env:"PUBLIC_URL" envDefault:"http://localhost:8080"`
	JWTSecret    string        `env:"JWT_SECRET" envDefault:"brew-and-bliss-dev-secret"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"12h"`
	LoadingDelay time.Duration `env:"LOADING_DELAY" envDefault:"800ms"`
	UploadDir    string        `env:"UPLOAD_DIR" envDefault:"static"`
	CertCacheDir string        `env:"CERT_CACHE_DIR" envDefault:"certs"`
	CORSOrigins  []string      `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
	TaskTimeout  time.Duration `env:"TASK_TIMEOUT" envDefault:"20s"`

	Gemini    GeminiConfig    `envPrefix:"GEMINI_"`
	Redis     RedisConfig     `envPrefix:"REDIS_"`
	Mongo     MongoConfig     `envPrefix:"MONGO_"`
	Telegram  TelegramConfig  `envPrefix:"TELEGRAM_"`
	RateLimit RateLimitConfig `envPrefix:"RATE_"`
}

type GeminiConfig struct {
	APIKey  string        `env:"API_KEY"`
	Model   string        `env:"MODEL" envDefault:"gemini-2.5-flash"`
	BaseURL string        `env:"BASE_URL" envDefault:"https://generativelanguage.googleapis.com"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

type RedisConfig struct {
	Addr     string        `env:"ADDR"`
	Password string        `env:"PASSWORD"`
	Channel  string        `env:"CHANNEL" envDefault:"cafe-events"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"24h"`
}

type MongoConfig struct {
	URI      string `env:"URI"`
	Database string `env:"DATABASE" envDefault:"cafe"`
}

type TelegramConfig struct {
	Token  string `env:"TOKEN"`
	ChatID int64  `env:"CHAT_ID"`
}

// RateLimitConfig is per client IP. Rates are events per second.
type RateLimitConfig struct {
	ContactRate   float64 `env:"CONTACT" envDefault:"0.2"`
	ContactBurst  int     `env:"CONTACT_BURST" envDefault:"3"`
	DescribeRate  float64 `env:"DESCRIBE" envDefault:"0.5"`
	DescribeBurst int     `env:"DESCRIBE_BURST" envDefault:"2"`
}

// Load reads .env if present and parses the environment into a Config.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Defaults is the configuration with every default applied and nothing read from the process environment.
func Defaults() Config {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}}); err != nil {
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return cfg
}

// Addr is the listen address for plain HTTP.
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// MenuURL is the public address of the menu page, printed as a QR code.
func (c Config) MenuURL() string {
	return strings.TrimRight(c.PublicURL, "/") + "/menu"
}

func (c TelegramConfig) Enabled() bool {
	return c.Token != "" && c.ChatID != 0
}
