package configs

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/configs/loader"
)

type TelegramConfig struct {
	Token             string `validate:"required"`
	WebAppURL         string
	ConnectionTimeout time.Duration `validate:"required"`
}

type GeminiConfig struct {
	APIKey  string `validate:"required"`
	Model   string `validate:"required"`
	Timeout time.Duration `validate:"required"`
}

type PixabayConfig struct {
	APIKey  string `validate:"required"`
	Path    string `validate:"required"`
	Timeout time.Duration `validate:"required"`
}

type RedisConfig struct {
	Host         string
	DB           int
	User         string
	Password     string
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	ImageTTL     time.Duration
}

type DatabaseConfig struct {
	Path string `validate:"required"`
}

type DecksConfig struct {
	Dir string `validate:"required"`
}

type Config struct {
	TG    TelegramConfig
	GM    GeminiConfig
	PB    PixabayConfig
	RD    RedisConfig
	DB    DatabaseConfig
	Decks DecksConfig
	Env   string
}

func MustLoad(loader loader.ConfigLoader) *Config {
	env := flag.String("env", "dev", "Environment type")
	flag.Parse()

	const op = "configs.MustLoad"
	envs, err := loader.Load()
	if err != nil {
		log.Fatalf("%s: config load failed: %+v", op, err)
	}
	cfg := &Config{
		TG: TelegramConfig{
			Token:             envs["TELEGRAM_TOKEN"],
			WebAppURL:         envs["TELEGRAM_WEBAPP_URL"],
			ConnectionTimeout: getEnvAsDuration(envs["TELEGRAM_CONNECTION_TIMEOUT"], 30*time.Second),
		},
		GM: GeminiConfig{
			APIKey:  envs["GEMINI_API_KEY"],
			Model:   getEnvAsString(envs["GEMINI_MODEL"], "gemini-2.0-flash"),
			Timeout: getEnvAsDuration(envs["GEMINI_TIMEOUT"], 60*time.Second),
		},
		PB: PixabayConfig{
			APIKey:  envs["PIXABAY_API_KEY"],
			Path:    getEnvAsString(envs["PIXABAY_PATH"], "https://pixabay.com/api/"),
			Timeout: getEnvAsDuration(envs["PIXABAY_TIMEOUT"], 10*time.Second),
		},
		RD: RedisConfig{
			Host:         envs["REDIS_HOST"],
			DB:           getEnvAsInt(envs["REDIS_DB"], 0),
			User:         envs["REDIS_USER"],
			Password:     envs["REDIS_PASSWORD"],
			MaxRetries:   getEnvAsInt(envs["REDIS_MAX_RETRIES"], 3),
			DialTimeout:  getEnvAsDuration(envs["REDIS_DIAL_TIMEOUT"], 5*time.Second),
			ReadTimeout:  getEnvAsDuration(envs["REDIS_READ_TIMEOUT"], 5*time.Second),
			WriteTimeout: getEnvAsDuration(envs["REDIS_WRITE_TIMEOUT"], 5*time.Second),
			ImageTTL:     getEnvAsDuration(envs["REDIS_IMAGE_TTL"], 24*time.Hour),
		},
		DB: DatabaseConfig{
			Path: getEnvAsString(envs["DATABASE_PATH"], "presentation_bot.db"),
		},
		Decks: DecksConfig{
			Dir: getEnvAsString(envs["DECKS_DIR"], "."),
		},
		Env: *env,
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("%s: config validation failed: %+v", op, err)
	}

	return cfg
}

func validateConfig(cfg *Config) error {
	if cfg.TG.Token == "" || cfg.GM.APIKey == "" || cfg.PB.APIKey == "" {
		return fmt.Errorf("missing required configuration")
	}
	return nil
}

func getEnvAsString(strValue string, defaultValue string) string {
	if strValue == "" {
		return defaultValue
	}
	return strValue
}

func getEnvAsDuration(strValue string, defaultValue time.Duration) time.Duration {
	const op = "configs.getEnvAsDuration"
	if strValue == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(strValue)
	if err != nil {
		log.Printf("%s:Invalid value for %s, using default: %v", op, strValue, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsInt(strValue string, defaultValue int) int {
	const op = "configs.getEnvAsInt"
	if strValue == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("%s:Invalid value for %s, using default: %v", op, strValue, defaultValue)
		return defaultValue
	}
	return value
}
