package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramDebug bool   `env:"TELEGRAM_DEBUG" envDefault:"false"`

	QuestionsPath string `env:"QUIZ_QUESTIONS_PATH" envDefault:"quiz.json"`
	Locale        string `env:"QUIZ_LOCALE" envDefault:"uz"`

	RedisURL       string `env:"REDIS_URL"`
	LeaderboardKey string `env:"LEADERBOARD_KEY" envDefault:"quizbot:leaderboard"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads an optional .env file from the working directory, then the
// environment. Variables already set win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// Validate checks what the bot needs to start.
func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return errors.New("TELEGRAM_BOT_TOKEN environment variable is required")
	}
	return nil
}
