package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrInvalidConfig               = errors.New("invalid configuration")
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string   `mapstructure:"env"`      // current application environment (local, dev, production etc)
	TelegramAPIToken string   `mapstructure:"-"`        // Telegram API token loaded from environment
	Telegram         Telegram `mapstructure:"telegram"` // bot transport settings
	Quiz             Quiz     `mapstructure:"quiz"`     // question bank and session settings
	DB               DB       `mapstructure:"database"` // database configuration section
}

// Telegram contains bot transport settings.
type Telegram struct {
	Debug         bool `mapstructure:"debug"`          // log raw Bot API traffic
	UpdateTimeout int  `mapstructure:"update_timeout"` // long polling timeout in seconds
}

// Quiz contains question bank and session settings.
type Quiz struct {
	QuestionsPath      string        `mapstructure:"questions_path"`        // .xlsx or .csv question table
	ShuffleQuestions   bool          `mapstructure:"shuffle_questions"`     // shuffle once at startup
	ShowCorrectOnWrong bool          `mapstructure:"show_correct_on_wrong"` // reveal the right option after a wrong answer
	SessionIdleTTL     time.Duration `mapstructure:"session_idle_ttl"`      // evict sessions idle this long, 0 keeps them forever
	SweepSchedule      string        `mapstructure:"sweep_schedule"`        // cron spec for the eviction sweep
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Enabled reports whether a database is configured.
func (db DB) Enabled() bool {
	return db.URL != ""
}

// Load reads configuration from .env, config files and environment variables.
func Load() (*Config, error) {
	// Local runs keep secrets in .env; it is optional.
	_ = godotenv.Load()

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("telegram.debug", false)
	v.SetDefault("telegram.update_timeout", 60)
	v.SetDefault("quiz.questions_path", "assets/questions.xlsx")
	v.SetDefault("quiz.shuffle_questions", true)
	v.SetDefault("quiz.show_correct_on_wrong", true)
	v.SetDefault("quiz.session_idle_ttl", "0s")
	v.SetDefault("quiz.sweep_schedule", "@every 10m")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_conn_lifetime", "30m")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	cfg.DB.URL = v.GetString("database_url")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Quiz.QuestionsPath == "" {
		return fmt.Errorf("%w: quiz.questions_path is empty", ErrInvalidConfig)
	}
	if c.Quiz.SessionIdleTTL < 0 {
		return fmt.Errorf("%w: quiz.session_idle_ttl must not be negative", ErrInvalidConfig)
	}
	if c.Quiz.SessionIdleTTL > 0 {
		if _, err := cron.ParseStandard(c.Quiz.SweepSchedule); err != nil {
			return fmt.Errorf("%w: quiz.sweep_schedule: %v", ErrInvalidConfig, err)
		}
	}
	if c.Telegram.UpdateTimeout < 0 {
		return fmt.Errorf("%w: telegram.update_timeout must not be negative", ErrInvalidConfig)
	}
	if c.DB.MaxConnections < 1 {
		return fmt.Errorf("%w: database.max_connections must be positive", ErrInvalidConfig)
	}
	return nil
}
