package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig
	DB     DBConfig
	Redis  RedisConfig
	HF     HFConfig
	Intake IntakeConfig
}

type AppConfig struct {
	Port      string
	Env       string
	StaticDir string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// HFConfig holds the HuggingFace Inference API settings. APIKey is a hard
// startup precondition; everything else has working defaults.
type HFConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// IntakeConfig controls the write-atomicity policy of the intake flow.
// Atomic=false keeps the patient row even when the model call or the
// prescription insert fails afterwards.
type IntakeConfig struct {
	Atomic bool
}

// ErrMissingAPIKey aborts startup before any request is served.
var ErrMissingAPIKey = errors.New("HF_API_KEY is required")

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A missing .env file is fine, the environment alone may carry
		// the full configuration.
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	setDefaults()

	hfTimeout, err := time.ParseDuration(viper.GetString("HF_TIMEOUT"))
	if err != nil {
		hfTimeout = 30 * time.Second
	}

	config := &Config{
		App: AppConfig{
			Port:      viper.GetString("APP_PORT"),
			Env:       viper.GetString("APP_ENV"),
			StaticDir: viper.GetString("STATIC_DIR"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		HF: HFConfig{
			APIKey:  viper.GetString("HF_API_KEY"),
			BaseURL: viper.GetString("HF_BASE_URL"),
			Model:   viper.GetString("HF_MODEL"),
			Timeout: hfTimeout,
		},
		Intake: IntakeConfig{
			Atomic: viper.GetBool("INTAKE_ATOMIC"),
		},
	}

	if config.HF.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	return config, nil
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8000")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("STATIC_DIR", "static")

	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "3306")
	viper.SetDefault("DB_USER", "root")
	viper.SetDefault("DB_PASSWORD", "root")
	viper.SetDefault("DB_NAME", "prescription")

	viper.SetDefault("REDIS_PORT", "6379")

	viper.SetDefault("HF_BASE_URL", "https://api-inference.huggingface.co/models")
	viper.SetDefault("HF_MODEL", "google/flan-t5-small")
	viper.SetDefault("HF_TIMEOUT", "30s")

	viper.SetDefault("INTAKE_ATOMIC", false)
}
