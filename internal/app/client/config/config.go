package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	envcfg "pressroom/internal/config"
)

const (
	defaultAPIBaseURL     = "http://localhost:8080"
	defaultLogLevel       = "info"
	defaultConfigDir      = ".pressroom"
	defaultTimeoutSeconds = 30
	defaultPageLimit      = 20
	defaultRefreshSkew    = 60
	defaultPushPrefix     = "pressroom:notifications:"
)

type Config struct {
	Env            string        `mapstructure:"app_env"`
	APIBaseURL     string        `mapstructure:"api_base_url"`
	RequestTimeout time.Duration `mapstructure:"-"`
	LogLevel       string        `mapstructure:"log_level"`
	ConfigDir      string        `mapstructure:"config_dir"`
	DataPath       string        `mapstructure:"data_path"`
	PageLimit      int           `mapstructure:"page_limit"`
	RedisAddr      string        `mapstructure:"redis_addr"`
	RedisPassword  string        `mapstructure:"redis_password"`
	PushPrefix     string        `mapstructure:"push_channel_prefix"`
	RefreshSkew    time.Duration `mapstructure:"-"`
}

// MustLoad загружает конфигурацию клиента и паникует при ошибке
func MustLoad(configFile string) *Config {
	cfg, err := Load(configFile)
	if err != nil {
		panic(fmt.Sprintf("Ошибка конфигурации: %v", err))
	}
	return cfg
}

// Load читает .env, переменные окружения и необязательный файл конфигурации.
// Переменные окружения важнее файла.
func Load(configFile string) (*Config, error) {
	if path, err := envcfg.LoadDotEnv(); err != nil {
		return nil, fmt.Errorf("ошибка загрузки .env файла %s: %w", path, err)
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Устанавливаем значения по умолчанию
	v.SetDefault("APP_ENV", envcfg.EnvLocal)
	v.SetDefault("API_BASE_URL", defaultAPIBaseURL)
	v.SetDefault("REQUEST_TIMEOUT_SECONDS", defaultTimeoutSeconds)
	v.SetDefault("LOG_LEVEL", defaultLogLevel)
	v.SetDefault("CONFIG_DIR", defaultConfigDir)
	v.SetDefault("PAGE_LIMIT", defaultPageLimit)
	v.SetDefault("PUSH_CHANNEL_PREFIX", defaultPushPrefix)
	v.SetDefault("TOKEN_REFRESH_SKEW_SECONDS", defaultRefreshSkew)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("ошибка чтения файла конфигурации: %w", err)
		}
	}

	// Получаем домашнюю директорию пользователя
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	configDir := v.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		configDir = filepath.Join(homeDir, configDir)
	}

	dataPath := v.GetString("DATA_PATH")
	if dataPath == "" {
		dataPath = filepath.Join(configDir, "pressroom.db")
	}

	cfg := &Config{
		Env:            envcfg.NormalizeEnv(v.GetString("APP_ENV")),
		APIBaseURL:     strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
		RequestTimeout: time.Duration(v.GetInt("REQUEST_TIMEOUT_SECONDS")) * time.Second,
		LogLevel:       v.GetString("LOG_LEVEL"),
		ConfigDir:      configDir,
		DataPath:       dataPath,
		PageLimit:      v.GetInt("PAGE_LIMIT"),
		RedisAddr:      v.GetString("REDIS_ADDR"),
		RedisPassword:  v.GetString("REDIS_PASSWORD"),
		PushPrefix:     v.GetString("PUSH_CHANNEL_PREFIX"),
		RefreshSkew:    time.Duration(v.GetInt("TOKEN_REFRESH_SKEW_SECONDS")) * time.Second,
	}

	// Валидация конфигурации
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.APIBaseURL == "" {
		return errors.New("api_base_url не может быть пустым")
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api_base_url должен быть http(s) адресом: %q", c.APIBaseURL)
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request_timeout_seconds должен быть больше 0")
	}
	if c.PageLimit <= 0 || c.PageLimit > 100 {
		return fmt.Errorf("page_limit должен быть в диапазоне 1..100: %d", c.PageLimit)
	}
	return nil
}

// PushEnabled — задан адрес Redis для push-событий
func (c *Config) PushEnabled() bool {
	return c.RedisAddr != ""
}

// IsProd проверяет, prod ли окружение
func (c *Config) IsProd() bool {
	return c.Env == envcfg.EnvProd
}

// IsDev проверяет, dev ли окружение
func (c *Config) IsDev() bool {
	return c.Env == envcfg.EnvDev
}

// IsLocal проверяет, local ли окружение
func (c *Config) IsLocal() bool {
	return c.Env == envcfg.EnvLocal
}
