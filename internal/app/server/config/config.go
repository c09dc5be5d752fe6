package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	envcfg "pressroom/internal/config"
)

const (
	defaultRunAddress        = ":8080"
	defaultSecret            = "pressroom-sandbox-secret"
	defaultTokenTTLMinutes   = 15
	defaultRefreshTTLHours   = 24 * 7
	defaultSeedChannels      = 45
	defaultSeedNews          = 60
	defaultSeedNotifications = 30
	defaultPushPrefix        = "pressroom:notifications:"
)

type Config struct {
	Env    string
	Server server
	Auth   auth
	Seed   seed
	Push   push
	Logger logger
	// Faults — заранее заданные сбои: "PATCH /api/notifications/read-all=500;GET /api/news=503"
	Faults string
}

type server struct {
	RunAddress string
}

type auth struct {
	Secret     string
	TokenTTL   time.Duration
	RefreshTTL time.Duration
}

type seed struct {
	Channels      int
	News          int
	Notifications int
}

type push struct {
	RedisAddr     string
	RedisPassword string
	Prefix        string
}

type logger struct {
	LogLevel string
}

// MustLoad загружает конфигурацию песочницы и паникует при ошибке
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("Ошибка конфигурации: %v", err))
	}
	return cfg
}

func Load() (*Config, error) {
	if path, err := envcfg.LoadDotEnv(); err != nil {
		return nil, fmt.Errorf("ошибка загрузки .env файла %s: %w", path, err)
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", envcfg.EnvLocal)
	v.SetDefault("RUN_ADDRESS", defaultRunAddress)
	v.SetDefault("JWT_SECRET", defaultSecret)
	v.SetDefault("TOKEN_TTL_MINUTES", defaultTokenTTLMinutes)
	v.SetDefault("REFRESH_TTL_HOURS", defaultRefreshTTLHours)
	v.SetDefault("SEED_CHANNELS", defaultSeedChannels)
	v.SetDefault("SEED_NEWS", defaultSeedNews)
	v.SetDefault("SEED_NOTIFICATIONS", defaultSeedNotifications)
	v.SetDefault("PUSH_CHANNEL_PREFIX", defaultPushPrefix)
	v.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		Env: envcfg.NormalizeEnv(v.GetString("APP_ENV")),
		Server: server{
			RunAddress: v.GetString("RUN_ADDRESS"),
		},
		Auth: auth{
			Secret:     v.GetString("JWT_SECRET"),
			TokenTTL:   time.Duration(v.GetInt("TOKEN_TTL_MINUTES")) * time.Minute,
			RefreshTTL: time.Duration(v.GetInt("REFRESH_TTL_HOURS")) * time.Hour,
		},
		Seed: seed{
			Channels:      v.GetInt("SEED_CHANNELS"),
			News:          v.GetInt("SEED_NEWS"),
			Notifications: v.GetInt("SEED_NOTIFICATIONS"),
		},
		Push: push{
			RedisAddr:     v.GetString("REDIS_ADDR"),
			RedisPassword: v.GetString("REDIS_PASSWORD"),
			Prefix:        v.GetString("PUSH_CHANNEL_PREFIX"),
		},
		Logger: logger{LogLevel: v.GetString("LOG_LEVEL")},
		Faults: v.GetString("FAULTS"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.RunAddress == "" {
		return errors.New("run_address не может быть пустым")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("token_ttl_minutes должен быть больше 0")
	}
	if c.Seed.Channels < 0 || c.Seed.News < 0 || c.Seed.Notifications < 0 {
		return errors.New("объем начальных данных не может быть отрицательным")
	}
	if c.Env == envcfg.EnvProd && c.Auth.Secret == defaultSecret {
		return errors.New("jwt_secret по умолчанию запрещен в prod")
	}
	return nil
}

// PushEnabled — задан адрес Redis для публикации событий
func (c *Config) PushEnabled() bool {
	return c.Push.RedisAddr != ""
}
