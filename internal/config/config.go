// Package config содержит общие для клиента и песочницы настройки окружения.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// envCandidates — где искать .env относительно места запуска
var envCandidates = []string{".env", "../.env", "../../.env"}

// LoadDotEnv подгружает первый найденный .env файл.
// Возвращает путь к загруженному файлу или пустую строку, если файла нет.
func LoadDotEnv() (string, error) {
	for _, path := range envCandidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return path, err
		}
		return path, nil
	}
	return "", nil
}

// NormalizeEnv приводит значение APP_ENV к одному из известных окружений
func NormalizeEnv(env string) string {
	switch env {
	case EnvDev, EnvProd:
		return env
	default:
		return EnvLocal
	}
}
