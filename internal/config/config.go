// Package config содержит функции для загрузки конфигурации приложения
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Бэкенды хранения состояния сессии
const (
	BackendFile = "file"
	BackendS3   = "s3"
)

// Config структура для хранения конфигурации приложения
type Config struct {
	MusicDir   string   `yaml:"music_dir"`
	Recursive  bool     `yaml:"recursive"`
	Extensions []string `yaml:"extensions"`

	SessionKey   string `yaml:"session_key"`
	StateBackend string `yaml:"state_backend"`
	StateDir     string `yaml:"state_dir"`

	AwsBucketName string `yaml:"aws_bucket_name"`
	AwsAccessKey  string `yaml:"aws_access_key"`
	AwsSecretKey  string `yaml:"aws_secret_key"`
	AwsRegion     string `yaml:"aws_region"`
	AwsEndpoint   string `yaml:"aws_endpoint"`
	AwsPrefix     string `yaml:"aws_prefix"`

	LogFile  string `yaml:"log_file"`
	LogLevel int    `yaml:"log_level"`

	SampleRate int `yaml:"sample_rate"`
	SeekStep   int `yaml:"seek_step"` // Шаг перемотки в секундах
}

// LoadConfig загружает конфигурацию из указанного файла.
// Если файла нет, используются значения по умолчанию
func LoadConfig(filePath string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := expandHome(filePath, home)

	config := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("ошибка чтения конфигурации: %w", err)
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("ошибка разбора конфигурации: %w", err)
		}
	}

	config.applyEnv()
	config.applyDefaults(home)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// applyEnv переопределяет значения из переменных окружения
func (c *Config) applyEnv() {
	if dir := os.Getenv("SHUFFLER_MUSIC_DIR"); dir != "" {
		c.MusicDir = dir
	}
	if backend := os.Getenv("SHUFFLER_STATE_BACKEND"); backend != "" {
		c.StateBackend = backend
	}
}

// applyDefaults устанавливает значения по умолчанию и раскрывает тильду в путях
func (c *Config) applyDefaults(home string) {
	if c.MusicDir == "" {
		c.MusicDir = "~/Music"
	}
	if len(c.Extensions) == 0 {
		c.Extensions = []string{".mp3", ".wav"}
	}
	if c.SessionKey == "" {
		c.SessionKey = "musicPlayerState"
	}
	if c.StateBackend == "" {
		c.StateBackend = BackendFile
	}
	if c.StateDir == "" {
		c.StateDir = "~/.shuffler_state"
	}
	if c.LogFile == "" {
		c.LogFile = "~/.shuffler.log"
	}
	if c.SampleRate <= 0 {
		c.SampleRate = 44100
	}
	if c.SeekStep <= 0 {
		c.SeekStep = 5
	}

	c.MusicDir = expandHome(c.MusicDir, home)
	c.StateDir = expandHome(c.StateDir, home)
	c.LogFile = expandHome(c.LogFile, home)
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	switch c.StateBackend {
	case BackendFile:
	case BackendS3:
		if c.AwsBucketName == "" {
			return fmt.Errorf("для state_backend %q требуется aws_bucket_name", BackendS3)
		}
	default:
		return fmt.Errorf("неизвестный state_backend: %q", c.StateBackend)
	}
	return nil
}

// expandHome раскрывает тильду в начале пути
func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
