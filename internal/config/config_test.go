package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// writeConfig сериализует значение в YAML и записывает во временный файл
func writeConfig(t *testing.T, value any) string {
	t.Helper()

	data, err := yaml.Marshal(value)
	require.NoError(t, err, "Ошибка сериализации конфигурации")

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, data, 0644))
	return configPath
}

func TestLoadConfigFromFile(t *testing.T) {
	testConfig := Config{
		MusicDir:      "~/test-music",
		Recursive:     true,
		Extensions:    []string{".mp3"},
		SessionKey:    "testState",
		StateBackend:  BackendS3,
		AwsBucketName: "test-bucket",
		AwsAccessKey:  "test-access-key",
		AwsSecretKey:  "test-secret-key",
		AwsRegion:     "us-east-1",
		AwsEndpoint:   "https://s3.amazonaws.com",
		AwsPrefix:     "shuffler",
		LogLevel:      -4,
		SampleRate:    48000,
		SeekStep:      10,
	}

	loadedConfig, err := LoadConfig(writeConfig(t, testConfig))
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "test-music"), loadedConfig.MusicDir)
	assert.True(t, loadedConfig.Recursive)
	assert.Equal(t, []string{".mp3"}, loadedConfig.Extensions)
	assert.Equal(t, testConfig.SessionKey, loadedConfig.SessionKey)
	assert.Equal(t, BackendS3, loadedConfig.StateBackend)
	assert.Equal(t, testConfig.AwsBucketName, loadedConfig.AwsBucketName)
	assert.Equal(t, testConfig.AwsPrefix, loadedConfig.AwsPrefix)
	assert.Equal(t, -4, loadedConfig.LogLevel)
	assert.Equal(t, 48000, loadedConfig.SampleRate)
	assert.Equal(t, 10, loadedConfig.SeekStep)
}

func TestDefaultConfig(t *testing.T) {
	// Минимальная конфигурация
	loadedConfig, err := LoadConfig(writeConfig(t, map[string]any{"recursive": true}))
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "Music"), loadedConfig.MusicDir)
	assert.Equal(t, filepath.Join(home, ".shuffler_state"), loadedConfig.StateDir)
	assert.Equal(t, filepath.Join(home, ".shuffler.log"), loadedConfig.LogFile)
	assert.Equal(t, "musicPlayerState", loadedConfig.SessionKey)
	assert.Equal(t, BackendFile, loadedConfig.StateBackend)
	assert.Equal(t, 44100, loadedConfig.SampleRate)
	assert.Equal(t, 5, loadedConfig.SeekStep)
	assert.Equal(t, []string{".mp3", ".wav"}, loadedConfig.Extensions)
}

func TestMissingConfigUsesDefaults(t *testing.T) {
	loadedConfig, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err, "Отсутствующий файл не должен быть ошибкой")
	assert.Equal(t, BackendFile, loadedConfig.StateBackend)
}

func TestEnvVarOverride(t *testing.T) {
	configPath := writeConfig(t, Config{MusicDir: "/from/file"})

	t.Setenv("SHUFFLER_MUSIC_DIR", "/from/env")
	t.Setenv("SHUFFLER_STATE_BACKEND", BackendFile)

	loadedConfig, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", loadedConfig.MusicDir)
	assert.Equal(t, BackendFile, loadedConfig.StateBackend)
}

func TestInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "music_dir: [unterminated"},
		{"unknown backend", "state_backend: redis"},
		{"s3 without bucket", "state_backend: s3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(configPath, []byte(tt.content), 0644))

			_, err := LoadConfig(configPath)
			assert.Error(t, err)
		})
	}
}

func TestExpandHome(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"~", "/home/user"},
		{"~/Music", "/home/user/Music"},
		{"/abs/path", "/abs/path"},
		{"relative/~/path", "relative/~/path"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, expandHome(test.path, "/home/user"), "expandHome(%q)", test.path)
	}
}
