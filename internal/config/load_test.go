package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "memory", cfg.Database.Type)
	assert.Equal(t, 5, cfg.Study.DailyLimit)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.ModelName)
	assert.Equal(t, 3, cfg.LLM.MaxRetries)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("STUDYBUDDY_SERVER_PORT", "9000")
	t.Setenv("STUDYBUDDY_SERVER_LOG_LEVEL", "debug")
	t.Setenv("STUDYBUDDY_DATABASE_TYPE", "sqlite")
	t.Setenv("STUDYBUDDY_STUDY_DAILY_LIMIT", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, 2, cfg.Study.DailyLimit)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{name: "port out of range", key: "STUDYBUDDY_SERVER_PORT", value: "70000"},
		{name: "unknown log level", key: "STUDYBUDDY_SERVER_LOG_LEVEL", value: "verbose"},
		{name: "unknown database type", key: "STUDYBUDDY_DATABASE_TYPE", value: "oracle"},
		{name: "zero daily limit", key: "STUDYBUDDY_STUDY_DAILY_LIMIT", value: "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
