package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	// Test default version
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}

	version := GetVersion()
	if version != "dev" && version != "unknown" {
		// This is fine, version could be set at build time
		t.Logf("Version: %s", version)
	}
}

func TestConfigFields(t *testing.T) {
	cfg := &Cfg{
		DBPath:            "./test.db",
		Port:              "8080",
		BaseUrl:           "https://news.example.com",
		TopicsFile:        "./topics.yml",
		WorkerCount:       2,
		SchedulerInterval: 60,
		SessionTTL:        30,
		ScrollThreshold:   0.6,
		SearchDebounceMs:  400,
		HeadlinesEndpoint: "https://gnews.io/api/v4/top-headlines",
		HeadlinesAPIKey:   "test-key",
		HeadlinesLang:     "en",
		JWTSecret:         "test-secret",
		TokenTTLMins:      30,
		UserAgent:         "Test Agent",
		Timezone:          "UTC",
		Debug:             true,
		Version:           "test-version",
	}

	if cfg.DBPath != "./test.db" {
		t.Errorf("Expected DB path './test.db', got '%s'", cfg.DBPath)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.HeadlinesEndpoint != "https://gnews.io/api/v4/top-headlines" {
		t.Errorf("Expected default headline endpoint, got '%s'", cfg.HeadlinesEndpoint)
	}
	if cfg.HeadlinesAPIKey != "test-key" {
		t.Errorf("Expected API key 'test-key', got '%s'", cfg.HeadlinesAPIKey)
	}
	if cfg.JWTSecret != "test-secret" {
		t.Errorf("Expected JWT secret 'test-secret', got '%s'", cfg.JWTSecret)
	}
	if cfg.TokenTTLMins != 30 {
		t.Errorf("Expected token TTL 30, got %d", cfg.TokenTTLMins)
	}
	if cfg.WorkerCount != 2 {
		t.Errorf("Expected worker count 2, got %d", cfg.WorkerCount)
	}
	if cfg.SchedulerInterval != 60 {
		t.Errorf("Expected scheduler interval 60, got %d", cfg.SchedulerInterval)
	}
	if cfg.ScrollThreshold != 0.6 {
		t.Errorf("Expected scroll threshold 0.6, got %f", cfg.ScrollThreshold)
	}
	if cfg.SearchDebounceMs != 400 {
		t.Errorf("Expected search debounce 400, got %d", cfg.SearchDebounceMs)
	}
	if cfg.UserAgent != "Test Agent" {
		t.Errorf("Expected user agent 'Test Agent', got '%s'", cfg.UserAgent)
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("Expected timezone 'UTC', got '%s'", cfg.Timezone)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
}

func TestApplyTimezone(t *testing.T) {
	if err := applyTimezone("UTC"); err != nil {
		t.Errorf("Expected UTC to be a valid timezone, got error: %v", err)
	}

	if err := applyTimezone("Not/AZone"); err == nil {
		t.Error("Expected an error for an invalid timezone")
	}
}
