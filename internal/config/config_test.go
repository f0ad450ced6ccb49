package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "secret")
	for _, key := range []string{
		"OPENWEATHER_BASE_URL", "OPENWEATHER_ICON_URL", "HTTP_TIMEOUT",
		"STATE_FILE", "DEFAULT_LOCATION", "AUTOSAVE_INTERVAL", "PORT",
	} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}

	if cfg.OpenWeatherURL != "https://pro.openweathermap.org" {
		t.Errorf("OpenWeatherURL = %q", cfg.OpenWeatherURL)
	}
	if cfg.IconBaseURL != "https://openweathermap.org/img/wn" {
		t.Errorf("IconBaseURL = %q", cfg.IconBaseURL)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("HTTPTimeout = %s", cfg.HTTPTimeout)
	}
	if cfg.AutosaveInterval != 5*time.Minute {
		t.Errorf("AutosaveInterval = %s", cfg.AutosaveInterval)
	}
	if cfg.StateFile != "weatherapp.json" {
		t.Errorf("StateFile = %q", cfg.StateFile)
	}
	if cfg.DefaultLocation != "Helsinki" {
		t.Errorf("DefaultLocation = %q", cfg.DefaultLocation)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q", cfg.Port)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "secret")
	t.Setenv("OPENWEATHER_BASE_URL", "http://localhost:9999")
	t.Setenv("HTTP_TIMEOUT", "2s")
	t.Setenv("AUTOSAVE_INTERVAL", "0s")
	t.Setenv("DEFAULT_LOCATION", "Oulu")
	t.Setenv("PORT", "9090")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.OpenWeatherURL != "http://localhost:9999" || cfg.HTTPTimeout != 2*time.Second {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.AutosaveInterval != 0 || cfg.DefaultLocation != "Oulu" || cfg.Port != "9090" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestFromEnvErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"missing api key", map[string]string{"OPENWEATHER_API_KEY": ""}, "OpenWeatherAPIKey"},
		{"bad timeout", map[string]string{"HTTP_TIMEOUT": "soon"}, "HTTP_TIMEOUT"},
		{"zero timeout", map[string]string{"HTTP_TIMEOUT": "0s"}, "HTTPTimeout"},
		{"bad autosave", map[string]string{"AUTOSAVE_INTERVAL": "often"}, "AUTOSAVE_INTERVAL"},
		{"bad base url", map[string]string{"OPENWEATHER_BASE_URL": "not a url"}, "OpenWeatherURL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OPENWEATHER_API_KEY", "secret")
			t.Setenv("OPENWEATHER_BASE_URL", "")
			t.Setenv("HTTP_TIMEOUT", "")
			t.Setenv("AUTOSAVE_INTERVAL", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := FromEnv()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	env := "OPENWEATHER_API_KEY=from-dotenv\nDEFAULT_LOCATION=Oulu\nSTATE_FILE=saved.json\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	// godotenv never overrides variables that exist, even when empty.
	for _, key := range []string{"OPENWEATHER_API_KEY", "DEFAULT_LOCATION", "STATE_FILE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv("DEFAULT_LOCATION", "Tampere")

	dotenvOnce = sync.Once{}
	t.Cleanup(func() { dotenvOnce = sync.Once{} })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OpenWeatherAPIKey != "from-dotenv" {
		t.Errorf("OpenWeatherAPIKey = %q", cfg.OpenWeatherAPIKey)
	}
	if cfg.DefaultLocation != "Tampere" {
		t.Errorf("DefaultLocation = %q, environment should win over .env", cfg.DefaultLocation)
	}
	if got := StatePath(); got != "saved.json" {
		t.Errorf("StatePath() = %q", got)
	}
}
