package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	os.Clearenv()

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.MaxPlayers != 6 {
		t.Errorf("MaxPlayers = %d, want 6", cfg.MaxPlayers)
	}
	if cfg.SessionTTLMinutes != 120 {
		t.Errorf("SessionTTLMinutes = %d, want 120", cfg.SessionTTLMinutes)
	}
	if cfg.GeneratorURL != "" {
		t.Errorf("GeneratorURL = %q, want empty", cfg.GeneratorURL)
	}
}

func TestLoadFromEnv(t *testing.T) {
	os.Setenv("PORT", "9090")
	os.Setenv("MAX_PLAYERS", "4")
	os.Setenv("GENERATOR_URL", "http://localhost:5000/generate")
	defer func() {
		os.Unsetenv("PORT")
		os.Unsetenv("MAX_PLAYERS")
		os.Unsetenv("GENERATOR_URL")
	}()

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want %q", cfg.Port, "9090")
	}
	if cfg.MaxPlayers != 4 {
		t.Errorf("MaxPlayers = %d, want 4", cfg.MaxPlayers)
	}
	if cfg.GeneratorURL != "http://localhost:5000/generate" {
		t.Errorf("GeneratorURL = %q", cfg.GeneratorURL)
	}
}

func TestLoadInvalidIntFallsBack(t *testing.T) {
	os.Setenv("MAX_PLAYERS", "not-a-number")
	defer os.Unsetenv("MAX_PLAYERS")

	cfg := Load()
	if cfg.MaxPlayers != 6 {
		t.Errorf("MaxPlayers = %d, want default 6", cfg.MaxPlayers)
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "testuser",
		DBPassword: "testpass",
		DBName:     "testdb",
	}

	expected := "host=localhost user=testuser password=testpass dbname=testdb port=5432 sslmode=disable TimeZone=UTC"
	if dsn := cfg.DSN(); dsn != expected {
		t.Errorf("DSN() = %q, want %q", dsn, expected)
	}
}

func TestSessionTTL(t *testing.T) {
	cfg := &Config{SessionTTLMinutes: 120}
	if cfg.SessionTTL() != 2*time.Hour {
		t.Errorf("SessionTTL() = %v, want 2h", cfg.SessionTTL())
	}
}
