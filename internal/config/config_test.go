package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "LOG_LEVEL", "POSTGRES_RUN_MIGRATIONS", "SEED_DEMO_DATA", "AUTH_BCRYPT_COST"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Port != "8080" {
		t.Errorf("default port = %q, want 8080", cfg.App.Port)
	}
	if cfg.Logger.Level != "info" {
		t.Errorf("default log level = %q, want info", cfg.Logger.Level)
	}
	if !cfg.Postgres.RunMigrations {
		t.Error("migrations should default to enabled")
	}
	if cfg.Seed.DemoData {
		t.Error("demo seeding should default to disabled")
	}
	if cfg.Auth.BcryptCost != 12 {
		t.Errorf("default bcrypt cost = %d, want 12", cfg.Auth.BcryptCost)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SEED_DEMO_DATA", "true")
	t.Setenv("POSTGRES_MAX_CONNS", "25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Port != "9090" {
		t.Errorf("port = %q, want 9090", cfg.App.Port)
	}
	if cfg.Logger.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Logger.Level)
	}
	if !cfg.Seed.DemoData {
		t.Error("SEED_DEMO_DATA=true not honored")
	}
	if cfg.Postgres.MaxConns != 25 {
		t.Errorf("max conns = %d, want 25", cfg.Postgres.MaxConns)
	}
}

func TestLoadInvalidIntFallsBack(t *testing.T) {
	t.Setenv("POSTGRES_MAX_CONNS", "lots")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Postgres.MaxConns != 10 {
		t.Errorf("invalid int should fall back to default, got %d", cfg.Postgres.MaxConns)
	}
}

func TestAddr(t *testing.T) {
	app := AppConfig{Host: "127.0.0.1", Port: "3000"}
	if got := app.Addr(); got != "127.0.0.1:3000" {
		t.Errorf("Addr() = %q", got)
	}
}
