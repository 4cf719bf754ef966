package config

import "testing"

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("API_KEY", "key")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("STELLAR_SOURCE_SECRET", "")
	t.Setenv("STELLAR_ASSET_CODE", "")
}

func TestLoadDevDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.IsDev() {
		t.Fatalf("expected dev environment")
	}
	if cfg.Address() != ":5000" {
		t.Fatalf("address %s, want :5000", cfg.Address())
	}
}

func TestLoadRequiresAssetCodeWithSourceSecret(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STELLAR_SOURCE_SECRET", "SCZANGBA5YHTNYVVV4C3U252E2B6P6F5T3U6MM63WBSBZATAQI3EBTQ4")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when asset code is missing")
	}

	t.Setenv("STELLAR_ASSET_CODE", "ARENA")
	if _, err := Load(); err != nil {
		t.Fatalf("load with asset code: %v", err)
	}
}

func TestLoadRequiresInfraOutsideDev(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("APP_ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error without DATABASE_URL in production")
	}
}
