package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.HTTPAddr != ":8000" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.StaffPassword == "" {
		t.Error("staff password default must not be empty")
	}
	if cfg.JWT.Secret == "" {
		t.Error("jwt secret default must not be empty")
	}
	if cfg.LegacyEarning {
		t.Error("legacy earning must default to off")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("LEGACY_EARNING", "true")

	cfg := Load()
	if cfg.HTTPAddr != ":9999" {
		t.Errorf("HTTPAddr = %q, want :9999", cfg.HTTPAddr)
	}
	if !cfg.LegacyEarning {
		t.Error("LEGACY_EARNING=true must enable legacy earning")
	}
}
