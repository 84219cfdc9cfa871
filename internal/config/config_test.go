package config

import (
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/agreements_test")
	t.Setenv("JWT_ACCESS_SECRET", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Environment != "development" {
		t.Errorf("environment default = %q", cfg.Environment)
	}
	if cfg.HTTP.Host != "0.0.0.0" || cfg.HTTP.Port != 7093 {
		t.Errorf("http defaults = %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	}
	if cfg.Search.MinScore != 0.3 {
		t.Errorf("search min score default = %v", cfg.Search.MinScore)
	}
}

func TestLoadRequiredValues(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	if _, err := Load(); err == nil {
		t.Error("expected error when DB_DSN is missing")
	}

	t.Setenv("DB_DSN", "postgres://localhost/agreements_test")
	t.Setenv("JWT_ACCESS_SECRET", "")
	if _, err := Load(); err == nil {
		t.Error("expected error when JWT_ACCESS_SECRET is missing")
	}
}

func TestParseList(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"a", []string{"a"}},
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b ,, c ", []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		if got := parseList(tt.raw); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseList(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
