package config

import (
	"path/filepath"
	"testing"
)

func TestParseFieldValue(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		raw     string
		want    any
		wantErr bool
	}{
		{"int", "home.bundle_limit", "40", 40, false},
		{"zero int", "home.bundle_limit", "0", nil, true},
		{"bad int", "home.bundle_limit", "lots", nil, true},
		{"bool", "home.start_private", "true", true, false},
		{"bad bool", "options.debug", "maybe", nil, true},
		{"string", "options.data_directory", "/tmp/tabhome", "/tmp/tabhome", false},
		{"unknown", "home.nope", "1", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFieldValue(tt.key, tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfig_ApplyValue(t *testing.T) {
	cfg := &Config{}

	for _, f := range Fields {
		raw := map[FieldKind]string{FieldInt: "7", FieldBool: "true", FieldString: "/data"}[f.Kind]
		v, err := ParseFieldValue(f.Key, raw)
		if err != nil {
			t.Fatalf("parse %s: %v", f.Key, err)
		}
		cfg.Apply(f.Key, v)
		if got := cfg.Value(f.Key); got != raw {
			t.Errorf("Value(%s) = %q, want %q", f.Key, got, raw)
		}
	}

	if cfg.DatabasePath() != filepath.Join("/data", "tabhome.db") {
		t.Errorf("unexpected database path %q", cfg.DatabasePath())
	}
}

func TestConfig_ValueDefaults(t *testing.T) {
	cfg := NewConfig()

	if got := cfg.Value("home.bundle_limit"); got != "25" {
		t.Errorf("expected default limit 25, got %q", got)
	}
	if got := cfg.Value("home.start_private"); got != "false" {
		t.Errorf("expected start_private false, got %q", got)
	}
	if got := cfg.Value("home.theme"); got != DefaultTheme {
		t.Errorf("expected default theme, got %q", got)
	}
	if got := cfg.Value("unknown"); got != "" {
		t.Errorf("expected empty value for unknown key, got %q", got)
	}
}
