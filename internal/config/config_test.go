package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config fails validation: %v", err)
	}

	if cfg.Network.WebsocketURL != "wss://24data.ptfs.app/wss" {
		t.Errorf("websocket_url = %q", cfg.Network.WebsocketURL)
	}
	if cfg.Network.ReconnectDelaySecs != 5 {
		t.Errorf("reconnect_delay_secs = %d, want 5", cfg.Network.ReconnectDelaySecs)
	}
	if cfg.Display.HistoryLength != 20 {
		t.Errorf("history_length = %d, want 20", cfg.Display.HistoryLength)
	}
	if cfg.Performance.MaxAircraft != 500 {
		t.Errorf("max_aircraft = %d, want 500", cfg.Performance.MaxAircraft)
	}
	if cfg.DataTags.Line1 != "{callsign}" || cfg.DataTags.Line2 != "F{altitude:03} {gs:03}KT" {
		t.Errorf("tag templates = %q / %q", cfg.DataTags.Line1, cfg.DataTags.Line2)
	}
	if !cfg.Network.EnableMainServer || cfg.Network.EnableEventServer {
		t.Errorf("server enable flags = main:%v event:%v, want main only",
			cfg.Network.EnableMainServer, cfg.Network.EnableEventServer)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[display]
history_length = 50
show_vectors = false

[colors]
target = "#33CC33"

[network]
reconnect_delay_secs = 2
enable_event_server = true

[data_tags]
line3 = "{heading:03}"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Display.HistoryLength != 50 {
		t.Errorf("history_length = %d, want 50", cfg.Display.HistoryLength)
	}
	if cfg.Display.ShowVectors {
		t.Error("show_vectors should be overridden to false")
	}
	if cfg.Colors.Target != "#33CC33" {
		t.Errorf("target color = %q", cfg.Colors.Target)
	}
	if cfg.Network.ReconnectDelaySecs != 2 {
		t.Errorf("reconnect_delay_secs = %d, want 2", cfg.Network.ReconnectDelaySecs)
	}
	if !cfg.Network.EnableEventServer {
		t.Error("enable_event_server should be true")
	}

	// Untouched fields keep their defaults.
	if cfg.Display.TargetScale != 1.0 {
		t.Errorf("target_scale = %g, want default 1.0", cfg.Display.TargetScale)
	}
	if cfg.Network.WebsocketURL != "wss://24data.ptfs.app/wss" {
		t.Errorf("websocket_url = %q, want default", cfg.Network.WebsocketURL)
	}

	lines := cfg.DataTags.TagLines()
	if len(lines) != 3 || lines[2] != "{heading:03}" {
		t.Errorf("tag lines = %v", lines)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadWithFallbackReturnsDefaults(t *testing.T) {
	// Run from an empty directory so no config file is found anywhere.
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWD) })

	cfg, path, err := LoadWithFallback("")
	if err != nil {
		t.Fatalf("LoadWithFallback: %v", err)
	}
	if path != "" {
		t.Errorf("path = %q, want empty", path)
	}
	if cfg.Display.HistoryLength != 20 {
		t.Errorf("history_length = %d, want default 20", cfg.Display.HistoryLength)
	}
}

func TestLoadWithFallbackPrefersExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	if err := os.WriteFile(path, []byte("[display]\nhistory_length = 7\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, foundPath, err := LoadWithFallback(path)
	if err != nil {
		t.Fatalf("LoadWithFallback: %v", err)
	}
	if foundPath != path {
		t.Errorf("found path = %q, want %q", foundPath, path)
	}
	if cfg.Display.HistoryLength != 7 {
		t.Errorf("history_length = %d, want 7", cfg.Display.HistoryLength)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults pass",
			mutate: func(c *Config) {},
		},
		{
			name:    "negative history length",
			mutate:  func(c *Config) { c.Display.HistoryLength = -1 },
			wantErr: true,
		},
		{
			name:    "negative vector minutes",
			mutate:  func(c *Config) { c.Display.VectorMinutes = -0.5 },
			wantErr: true,
		},
		{
			name:    "malformed color",
			mutate:  func(c *Config) { c.Colors.Target = "green" },
			wantErr: true,
		},
		{
			name:    "short hex color",
			mutate:  func(c *Config) { c.Colors.History = "#0F0" },
			wantErr: true,
		},
		{
			name:    "missing websocket url",
			mutate:  func(c *Config) { c.Network.WebsocketURL = "" },
			wantErr: true,
		},
		{
			name:    "zero reconnect delay",
			mutate:  func(c *Config) { c.Network.ReconnectDelaySecs = 0 },
			wantErr: true,
		},
		{
			name: "rest fallback without base url",
			mutate: func(c *Config) {
				c.Network.RESTFallback = true
				c.Network.APIBaseURL = ""
			},
			wantErr: true,
		},
		{
			name:    "invalid server port",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: true,
		},
		{
			name: "bad port on disabled server is fine",
			mutate: func(c *Config) {
				c.Server.Enabled = false
				c.Server.Port = 0
			},
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:   "lowercase hex color",
			mutate: func(c *Config) { c.Colors.Vector = "#a0b1c2" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
