package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config represents the main application configuration structure
// containing all configuration sections. A loaded Config is treated as an
// immutable snapshot: hot-reload swaps the whole value, never single fields.
type Config struct {
	Display     DisplayConfig     `toml:"display"`     // Radar scope drawing settings
	Colors      ColorConfig       `toml:"colors"`      // Scope colors as hex strings
	DataTags    DataTagConfig     `toml:"data_tags"`   // Data tag layout and templates
	Performance PerformanceConfig `toml:"performance"` // Frame rate and render limits
	Network     NetworkConfig     `toml:"network"`     // Stream and REST endpoints
	Server      ServerConfig      `toml:"server"`      // Local snapshot API settings
	Logging     LoggingConfig     `toml:"logging"`     // Application logging settings
}

// DisplayConfig contains radar scope drawing settings
type DisplayConfig struct {
	TargetScale    float64 `toml:"target_scale"`     // Target symbol scale multiplier
	TargetStroke   float64 `toml:"target_stroke"`    // Target symbol stroke width in pixels
	FontSize       float64 `toml:"font_size"`        // Font size for data tags
	HistoryLength  int     `toml:"history_length"`   // Max history dots retained per aircraft
	HistoryDotSize float64 `toml:"history_dot_size"` // History dot radius in pixels
	VectorMinutes  float64 `toml:"vector_minutes"`   // Predictive vector look-ahead in minutes
	ShowVectors    bool    `toml:"show_vectors"`     // Draw predictive vectors
	ShowHistory    bool    `toml:"show_history"`     // Draw history trails
	ShowTags       bool    `toml:"show_tags"`        // Draw data tags
}

// ColorConfig contains scope colors as "#RRGGBB" hex strings
type ColorConfig struct {
	Background      string `toml:"background"`       // Scope background
	Target          string `toml:"target"`           // Normal airborne target
	TargetSelected  string `toml:"target_selected"`  // Selected aircraft
	TargetEmergency string `toml:"target_emergency"` // Emergency aircraft (flashing)
	TagText         string `toml:"tag_text"`         // Data tag text
	History         string `toml:"history"`          // History trail dots
	Vector          string `toml:"vector"`           // Predictive vector
	Ground          string `toml:"ground"`           // Aircraft on the ground
}

// DataTagConfig contains data tag layout and line templates.
// Templates recognize {callsign}, {altitude}, {altitude:03}, {speed},
// {speed:03}, {gs}, {gs:03}, {heading}, {heading:03} and {type}; unknown
// tokens are left verbatim.
type DataTagConfig struct {
	OffsetX     float64 `toml:"offset_x"`     // Tag offset from the target symbol in pixels
	OffsetY     float64 `toml:"offset_y"`     // Negative Y offsets place the tag above the symbol
	LineSpacing float64 `toml:"line_spacing"` // Vertical spacing between tag lines in pixels
	Line1       string  `toml:"line1"`        // Template for line 1
	Line2       string  `toml:"line2"`        // Template for line 2
	Line3       string  `toml:"line3"`        // Template for line 3 (optional, empty = omitted)
	Line4       string  `toml:"line4"`        // Template for line 4 (optional, empty = omitted)
}

// PerformanceConfig contains frame rate and render limit settings
type PerformanceConfig struct {
	TargetFPS    int  `toml:"target_fps"`    // Target frame rate for the presentation layer
	MaxAircraft  int  `toml:"max_aircraft"`  // Max aircraft rendered per frame
	AntiAliasing bool `toml:"anti_aliasing"` // Enable anti-aliasing in the presentation layer
}

// NetworkConfig contains stream and REST endpoint settings
type NetworkConfig struct {
	WebsocketURL       string `toml:"websocket_url"`        // Live data stream URL
	APIBaseURL         string `toml:"api_base_url"`         // REST API base URL (fallback/poll path)
	ReconnectDelaySecs int    `toml:"reconnect_delay_secs"` // Fixed delay between reconnect attempts
	PollIntervalSecs   int    `toml:"poll_interval_secs"`   // REST fallback poll interval while disconnected
	StaleTimeoutSecs   int    `toml:"stale_timeout_secs"`   // Evict aircraft not updated within this window
	EnableMainServer   bool   `toml:"enable_main_server"`   // Apply main server data
	EnableEventServer  bool   `toml:"enable_event_server"`  // Apply event server data (EVENT_* messages)
	RESTFallback       bool   `toml:"enable_rest_fallback"` // Poll the REST API while the stream is down
	RequestTimeoutSecs int    `toml:"request_timeout_secs"` // HTTP timeout for REST requests
	MaxRequestsPerSec  int    `toml:"max_requests_per_sec"` // Rate cap for outbound REST requests
}

// ServerConfig contains settings for the local snapshot API
type ServerConfig struct {
	Enabled          bool   `toml:"enabled"`               // Serve the local snapshot API
	Host             string `toml:"host"`                  // Host address to bind to
	Port             int    `toml:"port"`                  // HTTP port
	ReadTimeoutSecs  int    `toml:"read_timeout_seconds"`  // Maximum duration for reading a request
	WriteTimeoutSecs int    `toml:"write_timeout_seconds"` // Maximum duration for writing a response
}

// LoggingConfig contains application logging configuration
type LoggingConfig struct {
	Level string `toml:"level"` // Log level: "debug", "info", "warn", or "error"
	File  string `toml:"file"`  // Optional rotating log file path
}

// Default returns a configuration with every field set to its default value
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			TargetScale:    1.0,
			TargetStroke:   2.0,
			FontSize:       12.0,
			HistoryLength:  20,
			HistoryDotSize: 2.0,
			VectorMinutes:  3.0,
			ShowVectors:    true,
			ShowHistory:    true,
			ShowTags:       true,
		},
		Colors: ColorConfig{
			Background:      "#0A0E1A",
			Target:          "#00FF00",
			TargetSelected:  "#FFD700",
			TargetEmergency: "#FF0000",
			TagText:         "#00FF00",
			History:         "#00AA00",
			Vector:          "#0088FF",
			Ground:          "#888888",
		},
		DataTags: DataTagConfig{
			OffsetX:     15.0,
			OffsetY:     -10.0,
			LineSpacing: 14.0,
			Line1:       "{callsign}",
			Line2:       "F{altitude:03} {gs:03}KT",
		},
		Performance: PerformanceConfig{
			TargetFPS:    60,
			MaxAircraft:  500,
			AntiAliasing: true,
		},
		Network: NetworkConfig{
			WebsocketURL:       "wss://24data.ptfs.app/wss",
			APIBaseURL:         "https://24data.ptfs.app",
			ReconnectDelaySecs: 5,
			PollIntervalSecs:   10,
			StaleTimeoutSecs:   60,
			EnableMainServer:   true,
			EnableEventServer:  false,
			RESTFallback:       false,
			RequestTimeoutSecs: 10,
			MaxRequestsPerSec:  2,
		},
		Server: ServerConfig{
			Enabled:          true,
			Host:             "127.0.0.1",
			Port:             8340,
			ReadTimeoutSecs:  15,
			WriteTimeoutSecs: 15,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads the configuration from the specified file path. Fields absent
// from the file keep their defaults.
func Load(path string) (*Config, error) {
	config := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadWithFallback loads the configuration by checking multiple locations in
// order of preference. If no config file exists anywhere, defaults are
// returned with an empty path.
func LoadWithFallback(preferredPath string) (*Config, string, error) {
	searchPaths := []string{
		preferredPath,
		"configs/config.toml",
		"config.toml",
	}

	for _, path := range searchPaths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			config, err := Load(path)
			if err != nil {
				return nil, path, fmt.Errorf("failed to load config from %s: %w", path, err)
			}
			return config, path, nil
		}
	}

	return Default(), "", nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Display.HistoryLength < 0 {
		return fmt.Errorf("invalid history_length: %d (must be >= 0)", c.Display.HistoryLength)
	}
	if c.Display.VectorMinutes < 0 {
		return fmt.Errorf("invalid vector_minutes: %g (must be >= 0)", c.Display.VectorMinutes)
	}

	for name, hex := range map[string]string{
		"background":       c.Colors.Background,
		"target":           c.Colors.Target,
		"target_selected":  c.Colors.TargetSelected,
		"target_emergency": c.Colors.TargetEmergency,
		"tag_text":         c.Colors.TagText,
		"history":          c.Colors.History,
		"vector":           c.Colors.Vector,
		"ground":           c.Colors.Ground,
	} {
		if !validHexColor(hex) {
			return fmt.Errorf("invalid color %s: %q (expected #RRGGBB)", name, hex)
		}
	}

	if c.Network.WebsocketURL == "" {
		return fmt.Errorf("websocket_url is required")
	}
	if c.Network.ReconnectDelaySecs <= 0 {
		return fmt.Errorf("invalid reconnect_delay_secs: %d (must be > 0)", c.Network.ReconnectDelaySecs)
	}
	if c.Network.StaleTimeoutSecs <= 0 {
		return fmt.Errorf("invalid stale_timeout_secs: %d (must be > 0)", c.Network.StaleTimeoutSecs)
	}
	if c.Network.RESTFallback && c.Network.APIBaseURL == "" {
		return fmt.Errorf("api_base_url is required when enable_rest_fallback is set")
	}

	if c.Server.Enabled && (c.Server.Port <= 0 || c.Server.Port > 65535) {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	return nil
}

// TagLines returns the configured data tag templates in order, skipping
// empty optional lines.
func (c *DataTagConfig) TagLines() []string {
	lines := []string{c.Line1, c.Line2}
	if c.Line3 != "" {
		lines = append(lines, c.Line3)
	}
	if c.Line4 != "" {
		lines = append(lines, c.Line4)
	}
	return lines
}

func validHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") || len(s) != 7 {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
