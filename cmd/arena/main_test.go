package main

import (
	"log/slog"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseLogLevel(tt.in); got != tt.want {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestConfigPath(t *testing.T) {
	tests := []struct {
		name      string
		flagValue string
		flagGiven bool
		env       string
		want      string
	}{
		{"default", ArenaConfigPath, false, "", ArenaConfigPath},
		{"env over default", ArenaConfigPath, false, "/etc/env.yaml", "/etc/env.yaml"},
		{"flag over env", "cli.yaml", true, "/etc/env.yaml", "cli.yaml"},
		{"flag alone", "cli.yaml", true, "", "cli.yaml"},
		{"flag repeating default still wins", ArenaConfigPath, true, "/etc/env.yaml", ArenaConfigPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := configPath(tt.flagValue, tt.flagGiven, tt.env); got != tt.want {
				t.Errorf("configPath() = %q, want %q", got, tt.want)
			}
		})
	}
}
