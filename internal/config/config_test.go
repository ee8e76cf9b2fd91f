package config

import (
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Display.ReportProfile != "summary" {
		t.Errorf("Display.ReportProfile = %q, want %q", cfg.Display.ReportProfile, "summary")
	}
	if cfg.Display.BaselineDays != 90 {
		t.Errorf("Display.BaselineDays = %d, want 90", cfg.Display.BaselineDays)
	}

	// Heart-rate settings stay unset so the fixed band applies by default
	if cfg.Athlete.RestingHR != 0 || cfg.Athlete.MaxHR != 0 {
		t.Errorf("Athlete = %+v, want zero values", cfg.Athlete)
	}

	// Strava config should be empty by default
	if cfg.Strava.ClientID != "" || cfg.Strava.ClientSecret != "" {
		t.Errorf("Strava = %+v, want empty", cfg.Strava)
	}
}

func TestConfigValidate(t *testing.T) {
	valid := StravaConfig{ClientID: "12345", ClientSecret: "abc123secret"}

	tests := []struct {
		name        string
		config      Config
		expectError bool
		errContains string
	}{
		{
			name:        "valid config",
			config:      Config{Strava: valid},
			expectError: false,
		},
		{
			name: "valid with heart rate range",
			config: Config{
				Strava:  valid,
				Athlete: AthleteConfig{RestingHR: 50, MaxHR: 185},
			},
			expectError: false,
		},
		{
			name: "empty client ID",
			config: Config{
				Strava: StravaConfig{ClientID: "", ClientSecret: "abc123secret"},
			},
			expectError: true,
			errContains: "client_id",
		},
		{
			name: "placeholder client ID",
			config: Config{
				Strava: StravaConfig{ClientID: "YOUR_CLIENT_ID", ClientSecret: "abc123secret"},
			},
			expectError: true,
			errContains: "client_id",
		},
		{
			name: "empty client secret",
			config: Config{
				Strava: StravaConfig{ClientID: "12345", ClientSecret: ""},
			},
			expectError: true,
			errContains: "client_secret",
		},
		{
			name: "resting without max",
			config: Config{
				Strava:  valid,
				Athlete: AthleteConfig{RestingHR: 50},
			},
			expectError: true,
			errContains: "set together",
		},
		{
			name: "max below resting",
			config: Config{
				Strava:  valid,
				Athlete: AthleteConfig{RestingHR: 185, MaxHR: 50},
			},
			expectError: true,
			errContains: "max_hr",
		},
		{
			name: "unknown report profile",
			config: Config{
				Strava:  valid,
				Display: DisplayConfig{ReportProfile: "verbose"},
			},
			expectError: true,
			errContains: "report_profile",
		},
		{
			name: "negative baseline window",
			config: Config{
				Strava:  valid,
				Display: DisplayConfig{BaselineDays: -7},
			},
			expectError: true,
			errContains: "baseline_days",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				} else if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		})
	}
}
