package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultHOSLimitsValidate(t *testing.T) {
	if err := DefaultHOSLimits().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestValidateRejectsBadLimits(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*HOSLimits)
	}{
		{"zero drive window", func(l *HOSLimits) { l.MaxDrivePerWindow = 0 }},
		{"negative break", func(l *HOSLimits) { l.BreakDuration = -time.Minute }},
		{"drive exceeds duty", func(l *HOSLimits) { l.MaxDrivePerWindow = 15 * time.Hour }},
		{"negative pickup", func(l *HOSLimits) { l.PickupDuration = -time.Hour }},
		{"pickup exceeds duty window", func(l *HOSLimits) { l.PickupDuration = 20 * time.Hour }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			limits := DefaultHOSLimits()
			tc.mutate(&limits)
			if err := limits.Validate(); err == nil {
				t.Fatal("expected a validation error")
			}
		})
	}
}

func TestLoadHOSLimitsOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "limits.yaml")
	content := "max_drive_per_window: 10h\nbreak_duration: 45m\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write limits file: %v", err)
	}

	limits, err := LoadHOSLimits(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if limits.MaxDrivePerWindow != 10*time.Hour {
		t.Fatalf("max_drive_per_window = %v, want 10h", limits.MaxDrivePerWindow)
	}
	if limits.BreakDuration != 45*time.Minute {
		t.Fatalf("break_duration = %v, want 45m", limits.BreakDuration)
	}
	// Untouched fields keep the defaults.
	if limits.CycleLimit != 70*time.Hour {
		t.Fatalf("cycle_limit = %v, want 70h", limits.CycleLimit)
	}
}

func TestLoadHOSLimitsBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "limits.yaml")
	if err := os.WriteFile(path, []byte("daily_rest: ten hours\n"), 0o600); err != nil {
		t.Fatalf("write limits file: %v", err)
	}

	if _, err := LoadHOSLimits(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestLoadHOSLimitsEmptyPath(t *testing.T) {
	limits, err := LoadHOSLimits("")
	if err != nil {
		t.Fatalf("empty path should return defaults: %v", err)
	}
	if limits != DefaultHOSLimits() {
		t.Fatalf("got %+v, want defaults", limits)
	}
}
