package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// HOSLimits holds the hours-of-service limits applied by the scheduler.
//
// The defaults are the FMCSA property-carrying limits, but every value is
// configurable because limits vary by jurisdiction and vehicle class. Limits
// are passed explicitly into the scheduler so that a single process can plan
// trips under different rule sets.
type HOSLimits struct {
	// Maximum driving time between two daily rests.
	MaxDrivePerWindow time.Duration
	// Maximum on-duty window (wall clock) between two daily rests.
	MaxDutyWindow time.Duration
	// Continuous driving allowed before a short break is required.
	BreakAfterDriving time.Duration
	// Length of the required short break.
	BreakDuration time.Duration
	// Length of the rest that resets the daily driving/duty windows.
	DailyRest time.Duration
	// Maximum cumulative on-duty hours in the rolling cycle.
	CycleLimit time.Duration
	// Length of the off-duty period that restarts an exhausted cycle.
	CycleRestart time.Duration
	// Fixed on-duty allowance consumed at the pickup.
	PickupDuration time.Duration
	// Fixed on-duty allowance consumed at the dropoff.
	DropoffDuration time.Duration
}

func DefaultHOSLimits() HOSLimits {
	return HOSLimits{
		MaxDrivePerWindow: 11 * time.Hour,
		MaxDutyWindow:     14 * time.Hour,
		BreakAfterDriving: 8 * time.Hour,
		BreakDuration:     30 * time.Minute,
		DailyRest:         10 * time.Hour,
		CycleLimit:        70 * time.Hour,
		CycleRestart:      34 * time.Hour,
		PickupDuration:    1 * time.Hour,
		DropoffDuration:   1 * time.Hour,
	}
}

func (l HOSLimits) Validate() error {
	positive := map[string]time.Duration{
		"max_drive_per_window": l.MaxDrivePerWindow,
		"max_duty_window":      l.MaxDutyWindow,
		"break_after_driving":  l.BreakAfterDriving,
		"break_duration":       l.BreakDuration,
		"daily_rest":           l.DailyRest,
		"cycle_limit":          l.CycleLimit,
		"cycle_restart":        l.CycleRestart,
	}
	for name, d := range positive {
		if d <= 0 {
			return fmt.Errorf("hos limits: %s must be positive, got %v", name, d)
		}
	}
	if l.PickupDuration < 0 || l.DropoffDuration < 0 {
		return errors.New("hos limits: pickup/dropoff durations must not be negative")
	}
	if l.MaxDrivePerWindow > l.MaxDutyWindow {
		return fmt.Errorf(
			"hos limits: max_drive_per_window (%v) must not exceed max_duty_window (%v)",
			l.MaxDrivePerWindow, l.MaxDutyWindow,
		)
	}
	// Pickup/dropoff spans are scheduled whole, so they must fit inside a
	// fresh duty window and a fresh cycle.
	for name, d := range map[string]time.Duration{
		"pickup_duration":  l.PickupDuration,
		"dropoff_duration": l.DropoffDuration,
	} {
		if d > l.MaxDutyWindow || d > l.CycleLimit {
			return fmt.Errorf("hos limits: %s (%v) must fit within the duty window and cycle limit", name, d)
		}
	}
	return nil
}

// Wire format for the limits file. Durations are Go duration strings ("11h",
// "30m") so the file stays readable for non-developers adjusting limits.
type hosLimitsFile struct {
	MaxDrivePerWindow string `yaml:"max_drive_per_window"`
	MaxDutyWindow     string `yaml:"max_duty_window"`
	BreakAfterDriving string `yaml:"break_after_driving"`
	BreakDuration     string `yaml:"break_duration"`
	DailyRest         string `yaml:"daily_rest"`
	CycleLimit        string `yaml:"cycle_limit"`
	CycleRestart      string `yaml:"cycle_restart"`
	PickupDuration    string `yaml:"pickup_duration"`
	DropoffDuration   string `yaml:"dropoff_duration"`
}

// LoadHOSLimits reads limits from a YAML file, overlaying the defaults.
// Fields omitted from the file keep their default values. An empty path
// returns the defaults unchanged.
func LoadHOSLimits(path string) (HOSLimits, error) {
	limits := DefaultHOSLimits()
	if path == "" {
		return limits, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return HOSLimits{}, fmt.Errorf("load hos limits: read %q: %w", path, err)
	}

	var file hosLimitsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return HOSLimits{}, fmt.Errorf("load hos limits: parse %q: %w", path, err)
	}

	overlays := []struct {
		name  string
		value string
		dst   *time.Duration
	}{
		{"max_drive_per_window", file.MaxDrivePerWindow, &limits.MaxDrivePerWindow},
		{"max_duty_window", file.MaxDutyWindow, &limits.MaxDutyWindow},
		{"break_after_driving", file.BreakAfterDriving, &limits.BreakAfterDriving},
		{"break_duration", file.BreakDuration, &limits.BreakDuration},
		{"daily_rest", file.DailyRest, &limits.DailyRest},
		{"cycle_limit", file.CycleLimit, &limits.CycleLimit},
		{"cycle_restart", file.CycleRestart, &limits.CycleRestart},
		{"pickup_duration", file.PickupDuration, &limits.PickupDuration},
		{"dropoff_duration", file.DropoffDuration, &limits.DropoffDuration},
	}
	for _, o := range overlays {
		if o.value == "" {
			continue
		}
		d, err := time.ParseDuration(o.value)
		if err != nil {
			return HOSLimits{}, fmt.Errorf("load hos limits: field %s: %w", o.name, err)
		}
		*o.dst = d
	}

	if err := limits.Validate(); err != nil {
		return HOSLimits{}, fmt.Errorf("load hos limits: %w", err)
	}

	return limits, nil
}
