package wizard

import "fmt"

// ProtectionMode selects how the packaged executable enforces licensing.
type ProtectionMode string

const (
	// ModeGeneric builds once and prompts for a license key at runtime.
	ModeGeneric ProtectionMode = "generic"
	// ModeDemo grants unrestricted use for a bounded trial duration.
	ModeDemo ProtectionMode = "demo"
	// ModeNone skips license protection entirely.
	ModeNone ProtectionMode = "none"
)

// ParseProtectionMode converts user input into a ProtectionMode.
func ParseProtectionMode(s string) (ProtectionMode, error) {
	switch ProtectionMode(s) {
	case ModeGeneric, ModeDemo, ModeNone:
		return ProtectionMode(s), nil
	}
	return "", fmt.Errorf("unknown protection mode: %q (expected generic, demo or none)", s)
}

// DefaultDemoDuration is applied the first time demo mode is entered in a
// session, in minutes.
const DefaultDemoDuration = 60

// AllowedDemoDurations are the selectable trial durations in minutes:
// 30m, 1h, 2h, 4h, 1d, 3d, 7d, 14d, 30d.
var AllowedDemoDurations = []int{30, 60, 120, 240, 1440, 4320, 10080, 20160, 43200}

// IsAllowedDemoDuration reports whether minutes is a member of the fixed
// duration set. Out-of-set values are validation errors, never clamped.
func IsAllowedDemoDuration(minutes int) bool {
	for _, allowed := range AllowedDemoDurations {
		if minutes == allowed {
			return true
		}
	}
	return false
}

// ProtectionConfig is the protection slice of a build draft.
type ProtectionConfig struct {
	Mode         ProtectionMode `json:"mode"`
	DemoDuration int            `json:"demoDuration"`
}

// DemoMode is derived from the mode, never stored independently, so the
// two can never diverge.
func (c ProtectionConfig) DemoMode() bool {
	return c.Mode == ModeDemo
}

// ProtectionModeEngine governs protection mode transitions for one wizard
// session. Any mode may transition to any other on explicit selection.
type ProtectionModeEngine struct {
	mode           ProtectionMode
	demoDuration   int
	durationChosen bool
}

// NewProtectionModeEngine starts a session in generic mode.
func NewProtectionModeEngine() *ProtectionModeEngine {
	return &ProtectionModeEngine{mode: ModeGeneric}
}

// Select transitions to the given mode. Entering demo for the first time in
// the session defaults the duration to DefaultDemoDuration; leaving demo
// retains the last-chosen duration so switching back restores it.
func (e *ProtectionModeEngine) Select(mode ProtectionMode) error {
	switch mode {
	case ModeGeneric, ModeDemo, ModeNone:
	default:
		return fmt.Errorf("unknown protection mode: %q", mode)
	}

	if mode == ModeDemo && !e.durationChosen {
		e.demoDuration = DefaultDemoDuration
		e.durationChosen = true
	}
	e.mode = mode
	return nil
}

// SetDemoDuration records the chosen trial duration. Membership in the
// allowed set is validated by the manifest compiler, not here, so the full
// draft surfaces every problem at once.
func (e *ProtectionModeEngine) SetDemoDuration(minutes int) {
	e.demoDuration = minutes
	e.durationChosen = true
}

// Mode returns the currently selected mode.
func (e *ProtectionModeEngine) Mode() ProtectionMode {
	return e.mode
}

// DemoMode reports whether the engine is in demo mode. It is computed from
// the mode on every read.
func (e *ProtectionModeEngine) DemoMode() bool {
	return e.mode == ModeDemo
}

// Config snapshots the engine state for the build draft.
func (e *ProtectionModeEngine) Config() ProtectionConfig {
	return ProtectionConfig{Mode: e.mode, DemoDuration: e.demoDuration}
}
