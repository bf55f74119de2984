package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProtectionModeEngine_StartsGeneric(t *testing.T) {
	engine := NewProtectionModeEngine()
	assert.Equal(t, ModeGeneric, engine.Mode())
	assert.False(t, engine.DemoMode())
}

// Entering demo mode for the first time must default the duration to an hour.
func TestProtectionModeEngine_DemoDefaultsDuration(t *testing.T) {
	engine := NewProtectionModeEngine()

	require.NoError(t, engine.Select(ModeDemo))
	assert.True(t, engine.DemoMode())
	assert.Equal(t, DefaultDemoDuration, engine.Config().DemoDuration)
}

// Leaving demo mode and returning must restore the previously chosen
// duration instead of resetting it.
func TestProtectionModeEngine_RetainsDurationAcrossSwitches(t *testing.T) {
	engine := NewProtectionModeEngine()

	require.NoError(t, engine.Select(ModeDemo))
	engine.SetDemoDuration(240)

	require.NoError(t, engine.Select(ModeNone))
	assert.False(t, engine.DemoMode())

	require.NoError(t, engine.Select(ModeDemo))
	assert.Equal(t, 240, engine.Config().DemoDuration)
}

// demoMode is always derived from the mode; flipping modes can never leave
// the two out of sync.
func TestProtectionModeEngine_DemoModeDerived(t *testing.T) {
	engine := NewProtectionModeEngine()

	for _, mode := range []ProtectionMode{ModeDemo, ModeGeneric, ModeDemo, ModeNone, ModeGeneric} {
		require.NoError(t, engine.Select(mode))
		assert.Equal(t, mode == ModeDemo, engine.DemoMode())
		assert.Equal(t, mode == ModeDemo, engine.Config().DemoMode())
	}
}

func TestProtectionModeEngine_RejectsUnknownMode(t *testing.T) {
	engine := NewProtectionModeEngine()
	assert.Error(t, engine.Select(ProtectionMode("trial")))
	assert.Equal(t, ModeGeneric, engine.Mode())
}

func TestParseProtectionMode(t *testing.T) {
	mode, err := ParseProtectionMode("demo")
	require.NoError(t, err)
	assert.Equal(t, ModeDemo, mode)

	_, err = ParseProtectionMode("full")
	assert.Error(t, err)
}

// A duration outside the fixed set is recorded as-is; the compiler rejects
// it later instead of the engine clamping it.
func TestProtectionModeEngine_OutOfSetDurationNotClamped(t *testing.T) {
	engine := NewProtectionModeEngine()
	require.NoError(t, engine.Select(ModeDemo))
	engine.SetDemoDuration(45)

	assert.Equal(t, 45, engine.Config().DemoDuration)
	assert.False(t, IsAllowedDemoDuration(45))
}

func TestIsAllowedDemoDuration(t *testing.T) {
	for _, minutes := range AllowedDemoDurations {
		assert.True(t, IsAllowedDemoDuration(minutes))
	}
	assert.False(t, IsAllowedDemoDuration(0))
	assert.False(t, IsAllowedDemoDuration(61))
	assert.False(t, IsAllowedDemoDuration(-60))
}
