package infermedica_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomblancdev/infermedica-go"
)

// TestVersion_Constants verifies version constants are set correctly.
func TestVersion_Constants(t *testing.T) {
	assert.NotEmpty(t, infermedica.Version, "Version should not be empty")
	assert.NotEmpty(t, infermedica.APIVersion, "APIVersion should not be empty")
	assert.NotEmpty(t, infermedica.APIVersionRange, "APIVersionRange should not be empty")
	assert.True(t, infermedica.IsCompatible(infermedica.APIVersion), "target API version must satisfy its own range")
}

// TestIsCompatible tests the IsCompatible convenience function.
func TestIsCompatible(t *testing.T) {
	tests := []struct {
		name       string
		version    string
		compatible bool
	}{
		{"exact target version", "2.0.0", true},
		{"minor version in range", "2.8.3", true},
		{"leading v", "v2.1.0", true},
		{"prerelease in range", "2.5.0-beta.1", true},
		{"version too old", "1.9.9", false},
		{"next major", "3.0.0", false},
		{"empty version", "", false},
		{"invalid version", "not-a-version", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := infermedica.IsCompatible(tt.version)
			assert.Equal(t, tt.compatible, result, "IsCompatible(%q) should return %v", tt.version, tt.compatible)
		})
	}
}

// TestCheckCompatibility_Compatible tests CheckCompatibility with compatible versions.
func TestCheckCompatibility_Compatible(t *testing.T) {
	result := infermedica.CheckCompatibility("2.3.0")

	assert.Equal(t, infermedica.Compatible, result.Status)
	assert.True(t, result.IsCompatible())
	assert.Equal(t, "2.3.0", result.ServerVersion)
	assert.Equal(t, infermedica.Version, result.SDKVersion)
	assert.Equal(t, infermedica.APIVersion, result.TargetAPIVersion)
	assert.Equal(t, infermedica.APIVersionRange, result.SupportedRange)
	assert.Contains(t, result.Message, "compatible")
}

// TestCheckCompatibility_Incompatible tests CheckCompatibility with incompatible versions.
func TestCheckCompatibility_Incompatible(t *testing.T) {
	for _, version := range []string{"1.0.0", "3.0.0", "3.1.0"} {
		t.Run(version, func(t *testing.T) {
			result := infermedica.CheckCompatibility(version)

			assert.Equal(t, infermedica.Incompatible, result.Status)
			assert.False(t, result.IsCompatible())
			assert.Contains(t, result.Message, "not compatible")
		})
	}
}

// TestCheckCompatibility_Unknown tests CheckCompatibility with unparseable versions.
func TestCheckCompatibility_Unknown(t *testing.T) {
	for _, version := range []string{"", "not-a-version", "abc.def.ghi"} {
		t.Run(version, func(t *testing.T) {
			result := infermedica.CheckCompatibility(version)

			assert.Equal(t, infermedica.Unknown, result.Status)
			assert.False(t, result.IsCompatible())
			assert.NotEmpty(t, result.Message)
		})
	}
}

// TestCompatibilityStatus_String tests the String method on CompatibilityStatus.
func TestCompatibilityStatus_String(t *testing.T) {
	tests := []struct {
		status   infermedica.CompatibilityStatus
		expected string
	}{
		{infermedica.Compatible, "compatible"},
		{infermedica.Incompatible, "incompatible"},
		{infermedica.Unknown, "unknown"},
		{infermedica.CompatibilityStatus(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.String())
		})
	}
}

// TestMustBeCompatible tests that MustBeCompatible panics only on bad versions.
func TestMustBeCompatible(t *testing.T) {
	require.NotPanics(t, func() {
		infermedica.MustBeCompatible("2.0.0")
	})
	require.Panics(t, func() {
		infermedica.MustBeCompatible("1.0.0")
	})
	require.Panics(t, func() {
		infermedica.MustBeCompatible("invalid")
	})
}
