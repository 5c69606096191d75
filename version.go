package infermedica

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Version is the current SDK version.
//
// This version follows semantic versioning (https://semver.org/).
const Version = "0.1.0"

// APIVersion is the Infermedica API version this SDK was built for.
const APIVersion = "2.0.0"

// APIVersionRange is the semver constraint of API versions this SDK
// supports. The "-0" suffixes admit pre-release versions on both bounds.
const APIVersionRange = ">=2.0.0-0, <3.0.0-0"

// CompatibilityStatus is the outcome of a version check.
type CompatibilityStatus int

const (
	// Unknown means the server version could not be parsed.
	Unknown CompatibilityStatus = iota
	// Compatible means the server version is within APIVersionRange.
	Compatible
	// Incompatible means the server version is outside APIVersionRange.
	Incompatible
)

func (s CompatibilityStatus) String() string {
	switch s {
	case Compatible:
		return "compatible"
	case Incompatible:
		return "incompatible"
	default:
		return "unknown"
	}
}

// CompatibilityResult describes how a server version relates to this SDK.
type CompatibilityResult struct {
	Status           CompatibilityStatus
	ServerVersion    string
	SDKVersion       string
	TargetAPIVersion string
	SupportedRange   string
	Message          string
}

// IsCompatible returns true if Status is Compatible.
func (r *CompatibilityResult) IsCompatible() bool {
	return r.Status == Compatible
}

// CheckCompatibility compares serverVersion (as reported in the
// api_version field of /info) against [APIVersionRange].
// A leading "v" is accepted.
func CheckCompatibility(serverVersion string) *CompatibilityResult {
	result := &CompatibilityResult{
		ServerVersion:    serverVersion,
		SDKVersion:       Version,
		TargetAPIVersion: APIVersion,
		SupportedRange:   APIVersionRange,
	}

	if serverVersion == "" {
		result.Status = Unknown
		result.Message = "server did not report a version"
		return result
	}

	v, err := semver.NewVersion(serverVersion)
	if err != nil {
		result.Status = Unknown
		result.Message = fmt.Sprintf("cannot parse server version %q: %v", serverVersion, err)
		return result
	}

	constraint, err := semver.NewConstraint(APIVersionRange)
	if err != nil {
		result.Status = Unknown
		result.Message = fmt.Sprintf("invalid supported range %q: %v", APIVersionRange, err)
		return result
	}

	if constraint.Check(v) {
		result.Status = Compatible
		result.Message = fmt.Sprintf("server version %s is compatible with SDK %s", serverVersion, Version)
	} else {
		result.Status = Incompatible
		result.Message = fmt.Sprintf("server version %s is not compatible with SDK %s (supported: %s)",
			serverVersion, Version, APIVersionRange)
	}
	return result
}

// IsCompatible reports whether serverVersion is within [APIVersionRange].
func IsCompatible(serverVersion string) bool {
	return CheckCompatibility(serverVersion).IsCompatible()
}

// MustBeCompatible panics if serverVersion is not compatible.
func MustBeCompatible(serverVersion string) {
	if result := CheckCompatibility(serverVersion); !result.IsCompatible() {
		panic("infermedica: " + result.Message)
	}
}
