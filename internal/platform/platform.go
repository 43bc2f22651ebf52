package platform

import (
	"runtime"
	"strings"
)

// Tag identifies a platform family. The string values are the ones stored in
// saved records, so they must not change.
type Tag string

const (
	// Darwin is macOS.
	Darwin Tag = "darwin"
	// Windows is the win32 family.
	Windows Tag = "win32"
	// Linux covers every Linux distribution.
	Linux Tag = "linux"
	// Unknown is any platform without a detection strategy.
	Unknown Tag = "unknown"
)

// Install method labels reported by installation backends.
const (
	MethodBrew   = "brew"
	MethodWinget = "winget"
	MethodApt    = "apt"
	MethodManual = "manual"
)

// methods is the static platform → preferred package manager mapping.
var methods = map[Tag]string{
	Darwin:  MethodBrew,
	Windows: MethodWinget,
	Linux:   MethodApt,
}

// Info is what the OS identification collaborator reports.
type Info struct {
	// Tag is the normalized platform family.
	Tag Tag
	// OS is the raw operating system name (runtime.GOOS).
	OS string
	// Arch is the architecture string (runtime.GOARCH), e.g. amd64, arm64.
	Arch string
}

// Detect identifies the running platform.
func Detect() Info {
	return FromGOOS(runtime.GOOS, runtime.GOARCH)
}

// FromGOOS builds Info from explicit GOOS/GOARCH values.
func FromGOOS(goos, goarch string) Info {
	var tag Tag
	switch goos {
	case "darwin":
		tag = Darwin
	case "windows":
		tag = Windows
	case "linux":
		tag = Linux
	default:
		tag = Unknown
	}
	return Info{Tag: tag, OS: goos, Arch: goarch}
}

// ParseTag normalizes user input to a Tag. Unrecognized input yields Unknown.
func ParseTag(s string) Tag {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "darwin", "macos", "mac", "osx":
		return Darwin
	case "win32", "windows", "win":
		return Windows
	case "linux":
		return Linux
	default:
		return Unknown
	}
}

// Known reports whether t is one of the supported families.
func (t Tag) Known() bool {
	_, ok := methods[t]
	return ok
}

func (t Tag) String() string {
	return string(t)
}

// MethodFor returns the install method label for a platform, falling back to
// MethodManual for unrecognized platforms.
func MethodFor(t Tag) string {
	if m, ok := methods[t]; ok {
		return m
	}
	return MethodManual
}

// Tags returns every tag in deterministic order.
func Tags() []Tag {
	return []Tag{Darwin, Windows, Linux, Unknown}
}
