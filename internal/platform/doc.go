// Package platform is the OS identification collaborator.
//
// It reduces the running system to a [Tag] (darwin, win32, linux or unknown)
// plus an architecture string, and owns the static mapping from a platform to
// the package manager used to reinstall software there:
//
//	info := platform.Detect()
//	fmt.Println(info.Tag, info.Arch)        // linux amd64
//	fmt.Println(platform.MethodFor(info.Tag)) // apt
//
// The tag is selected once at startup; downstream packages switch on it in
// exactly one place each (strategy selection, backend selection).
package platform
