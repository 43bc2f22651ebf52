// Package detect enumerates software installed on the current machine.
//
// Each platform family has one [Strategy] with its own fallback tiers:
//
//   - macOS lists *.app bundles and reads their Info.plist versions.
//   - Windows merges registry uninstall keys, program install roots and
//     start-menu shortcuts, deduplicated by exact name.
//   - Linux reads .desktop descriptors and, only when none are found, asks
//     dpkg, rpm and pacman in turn.
//   - Unknown platforms report ErrUnsupportedPlatform.
//
// Strategies return a [Result] carrying both what they found and every source
// failure they absorbed. [Detector] turns that into the caller's contract: it
// logs each failure, and when nothing was found it returns the built-in
// [Catalog], so Detect never fails and never returns an empty list.
package detect
