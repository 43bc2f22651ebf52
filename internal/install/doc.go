// Package install replays saved application records against a package
// manager backend.
//
// The [Orchestrator] owns aggregation only: it hands each record to a
// [Backend], turns failures, panics and cancellation into failed outcomes,
// and counts the results. Backends decide what "install" means. [Simulated]
// waits a bounded random delay and succeeds most of the time; [Native] runs
// brew, winget/choco or apt/dnf/pacman through a command runner.
package install
