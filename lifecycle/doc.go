// Package lifecycle runs the ordered init and cleanup passes over a device
// registry.
//
// The init pass first validates the registry and scans it once: duplicate ids
// are rejected there, before any hook runs, and the scan fixes the realized
// order (ascending priority, placement order breaking ties). The cleanup pass
// replays exactly that order in reverse, giving strict LIFO teardown. Both
// passes honor a per-device failure policy: abort-all (default) or continue
// with an aggregate error naming every failure.
package lifecycle
