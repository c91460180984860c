// Package registry assembles device descriptors declared across independent
// packages into one ordered, read-only collection.
//
// Two construction paths feed the same view type:
//
//   - Process-wide registration: each device package calls Register (usually
//     from init()), without knowing about any other declaration. This is the
//     portable stand-in for build targets with link-section aggregation, and
//     the path cmd/descgen generates code for.
//   - Region loading: FromRegion reinterprets a bounded byte region emitted
//     at build time as a homogeneous array of packed records, validating the
//     layout before any entry is trusted.
//
// The order a registry exposes is placement order only (registration order,
// or record order in the region). It carries no lifecycle semantics; the
// lifecycle manager derives the init order from priorities.
package registry
