// Package harness replays scripted container scenarios against the seq
// engines and checks that they behave the same way.
//
// A scenario is a YAML file naming a list of steps (append, insert, pop, ...)
// and optional assertions on the final state. Every engine listed in the
// scenario starts from an empty container and receives the same steps.
// Each step produces one TraceEvent; step numbers come from a deterministic
// clock, so a scenario always yields the same trace and the same digest.
//
// Traces are compared against golden files with RunWithGolden, and the CLI
// journals them in the run store for later replay.
//
// Scenario files can be checked structurally with ValidateSchema before they
// are run. The schema is an embedded CUE definition.
package harness
