// Package sim provides the discrete-event engine that walks scouting teams
// through a course of capacity-limited activities.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - clock.go: the event queue, ordered by (time, insertion sequence)
//   - resource.go: FIFO slots with a fixed capacity
//   - process.go: one team's walk through its course as a step function
//   - engine.go: repeated runs over one scenario and the cross-run accumulators
//
// # Architecture
//
// The sim package owns the domain model (Activity, Course, Team, Scenario)
// and the engine; helpers live in sub-packages:
//   - sim/scenario/: YAML scenario files and start schedules
//   - sim/stats/: percentile and mean reductions of the accumulators
//   - sim/report/: text and YAML reports of a finished execution
//   - sim/trace/: per-step event trace recording
//
// Every random draw goes through a PartitionedRNG, so a scenario executed
// twice with the same seed yields identical results.
package sim
