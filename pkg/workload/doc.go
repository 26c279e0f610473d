// Package workload replays YAML access traces against a simulator.
//
// A trace declares the cache capacity, the backing files to create and the
// sequence of accesses. An optional expect block turns the trace into a
// self-checking scenario:
//
//	capacity: 2
//	files:
//	  - {id: A, size_kib: 10}
//	  - {id: B, size_kib: 5}
//	  - {id: C, size_kib: 7}
//	accesses: [A, B, A, C]
//	expect:
//	  hits: 1
//	  misses: 3
//	  cached: [A, C]
//
// Typical use:
//
//	trace, err := workload.LoadFile("trace.yaml")
//	sim, err := trace.NewSimulator(file.NewMemoryStorage(), log)
//	report, err := workload.Run(ctx, trace, sim)
//	err = report.Verify(trace.Expect)
package workload
