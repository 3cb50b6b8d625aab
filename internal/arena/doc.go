// Package arena provides the frame-stepped simulation of circular bodies
// confined to a rectangular arena.
//
// A frame runs the phases in a fixed order:
//
//   - [Integrate] or [ApplyGravity]: advance velocity and position by dt
//   - [ResolveEdges]: reflect each body off the four walls
//   - [Detect]: find every overlapping pair (O(n²), no partitioning)
//   - [Resolve]: separate each pair using the active [Strategy]
//
// [World.Step] drives one frame. The mode flags (gravity on/off and the
// collision strategy) travel in the [Config] passed to every step; there is
// no package-level mutable state.
//
// # Example
//
//	w := arena.NewWorld()
//	w.Add(arena.NewBody(100, 50, 10, 0, 0, 100))
//	cfg := arena.DefaultConfig()
//	cfg.Strategy = arena.Bounce
//	for i := 0; i < 60; i++ {
//		w.Step(cfg)
//	}
//
// # Thread Safety
//
// A World is NOT safe for concurrent use. Every front end owns its world in
// a single goroutine and funnels input through that goroutine.
package arena
