// Package engine is a small headless 2D application skeleton built on the
// ownership handles of package own.
//
// An [App] owns an offscreen [Window] through an own.Unique, keeps its scene
// [Actor]s in own.Shared handles and lets child actors refer back to their
// parent through an own.Weak. Each frame it moves the follower actor toward
// the next waypoint, rasterizes every shape into the window and hands the
// finished frame to a [FrameSink].
//
// # Quick Start
//
//	app := engine.NewApp(config.Default(), engine.DiscardSink{})
//	stats, err := app.Run(ctx)
package engine
