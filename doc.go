// Package jamstage is the 3D scene core of a collaborative music-performance
// visualizer.
//
// Jamstage provides the transform hierarchy, time-driven property tracks,
// ray picking for clickable controls, and the coordinator that maps a shared
// song pattern onto the scene. It performs no drawing and no I/O: the host
// owns the frame loop, the GPU, and the network, and calls into the scene
// once per frame.
//
// # Quick start
//
//	scene := jamstage.NewScene(jamstage.DefaultConfig(), meshes)
//	scene.Build(jamstage.InstrumentDrums)
//
//	// every frame
//	scene.Tick(elapsed)
//	for _, d := range scene.Drawables() {
//		// submit d.Mesh with d.World and d.Color
//	}
//
//	// on click
//	scene.HandleSelection(song, func(instr jamstage.Instrument, s *jamstage.Song) {
//		// broadcast the change
//	})
//
// # Scene graph
//
// Nodes live in a [Graph] and are addressed by [NodeID] handles. A handle to
// a removed node goes stale and every accessor reports absence for it, so
// tracks and pickables bound to a departed participant simply stop doing
// anything.
//
// Local transforms are built by right-multiplying translations and rotations
// ([Graph.Translate], [Graph.Rotate]) or cleared with [Graph.ResetLocal].
// World transforms are recomputed once per tick, root first.
//
// # Tracks
//
// A [Track] linearly interpolates a node's position or color between two
// vectors (via [gween] linear tweens). Its start time is fixed on the first
// tick that sees it, offset by its delay. Finished tracks are dropped at the
// end of the tick.
//
// # Picking
//
// A [Pickable] is a box in a node's local space. [Scene.HandleSelection]
// casts the camera's crosshair ray, keeps the nearest hit, and either toggles
// playback or flips one cell of the [Song].
//
// [gween]: https://github.com/tanema/gween
package jamstage
