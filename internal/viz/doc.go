// Package viz renders an arena in the terminal using the Bubble Tea framework.
//
//   - [Model]: live arena with keyboard toggles and mouse body creation
//   - [Canvas]: Braille-based pixel canvas, 2x4 dots per cell
//   - a preset menu started by [RunInteractive]
//   - theme selection with 3 built-in color schemes
//
// # Key Bindings
//
//	1 2 3 - Load the push, gravity or bounce preset
//	C     - Switch collision strategy (push/bounce)
//	G     - Toggle gravity
//	Space - Pause/Resume
//	R     - Reload the current preset
//	T     - Cycle color themes
//	Q     - Quit
//
// # Creating bodies
//
// Press the left mouse button inside the arena, hold, and release. The
// longer the hold, the larger and heavier the body.
package viz
