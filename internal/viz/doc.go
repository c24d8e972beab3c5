// Package viz is the terminal front end of the drawing client.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: the drawing box, result panel and network diagram
//   - [Canvas]: Braille-based pixel canvas with per-cell color levels
//   - Theme selection with 4 built-in color schemes
//
// Timers and connection events reach the model as messages, so the client
// state is only ever touched from the program's update loop.
//
// # Key Bindings
//
//	Left drag  - Draw
//	Right drag - Erase
//	C          - Clear the canvas
//	R          - Reload the connection
//	V          - Toggle probability list / network diagram
//	S          - Save a snapshot
//	T          - Cycle color themes
//	?          - Show help overlay
//	Q          - Quit
package viz
