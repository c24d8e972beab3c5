// Package app coordinates one drawing session.
//
// [Client] owns every piece of mutable client state: the drawing surface and
// its stroke capture, the transmission scheduler, the connection, the renderer
// state, and the animated network diagram. All of its methods, and every
// callback it installs, must run on one goroutine; the terminal UI and the
// headless commands both feed it from a single event loop.
package app
