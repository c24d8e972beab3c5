// Package animator lights up a path through the network diagram toward a digit.
//
// A run is a fixed [Plan] of five stages after an immediate reset:
//
//	t0        reset every node and edge to inactive
//	t0+100ms  activate three input nodes
//	t0+300ms  propagate into layer 2
//	t0+500ms  propagate into layer 3
//	t0+700ms  propagate into layer 4
//	t0+900ms  commit the edges into the output node
//
// Node choice is a seeded shuffle, so a digit always produces the same path.
// Starting a new run through a [Runner] invalidates every pending stage of the
// previous run before the new stages are scheduled.
package animator
