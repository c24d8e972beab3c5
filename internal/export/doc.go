// Package export writes the network diagram to image files.
//
// [Frame] replays an animation on a virtual clock up to a given offset, so any
// moment of a run can be rendered without waiting in real time. The result can
// be written as SVG with [DiagramToSVG] or as PNG with [DiagramToPNG].
package export
