// Package schedule implements the adaptive transmission scheduler.
//
// A single recurring timer samples the drawing surface and hands non-empty frames
// to a send step. The period is short while a stroke session is live and long
// otherwise. When a session ends the short period is held for a cooldown window
// so brief pauses mid-stroke do not flap the rate.
//
// All methods and timer callbacks must run on the same logical thread; use a
// [clock.Clock] whose callbacks are serialized onto that thread.
package schedule
