// Package clock provides delayed actions that always run on a single logical thread.
//
//   - [Clock]: schedules callbacks after a delay
//   - [Real]: wall-clock timers whose callbacks are posted onto an event loop
//   - [Manual]: virtual time advanced explicitly, for tests and offline rendering
//   - [Loop]: a single-goroutine executor used when no UI event loop exists
//
// Timers are never stopped individually. Owners cancel a batch of pending callbacks
// by bumping a generation counter that the callbacks check before running.
package clock
