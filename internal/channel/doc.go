// Package channel is the persistent connection to the remote digit classifier.
//
// [Conn] is a thin synchronous WebSocket wrapper. [Channel] drives a Conn from
// background goroutines and posts every outcome (open, result, error) back onto
// the caller's event loop, so the rest of the client stays single-threaded.
//
// Frames are sent as PNG data URLs, one per scheduler tick, with no metadata.
// Sending while the channel is not open drops the frame. There is no reconnect
// logic; callers close and open again to start over.
//
// [PostPredict] is the one-shot HTTP form of the same exchange.
package channel
