// Package predict defines classification results and the inbound wire format.
//
// The classifier replies with one JSON object per frame, either
//
//	{"prediction": 3, "confidence": 0.92, "probabilities": [...10 floats...]}
//
// or
//
//	{"error": "message"}
//
// [Decode] maps the first form to a [Result], the second to a [*ServerError], and
// anything it cannot interpret to a [*MalformedError]. Both error kinds are shown
// to the user the same way but are kept apart for diagnostics.
package predict
