// Package render turns classification results into what the client displays.
//
// Everything here is a pure transition over [State]: the caller owns the state
// and acts on the returned [Trigger].
package render

import (
	"fmt"

	"github.com/san-kum/digitlive/internal/predict"
)

// ViewMode selects how results are presented.
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDiagram
)

func (v ViewMode) String() string {
	if v == ViewDiagram {
		return "network-diagram"
	}
	return "probability-list"
}

// ErrorText replaces every readout while the last reply was an error.
const ErrorText = "Error"

const placeholder = "-"

// NoDigit is LastAnimated before anything was animated.
const NoDigit = -1

// Display is the text shown in the readouts.
type Display struct {
	Prediction string
	Confidence string
	Rows       []predict.Row
	Err        string
	Label      string
}

// State is the renderer's view of the session.
type State struct {
	View         ViewMode
	LastAnimated int
	Display      Display
}

// Trigger asks the caller to animate Digit.
type Trigger struct {
	Digit int
	Fire  bool
}

// Reset returns the initial state.
func Reset() State {
	return State{
		View:         ViewList,
		LastAnimated: NoDigit,
		Display:      Display{Prediction: placeholder, Confidence: placeholder},
	}
}

// Apply renders res. In diagram mode a digit different from the last animated
// one fires the trigger and becomes the new LastAnimated.
func Apply(s State, res predict.Result) (State, Trigger) {
	s.Display = Display{
		Prediction: fmt.Sprintf("%d", res.Prediction),
		Confidence: predict.Percent(res.Confidence),
		Rows:       predict.Rank(res.Probabilities),
		Label:      s.Display.Label,
	}

	var tr Trigger
	if s.View == ViewDiagram {
		s.Display.Label = fmt.Sprintf("Predicted: %d", res.Prediction)
		if res.Prediction != s.LastAnimated {
			tr = Trigger{Digit: res.Prediction, Fire: true}
			s.LastAnimated = res.Prediction
		}
	}
	return s, tr
}

// ApplyError shows the generic error state in every readout, whatever the
// cause. LastAnimated is left as is.
func ApplyError(s State) State {
	s.Display = Display{
		Prediction: ErrorText,
		Confidence: ErrorText,
		Err:        ErrorText,
		Label:      s.Display.Label,
	}
	return s
}

// Toggle flips the view mode. Leaving the diagram drops its label; the last
// animated digit is kept.
func Toggle(s State) State {
	if s.View == ViewDiagram {
		s.View = ViewList
		s.Display.Label = ""
	} else {
		s.View = ViewDiagram
	}
	return s
}

// Clear blanks the readouts. The view and the last animated digit are kept.
func Clear(s State) State {
	s.Display = Display{Prediction: placeholder, Confidence: placeholder}
	return s
}
