package predict

import (
	"encoding/json"
	"math"
)

// Digits is the number of classes the classifier scores.
const Digits = 10

// Result is one successful classification.
type Result struct {
	Probabilities [Digits]float64 `json:"probabilities"`
	Prediction    int             `json:"prediction"`
	Confidence    float64         `json:"confidence"`
}

type payload struct {
	Error         *string   `json:"error"`
	Prediction    *int      `json:"prediction"`
	Confidence    *float64  `json:"confidence"`
	Probabilities []float64 `json:"probabilities"`
}

// Decode parses one inbound message.
func Decode(data []byte) (Result, error) {
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Result{}, &MalformedError{Reason: "invalid json", Err: err}
	}
	if p.Error != nil && *p.Error != "" {
		return Result{}, &ServerError{Message: *p.Error}
	}
	switch {
	case p.Prediction == nil:
		return Result{}, &MalformedError{Reason: "missing prediction"}
	case p.Confidence == nil:
		return Result{}, &MalformedError{Reason: "missing confidence"}
	case len(p.Probabilities) != Digits:
		return Result{}, &MalformedError{Reason: "probabilities must have 10 entries"}
	case *p.Prediction < 0 || *p.Prediction >= Digits:
		return Result{}, &MalformedError{Reason: "prediction out of range"}
	case !finite(*p.Confidence):
		return Result{}, &MalformedError{Reason: "confidence is not finite"}
	}

	r := Result{Prediction: *p.Prediction, Confidence: *p.Confidence}
	for i, v := range p.Probabilities {
		if !finite(v) {
			return Result{}, &MalformedError{Reason: "probability is not finite"}
		}
		r.Probabilities[i] = v
	}
	return r, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
