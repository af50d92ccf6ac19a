package calculator

import "context"

// CalcResponse is the JSON body of a successful GET /api/calculate.
type CalcResponse struct {
	Result float64 `json:"result"`
}

// Calculation is one evaluated operation, handed to a Recorder for
// persistence.
type Calculation struct {
	A      float64
	B      float64
	Op     Operator
	Result float64
}

// Recorder persists evaluated calculations.
type Recorder interface {
	Record(ctx context.Context, c Calculation) error
}
