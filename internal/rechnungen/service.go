package rechnungen

import (
	"context"
	"math"

	"rechner-api/internal/calculator"
)

// Service applies the calculator rules on top of a Store: results are always
// computed server side and validation happens before any write.
type Service struct {
	store Store
}

var _ calculator.Recorder = (*Service)(nil)

// NewService creates a Service over store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create evaluates a op b and stores the calculation.
func (s *Service) Create(ctx context.Context, a, b float64, op calculator.Operator) (*Record, error) {
	result, err := calculator.Evaluate(a, b, op)
	if err != nil {
		return nil, err
	}

	rec := &Record{
		FirstNumber:  a,
		SecondNumber: b,
		Operator:     string(op),
		Result:       result,
	}
	if err := s.store.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Record stores a calculation that was already evaluated. A non-finite
// result is refused with calculator.ErrOverflow.
func (s *Service) Record(ctx context.Context, c calculator.Calculation) error {
	if math.IsNaN(c.Result) || math.IsInf(c.Result, 0) {
		return calculator.ErrOverflow
	}
	return s.store.Create(ctx, &Record{
		FirstNumber:  c.A,
		SecondNumber: c.B,
		Operator:     string(c.Op),
		Result:       c.Result,
	})
}

func (s *Service) List(ctx context.Context) ([]Record, error) {
	return s.store.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Record, error) {
	return s.store.Get(ctx, id)
}

// Update replaces operands and operator of id and recomputes the result.
// Evaluation errors are returned before the store is touched.
func (s *Service) Update(ctx context.Context, id int64, a, b float64, op calculator.Operator) (*Record, error) {
	result, err := calculator.Evaluate(a, b, op)
	if err != nil {
		return nil, err
	}

	rec := &Record{
		ID:           id,
		FirstNumber:  a,
		SecondNumber: b,
		Operator:     string(op),
		Result:       result,
	}
	if err := s.store.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}
