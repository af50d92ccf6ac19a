package calculator

import (
	"errors"
	"math"
	"testing"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		op   Operator
		want float64
	}{
		{name: "add", a: 5, b: 10, op: OpAdd, want: 15},
		{name: "subtract", a: 5, b: 10, op: OpSubtract, want: -5},
		{name: "multiply", a: 2.5, b: 4, op: OpMultiply, want: 10},
		{name: "divide", a: 1, b: 4, op: OpDivide, want: 0.25},
		{name: "divide negative zero numerator", a: 0, b: -3, op: OpDivide, want: 0},
		{name: "float precision", a: 0.1, b: 0.2, op: OpAdd, want: 0.1 + 0.2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Evaluate(tc.a, tc.b, tc.op)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Evaluate(%g, %g, %q): expected %g, got %g", tc.a, tc.b, tc.op, tc.want, got)
			}
		})
	}
}

func TestEvaluateDivisionByZero(t *testing.T) {
	for _, a := range []float64{0, 1, -1, 5, math.MaxFloat64} {
		_, err := Evaluate(a, 0, OpDivide)
		if !errors.Is(err, ErrDivisionByZero) {
			t.Fatalf("Evaluate(%g, 0, /): expected ErrDivisionByZero, got %v", a, err)
		}
	}
}

func TestEvaluateInvalidOperator(t *testing.T) {
	for _, op := range []Operator{"", "%", "^", "x", "add", "++"} {
		_, err := Evaluate(1, 2, op)
		if !errors.Is(err, ErrInvalidOperator) {
			t.Fatalf("Evaluate(1, 2, %q): expected ErrInvalidOperator, got %v", op, err)
		}
	}
}

func TestEvaluateInvalidOperand(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
	}{
		{name: "nan first", a: math.NaN(), b: 1},
		{name: "nan second", a: 1, b: math.NaN()},
		{name: "inf first", a: math.Inf(1), b: 1},
		{name: "negative inf second", a: 1, b: math.Inf(-1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Evaluate(tc.a, tc.b, OpAdd)
			if !errors.Is(err, ErrInvalidOperand) {
				t.Fatalf("expected ErrInvalidOperand, got %v", err)
			}
		})
	}
}

func TestEvaluateOverflow(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		op   Operator
	}{
		{name: "multiply", a: 1e308, b: 10, op: OpMultiply},
		{name: "add", a: 1e308, b: 1e308, op: OpAdd},
		{name: "subtract", a: -1e308, b: 1e308, op: OpSubtract},
		{name: "divide by tiny", a: 1e308, b: 1e-10, op: OpDivide},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Evaluate(tc.a, tc.b, tc.op)
			if !errors.Is(err, ErrOverflow) {
				t.Fatalf("Evaluate(%g, %g, %q): expected ErrOverflow, got %v (result %g)", tc.a, tc.b, tc.op, err, got)
			}
		})
	}

	if got, err := Evaluate(math.MaxFloat64, 1, OpMultiply); err != nil || got != math.MaxFloat64 {
		t.Fatalf("Evaluate(MaxFloat64, 1, *): expected %g, got %g (%v)", math.MaxFloat64, got, err)
	}
}

func TestParseOperand(t *testing.T) {
	valid := map[string]float64{"5": 5, "-2.5": -2.5, " 10 ": 10, "\t7\n": 7, "1e3": 1000}
	for in, want := range valid {
		got, err := ParseOperand(in)
		if err != nil {
			t.Fatalf("ParseOperand(%q): unexpected error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseOperand(%q): expected %g, got %g", in, want, got)
		}
	}

	for _, in := range []string{"", "abc", "5abc", "5 6", "1 0", "NaN", "Inf", "-Infinity", "1e999"} {
		if _, err := ParseOperand(in); !errors.Is(err, ErrInvalidOperand) {
			t.Fatalf("ParseOperand(%q): expected ErrInvalidOperand, got %v", in, err)
		}
	}
}

func TestParseOperator(t *testing.T) {
	tests := []struct {
		in   string
		want Operator
	}{
		{in: "+", want: OpAdd},
		{in: " ", want: OpAdd},
		{in: "-", want: OpSubtract},
		{in: "*", want: OpMultiply},
		{in: "/", want: OpDivide},
	}
	for _, tc := range tests {
		got, err := ParseOperator(tc.in)
		if err != nil {
			t.Fatalf("ParseOperator(%q): unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseOperator(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}

	if _, err := ParseOperator("%"); !errors.Is(err, ErrInvalidOperator) {
		t.Fatalf("expected ErrInvalidOperator, got %v", err)
	}
}

func TestOperatorName(t *testing.T) {
	names := map[Operator]string{
		OpAdd:      "add",
		OpSubtract: "subtract",
		OpMultiply: "multiply",
		OpDivide:   "divide",
		"%":        "unknown",
	}
	for op, want := range names {
		if got := op.Name(); got != want {
			t.Fatalf("%q.Name(): expected %q, got %q", op, want, got)
		}
	}
}
