// Package keypad models the calculator front end as an explicit state
// machine. Transitions are pure: every Press* method returns the next State
// and leaves the receiver untouched.
package keypad

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"rechner-api/internal/calculator"
)

// Mode is the phase of the input cycle.
type Mode int

const (
	// Idle: nothing typed since start, clear or the last result.
	Idle Mode = iota
	// OperandEntry: the first operand is being typed.
	OperandEntry
	// OperatorPending: an operator is set, the second operand may be typed
	// and Equals will evaluate.
	OperatorPending
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case OperandEntry:
		return "operand-entry"
	case OperatorPending:
		return "operator-pending"
	}
	return "unknown"
}

// ErrInvalidKey is returned by Press for tokens that are not keypad keys.
var ErrInvalidKey = errors.New("invalid key")

// Calculator evaluates a calculation remotely.
type Calculator interface {
	Calculate(ctx context.Context, a, b float64, op calculator.Operator) (float64, error)
}

// State is the complete keypad state.
type State struct {
	Mode     Mode
	Display  string
	Stored   string
	Operator calculator.Operator
	// ResetDisplay makes the next digit replace the display.
	ResetDisplay bool
}

// New returns the initial state showing 0.
func New() State {
	return State{Mode: Idle, Display: "0"}
}

// PressDigit handles 0-9 and the decimal point.
func (s State) PressDigit(d string) State {
	if (s.Display == "0" && d != ".") || s.ResetDisplay {
		s.Display = d
		if d == "." {
			s.Display = "0."
		}
		s.ResetDisplay = false
	} else {
		if d == "." && strings.Contains(s.Display, ".") {
			return s
		}
		s.Display += d
	}

	if s.Mode == Idle {
		s.Mode = OperandEntry
	}
	return s
}

// PressOperator stores the display as the first operand. Pressing another
// operator before a new digit only replaces the operator.
func (s State) PressOperator(op calculator.Operator) State {
	if !(s.Mode == OperatorPending && s.ResetDisplay) {
		s.Stored = s.Display
	}
	s.Operator = op
	s.ResetDisplay = true
	s.Mode = OperatorPending
	return s
}

// Equals evaluates Stored Operator Display through calc. Outside
// OperatorPending it is a no-op. On error the state is returned unchanged
// together with the error.
func (s State) Equals(ctx context.Context, calc Calculator) (State, error) {
	if s.Mode != OperatorPending {
		return s, nil
	}

	a, err := strconv.ParseFloat(s.Stored, 64)
	if err != nil {
		return s, calculator.ErrInvalidOperand
	}
	b, err := strconv.ParseFloat(s.Display, 64)
	if err != nil {
		return s, calculator.ErrInvalidOperand
	}

	result, err := calc.Calculate(ctx, a, b, s.Operator)
	if err != nil {
		return s, err
	}

	return State{
		Mode:         Idle,
		Display:      strconv.FormatFloat(result, 'g', -1, 64),
		ResetDisplay: true,
	}, nil
}

// Clear returns the initial state.
func (s State) Clear() State {
	return New()
}

// Press dispatches a single key token: a digit, ".", an operator, "=" or
// "C".
func (s State) Press(ctx context.Context, calc Calculator, key string) (State, error) {
	switch {
	case len(key) == 1 && (key[0] >= '0' && key[0] <= '9' || key[0] == '.'):
		return s.PressDigit(key), nil
	case calculator.Operator(key).Valid():
		return s.PressOperator(calculator.Operator(key)), nil
	case key == "=":
		return s.Equals(ctx, calc)
	case strings.EqualFold(key, "c"):
		return s.Clear(), nil
	}
	return s, ErrInvalidKey
}
