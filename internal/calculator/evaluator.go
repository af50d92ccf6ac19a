package calculator

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Operator is one of the four supported arithmetic symbols.
type Operator string

const (
	OpAdd      Operator = "+"
	OpSubtract Operator = "-"
	OpMultiply Operator = "*"
	OpDivide   Operator = "/"
)

// Errors returned by Evaluate and the parse helpers. The messages are
// client-facing and end up verbatim in 400 responses.
var (
	ErrInvalidOperand  = errors.New("Invalid numbers")
	ErrInvalidOperator = errors.New("Invalid operator. Use +, -, *, or /")
	ErrDivisionByZero  = errors.New("Division by zero is not allowed.")
	ErrOverflow        = errors.New("Result is out of range.")
)

// Valid reports whether op is a recognised operator.
func (op Operator) Valid() bool {
	switch op {
	case OpAdd, OpSubtract, OpMultiply, OpDivide:
		return true
	}
	return false
}

// Name returns the operation name used for metric attributes and span names.
func (op Operator) Name() string {
	switch op {
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpMultiply:
		return "multiply"
	case OpDivide:
		return "divide"
	}
	return "unknown"
}

// Evaluate computes a <op> b. Operands and the result must be finite;
// a result that overflows float64 yields ErrOverflow.
func Evaluate(a, b float64, op Operator) (float64, error) {
	if !finite(a) || !finite(b) {
		return 0, ErrInvalidOperand
	}

	var result float64
	switch op {
	case OpAdd:
		result = a + b
	case OpSubtract:
		result = a - b
	case OpMultiply:
		result = a * b
	case OpDivide:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		result = a / b
	default:
		return 0, ErrInvalidOperator
	}

	if !finite(result) {
		return 0, ErrOverflow
	}
	return result, nil
}

// ParseOperand parses a query-string operand. Surrounding whitespace is
// ignored; anything else that is not a finite decimal number is rejected.
func ParseOperand(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !finite(v) {
		return 0, ErrInvalidOperand
	}
	return v, nil
}

// ParseOperator parses a query-string operator.
func ParseOperator(s string) (Operator, error) {
	// An unescaped "+" in a query string decodes to a space.
	if s == " " {
		return OpAdd, nil
	}

	op := Operator(strings.TrimSpace(s))
	if !op.Valid() {
		return "", ErrInvalidOperator
	}
	return op, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
