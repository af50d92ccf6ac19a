package rechnungen

import (
	"errors"

	"rechner-api/internal/calculator"
)

var (
	errInvalidBody   = errors.New("invalid request body")
	errMissingFields = errors.New("erste_zahl, zweite_zahl and operator are required")
	errInvalidID     = errors.New("invalid id")
)

// RechnungRequest is the JSON body for POST and PUT /api/rechnungen. All
// three fields are required; partial updates are not supported.
type RechnungRequest struct {
	FirstNumber  *float64 `json:"erste_zahl"`
	SecondNumber *float64 `json:"zweite_zahl"`
	Operator     *string  `json:"operator"`
}

func (req RechnungRequest) operands() (float64, float64, calculator.Operator, error) {
	if req.FirstNumber == nil || req.SecondNumber == nil || req.Operator == nil {
		return 0, 0, "", errMissingFields
	}
	return *req.FirstNumber, *req.SecondNumber, calculator.Operator(*req.Operator), nil
}

// MessageResponse is the JSON body of DELETE /api/rechnungen/{id}.
type MessageResponse struct {
	Message string `json:"message"`
}
