package gocriteria

import (
	"fmt"
	"strings"
)

// Operator defines a comparison operator for filtering by property.
// The zero value is treated as OperatorEQ.
type Operator string

const (
	OperatorEQ      Operator = "eq"
	OperatorGT      Operator = "gt"
	OperatorLT      Operator = "lt"
	OperatorGTE     Operator = "gte"
	OperatorLTE     Operator = "lte"
	OperatorLike    Operator = "like"
	OperatorBetween Operator = "between"
)

// ParseOperator converts an operator code into Operator. An empty code maps to
// OperatorEQ; anything outside the known set yields ErrInvalidOperator.
func ParseOperator(code string) (Operator, error) {
	op := Operator(strings.TrimSpace(code))
	if op == "" {
		return OperatorEQ, nil
	}

	if !op.Valid() {
		return "", fmt.Errorf("%w '%s'", ErrInvalidOperator, code)
	}

	return op, nil
}

func (o Operator) Valid() bool {
	switch o {
	case OperatorEQ, OperatorGT, OperatorLT, OperatorGTE, OperatorLTE, OperatorLike, OperatorBetween:
		return true
	default:
		return false
	}
}

// orDefault returns OperatorEQ for the zero value.
func (o Operator) orDefault() Operator {
	if o == "" {
		return OperatorEQ
	}

	return o
}

// comparisonSQL maps binary comparison operators to their SQL symbol.
func (o Operator) comparisonSQL() (string, bool) {
	switch o {
	case OperatorGT:
		return ">", true
	case OperatorLT:
		return "<", true
	case OperatorGTE:
		return ">=", true
	case OperatorLTE:
		return "<=", true
	default:
		return "", false
	}
}
