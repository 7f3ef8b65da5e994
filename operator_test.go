package gocriteria

import (
	"errors"
	"testing"
)

func Test_ParseOperator(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Operator
		wantErr bool
	}{
		{"empty defaults to eq", "", OperatorEQ, false},
		{"eq", "eq", OperatorEQ, false},
		{"gt", "gt", OperatorGT, false},
		{"lt", "lt", OperatorLT, false},
		{"gte", "gte", OperatorGTE, false},
		{"lte", "lte", OperatorLTE, false},
		{"like", "like", OperatorLike, false},
		{"between", "between", OperatorBetween, false},
		{"surrounding spaces", " gt ", OperatorGT, false},
		{"unknown xor", "xor", "", true},
		{"sql symbol is not a code", ">", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOperator(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("%s: err=%v wantErr=%v", tt.name, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidOperator) {
				t.Errorf("%s: want ErrInvalidOperator, got %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("%s: got %s want %s", tt.name, got, tt.want)
			}
		})
	}
}

func Test_Operator_comparisonSQL(t *testing.T) {
	tests := []struct {
		in   Operator
		want string
		ok   bool
	}{
		{OperatorGT, ">", true},
		{OperatorLT, "<", true},
		{OperatorGTE, ">=", true},
		{OperatorLTE, "<=", true},
		{OperatorEQ, "", false},
		{OperatorLike, "", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			got, ok := tt.in.comparisonSQL()
			if got != tt.want || ok != tt.ok {
				t.Errorf("%s: got (%s,%v) want (%s,%v)", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}
