package gocriteria

import (
	"database/sql"
	"fmt"
	"reflect"

	"github.com/samber/lo"
	"gorm.io/gorm/clause"
)

// Predicate is a single WHERE fragment with GORM named placeholders ("@name")
// and the parameters bound to them.
//
// Example:
//
//	Predicate{SQL: "u.age > @age0", Params: [age0=18]}
type Predicate struct {
	SQL    string
	Params []sql.NamedArg
}

// BuildPredicate converts (column, operator, value) into a Predicate whose
// parameters are named after param. The boolean result is false when the
// input produces no predicate at all (an equality against "").
//
// Value semantics per operator:
//   - eq: nil -> "col IS NULL"; slice -> "col IN @param"; "" -> skipped;
//     otherwise "col = @param".
//   - gt, lt, gte, lte: "col <op> @param", value bound as-is.
//   - like: "col LIKE @param", value bound as "%value%". Wildcards inside the
//     value are not escaped.
//   - between: value must be a slice with at least two elements; the first
//     two become "col BETWEEN @param_from AND @param_to".
func BuildPredicate(column string, op Operator, value any, param string) (Predicate, bool, error) {
	switch op.orDefault() {
	case OperatorEQ:
		return buildEquality(column, value, param)
	case OperatorGT, OperatorLT, OperatorGTE, OperatorLTE:
		symbol, _ := op.comparisonSQL()

		return newPredicate(fmt.Sprintf("%s %s @%s", column, symbol, param), sql.Named(param, value)), true, nil
	case OperatorLike:
		return newPredicate(fmt.Sprintf("%s LIKE @%s", column, param), sql.Named(param, likePattern(value))), true, nil
	case OperatorBetween:
		bounds := listValues(value)
		if len(bounds) < 2 {
			return Predicate{}, false, fmt.Errorf("%w: column '%s' needs two bounds, got %d", ErrMalformedBetween, column, len(bounds))
		}

		from, to := param+"_from", param+"_to"

		return newPredicate(
			fmt.Sprintf("%s BETWEEN @%s AND @%s", column, from, to),
			sql.Named(from, bounds[0]),
			sql.Named(to, bounds[1]),
		), true, nil
	default:
		return Predicate{}, false, fmt.Errorf("%w '%s'", ErrInvalidOperator, op)
	}
}

func buildEquality(column string, value any, param string) (Predicate, bool, error) {
	switch {
	case lo.IsNil(value):
		return newPredicate(fmt.Sprintf("%s IS NULL", column)), true, nil
	case isList(value):
		return newPredicate(fmt.Sprintf("%s IN @%s", column, param), sql.Named(param, value)), true, nil
	case value == "":
		return Predicate{}, false, nil
	default:
		return newPredicate(fmt.Sprintf("%s = @%s", column, param), sql.Named(param, value)), true, nil
	}
}

func newPredicate(sqlClause string, params ...sql.NamedArg) Predicate {
	return Predicate{SQL: sqlClause, Params: params}
}

// String - implements fmt.Stringer. Returns the SQL template with placeholders.
func (p Predicate) String() string {
	return p.SQL
}

// Expression converts the predicate into a clause.NamedExpr so it can be passed
// to (*gorm.DB).Where or (*gorm.DB).Clauses.
func (p Predicate) Expression() clause.Expression {
	return clause.NamedExpr{
		SQL:  p.SQL,
		Vars: lo.Map(p.Params, func(arg sql.NamedArg, _ int) any { return arg }),
	}
}

// Param returns the value bound to the named parameter.
func (p Predicate) Param(name string) (any, bool) {
	arg, ok := lo.Find(p.Params, func(arg sql.NamedArg) bool {
		return arg.Name == name
	})

	return arg.Value, ok
}

func likePattern(v any) string {
	if lo.IsNil(v) {
		return "%%"
	}

	return fmt.Sprintf("%%%v%%", v)
}

// isList reports whether v is a membership list. []byte is treated as a scalar.
func isList(v any) bool {
	if v == nil {
		return false
	}

	if _, ok := v.([]byte); ok {
		return false
	}

	kind := reflect.TypeOf(v).Kind()

	return kind == reflect.Slice || kind == reflect.Array
}

func listValues(v any) []any {
	if !isList(v) {
		return nil
	}

	rv := reflect.ValueOf(v)
	ret := make([]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		ret = append(ret, rv.Index(i).Interface())
	}

	return ret
}

var _ fmt.Stringer = Predicate{}
