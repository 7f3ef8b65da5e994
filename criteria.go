package gocriteria

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

type (
	// Equality is a single entry of an equality-mode filter.
	Equality struct {
		Property string
		Value    any
	}

	// Equalities is an ordered property -> value mapping. Every entry is
	// compared with implicit equality semantics (see ApplyEqualities).
	Equalities []Equality

	// Criterion is a single (property, operator, value) filter record. An empty
	// Property stands for an absent key and is skipped.
	Criterion struct {
		Property string
		Operator Operator
		Value    any
	}

	// Criteria is an ordered list of criterion records joined by AND.
	Criteria []Criterion
)

// BetweenMode selects where ZipCriteria takes the bounds of a between entry.
type BetweenMode string

const (
	// BetweenLeadingValues reads values[0] and values[1] of the whole values
	// sequence regardless of the entry's index. This is the legacy behaviour of
	// the parallel-sequence convention and the default.
	BetweenLeadingValues BetweenMode = "leading_values"
	// BetweenPerCriterion expects values[i] itself to be a two-element slice.
	BetweenPerCriterion BetweenMode = "per_criterion"
)

func (m BetweenMode) Valid() bool {
	return m == BetweenLeadingValues || m == BetweenPerCriterion
}

// Eq is a shorthand for building an Equality.
func Eq(property string, value any) Equality {
	return Equality{Property: property, Value: value}
}

// EqualitiesFromMap builds Equalities from a map. Keys are sorted so that the
// resulting predicate order is deterministic.
func EqualitiesFromMap(m map[string]any) Equalities {
	keys := lo.Keys(m)
	slices.Sort(keys)

	return lo.Map(keys, func(key string, _ int) Equality {
		return Eq(key, m[key])
	})
}

// ApplyEqualities adds one predicate per entry to the query, all joined by AND:
//   - nil value -> "alias.prop IS NULL", no parameter;
//   - slice value -> "alias.prop IN @prop";
//   - "" -> the entry is skipped;
//   - otherwise -> "alias.prop = @prop".
//
// Parameter names are the property names with dots replaced by underscores.
// Every property must be a plain dotted path, otherwise ErrInvalidProperty is
// returned.
func ApplyEqualities(db *gorm.DB, alias string, eqs Equalities) (*gorm.DB, error) {
	return eqs.apply(db, alias, QualifyAliasDot)
}

func (e Equalities) apply(db *gorm.DB, alias string, mode QualifyMode) (*gorm.DB, error) {
	predicates, err := e.predicates(alias, mode)
	if err != nil {
		return nil, err
	}

	for _, predicate := range predicates {
		db = db.Where(predicate.Expression())
	}

	return db, nil
}

func (e Equalities) predicates(alias string, mode QualifyMode) ([]Predicate, error) {
	ret := make([]Predicate, 0, len(e))
	for _, eq := range e {
		err := validateProperty(eq.Property)
		if err != nil {
			return nil, fmt.Errorf("cannot apply equality: %w", err)
		}

		predicate, ok, err := buildEquality(mode.Qualify(alias, eq.Property), eq.Value, parameterName(eq.Property))
		if err != nil {
			return nil, fmt.Errorf("cannot apply equality on '%s': %w", eq.Property, err)
		}

		if ok {
			ret = append(ret, predicate)
		}
	}

	return ret, nil
}

// ApplyCriteria adds one predicate per criterion to the query, all joined by
// AND. Entries with an empty Property are skipped. The parameter name of the
// i-th entry is the normalized property suffixed with i, so repeated
// properties never collide.
//
// Example:
//
//	ApplyCriteria(db, "u", Criteria{{Property: "age", Operator: OperatorGT, Value: 18}})
//	// WHERE u.age > @age0
func ApplyCriteria(db *gorm.DB, alias string, criteria Criteria) (*gorm.DB, error) {
	return criteria.apply(db, alias, QualifyAliasDot)
}

func (c Criteria) apply(db *gorm.DB, alias string, mode QualifyMode) (*gorm.DB, error) {
	predicates, err := c.predicates(alias, mode)
	if err != nil {
		return nil, err
	}

	for _, predicate := range predicates {
		db = db.Where(predicate.Expression())
	}

	return db, nil
}

func (c Criteria) predicates(alias string, mode QualifyMode) ([]Predicate, error) {
	ret := make([]Predicate, 0, len(c))
	for i, criterion := range c {
		if criterion.Property == "" {
			continue
		}

		err := validateProperty(criterion.Property)
		if err != nil {
			return nil, fmt.Errorf("cannot apply criterion #%d: %w", i, err)
		}

		predicate, ok, err := BuildPredicate(
			mode.Qualify(alias, criterion.Property),
			criterion.Operator,
			criterion.Value,
			parameterName(criterion.Property)+strconv.Itoa(i),
		)
		if err != nil {
			return nil, fmt.Errorf("cannot apply criterion #%d on '%s': %w", i, criterion.Property, err)
		}

		if ok {
			ret = append(ret, predicate)
		}
	}

	return ret, nil
}

// ZipCriteria converts the parallel keys/operators/values convention into
// Criteria. An empty key is kept as an empty-Property criterion so that
// indexes (and therefore parameter names) stay aligned with the input.
//
// keys and operators must have the same length, values must be at least as
// long as keys; extra values are allowed because BetweenLeadingValues reads
// values[0] and values[1].
func ZipCriteria(keys []string, operators []string, values []any, mode BetweenMode) (Criteria, error) {
	if len(operators) != len(keys) || len(values) < len(keys) {
		return nil, fmt.Errorf(
			"%w: %d keys, %d operators, %d values",
			ErrMismatchedCriteria, len(keys), len(operators), len(values),
		)
	}

	mode = lo.Ternary(mode == "", BetweenLeadingValues, mode)
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: unknown between mode '%s'", ErrInvalidConfig, mode)
	}

	ret := make(Criteria, 0, len(keys))
	for i, key := range keys {
		if key == "" {
			ret = append(ret, Criterion{})
			continue
		}

		op, err := ParseOperator(operators[i])
		if err != nil {
			return nil, fmt.Errorf("cannot zip criterion #%d on '%s': %w", i, key, err)
		}

		value := values[i]
		if op == OperatorBetween && mode == BetweenLeadingValues {
			if len(values) < 2 {
				return nil, fmt.Errorf("%w: column '%s' needs two leading values, got %d", ErrMalformedBetween, key, len(values))
			}

			value = []any{values[0], values[1]}
		}

		ret = append(ret, Criterion{
			Property: key,
			Operator: op,
			Value:    value,
		})
	}

	return ret, nil
}
