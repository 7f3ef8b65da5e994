package gocriteria

import (
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Direction defines the sort direction for the requested dataset.
type Direction string

const (
	DirectionASC  Direction = "ASC"
	DirectionDESC Direction = "DESC"
)

func (o Direction) Valid() bool {
	return o == DirectionASC || o == DirectionDESC
}

// normalized upper-cases the direction. An empty direction stays empty.
func (o Direction) normalized() Direction {
	return Direction(strings.ToUpper(strings.TrimSpace(string(o))))
}

type (
	// Orderings is an ordered list of sort entries. The order of the list
	// defines tie-break precedence in the result set.
	Orderings []OrderBy
	OrderBy   struct {
		Column    string
		Direction Direction
	}

	ColumnAlias = string

	// ColumnMapping maps external column aliases to fully qualified column names.
	// Use it when bare column names could cause an "ambiguous column name" error.
	// Key is an external alias, value is an internal column name.
	ColumnMapping = map[ColumnAlias]string
)

var _availableColumnNameSymbols = append([]rune("_.'`\""), lo.AlphanumericCharset...)

func (o OrderBy) validate() error {
	if !o.Direction.Valid() {
		return fmt.Errorf("%w: direction '%s'", ErrInvalidOrdering, o.Direction)
	}

	// Guard against SQL injection by restricting allowed characters in column names.
	if o.Column == "" || !lo.Every(_availableColumnNameSymbols, []rune(o.Column)) {
		return fmt.Errorf("%w: column name contains forbidden symbols '%s'", ErrInvalidOrdering, o.Column)
	}

	return nil
}

// ToSQLSlice converts Orderings to a slice of strings in the form
// "<order_column> <order_direction>" suitable for SQL query builders.
//
// Example: for Orderings: [{"a", "ASC"}, {"b", "DESC"}] returns ["a ASC", "b DESC"].
func (o Orderings) ToSQLSlice() []string {
	ret := make([]string, 0, len(o))
	for _, ordering := range o {
		ret = append(ret, fmt.Sprintf("%s %s", ordering.Column, ordering.Direction))
	}

	return ret
}

// ToSQL converts Orderings to a single string
// "<order_column_1> <order_direction_1>, <order_column_2> <order_direction_2>"
// suitable for embedding into an SQL query.
// Example: for [{"a", "ASC"}, {"b", "DESC"}] returns "a ASC, b DESC".
func (o Orderings) ToSQL() string {
	return strings.Join(o.ToSQLSlice(), ", ")
}

// Apply applies the ordering to a gorm query as is.
func (o Orderings) Apply(db *gorm.DB) *gorm.DB {
	if len(o) == 0 {
		return db
	}

	return db.Order(o.ToSQL())
}

// ApplyAliased appends the orderings to the query after dropping entries with
// an empty direction and qualifying columns with alias. Directions are
// case-insensitive. Duplicate columns are kept as they are.
//
// Example:
//
//	Orderings{{"name", "asc"}, {"age", ""}}.ApplyAliased(db, "u")
//	// ORDER BY u.name ASC
func (o Orderings) ApplyAliased(db *gorm.DB, alias string) (*gorm.DB, error) {
	return o.applyAliased(db, alias, QualifyAliasDot)
}

func (o Orderings) applyAliased(db *gorm.DB, alias string, mode QualifyMode) (*gorm.DB, error) {
	qualified := o.qualified(alias, mode)

	err := qualified.validate()
	if err != nil {
		return nil, fmt.Errorf("cannot apply sorting: %w", err)
	}

	return qualified.Apply(db), nil
}

func (o Orderings) qualified(alias string, mode QualifyMode) Orderings {
	ret := make(Orderings, 0, len(o))
	for _, ordering := range o {
		direction := ordering.Direction.normalized()
		if direction == "" {
			continue
		}

		ret = append(ret, OrderBy{
			Column:    mode.Qualify(alias, ordering.Column),
			Direction: direction,
		})
	}

	return ret
}

func (o Orderings) validate() error {
	var err error
	for _, ordering := range o {
		err = ordering.validate()
		if err != nil {
			return err
		}
	}

	return nil
}

// ParseSort builds Orderings from a list of strings in the format
// "column asc|desc". Column aliases are resolved via ColumnMapping.
// Returns an error if an alias is not found in the mapping.
func ParseSort(stringsOrderings []string, columnMapping ColumnMapping) (Orderings, error) {
	ret := make([]OrderBy, 0, len(stringsOrderings))
	aliases := lo.Keys(columnMapping)

	for _, stringOrdering := range stringsOrderings {
		cutStringOrdering := strings.Fields(stringOrdering)
		if len(cutStringOrdering) != 2 {
			return nil, fmt.Errorf("%w: invalid ordering string format '%s'", ErrInvalidOrdering, stringOrdering)
		}

		columnAlias := cutStringOrdering[0]
		direction := Direction(cutStringOrdering[1]).normalized()
		columnName := columnMapping[columnAlias]
		if columnName == "" {
			return nil, fmt.Errorf("%w: invalid column alias. closest: '%s'", ErrInvalidOrdering, closestAlias(columnAlias, aliases))
		}

		ret = append(ret, OrderBy{
			Column:    columnName,
			Direction: direction,
		})
	}

	return ret, nil
}

func closestAlias(input ColumnAlias, dataSet []ColumnAlias) ColumnAlias {
	minDist := math.MaxInt
	closest := ""

	for _, dataSetAlias := range dataSet {
		dist := levenshtein([]rune(dataSetAlias), []rune(input))
		if dist < minDist || (dist == minDist && dataSetAlias < closest) {
			minDist = dist
			closest = dataSetAlias
		}
	}

	return closest
}
