package gocriteria

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// QualifyMode selects how a name is recognised as already carrying the alias.
type QualifyMode string

const (
	// QualifyAliasDot treats a name as qualified only if it starts with
	// "<alias>.". The default.
	QualifyAliasDot QualifyMode = "alias_dot"
	// QualifyAliasPrefix treats any name starting with the alias as qualified,
	// so "username" stays bare under alias "u". This is the legacy heuristic.
	QualifyAliasPrefix QualifyMode = "alias_prefix"
)

// Valid reports whether m is a known mode. The zero value means QualifyAliasDot.
func (m QualifyMode) Valid() bool {
	return m == "" || m == QualifyAliasDot || m == QualifyAliasPrefix
}

// Qualify prefixes name with alias unless the mode considers it qualified.
func (m QualifyMode) Qualify(alias, name string) string {
	prefix := lo.Ternary(m == QualifyAliasPrefix, alias, alias+".")
	if alias == "" || strings.HasPrefix(name, prefix) {
		return name
	}

	return alias + "." + name
}

// Qualify prefixes a property name with the query alias.
//
// A name that already starts with "<alias>." is returned as-is, so the call is
// idempotent. The check is a plain prefix match: a property whose own name
// begins with "<alias>." is taken as already qualified.
//
// Example:
//
//	Qualify("u", "age")   // "u.age"
//	Qualify("u", "u.age") // "u.age"
func Qualify(alias, name string) string {
	return QualifyAliasDot.Qualify(alias, name)
}

var _availablePropertySymbols = append([]rune("_."), lo.AlphanumericCharset...)

// validateProperty rejects property names that are not plain dotted paths.
// Property names end up verbatim in the WHERE clause.
func validateProperty(property string) error {
	if property == "" || !lo.Every(_availablePropertySymbols, []rune(property)) {
		return fmt.Errorf("%w: '%s'", ErrInvalidProperty, property)
	}

	return nil
}

// parameterName derives a named-parameter identifier from a property name.
// Dots are not allowed in GORM named parameters.
func parameterName(property string) string {
	return strings.ReplaceAll(property, ".", "_")
}
