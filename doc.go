// Package gocriteria translates loosely-typed filtering and sorting input into
// GORM query clauses and wraps the resulting query into a page-oriented pager.
//
// Overview
//
// gocriteria offers two filtering modes:
//   - Equalities: an ordered property -> value mapping with implicit equality
//     semantics (nil -> IS NULL, slice -> IN, "" -> skipped).
//   - Criteria: an ordered list of (property, operator, value) records with
//     explicit comparison operators (eq, gt, lt, gte, lte, like, between).
//
// Key concepts
//   - Qualify: prefixes bare property names with the query alias.
//   - Orderings: ordered (column, direction) pairs appended as ORDER BY.
//   - Pager: page-sliced access over either a GORM query (QueryAdapter) or a
//     fixed in-memory slice (SliceAdapter).
//   - Repository: ties it together for a GORM model (CreatePaginator,
//     CreateAdvancedPaginator, CreateOperatorPaginator, CreateArrayPaginator).
//
// See examples/ for runnable programs.
package gocriteria
