// Package query builds parameterised PostgreSQL statements from projection maps.
package query

import (
	"strings"
)

type column struct {
	name string
	view string
}

// ProjectionMap binds view property names to the columns of one aliased table.
// Column order is preserved so SELECT and RETURNING lists match the scan order.
type ProjectionMap struct {
	schema string
	table  string
	alias  string
	cols   []column
	index  map[string]int
}

// NewProjectionMap creates a ProjectionMap for schema.table under alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema: schema,
		table:  table,
		alias:  alias,
		index:  make(map[string]int),
	}
}

// Project appends column under viewName.
func (p *ProjectionMap) Project(name, viewName string) *ProjectionMap {
	p.index[viewName] = len(p.cols)
	p.cols = append(p.cols, column{name: name, view: viewName})
	return p
}

func (p *ProjectionMap) Alias() string {
	return p.alias
}

// Table returns "schema.table alias".
func (p *ProjectionMap) Table() string {
	return p.schema + "." + p.table + " " + p.alias
}

// Has reports whether viewName is projected.
func (p *ProjectionMap) Has(viewName string) bool {
	_, ok := p.index[viewName]
	return ok
}

// Column returns the alias-qualified column for viewName, or viewName itself when unmapped.
func (p *ProjectionMap) Column(viewName string) string {
	i, ok := p.index[viewName]
	if !ok {
		return viewName
	}
	return p.qualify(p.cols[i])
}

// Columns returns the qualified select list.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.ColumnList(), ", ")
}

func (p *ProjectionMap) ColumnList() []string {
	list := make([]string, len(p.cols))
	for i, c := range p.cols {
		list[i] = p.qualify(c)
	}
	return list
}

// Returning renders a RETURNING clause with bare column names, for use in
// INSERT and UPDATE statements that target the unaliased table.
func (p *ProjectionMap) Returning() string {
	names := make([]string, len(p.cols))
	for i, c := range p.cols {
		names[i] = c.name
	}
	return "RETURNING " + strings.Join(names, ", ")
}

func (p *ProjectionMap) qualify(c column) string {
	return p.alias + "." + c.name
}
