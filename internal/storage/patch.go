package storage

import (
	"errors"
	"strings"
)

// ErrEmptyPatch is returned when an update names no field to change.
var ErrEmptyPatch = errors.New("no fields to update")

// updateBuilder assembles a parameterised UPDATE from (column, value) pairs.
// Column names come from code; values are always bound.
type updateBuilder struct {
	table string
	sets  []string
	args  []any
	// fields counts caller-supplied columns, excluding bookkeeping ones.
	fields int
}

func newUpdateBuilder(table string) *updateBuilder {
	return &updateBuilder{table: table}
}

// Set assigns a bound value to column.
func (b *updateBuilder) Set(column string, value any) *updateBuilder {
	b.sets = append(b.sets, quoteIdent(column)+" = ?")
	b.args = append(b.args, value)
	b.fields++
	return b
}

// SetExpr assigns an expression with its own placeholders. It does not
// count as a caller-supplied field.
func (b *updateBuilder) SetExpr(column, expr string, args ...any) *updateBuilder {
	b.sets = append(b.sets, quoteIdent(column)+" = "+expr)
	b.args = append(b.args, args...)
	return b
}

// Empty reports whether no caller-supplied column was set.
func (b *updateBuilder) Empty() bool {
	return b.fields == 0
}

// Build returns the statement and its arguments.
func (b *updateBuilder) Build(where string, whereArgs ...any) (string, []any) {
	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(quoteIdent(b.table))
	sb.WriteString(" SET ")
	sb.WriteString(strings.Join(b.sets, ", "))
	sb.WriteString(" WHERE ")
	sb.WriteString(where)

	args := make([]any, 0, len(b.args)+len(whereArgs))
	args = append(args, b.args...)
	args = append(args, whereArgs...)
	return sb.String(), args
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
