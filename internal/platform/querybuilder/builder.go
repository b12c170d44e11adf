// Package querybuilder renders the few Postgres statements the record store
// issues. Values always travel as bind parameters ($1, $2, ...).
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxParams is the Postgres wire limit on bind parameters per statement.
const MaxParams = 65535

// sqlWriter accumulates statement text and numbers bind parameters in order.
type sqlWriter struct {
	buf  strings.Builder
	args []any
}

func (w *sqlWriter) bind(value any) {
	w.args = append(w.args, value)
	w.buf.WriteByte('$')
	w.buf.WriteString(strconv.Itoa(len(w.args)))
}

func (w *sqlWriter) finish() (string, []any, error) {
	if len(w.args) > MaxParams {
		return "", nil, fmt.Errorf("statement binds %d parameters, limit is %d", len(w.args), MaxParams)
	}
	return w.buf.String(), w.args, nil
}

type Condition interface {
	writeTo(w *sqlWriter)
}

type compareCondition struct {
	column string
	op     string
	value  any
}

func (c compareCondition) writeTo(w *sqlWriter) {
	w.buf.WriteString(c.column)
	w.buf.WriteString(c.op)
	w.bind(c.value)
}

func Eq(column string, value any) Condition {
	return compareCondition{column: column, op: " = ", value: value}
}

func NotEq(column string, value any) Condition {
	return compareCondition{column: column, op: " <> ", value: value}
}

type exprCondition struct {
	expr string
	args []any
}

// Expr is a raw condition; each '?' consumes one argument. Surplus '?' are
// written literally.
func Expr(expr string, args ...any) Condition {
	return exprCondition{expr: expr, args: args}
}

func (c exprCondition) writeTo(w *sqlWriter) {
	rest := c.expr
	for _, arg := range c.args {
		before, after, found := strings.Cut(rest, "?")
		if !found {
			break
		}
		w.buf.WriteString(before)
		w.bind(arg)
		rest = after
	}
	w.buf.WriteString(rest)
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Suffix appends trailing SQL such as ON CONFLICT or RETURNING.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("insert table is required")
	case len(b.columns) == 0:
		return "", nil, fmt.Errorf("insert columns are required")
	case len(b.rows) == 0:
		return "", nil, fmt.Errorf("insert values are required")
	}

	w := &sqlWriter{args: make([]any, 0, len(b.rows)*len(b.columns))}
	fmt.Fprintf(&w.buf, "INSERT INTO %s (%s) VALUES ", b.table, strings.Join(b.columns, ", "))
	for i, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", i, len(row), len(b.columns))
		}
		if i > 0 {
			w.buf.WriteString(", ")
		}
		w.buf.WriteByte('(')
		for j, value := range row {
			if j > 0 {
				w.buf.WriteString(", ")
			}
			w.bind(value)
		}
		w.buf.WriteByte(')')
	}
	if b.suffix != "" {
		w.buf.WriteByte(' ')
		w.buf.WriteString(b.suffix)
	}
	return w.finish()
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

// Where adds conditions joined with AND.
func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

// ToSQL refuses an unconditional delete.
func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("delete table is required")
	}
	if len(b.where) == 0 {
		return "", nil, fmt.Errorf("delete conditions are required")
	}

	w := &sqlWriter{}
	w.buf.WriteString("DELETE FROM ")
	w.buf.WriteString(b.table)
	w.buf.WriteString(" WHERE ")
	for i, c := range b.where {
		if i > 0 {
			w.buf.WriteString(" AND ")
		}
		c.writeTo(w)
	}
	return w.finish()
}
