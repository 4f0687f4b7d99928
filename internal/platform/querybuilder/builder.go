package querybuilder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/valyala/bytebufferpool"
)

// Condition renders one predicate of a WHERE clause with $n placeholders.
type Condition interface {
	render(w *writer)
}

type writer struct {
	buf  *bytebufferpool.ByteBuffer
	args []any
}

func newWriter() *writer {
	return &writer{buf: bytebufferpool.Get()}
}

func (w *writer) release() {
	bytebufferpool.Put(w.buf)
	w.buf = nil
}

func (w *writer) word(s string) {
	_, _ = w.buf.WriteString(s)
}

func (w *writer) bind(v any) {
	w.args = append(w.args, v)
	w.word("$")
	w.word(strconv.Itoa(len(w.args)))
}

type eq struct {
	column string
	value  any
}

func Eq(column string, value any) Condition { return eq{column: column, value: value} }

func (c eq) render(w *writer) {
	w.word(c.column)
	w.word(" = ")
	w.bind(c.value)
}

type in struct {
	column string
	values []any
}

// In renders column IN (...); an empty set renders a predicate that never matches.
func In(column string, values []any) Condition { return in{column: column, values: values} }

func (c in) render(w *writer) {
	if len(c.values) == 0 {
		w.word("1=0")
		return
	}
	w.word(c.column)
	w.word(" IN (")
	for i, v := range c.values {
		if i > 0 {
			w.word(", ")
		}
		w.bind(v)
	}
	w.word(")")
}

type isNull struct{ column string }

func IsNull(column string) Condition { return isNull{column: column} }

func (c isNull) render(w *writer) {
	w.word(c.column)
	w.word(" IS NULL")
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	w := newWriter()
	defer w.release()

	w.word("SELECT ")
	w.word(strings.Join(b.columns, ", "))
	w.word(" FROM ")
	w.word(b.table)
	if len(b.where) > 0 {
		w.word(" WHERE ")
		for i, c := range b.where {
			if i > 0 {
				w.word(" AND ")
			}
			c.render(w)
		}
	}
	if len(b.orderBy) > 0 {
		w.word(" ORDER BY ")
		w.word(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		w.word(" LIMIT ")
		w.word(strconv.Itoa(b.limit))
	}

	return w.buf.String(), w.args, nil
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

// Suffix is appended verbatim, e.g. an ON CONFLICT or RETURNING clause.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert values are required")
	}

	w := newWriter()
	defer w.release()

	w.word("INSERT INTO ")
	w.word(b.table)
	w.word(" (")
	w.word(strings.Join(b.columns, ", "))
	w.word(") VALUES ")
	for rowIdx, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", rowIdx, len(row), len(b.columns))
		}
		if rowIdx > 0 {
			w.word(", ")
		}
		w.word("(")
		for colIdx, value := range row {
			if colIdx > 0 {
				w.word(", ")
			}
			w.bind(value)
		}
		w.word(")")
	}
	if b.suffix != "" {
		w.word(" ")
		w.word(b.suffix)
	}

	return w.buf.String(), w.args, nil
}

// UpsertSuffix renders ON CONFLICT (conflict) DO UPDATE SET col = EXCLUDED.col, ...
func UpsertSuffix(conflict string, columns ...string) string {
	sets := make([]string, 0, len(columns))
	for _, col := range columns {
		sets = append(sets, col+" = EXCLUDED."+col)
	}
	return "ON CONFLICT (" + conflict + ") DO UPDATE SET " + strings.Join(sets, ", ")
}
