package repository

import (
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/soumyadeepdutta/tamperproof-users/internal/infrastructure/gateway"
)

// MaxParameters is the bind parameter limit of the PostgreSQL wire protocol.
const MaxParameters = 65535

// InsertBuilder renders one multi-row INSERT for a batch. Null values are
// written as the empty string in both renderings.
type InsertBuilder struct {
	Table     string
	Columns   []string
	MaxParams int
}

func NewInsertBuilder(table string, columns []string) InsertBuilder {
	return InsertBuilder{Table: table, Columns: columns, MaxParams: MaxParameters}
}

// Build prefers bind parameters and falls back to escaped literals when the
// batch would exceed MaxParams.
func (b InsertBuilder) Build(rows [][]*string) gateway.Statement {
	limit := b.MaxParams
	if limit <= 0 {
		limit = MaxParameters
	}
	if len(rows)*len(b.Columns) <= limit {
		return b.Parameterized(rows)
	}
	return b.Literal(rows)
}

func (b InsertBuilder) Parameterized(rows [][]*string) gateway.Statement {
	var sb strings.Builder
	b.writeHead(&sb)

	args := make([]any, 0, len(rows)*len(b.Columns))
	n := 1
	for i, row := range rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		for j := range b.Columns {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			n++
			args = append(args, valueAt(row, j))
		}
		sb.WriteByte(')')
	}

	return gateway.SQL(sb.String(), args...)
}

func (b InsertBuilder) Literal(rows [][]*string) gateway.Statement {
	var sb strings.Builder
	b.writeHead(&sb)

	for i, row := range rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		for j := range b.Columns {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(QuoteLiteral(valueAt(row, j)))
		}
		sb.WriteByte(')')
	}

	return gateway.SQL(sb.String())
}

func (b InsertBuilder) writeHead(sb *strings.Builder) {
	sb.WriteString("INSERT INTO ")
	sb.WriteString(pgx.Identifier{b.Table}.Sanitize())
	sb.WriteString(" (")
	for i, c := range b.Columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(pgx.Identifier{c}.Sanitize())
	}
	sb.WriteString(") VALUES ")
}

// QuoteLiteral renders s as a standard SQL string literal, doubling every
// embedded single quote.
func QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func valueAt(row []*string, i int) string {
	if i >= len(row) || row[i] == nil {
		return ""
	}
	return *row[i]
}
