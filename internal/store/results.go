package store

import (
	"context"
	"time"

	"crossmarket/internal/domain"
)

// Kind classifies the values of one result column. Kinds are discovered at
// execution time because the catalog queries have heterogeneous shapes.
type Kind string

const (
	KindText   Kind = "text"
	KindNumber Kind = "number"
	KindDate   Kind = "date"
)

// ResultSet holds the fully materialized tabular output of a query. Cell
// values are int64, float64, string, or nil for SQL NULL.
type ResultSet struct {
	Columns []string `json:"columns"`
	Kinds   []Kind   `json:"kinds"`
	Rows    [][]any  `json:"rows"`
}

// RunQuery executes an arbitrary read query and materializes every row.
// Failures from the SQL engine come back as QueryError with the engine
// message preserved unchanged.
func (s *Store) RunQuery(ctx context.Context, query string, args ...any) (*ResultSet, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &domain.QueryError{SQL: query, Err: err}
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, &domain.QueryError{SQL: query, Err: err}
	}

	rs := &ResultSet{Columns: cols, Rows: [][]any{}}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, &domain.QueryError{SQL: query, Err: err}
		}
		for i, v := range vals {
			switch vv := v.(type) {
			case []byte:
				vals[i] = string(vv)
			case time.Time:
				vals[i] = vv.Format(domain.DateLayout)
			}
		}
		rs.Rows = append(rs.Rows, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.QueryError{SQL: query, Err: err}
	}

	rs.Kinds = inferKinds(rs.Columns, rs.Rows)
	return rs, nil
}

// inferKinds classifies each column from the values present: all-numeric
// columns are numbers, strings that parse as YYYY-MM-DD are dates, mixed
// or NULL-only columns fall back to text.
func inferKinds(columns []string, rows [][]any) []Kind {
	kinds := make([]Kind, len(columns))
	for i := range columns {
		kinds[i] = classifyColumn(i, rows)
	}
	return kinds
}

func classifyColumn(col int, rows [][]any) Kind {
	var kind Kind
	for _, row := range rows {
		v := row[col]
		if v == nil {
			continue
		}
		var k Kind
		switch vv := v.(type) {
		case int64, float64:
			k = KindNumber
		case string:
			if isDate(vv) {
				k = KindDate
			} else {
				k = KindText
			}
		default:
			k = KindText
		}
		if kind == "" {
			kind = k
			continue
		}
		if kind != k {
			return KindText
		}
	}
	if kind == "" {
		return KindText
	}
	return kind
}

func isDate(s string) bool {
	_, err := time.Parse(domain.DateLayout, s)
	return err == nil
}
