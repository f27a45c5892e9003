package domain

import "fmt"

// NotFoundError reports a resource that does not exist: the database file,
// a catalog entry, or an unknown asset. For the database file, Name carries
// every absolute path that was checked so the user can see exactly where
// the tool looked.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Name)
}

// QueryError wraps a failure from the SQL engine. The engine's message is
// preserved unchanged in Err so it can be surfaced to the user as-is.
type QueryError struct {
	SQL string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query failed: %v", e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// InvalidDataError reports input that would produce numeric artifacts,
// such as a series whose rebasing base value is zero or negative.
type InvalidDataError struct {
	Asset  string
	Reason string
}

func (e *InvalidDataError) Error() string {
	return fmt.Sprintf("invalid data for %s: %s", e.Asset, e.Reason)
}

// InsufficientDataError reports that fewer rows were available than a
// selection asked for. Callers decide whether to fail or degrade to the
// rows that do exist.
type InsufficientDataError struct {
	Want int
	Have int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: want %d rows, have %d", e.Want, e.Have)
}
