package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Postgres error codes the API maps to client errors instead of 500s.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation
}

// IsForeignKeyViolation reports whether err is a Postgres foreign-key
// violation.
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgForeignKeyViolation
}

// patchBuilder accumulates allow-listed (column, value) pairs for a
// parameterized partial UPDATE.
type patchBuilder struct {
	assignments []string
	args        []interface{}
}

func (p *patchBuilder) set(column string, value interface{}) {
	p.args = append(p.args, value)
	p.assignments = append(p.assignments, fmt.Sprintf("%s = $%d", column, len(p.args)))
}

func (p *patchBuilder) empty() bool {
	return len(p.assignments) == 0
}
