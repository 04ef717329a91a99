package pg

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// MetaNamespace identifies the schema used to bundle all tables of a single
// deployment.
const MetaNamespace = "omorgan"

// TimeFormat can be used to extract and store time in a reproducible way.
const TimeFormat = "2006-01-02 15:04:05.000000 UTC"

const URLTest = "postgres://%s@127.0.0.1:5432/omorgan_test?sslmode=disable&connect_timeout=5"

const (
	fmtClause = "\nAND "
	fmtWHERE  = "WHERE\n%s"
)

// ErrRelationNotFound is returned as equivalent to the Postgres error.
var ErrRelationNotFound = errors.New("relation not found")

// ErrUniqueViolation is returned when an insert trips a unique constraint.
var ErrUniqueViolation = errors.New("unique violation")

// To ensure idempotence we want to create the index only if it doesn't
// exist. We fallback to a conditional create taken from:
// http://dba.stackexchange.com/a/35626.
const guardIndex = `DO $$
		BEGIN
		IF NOT EXISTS (
			SELECT 1 FROM pg_indexes WHERE schemaname = '%s' AND indexname = '%s'
		) THEN
		%s;
		END IF;
		END$$;`

// ClausesToWhere transforms a list of SQL clauses into a WHERE statement.
func ClausesToWhere(clauses ...string) string {
	return fmt.Sprintf(fmtWHERE, strings.Join(clauses, fmtClause))
}

// GuardIndex wraps an index creation query with a condition to prevent conflicts.
func GuardIndex(namespace, index, query string, args ...interface{}) string {
	ps := []interface{}{index, namespace}
	ps = append(ps, args...)

	return fmt.Sprintf(
		guardIndex,
		namespace,
		index,
		fmt.Sprintf(query, ps...),
	)
}

// IsRelationNotFound indicates if err is ErrRelationNotFound.
func IsRelationNotFound(err error) bool {
	return err == ErrRelationNotFound
}

// IsUniqueViolation indicates if err is ErrUniqueViolation.
func IsUniqueViolation(err error) bool {
	return err == ErrUniqueViolation
}

// WrapError translates well-known Postgres error codes into package
// sentinels, otherwise returns the original error.
func WrapError(err error) error {
	if err, ok := err.(*pq.Error); ok {
		switch err.Code {
		case "42P01":
			return ErrRelationNotFound
		case "23505":
			return ErrUniqueViolation
		}
	}

	return err
}
