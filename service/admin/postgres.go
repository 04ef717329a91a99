package admin

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/adamsinnett/omorgan-events/platform/flake"
	"github.com/adamsinnett/omorgan-events/platform/pg"
)

const (
	pgInsertAdmin = `
		INSERT INTO %s.admins(
			email, enabled, id, password_hash, last_login_at, created_at, updated_at
		) VALUES(
			$1, $2, $3, $4, $5, $6, $7
		)`
	pgUpdateAdmin = `
		UPDATE
			%s.admins
		SET
			email = $2,
			enabled = $3,
			password_hash = $4,
			last_login_at = $5,
			updated_at = $6
		WHERE
			id = $1`
	pgUpdateLastLogin = `
		UPDATE
			%s.admins
		SET
			last_login_at = $2
		WHERE
			id = $1`

	pgListAdmins = `
		SELECT
			email, enabled, id, password_hash, last_login_at, created_at, updated_at
		FROM
			%s.admins
		%s`

	pgClauseEmails  = `email IN (?)`
	pgClauseEnabled = `enabled = ?`
	pgClauseIDs     = `id IN (?)`

	pgOrderCreatedAt = `ORDER BY created_at DESC`

	pgCreateSchema = `CREATE SCHEMA IF NOT EXISTS %s`
	pgCreateTable  = `CREATE TABLE IF NOT EXISTS %s.admins(
		email TEXT NOT NULL UNIQUE,
		enabled BOOL DEFAULT true,
		id BIGINT PRIMARY KEY,
		password_hash TEXT NOT NULL,
		last_login_at TIMESTAMP NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`
	pgDropTable = `DROP TABLE IF EXISTS %s.admins`
)

type pgService struct {
	db *sqlx.DB
}

// PostgresService returns a Postgres based Service implementation.
func PostgresService(db *sqlx.DB) Service {
	return &pgService{
		db: db,
	}
}

func (s *pgService) Put(ns string, a *Admin) (*Admin, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	if a.ID == 0 {
		return s.insert(ns, a)
	}

	return s.update(ns, a)
}

func (s *pgService) PutLastLogin(ns string, adminID uint64, ts time.Time) error {
	query := fmt.Sprintf(pgUpdateLastLogin, ns)

	_, err := s.db.Exec(query, adminID, ts.UTC())
	if err != nil && pg.IsRelationNotFound(pg.WrapError(err)) {
		if err := s.Setup(ns); err != nil {
			return err
		}

		_, err = s.db.Exec(query, adminID, ts.UTC())
	}

	return err
}

func (s *pgService) Query(ns string, opts QueryOptions) (List, error) {
	where, params, err := convertOpts(opts)
	if err != nil {
		return nil, err
	}

	return s.listAdmins(ns, where, params...)
}

func (s *pgService) Setup(ns string) error {
	qs := []string{
		fmt.Sprintf(pgCreateSchema, ns),
		fmt.Sprintf(pgCreateTable, ns),
	}

	for _, q := range qs {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("setup '%s': %s", q, err)
		}
	}

	return nil
}

func (s *pgService) Teardown(ns string) error {
	qs := []string{
		fmt.Sprintf(pgDropTable, ns),
	}

	for _, q := range qs {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("teardown '%s': %s", q, err)
		}
	}

	return nil
}

func (s *pgService) insert(ns string, a *Admin) (*Admin, error) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	ts, err := time.Parse(pg.TimeFormat, a.CreatedAt.UTC().Format(pg.TimeFormat))
	if err != nil {
		return nil, err
	}

	a.CreatedAt = ts
	a.UpdatedAt = ts

	id, err := flake.NextID(flakeNamespace(ns))
	if err != nil {
		return nil, err
	}

	a.ID = id

	var (
		params = []interface{}{
			a.Email,
			a.Enabled,
			a.ID,
			a.PasswordHash,
			a.LastLoginAt,
			a.CreatedAt,
			a.UpdatedAt,
		}
		query = fmt.Sprintf(pgInsertAdmin, ns)
	)

	_, err = s.db.Exec(query, params...)
	if err != nil && pg.IsRelationNotFound(pg.WrapError(err)) {
		if err := s.Setup(ns); err != nil {
			return nil, err
		}

		_, err = s.db.Exec(query, params...)
	}

	return a, err
}

func (s *pgService) listAdmins(
	ns, where string,
	params ...interface{},
) (List, error) {
	query := fmt.Sprintf(pgListAdmins, ns, where)

	rows, err := s.db.Query(query, params...)
	if err != nil {
		if pg.IsRelationNotFound(pg.WrapError(err)) {
			if err := s.Setup(ns); err != nil {
				return nil, err
			}

			return s.listAdmins(ns, where, params...)
		}

		return nil, err
	}
	defer rows.Close()

	as := List{}

	for rows.Next() {
		a := &Admin{}

		err := rows.Scan(
			&a.Email,
			&a.Enabled,
			&a.ID,
			&a.PasswordHash,
			&a.LastLoginAt,
			&a.CreatedAt,
			&a.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		a.LastLoginAt = a.LastLoginAt.UTC()
		a.CreatedAt = a.CreatedAt.UTC()
		a.UpdatedAt = a.UpdatedAt.UTC()

		as = append(as, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return as, nil
}

func (s *pgService) update(ns string, a *Admin) (*Admin, error) {
	now, err := time.Parse(pg.TimeFormat, time.Now().UTC().Format(pg.TimeFormat))
	if err != nil {
		return nil, err
	}

	a.UpdatedAt = now

	var (
		params = []interface{}{
			a.ID,
			a.Email,
			a.Enabled,
			a.PasswordHash,
			a.LastLoginAt,
			a.UpdatedAt,
		}
		query = fmt.Sprintf(pgUpdateAdmin, ns)
	)

	_, err = s.db.Exec(query, params...)
	if err != nil && pg.IsRelationNotFound(pg.WrapError(err)) {
		if err := s.Setup(ns); err != nil {
			return nil, err
		}

		_, err = s.db.Exec(query, params...)
	}

	return a, err
}

func convertOpts(opts QueryOptions) (string, []interface{}, error) {
	var (
		clauses = []string{}
		params  = []interface{}{}
	)

	if len(opts.Emails) > 0 {
		ps := []interface{}{}

		for _, email := range opts.Emails {
			ps = append(ps, email)
		}

		clause, _, err := sqlx.In(pgClauseEmails, ps)
		if err != nil {
			return "", nil, err
		}

		clauses = append(clauses, clause)
		params = append(params, ps...)
	}

	if opts.Enabled != nil {
		clause, _, err := sqlx.In(pgClauseEnabled, []interface{}{*opts.Enabled})
		if err != nil {
			return "", nil, err
		}

		clauses = append(clauses, clause)
		params = append(params, *opts.Enabled)
	}

	if len(opts.IDs) > 0 {
		ps := []interface{}{}

		for _, id := range opts.IDs {
			ps = append(ps, id)
		}

		clause, _, err := sqlx.In(pgClauseIDs, ps)
		if err != nil {
			return "", nil, err
		}

		clauses = append(clauses, clause)
		params = append(params, ps...)
	}

	where := ""

	if len(clauses) > 0 {
		where = sqlx.Rebind(sqlx.DOLLAR, pg.ClausesToWhere(clauses...))
	}

	where = fmt.Sprintf("%s\n%s", where, pgOrderCreatedAt)

	if opts.Limit > 0 {
		where = fmt.Sprintf("%s\nLIMIT %d", where, opts.Limit)
	}

	return where, params, nil
}
