package invitation

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/adamsinnett/omorgan-events/platform/flake"
	"github.com/adamsinnett/omorgan-events/platform/pg"
)

const (
	pgInsertInvitation = `
		INSERT INTO %s.invitations(
			active, event_id, id, redeemed_by, token, created_at, updated_at
		) VALUES(
			$1, $2, $3, $4, $5, $6, $7
		)`
	pgUpdateInvitation = `
		UPDATE
			%s.invitations
		SET
			active = $2,
			redeemed_by = $3,
			updated_at = $4
		WHERE
			id = $1`

	pgListInvitations = `
		SELECT
			active, event_id, id, redeemed_by, token, created_at, updated_at
		FROM
			%s.invitations
		%s`

	pgClauseActive   = `active = ?`
	pgClauseEventIDs = `event_id IN (?)`
	pgClauseIDs      = `id IN (?)`
	pgClauseTokens   = `token IN (?)`

	pgOrderCreatedAt = `ORDER BY created_at DESC`

	pgCreateSchema = `CREATE SCHEMA IF NOT EXISTS %s`
	pgCreateTable  = `CREATE TABLE IF NOT EXISTS %s.invitations(
		active BOOL DEFAULT true,
		event_id BIGINT NOT NULL,
		id BIGINT PRIMARY KEY,
		redeemed_by BIGINT NOT NULL,
		token TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`
	pgDropTable = `DROP TABLE IF EXISTS %s.invitations`

	pgIndexEvent = `CREATE INDEX %s ON %s.invitations (event_id)`
	pgIndexToken = `CREATE UNIQUE INDEX %s ON %s.invitations (token)`
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

func (s *pgService) Put(ns string, i *Invitation) (*Invitation, error) {
	if err := i.Validate(); err != nil {
		return nil, err
	}

	if i.ID == 0 {
		return s.insert(ns, i)
	}

	return s.update(ns, i)
}

func (s *pgService) Query(ns string, opts QueryOptions) (List, error) {
	where, params, err := convertOpts(opts)
	if err != nil {
		return nil, err
	}

	return s.listInvitations(ns, where, params...)
}

func (s *pgService) Setup(ns string) error {
	qs := []string{
		fmt.Sprintf(pgCreateSchema, ns),
		fmt.Sprintf(pgCreateTable, ns),
		pg.GuardIndex(ns, "invitation_event", pgIndexEvent),
		pg.GuardIndex(ns, "invitation_token", pgIndexToken),
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

func (s *pgService) insert(ns string, i *Invitation) (*Invitation, error) {
	if i.CreatedAt.IsZero() {
		i.CreatedAt = time.Now().UTC()
	}

	ts, err := time.Parse(pg.TimeFormat, i.CreatedAt.UTC().Format(pg.TimeFormat))
	if err != nil {
		return nil, err
	}

	i.CreatedAt = ts
	i.UpdatedAt = ts

	id, err := flake.NextID(flakeNamespace(ns))
	if err != nil {
		return nil, err
	}

	i.ID = id

	var (
		params = []interface{}{
			i.Active,
			i.EventID,
			i.ID,
			i.RedeemedBy,
			i.Token,
			i.CreatedAt,
			i.UpdatedAt,
		}
		query = fmt.Sprintf(pgInsertInvitation, ns)
	)

	_, err = s.db.Exec(query, params...)
	if err != nil {
		if pg.IsRelationNotFound(pg.WrapError(err)) {
			if err := s.Setup(ns); err != nil {
				return nil, err
			}

			_, err = s.db.Exec(query, params...)
		}

		if err != nil {
			if pg.IsUniqueViolation(pg.WrapError(err)) {
				return nil, wrapError(ErrTokenCollision, "token '%s'", i.Token)
			}

			return nil, err
		}
	}

	return i, nil
}

func (s *pgService) listInvitations(
	ns, where string,
	params ...interface{},
) (List, error) {
	query := fmt.Sprintf(pgListInvitations, ns, where)

	rows, err := s.db.Query(query, params...)
	if err != nil {
		if pg.IsRelationNotFound(pg.WrapError(err)) {
			if err := s.Setup(ns); err != nil {
				return nil, err
			}

			return s.listInvitations(ns, where, params...)
		}

		return nil, err
	}
	defer rows.Close()

	is := List{}

	for rows.Next() {
		i := &Invitation{}

		err := rows.Scan(
			&i.Active,
			&i.EventID,
			&i.ID,
			&i.RedeemedBy,
			&i.Token,
			&i.CreatedAt,
			&i.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		i.CreatedAt = i.CreatedAt.UTC()
		i.UpdatedAt = i.UpdatedAt.UTC()

		is = append(is, i)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return is, nil
}

func (s *pgService) update(ns string, i *Invitation) (*Invitation, error) {
	now, err := time.Parse(pg.TimeFormat, time.Now().UTC().Format(pg.TimeFormat))
	if err != nil {
		return nil, err
	}

	i.UpdatedAt = now

	var (
		params = []interface{}{
			i.ID,
			i.Active,
			i.RedeemedBy,
			i.UpdatedAt,
		}
		query = fmt.Sprintf(pgUpdateInvitation, ns)
	)

	_, err = s.db.Exec(query, params...)
	if err != nil && pg.IsRelationNotFound(pg.WrapError(err)) {
		if err := s.Setup(ns); err != nil {
			return nil, err
		}

		_, err = s.db.Exec(query, params...)
	}

	return i, err
}

func convertOpts(opts QueryOptions) (string, []interface{}, error) {
	var (
		clauses = []string{}
		params  = []interface{}{}
	)

	if opts.Active != nil {
		clause, _, err := sqlx.In(pgClauseActive, []interface{}{*opts.Active})
		if err != nil {
			return "", nil, err
		}

		clauses = append(clauses, clause)
		params = append(params, *opts.Active)
	}

	if len(opts.EventIDs) > 0 {
		ps := []interface{}{}

		for _, id := range opts.EventIDs {
			ps = append(ps, id)
		}

		clause, _, err := sqlx.In(pgClauseEventIDs, ps)
		if err != nil {
			return "", nil, err
		}

		clauses = append(clauses, clause)
		params = append(params, ps...)
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

	if len(opts.Tokens) > 0 {
		ps := []interface{}{}

		for _, token := range opts.Tokens {
			ps = append(ps, token)
		}

		clause, _, err := sqlx.In(pgClauseTokens, ps)
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
