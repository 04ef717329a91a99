package reaction

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/adamsinnett/omorgan-events/platform/flake"
	"github.com/adamsinnett/omorgan-events/platform/pg"
)

const (
	pgInsertReaction = `
		INSERT INTO %s.reactions(
			deleted, id, message_id, owner, type, created_at, updated_at
		) VALUES(
			$1, $2, $3, $4, $5, $6, $7
		)`
	pgUpdateReaction = `
		UPDATE
			%s.reactions
		SET
			deleted = $2,
			type = $3,
			updated_at = $4
		WHERE
			id = $1`

	pgListReactions = `
		SELECT
			deleted, id, message_id, owner, type, created_at, updated_at
		FROM
			%s.reactions
		%s`

	pgClauseDeleted    = `deleted = ?`
	pgClauseIDs        = `id IN (?)`
	pgClauseMessageIDs = `message_id IN (?)`
	pgClauseOwners     = `owner IN (?)`
	pgClauseTypes      = `type IN (?)`

	pgOrderUpdatedAt = `ORDER BY updated_at DESC`

	pgCreateSchema = `CREATE SCHEMA IF NOT EXISTS %s`
	pgCreateTable  = `CREATE TABLE IF NOT EXISTS %s.reactions(
		deleted BOOL DEFAULT false,
		id BIGINT PRIMARY KEY,
		message_id BIGINT NOT NULL,
		owner TEXT NOT NULL,
		type TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`
	pgDropTable = `DROP TABLE IF EXISTS %s.reactions`

	pgIndexMessage      = `CREATE INDEX %s ON %s.reactions (message_id)`
	pgIndexMessageOwner = `CREATE INDEX %s ON %s.reactions (message_id, owner)`
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

func (s *pgService) Put(ns string, r *Reaction) (*Reaction, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	if r.ID == 0 {
		return s.insert(ns, r)
	}

	return s.update(ns, r)
}

func (s *pgService) Query(ns string, opts QueryOptions) (List, error) {
	where, params, err := convertOpts(opts)
	if err != nil {
		return nil, err
	}

	return s.listReactions(ns, where, params...)
}

func (s *pgService) Setup(ns string) error {
	qs := []string{
		fmt.Sprintf(pgCreateSchema, ns),
		fmt.Sprintf(pgCreateTable, ns),
		pg.GuardIndex(ns, "reaction_message", pgIndexMessage),
		pg.GuardIndex(ns, "reaction_message_owner", pgIndexMessageOwner),
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

func (s *pgService) insert(ns string, r *Reaction) (*Reaction, error) {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	ts, err := time.Parse(pg.TimeFormat, r.CreatedAt.UTC().Format(pg.TimeFormat))
	if err != nil {
		return nil, err
	}

	r.CreatedAt = ts
	r.UpdatedAt = ts

	id, err := flake.NextID(flakeNamespace(ns))
	if err != nil {
		return nil, err
	}

	r.ID = id

	var (
		params = []interface{}{
			r.Deleted,
			r.ID,
			r.MessageID,
			r.Owner,
			r.Type,
			r.CreatedAt,
			r.UpdatedAt,
		}
		query = fmt.Sprintf(pgInsertReaction, ns)
	)

	_, err = s.db.Exec(query, params...)
	if err != nil && pg.IsRelationNotFound(pg.WrapError(err)) {
		if err := s.Setup(ns); err != nil {
			return nil, err
		}

		_, err = s.db.Exec(query, params...)
	}

	return r, err
}

func (s *pgService) listReactions(
	ns, where string,
	params ...interface{},
) (List, error) {
	query := fmt.Sprintf(pgListReactions, ns, where)

	rows, err := s.db.Query(query, params...)
	if err != nil {
		if pg.IsRelationNotFound(pg.WrapError(err)) {
			if err := s.Setup(ns); err != nil {
				return nil, err
			}

			return s.listReactions(ns, where, params...)
		}

		return nil, err
	}
	defer rows.Close()

	rs := List{}

	for rows.Next() {
		r := &Reaction{}

		err := rows.Scan(
			&r.Deleted,
			&r.ID,
			&r.MessageID,
			&r.Owner,
			&r.Type,
			&r.CreatedAt,
			&r.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		r.CreatedAt = r.CreatedAt.UTC()
		r.UpdatedAt = r.UpdatedAt.UTC()

		rs = append(rs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rs, nil
}

func (s *pgService) update(ns string, r *Reaction) (*Reaction, error) {
	now, err := time.Parse(pg.TimeFormat, time.Now().UTC().Format(pg.TimeFormat))
	if err != nil {
		return nil, err
	}

	r.UpdatedAt = now

	var (
		params = []interface{}{
			r.ID,
			r.Deleted,
			r.Type,
			r.UpdatedAt,
		}
		query = fmt.Sprintf(pgUpdateReaction, ns)
	)

	_, err = s.db.Exec(query, params...)
	if err != nil && pg.IsRelationNotFound(pg.WrapError(err)) {
		if err := s.Setup(ns); err != nil {
			return nil, err
		}

		_, err = s.db.Exec(query, params...)
	}

	return r, err
}

func convertOpts(opts QueryOptions) (string, []interface{}, error) {
	var (
		clauses = []string{}
		params  = []interface{}{}
	)

	if opts.Deleted != nil {
		clause, _, err := sqlx.In(pgClauseDeleted, []interface{}{*opts.Deleted})
		if err != nil {
			return "", nil, err
		}

		clauses = append(clauses, clause)
		params = append(params, *opts.Deleted)
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

	if len(opts.MessageIDs) > 0 {
		ps := []interface{}{}

		for _, id := range opts.MessageIDs {
			ps = append(ps, id)
		}

		clause, _, err := sqlx.In(pgClauseMessageIDs, ps)
		if err != nil {
			return "", nil, err
		}

		clauses = append(clauses, clause)
		params = append(params, ps...)
	}

	if len(opts.Owners) > 0 {
		ps := []interface{}{}

		for _, owner := range opts.Owners {
			ps = append(ps, owner)
		}

		clause, _, err := sqlx.In(pgClauseOwners, ps)
		if err != nil {
			return "", nil, err
		}

		clauses = append(clauses, clause)
		params = append(params, ps...)
	}

	if len(opts.Types) > 0 {
		ps := []interface{}{}

		for _, t := range opts.Types {
			ps = append(ps, t)
		}

		clause, _, err := sqlx.In(pgClauseTypes, ps)
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

	where = fmt.Sprintf("%s\n%s", where, pgOrderUpdatedAt)

	if opts.Limit > 0 {
		where = fmt.Sprintf("%s\nLIMIT %d", where, opts.Limit)
	}

	return where, params, nil
}
