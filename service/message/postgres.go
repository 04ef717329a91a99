package message

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/adamsinnett/omorgan-events/platform/flake"
	"github.com/adamsinnett/omorgan-events/platform/pg"
)

const (
	pgInsertMessage = `
		INSERT INTO %s.messages(
			content, event_id, id, owner, created_at
		) VALUES(
			$1, $2, $3, $4, $5
		)`

	pgListMessages = `
		SELECT
			content, event_id, id, owner, created_at
		FROM
			%s.messages
		%s`

	pgClauseBefore   = `created_at < ?`
	pgClauseEventIDs = `event_id IN (?)`
	pgClauseIDs      = `id IN (?)`
	pgClauseOwners   = `owner IN (?)`

	pgOrderCreatedAt = `ORDER BY created_at DESC`

	pgCreateSchema = `CREATE SCHEMA IF NOT EXISTS %s`
	pgCreateTable  = `CREATE TABLE IF NOT EXISTS %s.messages(
		content TEXT NOT NULL,
		event_id BIGINT NOT NULL,
		id BIGINT PRIMARY KEY,
		owner TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`
	pgDropTable = `DROP TABLE IF EXISTS %s.messages`

	pgIndexEvent = `CREATE INDEX %s ON %s.messages (event_id)`
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

func (s *pgService) Put(ns string, m *Message) (*Message, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	if m.ID != 0 {
		return nil, wrapError(ErrInvalidMessage, "messages are immutable")
	}

	return s.insert(ns, m)
}

func (s *pgService) Query(ns string, opts QueryOptions) (List, error) {
	where, params, err := convertOpts(opts)
	if err != nil {
		return nil, err
	}

	return s.listMessages(ns, where, params...)
}

func (s *pgService) Setup(ns string) error {
	qs := []string{
		fmt.Sprintf(pgCreateSchema, ns),
		fmt.Sprintf(pgCreateTable, ns),
		pg.GuardIndex(ns, "message_event", pgIndexEvent),
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

func (s *pgService) insert(ns string, m *Message) (*Message, error) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	ts, err := time.Parse(pg.TimeFormat, m.CreatedAt.UTC().Format(pg.TimeFormat))
	if err != nil {
		return nil, err
	}

	m.CreatedAt = ts

	id, err := flake.NextID(flakeNamespace(ns))
	if err != nil {
		return nil, err
	}

	m.ID = id

	var (
		params = []interface{}{
			m.Content,
			m.EventID,
			m.ID,
			m.Owner,
			m.CreatedAt,
		}
		query = fmt.Sprintf(pgInsertMessage, ns)
	)

	_, err = s.db.Exec(query, params...)
	if err != nil && pg.IsRelationNotFound(pg.WrapError(err)) {
		if err := s.Setup(ns); err != nil {
			return nil, err
		}

		_, err = s.db.Exec(query, params...)
	}

	return m, err
}

func (s *pgService) listMessages(
	ns, where string,
	params ...interface{},
) (List, error) {
	query := fmt.Sprintf(pgListMessages, ns, where)

	rows, err := s.db.Query(query, params...)
	if err != nil {
		if pg.IsRelationNotFound(pg.WrapError(err)) {
			if err := s.Setup(ns); err != nil {
				return nil, err
			}

			return s.listMessages(ns, where, params...)
		}

		return nil, err
	}
	defer rows.Close()

	ms := List{}

	for rows.Next() {
		m := &Message{}

		err := rows.Scan(
			&m.Content,
			&m.EventID,
			&m.ID,
			&m.Owner,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		m.CreatedAt = m.CreatedAt.UTC()

		ms = append(ms, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ms, nil
}

func convertOpts(opts QueryOptions) (string, []interface{}, error) {
	var (
		clauses = []string{}
		params  = []interface{}{}
	)

	if !opts.Before.IsZero() {
		clauses = append(clauses, pgClauseBefore)
		params = append(params, opts.Before.UTC().Format(pg.TimeFormat))
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
