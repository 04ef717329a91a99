package event

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/adamsinnett/omorgan-events/platform/flake"
	"github.com/adamsinnett/omorgan-events/platform/pg"
)

const (
	pgInsertEvent = `
		INSERT INTO %s.events(
			description, end_time, id, is_private, location, max_attendees,
			owner_id, start_time, status, title, created_at, updated_at
		) VALUES(
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)`
	pgUpdateEvent = `
		UPDATE
			%s.events
		SET
			description = $2,
			end_time = $3,
			is_private = $4,
			location = $5,
			max_attendees = $6,
			start_time = $7,
			status = $8,
			title = $9,
			updated_at = $10
		WHERE
			id = $1`
	pgDeleteEvent = `DELETE FROM %s.events WHERE id = $1`

	pgListEvents = `
		SELECT
			description, end_time, id, is_private, location, max_attendees,
			owner_id, start_time, status, title, created_at, updated_at
		FROM
			%s.events
		%s`

	pgClauseIDs       = `id IN (?)`
	pgClauseIsPrivate = `is_private = ?`
	pgClauseOwnerIDs  = `owner_id IN (?)`
	pgClauseStatuses  = `status IN (?)`

	pgOrderCreatedAt = `ORDER BY created_at DESC`

	pgCreateSchema = `CREATE SCHEMA IF NOT EXISTS %s`
	pgCreateTable  = `CREATE TABLE IF NOT EXISTS %s.events(
		description TEXT NOT NULL,
		end_time TIMESTAMP NOT NULL,
		id BIGINT PRIMARY KEY,
		is_private BOOL DEFAULT false,
		location TEXT NOT NULL,
		max_attendees INT NOT NULL,
		owner_id BIGINT NOT NULL,
		start_time TIMESTAMP NOT NULL,
		status TEXT NOT NULL,
		title TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`
	pgDropTable = `DROP TABLE IF EXISTS %s.events`

	pgIndexOwner = `CREATE INDEX %s ON %s.events (owner_id)`
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

func (s *pgService) Delete(ns string, eventID uint64) error {
	res, err := s.db.Exec(fmt.Sprintf(pgDeleteEvent, ns), eventID)
	if err != nil {
		if pg.IsRelationNotFound(pg.WrapError(err)) {
			if err := s.Setup(ns); err != nil {
				return err
			}

			return s.Delete(ns, eventID)
		}

		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return wrapError(ErrNotFound, "%d", eventID)
	}

	return nil
}

func (s *pgService) Put(ns string, e *Event) (*Event, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	if e.ID == 0 {
		return s.insert(ns, e)
	}

	return s.update(ns, e)
}

func (s *pgService) Query(ns string, opts QueryOptions) (List, error) {
	where, params, err := convertOpts(opts)
	if err != nil {
		return nil, err
	}

	return s.listEvents(ns, where, params...)
}

func (s *pgService) Setup(ns string) error {
	qs := []string{
		fmt.Sprintf(pgCreateSchema, ns),
		fmt.Sprintf(pgCreateTable, ns),
		pg.GuardIndex(ns, "event_owner", pgIndexOwner),
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

func (s *pgService) insert(ns string, e *Event) (*Event, error) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	ts, err := time.Parse(pg.TimeFormat, e.CreatedAt.UTC().Format(pg.TimeFormat))
	if err != nil {
		return nil, err
	}

	e.CreatedAt = ts
	e.UpdatedAt = ts

	id, err := flake.NextID(flakeNamespace(ns))
	if err != nil {
		return nil, err
	}

	e.ID = id

	var (
		params = []interface{}{
			e.Description,
			e.EndTime,
			e.ID,
			e.IsPrivate,
			e.Location,
			e.MaxAttendees,
			e.OwnerID,
			e.StartTime,
			e.Status,
			e.Title,
			e.CreatedAt,
			e.UpdatedAt,
		}
		query = fmt.Sprintf(pgInsertEvent, ns)
	)

	_, err = s.db.Exec(query, params...)
	if err != nil && pg.IsRelationNotFound(pg.WrapError(err)) {
		if err := s.Setup(ns); err != nil {
			return nil, err
		}

		_, err = s.db.Exec(query, params...)
	}

	return e, err
}

func (s *pgService) listEvents(
	ns, where string,
	params ...interface{},
) (List, error) {
	query := fmt.Sprintf(pgListEvents, ns, where)

	rows, err := s.db.Query(query, params...)
	if err != nil {
		if pg.IsRelationNotFound(pg.WrapError(err)) {
			if err := s.Setup(ns); err != nil {
				return nil, err
			}

			return s.listEvents(ns, where, params...)
		}

		return nil, err
	}
	defer rows.Close()

	es := List{}

	for rows.Next() {
		e := &Event{}

		err := rows.Scan(
			&e.Description,
			&e.EndTime,
			&e.ID,
			&e.IsPrivate,
			&e.Location,
			&e.MaxAttendees,
			&e.OwnerID,
			&e.StartTime,
			&e.Status,
			&e.Title,
			&e.CreatedAt,
			&e.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		e.EndTime = e.EndTime.UTC()
		e.StartTime = e.StartTime.UTC()
		e.CreatedAt = e.CreatedAt.UTC()
		e.UpdatedAt = e.UpdatedAt.UTC()

		es = append(es, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return es, nil
}

func (s *pgService) update(ns string, e *Event) (*Event, error) {
	now, err := time.Parse(pg.TimeFormat, time.Now().UTC().Format(pg.TimeFormat))
	if err != nil {
		return nil, err
	}

	e.UpdatedAt = now

	var (
		params = []interface{}{
			e.ID,
			e.Description,
			e.EndTime,
			e.IsPrivate,
			e.Location,
			e.MaxAttendees,
			e.StartTime,
			e.Status,
			e.Title,
			e.UpdatedAt,
		}
		query = fmt.Sprintf(pgUpdateEvent, ns)
	)

	_, err = s.db.Exec(query, params...)
	if err != nil && pg.IsRelationNotFound(pg.WrapError(err)) {
		if err := s.Setup(ns); err != nil {
			return nil, err
		}

		_, err = s.db.Exec(query, params...)
	}

	return e, err
}

func convertOpts(opts QueryOptions) (string, []interface{}, error) {
	var (
		clauses = []string{}
		params  = []interface{}{}
	)

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

	if opts.IsPrivate != nil {
		clause, _, err := sqlx.In(pgClauseIsPrivate, []interface{}{*opts.IsPrivate})
		if err != nil {
			return "", nil, err
		}

		clauses = append(clauses, clause)
		params = append(params, *opts.IsPrivate)
	}

	if len(opts.OwnerIDs) > 0 {
		ps := []interface{}{}

		for _, id := range opts.OwnerIDs {
			ps = append(ps, id)
		}

		clause, _, err := sqlx.In(pgClauseOwnerIDs, ps)
		if err != nil {
			return "", nil, err
		}

		clauses = append(clauses, clause)
		params = append(params, ps...)
	}

	if len(opts.Statuses) > 0 {
		ps := []interface{}{}

		for _, status := range opts.Statuses {
			ps = append(ps, status)
		}

		clause, _, err := sqlx.In(pgClauseStatuses, ps)
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
