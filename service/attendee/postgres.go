package attendee

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/adamsinnett/omorgan-events/platform/flake"
	"github.com/adamsinnett/omorgan-events/platform/pg"
)

const (
	pgInsertAttendee = `
		INSERT INTO %s.attendees(
			email, event_id, guest_count, id, invitation_token, name, status,
			created_at, updated_at
		) VALUES(
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)`
	pgUpdateAttendee = `
		UPDATE
			%s.attendees
		SET
			email = $2,
			guest_count = $3,
			name = $4,
			status = $5,
			updated_at = $6
		WHERE
			id = $1`

	pgListAttendees = `
		SELECT
			email, event_id, guest_count, id, invitation_token, name, status,
			created_at, updated_at
		FROM
			%s.attendees
		%s`

	pgClauseEventIDs         = `event_id IN (?)`
	pgClauseIDs              = `id IN (?)`
	pgClauseInvitationTokens = `invitation_token IN (?)`
	pgClauseStatuses         = `status IN (?)`

	pgOrderCreatedAt = `ORDER BY created_at DESC`

	pgCreateSchema = `CREATE SCHEMA IF NOT EXISTS %s`
	pgCreateTable  = `CREATE TABLE IF NOT EXISTS %s.attendees(
		email TEXT NOT NULL,
		event_id BIGINT NOT NULL,
		guest_count INT NOT NULL,
		id BIGINT PRIMARY KEY,
		invitation_token TEXT NOT NULL,
		name TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`
	pgDropTable = `DROP TABLE IF EXISTS %s.attendees`

	pgIndexEvent = `CREATE INDEX %s ON %s.attendees (event_id)`
	pgIndexToken = `CREATE INDEX %s ON %s.attendees (invitation_token)`
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

func (s *pgService) Put(ns string, a *Attendee) (*Attendee, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	if a.ID == 0 {
		return s.insert(ns, a)
	}

	return s.update(ns, a)
}

func (s *pgService) Query(ns string, opts QueryOptions) (List, error) {
	where, params, err := convertOpts(opts)
	if err != nil {
		return nil, err
	}

	return s.listAttendees(ns, where, params...)
}

func (s *pgService) Setup(ns string) error {
	qs := []string{
		fmt.Sprintf(pgCreateSchema, ns),
		fmt.Sprintf(pgCreateTable, ns),
		pg.GuardIndex(ns, "attendee_event", pgIndexEvent),
		pg.GuardIndex(ns, "attendee_token", pgIndexToken),
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

func (s *pgService) insert(ns string, a *Attendee) (*Attendee, error) {
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
			a.EventID,
			a.GuestCount,
			a.ID,
			a.InvitationToken,
			a.Name,
			a.Status,
			a.CreatedAt,
			a.UpdatedAt,
		}
		query = fmt.Sprintf(pgInsertAttendee, ns)
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

func (s *pgService) listAttendees(
	ns, where string,
	params ...interface{},
) (List, error) {
	query := fmt.Sprintf(pgListAttendees, ns, where)

	rows, err := s.db.Query(query, params...)
	if err != nil {
		if pg.IsRelationNotFound(pg.WrapError(err)) {
			if err := s.Setup(ns); err != nil {
				return nil, err
			}

			return s.listAttendees(ns, where, params...)
		}

		return nil, err
	}
	defer rows.Close()

	as := List{}

	for rows.Next() {
		a := &Attendee{}

		err := rows.Scan(
			&a.Email,
			&a.EventID,
			&a.GuestCount,
			&a.ID,
			&a.InvitationToken,
			&a.Name,
			&a.Status,
			&a.CreatedAt,
			&a.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		a.CreatedAt = a.CreatedAt.UTC()
		a.UpdatedAt = a.UpdatedAt.UTC()

		as = append(as, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return as, nil
}

func (s *pgService) update(ns string, a *Attendee) (*Attendee, error) {
	now, err := time.Parse(pg.TimeFormat, time.Now().UTC().Format(pg.TimeFormat))
	if err != nil {
		return nil, err
	}

	a.UpdatedAt = now

	var (
		params = []interface{}{
			a.ID,
			a.Email,
			a.GuestCount,
			a.Name,
			a.Status,
			a.UpdatedAt,
		}
		query = fmt.Sprintf(pgUpdateAttendee, ns)
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

	if len(opts.InvitationTokens) > 0 {
		ps := []interface{}{}

		for _, token := range opts.InvitationTokens {
			ps = append(ps, token)
		}

		clause, _, err := sqlx.In(pgClauseInvitationTokens, ps)
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
