package core

import (
	"github.com/adamsinnett/omorgan-events/service/attendee"
	"github.com/adamsinnett/omorgan-events/service/event"
)

// EventCreateFunc stores a new event owned by the acting admin.
type EventCreateFunc func(
	ns string,
	origin uint64,
	e *event.Event,
) (*event.Event, error)

// EventCreate stores a new event owned by the acting admin.
func EventCreate(events event.Service) EventCreateFunc {
	return func(ns string, origin uint64, e *event.Event) (*event.Event, error) {
		e.ID = 0
		e.OwnerID = origin

		if e.Status == "" {
			e.Status = event.StatusDraft
		}

		created, err := events.Put(ns, e)
		if err != nil {
			if event.IsInvalidEvent(err) {
				return nil, wrapError(ErrInvalidEntity, "%s", err)
			}

			return nil, err
		}

		return created, nil
	}
}

// EventDeleteFunc removes the event of the acting admin.
type EventDeleteFunc func(ns string, origin, eventID uint64) error

// EventDelete removes the event of the acting admin.
func EventDelete(events event.Service) EventDeleteFunc {
	return func(ns string, origin, eventID uint64) error {
		if _, err := fetchOwnedEvent(events, ns, origin, eventID); err != nil {
			return err
		}

		return events.Delete(ns, eventID)
	}
}

// EventFetchFunc returns the event with the given id.
type EventFetchFunc func(ns string, eventID uint64) (*event.Event, error)

// EventFetch returns the event with the given id.
func EventFetch(events event.Service) EventFetchFunc {
	return func(ns string, eventID uint64) (*event.Event, error) {
		es, err := events.Query(ns, event.QueryOptions{
			IDs: []uint64{
				eventID,
			},
			Limit: 1,
		})
		if err != nil {
			return nil, err
		}

		if len(es) == 0 {
			return nil, wrapError(ErrNotFound, "event '%d'", eventID)
		}

		return es[0], nil
	}
}

// EventListFunc returns all events of the acting admin.
type EventListFunc func(ns string, origin uint64) (event.List, error)

// EventList returns all events of the acting admin.
func EventList(events event.Service) EventListFunc {
	return func(ns string, origin uint64) (event.List, error) {
		return events.Query(ns, event.QueryOptions{
			OwnerIDs: []uint64{
				origin,
			},
		})
	}
}

// EventUpdateFunc replaces the mutable fields of the event of the acting
// admin.
type EventUpdateFunc func(
	ns string,
	origin, eventID uint64,
	update *event.Event,
) (*event.Event, error)

// EventUpdate replaces the mutable fields of the event of the acting admin.
func EventUpdate(events event.Service) EventUpdateFunc {
	return func(
		ns string,
		origin, eventID uint64,
		update *event.Event,
	) (*event.Event, error) {
		e, err := fetchOwnedEvent(events, ns, origin, eventID)
		if err != nil {
			return nil, err
		}

		e.Description = update.Description
		e.EndTime = update.EndTime
		e.IsPrivate = update.IsPrivate
		e.Location = update.Location
		e.MaxAttendees = update.MaxAttendees
		e.StartTime = update.StartTime
		e.Status = update.Status
		e.Title = update.Title

		updated, err := events.Put(ns, e)
		if err != nil {
			if event.IsInvalidEvent(err) {
				return nil, wrapError(ErrInvalidEntity, "%s", err)
			}

			return nil, err
		}

		return updated, nil
	}
}

// AttendeeListFunc returns all attendees of an event.
type AttendeeListFunc func(ns string, eventID uint64) (attendee.List, error)

// AttendeeList returns all attendees of an event.
func AttendeeList(attendees attendee.Service) AttendeeListFunc {
	return func(ns string, eventID uint64) (attendee.List, error) {
		return attendees.Query(ns, attendee.QueryOptions{
			EventIDs: []uint64{
				eventID,
			},
		})
	}
}

func fetchOwnedEvent(
	events event.Service,
	ns string,
	origin, eventID uint64,
) (*event.Event, error) {
	es, err := events.Query(ns, event.QueryOptions{
		IDs: []uint64{
			eventID,
		},
		Limit: 1,
	})
	if err != nil {
		return nil, err
	}

	if len(es) == 0 {
		return nil, wrapError(ErrNotFound, "event '%d'", eventID)
	}

	if es[0].OwnerID != origin {
		return nil, wrapError(ErrUnauthorized, "event '%d'", eventID)
	}

	return es[0], nil
}
