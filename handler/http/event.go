package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/net/context"

	"github.com/adamsinnett/omorgan-events/core"
	"github.com/adamsinnett/omorgan-events/service/event"
)

// EventCreate stores a new event owned by the current admin.
func EventCreate(fn core.EventCreateFunc) Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		var (
			currentAdmin = adminFromContext(ctx)
			p            = &payloadEvent{}
		)

		err := json.NewDecoder(r.Body).Decode(p)
		if err != nil {
			respondError(w, 0, wrapError(ErrBadRequest, err.Error()))
			return
		}

		ev, err := fn(core.NamespaceDefault, currentAdmin.SubjectID, p.event)
		if err != nil {
			respondError(w, 0, err)
			return
		}

		respondJSON(w, http.StatusCreated, &payloadEvent{event: ev})
	}
}

// EventDelete removes an event of the current admin.
func EventDelete(fn core.EventDeleteFunc) Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		currentAdmin := adminFromContext(ctx)

		id, err := extractEventID(r)
		if err != nil {
			respondError(w, 0, wrapError(ErrBadRequest, err.Error()))
			return
		}

		err = fn(core.NamespaceDefault, currentAdmin.SubjectID, id)
		if err != nil {
			respondError(w, 0, err)
			return
		}

		respondJSON(w, http.StatusNoContent, nil)
	}
}

// EventList returns all events of the current admin.
func EventList(fn core.EventListFunc) Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		currentAdmin := adminFromContext(ctx)

		es, err := fn(core.NamespaceDefault, currentAdmin.SubjectID)
		if err != nil {
			respondError(w, 0, err)
			return
		}

		if len(es) == 0 {
			respondJSON(w, http.StatusNoContent, nil)
			return
		}

		respondJSON(w, http.StatusOK, &payloadEvents{events: es})
	}
}

// EventRetrieve returns a single event of the current admin.
func EventRetrieve(fn core.EventFetchFunc) Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		currentAdmin := adminFromContext(ctx)

		id, err := extractEventID(r)
		if err != nil {
			respondError(w, 0, wrapError(ErrBadRequest, err.Error()))
			return
		}

		ev, err := fn(core.NamespaceDefault, id)
		if err != nil {
			respondError(w, 0, err)
			return
		}

		if ev.OwnerID != currentAdmin.SubjectID {
			respondError(w, 0, wrapError(ErrUnauthorized, "not the event owner"))
			return
		}

		respondJSON(w, http.StatusOK, &payloadEvent{event: ev})
	}
}

// EventUpdate replaces the mutable fields of an event of the current admin.
func EventUpdate(fn core.EventUpdateFunc) Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		var (
			currentAdmin = adminFromContext(ctx)
			p            = &payloadEvent{}
		)

		id, err := extractEventID(r)
		if err != nil {
			respondError(w, 0, wrapError(ErrBadRequest, err.Error()))
			return
		}

		err = json.NewDecoder(r.Body).Decode(p)
		if err != nil {
			respondError(w, 0, wrapError(ErrBadRequest, err.Error()))
			return
		}

		ev, err := fn(core.NamespaceDefault, currentAdmin.SubjectID, id, p.event)
		if err != nil {
			respondError(w, 0, err)
			return
		}

		respondJSON(w, http.StatusOK, &payloadEvent{event: ev})
	}
}

// AttendeeListAdmin returns all attendees of an event of the current admin.
func AttendeeListAdmin(
	eventFetch core.EventFetchFunc,
	fn core.AttendeeListFunc,
) Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		currentAdmin := adminFromContext(ctx)

		id, err := extractEventID(r)
		if err != nil {
			respondError(w, 0, wrapError(ErrBadRequest, err.Error()))
			return
		}

		ev, err := eventFetch(core.NamespaceDefault, id)
		if err != nil {
			respondError(w, 0, err)
			return
		}

		if ev.OwnerID != currentAdmin.SubjectID {
			respondError(w, 0, wrapError(ErrUnauthorized, "not the event owner"))
			return
		}

		as, err := fn(core.NamespaceDefault, id)
		if err != nil {
			respondError(w, 0, err)
			return
		}

		if len(as) == 0 {
			respondJSON(w, http.StatusNoContent, nil)
			return
		}

		respondJSON(w, http.StatusOK, &payloadAttendees{attendees: as})
	}
}

type payloadEvent struct {
	event *event.Event
}

func (p *payloadEvent) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Description  string    `json:"description"`
		EndTime      time.Time `json:"end_time"`
		ID           string    `json:"id"`
		IsPrivate    bool      `json:"is_private"`
		Location     string    `json:"location"`
		MaxAttendees uint      `json:"max_attendees"`
		StartTime    time.Time `json:"start_time"`
		Status       string    `json:"status"`
		Title        string    `json:"title"`
		CreatedAt    time.Time `json:"created_at,omitempty"`
		UpdatedAt    time.Time `json:"updated_at,omitempty"`
	}{
		Description:  p.event.Description,
		EndTime:      p.event.EndTime,
		ID:           strconv.FormatUint(p.event.ID, 10),
		IsPrivate:    p.event.IsPrivate,
		Location:     p.event.Location,
		MaxAttendees: p.event.MaxAttendees,
		StartTime:    p.event.StartTime,
		Status:       p.event.Status,
		Title:        p.event.Title,
		CreatedAt:    p.event.CreatedAt,
		UpdatedAt:    p.event.UpdatedAt,
	})
}

func (p *payloadEvent) UnmarshalJSON(raw []byte) error {
	f := struct {
		Description  string    `json:"description"`
		EndTime      time.Time `json:"end_time"`
		IsPrivate    bool      `json:"is_private"`
		Location     string    `json:"location"`
		MaxAttendees uint      `json:"max_attendees"`
		StartTime    time.Time `json:"start_time"`
		Status       string    `json:"status"`
		Title        string    `json:"title"`
	}{}

	err := json.Unmarshal(raw, &f)
	if err != nil {
		return err
	}

	p.event = &event.Event{
		Description:  f.Description,
		EndTime:      f.EndTime,
		IsPrivate:    f.IsPrivate,
		Location:     f.Location,
		MaxAttendees: f.MaxAttendees,
		StartTime:    f.StartTime,
		Status:       f.Status,
		Title:        f.Title,
	}

	return nil
}

type payloadEvents struct {
	events event.List
}

func (p *payloadEvents) MarshalJSON() ([]byte, error) {
	es := []*payloadEvent{}

	for _, ev := range p.events {
		es = append(es, &payloadEvent{event: ev})
	}

	return json.Marshal(struct {
		Events      []*payloadEvent `json:"events"`
		EventsCount int             `json:"events_count"`
	}{
		Events:      es,
		EventsCount: len(es),
	})
}
