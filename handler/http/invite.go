package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/net/context"

	"github.com/adamsinnett/omorgan-events/core"
	"github.com/adamsinnett/omorgan-events/service/attendee"
)

// InviteRetrieve resolves an invitation token into the event it belongs to
// and, if the token was redeemed before, the bound attendee. The route is
// public so invitees can preview the event before exchanging the token for a
// credential.
func InviteRetrieve(fn core.InvitationFetchFunc) Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		i, ev, a, err := fn(core.NamespaceDefault, extractToken(r))
		if err != nil {
			respondError(w, 0, err)
			return
		}

		res := &payloadInvite{
			active: i.Active,
			event:  &payloadEvent{event: ev},
		}

		if a != nil {
			res.attendee = &payloadAttendee{attendee: a}
		}

		respondJSON(w, http.StatusOK, res)
	}
}

// InviteRedeem binds the invitation token to a new attendee record. A token
// already bound to an attendee cannot be redeemed a second time.
func InviteRedeem(fn core.AttendeeCreateFunc) Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		p := &payloadAttendee{}

		err := json.NewDecoder(r.Body).Decode(p)
		if err != nil {
			respondError(w, 0, wrapError(ErrBadRequest, err.Error()))
			return
		}

		a, err := fn(core.NamespaceDefault, extractToken(r), p.attendee)
		if err != nil {
			respondError(w, 0, err)
			return
		}

		respondJSON(w, http.StatusCreated, &payloadAttendee{attendee: a})
	}
}

type payloadInvite struct {
	active   bool
	attendee *payloadAttendee
	event    *payloadEvent
}

func (p *payloadInvite) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Active   bool             `json:"active"`
		Attendee *payloadAttendee `json:"attendee,omitempty"`
		Event    *payloadEvent    `json:"event"`
	}{
		Active:   p.active,
		Attendee: p.attendee,
		Event:    p.event,
	})
}

type payloadAttendee struct {
	attendee *attendee.Attendee
}

func (p *payloadAttendee) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Email      string    `json:"email,omitempty"`
		EventID    string    `json:"event_id"`
		GuestCount uint      `json:"guest_count"`
		ID         string    `json:"id"`
		Name       string    `json:"name"`
		Status     string    `json:"status"`
		CreatedAt  time.Time `json:"created_at,omitempty"`
		UpdatedAt  time.Time `json:"updated_at,omitempty"`
	}{
		Email:      p.attendee.Email,
		EventID:    strconv.FormatUint(p.attendee.EventID, 10),
		GuestCount: p.attendee.GuestCount,
		ID:         strconv.FormatUint(p.attendee.ID, 10),
		Name:       p.attendee.Name,
		Status:     p.attendee.Status,
		CreatedAt:  p.attendee.CreatedAt,
		UpdatedAt:  p.attendee.UpdatedAt,
	})
}

func (p *payloadAttendee) UnmarshalJSON(raw []byte) error {
	f := struct {
		Email      string `json:"email"`
		GuestCount uint   `json:"guest_count"`
		Name       string `json:"name"`
		Status     string `json:"status"`
	}{}

	err := json.Unmarshal(raw, &f)
	if err != nil {
		return err
	}

	p.attendee = &attendee.Attendee{
		Email:      f.Email,
		GuestCount: f.GuestCount,
		Name:       f.Name,
		Status:     f.Status,
	}

	return nil
}

type payloadAttendees struct {
	attendees attendee.List
}

func (p *payloadAttendees) MarshalJSON() ([]byte, error) {
	as := []*payloadAttendee{}

	for _, a := range p.attendees {
		as = append(as, &payloadAttendee{attendee: a})
	}

	return json.Marshal(struct {
		Attendees      []*payloadAttendee `json:"attendees"`
		AttendeesCount int                `json:"attendees_count"`
		GuestsCount    uint               `json:"guests_count"`
	}{
		Attendees:      as,
		AttendeesCount: len(as),
		GuestsCount:    p.attendees.GuestCounts(),
	})
}
