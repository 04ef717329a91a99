package core

import (
	"testing"

	serr "github.com/adamsinnett/omorgan-events/error"
	"github.com/adamsinnett/omorgan-events/service/attendee"
	"github.com/adamsinnett/omorgan-events/service/event"
	"github.com/adamsinnett/omorgan-events/service/invitation"
)

func TestAttendeeCreate(t *testing.T) {
	var (
		attendees   = attendee.MemService()
		events      = event.MemService()
		invitations = invitation.MemService()
		fn          = AttendeeCreate(attendees, invitations)
	)

	e := testSetupEvent(t, events, 1)

	i, err := InvitationCreate(events, invitations)(NamespaceDefault, e.OwnerID, e.ID)
	if err != nil {
		t.Fatal(err)
	}

	a := testAttendee()
	a.GuestCount = 2

	created, err := fn(NamespaceDefault, i.Token, a)
	if err != nil {
		t.Fatal(err)
	}

	if have, want := created.EventID, e.ID; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	if have, want := created.InvitationToken, i.Token; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	if have, want := created.GuestCount, uint(2); have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	is, err := invitations.Query(NamespaceDefault, invitation.QueryOptions{
		IDs: []uint64{
			i.ID,
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if have, want := is[0].RedeemedBy, created.ID; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	if _, err := fn(NamespaceDefault, i.Token, testAttendee()); !serr.IsInactive(err) {
		t.Errorf("have %v, want %v", err, serr.ErrInactive)
	}
}

func TestAttendeeCreateNotFound(t *testing.T) {
	var (
		attendees   = attendee.MemService()
		invitations = invitation.MemService()
		fn          = AttendeeCreate(attendees, invitations)
	)

	if _, err := fn(NamespaceDefault, "unknown", testAttendee()); !serr.IsNotFound(err) {
		t.Errorf("have %v, want %v", err, serr.ErrNotFound)
	}
}

func TestAttendeeCreateRevoked(t *testing.T) {
	var (
		attendees   = attendee.MemService()
		events      = event.MemService()
		invitations = invitation.MemService()
		fn          = AttendeeCreate(attendees, invitations)
	)

	e := testSetupEvent(t, events, 1)

	i, err := InvitationCreate(events, invitations)(NamespaceDefault, e.OwnerID, e.ID)
	if err != nil {
		t.Fatal(err)
	}

	_, err = InvitationRevoke(events, invitations)(NamespaceDefault, e.OwnerID, i.ID)
	if err != nil {
		t.Fatal(err)
	}

	for n := 0; n < 3; n++ {
		if _, err := fn(NamespaceDefault, i.Token, testAttendee()); !serr.IsInactive(err) {
			t.Errorf("have %v, want %v", err, serr.ErrInactive)
		}
	}
}

func TestAttendeeCreateInvalid(t *testing.T) {
	var (
		attendees   = attendee.MemService()
		events      = event.MemService()
		invitations = invitation.MemService()
		fn          = AttendeeCreate(attendees, invitations)
	)

	e := testSetupEvent(t, events, 1)

	i, err := InvitationCreate(events, invitations)(NamespaceDefault, e.OwnerID, e.ID)
	if err != nil {
		t.Fatal(err)
	}

	a := testAttendee()
	a.Name = ""

	if _, err := fn(NamespaceDefault, i.Token, a); !IsInvalidEntity(err) {
		t.Errorf("have %v, want %v", err, ErrInvalidEntity)
	}

	a = testAttendee()
	a.GuestCount = 0

	if _, err := fn(NamespaceDefault, i.Token, a); !IsInvalidEntity(err) {
		t.Errorf("have %v, want %v", err, ErrInvalidEntity)
	}
}
