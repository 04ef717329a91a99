package core

import (
	serr "github.com/adamsinnett/omorgan-events/error"
	"github.com/adamsinnett/omorgan-events/platform/generate"
	"github.com/adamsinnett/omorgan-events/service/attendee"
	"github.com/adamsinnett/omorgan-events/service/event"
	"github.com/adamsinnett/omorgan-events/service/invitation"
)

// InvitationCreateFunc issues a fresh single-use invitation for the event of
// the acting admin.
type InvitationCreateFunc func(
	ns string,
	origin, eventID uint64,
) (*invitation.Invitation, error)

// InvitationCreate issues a fresh single-use invitation for the event of the
// acting admin.
func InvitationCreate(
	events event.Service,
	invitations invitation.Service,
) InvitationCreateFunc {
	return func(ns string, origin, eventID uint64) (*invitation.Invitation, error) {
		if _, err := fetchOwnedEvent(events, ns, origin, eventID); err != nil {
			return nil, err
		}

		t, err := generate.InviteToken()
		if err != nil {
			return nil, err
		}

		i, err := invitations.Put(ns, &invitation.Invitation{
			Active:  true,
			EventID: eventID,
			Token:   t,
		})
		if err != nil {
			if invitation.IsTokenCollision(err) {
				return nil, serr.Wrap(serr.ErrTokenCollision, "event '%d'", eventID)
			}

			return nil, err
		}

		return i, nil
	}
}

// InvitationFetchFunc resolves an invitation token into the invitation, its
// event and, if the token was redeemed before, the bound attendee.
type InvitationFetchFunc func(
	ns string,
	invitationToken string,
) (*invitation.Invitation, *event.Event, *attendee.Attendee, error)

// InvitationFetch resolves an invitation token into the invitation, its
// event and, if the token was redeemed before, the bound attendee. Callers
// use the attendee to skip the RSVP path for already redeemed tokens.
func InvitationFetch(
	attendees attendee.Service,
	events event.Service,
	invitations invitation.Service,
) InvitationFetchFunc {
	return func(
		ns string,
		invitationToken string,
	) (*invitation.Invitation, *event.Event, *attendee.Attendee, error) {
		is, err := invitations.Query(ns, invitation.QueryOptions{
			Tokens: []string{
				invitationToken,
			},
			Limit: 1,
		})
		if err != nil {
			return nil, nil, nil, err
		}

		if len(is) == 0 {
			return nil, nil, nil, wrapError(ErrNotFound, "invitation")
		}

		i := is[0]

		e, err := EventFetch(events)(ns, i.EventID)
		if err != nil {
			return nil, nil, nil, err
		}

		as, err := attendees.Query(ns, attendee.QueryOptions{
			InvitationTokens: []string{
				invitationToken,
			},
			Limit: 1,
		})
		if err != nil {
			return nil, nil, nil, err
		}

		var a *attendee.Attendee

		if len(as) == 1 {
			a = as[0]
		}

		return i, e, a, nil
	}
}

// InvitationListFunc returns all invitations of the event of the acting
// admin.
type InvitationListFunc func(
	ns string,
	origin, eventID uint64,
) (invitation.List, error)

// InvitationList returns all invitations of the event of the acting admin.
func InvitationList(
	events event.Service,
	invitations invitation.Service,
) InvitationListFunc {
	return func(ns string, origin, eventID uint64) (invitation.List, error) {
		if _, err := fetchOwnedEvent(events, ns, origin, eventID); err != nil {
			return nil, err
		}

		return invitations.Query(ns, invitation.QueryOptions{
			EventIDs: []uint64{
				eventID,
			},
		})
	}
}

// InvitationRevokeFunc deactivates an invitation of the acting admin.
type InvitationRevokeFunc func(
	ns string,
	origin, invitationID uint64,
) (*invitation.Invitation, error)

// InvitationRevoke deactivates an invitation of the acting admin. Revocation
// blocks future redemption and exchange, credentials already issued from the
// token stay valid until expiry.
func InvitationRevoke(
	events event.Service,
	invitations invitation.Service,
) InvitationRevokeFunc {
	return func(ns string, origin, invitationID uint64) (*invitation.Invitation, error) {
		is, err := invitations.Query(ns, invitation.QueryOptions{
			IDs: []uint64{
				invitationID,
			},
			Limit: 1,
		})
		if err != nil {
			return nil, err
		}

		if len(is) == 0 {
			return nil, wrapError(ErrNotFound, "invitation '%d'", invitationID)
		}

		i := is[0]

		if _, err := fetchOwnedEvent(events, ns, origin, i.EventID); err != nil {
			return nil, err
		}

		i.Active = false

		return invitations.Put(ns, i)
	}
}
