package core

import (
	serr "github.com/adamsinnett/omorgan-events/error"
	"github.com/adamsinnett/omorgan-events/service/attendee"
	"github.com/adamsinnett/omorgan-events/service/invitation"
)

// AttendeeCreateFunc redeems an invitation token by creating the attendee
// bound to it.
type AttendeeCreateFunc func(
	ns string,
	invitationToken string,
	a *attendee.Attendee,
) (*attendee.Attendee, error)

// AttendeeCreate redeems an invitation token by creating the attendee bound
// to it. Redemption itself is not idempotent, callers are expected to check
// for an existing attendee first, the way InvitationFetch exposes it. A
// token that was redeemed before is rejected here to keep the at-most-once
// binding.
func AttendeeCreate(
	attendees attendee.Service,
	invitations invitation.Service,
) AttendeeCreateFunc {
	return func(
		ns string,
		invitationToken string,
		a *attendee.Attendee,
	) (*attendee.Attendee, error) {
		is, err := invitations.Query(ns, invitation.QueryOptions{
			Tokens: []string{
				invitationToken,
			},
			Limit: 1,
		})
		if err != nil {
			return nil, err
		}

		if len(is) == 0 {
			return nil, serr.Wrap(serr.ErrNotFound, "invitation")
		}

		i := is[0]

		if !i.Active {
			return nil, serr.Wrap(serr.ErrInactive, "invitation '%d'", i.ID)
		}

		if i.Redeemed() {
			return nil, serr.Wrap(serr.ErrInactive, "invitation '%d' redeemed", i.ID)
		}

		a.ID = 0
		a.EventID = i.EventID
		a.InvitationToken = i.Token

		created, err := attendees.Put(ns, a)
		if err != nil {
			if attendee.IsInvalidAttendee(err) {
				return nil, wrapError(ErrInvalidEntity, "%s", err)
			}

			return nil, err
		}

		i.RedeemedBy = created.ID

		if _, err := invitations.Put(ns, i); err != nil {
			return nil, err
		}

		return created, nil
	}
}
