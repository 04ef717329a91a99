package core

import (
	serr "github.com/adamsinnett/omorgan-events/error"
	"github.com/adamsinnett/omorgan-events/platform/token"
	"github.com/adamsinnett/omorgan-events/service/event"
	"github.com/adamsinnett/omorgan-events/service/invitation"
)

// GuestAuthFunc exchanges an invitation token for a signed anonymous
// credential.
type GuestAuthFunc func(
	ns string,
	invitationToken string,
) (string, *invitation.Invitation, error)

// GuestAuth exchanges an invitation token for a signed anonymous credential.
// The invitation must exist and be active. Revocation is forward-only, a
// credential issued before the invitation was revoked stays valid until it
// expires.
func GuestAuth(
	invitations invitation.Service,
	issuer *token.Issuer,
) GuestAuthFunc {
	return func(ns, invitationToken string) (string, *invitation.Invitation, error) {
		is, err := invitations.Query(ns, invitation.QueryOptions{
			Tokens: []string{
				invitationToken,
			},
			Limit: 1,
		})
		if err != nil {
			return "", nil, err
		}

		if len(is) == 0 {
			return "", nil, serr.Wrap(serr.ErrNotFound, "invitation")
		}

		i := is[0]

		if !i.Active {
			return "", nil, serr.Wrap(serr.ErrInactive, "invitation '%d'", i.ID)
		}

		credential, err := issuer.IssueGuest(i.ID, i.Token, token.LifetimeGuest)
		if err != nil {
			return "", nil, err
		}

		return credential, i, nil
	}
}

// WallAuthorizeFunc decides if the identity behind the claims may read and
// write the wall of the given event.
type WallAuthorizeFunc func(
	ns string,
	claims token.Claims,
	eventID uint64,
) error

// WallAuthorize grants wall access to the admin owning the event and to
// guests whose credential was exchanged for an invitation bound to it.
func WallAuthorize(
	events event.Service,
	invitations invitation.Service,
) WallAuthorizeFunc {
	return func(ns string, claims token.Claims, eventID uint64) error {
		switch c := claims.(type) {
		case *token.AdminClaims:
			_, err := fetchOwnedEvent(events, ns, c.SubjectID, eventID)
			return err
		case *token.GuestClaims:
			is, err := invitations.Query(ns, invitation.QueryOptions{
				Tokens: []string{
					c.InvitationToken,
				},
				Limit: 1,
			})
			if err != nil {
				return err
			}

			if len(is) == 0 || is[0].EventID != eventID {
				return wrapError(ErrUnauthorized, "event '%d'", eventID)
			}

			return nil
		}

		return wrapError(ErrUnauthorized, "unknown identity")
	}
}
