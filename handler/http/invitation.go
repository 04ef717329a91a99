package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/net/context"

	"github.com/adamsinnett/omorgan-events/core"
	"github.com/adamsinnett/omorgan-events/service/invitation"
)

// InvitationCreate issues a fresh single-use invitation for an event of the
// current admin.
func InvitationCreate(fn core.InvitationCreateFunc) Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		currentAdmin := adminFromContext(ctx)

		id, err := extractEventID(r)
		if err != nil {
			respondError(w, 0, wrapError(ErrBadRequest, err.Error()))
			return
		}

		i, err := fn(core.NamespaceDefault, currentAdmin.SubjectID, id)
		if err != nil {
			respondError(w, 0, err)
			return
		}

		respondJSON(w, http.StatusCreated, &payloadInvitation{invitation: i})
	}
}

// InvitationList returns all invitations of an event of the current admin.
func InvitationList(fn core.InvitationListFunc) Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		currentAdmin := adminFromContext(ctx)

		id, err := extractEventID(r)
		if err != nil {
			respondError(w, 0, wrapError(ErrBadRequest, err.Error()))
			return
		}

		is, err := fn(core.NamespaceDefault, currentAdmin.SubjectID, id)
		if err != nil {
			respondError(w, 0, err)
			return
		}

		if len(is) == 0 {
			respondJSON(w, http.StatusNoContent, nil)
			return
		}

		respondJSON(w, http.StatusOK, &payloadInvitations{invitations: is})
	}
}

// InvitationRevoke deactivates an invitation of the current admin.
func InvitationRevoke(fn core.InvitationRevokeFunc) Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		currentAdmin := adminFromContext(ctx)

		id, err := extractInvitationID(r)
		if err != nil {
			respondError(w, 0, wrapError(ErrBadRequest, err.Error()))
			return
		}

		_, err = fn(core.NamespaceDefault, currentAdmin.SubjectID, id)
		if err != nil {
			respondError(w, 0, err)
			return
		}

		respondJSON(w, http.StatusNoContent, nil)
	}
}

type payloadInvitation struct {
	invitation *invitation.Invitation
}

func (p *payloadInvitation) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Active     bool      `json:"active"`
		EventID    string    `json:"event_id"`
		ID         string    `json:"id"`
		Redeemed   bool      `json:"redeemed"`
		RedeemedBy string    `json:"redeemed_by,omitempty"`
		Token      string    `json:"token"`
		CreatedAt  time.Time `json:"created_at,omitempty"`
		UpdatedAt  time.Time `json:"updated_at,omitempty"`
	}{
		Active:     p.invitation.Active,
		EventID:    strconv.FormatUint(p.invitation.EventID, 10),
		ID:         strconv.FormatUint(p.invitation.ID, 10),
		Redeemed:   p.invitation.Redeemed(),
		RedeemedBy: formatOptionalID(p.invitation.RedeemedBy),
		Token:      p.invitation.Token,
		CreatedAt:  p.invitation.CreatedAt,
		UpdatedAt:  p.invitation.UpdatedAt,
	})
}

type payloadInvitations struct {
	invitations invitation.List
}

func (p *payloadInvitations) MarshalJSON() ([]byte, error) {
	is := []*payloadInvitation{}

	for _, i := range p.invitations {
		is = append(is, &payloadInvitation{invitation: i})
	}

	return json.Marshal(struct {
		Invitations      []*payloadInvitation `json:"invitations"`
		InvitationsCount int                  `json:"invitations_count"`
	}{
		Invitations:      is,
		InvitationsCount: len(is),
	})
}

func formatOptionalID(id uint64) string {
	if id == 0 {
		return ""
	}

	return strconv.FormatUint(id, 10)
}
