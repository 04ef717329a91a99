package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/net/context"

	"github.com/adamsinnett/omorgan-events/core"
	"github.com/adamsinnett/omorgan-events/service/reaction"
)

// ReactionToggle flips the acting identity's reaction on a message. Toggling
// the type currently held removes it, a different type replaces it.
func ReactionToggle(fn core.ReactionToggleFunc) Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		var (
			origin = originFromContext(ctx)
			p      = &payloadReaction{}
		)

		id, err := extractMessageID(r)
		if err != nil {
			respondError(w, 0, wrapError(ErrBadRequest, err.Error()))
			return
		}

		err = json.NewDecoder(r.Body).Decode(p)
		if err != nil {
			respondError(w, 0, wrapError(ErrBadRequest, err.Error()))
			return
		}

		if p.reactionType == "" {
			respondError(w, 0, wrapError(ErrBadRequest, "type must be set"))
			return
		}

		re, err := fn(core.NamespaceDefault, origin, id, p.reactionType)
		if err != nil {
			respondError(w, 0, err)
			return
		}

		if re == nil {
			respondJSON(w, http.StatusNoContent, nil)
			return
		}

		respondJSON(w, http.StatusCreated, &payloadReaction{reaction: re})
	}
}

type payloadReaction struct {
	reaction     *reaction.Reaction
	reactionType string
}

func (p *payloadReaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID        string    `json:"id"`
		MessageID string    `json:"message_id"`
		Type      string    `json:"type"`
		CreatedAt time.Time `json:"created_at,omitempty"`
		UpdatedAt time.Time `json:"updated_at,omitempty"`
	}{
		ID:        strconv.FormatUint(p.reaction.ID, 10),
		MessageID: strconv.FormatUint(p.reaction.MessageID, 10),
		Type:      p.reaction.Type,
		CreatedAt: p.reaction.CreatedAt,
		UpdatedAt: p.reaction.UpdatedAt,
	})
}

func (p *payloadReaction) UnmarshalJSON(raw []byte) error {
	f := struct {
		Type string `json:"type"`
	}{}

	err := json.Unmarshal(raw, &f)
	if err != nil {
		return err
	}

	p.reactionType = f.Type

	return nil
}
