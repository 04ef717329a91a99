package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/net/context"

	"github.com/adamsinnett/omorgan-events/core"
	"github.com/adamsinnett/omorgan-events/service/message"
	"github.com/adamsinnett/omorgan-events/service/reaction"
)

// MessageCreate appends a message to the event's discussion wall.
func MessageCreate(
	authorize core.WallAuthorizeFunc,
	fn core.MessageCreateFunc,
) Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		var (
			origin = originFromContext(ctx)
			p      = &payloadMessage{}
		)

		id, err := extractEventID(r)
		if err != nil {
			respondError(w, 0, wrapError(ErrBadRequest, err.Error()))
			return
		}

		err = authorize(core.NamespaceDefault, claimsFromContext(ctx), id)
		if err != nil {
			respondError(w, 0, err)
			return
		}

		err = json.NewDecoder(r.Body).Decode(p)
		if err != nil {
			respondError(w, 0, wrapError(ErrBadRequest, err.Error()))
			return
		}

		m, err := fn(core.NamespaceDefault, origin, id, p.content)
		if err != nil {
			respondError(w, 0, err)
			return
		}

		respondJSON(w, http.StatusCreated, &payloadMessage{message: m})
	}
}

// MessageList returns the event's wall messages together with the live
// reactions on them.
func MessageList(
	authorize core.WallAuthorizeFunc,
	fn core.MessageListFunc,
) Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		origin := originFromContext(ctx)

		id, err := extractEventID(r)
		if err != nil {
			respondError(w, 0, wrapError(ErrBadRequest, err.Error()))
			return
		}

		err = authorize(core.NamespaceDefault, claimsFromContext(ctx), id)
		if err != nil {
			respondError(w, 0, err)
			return
		}

		feed, err := fn(core.NamespaceDefault, id)
		if err != nil {
			respondError(w, 0, err)
			return
		}

		if len(feed.Messages) == 0 {
			respondJSON(w, http.StatusNoContent, nil)
			return
		}

		respondJSON(w, http.StatusOK, &payloadMessages{
			messages:    feed.Messages,
			origin:      origin,
			reactionMap: feed.ReactionMap,
		})
	}
}

type payloadMessage struct {
	content   string
	message   *message.Message
	origin    string
	reactions reaction.List
}

func (p *payloadMessage) MarshalJSON() ([]byte, error) {
	f := struct {
		Content     string          `json:"content"`
		EventID     string          `json:"event_id"`
		ID          string          `json:"id"`
		IsOwned     bool            `json:"is_owned"`
		OwnReaction string          `json:"own_reaction,omitempty"`
		Reactions   map[string]uint `json:"reactions"`
		CreatedAt   time.Time       `json:"created_at,omitempty"`
	}{
		Content:   p.message.Content,
		EventID:   strconv.FormatUint(p.message.EventID, 10),
		ID:        strconv.FormatUint(p.message.ID, 10),
		IsOwned:   p.message.Owner == p.origin,
		Reactions: p.reactions.CountsByType(),
	}

	for _, re := range p.reactions {
		if re.Owner == p.origin && !re.Deleted {
			f.OwnReaction = re.Type
			break
		}
	}

	f.CreatedAt = p.message.CreatedAt

	return json.Marshal(&f)
}

func (p *payloadMessage) UnmarshalJSON(raw []byte) error {
	f := struct {
		Content string `json:"content"`
	}{}

	err := json.Unmarshal(raw, &f)
	if err != nil {
		return err
	}

	p.content = f.Content

	return nil
}

type payloadMessages struct {
	messages    message.List
	origin      string
	reactionMap map[uint64]reaction.List
}

func (p *payloadMessages) MarshalJSON() ([]byte, error) {
	ms := []*payloadMessage{}

	for _, m := range p.messages {
		ms = append(ms, &payloadMessage{
			message:   m,
			origin:    p.origin,
			reactions: p.reactionMap[m.ID],
		})
	}

	return json.Marshal(struct {
		Messages      []*payloadMessage `json:"messages"`
		MessagesCount int               `json:"messages_count"`
	}{
		Messages:      ms,
		MessagesCount: len(ms),
	})
}
