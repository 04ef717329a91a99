package core

import (
	"github.com/adamsinnett/omorgan-events/service/event"
	"github.com/adamsinnett/omorgan-events/service/message"
	"github.com/adamsinnett/omorgan-events/service/reaction"
)

// MessageCreateFunc appends a message to the event's discussion wall.
type MessageCreateFunc func(
	ns string,
	origin string,
	eventID uint64,
	content string,
) (*message.Message, error)

// MessageCreate appends a message to the event's discussion wall. The wall
// is append-only, there is no edit or delete path.
func MessageCreate(
	events event.Service,
	messages message.Service,
) MessageCreateFunc {
	return func(
		ns string,
		origin string,
		eventID uint64,
		content string,
	) (*message.Message, error) {
		if _, err := EventFetch(events)(ns, eventID); err != nil {
			return nil, err
		}

		m, err := messages.Put(ns, &message.Message{
			Content: content,
			EventID: eventID,
			Owner:   origin,
		})
		if err != nil {
			if message.IsInvalidMessage(err) {
				return nil, wrapError(ErrInvalidEntity, "%s", err)
			}

			return nil, err
		}

		return m, nil
	}
}

// MessageListFunc returns the event's wall messages together with their live
// reactions.
type MessageListFunc func(ns string, eventID uint64) (*MessageFeed, error)

// MessageFeed bundles wall messages with the live reactions on them.
type MessageFeed struct {
	Messages    message.List
	ReactionMap map[uint64]reaction.List
}

// MessageList returns the event's wall messages together with their live
// reactions.
func MessageList(
	events event.Service,
	messages message.Service,
	reactions reaction.Service,
) MessageListFunc {
	return func(ns string, eventID uint64) (*MessageFeed, error) {
		if _, err := EventFetch(events)(ns, eventID); err != nil {
			return nil, err
		}

		ms, err := messages.Query(ns, message.QueryOptions{
			EventIDs: []uint64{
				eventID,
			},
		})
		if err != nil {
			return nil, err
		}

		rm := map[uint64]reaction.List{}

		if len(ms) > 0 {
			deleted := false

			rs, err := reactions.Query(ns, reaction.QueryOptions{
				Deleted:    &deleted,
				MessageIDs: ms.IDs(),
			})
			if err != nil {
				return nil, err
			}

			for _, r := range rs {
				rm[r.MessageID] = append(rm[r.MessageID], r)
			}
		}

		return &MessageFeed{
			Messages:    ms,
			ReactionMap: rm,
		}, nil
	}
}
