package core

import (
	"github.com/adamsinnett/omorgan-events/service/message"
	"github.com/adamsinnett/omorgan-events/service/reaction"
)

// ReactionToggleFunc flips the acting identity's reaction on a message.
type ReactionToggleFunc func(
	ns string,
	origin string,
	messageID uint64,
	reactionType string,
) (*reaction.Reaction, error)

// ReactionToggle flips the acting identity's reaction on a message. At most
// one live reaction per (message, origin) pair exists at any time:
//
//	none       -> insert the given type
//	same type  -> soft-delete (toggle off), returns nil
//	other type -> soft-delete the old, then insert the new
//
// The replace path is two separate writes with no transaction around them. A
// failure between them leaves the origin with zero reactions, losing a
// reaction is preferred over duplicating one. Callers retry by re-running
// the full toggle.
func ReactionToggle(
	messages message.Service,
	reactions reaction.Service,
) ReactionToggleFunc {
	return func(
		ns string,
		origin string,
		messageID uint64,
		reactionType string,
	) (*reaction.Reaction, error) {
		ms, err := messages.Query(ns, message.QueryOptions{
			IDs: []uint64{
				messageID,
			},
			Limit: 1,
		})
		if err != nil {
			return nil, err
		}

		if len(ms) == 0 {
			return nil, wrapError(ErrNotFound, "message '%d'", messageID)
		}

		deleted := false

		rs, err := reactions.Query(ns, reaction.QueryOptions{
			Deleted: &deleted,
			MessageIDs: []uint64{
				messageID,
			},
			Owners: []string{
				origin,
			},
			Limit: 1,
		})
		if err != nil {
			return nil, err
		}

		if len(rs) == 0 {
			return reactions.Put(ns, &reaction.Reaction{
				MessageID: messageID,
				Owner:     origin,
				Type:      reactionType,
			})
		}

		r := rs[0]
		r.Deleted = true

		if _, err := reactions.Put(ns, r); err != nil {
			return nil, err
		}

		if r.Type == reactionType {
			return nil, nil
		}

		return reactions.Put(ns, &reaction.Reaction{
			MessageID: messageID,
			Owner:     origin,
			Type:      reactionType,
		})
	}
}

// ReactionListFunc returns the live reactions on a message.
type ReactionListFunc func(ns string, messageID uint64) (reaction.List, error)

// ReactionList returns the live reactions on a message.
func ReactionList(reactions reaction.Service) ReactionListFunc {
	return func(ns string, messageID uint64) (reaction.List, error) {
		deleted := false

		return reactions.Query(ns, reaction.QueryOptions{
			Deleted: &deleted,
			MessageIDs: []uint64{
				messageID,
			},
		})
	}
}
