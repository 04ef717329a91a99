package message

import (
	"fmt"
	"sort"
	"time"

	"github.com/adamsinnett/omorgan-events/platform/service"
	"github.com/adamsinnett/omorgan-events/platform/source"
)

// List is a collection of messages.
type List []*Message

func (l List) Len() int {
	return len(l)
}

func (l List) Less(i, j int) bool {
	return l[i].CreatedAt.After(l[j].CreatedAt)
}

func (l List) Swap(i, j int) {
	l[i], l[j] = l[j], l[i]
}

// IDs returns the list of message ids.
func (l List) IDs() []uint64 {
	ids := []uint64{}

	for _, m := range l {
		ids = append(ids, m.ID)
	}

	return ids
}

// Map is a message collection with their id as index.
type Map map[uint64]*Message

// ToList returns the Map as an ordered List.
func (m Map) ToList() List {
	ms := List{}

	for _, msg := range m {
		ms = append(ms, msg)
	}

	sort.Sort(ms)

	return ms
}

// QueryOptions is used to narrow-down message queries.
type QueryOptions struct {
	Before   time.Time
	EventIDs []uint64
	IDs      []uint64
	Owners   []string
	Limit    int
}

// Consumer observes state changes.
type Consumer interface {
	Consume() (*StateChange, error)
}

// Producer creates state change notifications.
type Producer interface {
	Propagate(namespace string, old, new *Message) (string, error)
}

// Service for message interactions.
type Service interface {
	service.Lifecycle

	Put(namespace string, message *Message) (*Message, error)
	Query(namespace string, opts QueryOptions) (List, error)
}

// ServiceMiddleware is a chainable behaviour modifier for Service.
type ServiceMiddleware func(Service) Service

// Source encapsulates state change notification operations.
type Source interface {
	source.Acker
	Consumer
	Producer
}

// SourceMiddleware is a chainable behaviour modifier for Source.
type SourceMiddleware func(Source) Source

// Message is an entry on an event's discussion wall. The wall is append-only,
// entries are never edited or removed.
type Message struct {
	Content   string
	EventID   uint64
	ID        uint64
	Owner     string
	CreatedAt time.Time
}

// StateChange transports all information necessary to observe state changes.
type StateChange struct {
	AckID     string
	ID        string
	Namespace string
	New       *Message
	Old       *Message
	SentAt    time.Time
}

// Validate performs semantic checks on the passed Message values.
func (m *Message) Validate() error {
	if m.Content == "" {
		return wrapError(ErrInvalidMessage, "content must be set")
	}

	if m.EventID == 0 {
		return wrapError(ErrInvalidMessage, "event must be set")
	}

	if m.Owner == "" {
		return wrapError(ErrInvalidMessage, "owner must be set")
	}

	return nil
}

func flakeNamespace(ns string) string {
	return fmt.Sprintf("%s_%s", ns, "messages")
}
