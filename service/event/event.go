package event

import (
	"fmt"
	"sort"
	"time"

	"github.com/adamsinnett/omorgan-events/platform/service"
)

// Lifecycle states of an Event.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusCancelled = "cancelled"
)

// List is a collection of events.
type List []*Event

func (l List) Len() int {
	return len(l)
}

func (l List) Less(i, j int) bool {
	return l[i].CreatedAt.After(l[j].CreatedAt)
}

func (l List) Swap(i, j int) {
	l[i], l[j] = l[j], l[i]
}

// IDs returns the list of event ids.
func (l List) IDs() []uint64 {
	ids := []uint64{}

	for _, e := range l {
		ids = append(ids, e.ID)
	}

	return ids
}

// Map is an event collection with their id as index.
type Map map[uint64]*Event

// ToList returns the Map as an ordered List.
func (m Map) ToList() List {
	es := List{}

	for _, e := range m {
		es = append(es, e)
	}

	sort.Sort(es)

	return es
}

// QueryOptions is used to narrow-down event queries.
type QueryOptions struct {
	IDs       []uint64
	IsPrivate *bool
	OwnerIDs  []uint64
	Statuses  []string
	Limit     int
}

// Service for event interactions.
type Service interface {
	service.Lifecycle

	Delete(namespace string, eventID uint64) error
	Put(namespace string, event *Event) (*Event, error)
	Query(namespace string, opts QueryOptions) (List, error)
}

// ServiceMiddleware is a chainable behaviour modifier for Service.
type ServiceMiddleware func(Service) Service

// Event is a gathering guests get invited to.
type Event struct {
	Description  string
	EndTime      time.Time
	ID           uint64
	IsPrivate    bool
	Location     string
	MaxAttendees uint
	OwnerID      uint64
	StartTime    time.Time
	Status       string
	Title        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate performs semantic checks on the passed Event values.
func (e *Event) Validate() error {
	if e.Title == "" {
		return wrapError(ErrInvalidEvent, "title must be set")
	}

	if e.OwnerID == 0 {
		return wrapError(ErrInvalidEvent, "owner must be set")
	}

	switch e.Status {
	case StatusDraft, StatusPublished, StatusCancelled:
		// valid
	default:
		return wrapError(ErrInvalidEvent, "unsupported status '%s'", e.Status)
	}

	if !e.EndTime.IsZero() && e.EndTime.Before(e.StartTime) {
		return wrapError(ErrInvalidEvent, "end time before start time")
	}

	return nil
}

func flakeNamespace(ns string) string {
	return fmt.Sprintf("%s_%s", ns, "events")
}
