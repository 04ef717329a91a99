package attendee

import (
	"fmt"
	"sort"
	"time"

	"github.com/adamsinnett/omorgan-events/platform/service"
)

// RSVP answers an attendee can give.
const (
	StatusAttending = "attending"
	StatusMaybe     = "maybe"
	StatusDeclined  = "declined"
)

// List is a collection of attendees.
type List []*Attendee

func (l List) Len() int {
	return len(l)
}

func (l List) Less(i, j int) bool {
	return l[i].CreatedAt.After(l[j].CreatedAt)
}

func (l List) Swap(i, j int) {
	l[i], l[j] = l[j], l[i]
}

// GuestCounts returns the sum of guests over all attendees.
func (l List) GuestCounts() uint {
	total := uint(0)

	for _, a := range l {
		total += a.GuestCount
	}

	return total
}

// Map is an attendee collection with their id as index.
type Map map[uint64]*Attendee

// ToList returns the Map as an ordered List.
func (m Map) ToList() List {
	as := List{}

	for _, a := range m {
		as = append(as, a)
	}

	sort.Sort(as)

	return as
}

// QueryOptions is used to narrow-down attendee queries.
type QueryOptions struct {
	EventIDs         []uint64
	IDs              []uint64
	InvitationTokens []string
	Statuses         []string
	Limit            int
}

// Service for attendee interactions.
type Service interface {
	service.Lifecycle

	Put(namespace string, attendee *Attendee) (*Attendee, error)
	Query(namespace string, opts QueryOptions) (List, error)
}

// ServiceMiddleware is a chainable behaviour modifier for Service.
type ServiceMiddleware func(Service) Service

// Attendee is a guest's RSVP for an event, bound to the invitation token it
// was created through.
type Attendee struct {
	Email           string
	EventID         uint64
	GuestCount      uint
	ID              uint64
	InvitationToken string
	Name            string
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate performs semantic checks on the passed Attendee values.
func (a *Attendee) Validate() error {
	if a.EventID == 0 {
		return wrapError(ErrInvalidAttendee, "event must be set")
	}

	if a.Name == "" {
		return wrapError(ErrInvalidAttendee, "name must be set")
	}

	switch a.Status {
	case StatusAttending, StatusMaybe, StatusDeclined:
		// valid
	default:
		return wrapError(ErrInvalidAttendee, "unsupported status '%s'", a.Status)
	}

	if a.GuestCount < 1 {
		return wrapError(ErrInvalidAttendee, "guest count must be at least 1")
	}

	if a.InvitationToken == "" {
		return wrapError(ErrInvalidAttendee, "invitation token must be set")
	}

	return nil
}

func flakeNamespace(ns string) string {
	return fmt.Sprintf("%s_%s", ns, "attendees")
}
