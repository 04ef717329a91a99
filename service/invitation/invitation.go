package invitation

import (
	"fmt"
	"sort"
	"time"

	"github.com/adamsinnett/omorgan-events/platform/service"
)

// List is a collection of invitations.
type List []*Invitation

func (l List) Len() int {
	return len(l)
}

func (l List) Less(i, j int) bool {
	return l[i].CreatedAt.After(l[j].CreatedAt)
}

func (l List) Swap(i, j int) {
	l[i], l[j] = l[j], l[i]
}

// Map is an invitation collection with their id as index.
type Map map[uint64]*Invitation

// ToList returns the Map as an ordered List.
func (m Map) ToList() List {
	is := List{}

	for _, i := range m {
		is = append(is, i)
	}

	sort.Sort(is)

	return is
}

// QueryOptions is used to narrow-down invitation queries.
type QueryOptions struct {
	Active   *bool
	EventIDs []uint64
	IDs      []uint64
	Tokens   []string
	Limit    int
}

// Service for invitation interactions.
type Service interface {
	service.Lifecycle

	Put(namespace string, invitation *Invitation) (*Invitation, error)
	Query(namespace string, opts QueryOptions) (List, error)
}

// ServiceMiddleware is a chainable behaviour modifier for Service.
type ServiceMiddleware func(Service) Service

// Invitation is a single-use link to an event. The token is the only
// authorization artifact a guest ever holds.
type Invitation struct {
	Active     bool
	EventID    uint64
	ID         uint64
	RedeemedBy uint64
	Token      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Redeemed indicates if the invitation is bound to an attendee.
func (i *Invitation) Redeemed() bool {
	return i.RedeemedBy != 0
}

// Validate performs semantic checks on the passed Invitation values.
func (i *Invitation) Validate() error {
	if i.EventID == 0 {
		return wrapError(ErrInvalidInvitation, "event must be set")
	}

	if i.Token == "" {
		return wrapError(ErrInvalidInvitation, "token must be set")
	}

	return nil
}

func flakeNamespace(ns string) string {
	return fmt.Sprintf("%s_%s", ns, "invitations")
}
