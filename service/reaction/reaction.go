package reaction

import (
	"fmt"
	"sort"
	"time"

	"github.com/adamsinnett/omorgan-events/platform/service"
)

// List is a collection of reactions.
type List []*Reaction

func (l List) Len() int {
	return len(l)
}

func (l List) Less(i, j int) bool {
	return l[i].UpdatedAt.After(l[j].UpdatedAt)
}

func (l List) Swap(i, j int) {
	l[i], l[j] = l[j], l[i]
}

// CountsByType returns the number of live reactions per type.
func (l List) CountsByType() map[string]uint {
	cs := map[string]uint{}

	for _, r := range l {
		if r.Deleted {
			continue
		}

		cs[r.Type]++
	}

	return cs
}

// Map is a reaction collection with their id as index.
type Map map[uint64]*Reaction

// ToList returns the Map as an ordered List.
func (m Map) ToList() List {
	rs := List{}

	for _, r := range m {
		rs = append(rs, r)
	}

	sort.Sort(rs)

	return rs
}

// QueryOptions is used to narrow-down reaction queries.
type QueryOptions struct {
	Deleted    *bool
	IDs        []uint64
	MessageIDs []uint64
	Owners     []string
	Types      []string
	Limit      int
}

// Service for reaction interactions.
type Service interface {
	service.Lifecycle

	Put(namespace string, reaction *Reaction) (*Reaction, error)
	Query(namespace string, opts QueryOptions) (List, error)
}

// ServiceMiddleware is a chainable behaviour modifier for Service.
type ServiceMiddleware func(Service) Service

// Reaction expresses an emoji response on a message. Rows are soft-deleted,
// the at-most-one live reaction per owner and message rule is upheld by the
// toggle logic, not the store.
type Reaction struct {
	Deleted   bool
	ID        uint64
	MessageID uint64
	Owner     string
	Type      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate performs semantic checks on the passed Reaction values.
func (r *Reaction) Validate() error {
	if r.MessageID == 0 {
		return wrapError(ErrInvalidReaction, "message must be set")
	}

	if r.Owner == "" {
		return wrapError(ErrInvalidReaction, "owner must be set")
	}

	if r.Type == "" {
		return wrapError(ErrInvalidReaction, "type must be set")
	}

	return nil
}

func flakeNamespace(ns string) string {
	return fmt.Sprintf("%s_%s", ns, "reactions")
}
