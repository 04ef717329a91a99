package event

import (
	"time"

	"github.com/adamsinnett/omorgan-events/platform/flake"
)

type memService struct {
	events map[string]Map
}

// MemService returns a memory based Service implementation.
func MemService() Service {
	return &memService{
		events: map[string]Map{},
	}
}

func (s *memService) Delete(ns string, eventID uint64) error {
	if err := s.Setup(ns); err != nil {
		return err
	}

	if _, ok := s.events[ns][eventID]; !ok {
		return wrapError(ErrNotFound, "%d", eventID)
	}

	delete(s.events[ns], eventID)

	return nil
}

func (s *memService) Put(ns string, input *Event) (*Event, error) {
	if err := s.Setup(ns); err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var (
		bucket = s.events[ns]
		now    = time.Now().UTC()
	)

	if input.ID == 0 {
		id, err := flake.NextID(flakeNamespace(ns))
		if err != nil {
			return nil, err
		}

		if input.CreatedAt.IsZero() {
			input.CreatedAt = now
		}

		input.ID = id
	} else {
		existing, ok := bucket[input.ID]
		if !ok {
			return nil, wrapError(ErrNotFound, "%d", input.ID)
		}

		input.CreatedAt = existing.CreatedAt
	}

	input.UpdatedAt = now
	bucket[input.ID] = copyEvent(input)

	return copyEvent(input), nil
}

func (s *memService) Query(ns string, opts QueryOptions) (List, error) {
	if err := s.Setup(ns); err != nil {
		return nil, err
	}

	es := filterList(s.events[ns].ToList(), opts)

	if opts.Limit > 0 && len(es) > opts.Limit {
		es = es[:opts.Limit]
	}

	return es, nil
}

func (s *memService) Setup(ns string) error {
	if _, ok := s.events[ns]; !ok {
		s.events[ns] = Map{}
	}

	return nil
}

func (s *memService) Teardown(ns string) error {
	if _, ok := s.events[ns]; ok {
		delete(s.events, ns)
	}

	return nil
}

func copyEvent(e *Event) *Event {
	old := *e
	return &old
}

func filterList(es List, opts QueryOptions) List {
	fs := List{}

	for _, e := range es {
		if !inIDs(e.ID, opts.IDs) {
			continue
		}

		if opts.IsPrivate != nil && e.IsPrivate != *opts.IsPrivate {
			continue
		}

		if !inIDs(e.OwnerID, opts.OwnerIDs) {
			continue
		}

		if !inStatuses(e.Status, opts.Statuses) {
			continue
		}

		fs = append(fs, e)
	}

	return fs
}

func inIDs(id uint64, ids []uint64) bool {
	if len(ids) == 0 {
		return true
	}

	for _, i := range ids {
		if id == i {
			return true
		}
	}

	return false
}

func inStatuses(status string, statuses []string) bool {
	if len(statuses) == 0 {
		return true
	}

	for _, s := range statuses {
		if status == s {
			return true
		}
	}

	return false
}
