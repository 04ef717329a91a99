package message

import (
	"time"

	"github.com/adamsinnett/omorgan-events/platform/flake"
)

type memService struct {
	messages map[string]Map
}

// MemService returns a memory based Service implementation.
func MemService() Service {
	return &memService{
		messages: map[string]Map{},
	}
}

func (s *memService) Put(ns string, input *Message) (*Message, error) {
	if err := s.Setup(ns); err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if input.ID != 0 {
		return nil, wrapError(ErrInvalidMessage, "messages are immutable")
	}

	id, err := flake.NextID(flakeNamespace(ns))
	if err != nil {
		return nil, err
	}

	if input.CreatedAt.IsZero() {
		input.CreatedAt = time.Now().UTC()
	}

	input.ID = id
	s.messages[ns][input.ID] = copyMessage(input)

	return copyMessage(input), nil
}

func (s *memService) Query(ns string, opts QueryOptions) (List, error) {
	if err := s.Setup(ns); err != nil {
		return nil, err
	}

	ms := filterList(s.messages[ns].ToList(), opts)

	if opts.Limit > 0 && len(ms) > opts.Limit {
		ms = ms[:opts.Limit]
	}

	return ms, nil
}

func (s *memService) Setup(ns string) error {
	if _, ok := s.messages[ns]; !ok {
		s.messages[ns] = Map{}
	}

	return nil
}

func (s *memService) Teardown(ns string) error {
	if _, ok := s.messages[ns]; ok {
		delete(s.messages, ns)
	}

	return nil
}

func copyMessage(m *Message) *Message {
	old := *m
	return &old
}

func filterList(ms List, opts QueryOptions) List {
	fs := List{}

	for _, m := range ms {
		if !opts.Before.IsZero() && !m.CreatedAt.Before(opts.Before) {
			continue
		}

		if !inIDs(m.EventID, opts.EventIDs) {
			continue
		}

		if !inIDs(m.ID, opts.IDs) {
			continue
		}

		if !inOwners(m.Owner, opts.Owners) {
			continue
		}

		fs = append(fs, m)
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

func inOwners(owner string, owners []string) bool {
	if len(owners) == 0 {
		return true
	}

	for _, o := range owners {
		if owner == o {
			return true
		}
	}

	return false
}
