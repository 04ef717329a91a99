package reaction

import (
	"time"

	"github.com/adamsinnett/omorgan-events/platform/flake"
)

type memService struct {
	reactions map[string]Map
}

// MemService returns a memory based Service implementation.
func MemService() Service {
	return &memService{
		reactions: map[string]Map{},
	}
}

func (s *memService) Put(ns string, input *Reaction) (*Reaction, error) {
	if err := s.Setup(ns); err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var (
		bucket = s.reactions[ns]
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
		input.MessageID = existing.MessageID
		input.Owner = existing.Owner
	}

	input.UpdatedAt = now
	bucket[input.ID] = copyReaction(input)

	return copyReaction(input), nil
}

func (s *memService) Query(ns string, opts QueryOptions) (List, error) {
	if err := s.Setup(ns); err != nil {
		return nil, err
	}

	rs := filterList(s.reactions[ns].ToList(), opts)

	if opts.Limit > 0 && len(rs) > opts.Limit {
		rs = rs[:opts.Limit]
	}

	return rs, nil
}

func (s *memService) Setup(ns string) error {
	if _, ok := s.reactions[ns]; !ok {
		s.reactions[ns] = Map{}
	}

	return nil
}

func (s *memService) Teardown(ns string) error {
	if _, ok := s.reactions[ns]; ok {
		delete(s.reactions, ns)
	}

	return nil
}

func copyReaction(r *Reaction) *Reaction {
	old := *r
	return &old
}

func filterList(rs List, opts QueryOptions) List {
	fs := List{}

	for _, r := range rs {
		if opts.Deleted != nil && r.Deleted != *opts.Deleted {
			continue
		}

		if !inIDs(r.ID, opts.IDs) {
			continue
		}

		if !inIDs(r.MessageID, opts.MessageIDs) {
			continue
		}

		if !inStrings(r.Owner, opts.Owners) {
			continue
		}

		if !inStrings(r.Type, opts.Types) {
			continue
		}

		fs = append(fs, r)
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

func inStrings(s string, ss []string) bool {
	if len(ss) == 0 {
		return true
	}

	for _, c := range ss {
		if s == c {
			return true
		}
	}

	return false
}
