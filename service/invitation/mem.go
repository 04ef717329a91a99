package invitation

import (
	"time"

	"github.com/adamsinnett/omorgan-events/platform/flake"
)

type memService struct {
	invitations map[string]Map
}

// MemService returns a memory based Service implementation.
func MemService() Service {
	return &memService{
		invitations: map[string]Map{},
	}
}

func (s *memService) Put(ns string, input *Invitation) (*Invitation, error) {
	if err := s.Setup(ns); err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var (
		bucket = s.invitations[ns]
		now    = time.Now().UTC()
	)

	if input.ID == 0 {
		for _, i := range bucket {
			if i.Token == input.Token {
				return nil, wrapError(ErrTokenCollision, "token '%s'", input.Token)
			}
		}

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
		input.Token = existing.Token
	}

	input.UpdatedAt = now
	bucket[input.ID] = copyInvitation(input)

	return copyInvitation(input), nil
}

func (s *memService) Query(ns string, opts QueryOptions) (List, error) {
	if err := s.Setup(ns); err != nil {
		return nil, err
	}

	is := filterList(s.invitations[ns].ToList(), opts)

	if opts.Limit > 0 && len(is) > opts.Limit {
		is = is[:opts.Limit]
	}

	return is, nil
}

func (s *memService) Setup(ns string) error {
	if _, ok := s.invitations[ns]; !ok {
		s.invitations[ns] = Map{}
	}

	return nil
}

func (s *memService) Teardown(ns string) error {
	if _, ok := s.invitations[ns]; ok {
		delete(s.invitations, ns)
	}

	return nil
}

func copyInvitation(i *Invitation) *Invitation {
	old := *i
	return &old
}

func filterList(is List, opts QueryOptions) List {
	fs := List{}

	for _, i := range is {
		if opts.Active != nil && i.Active != *opts.Active {
			continue
		}

		if !inIDs(i.EventID, opts.EventIDs) {
			continue
		}

		if !inIDs(i.ID, opts.IDs) {
			continue
		}

		if !inTokens(i.Token, opts.Tokens) {
			continue
		}

		fs = append(fs, i)
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

func inTokens(token string, tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}

	for _, t := range tokens {
		if token == t {
			return true
		}
	}

	return false
}
