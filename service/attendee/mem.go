package attendee

import (
	"time"

	"github.com/adamsinnett/omorgan-events/platform/flake"
)

type memService struct {
	attendees map[string]Map
}

// MemService returns a memory based Service implementation.
func MemService() Service {
	return &memService{
		attendees: map[string]Map{},
	}
}

func (s *memService) Put(ns string, input *Attendee) (*Attendee, error) {
	if err := s.Setup(ns); err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var (
		bucket = s.attendees[ns]
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
		input.EventID = existing.EventID
		input.InvitationToken = existing.InvitationToken
	}

	input.UpdatedAt = now
	bucket[input.ID] = copyAttendee(input)

	return copyAttendee(input), nil
}

func (s *memService) Query(ns string, opts QueryOptions) (List, error) {
	if err := s.Setup(ns); err != nil {
		return nil, err
	}

	as := filterList(s.attendees[ns].ToList(), opts)

	if opts.Limit > 0 && len(as) > opts.Limit {
		as = as[:opts.Limit]
	}

	return as, nil
}

func (s *memService) Setup(ns string) error {
	if _, ok := s.attendees[ns]; !ok {
		s.attendees[ns] = Map{}
	}

	return nil
}

func (s *memService) Teardown(ns string) error {
	if _, ok := s.attendees[ns]; ok {
		delete(s.attendees, ns)
	}

	return nil
}

func copyAttendee(a *Attendee) *Attendee {
	old := *a
	return &old
}

func filterList(as List, opts QueryOptions) List {
	fs := List{}

	for _, a := range as {
		if !inIDs(a.EventID, opts.EventIDs) {
			continue
		}

		if !inIDs(a.ID, opts.IDs) {
			continue
		}

		if !inStrings(a.InvitationToken, opts.InvitationTokens) {
			continue
		}

		if !inStrings(a.Status, opts.Statuses) {
			continue
		}

		fs = append(fs, a)
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
