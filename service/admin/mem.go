package admin

import (
	"time"

	"github.com/adamsinnett/omorgan-events/platform/flake"
)

type memService struct {
	admins map[string]Map
}

// MemService returns a memory based Service implementation.
func MemService() Service {
	return &memService{
		admins: map[string]Map{},
	}
}

func (s *memService) Put(ns string, input *Admin) (*Admin, error) {
	if err := s.Setup(ns); err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var (
		bucket = s.admins[ns]
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
	bucket[input.ID] = copyAdmin(input)

	return copyAdmin(input), nil
}

func (s *memService) PutLastLogin(ns string, adminID uint64, ts time.Time) error {
	if err := s.Setup(ns); err != nil {
		return err
	}

	a, ok := s.admins[ns][adminID]
	if !ok {
		return wrapError(ErrNotFound, "%d", adminID)
	}

	a.LastLoginAt = ts.UTC()

	return nil
}

func (s *memService) Query(ns string, opts QueryOptions) (List, error) {
	if err := s.Setup(ns); err != nil {
		return nil, err
	}

	as := filterList(s.admins[ns].ToList(), opts)

	if opts.Limit > 0 && len(as) > opts.Limit {
		as = as[:opts.Limit]
	}

	return as, nil
}

func (s *memService) Setup(ns string) error {
	if _, ok := s.admins[ns]; !ok {
		s.admins[ns] = Map{}
	}

	return nil
}

func (s *memService) Teardown(ns string) error {
	if _, ok := s.admins[ns]; ok {
		delete(s.admins, ns)
	}

	return nil
}

func copyAdmin(a *Admin) *Admin {
	old := *a
	return &old
}

func filterList(as List, opts QueryOptions) List {
	fs := List{}

	for _, a := range as {
		if !inEmails(a.Email, opts.Emails) {
			continue
		}

		if opts.Enabled != nil && a.Enabled != *opts.Enabled {
			continue
		}

		if !inIDs(a.ID, opts.IDs) {
			continue
		}

		fs = append(fs, a)
	}

	return fs
}

func inEmails(email string, emails []string) bool {
	if len(emails) == 0 {
		return true
	}

	for _, e := range emails {
		if email == e {
			return true
		}
	}

	return false
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
