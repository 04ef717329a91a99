package admin

import (
	"fmt"
	"sort"
	"time"

	"github.com/asaskevich/govalidator"

	"github.com/adamsinnett/omorgan-events/platform/service"
)

// List is a collection of admins.
type List []*Admin

func (l List) Len() int {
	return len(l)
}

func (l List) Less(i, j int) bool {
	return l[i].CreatedAt.After(l[j].CreatedAt)
}

func (l List) Swap(i, j int) {
	l[i], l[j] = l[j], l[i]
}

// Map is an admin collection with their id as index.
type Map map[uint64]*Admin

// ToList returns the Map as an ordered List.
func (m Map) ToList() List {
	as := List{}

	for _, a := range m {
		as = append(as, a)
	}

	sort.Sort(as)

	return as
}

// QueryOptions is used to narrow-down admin queries.
type QueryOptions struct {
	Emails  []string
	Enabled *bool
	IDs     []uint64
	Limit   int
}

// Service for admin interactions.
type Service interface {
	service.Lifecycle

	Put(namespace string, admin *Admin) (*Admin, error)
	PutLastLogin(namespace string, adminID uint64, ts time.Time) error
	Query(namespace string, opts QueryOptions) (List, error)
}

// ServiceMiddleware is a chainable behaviour modifier for Service.
type ServiceMiddleware func(Service) Service

// Admin is a password-holding administrator account.
type Admin struct {
	Email        string
	Enabled      bool
	ID           uint64
	PasswordHash string
	LastLoginAt  time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate performs semantic checks on the passed Admin values.
func (a *Admin) Validate() error {
	if a.Email == "" {
		return wrapError(ErrInvalidAdmin, "email must be set")
	}

	if ok := govalidator.IsEmail(a.Email); !ok {
		return wrapError(ErrInvalidAdmin, "invalid email address '%s'", a.Email)
	}

	if a.PasswordHash == "" {
		return wrapError(ErrInvalidAdmin, "password hash must be set")
	}

	return nil
}

func flakeNamespace(ns string) string {
	return fmt.Sprintf("%s_%s", ns, "admins")
}
