package core

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	serr "github.com/adamsinnett/omorgan-events/error"
	"github.com/adamsinnett/omorgan-events/platform/token"
	"github.com/adamsinnett/omorgan-events/service/admin"
)

// AdminLoginFunc checks the password against the stored admin record and
// returns a signed admin credential.
type AdminLoginFunc func(
	ns string,
	email, password string,
) (string, *admin.Admin, error)

// AdminLogin checks the password against the stored admin record and returns
// a signed admin credential. Unknown email, disabled account and wrong
// password are indistinguishable to the caller.
func AdminLogin(
	admins admin.Service,
	issuer *token.Issuer,
) AdminLoginFunc {
	return func(ns, email, password string) (string, *admin.Admin, error) {
		enabled := true

		as, err := admins.Query(ns, admin.QueryOptions{
			Emails: []string{
				email,
			},
			Enabled: &enabled,
			Limit:   1,
		})
		if err != nil {
			return "", nil, err
		}

		if len(as) == 0 {
			return "", nil, serr.Wrap(serr.ErrInvalidCredentials, "%s", email)
		}

		a := as[0]

		err = bcrypt.CompareHashAndPassword(
			[]byte(a.PasswordHash),
			[]byte(password),
		)
		if err != nil {
			return "", nil, serr.Wrap(serr.ErrInvalidCredentials, "%s", email)
		}

		credential, err := issuer.IssueAdmin(a.ID, a.Email, token.LifetimeAdmin)
		if err != nil {
			return "", nil, err
		}

		if err := admins.PutLastLogin(ns, a.ID, time.Now().UTC()); err != nil {
			return "", nil, err
		}

		return credential, a, nil
	}
}

// AdminCreateFunc stores a new admin with the password hashed.
type AdminCreateFunc func(
	ns string,
	email, password string,
) (*admin.Admin, error)

// AdminCreate stores a new admin with the password hashed.
func AdminCreate(admins admin.Service) AdminCreateFunc {
	return func(ns, email, password string) (*admin.Admin, error) {
		hash, err := bcrypt.GenerateFromPassword(
			[]byte(password),
			bcrypt.DefaultCost,
		)
		if err != nil {
			return nil, err
		}

		a, err := admins.Put(ns, &admin.Admin{
			Email:        email,
			Enabled:      true,
			PasswordHash: string(hash),
		})
		if err != nil {
			if admin.IsInvalidAdmin(err) {
				return nil, wrapError(ErrInvalidEntity, "%s", err)
			}

			return nil, err
		}

		return a, nil
	}
}
