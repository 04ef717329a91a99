package core

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	serr "github.com/adamsinnett/omorgan-events/error"
	"github.com/adamsinnett/omorgan-events/platform/token"
	"github.com/adamsinnett/omorgan-events/service/admin"
)

var testSecret = []byte("service_under_test")

func TestAdminLogin(t *testing.T) {
	var (
		admins   = admin.MemService()
		issuer   = token.NewIssuer(testSecret)
		verifier = token.NewVerifier(testSecret)
		fn       = AdminLogin(admins, issuer)
	)

	created := testSetupAdmin(t, admins, "a@omorgan.test", "secret")

	credential, a, err := fn(NamespaceDefault, "a@omorgan.test", "secret")
	if err != nil {
		t.Fatal(err)
	}

	if have, want := a.ID, created.ID; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	claims, err := verifier.Verify(credential)
	if err != nil {
		t.Fatal(err)
	}

	ac, ok := claims.(*token.AdminClaims)
	if !ok {
		t.Fatalf("unexpected claims %T", claims)
	}

	if have, want := ac.SubjectID, created.ID; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	if have, want := ac.Email, created.Email; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	lifetime := ac.ExpiresAt.Sub(ac.IssuedAt)

	if have, want := lifetime, token.LifetimeAdmin; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	list, err := admins.Query(NamespaceDefault, admin.QueryOptions{
		IDs: []uint64{
			created.ID,
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if list[0].LastLoginAt.IsZero() {
		t.Errorf("expected last login to be set")
	}
}

func TestAdminLoginInvalid(t *testing.T) {
	var (
		admins = admin.MemService()
		issuer = token.NewIssuer(testSecret)
		fn     = AdminLogin(admins, issuer)
	)

	testSetupAdmin(t, admins, "a@omorgan.test", "secret")

	d := testSetupAdmin(t, admins, "disabled@omorgan.test", "secret")
	d.Enabled = false

	if _, err := admins.Put(NamespaceDefault, d); err != nil {
		t.Fatal(err)
	}

	cases := map[string][2]string{
		"unknown email":  {"missing@omorgan.test", "secret"},
		"wrong password": {"a@omorgan.test", "hunter2"},
		"disabled admin": {"disabled@omorgan.test", "secret"},
	}

	for name, c := range cases {
		_, _, err := fn(NamespaceDefault, c[0], c[1])
		if !serr.IsInvalidCredentials(err) {
			t.Errorf("%s: have %v, want %v", name, err, serr.ErrInvalidCredentials)
		}
	}
}

func TestAdminCreate(t *testing.T) {
	var (
		admins = admin.MemService()
		fn     = AdminCreate(admins)
	)

	a, err := fn(NamespaceDefault, "a@omorgan.test", "secret")
	if err != nil {
		t.Fatal(err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("secret"))
	if err != nil {
		t.Errorf("expected stored hash to match password: %s", err)
	}

	if _, err := fn(NamespaceDefault, "nope", "secret"); !IsInvalidEntity(err) {
		t.Errorf("have %v, want %v", err, ErrInvalidEntity)
	}
}

func testSetupAdmin(
	t *testing.T,
	admins admin.Service,
	email, password string,
) *admin.Admin {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	a, err := admins.Put(NamespaceDefault, &admin.Admin{
		Email:        email,
		Enabled:      true,
		PasswordHash: string(hash),
	})
	if err != nil {
		t.Fatal(err)
	}

	return a
}
