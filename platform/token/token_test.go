package token

import (
	"testing"
	"time"

	serr "github.com/adamsinnett/omorgan-events/error"
)

var testSecret = []byte("test-secret")

func TestIssueVerifyAdmin(t *testing.T) {
	var (
		issuer   = NewIssuer(testSecret)
		verifier = NewVerifier(testSecret)
	)

	credential, err := issuer.IssueAdmin(123, "a@x.com", LifetimeAdmin)
	if err != nil {
		t.Fatal(err)
	}

	claims, err := verifier.Verify(credential)
	if err != nil {
		t.Fatal(err)
	}

	admin, ok := claims.(*AdminClaims)
	if !ok {
		t.Fatalf("have %T, want *AdminClaims", claims)
	}

	if have, want := admin.SubjectID, uint64(123); have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	if have, want := admin.Email, "a@x.com"; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	lifetime := admin.ExpiresAt.Sub(admin.IssuedAt)
	if have, want := lifetime, LifetimeAdmin; have != want {
		t.Errorf("have %v, want %v", have, want)
	}
}

func TestIssueVerifyGuest(t *testing.T) {
	var (
		issuer   = NewIssuer(testSecret)
		verifier = NewVerifier(testSecret)
	)

	credential, err := issuer.IssueGuest(456, "invite-token", LifetimeGuest)
	if err != nil {
		t.Fatal(err)
	}

	claims, err := verifier.Verify(credential)
	if err != nil {
		t.Fatal(err)
	}

	guest, ok := claims.(*GuestClaims)
	if !ok {
		t.Fatalf("have %T, want *GuestClaims", claims)
	}

	if have, want := guest.SubjectID, uint64(456); have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	if have, want := guest.InvitationToken, "invite-token"; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	lifetime := guest.ExpiresAt.Sub(guest.IssuedAt)
	if have, want := lifetime, LifetimeGuest; have != want {
		t.Errorf("have %v, want %v", have, want)
	}
}

func TestVerifyExpired(t *testing.T) {
	var (
		issuer   = NewIssuer(testSecret)
		verifier = NewVerifier(testSecret)
	)

	credential, err := issuer.IssueAdmin(123, "a@x.com", time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := verifier.Verify(credential); err != nil {
		t.Fatal(err)
	}

	// Advance the verifier clock past the credential lifetime.
	verifier.now = func() time.Time {
		return time.Now().Add(2 * time.Minute)
	}

	_, err = verifier.Verify(credential)
	if !serr.IsExpired(err) {
		t.Errorf("have %v, want %v", err, serr.ErrExpired)
	}
}

func TestVerifyInvalidSignature(t *testing.T) {
	var (
		issuer   = NewIssuer(testSecret)
		verifier = NewVerifier([]byte("other-secret"))
	)

	credential, err := issuer.IssueAdmin(123, "a@x.com", LifetimeAdmin)
	if err != nil {
		t.Fatal(err)
	}

	_, err = verifier.Verify(credential)
	if !serr.IsInvalidSignature(err) {
		t.Errorf("have %v, want %v", err, serr.ErrInvalidSignature)
	}
}

func TestVerifyMalformed(t *testing.T) {
	verifier := NewVerifier(testSecret)

	for _, credential := range []string{
		"",
		"garbage",
		"a.b.c",
	} {
		_, err := verifier.Verify(credential)
		if !serr.IsMalformed(err) {
			t.Errorf("credential %q: have %v, want %v", credential, err, serr.ErrMalformed)
		}
	}
}

func TestVerifyUnknownRole(t *testing.T) {
	var (
		issuer   = NewIssuer(testSecret)
		verifier = NewVerifier(testSecret)
	)

	credential, err := issuer.sign(map[string]interface{}{
		"sub":  "1",
		"role": "superuser",
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	if err != nil {
		t.Fatal(err)
	}

	_, err = verifier.Verify(credential)
	if !serr.IsMalformed(err) {
		t.Errorf("have %v, want %v", err, serr.ErrMalformed)
	}
}
