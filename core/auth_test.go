package core

import (
	"testing"

	serr "github.com/adamsinnett/omorgan-events/error"
	"github.com/adamsinnett/omorgan-events/platform/token"
	"github.com/adamsinnett/omorgan-events/service/event"
	"github.com/adamsinnett/omorgan-events/service/invitation"
)

func TestGuestAuth(t *testing.T) {
	var (
		events      = event.MemService()
		invitations = invitation.MemService()
		issuer      = token.NewIssuer(testSecret)
		verifier    = token.NewVerifier(testSecret)
		fn          = GuestAuth(invitations, issuer)
	)

	e := testSetupEvent(t, events, 1)

	i, err := InvitationCreate(events, invitations)(NamespaceDefault, e.OwnerID, e.ID)
	if err != nil {
		t.Fatal(err)
	}

	credential, got, err := fn(NamespaceDefault, i.Token)
	if err != nil {
		t.Fatal(err)
	}

	if have, want := got.ID, i.ID; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	claims, err := verifier.Verify(credential)
	if err != nil {
		t.Fatal(err)
	}

	gc, ok := claims.(*token.GuestClaims)
	if !ok {
		t.Fatalf("unexpected claims %T", claims)
	}

	if have, want := gc.InvitationToken, i.Token; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	lifetime := gc.ExpiresAt.Sub(gc.IssuedAt)

	if have, want := lifetime, token.LifetimeGuest; have != want {
		t.Errorf("have %v, want %v", have, want)
	}
}

func TestGuestAuthNotFound(t *testing.T) {
	var (
		invitations = invitation.MemService()
		issuer      = token.NewIssuer(testSecret)
		fn          = GuestAuth(invitations, issuer)
	)

	if _, _, err := fn(NamespaceDefault, "unknown"); !serr.IsNotFound(err) {
		t.Errorf("have %v, want %v", err, serr.ErrNotFound)
	}
}

func TestGuestAuthRevoked(t *testing.T) {
	var (
		events      = event.MemService()
		invitations = invitation.MemService()
		issuer      = token.NewIssuer(testSecret)
		fn          = GuestAuth(invitations, issuer)
	)

	e := testSetupEvent(t, events, 1)

	i, err := InvitationCreate(events, invitations)(NamespaceDefault, e.OwnerID, e.ID)
	if err != nil {
		t.Fatal(err)
	}

	_, err = InvitationRevoke(events, invitations)(NamespaceDefault, e.OwnerID, i.ID)
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := fn(NamespaceDefault, i.Token); !serr.IsInactive(err) {
		t.Errorf("have %v, want %v", err, serr.ErrInactive)
	}
}

func TestWallAuthorize(t *testing.T) {
	var (
		events      = event.MemService()
		invitations = invitation.MemService()
		fn          = WallAuthorize(events, invitations)
	)

	e := testSetupEvent(t, events, 1)
	other := testSetupEvent(t, events, 2)

	i, err := InvitationCreate(events, invitations)(NamespaceDefault, e.OwnerID, e.ID)
	if err != nil {
		t.Fatal(err)
	}

	owner := &token.AdminClaims{SubjectID: e.OwnerID}

	if err := fn(NamespaceDefault, owner, e.ID); err != nil {
		t.Fatal(err)
	}

	if err := fn(NamespaceDefault, owner, other.ID); !IsUnauthorized(err) {
		t.Errorf("have %v, want %v", err, ErrUnauthorized)
	}

	guest := &token.GuestClaims{SubjectID: i.ID, InvitationToken: i.Token}

	if err := fn(NamespaceDefault, guest, e.ID); err != nil {
		t.Fatal(err)
	}

	if err := fn(NamespaceDefault, guest, other.ID); !IsUnauthorized(err) {
		t.Errorf("have %v, want %v", err, ErrUnauthorized)
	}

	stranger := &token.GuestClaims{SubjectID: 9, InvitationToken: "unknown"}

	if err := fn(NamespaceDefault, stranger, e.ID); !IsUnauthorized(err) {
		t.Errorf("have %v, want %v", err, ErrUnauthorized)
	}
}
