package client

import (
	"fmt"
	"net/http"

	"github.com/adamsinnett/omorgan-events/platform/token"
)

// States of a client-held session.
const (
	StateAuthenticated   State = "authenticated"
	StatePendingExchange State = "pending_exchange"
	StateUnauthenticated State = "unauthenticated"
)

const storeKeyCredential = "credential"

// State names the phase the session is in.
type State string

// Session is the client-held identity state machine. It persists the signed
// credential through the Store so the identity survives reloads, and it
// verifies restored credentials locally without a server round-trip.
type Session struct {
	api        *API
	claims     token.Claims
	credential string
	state      State
	store      Store
	verifier   *token.Verifier
}

// NewSession returns a Session in the Unauthenticated state. Call Init to
// restore persisted identity.
func NewSession(api *API, store Store, verifier *token.Verifier) *Session {
	return &Session{
		api:      api,
		state:    StateUnauthenticated,
		store:    store,
		verifier: verifier,
	}
}

// Authorize attaches the held credential to the request. It fails if the
// session is not authenticated.
func (s *Session) Authorize(r *http.Request) error {
	if s.state != StateAuthenticated {
		return fmt.Errorf("session not authenticated")
	}

	r.Header.Set("Authorization", "Bearer "+s.credential)

	return nil
}

// Claims returns the claim set of the held credential, nil when not
// authenticated.
func (s *Session) Claims() token.Claims {
	return s.claims
}

// Credential returns the held credential string, empty when not
// authenticated.
func (s *Session) Credential() string {
	return s.credential
}

// Init restores persisted identity. An absent, expired or malformed
// persisted credential clears the session to Unauthenticated, it is not an
// error.
func (s *Session) Init() error {
	credential, err := s.store.Get(storeKeyCredential)
	if err != nil {
		s.clear()
		return nil
	}

	claims, err := s.verifier.Verify(credential)
	if err != nil {
		s.store.Delete(storeKeyCredential)
		s.clear()
		return nil
	}

	s.hold(credential, claims)

	return nil
}

// Login exchanges admin credentials for a signed credential and transitions
// to Authenticated(admin). Failure transitions back to Unauthenticated.
func (s *Session) Login(email, password string) error {
	credential, err := s.api.AdminLogin(email, password)
	if err != nil {
		s.clear()
		return err
	}

	return s.persist(credential)
}

// Logout discards the held credential and clears the store. Credentials are
// self-expiring, no server-side revocation happens.
func (s *Session) Logout() error {
	s.clear()

	return s.store.Delete(storeKeyCredential)
}

// PresentInvitation transitions towards Authenticated(user) for the given
// invitation token. The exchange is skipped when a non-expired credential
// bound to the same token is already held.
func (s *Session) PresentInvitation(invitationToken string) error {
	if s.state == StateAuthenticated {
		if c, ok := s.claims.(*token.GuestClaims); ok && c.InvitationToken == invitationToken {
			return nil
		}
	}

	s.state = StatePendingExchange

	credential, err := s.api.GuestAuth(invitationToken)
	if err != nil {
		s.clear()
		return err
	}

	return s.persist(credential)
}

// State returns the phase the session is in.
func (s *Session) State() State {
	return s.state
}

func (s *Session) clear() {
	s.claims = nil
	s.credential = ""
	s.state = StateUnauthenticated
}

func (s *Session) hold(credential string, claims token.Claims) {
	s.claims = claims
	s.credential = credential
	s.state = StateAuthenticated
}

func (s *Session) persist(credential string) error {
	claims, err := s.verifier.Verify(credential)
	if err != nil {
		s.clear()
		return err
	}

	if err := s.store.Put(storeKeyCredential, credential); err != nil {
		s.clear()
		return err
	}

	s.hold(credential, claims)

	return nil
}
