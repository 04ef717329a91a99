package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	serr "github.com/adamsinnett/omorgan-events/error"
)

// Routes exposed by the gateway.
const (
	routeAdminLogin = "%s/api/auth"
	routeGuestAuth  = "%s/api/anonymous-auth"
)

// API talks to the gateway over HTTP. Transport failures are wrapped as
// NetworkFailure, error responses are mapped back onto the shared taxonomy.
type API struct {
	base   string
	client *http.Client
}

// NewAPI returns an API for the gateway reachable at base.
func NewAPI(base string, client *http.Client) *API {
	if client == nil {
		client = http.DefaultClient
	}

	return &API{
		base:   base,
		client: client,
	}
}

// AdminLogin exchanges email and password for a signed admin credential.
func (a *API) AdminLogin(email, password string) (string, error) {
	res := struct {
		Credential string `json:"credential"`
	}{}

	err := a.post(fmt.Sprintf(routeAdminLogin, a.base), struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{
		Email:    email,
		Password: password,
	}, &res)
	if err != nil {
		return "", err
	}

	return res.Credential, nil
}

// GuestAuth exchanges an invitation token for a signed anonymous credential.
func (a *API) GuestAuth(invitationToken string) (string, error) {
	res := struct {
		Credential string `json:"credential"`
	}{}

	err := a.post(fmt.Sprintf(routeGuestAuth, a.base), struct {
		Token string `json:"invitation_token"`
	}{
		Token: invitationToken,
	}, &res)
	if err != nil {
		return "", err
	}

	return res.Credential, nil
}

func (a *API) post(url string, payload, result interface{}) error {
	body := &bytes.Buffer{}

	err := json.NewEncoder(body).Encode(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", url, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.ContentLength = int64(body.Len())

	res, err := a.client.Do(req)
	if err != nil {
		return serr.Wrap(serr.ErrNetworkFailure, "%s", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return apiStatusError(res)
	}

	return json.NewDecoder(res.Body).Decode(result)
}

func apiStatusError(res *http.Response) error {
	f := struct {
		Errors []struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"errors"`
	}{}

	msg := res.Status

	if err := json.NewDecoder(res.Body).Decode(&f); err == nil && len(f.Errors) > 0 {
		msg = f.Errors[0].Message
	}

	switch res.StatusCode {
	case http.StatusUnauthorized:
		return serr.Wrap(serr.ErrInvalidCredentials, "%s", msg)
	case http.StatusNotFound:
		return serr.Wrap(serr.ErrNotFound, "%s", msg)
	case http.StatusGone:
		return serr.Wrap(serr.ErrInactive, "%s", msg)
	}

	return fmt.Errorf("unexpected response: %s", msg)
}
