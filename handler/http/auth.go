package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/net/context"

	"github.com/adamsinnett/omorgan-events/core"
	"github.com/adamsinnett/omorgan-events/service/admin"
)

// AdminLogin exchanges email and password for a signed admin credential.
func AdminLogin(fn core.AdminLoginFunc) Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		p := payloadLogin{}

		err := json.NewDecoder(r.Body).Decode(&p)
		if err != nil {
			respondError(w, 0, wrapError(ErrBadRequest, err.Error()))
			return
		}

		credential, a, err := fn(core.NamespaceDefault, p.Email, p.Password)
		if err != nil {
			respondError(w, 0, err)
			return
		}

		respondJSON(w, http.StatusCreated, &payloadSession{
			admin:      a,
			credential: credential,
		})
	}
}

// GuestAuth exchanges an invitation token for a signed anonymous credential.
func GuestAuth(fn core.GuestAuthFunc) Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		p := payloadTokenExchange{}

		err := json.NewDecoder(r.Body).Decode(&p)
		if err != nil {
			respondError(w, 0, wrapError(ErrBadRequest, err.Error()))
			return
		}

		credential, _, err := fn(core.NamespaceDefault, p.Token)
		if err != nil {
			respondError(w, 0, err)
			return
		}

		respondJSON(w, http.StatusCreated, &payloadSession{
			credential: credential,
		})
	}
}

type payloadLogin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type payloadSession struct {
	admin      *admin.Admin
	credential string
}

func (p *payloadSession) MarshalJSON() ([]byte, error) {
	f := struct {
		Admin      *payloadAdmin `json:"admin,omitempty"`
		Credential string        `json:"credential"`
	}{
		Credential: p.credential,
	}

	if p.admin != nil {
		f.Admin = &payloadAdmin{admin: p.admin}
	}

	return json.Marshal(&f)
}

type payloadAdmin struct {
	admin *admin.Admin
}

func (p *payloadAdmin) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Email       string    `json:"email"`
		ID          string    `json:"id"`
		LastLoginAt time.Time `json:"last_login_at"`
	}{
		Email:       p.admin.Email,
		ID:          strconv.FormatUint(p.admin.ID, 10),
		LastLoginAt: p.admin.LastLoginAt,
	})
}

type payloadTokenExchange struct {
	Token string `json:"invitation_token"`
}
