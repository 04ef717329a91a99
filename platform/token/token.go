package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	serr "github.com/adamsinnett/omorgan-events/error"
)

// Roles carried by a credential.
const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Credential lifetimes.
const (
	LifetimeAdmin = 24 * time.Hour
	LifetimeGuest = 7 * 24 * time.Hour
)

const algHS256 = "HS256"

// Role distinguishes the two identity paths converging on one credential
// format.
type Role string

// Claims is the structured payload embedded in a credential. Consumers
// type-switch on *AdminClaims and *GuestClaims to branch on role.
type Claims interface {
	Expiry() time.Time
	Subject() uint64
}

// AdminClaims identify a password-holding administrator.
type AdminClaims struct {
	SubjectID uint64
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

func (c *AdminClaims) Expiry() time.Time {
	return c.ExpiresAt
}

func (c *AdminClaims) Subject() uint64 {
	return c.SubjectID
}

// GuestClaims identify an anonymous invitee. The invitation token doubles as
// the guest's stable identity for row-level policy decisions.
type GuestClaims struct {
	SubjectID       uint64
	InvitationToken string
	IssuedAt        time.Time
	ExpiresAt       time.Time
}

func (c *GuestClaims) Expiry() time.Time {
	return c.ExpiresAt
}

func (c *GuestClaims) Subject() uint64 {
	return c.SubjectID
}

// Issuer mints signed, time-bounded credentials. Pure given secret and
// clock, no side effects beyond string construction.
type Issuer struct {
	secret []byte
	now    func() time.Time
}

// NewIssuer returns an Issuer signing with the given symmetric secret.
func NewIssuer(secret []byte) *Issuer {
	return &Issuer{
		secret: secret,
		now:    time.Now,
	}
}

// IssueAdmin constructs a signed admin credential valid for lifetime.
func (i *Issuer) IssueAdmin(
	subjectID uint64,
	email string,
	lifetime time.Duration,
) (string, error) {
	now := i.now()

	return i.sign(jwt.MapClaims{
		"sub":   strconv.FormatUint(subjectID, 10),
		"email": email,
		"role":  string(RoleAdmin),
		"iat":   now.Unix(),
		"exp":   now.Add(lifetime).Unix(),
	})
}

// IssueGuest constructs a signed anonymous credential valid for lifetime,
// bound to the invitation token it was exchanged for.
func (i *Issuer) IssueGuest(
	subjectID uint64,
	invitationToken string,
	lifetime time.Duration,
) (string, error) {
	now := i.now()

	return i.sign(jwt.MapClaims{
		"sub":              strconv.FormatUint(subjectID, 10),
		"invitation_token": invitationToken,
		"role":             string(RoleUser),
		"iat":              now.Unix(),
		"exp":              now.Add(lifetime).Unix(),
	})
}

func (i *Issuer) sign(claims jwt.MapClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Verifier validates credential integrity and expiry and extracts the
// embedded claim set. Issuer and Verifier must share algorithm and secret.
type Verifier struct {
	secret []byte
	now    func() time.Time
}

// NewVerifier returns a Verifier for credentials signed with secret.
func NewVerifier(secret []byte) *Verifier {
	return &Verifier{
		secret: secret,
		now:    time.Now,
	}
}

// Verify checks the credential and returns its claim set. A credential that
// verifies carries a trustworthy role and subject for policy decisions.
func (v *Verifier) Verify(credential string) (Claims, error) {
	t, err := jwt.Parse(
		credential,
		func(t *jwt.Token) (interface{}, error) {
			return v.secret, nil
		},
		jwt.WithValidMethods([]string{algHS256}),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, serr.Wrap(serr.ErrExpired, "credential past expiry")
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, serr.Wrap(serr.ErrInvalidSignature, "signature mismatch")
		default:
			return nil, serr.Wrap(serr.ErrMalformed, "%s", err)
		}
	}

	payload, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return nil, serr.Wrap(serr.ErrMalformed, "unexpected claim payload")
	}

	return claimSet(payload)
}

func claimSet(payload jwt.MapClaims) (Claims, error) {
	sub, err := stringClaim(payload, "sub")
	if err != nil {
		return nil, err
	}

	subjectID, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return nil, serr.Wrap(serr.ErrMalformed, "subject '%s' not numeric", sub)
	}

	var (
		issuedAt  = timeClaim(payload, "iat")
		expiresAt = timeClaim(payload, "exp")
	)

	role, err := stringClaim(payload, "role")
	if err != nil {
		return nil, err
	}

	switch Role(role) {
	case RoleAdmin:
		email, err := stringClaim(payload, "email")
		if err != nil {
			return nil, err
		}

		return &AdminClaims{
			SubjectID: subjectID,
			Email:     email,
			IssuedAt:  issuedAt,
			ExpiresAt: expiresAt,
		}, nil
	case RoleUser:
		invitationToken, err := stringClaim(payload, "invitation_token")
		if err != nil {
			return nil, err
		}

		return &GuestClaims{
			SubjectID:       subjectID,
			InvitationToken: invitationToken,
			IssuedAt:        issuedAt,
			ExpiresAt:       expiresAt,
		}, nil
	}

	return nil, serr.Wrap(serr.ErrMalformed, "unknown role '%s'", role)
}

func stringClaim(payload jwt.MapClaims, key string) (string, error) {
	v, ok := payload[key].(string)
	if !ok || v == "" {
		return "", serr.Wrap(serr.ErrMalformed, "claim '%s' missing", key)
	}

	return v, nil
}

func timeClaim(payload jwt.MapClaims, key string) time.Time {
	if v, ok := payload[key].(float64); ok {
		return time.Unix(int64(v), 0).UTC()
	}

	return time.Time{}
}
