package generate

import (
	"crypto/rand"
	"encoding/base64"
	mrand "math/rand"
)

const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// inviteTokenBytes is the entropy backing an invitation token. 32 bytes keep
// the collision probability negligible without a uniqueness retry loop.
const inviteTokenBytes = 32

// InviteToken returns a URL-safe token from 256 bits of cryptographically
// secure random input.
func InviteToken() (string, error) {
	bs := make([]byte, inviteTokenBytes)

	if _, err := rand.Read(bs); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(bs), nil
}

// RandomBytes returns a slice of random bytes from the given source.
func RandomBytes(src mrand.Source, n int) []byte {
	var (
		r  = mrand.New(src)
		bs = make([]byte, n)
	)

	for i := range bs {
		bs[i] = charset[r.Intn(len(charset))]
	}

	return bs
}

// RandomString returns a random alphanumeric string of length n, suitable
// for test fixtures, not for secrets.
func RandomString(n int) string {
	bs := make([]byte, n)

	for i := range bs {
		bs[i] = charset[mrand.Intn(len(charset))]
	}

	return string(bs)
}
