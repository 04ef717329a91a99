package generate

import (
	"strings"
	"testing"
)

func TestInviteToken(t *testing.T) {
	token, err := InviteToken()
	if err != nil {
		t.Fatal(err)
	}

	// 32 bytes of input encode to 43 chars without padding.
	if have, want := len(token), 43; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	if strings.ContainsAny(token, "+/=") {
		t.Errorf("token %s contains URL-unsafe characters", token)
	}
}

func TestInviteTokenUnique(t *testing.T) {
	seen := map[string]struct{}{}

	for i := 0; i < 10000; i++ {
		token, err := InviteToken()
		if err != nil {
			t.Fatal(err)
		}

		if _, ok := seen[token]; ok {
			t.Fatalf("duplicate token after %d draws", i)
		}

		seen[token] = struct{}{}
	}
}

func TestRandomString(t *testing.T) {
	if have, want := len(RandomString(12)), 12; have != want {
		t.Errorf("have %v, want %v", have, want)
	}
}
