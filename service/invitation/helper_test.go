package invitation

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/adamsinnett/omorgan-events/platform/generate"
)

type prepareFunc func(t *testing.T, namespace string) Service

func testServicePut(p prepareFunc, t *testing.T) {
	var (
		inactive  = false
		namespace = "service_put"
		service   = p(t, namespace)
	)

	created, err := service.Put(namespace, testInvitation())
	if err != nil {
		t.Fatal(err)
	}

	list, err := service.Query(namespace, QueryOptions{
		IDs: []uint64{
			created.ID,
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if have, want := len(list), 1; have != want {
		t.Fatalf("have %v, want %v", have, want)
	}

	if have, want := list[0], created; !reflect.DeepEqual(have, want) {
		t.Fatalf("\nhave %v\nwant %v", have, want)
	}

	created.Active = false
	created.RedeemedBy = uint64(rand.Int63())

	updated, err := service.Put(namespace, created)
	if err != nil {
		t.Fatal(err)
	}

	list, err = service.Query(namespace, QueryOptions{
		Active: &inactive,
		IDs: []uint64{
			created.ID,
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if have, want := len(list), 1; have != want {
		t.Fatalf("have %v, want %v", have, want)
	}

	if have, want := list[0], updated; !reflect.DeepEqual(have, want) {
		t.Fatalf("\nhave %v\nwant %v", have, want)
	}

	if !list[0].Redeemed() {
		t.Errorf("expected invitation to be redeemed")
	}
}

func testServicePutCollision(p prepareFunc, t *testing.T) {
	var (
		namespace = "service_put_collision"
		service   = p(t, namespace)
	)

	created, err := service.Put(namespace, testInvitation())
	if err != nil {
		t.Fatal(err)
	}

	i := testInvitation()
	i.Token = created.Token

	if _, err := service.Put(namespace, i); !IsTokenCollision(err) {
		t.Errorf("have %v, want %v", err, ErrTokenCollision)
	}
}

func testServicePutInvalid(p prepareFunc, t *testing.T) {
	var (
		namespace = "service_put_invalid"
		service   = p(t, namespace)
	)

	i := testInvitation()
	i.EventID = 0

	if _, err := service.Put(namespace, i); !IsInvalidInvitation(err) {
		t.Errorf("have %v, want %v", err, ErrInvalidInvitation)
	}

	i = testInvitation()
	i.Token = ""

	if _, err := service.Put(namespace, i); !IsInvalidInvitation(err) {
		t.Errorf("have %v, want %v", err, ErrInvalidInvitation)
	}
}

func testServiceQuery(p prepareFunc, t *testing.T) {
	var (
		active    = true
		namespace = "service_query"
		service   = p(t, namespace)
	)

	created, err := service.Put(namespace, testInvitation())
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		_, err := service.Put(namespace, testInvitation())
		if err != nil {
			t.Fatal(err)
		}
	}

	for i := 0; i < 3; i++ {
		in := testInvitation()
		in.Active = false

		if _, err := service.Put(namespace, in); err != nil {
			t.Fatal(err)
		}
	}

	cases := map[*QueryOptions]int{
		{}:                                  9,
		{Active: &active}:                   6,
		{EventIDs: []uint64{created.EventID}}: 1,
		{IDs: []uint64{created.ID}}:         1,
		{Tokens: []string{created.Token}}:   1,
		{Limit: 4}:                          4,
		{Tokens: []string{"missing"}}:       0,
	}

	for opts, want := range cases {
		list, err := service.Query(namespace, *opts)
		if err != nil {
			t.Fatal(err)
		}

		if have := len(list); have != want {
			t.Errorf("have %v, want %v", have, want)
		}
	}
}

func testInvitation() *Invitation {
	token, err := generate.InviteToken()
	if err != nil {
		panic(err)
	}

	return &Invitation{
		Active:  true,
		EventID: uint64(rand.Int63()),
		Token:   token,
	}
}
