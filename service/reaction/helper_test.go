package reaction

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/adamsinnett/omorgan-events/platform/generate"
)

type prepareFunc func(t *testing.T, namespace string) Service

func testServicePut(p prepareFunc, t *testing.T) {
	var (
		deleted   = true
		namespace = "service_put"
		service   = p(t, namespace)
	)

	created, err := service.Put(namespace, testReaction())
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

	created.Deleted = true

	updated, err := service.Put(namespace, created)
	if err != nil {
		t.Fatal(err)
	}

	list, err = service.Query(namespace, QueryOptions{
		Deleted: &deleted,
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
}

func testServicePutInvalid(p prepareFunc, t *testing.T) {
	var (
		namespace = "service_put_invalid"
		service   = p(t, namespace)
	)

	r := testReaction()
	r.MessageID = 0

	if _, err := service.Put(namespace, r); !IsInvalidReaction(err) {
		t.Errorf("have %v, want %v", err, ErrInvalidReaction)
	}

	r = testReaction()
	r.Owner = ""

	if _, err := service.Put(namespace, r); !IsInvalidReaction(err) {
		t.Errorf("have %v, want %v", err, ErrInvalidReaction)
	}

	r = testReaction()
	r.Type = ""

	if _, err := service.Put(namespace, r); !IsInvalidReaction(err) {
		t.Errorf("have %v, want %v", err, ErrInvalidReaction)
	}
}

func testServiceQuery(p prepareFunc, t *testing.T) {
	var (
		live      = false
		namespace = "service_query"
		service   = p(t, namespace)
	)

	created, err := service.Put(namespace, testReaction())
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		_, err := service.Put(namespace, testReaction())
		if err != nil {
			t.Fatal(err)
		}
	}

	for i := 0; i < 3; i++ {
		r := testReaction()
		r.Type = "🎉"

		if _, err := service.Put(namespace, r); err != nil {
			t.Fatal(err)
		}
	}

	cases := map[*QueryOptions]int{
		{}:                                     9,
		{Deleted: &live}:                       9,
		{IDs: []uint64{created.ID}}:            1,
		{MessageIDs: []uint64{created.MessageID}}: 1,
		{Owners: []string{created.Owner}}:      1,
		{Types: []string{"🎉"}}:                 3,
		{Limit: 4}:                             4,
		{Owners: []string{"missing"}}:          0,
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

func testReaction() *Reaction {
	return &Reaction{
		MessageID: uint64(rand.Int63()),
		Owner:     generate.RandomString(8) + "@omorgan.test",
		Type:      "❤️",
	}
}
