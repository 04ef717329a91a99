package message

import (
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/adamsinnett/omorgan-events/platform/generate"
)

type prepareFunc func(t *testing.T, namespace string) Service

func testServicePut(p prepareFunc, t *testing.T) {
	var (
		namespace = "service_put"
		service   = p(t, namespace)
	)

	created, err := service.Put(namespace, testMessage())
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

	if _, err := service.Put(namespace, created); !IsInvalidMessage(err) {
		t.Errorf("have %v, want %v", err, ErrInvalidMessage)
	}
}

func testServicePutInvalid(p prepareFunc, t *testing.T) {
	var (
		namespace = "service_put_invalid"
		service   = p(t, namespace)
	)

	m := testMessage()
	m.Content = ""

	if _, err := service.Put(namespace, m); !IsInvalidMessage(err) {
		t.Errorf("have %v, want %v", err, ErrInvalidMessage)
	}

	m = testMessage()
	m.EventID = 0

	if _, err := service.Put(namespace, m); !IsInvalidMessage(err) {
		t.Errorf("have %v, want %v", err, ErrInvalidMessage)
	}

	m = testMessage()
	m.Owner = ""

	if _, err := service.Put(namespace, m); !IsInvalidMessage(err) {
		t.Errorf("have %v, want %v", err, ErrInvalidMessage)
	}
}

func testServiceQuery(p prepareFunc, t *testing.T) {
	var (
		namespace = "service_query"
		service   = p(t, namespace)
	)

	created, err := service.Put(namespace, testMessage())
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 7; i++ {
		_, err := service.Put(namespace, testMessage())
		if err != nil {
			t.Fatal(err)
		}
	}

	cases := map[*QueryOptions]int{
		{}:                                  8,
		{EventIDs: []uint64{created.EventID}}: 1,
		{IDs: []uint64{created.ID}}:         1,
		{Owners: []string{created.Owner}}:   1,
		{Limit: 4}:                          4,
		{Owners: []string{"missing"}}:       0,
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

	list, err := service.Query(namespace, QueryOptions{
		Before: created.CreatedAt.Add(time.Minute),
		EventIDs: []uint64{
			created.EventID,
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if have, want := len(list), 1; have != want {
		t.Errorf("have %v, want %v", have, want)
	}
}

func testMessage() *Message {
	return &Message{
		Content: generate.RandomString(32),
		EventID: uint64(rand.Int63()),
		Owner:   generate.RandomString(8) + "@omorgan.test",
	}
}
