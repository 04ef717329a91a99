package event

import (
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/adamsinnett/omorgan-events/platform/generate"
)

type prepareFunc func(t *testing.T, namespace string) Service

func testServiceDelete(p prepareFunc, t *testing.T) {
	var (
		namespace = "service_delete"
		service   = p(t, namespace)
	)

	created, err := service.Put(namespace, testEvent())
	if err != nil {
		t.Fatal(err)
	}

	err = service.Delete(namespace, created.ID)
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

	if have, want := len(list), 0; have != want {
		t.Fatalf("have %v, want %v", have, want)
	}

	if err := service.Delete(namespace, created.ID); !IsNotFound(err) {
		t.Errorf("have %v, want %v", err, ErrNotFound)
	}
}

func testServicePut(p prepareFunc, t *testing.T) {
	var (
		namespace = "service_put"
		service   = p(t, namespace)
	)

	created, err := service.Put(namespace, testEvent())
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

	created.Status = StatusCancelled

	updated, err := service.Put(namespace, created)
	if err != nil {
		t.Fatal(err)
	}

	list, err = service.Query(namespace, QueryOptions{
		Statuses: []string{
			StatusCancelled,
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

	e := testEvent()
	e.Title = ""

	if _, err := service.Put(namespace, e); !IsInvalidEvent(err) {
		t.Errorf("have %v, want %v", err, ErrInvalidEvent)
	}

	e = testEvent()
	e.Status = "postponed"

	if _, err := service.Put(namespace, e); !IsInvalidEvent(err) {
		t.Errorf("have %v, want %v", err, ErrInvalidEvent)
	}

	e = testEvent()
	e.EndTime = e.StartTime.Add(-time.Hour)

	if _, err := service.Put(namespace, e); !IsInvalidEvent(err) {
		t.Errorf("have %v, want %v", err, ErrInvalidEvent)
	}
}

func testServiceQuery(p prepareFunc, t *testing.T) {
	var (
		namespace = "service_query"
		private   = true
		service   = p(t, namespace)
	)

	created, err := service.Put(namespace, testEvent())
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		_, err := service.Put(namespace, testEvent())
		if err != nil {
			t.Fatal(err)
		}
	}

	for i := 0; i < 3; i++ {
		e := testEvent()
		e.IsPrivate = true
		e.Status = StatusDraft

		if _, err := service.Put(namespace, e); err != nil {
			t.Fatal(err)
		}
	}

	cases := map[*QueryOptions]int{
		{}:                                      9,
		{IDs: []uint64{created.ID}}:             1,
		{IsPrivate: &private}:                   3,
		{OwnerIDs: []uint64{created.OwnerID}}:   1,
		{Statuses: []string{StatusDraft}}:       3,
		{Statuses: []string{StatusPublished}}:   6,
		{Limit: 4}:                              4,
		{Statuses: []string{StatusCancelled}}:   0,
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

func testEvent() *Event {
	start := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second)

	return &Event{
		Description:  generate.RandomString(24),
		EndTime:      start.Add(4 * time.Hour),
		IsPrivate:    false,
		Location:     generate.RandomString(12),
		MaxAttendees: 40,
		OwnerID:      uint64(rand.Int63()),
		StartTime:    start,
		Status:       StatusPublished,
		Title:        generate.RandomString(16),
	}
}
