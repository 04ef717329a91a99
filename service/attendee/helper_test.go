package attendee

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/adamsinnett/omorgan-events/platform/generate"
)

type prepareFunc func(t *testing.T, namespace string) Service

func testServicePut(p prepareFunc, t *testing.T) {
	var (
		namespace = "service_put"
		service   = p(t, namespace)
	)

	created, err := service.Put(namespace, testAttendee())
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

	created.GuestCount = 3
	created.Status = StatusMaybe

	updated, err := service.Put(namespace, created)
	if err != nil {
		t.Fatal(err)
	}

	list, err = service.Query(namespace, QueryOptions{
		Statuses: []string{
			StatusMaybe,
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

	a := testAttendee()
	a.Name = ""

	if _, err := service.Put(namespace, a); !IsInvalidAttendee(err) {
		t.Errorf("have %v, want %v", err, ErrInvalidAttendee)
	}

	a = testAttendee()
	a.Status = "tentative"

	if _, err := service.Put(namespace, a); !IsInvalidAttendee(err) {
		t.Errorf("have %v, want %v", err, ErrInvalidAttendee)
	}

	a = testAttendee()
	a.GuestCount = 0

	if _, err := service.Put(namespace, a); !IsInvalidAttendee(err) {
		t.Errorf("have %v, want %v", err, ErrInvalidAttendee)
	}

	a = testAttendee()
	a.InvitationToken = ""

	if _, err := service.Put(namespace, a); !IsInvalidAttendee(err) {
		t.Errorf("have %v, want %v", err, ErrInvalidAttendee)
	}
}

func testServiceQuery(p prepareFunc, t *testing.T) {
	var (
		namespace = "service_query"
		service   = p(t, namespace)
	)

	created, err := service.Put(namespace, testAttendee())
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		_, err := service.Put(namespace, testAttendee())
		if err != nil {
			t.Fatal(err)
		}
	}

	for i := 0; i < 3; i++ {
		a := testAttendee()
		a.Status = StatusDeclined

		if _, err := service.Put(namespace, a); err != nil {
			t.Fatal(err)
		}
	}

	cases := map[*QueryOptions]int{
		{}:                                       9,
		{EventIDs: []uint64{created.EventID}}:    1,
		{IDs: []uint64{created.ID}}:              1,
		{InvitationTokens: []string{created.InvitationToken}}: 1,
		{Statuses: []string{StatusAttending}}:    6,
		{Statuses: []string{StatusDeclined}}:     3,
		{Limit: 4}:                               4,
		{InvitationTokens: []string{"missing"}}:  0,
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

func testAttendee() *Attendee {
	token, err := generate.InviteToken()
	if err != nil {
		panic(err)
	}

	return &Attendee{
		Email:           generate.RandomString(8) + "@omorgan.test",
		EventID:         uint64(rand.Int63()),
		GuestCount:      1,
		InvitationToken: token,
		Name:            generate.RandomString(12),
		Status:          StatusAttending,
	}
}
