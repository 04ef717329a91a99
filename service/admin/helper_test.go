package admin

import (
	"reflect"
	"testing"
	"time"

	"github.com/adamsinnett/omorgan-events/platform/generate"
)

type prepareFunc func(t *testing.T, namespace string) Service

func testServicePut(p prepareFunc, t *testing.T) {
	var (
		disabled  = false
		namespace = "service_put"
		service   = p(t, namespace)
	)

	created, err := service.Put(namespace, testAdmin())
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

	created.Enabled = false

	updated, err := service.Put(namespace, created)
	if err != nil {
		t.Fatal(err)
	}

	list, err = service.Query(namespace, QueryOptions{
		Enabled: &disabled,
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

	a := testAdmin()
	a.Email = "not-an-email"

	if _, err := service.Put(namespace, a); !IsInvalidAdmin(err) {
		t.Errorf("have %v, want %v", err, ErrInvalidAdmin)
	}

	a = testAdmin()
	a.PasswordHash = ""

	if _, err := service.Put(namespace, a); !IsInvalidAdmin(err) {
		t.Errorf("have %v, want %v", err, ErrInvalidAdmin)
	}
}

func testServicePutLastLogin(p prepareFunc, t *testing.T) {
	var (
		namespace = "service_put_last_login"
		service   = p(t, namespace)
	)

	created, err := service.Put(namespace, testAdmin())
	if err != nil {
		t.Fatal(err)
	}

	ts := time.Now().UTC().Truncate(time.Second)

	err = service.PutLastLogin(namespace, created.ID, ts)
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

	if have, want := list[0].LastLoginAt, ts; !have.Equal(want) {
		t.Errorf("have %v, want %v", have, want)
	}
}

func testServiceQuery(p prepareFunc, t *testing.T) {
	var (
		enabled   = true
		namespace = "service_query"
		service   = p(t, namespace)
	)

	created, err := service.Put(namespace, testAdmin())
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		_, err := service.Put(namespace, testAdmin())
		if err != nil {
			t.Fatal(err)
		}
	}

	for i := 0; i < 3; i++ {
		a := testAdmin()
		a.Enabled = false

		if _, err := service.Put(namespace, a); err != nil {
			t.Fatal(err)
		}
	}

	cases := map[*QueryOptions]int{
		{}:                                    9,
		{Emails: []string{created.Email}}:     1,
		{Enabled: &enabled}:                   6,
		{IDs: []uint64{created.ID}}:           1,
		{Limit: 4}:                            4,
		{Emails: []string{"none@none.test"}}: 0,
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

func testAdmin() *Admin {
	return &Admin{
		Email:        generate.RandomString(8) + "@omorgan.test",
		Enabled:      true,
		PasswordHash: generate.RandomString(60),
	}
}
