package core

import (
	"testing"

	"github.com/adamsinnett/omorgan-events/service/event"
	"github.com/adamsinnett/omorgan-events/service/message"
	"github.com/adamsinnett/omorgan-events/service/reaction"
)

func TestEventCreateUpdateDelete(t *testing.T) {
	var (
		events = event.MemService()
		origin = uint64(1)
	)

	created, err := EventCreate(events)(NamespaceDefault, origin, &event.Event{
		Title: "Omorgan Opening",
	})
	if err != nil {
		t.Fatal(err)
	}

	if have, want := created.OwnerID, origin; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	if have, want := created.Status, event.StatusDraft; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	update := *created
	update.Status = event.StatusPublished
	update.Title = "Omorgan Grand Opening"

	updated, err := EventUpdate(events)(NamespaceDefault, origin, created.ID, &update)
	if err != nil {
		t.Fatal(err)
	}

	if have, want := updated.Title, "Omorgan Grand Opening"; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	fetched, err := EventFetch(events)(NamespaceDefault, created.ID)
	if err != nil {
		t.Fatal(err)
	}

	if have, want := fetched.Status, event.StatusPublished; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	_, err = EventUpdate(events)(NamespaceDefault, origin+1, created.ID, &update)
	if !IsUnauthorized(err) {
		t.Errorf("have %v, want %v", err, ErrUnauthorized)
	}

	if err := EventDelete(events)(NamespaceDefault, origin+1, created.ID); !IsUnauthorized(err) {
		t.Errorf("have %v, want %v", err, ErrUnauthorized)
	}

	if err := EventDelete(events)(NamespaceDefault, origin, created.ID); err != nil {
		t.Fatal(err)
	}

	if _, err := EventFetch(events)(NamespaceDefault, created.ID); !IsNotFound(err) {
		t.Errorf("have %v, want %v", err, ErrNotFound)
	}
}

func TestEventList(t *testing.T) {
	var (
		events = event.MemService()
		origin = uint64(1)
	)

	for i := 0; i < 3; i++ {
		testSetupEvent(t, events, origin)
	}

	testSetupEvent(t, events, origin+1)

	list, err := EventList(events)(NamespaceDefault, origin)
	if err != nil {
		t.Fatal(err)
	}

	if have, want := len(list), 3; have != want {
		t.Errorf("have %v, want %v", have, want)
	}
}

func TestMessageCreateList(t *testing.T) {
	var (
		events    = event.MemService()
		messages  = message.MemService()
		reactions = reaction.MemService()
	)

	e := testSetupEvent(t, events, 1)

	m, err := MessageCreate(events, messages)(
		NamespaceDefault,
		"guest@omorgan.test",
		e.ID,
		"See you all there!",
	)
	if err != nil {
		t.Fatal(err)
	}

	_, err = ReactionToggle(messages, reactions)(
		NamespaceDefault,
		"other@omorgan.test",
		m.ID,
		"🎉",
	)
	if err != nil {
		t.Fatal(err)
	}

	feed, err := MessageList(events, messages, reactions)(NamespaceDefault, e.ID)
	if err != nil {
		t.Fatal(err)
	}

	if have, want := len(feed.Messages), 1; have != want {
		t.Fatalf("have %v, want %v", have, want)
	}

	if have, want := len(feed.ReactionMap[m.ID]), 1; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	_, err = MessageCreate(events, messages)(
		NamespaceDefault,
		"guest@omorgan.test",
		404,
		"nobody home",
	)
	if !IsNotFound(err) {
		t.Errorf("have %v, want %v", err, ErrNotFound)
	}

	_, err = MessageCreate(events, messages)(
		NamespaceDefault,
		"guest@omorgan.test",
		e.ID,
		"",
	)
	if !IsInvalidEntity(err) {
		t.Errorf("have %v, want %v", err, ErrInvalidEntity)
	}
}
