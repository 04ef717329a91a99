package core

import (
	"testing"

	"github.com/adamsinnett/omorgan-events/service/event"
	"github.com/adamsinnett/omorgan-events/service/message"
	"github.com/adamsinnett/omorgan-events/service/reaction"
)

func TestReactionToggle(t *testing.T) {
	var (
		events    = event.MemService()
		messages  = message.MemService()
		reactions = reaction.MemService()
		fn        = ReactionToggle(messages, reactions)
	)

	m := testSetupMessage(t, events, messages)

	r, err := fn(NamespaceDefault, "guest@omorgan.test", m.ID, "👍")
	if err != nil {
		t.Fatal(err)
	}

	if have, want := r.Type, "👍"; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	list, err := ReactionList(reactions)(NamespaceDefault, m.ID)
	if err != nil {
		t.Fatal(err)
	}

	if have, want := len(list), 1; have != want {
		t.Fatalf("have %v, want %v", have, want)
	}

	r, err = fn(NamespaceDefault, "guest@omorgan.test", m.ID, "👍")
	if err != nil {
		t.Fatal(err)
	}

	if r != nil {
		t.Errorf("expected nil reaction on toggle off, have %v", r)
	}

	list, err = ReactionList(reactions)(NamespaceDefault, m.ID)
	if err != nil {
		t.Fatal(err)
	}

	if have, want := len(list), 0; have != want {
		t.Fatalf("have %v, want %v", have, want)
	}
}

func TestReactionToggleReplace(t *testing.T) {
	var (
		events    = event.MemService()
		messages  = message.MemService()
		reactions = reaction.MemService()
		fn        = ReactionToggle(messages, reactions)
	)

	m := testSetupMessage(t, events, messages)

	if _, err := fn(NamespaceDefault, "guest@omorgan.test", m.ID, "👍"); err != nil {
		t.Fatal(err)
	}

	r, err := fn(NamespaceDefault, "guest@omorgan.test", m.ID, "❤️")
	if err != nil {
		t.Fatal(err)
	}

	if have, want := r.Type, "❤️"; have != want {
		t.Errorf("have %v, want %v", have, want)
	}

	list, err := ReactionList(reactions)(NamespaceDefault, m.ID)
	if err != nil {
		t.Fatal(err)
	}

	if have, want := len(list), 1; have != want {
		t.Fatalf("have %v, want %v", have, want)
	}

	if have, want := list[0].Type, "❤️"; have != want {
		t.Errorf("have %v, want %v", have, want)
	}
}

func TestReactionToggleIndependentOwners(t *testing.T) {
	var (
		events    = event.MemService()
		messages  = message.MemService()
		reactions = reaction.MemService()
		fn        = ReactionToggle(messages, reactions)
	)

	m := testSetupMessage(t, events, messages)

	if _, err := fn(NamespaceDefault, "first@omorgan.test", m.ID, "👍"); err != nil {
		t.Fatal(err)
	}

	if _, err := fn(NamespaceDefault, "second@omorgan.test", m.ID, "👍"); err != nil {
		t.Fatal(err)
	}

	list, err := ReactionList(reactions)(NamespaceDefault, m.ID)
	if err != nil {
		t.Fatal(err)
	}

	if have, want := len(list), 2; have != want {
		t.Fatalf("have %v, want %v", have, want)
	}
}

func TestReactionToggleNotFound(t *testing.T) {
	var (
		messages  = message.MemService()
		reactions = reaction.MemService()
		fn        = ReactionToggle(messages, reactions)
	)

	if _, err := fn(NamespaceDefault, "guest@omorgan.test", 404, "👍"); !IsNotFound(err) {
		t.Errorf("have %v, want %v", err, ErrNotFound)
	}
}

func testSetupMessage(
	t *testing.T,
	events event.Service,
	messages message.Service,
) *message.Message {
	e := testSetupEvent(t, events, 1)

	m, err := messages.Put(NamespaceDefault, &message.Message{
		Content: "Looking forward to it!",
		EventID: e.ID,
		Owner:   "guest@omorgan.test",
	})
	if err != nil {
		t.Fatal(err)
	}

	return m
}
