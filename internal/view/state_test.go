package view

import (
	"testing"

	"github.com/campus-plates/portal/internal/models"
)

func sampleEvents() []models.Event {
	return []models.Event{
		{ID: 1, Title: "Food Drive", Status: models.StatusActive},
		{ID: 2, Title: "Campus Cleanup", Status: models.StatusEnded},
		{ID: 3, Title: "Bake Sale", Status: models.StatusActive},
		{ID: 4, Title: "Rained Out", Status: models.StatusCancelled},
		{ID: 5, Title: "Draft Plan", Status: models.StatusDraft},
	}
}

func TestVisibleEvents(t *testing.T) {
	t.Parallel()

	events := sampleEvents()

	active := VisibleEvents(TabActiveEvents, events)
	if len(active) != 2 || active[0].ID != 1 || active[1].ID != 3 {
		t.Fatalf("active tab = %+v", active)
	}

	completed := VisibleEvents(TabCompleted, events)
	if len(completed) != 2 || completed[0].ID != 2 || completed[1].ID != 4 {
		t.Fatalf("completed tab = %+v", completed)
	}

	if got := VisibleEvents(TabProfile, events); len(got) != 0 {
		t.Fatalf("profile tab = %+v, want empty", got)
	}
}

func TestTabTransitions(t *testing.T) {
	t.Parallel()

	s := NewState()
	if s.ActiveTab() != TabActiveEvents {
		t.Fatalf("initial tab = %q", s.ActiveTab())
	}
	s.SelectTab(TabProfile)
	if s.ActiveTab() != TabProfile {
		t.Fatalf("tab = %q, want profile", s.ActiveTab())
	}
	s.SelectTab(TabCompleted)
	if s.ActiveTab() != TabCompleted {
		t.Fatalf("tab = %q, want completed", s.ActiveTab())
	}
}

func TestDetailLifecycle(t *testing.T) {
	t.Parallel()

	s := NewState()
	token := s.OpenDetail(7)
	if id, open := s.SelectedEventID(); !open || id != 7 {
		t.Fatalf("selected = %d open=%v", id, open)
	}

	ev := &models.Event{ID: 7, Title: "Food Drive", Status: models.StatusActive}
	if !s.ApplyDetail(token, ev) {
		t.Fatal("fresh detail response was discarded")
	}
	if s.Detail() == nil || s.Detail().ID != 7 {
		t.Fatalf("detail = %+v", s.Detail())
	}

	s.CloseDetail()
	if _, open := s.SelectedEventID(); open {
		t.Fatal("detail still open after close")
	}
	if s.Detail() != nil {
		t.Fatal("detail data retained after close")
	}
}

func TestLateDetailResponseDiscarded(t *testing.T) {
	t.Parallel()

	s := NewState()
	stale := s.OpenDetail(7)
	s.CloseDetail() // user navigated away before the fetch resolved
	if s.ApplyDetail(stale, &models.Event{ID: 7}) {
		t.Fatal("late response applied to a dismissed view")
	}

	// Superseded by a different selection.
	first := s.OpenDetail(7)
	second := s.OpenDetail(9)
	if s.ApplyDetail(first, &models.Event{ID: 7}) {
		t.Fatal("response for a superseded selection applied")
	}
	if !s.ApplyDetail(second, &models.Event{ID: 9}) {
		t.Fatal("current response discarded")
	}

	// A tab change also invalidates an in-flight detail fetch.
	inflight := s.OpenDetail(3)
	s.SelectTab(TabProfile)
	if s.ApplyDetail(inflight, &models.Event{ID: 3}) {
		t.Fatal("response applied after navigating to another tab")
	}
}

func TestOpenCreateGating(t *testing.T) {
	t.Parallel()

	s := NewState()
	orgs := []models.Organization{{ID: 1, Name: "Creighton Dining"}}

	if s.OpenCreate(false, orgs) {
		t.Fatal("create modal opened without mutation rights")
	}
	if s.OpenCreate(true, nil) {
		t.Fatal("create modal opened with no organizations")
	}
	if !s.OpenCreate(true, orgs) {
		t.Fatal("create modal refused for faculty with organizations")
	}
	if !s.CreateOpen() {
		t.Fatal("create modal not marked open")
	}
	s.CloseCreate()
	if s.CreateOpen() {
		t.Fatal("create modal still open")
	}
}

func TestResetReturnsToActiveTab(t *testing.T) {
	t.Parallel()

	s := NewState()
	s.SelectTab(TabProfile)
	s.OpenDetail(1)
	s.Reset()
	if s.ActiveTab() != TabActiveEvents {
		t.Fatalf("tab after reset = %q", s.ActiveTab())
	}
	if _, open := s.SelectedEventID(); open {
		t.Fatal("detail open after reset")
	}
}
