// Package view holds the transient UI coordination state: active tab, detail
// modal, create modal. It performs no I/O; callers fetch data and hand results
// back in.
package view

import (
	"github.com/campus-plates/portal/internal/models"
)

// Tab identifies the portal's top-level tabs.
type Tab string

const (
	TabActiveEvents Tab = "ACTIVE_EVENTS"
	TabCompleted    Tab = "COMPLETED"
	TabProfile      Tab = "PROFILE"
)

// State is the transient view coordinator. It is not persisted.
type State struct {
	activeTab       Tab
	selectedEventID int64 // 0 when no detail modal is open
	detailGen       uint64
	detail          *models.Event
	createOpen      bool
}

// NewState starts on the active-events tab with no modals open.
func NewState() *State {
	return &State{activeTab: TabActiveEvents}
}

// ActiveTab returns the current tab.
func (s *State) ActiveTab() Tab {
	return s.activeTab
}

// SelectTab switches tabs. Any tab change is permitted; an open detail modal
// is dismissed so a late detail response cannot land on the new view.
func (s *State) SelectTab(tab Tab) {
	s.activeTab = tab
	s.dismissDetail()
	s.createOpen = false
}

// Reset returns the state to its initial shape (used on sign-out).
func (s *State) Reset() {
	s.activeTab = TabActiveEvents
	s.dismissDetail()
	s.createOpen = false
}

// VisibleEvents filters the cached list for a tab, preserving input order.
// The profile tab (and any unknown tab) renders no list.
func VisibleEvents(tab Tab, events []models.Event) []models.Event {
	var out []models.Event
	switch tab {
	case TabActiveEvents:
		for _, ev := range events {
			if ev.Status == models.StatusActive {
				out = append(out, ev)
			}
		}
	case TabCompleted:
		for _, ev := range events {
			if ev.Status == models.StatusEnded || ev.Status == models.StatusCancelled {
				out = append(out, ev)
			}
		}
	}
	return out
}

// OpenDetail selects an event for the detail modal and returns a token the
// caller must pass to ApplyDetail once the fetch resolves.
func (s *State) OpenDetail(id int64) uint64 {
	s.selectedEventID = id
	s.detail = nil
	s.detailGen++
	return s.detailGen
}

// ApplyDetail installs a fetched event if the detail view it was requested for
// is still the active one. Late responses for a dismissed or superseded view
// are discarded and ApplyDetail reports false.
func (s *State) ApplyDetail(token uint64, ev *models.Event) bool {
	if token != s.detailGen || s.selectedEventID == 0 {
		return false
	}
	s.detail = ev
	return true
}

// Detail returns the fetched event for the open detail modal, if any.
func (s *State) Detail() *models.Event {
	return s.detail
}

// SelectedEventID returns the id driving the detail modal and whether one is
// open.
func (s *State) SelectedEventID() (int64, bool) {
	return s.selectedEventID, s.selectedEventID != 0
}

// CloseDetail dismisses the detail modal with no other side effects.
func (s *State) CloseDetail() {
	s.dismissDetail()
}

// OpenCreate opens the create modal. It requires mutation rights and at least
// one organization to attach the event to; otherwise it reports false and
// nothing changes.
func (s *State) OpenCreate(canMutate bool, orgs []models.Organization) bool {
	if !canMutate || len(orgs) == 0 {
		return false
	}
	s.createOpen = true
	return true
}

// CloseCreate dismisses the create modal.
func (s *State) CloseCreate() {
	s.createOpen = false
}

// CreateOpen reports whether the create modal is showing.
func (s *State) CreateOpen() bool {
	return s.createOpen
}

func (s *State) dismissDetail() {
	s.selectedEventID = 0
	s.detail = nil
	s.detailGen++
}
