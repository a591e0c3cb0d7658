// Package stubapi is a local stand-in for the remote event-management API.
// It backs cmd/stubserver for development and the repository's integration
// tests.
package stubapi

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/campus-plates/portal/internal/models"
)

// Location is a named place scoped to an organization.
type Location struct {
	ID             int64  `json:"id"`
	OrganizationID int64  `json:"organizationId"`
	Name           string `json:"name"`
	Building       string `json:"building,omitempty"`
	Room           string `json:"room,omitempty"`
	DisplayName    string `json:"displayName"`
}

// Store is the stub's in-memory entity store, keyed by a sequence id.
type Store struct {
	mu        sync.Mutex
	seq       int64
	events    map[int64]models.Event
	orgs      []models.Organization
	locations []Location
}

// NewStore creates an empty store with the fixed organization and location
// catalogs.
func NewStore() *Store {
	return &Store{
		seq:    1,
		events: make(map[int64]models.Event),
		orgs: []models.Organization{
			{ID: 1, Name: "Creighton Dining", Type: models.OrgTypeDining},
			{ID: 2, Name: "Student Activities", Type: models.OrgTypeClub},
		},
		locations: []Location{
			{ID: 1, OrganizationID: 1, Name: "Skutt Student Center", Building: "Skutt Student Center", DisplayName: "Skutt Student Center"},
			{ID: 2, OrganizationID: 2, Name: "Harper Center", Building: "Harper Center", Room: "405", DisplayName: "Harper Center Room 405"},
			{ID: 3, OrganizationID: 2, Name: "Campus Quad", DisplayName: "Campus Quad"},
		},
	}
}

// Seed loads the sample events shown on a fresh install.
func (s *Store) Seed() {
	now := time.Now()
	in3d := now.Add(3 * 24 * time.Hour)
	in3dEnd := in3d.Add(2 * time.Hour)
	in7d := now.Add(7 * 24 * time.Hour)
	in7dEnd := in7d.Add(2 * time.Hour)
	ago2d := now.Add(-2 * 24 * time.Hour)
	ago2dEnd := ago2d.Add(3 * time.Hour)

	s.Create(models.Event{
		Title:            "Food Drive",
		Description:      "Community food drive",
		Status:           models.StatusActive,
		StartsAt:         in3d,
		EndsAt:           &in3dEnd,
		Meals:            150,
		OrganizationID:   1,
		OrganizationName: "Creighton Dining",
		LocationName:     "Skutt Student Center",
		LocationDetails:  "Skutt Student Center",
	})
	s.Create(models.Event{
		Title:            "AI Mentorship Night",
		Description:      "Meet local AI Engineers",
		Status:           models.StatusActive,
		StartsAt:         in7d,
		EndsAt:           &in7dEnd,
		Meals:            75,
		OrganizationID:   2,
		OrganizationName: "Student Activities",
		LocationName:     "Harper Center",
		LocationDetails:  "Harper Center Room 405",
	})
	s.Create(models.Event{
		Title:            "Campus Cleanup",
		Description:      "Help clean up campus grounds",
		Status:           models.StatusEnded,
		StartsAt:         ago2d,
		EndsAt:           &ago2dEnd,
		Meals:            0,
		OrganizationID:   2,
		OrganizationName: "Student Activities",
		LocationName:     "Campus Quad",
		LocationDetails:  "Campus Quad",
	})
}

// List returns events matching q (title or description, case-insensitive)
// sorted by start time descending. Blank q matches everything.
func (s *Store) List(q string) []models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Event, 0, len(s.events))
	for _, ev := range s.events {
		if q == "" || containsFold(ev.Title, q) || containsFold(ev.Description, q) {
			out = append(out, ev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.After(out[j].StartsAt) })
	return out
}

// Get returns the event with the given id.
func (s *Store) Get(id int64) (models.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.events[id]
	return ev, ok
}

// Create assigns the next id and stores the event.
func (s *Store) Create(ev models.Event) models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev.ID = s.seq
	s.seq++
	s.events[ev.ID] = ev
	return ev
}

// Update replaces the stored event, keeping its id.
func (s *Store) Update(id int64, ev models.Event) (models.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return models.Event{}, false
	}
	ev.ID = id
	s.events[id] = ev
	return ev, true
}

// Delete removes the event and reports whether it existed.
func (s *Store) Delete(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return false
	}
	delete(s.events, id)
	return true
}

// Organizations returns the organization catalog.
func (s *Store) Organizations() []models.Organization {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Organization, len(s.orgs))
	copy(out, s.orgs)
	return out
}

// OrganizationByID looks up one organization.
func (s *Store) OrganizationByID(id int64) (models.Organization, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, org := range s.orgs {
		if org.ID == id {
			return org, true
		}
	}
	return models.Organization{}, false
}

// Locations returns the location catalog.
func (s *Store) Locations() []Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Location, len(s.locations))
	copy(out, s.locations)
	return out
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
