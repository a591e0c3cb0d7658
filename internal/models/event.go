package models

import (
	"strings"
	"time"
)

// EventStatus is the lifecycle state of an event.
type EventStatus string

const (
	StatusDraft     EventStatus = "DRAFT"
	StatusPublished EventStatus = "PUBLISHED"
	StatusActive    EventStatus = "ACTIVE"
	StatusEnded     EventStatus = "ENDED"
	StatusCancelled EventStatus = "CANCELLED"
)

// ParseEventStatus normalizes a status string. Unknown or blank input maps to
// DRAFT; "COMPLETED" is accepted as a legacy alias for ENDED.
func ParseEventStatus(s string) EventStatus {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ACTIVE":
		return StatusActive
	case "PUBLISHED":
		return StatusPublished
	case "ENDED", "COMPLETED":
		return StatusEnded
	case "CANCELLED":
		return StatusCancelled
	default:
		return StatusDraft
	}
}

// Label returns the display form of the status, e.g. "Active".
func (s EventStatus) Label() string {
	str := string(s)
	if str == "" {
		return ""
	}
	lower := strings.ToLower(str)
	return strings.ToUpper(lower[:1]) + lower[1:]
}

// Terminal reports whether no further transitions are allowed.
func (s EventStatus) Terminal() bool {
	return s == StatusCancelled
}

// Event is a campus food event as served by the event-management API.
type Event struct {
	ID               int64       `json:"id"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	Status           EventStatus `json:"status"`
	StatusLabel      string      `json:"statusLabel,omitempty"`
	StartsAt         time.Time   `json:"startsAt"`
	EndsAt           *time.Time  `json:"endsAt,omitempty"`
	Time             string      `json:"time,omitempty"` // server-formatted display string
	Meals            int         `json:"meals"`
	OrganizationID   int64       `json:"organizationId"`
	OrganizationName string      `json:"organizationName,omitempty"`
	LocationName     string      `json:"locationName,omitempty"`
	LocationDetails  string      `json:"locationDetails,omitempty"`
}

// Mutable reports whether the event still exposes mutating affordances.
// Anything not ACTIVE is read-only regardless of role.
func (e Event) Mutable() bool {
	return e.Status == StatusActive
}

// DisplayLocation returns the location text for event cards, preferring the
// detailed form and falling back to "TBD" when both fields are blank.
func (e Event) DisplayLocation() string {
	if d := strings.TrimSpace(e.LocationDetails); d != "" {
		return d
	}
	if n := strings.TrimSpace(e.LocationName); n != "" {
		return n
	}
	return "TBD"
}

// OrgType categorizes an organization.
type OrgType string

const (
	OrgTypeDining     OrgType = "DINING"
	OrgTypeDepartment OrgType = "DEPARTMENT"
	OrgTypeClub       OrgType = "CLUB"
	OrgTypeExternal   OrgType = "EXTERNAL"
)

// Organization hosts events. Read-only from the portal's perspective.
type Organization struct {
	ID   int64   `json:"id"`
	Name string  `json:"name"`
	Type OrgType `json:"type,omitempty"`
}
