package events

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/campus-plates/portal/internal/models"
)

// Draft is the client-side input for creating an event.
type Draft struct {
	Title          string
	Description    string
	OrganizationID int64
	LocationName   string
	StartsAt       time.Time
	EndsAt         *time.Time
	Meals          *int // nil defaults to 0
	Status         models.EventStatus
}

// Repository owns the local cache of server entities. The cache changes only
// through successful list refreshes, never through speculative local edits, so
// it can be stale but never diverges from the server.
type Repository struct {
	client *Client
	logger *zap.Logger

	mu     sync.Mutex
	events []models.Event
	orgs   []models.Organization
}

// NewRepository creates a repository with an empty cache.
func NewRepository(client *Client, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{client: client, logger: logger}
}

// Events returns a snapshot copy of the cached event list.
func (r *Repository) Events() []models.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Organizations returns a snapshot copy of the cached organization list.
func (r *Repository) Organizations() []models.Organization {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Organization, len(r.orgs))
	copy(out, r.orgs)
	return out
}

// RefreshEvents fetches the full remote collection and replaces the cache
// atomically. On failure the previous cache is retained and the error is
// logged as well as returned.
func (r *Repository) RefreshEvents(ctx context.Context) error {
	list, err := r.client.ListEvents(ctx)
	if err != nil {
		r.logger.Warn("event refresh failed, keeping cached list", zap.Error(err))
		return err
	}
	r.mu.Lock()
	r.events = list
	r.mu.Unlock()
	r.logger.Debug("event cache refreshed", zap.Int("count", len(list)))
	return nil
}

// RefreshOrganizations fetches the organization collection with the same
// retention-on-failure policy as RefreshEvents.
func (r *Repository) RefreshOrganizations(ctx context.Context) error {
	list, err := r.client.ListOrganizations(ctx)
	if err != nil {
		r.logger.Warn("organization refresh failed, keeping cached list", zap.Error(err))
		return err
	}
	r.mu.Lock()
	r.orgs = list
	r.mu.Unlock()
	return nil
}

// GetEvent fetches a single event for the detail view. The list cache is not
// touched.
func (r *Repository) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	return r.client.GetEvent(ctx, id)
}

// CreateEvent validates the draft locally, submits it, and refreshes the list
// on success. The created event becomes visible once the refresh lands, not
// synchronously.
func (r *Repository) CreateEvent(ctx context.Context, d Draft) (*models.Event, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}

	meals := 0
	if d.Meals != nil && *d.Meals > 0 {
		meals = *d.Meals
	}
	status := d.Status
	if status == "" {
		status = models.StatusActive
	}
	ev := models.Event{
		Title:          d.Title,
		Description:    d.Description,
		OrganizationID: d.OrganizationID,
		LocationName:   d.LocationName,
		StartsAt:       d.StartsAt,
		EndsAt:         d.EndsAt,
		Meals:          meals,
		Status:         status,
	}

	created, err := r.client.CreateEvent(ctx, ev)
	if err != nil {
		return nil, err
	}
	r.logger.Info("event created", zap.Int64("id", created.ID), zap.String("title", created.Title))
	r.refreshAfterWrite(ctx)
	return created, nil
}

// MarkCompleted re-submits the full event record with status ENDED and the
// meal estimate zeroed (a closed event no longer offers anything), then
// refreshes the list.
func (r *Repository) MarkCompleted(ctx context.Context, id int64) error {
	ev, err := r.client.GetEvent(ctx, id)
	if err != nil {
		return err
	}
	ev.Status = models.StatusEnded
	ev.StatusLabel = models.StatusEnded.Label()
	ev.Meals = 0
	if _, err := r.client.UpdateEvent(ctx, *ev); err != nil {
		return err
	}
	r.logger.Info("event marked completed", zap.Int64("id", id))
	r.refreshAfterWrite(ctx)
	return nil
}

// DeleteEvent removes the event and refreshes the list. Asking the user to
// confirm is the caller's job.
func (r *Repository) DeleteEvent(ctx context.Context, id int64) error {
	if err := r.client.DeleteEvent(ctx, id); err != nil {
		return err
	}
	r.logger.Info("event deleted", zap.Int64("id", id))
	r.refreshAfterWrite(ctx)
	return nil
}

// refreshAfterWrite runs the post-mutation list refresh. The mutation already
// succeeded, so a failed refresh only leaves the cache stale; RefreshEvents
// logs it.
func (r *Repository) refreshAfterWrite(ctx context.Context) {
	_ = r.RefreshEvents(ctx)
}

func (d Draft) validate() error {
	switch {
	case strings.TrimSpace(d.Title) == "":
		return &ValidationError{Field: "title"}
	case strings.TrimSpace(d.Description) == "":
		return &ValidationError{Field: "description"}
	case d.OrganizationID == 0:
		return &ValidationError{Field: "organizationId"}
	case strings.TrimSpace(d.LocationName) == "":
		return &ValidationError{Field: "locationName"}
	case d.StartsAt.IsZero():
		return &ValidationError{Field: "startsAt"}
	}
	return nil
}
