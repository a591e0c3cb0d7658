// Package app routes user intents between the session controller, the event
// repository, and the view state. It is the single place where mutating
// intents pass the role gate.
package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/campus-plates/portal/internal/events"
	"github.com/campus-plates/portal/internal/models"
	"github.com/campus-plates/portal/internal/session"
	"github.com/campus-plates/portal/internal/view"
)

// Controller wires the portal's core components together.
type Controller struct {
	session *session.Controller
	repo    *events.Repository
	view    *view.State
	logger  *zap.Logger
}

// New creates the intent router.
func New(sess *session.Controller, repo *events.Repository, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		session: sess,
		repo:    repo,
		view:    view.NewState(),
		logger:  logger,
	}
}

// Init restores any persisted session and primes the entity caches. Refresh
// failures leave the caches empty-but-consistent; they are logged, not fatal.
func (c *Controller) Init(ctx context.Context) {
	c.session.Restore()
	_ = c.repo.RefreshEvents(ctx)
	_ = c.repo.RefreshOrganizations(ctx)
}

// Session exposes the session controller for the auth screens.
func (c *Controller) Session() *session.Controller {
	return c.session
}

// View exposes the view state for rendering.
func (c *Controller) View() *view.State {
	return c.view
}

// VisibleEvents returns the cached events filtered for the active tab.
func (c *Controller) VisibleEvents() []models.Event {
	return view.VisibleEvents(c.view.ActiveTab(), c.repo.Events())
}

// Organizations returns the cached organization list.
func (c *Controller) Organizations() []models.Organization {
	return c.repo.Organizations()
}

// SelectTab switches tabs. Every tab, including the profile tab, is reachable
// for every role.
func (c *Controller) SelectTab(tab view.Tab) {
	c.view.SelectTab(tab)
}

// OpenDetail opens the detail modal and fetches the event. A response that
// arrives after the user has navigated away is discarded by the view token.
func (c *Controller) OpenDetail(ctx context.Context, id int64) error {
	token := c.view.OpenDetail(id)
	ev, err := c.repo.GetEvent(ctx, id)
	if err != nil {
		c.logger.Warn("detail fetch failed", zap.Int64("id", id), zap.Error(err))
		return err
	}
	c.view.ApplyDetail(token, ev)
	return nil
}

// CloseDetail dismisses the detail modal.
func (c *Controller) CloseDetail() {
	c.view.CloseDetail()
}

// OpenCreate opens the create modal when the role permits and organizations
// are loaded.
func (c *Controller) OpenCreate() bool {
	return c.view.OpenCreate(c.session.CanMutate(), c.repo.Organizations())
}

// CloseCreate dismisses the create modal.
func (c *Controller) CloseCreate() {
	c.view.CloseCreate()
}

// SubmitCreate creates an event. Without faculty rights this is a silent
// no-op: no request is issued and no error surfaces.
func (c *Controller) SubmitCreate(ctx context.Context, draft events.Draft) (*models.Event, error) {
	if !c.allowed("create") {
		return nil, nil
	}
	created, err := c.repo.CreateEvent(ctx, draft)
	if err != nil {
		return nil, err
	}
	c.view.CloseCreate()
	return created, nil
}

// MarkCompleted closes out an active event. Non-faculty callers and events
// that are no longer active are silent no-ops.
func (c *Controller) MarkCompleted(ctx context.Context, id int64) error {
	if !c.allowed("mark_completed") {
		return nil
	}
	if ev, ok := c.cachedEvent(id); ok && !ev.Mutable() {
		c.logger.Debug("mark completed skipped, event not active", zap.Int64("id", id))
		return nil
	}
	return c.repo.MarkCompleted(ctx, id)
}

// DeleteEvent deletes an event after the confirm prompt agrees. Non-faculty
// callers are silent no-ops; a declined confirmation does nothing.
func (c *Controller) DeleteEvent(ctx context.Context, id int64, confirm func() bool) error {
	if !c.allowed("delete") {
		return nil
	}
	if ev, ok := c.cachedEvent(id); ok && !ev.Mutable() {
		c.logger.Debug("delete skipped, event not active", zap.Int64("id", id))
		return nil
	}
	if confirm != nil && !confirm() {
		return nil
	}
	return c.repo.DeleteEvent(ctx, id)
}

// Logout signs the user out and returns the view to the active-events tab.
func (c *Controller) Logout() {
	c.session.Logout()
	c.view.Reset()
}

// allowed is the one authorization check in front of every mutating intent.
func (c *Controller) allowed(action string) bool {
	if c.session.CanMutate() {
		return true
	}
	c.logger.Debug("mutating intent ignored", zap.String("action", action))
	return false
}

func (c *Controller) cachedEvent(id int64) (models.Event, bool) {
	for _, ev := range c.repo.Events() {
		if ev.ID == id {
			return ev, true
		}
	}
	return models.Event{}, false
}
