package stubapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campus-plates/portal/internal/models"
	"github.com/campus-plates/portal/pkg/response"
)

// timeLayout matches the display format the original backend rendered into
// the event's "time" field.
const timeLayout = "Jan 02, 2006 3:04 PM"

// Handler serves the stub event-management endpoints.
type Handler struct {
	store  *Store
	logger *zap.Logger
}

// NewHandler creates the stub handler.
func NewHandler(store *Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: store, logger: logger}
}

// ListEvents handles GET /api/events with optional ?q= search.
func (h *Handler) ListEvents(c *gin.Context) {
	list := h.store.List(c.Query("q"))
	out := make([]models.Event, 0, len(list))
	for _, ev := range list {
		out = append(out, h.decorate(ev))
	}
	c.JSON(http.StatusOK, out)
}

// GetEvent handles GET /api/events/:id.
func (h *Handler) GetEvent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	ev, ok := h.store.Get(id)
	if !ok {
		response.NotFound(c, "event not found")
		return
	}
	c.JSON(http.StatusOK, h.decorate(ev))
}

// CreateEvent handles POST /api/events.
func (h *Handler) CreateEvent(c *gin.Context) {
	var in models.Event
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	ev, errMsg := h.sanitize(in)
	if errMsg != "" {
		response.BadRequest(c, errMsg)
		return
	}
	created := h.store.Create(ev)
	h.logger.Info("event created", zap.Int64("id", created.ID), zap.String("title", created.Title))
	c.JSON(http.StatusCreated, h.decorate(created))
}

// UpdateEvent handles PUT /api/events/:id with a full event record.
func (h *Handler) UpdateEvent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	if _, ok := h.store.Get(id); !ok {
		response.NotFound(c, "event not found")
		return
	}
	var in models.Event
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	ev, errMsg := h.sanitize(in)
	if errMsg != "" {
		response.BadRequest(c, errMsg)
		return
	}
	updated, _ := h.store.Update(id, ev)
	c.JSON(http.StatusOK, h.decorate(updated))
}

// DeleteEvent handles DELETE /api/events/:id.
func (h *Handler) DeleteEvent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	if !h.store.Delete(id) {
		response.NotFound(c, "event not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListOrganizations handles GET /api/organizations.
func (h *Handler) ListOrganizations(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Organizations())
}

// ListLocations handles GET /api/locations.
func (h *Handler) ListLocations(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Locations())
}

// sanitize applies the validation and normalization rules to an incoming
// event. It returns a non-empty message on rejection.
func (h *Handler) sanitize(in models.Event) (models.Event, string) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return models.Event{}, "title is required"
	}
	if in.StartsAt.IsZero() {
		return models.Event{}, "start time is required"
	}
	org, ok := h.store.OrganizationByID(in.OrganizationID)
	if !ok {
		return models.Event{}, "organization not found"
	}
	in.OrganizationName = org.Name
	if strings.TrimSpace(in.LocationName) == "" {
		return models.Event{}, "location name is required"
	}
	if in.LocationDetails == "" {
		in.LocationDetails = strings.TrimSpace(in.LocationName)
	}
	in.Status = models.ParseEventStatus(string(in.Status))
	if in.Meals < 0 {
		in.Meals = 0
	}
	return in, ""
}

// decorate fills the derived display fields the API contract promises.
func (h *Handler) decorate(ev models.Event) models.Event {
	ev.StatusLabel = ev.Status.Label()
	ev.Time = ev.StartsAt.Format(timeLayout)
	return ev
}
