package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mcportal/agenda-sync/app/database"
	"github.com/mcportal/agenda-sync/app/event"
	"github.com/mcportal/agenda-sync/app/tasks"
)

func NewHandler(eventRepo database.EventRepository, unitRepo database.UnitRepository,
	snapshot *event.Snapshot, scheduler tasks.TaskSchedulerInterface) *Handler {
	return &Handler{
		eventRepo: eventRepo,
		unitRepo:  unitRepo,
		snapshot:  snapshot,
		scheduler: scheduler,
	}
}

// GetEvents serves the display set from the latest sync snapshot. It
// never touches the database.
func (h *Handler) GetEvents(c *gin.Context) {
	events := h.snapshot.Events()

	out := make([]gin.H, 0, len(events))
	for _, ev := range events {
		entry := gin.H{
			"id":        ev.FeedID,
			"title":     ev.Title,
			"category":  string(ev.Classification.Category),
			"starts_at": ev.StartsAt.Format(time.RFC3339),
			"ends_at":   ev.EndsAt.Format(time.RFC3339),
		}
		if ev.Location != "" {
			entry["location"] = ev.Location
		}
		if ev.Link != "" {
			entry["link"] = ev.Link
		}
		if ev.UnitID != nil {
			entry["unit_id"] = *ev.UnitID
		}
		out = append(out, entry)
	}

	c.Header("X-Event-Count", strconv.Itoa(len(out)))
	if last := h.snapshot.LastSyncAt(); !last.IsZero() {
		c.Header("X-Last-Sync", last.Format(time.RFC3339))
	}

	c.JSON(http.StatusOK, gin.H{"events": out})
}

func (h *Handler) HealthCheck(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if unitCount, err := h.unitRepo.GetUnitCount(c.Request.Context()); err == nil {
		health["units"] = unitCount
	}

	if last := h.snapshot.LastSyncAt(); !last.IsZero() {
		health["last_sync_at"] = last.Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	active, cancelled, removed, err := h.eventRepo.GetEventStats(c.Request.Context())
	if err != nil {
		slog.Error("Database error", "operation", "get_event_stats", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": gin.H{
			"active":    active,
			"cancelled": cancelled,
			"removed":   removed,
		},
		"displayed": len(h.snapshot.Events()),
	})
}

func (h *Handler) ListUnits(c *gin.Context) {
	units, err := h.unitRepo.GetAllUnits(c.Request.Context())
	if err != nil {
		slog.Error("Database error", "operation", "get_units", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	out := make([]gin.H, 0, len(units))
	for _, u := range units {
		out = append(out, gin.H{
			"id":          u.ID,
			"name":        u.Name,
			"region_id":   u.RegionID,
			"region_code": u.RegionCode,
		})
	}

	c.JSON(http.StatusOK, gin.H{"units": out})
}

func (h *Handler) GetEventDetailsByID(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	ev, err := h.eventRepo.GetEventByFeedID(c.Request.Context(), id)
	if err != nil {
		slog.Error("Database error", "operation", "get_event", "id", id, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	if ev == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	details := gin.H{
		"id":         ev.ID,
		"feed_id":    ev.FeedID,
		"title":      ev.Title,
		"category":   ev.Category,
		"status":     string(ev.Status),
		"starts_at":  ev.StartsAt.Format(time.RFC3339),
		"created_at": ev.CreatedAt.Format(time.RFC3339),
		"updated_at": ev.UpdatedAt.Format(time.RFC3339),
	}
	if ev.UnitID != nil {
		details["unit_id"] = *ev.UnitID
	}

	c.JSON(http.StatusOK, details)
}

func (h *Handler) TriggerSync(c *gin.Context) {
	if err := h.scheduler.TriggerSync(); err != nil {
		slog.Error("Failed to trigger sync", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to enqueue sync task"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "sync scheduled"})
}
