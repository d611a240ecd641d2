package handlers

import (
	"net/http"
	"strings"
	"time"

	"irrigation_panel/internal/models"

	"github.com/gin-gonic/gin"
)

const errTypeInvalid = "invalid 'type'; use info, success or error"

// @Summary      List log entries
// @Description  Newest first, at most 100 entries. Optionally filtered by type.
// @Tags         logs
// @Produce      json
// @Param        type  query     string  false  "Entry type"  Enums(info,success,error)
// @Success      200   {object}  map[string]interface{}  "count, unread, entries"
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/logs [get]
func (h *Handler) getLogs(c *gin.Context) {
	// Normalize entry type: trim spaces and lowercase to match stored values.
	entryType := strings.ToLower(strings.TrimSpace(c.Query("type")))
	switch entryType {
	case "", models.SeverityInfo, models.SeveritySuccess, models.SeverityError:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": errTypeInvalid})
		return
	}

	entries := h.services.EventLog.Entries()
	if entryType != "" {
		filtered := entries[:0]
		for _, e := range entries {
			if e.Type == entryType {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(entries),
		"unread":  h.services.EventLog.Unread(),
		"entries": entries,
	})
}

// @Summary      Clear the log
// @Tags         logs
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, entries"
// @Router       /api/v1/logs [delete]
func (h *Handler) clearLogs(c *gin.Context) {
	h.services.EventLog.Clear()
	entries := h.services.EventLog.Entries()
	c.JSON(http.StatusOK, gin.H{"count": len(entries), "entries": entries})
}

// @Summary      Mark the log as read
// @Tags         logs
// @Produce      json
// @Success      200  {object}  map[string]int  "unread"
// @Router       /api/v1/logs/read [post]
func (h *Handler) markLogsRead(c *gin.Context) {
	h.services.EventLog.MarkRead()
	c.JSON(http.StatusOK, gin.H{"unread": h.services.EventLog.Unread()})
}

// @Summary      Irrigation history
// @Description  Last 10 runs, newest first
// @Tags         history
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, entries"
// @Router       /api/v1/history [get]
func (h *Handler) getHistory(c *gin.Context) {
	entries := h.services.History.List()
	c.JSON(http.StatusOK, gin.H{"count": len(entries), "entries": entries})
}

// @Summary      Today's activity
// @Description  Number of runs started in each hour of the current day
// @Tags         history
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "hours"
// @Router       /api/v1/history/activity [get]
func (h *Handler) getActivity(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"hours": h.services.History.Activity(time.Now())})
}
