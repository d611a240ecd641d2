package handlers

import (
	"net/http"
	"strconv"

	"irrigation_panel/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	errSaveSchedule   = "failed to save the schedule"
	errDeleteSchedule = "failed to delete the schedule"
	errInvalidID      = "invalid schedule id"
)

// ScheduleRequest is the payload for creating or updating a schedule.
type ScheduleRequest struct {
	// Time of day, HH:MM
	Time string `json:"time" example:"06:00"`
	// Weekdays, 0 = Monday ... 6 = Sunday
	Days    []int `json:"days" example:"0,2,4"`
	Enabled bool  `json:"enabled" example:"true"`
}

func (r ScheduleRequest) input() models.ScheduleInput {
	return models.ScheduleInput{Time: r.Time, Days: r.Days, Enabled: r.Enabled}
}

func scheduleID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return 0, false
	}
	return id, true
}

// @Summary      List schedules
// @Tags         schedules
// @Produce      json
// @Success      200  {array}  models.Schedule
// @Router       /api/v1/schedules [get]
func (h *Handler) listSchedules(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Schedules.List())
}

// @Summary      Create schedule
// @Tags         schedules
// @Accept       json
// @Produce      json
// @Param        body  body      ScheduleRequest  true  "Schedule payload"
// @Success      201   {array}   models.Schedule
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/v1/schedules [post]
func (h *Handler) createSchedule(c *gin.Context) {
	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	list, err := h.services.Schedules.Save(c.Request.Context(), 0, req.input())
	if err != nil {
		h.fail(c, errSaveSchedule, "schedule_create_failed", err, "time", req.Time)
		return
	}
	c.JSON(http.StatusCreated, list)
}

// @Summary      Update schedule
// @Tags         schedules
// @Accept       json
// @Produce      json
// @Param        id    path      int              true  "Schedule id"
// @Param        body  body      ScheduleRequest  true  "Schedule payload"
// @Success      200   {array}   models.Schedule
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/v1/schedules/{id} [put]
func (h *Handler) updateSchedule(c *gin.Context) {
	id, ok := scheduleID(c)
	if !ok {
		return
	}
	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	list, err := h.services.Schedules.Save(c.Request.Context(), id, req.input())
	if err != nil {
		h.fail(c, errSaveSchedule, "schedule_update_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary      Delete schedule
// @Tags         schedules
// @Produce      json
// @Param        id   path      int  true  "Schedule id"
// @Success      200  {array}   models.Schedule
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/schedules/{id} [delete]
func (h *Handler) deleteSchedule(c *gin.Context) {
	id, ok := scheduleID(c)
	if !ok {
		return
	}
	list, err := h.services.Schedules.Delete(c.Request.Context(), id)
	if err != nil {
		h.fail(c, errDeleteSchedule, "schedule_delete_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, list)
}
