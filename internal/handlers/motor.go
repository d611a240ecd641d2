package handlers

import (
	"net/http"

	"irrigation_panel/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errToggleMotor  = "failed to change the motor state"
	errSaveDuration = "failed to save the duration"
)

// DurationRequest is the payload of PUT /api/v1/duration.
type DurationRequest struct {
	// Run duration in seconds, 1..3600
	Duration int `json:"duration" example:"30"`
}

// ToggleResponse is returned after a successful toggle.
type ToggleResponse struct {
	State    string          `json:"state" example:"on"`
	Snapshot models.Snapshot `json:"snapshot"`
}

func motorState(on bool) models.MotorState {
	if on {
		return models.MotorState{State: models.MotorOn}
	}
	return models.MotorState{State: models.MotorOff}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Panel snapshot
// @Description  Connection, mode, motor, duration, schedules and unread log count
// @Tags         status
// @Produce      json
// @Success      200  {object}  models.Snapshot
// @Router       /api/v1/status [get]
func (h *Handler) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Monitoring.Snapshot())
}

// @Summary      Check device connection
// @Tags         status
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "connected, snapshot"
// @Router       /api/v1/connection/check [post]
func (h *Handler) checkConnection(c *gin.Context) {
	connected := h.services.Connectivity.Check(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"connected": connected,
		"snapshot":  h.services.Monitoring.Snapshot(),
	})
}

// @Summary      Motor state
// @Tags         motor
// @Produce      json
// @Success      200  {object}  models.MotorState
// @Router       /api/v1/motor [get]
func (h *Handler) getMotor(c *gin.Context) {
	c.JSON(http.StatusOK, motorState(h.services.Motor.IsOn()))
}

// @Summary      Toggle motor
// @Description  Applied only after the device (or simulator) confirms
// @Tags         motor
// @Produce      json
// @Success      200  {object}  ToggleResponse
// @Failure      409  {object}  map[string]string  "not connected or busy"
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/motor/toggle [post]
func (h *Handler) toggleMotor(c *gin.Context) {
	on, err := h.services.Motor.Toggle(c.Request.Context())
	if err != nil {
		h.fail(c, errToggleMotor, "motor_toggle_failed", err)
		return
	}
	c.JSON(http.StatusOK, ToggleResponse{
		State:    motorState(on).State,
		Snapshot: h.services.Monitoring.Snapshot(),
	})
}

// @Summary      Run duration
// @Tags         motor
// @Produce      json
// @Success      200  {object}  DurationRequest
// @Router       /api/v1/duration [get]
func (h *Handler) getDuration(c *gin.Context) {
	c.JSON(http.StatusOK, DurationRequest{Duration: h.services.Motor.Duration()})
}

// @Summary      Set run duration
// @Tags         motor
// @Accept       json
// @Produce      json
// @Param        body  body      DurationRequest  true  "Duration payload"
// @Success      200   {object}  DurationRequest
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/v1/duration [put]
func (h *Handler) setDuration(c *gin.Context) {
	var req DurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	if err := h.services.Motor.SetDuration(c.Request.Context(), req.Duration); err != nil {
		h.fail(c, errSaveDuration, "duration_save_failed", err, "duration", req.Duration)
		return
	}
	c.JSON(http.StatusOK, DurationRequest{Duration: h.services.Motor.Duration()})
}
