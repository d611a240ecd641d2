package handlers

import (
	"net/http"

	"irrigation_panel/internal/service"

	"github.com/gin-gonic/gin"
)

const errSaveSettings = "failed to save the configuration"

// SettingsRequest is the payload of PUT /api/v1/settings.
type SettingsRequest struct {
	DeviceHost string `json:"esp32_ip" example:"192.168.1.100"`
	// 0 selects port 80
	DevicePort    int   `json:"esp32_port" example:"80"`
	Simulation    bool  `json:"test_mode" example:"false"`
	Notifications *bool `json:"notifications,omitempty" example:"true"`
}

// WidgetRequest shows or hides a dashboard widget.
type WidgetRequest struct {
	Visible bool `json:"visible" example:"true"`
}

// @Summary      Get configuration
// @Tags         settings
// @Produce      json
// @Success      200  {object}  models.Config
// @Router       /api/v1/settings [get]
func (h *Handler) getSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Settings.Get())
}

// @Summary      Save configuration
// @Description  Persists the device endpoint and mode, then re-checks the connection
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body      SettingsRequest  true  "Settings payload"
// @Success      200   {object}  models.Config
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/settings [put]
func (h *Handler) updateSettings(c *gin.Context) {
	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	cfg, err := h.services.Settings.Save(c.Request.Context(), service.SettingsInput{
		DeviceHost:    req.DeviceHost,
		DevicePort:    req.DevicePort,
		Simulation:    req.Simulation,
		Notifications: req.Notifications,
	})
	if err != nil {
		h.fail(c, errSaveSettings, "settings_save_failed", err, "host", req.DeviceHost)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// @Summary      Toggle theme
// @Tags         settings
// @Produce      json
// @Success      200  {object}  models.Config
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/settings/theme [post]
func (h *Handler) toggleTheme(c *gin.Context) {
	cfg, err := h.services.Settings.ToggleTheme(c.Request.Context())
	if err != nil {
		h.fail(c, errSaveSettings, "theme_save_failed", err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// @Summary      Show or hide a widget
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        name  path      string         true  "Widget name"
// @Param        body  body      WidgetRequest  true  "Visibility payload"
// @Success      200   {object}  models.Config
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/settings/widgets/{name} [put]
func (h *Handler) setWidgetVisibility(c *gin.Context) {
	var req WidgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	name := c.Param("name")
	cfg, err := h.services.Settings.SetWidgetVisibility(c.Request.Context(), name, req.Visible)
	if err != nil {
		h.fail(c, errSaveSettings, "widget_save_failed", err, "widget", name)
		return
	}
	c.JSON(http.StatusOK, cfg)
}
