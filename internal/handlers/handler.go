package handlers

import (
	"irrigation_panel/internal/logger"
	"irrigation_panel/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	gatherer prometheus.Gatherer
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies. A nil gatherer
// leaves /metrics unregistered.
func NewHandler(services *service.Service, gatherer prometheus.Gatherer, log *logger.Logger) *Handler {
	return &Handler{services: services, gatherer: gatherer, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)
	if h.gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))
	}

	h.registerAPIRoutes(router)

	// snapshot stream and notifications, same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.GET("/status", h.getStatus)
		api.POST("/connection/check", h.checkConnection)

		h.registerMotorRoutes(api)
		h.registerScheduleRoutes(api)
		h.registerSettingsRoutes(api)
		h.registerHistoryRoutes(api)
		h.registerLogRoutes(api)
	}
}

func (h *Handler) registerMotorRoutes(api *gin.RouterGroup) {
	api.GET("/motor", h.getMotor)
	api.POST("/motor/toggle", h.toggleMotor)
	api.GET("/duration", h.getDuration)
	// Body example: {"duration":45}
	api.PUT("/duration", h.setDuration)
}

func (h *Handler) registerScheduleRoutes(api *gin.RouterGroup) {
	schedules := api.Group("/schedules")
	{
		schedules.GET("", h.listSchedules)
		// Body example: {"time":"06:00","days":[0,2,4],"enabled":true}
		schedules.POST("", h.createSchedule)
		schedules.PUT("/:id", h.updateSchedule)
		schedules.DELETE("/:id", h.deleteSchedule)
	}
}

func (h *Handler) registerSettingsRoutes(api *gin.RouterGroup) {
	settings := api.Group("/settings")
	{
		settings.GET("", h.getSettings)
		settings.PUT("", h.updateSettings)
		settings.POST("/theme", h.toggleTheme)
		settings.PUT("/widgets/:name", h.setWidgetVisibility)
	}
}

func (h *Handler) registerHistoryRoutes(api *gin.RouterGroup) {
	history := api.Group("/history")
	{
		history.GET("", h.getHistory)
		history.GET("/activity", h.getActivity)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("", h.getLogs)
		logs.DELETE("", h.clearLogs)
		logs.POST("/read", h.markLogsRead)
	}
}
