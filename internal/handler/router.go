package handler

import (
	"net/http"

	"cinema-seat-hold/internal/handler/api"
	"cinema-seat-hold/internal/handler/middleware"
	"cinema-seat-hold/internal/pkg/config"
	"cinema-seat-hold/internal/usecase/lifecycle"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *middleware.Logger,
	holdHandler *api.HoldHandler,
	screeningHandler *api.ScreeningHandler,
	holds lifecycle.HoldService,
) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, holdHandler, screeningHandler, holds)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, holdHandler *api.HoldHandler, screeningHandler *api.ScreeningHandler, holds lifecycle.HoldService) {
	engine.GET("/health", healthCheck(holds))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		screenings := apiGroup.Group("/screenings")
		addRoutes(screenings, []route{
			{Method: http.MethodGet, Path: "", Handler: screeningHandler.ListScreenings},
			{Method: http.MethodGet, Path: "/:id/seats", Handler: screeningHandler.GetSeatMap},
			{Method: http.MethodPost, Path: "/:id/holds", Handler: holdHandler.PlaceHold},
		})

		holdGroup := apiGroup.Group("/holds")
		addRoutes(holdGroup, []route{
			{Method: http.MethodGet, Path: "/:code", Handler: holdHandler.GetHold},
			{Method: http.MethodPost, Path: "/:code/confirm", Handler: holdHandler.ConfirmHold},
			{Method: http.MethodPost, Path: "/:code/cancel", Handler: holdHandler.CancelHold},
		})
	}
}

// @Summary Health check
// @Description Service liveness plus the number of holds tracked in memory
// @Tags health
// @Produce json
// @Success 200 {object} map[string]any
// @Router /health [get]
func healthCheck(holds lifecycle.HoldService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats := holds.Stats()
		c.JSON(http.StatusOK, gin.H{
			"status":        "ok",
			"tracked_holds": stats.Tracked,
			"active_holds":  stats.Active,
		})
	}
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		g.Handle(r.Method, r.Path, r.Handler)
	}
}
