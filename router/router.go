package router

import (
	"github.com/gin-gonic/gin"

	"github.com/dominiofast/sistema-restaurante-dominio-sub001/controllers"
	"github.com/dominiofast/sistema-restaurante-dominio-sub001/middlewares"
)

// Deps controladores ja montados pelo main.
type Deps struct {
	Dashboard *controllers.DashboardController
	WS        *controllers.WSController
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      DASHBOARD (autenticado)
	// ----------------------------------------------------------------
	dash := r.Group("/dashboard")
	dash.Use(middlewares.CompanyAuthMiddleware())

	dash.POST("/start", deps.Dashboard.StartDashboard)
	dash.POST("/stop", deps.Dashboard.StopDashboard)

	dash.GET("/orders", deps.Dashboard.GetOrders)
	dash.POST("/orders/refresh", deps.Dashboard.RefreshOrders)
	dash.GET("/kanban", deps.Dashboard.GetKanban)

	// mutacoes passam pelo rate limiter apertado
	mutate := dash.Group("/")
	mutate.Use(middlewares.NewStrictRateLimiter())
	{
		mutate.PATCH("/orders/:order_id/status", deps.Dashboard.UpdateOrderStatus)
		mutate.POST("/orders/drag", deps.Dashboard.DragOrder)
	}

	dash.GET("/settings/columns", deps.Dashboard.GetColumns)
	dash.PUT("/settings/columns", deps.Dashboard.PutColumns)

	dash.GET("/campainha", deps.Dashboard.GetCampainha)
	dash.POST("/campainha/stop", deps.Dashboard.StopCampainha)

	dash.POST("/session/interaction", deps.Dashboard.RegisterInteraction)
	dash.POST("/session/permission", deps.Dashboard.SetPermission)

	// WebSocket com middleware proprio (token via query)
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("", deps.WS.Handle)
	}

	return r
}
