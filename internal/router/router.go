package router

import (
	"net/http"

	"github.com/kartik0x00/Budget-Formula/internal/auth"
	"github.com/kartik0x00/Budget-Formula/internal/budget"
	"github.com/kartik0x00/Budget-Formula/internal/config"
	"github.com/kartik0x00/Budget-Formula/internal/handler"
	"github.com/kartik0x00/Budget-Formula/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine with all middleware and routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORS.Origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	gate := auth.NewGate(auth.Identity{
		Pin:      cfg.Auth.Pin,
		UserName: cfg.Auth.UserName,
	})
	budgetService := budget.NewService(db)

	// ====== API ======
	api := r.Group("/api")

	// 登录/校验接口（不需要鉴权）
	authHandler := handler.NewAuthHandler(gate)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/verify", authHandler.Verify)

	// 需要登录才能访问的接口
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(gate))

	protected.GET("/auth/me", authHandler.Me)

	budgetHandler := handler.NewBudgetHandler(budgetService)
	protected.GET("/budget/entries", budgetHandler.ListEntries)
	protected.GET("/budget/entries/:id", budgetHandler.GetEntry)
	protected.POST("/budget/entries", budgetHandler.CreateEntry)
	protected.PUT("/budget/entries/:id", budgetHandler.UpdateEntry)
	protected.DELETE("/budget/entries/:id", budgetHandler.DeleteEntry)
	protected.GET("/budget/available-dates", budgetHandler.AvailableDates)

	exportHandler := handler.NewExportHandler(budgetService)
	protected.GET("/budget/export/csv", exportHandler.ExportCSV)
	protected.GET("/budget/export/xlsx", exportHandler.ExportXLSX)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Route not found",
		})
	})

	return r
}
