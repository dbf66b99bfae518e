package routes

import (
    "backend/controllers"
    "backend/middlewares"
    "backend/services"

    "github.com/gin-gonic/gin"
    "gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
    r := gin.Default()

    analyzer := services.NewAnalyzerService()
    logSvc := services.NewFoodLogService(db)

    authCtl := controllers.NewAuthController(services.NewUserService(db))
    analysisCtl := controllers.NewAnalysisController(analyzer)
    logCtl := controllers.NewFoodLogController(analyzer, logSvc)
    dashCtl := controllers.NewDashboardController(services.NewDashboardService(logSvc))

    // Public auth routes
    auth := r.Group("/auth")
    {
        auth.POST("/register", authCtl.Register)
        auth.POST("/login", authCtl.Login)
    }

    // Protected API routes
    api := r.Group("/api")
    api.Use(middlewares.AuthMiddleware())
    {
        api.POST("/analysis", analysisCtl.UploadAnalysis)
        api.POST("/logs", logCtl.CreateFromPhoto)
        api.GET("/logs", logCtl.ListByDate)
        api.GET("/logs/:id", logCtl.GetLog)
        api.GET("/dashboard", dashCtl.GetDaily)
    }

    return r
}
