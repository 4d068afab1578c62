package routes

import (
	"github.com/MrazzKa/CalorieCam-sub001/controllers"
	"github.com/MrazzKa/CalorieCam-sub001/middlewares"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)
	}

	authed := r.Group("/")
	authed.Use(middlewares.AuthMiddleware())
	{
		user := authed.Group("/user")
		{
			user.GET("/profile", controllers.GetProfile)
			user.PUT("/profile", controllers.UpdateProfile)
			user.DELETE("", controllers.DeleteAccount)
		}

		analysis := authed.Group("/analysis")
		analysis.Use(middlewares.QuotaMiddleware(controllers.RedisClient()))
		{
			analysis.POST("/image", controllers.AnalyzeImage)
			analysis.POST("/text", controllers.AnalyzeText)
		}

		authed.GET("/food/search", controllers.SearchFoods)

		meals := authed.Group("/meals")
		{
			meals.POST("", controllers.LogMeal)
			meals.GET("", controllers.ListMeals)
			meals.GET("/:id", controllers.GetMeal)
			meals.DELETE("/:id", controllers.DeleteMeal)
		}

		goals := authed.Group("/goals")
		{
			goals.PUT("", controllers.SetGoal)
			goals.GET("/progress", controllers.GetGoalProgress)
		}

		authed.POST("/devices", controllers.RegisterDevice)
		authed.GET("/ws", controllers.RealtimeSocket)
	}

	return r
}
