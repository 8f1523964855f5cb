package router

import (
	"kampusku/internal/handlers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	postHandler := handlers.NewPostHandler()
	commentHandler := handlers.NewCommentHandler()
	userHandler := handlers.NewUserHandler()

	api := r.Group("/api")
	{
		// Auth
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		// Posts
		api.GET("/posts", postHandler.List)
		api.POST("/posts", postHandler.Create)
		api.PUT("/posts/:id", postHandler.Update)
		api.DELETE("/posts/:id", postHandler.Delete)

		// Comments
		api.GET("/posts/:id/comments", commentHandler.List)
		api.POST("/posts/:id/comments", commentHandler.Create)
		api.DELETE("/comments/:id", commentHandler.Delete)

		// Users
		api.GET("/users/:id", userHandler.Get)
		api.PUT("/users/:id", userHandler.Update)
	}
}
