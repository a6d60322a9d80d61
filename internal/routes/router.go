package routes

import (
	"taskdeck/internal/controller"
	"taskdeck/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Router wires the handlers. Login and signup are public; everything
// touching todos and tasks requires a valid token.
func Router(auth *controller.Auth, todos *controller.Todos, tasks *controller.Tasks) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	// Health for load balancers and K8s probes
	router.GET("/health", controller.Health)
	router.GET("/ready", controller.Ready)

	router.POST("/login", auth.Login)
	router.POST("/signup", auth.Signup)

	api := router.Group("")
	api.Use(middleware.AuthMiddleware())
	{
		api.GET("/todos/user/:userId", todos.ListByUser)
		api.POST("/todos", todos.Create)
		api.PUT("/todos/:id", todos.Update)
		api.DELETE("/todos/:id", todos.Delete)

		api.GET("/tasks/todo/:todoId", tasks.ListByTodo)
		api.POST("/tasks", tasks.Create)
		api.PUT("/tasks/:id", tasks.Update)
		api.DELETE("/tasks/:id", tasks.Delete)
	}

	return router
}
