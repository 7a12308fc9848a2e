package router

import (
	"github.com/gin-gonic/gin"

	"github.com/sakuray/campusvault/pkg/internal/handle"
)

// RegisterUserRoutes 注册用户相关路由.
func RegisterUserRoutes(g *gin.RouterGroup) {
	userRoutes := g.Group("/user")
	{
		userRoutes.POST("/register", handle.Register)
		userRoutes.POST("/login", handle.Login)
	}
}
