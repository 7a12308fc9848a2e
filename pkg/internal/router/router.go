// Package router 管理路由配置，将路径和处理器绑定到 gin 引擎.
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册全部业务路由到 /api 前缀下，健康检查挂在根路径.
func RegisterRoutes(engine *gin.Engine) {
	RegisterHealthCheckRoute(engine)

	api := engine.Group("/api")
	{
		RegisterFilesRoutes(api)
		RegisterUserRoutes(api)
		RegisterStudentRoutes(api)
	}
}
