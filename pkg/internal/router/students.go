package router

import (
	"github.com/gin-gonic/gin"

	"github.com/sakuray/campusvault/pkg/internal/handle"
)

// RegisterStudentRoutes 注册学生档案相关路由.
func RegisterStudentRoutes(g *gin.RouterGroup) {
	studentRoutes := g.Group("/student")
	{
		studentRoutes.POST("/add", handle.AddStudent)
		studentRoutes.PUT("/update", handle.UpdateStudent)
		studentRoutes.DELETE("/delete/:id", handle.DeleteStudent)
		studentRoutes.GET("/page", handle.PageStudents)
		studentRoutes.GET("/search", handle.SearchStudent)
	}
}
