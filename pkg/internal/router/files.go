package router

import (
	"github.com/gin-gonic/gin"

	"github.com/sakuray/campusvault/pkg/internal/handle"
)

// RegisterFilesRoutes 注册文件操作相关路由.
func RegisterFilesRoutes(g *gin.RouterGroup) {
	filesRoutes := g.Group("/files")
	{
		// 上传文件（multipart）
		filesRoutes.POST("/upload", handle.UploadFile)
		// 分页列表
		filesRoutes.GET("", handle.ListFiles)
		// 单个文件元数据
		filesRoutes.GET("/:id", handle.GetFile)
		// 更新元数据（部分更新）
		filesRoutes.PUT("/:id", handle.UpdateFile)
		// 下载内容
		filesRoutes.GET("/download/:id", handle.DownloadFile)
		// 删除
		filesRoutes.DELETE("/:id", handle.DeleteFile)
	}
}
