package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/sakuray/campusvault/pkg/context"
	"github.com/sakuray/campusvault/pkg/internal/storage"
)

// StorageMiddleware 把存储管理器注入请求上下文.
func StorageMiddleware(manager *storage.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.WithStorageManager(c.Request.Context(), manager)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
