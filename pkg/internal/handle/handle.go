// Package handle 提供HTTP请求处理器的实现.
package handle

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sakuray/campusvault/pkg/internal/service"
	"github.com/sakuray/campusvault/pkg/log"
)

// writeError 把服务层的类型化错误映射为HTTP响应.
// 校验错误 400，未找到 404，存储错误 502 并带上底层原因.
func writeError(c *gin.Context, err error) {
	switch {
	case service.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case service.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case service.IsStorage(err):
		log.Logger().Error().Err(err).Msg("storage failure")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		log.Logger().Error().Err(err).Msg("unexpected failure")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// parseID 解析路径中的数字ID，非法时直接写出 400.
func parseID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id: " + raw})
		return 0, false
	}

	return uint(id), true
}
