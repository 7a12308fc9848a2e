package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/sakuray/campusvault/pkg/configs"
)

// CORSMiddleware CORS中间件.
// 浏览器端需要读取下载响应的 Content-Disposition 才能拿到文件名，所以显式暴露该头.
func CORSMiddleware(cfg configs.ServerConfig) gin.HandlerFunc {
	config := cors.DefaultConfig()

	config.AllowWebSockets = true
	config.AllowFiles = true
	config.ExposeHeaders = append(config.ExposeHeaders, "Content-Disposition", "Content-Length")

	if cfg.Debug {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = []string{"*"}
	}

	return cors.New(config)
}
