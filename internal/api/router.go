package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/siddarth709/Portfolio/internal/api/middleware"
	"github.com/siddarth709/Portfolio/internal/config"
	"github.com/siddarth709/Portfolio/internal/metrics"
)

// maxMultipartMemory 限制表单解析时驻留内存的上传大小，超出部分写入临时文件。
const maxMultipartMemory = 32 << 20

// NewRouter 构建 Gin 路由引擎，挂载公共中间件、健康检查与指标端点。
func NewRouter(cfg *config.Config, logger *slog.Logger) *gin.Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.API.Mode != "" {
		gin.SetMode(cfg.API.Mode)
	}
	router := gin.New()
	router.MaxMultipartMemory = maxMultipartMemory
	router.Use(
		middleware.CorrelationIDMiddleware(),
		middleware.SlogLoggerMiddleware(logger),
		metrics.GinMiddleware(),
		gin.Recovery(),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
