package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// unmatchedRoute 汇总所有未命中路由的请求，避免按原始路径产生无限多的标签值。
const unmatchedRoute = "unmatched"

var (
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "portfolio",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP 请求耗时分布（秒），按站点区域与路由模板区分。",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"area", "method", "route"},
	)

	requestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portfolio",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP 请求总数，status 为状态码分类（2xx、4xx…）。",
		},
		[]string{"area", "method", "route", "status"},
	)

	requestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "portfolio",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "当前正在处理的 HTTP 请求数量。",
		},
	)

	contentWarnings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portfolio",
			Subsystem: "content",
			Name:      "warnings_total",
			Help:      "写操作成功但带告警（远端同步失败、上传被拒）的次数。",
		},
		[]string{"route"},
	)
)

// Area 把路由模板归类为 admin、auth、public 或 system。
func Area(route string) string {
	switch {
	case route == unmatchedRoute:
		return "system"
	case strings.HasPrefix(route, "/api/admin"):
		return "admin"
	case route == "/api/login" || route == "/api/logout":
		return "auth"
	case strings.HasPrefix(route, "/api/"):
		return "public"
	}
	return "system"
}

func statusClass(code int) string {
	return strconv.Itoa(code/100) + "xx"
}

// GinMiddleware 按路由模板记录请求数与耗时。
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestsInFlight.Inc()
		defer requestsInFlight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		area := Area(route)
		method := c.Request.Method

		requestDuration.WithLabelValues(area, method, route).Observe(time.Since(start).Seconds())
		requestTotal.WithLabelValues(area, method, route, statusClass(c.Writer.Status())).Inc()
	}
}

// RecordWarnings 记录一次带告警的写操作。
func RecordWarnings(route string, n int) {
	if n <= 0 {
		return
	}
	if route == "" {
		route = unmatchedRoute
	}
	contentWarnings.WithLabelValues(route).Add(float64(n))
}
