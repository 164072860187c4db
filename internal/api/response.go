package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/siddarth709/Portfolio/internal/api/middleware"
	"github.com/siddarth709/Portfolio/internal/assets"
	"github.com/siddarth709/Portfolio/internal/content"
	"github.com/siddarth709/Portfolio/internal/errcode"
	"github.com/siddarth709/Portfolio/internal/metrics"
	"github.com/siddarth709/Portfolio/internal/store"
)

func Error(c *gin.Context, status, code int, msg string) {
	c.JSON(status, gin.H{"code": code, "error": msg})
}

func AbortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": errcode.Unauthorized, "error": "unauthorized"})
}

func Unauthorized(c *gin.Context, msg string) {
	Error(c, http.StatusUnauthorized, errcode.Unauthorized, msg)
}
func BadRequest(c *gin.Context, msg string) { Error(c, http.StatusBadRequest, errcode.InvalidInput, msg) }
func NotFound(c *gin.Context, msg string)   { Error(c, http.StatusNotFound, errcode.ResourceMissing, msg) }
func Internal(c *gin.Context, msg string)   { Error(c, http.StatusInternalServerError, errcode.SystemError, msg) }

// Mutated 返回写操作的结果。远端同步失败时 code 为 SyncWarning，本地数据已保存。
func Mutated(c *gin.Context, status int, data any, out content.Outcome) {
	code := errcode.OK
	if !out.OK() {
		code = errcode.SyncWarning
	}
	warnings := out.Warnings
	metrics.RecordWarnings(c.FullPath(), len(warnings))
	if warnings == nil {
		warnings = []string{}
	}
	c.JSON(status, gin.H{"code": code, "data": data, "warnings": warnings})
}

// Data 返回只读查询结果。
func Data(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"code": errcode.OK, "data": data})
}

// Fail 把领域错误映射为 HTTP 状态码与错误码。
func Fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, content.ErrInvalid),
		errors.Is(err, content.ErrFileRequired),
		errors.Is(err, assets.ErrEmptyName),
		errors.Is(err, assets.ErrExtensionNotAllowed),
		errors.Is(err, assets.ErrInfected):
		BadRequest(c, err.Error())
	case errors.Is(err, content.ErrNotFound), errors.Is(err, content.ErrUnknownKind):
		NotFound(c, err.Error())
	case errors.Is(err, content.ErrAssetDelete), errors.Is(err, store.ErrMismatch):
		// 数据未被修改，需要人工处理磁盘上的文件。
		middleware.LoggerFromContext(c).Warn("request conflicts with stored data", "error", err.Error())
		Error(c, http.StatusConflict, errcode.DataConflict, err.Error())
	default:
		middleware.LoggerFromContext(c).Error("request failed", "error", err.Error())
		Internal(c, "internal error")
	}
}
