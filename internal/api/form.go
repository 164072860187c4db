package api

import (
	"github.com/gin-gonic/gin"

	"github.com/siddarth709/Portfolio/internal/assets"
)

// formUpload 返回表单文件字段；未上传或请求不是 multipart 时返回 nil。
func formUpload(c *gin.Context, field string) assets.Upload {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil
	}
	return assets.FromFileHeader(fh)
}
