package handle

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/sakuray/campusvault/pkg/internal/service"
	"github.com/sakuray/campusvault/pkg/internal/types"
	"github.com/sakuray/campusvault/pkg/log"
	"github.com/sakuray/campusvault/pkg/rule"
)

// UploadFile 处理 multipart 文件上传，Blob 写入成功后登记元数据.
func UploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		log.Logger().Warn().Err(err).Msg("invalid upload request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field"})

		return
	}

	if fileHeader.Size == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uploaded file is empty"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read uploaded file"})
		return
	}
	defer src.Close()

	description := c.PostForm("description")

	svc := service.NewFileService(c.Request.Context())

	view, err := svc.Upload(c.Request.Context(), fileHeader.Filename, src, fileHeader.Size, description)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.FileUploadResult{File: *view})
}

// ListFiles 分页列出文件元数据.
func ListFiles(c *gin.Context) {
	var q types.FilePageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := rule.ValidateStruct(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewFileService(c.Request.Context())

	page, err := svc.List(c.Request.Context(), &q)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// UpdateFile 部分更新文件元数据.
func UpdateFile(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req types.FileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewFileService(c.Request.Context())

	view, err := svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// DownloadFile 以附件形式流式返回文件内容.
func DownloadFile(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	svc := service.NewFileService(c.Request.Context())

	view, rc, err := svc.Download(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	defer rc.Close()

	// RFC 5987 编码文件名，兼容非 ASCII
	disposition := fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(view.Name))

	c.Header("Content-Disposition", disposition)
	c.Header("Content-Type", "application/octet-stream")
	c.DataFromReader(http.StatusOK, view.Size, "application/octet-stream", rc, nil)
}

// DeleteFile 删除文件，成功返回 204.
func DeleteFile(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	svc := service.NewFileService(c.Request.Context())

	if err := svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetFile 按 ID 返回单个文件元数据.
func GetFile(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	svc := service.NewFileService(c.Request.Context())

	view, err := svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}
