package service

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sakuray/campusvault/pkg/internal/model"
	"github.com/sakuray/campusvault/pkg/internal/types"
)

const (
	// MaxFileNameLength 展示名长度上限.
	MaxFileNameLength = 255
	// MaxDescriptionLength 描述长度上限.
	MaxDescriptionLength = 512
	// DefaultMetaCacheTTL 元数据缓存过期时间.
	DefaultMetaCacheTTL = 10 * time.Minute

	// maxLocatorNameLength 定位符中文件名部分的长度上限.
	// 定位符列宽 255，UUID 加下划线前缀占 37，剩余留给文件名.
	maxLocatorNameLength = 255 - 37
)

// newLocator 生成 Blob 定位符：随机令牌加净化后的原始文件名.
// 随机前缀保证并发上传同名文件互不冲突.
func newLocator(originalName string) string {
	return fmt.Sprintf("%s_%s", uuid.NewString(), sanitizeFileName(originalName))
}

// sanitizeFileName 把原始文件名净化为可安全嵌入定位符的形式.
// 去掉路径部分，替换路径分隔符和相对路径片段，截短到定位符列放得下的长度.
func sanitizeFileName(name string) string {
	// 客户端可能提交带路径的文件名，只保留最后一段
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))

	name = strings.ReplaceAll(name, "..", "_")
	name = strings.TrimSpace(name)

	if name == "" || name == "." {
		return "unnamed"
	}

	// 从尾部截短，保留扩展名
	if len(name) > maxLocatorNameLength {
		name = name[len(name)-maxLocatorNameLength:]
	}

	return name
}

// fileSortColumns 列表接口允许的排序字段，键是对外名称，值是数据库列名.
var fileSortColumns = map[string]string{
	"id":          "id",
	"name":        "name",
	"locator":     "locator",
	"size":        "size",
	"sizeBytes":   "size",
	"uploadTime":  "upload_time",
	"uploadedAt":  "upload_time",
	"description": "description",
}

// resolveFileOrder 把查询参数转换为 ORDER BY 子句，非法字段返回校验错误.
func resolveFileOrder(q *types.FilePageQuery) (string, error) {
	column, ok := fileSortColumns[q.SortBy]
	if !ok {
		return "", NewValidationError("unsupported sort field: %s", q.SortBy)
	}

	direction := "DESC"
	if strings.EqualFold(q.SortDirection, "asc") {
		direction = "ASC"
	}

	return column + " " + direction, nil
}

// metaCacheKey 元数据缓存键.
func metaCacheKey(id uint) string {
	return fmt.Sprintf("file:meta:%d", id)
}

// toFileView 把模型转换为对外视图.
func toFileView(f *model.File) types.FileView {
	return types.FileView{
		ID:          f.ID,
		Name:        f.Name,
		Locator:     f.Locator,
		Description: f.Description,
		Size:        f.Size,
		Hash:        f.Hash,
		UploadTime:  f.UploadTime,
	}
}
