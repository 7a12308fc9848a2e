package types

import "time"

const (
	// DefaultPageSize 列表接口默认每页条数.
	DefaultPageSize = 10
	// MaxPageSize 单页条数上限，防止一次拉取过大.
	MaxPageSize = 200
)

// FilePageQuery 文件列表查询参数.
// sortBy 只接受白名单字段，sortDirection 只接受 asc/desc.
type FilePageQuery struct {
	Page          int    `form:"page" rule:"min=0"`
	Size          int    `form:"size" rule:"min=0,max=200"`
	SortBy        string `form:"sortBy"`
	SortDirection string `form:"sortDirection" rule:"omitempty,oneof=asc desc ASC DESC"`
}

// Normalize 填充默认值：size 为空取默认页大小，排序默认按上传时间倒序.
func (q *FilePageQuery) Normalize() {
	if q.Size <= 0 {
		q.Size = DefaultPageSize
	}

	if q.Size > MaxPageSize {
		q.Size = MaxPageSize
	}

	if q.SortBy == "" {
		q.SortBy = "uploadTime"
	}

	if q.SortDirection == "" {
		q.SortDirection = "desc"
	}
}

// FileUpdateRequest 文件元数据部分更新请求.
// 指针为 nil 表示该字段未出现，保持原值；指向空串表示显式清空.
type FileUpdateRequest struct {
	Name        *string `json:"name" rule:"omitempty,min=1,max=255"`
	Description *string `json:"description" rule:"omitempty,max=512"`
}

// FileView 文件元数据对外视图.
type FileView struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Locator     string    `json:"locator"`
	Description string    `json:"description"`
	Size        int64     `json:"sizeBytes"`
	Hash        string    `json:"hash,omitempty"`
	UploadTime  time.Time `json:"uploadedAt"`
}

// FileUploadResult 上传成功后的响应体.
type FileUploadResult struct {
	File FileView `json:"file"`
}
