package model

import (
	"time"
)

// File 文件元数据模型，每个上传成功的文件对应一行记录.
// Blob 内容本身存放在 Blob 存储中，由 Locator 关联.
type File struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// 展示用文件名，来自上传时的原始文件名，可编辑
	Name string `gorm:"size:255;not null" json:"name"`
	// Blob 定位符，由随机令牌和净化后的文件名组成，全局唯一，创建后不可变
	Locator string `gorm:"size:255;uniqueIndex;not null" json:"locator"`
	// 可选描述
	Description string `gorm:"size:512" json:"description"`
	// 创建时刻的字节数快照，之后不会根据 Blob 重新计算
	Size int64 `gorm:"not null" json:"sizeBytes"`
	// 上传内容的 xxhash 摘要（十六进制）
	Hash string `gorm:"size:16" json:"hash,omitempty"`
	// 上传时间，创建后不可变
	UploadTime time.Time `gorm:"index;not null" json:"uploadedAt"`
}
