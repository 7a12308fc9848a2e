// Package queue 定义文件生命周期事件的主题、载荷与发布工具.
package queue

const (
	// TopicFileUploaded 文件上传成功后发布.
	TopicFileUploaded = "campusvault.file.uploaded"
	// TopicFileUpdated 文件元数据更新后发布.
	TopicFileUpdated = "campusvault.file.updated"
	// TopicFileDeleted 文件删除后发布.
	TopicFileDeleted = "campusvault.file.deleted"
)
