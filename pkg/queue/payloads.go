package queue

import "time"

// FileEventPayload 文件生命周期事件载荷.
type FileEventPayload struct {
	FileID   uint      `json:"fileId"`
	Name     string    `json:"name"`
	Locator  string    `json:"locator"`
	Size     int64     `json:"sizeBytes"`
	Hash     string    `json:"hash,omitempty"`
	Occurred time.Time `json:"occurred"`
}
