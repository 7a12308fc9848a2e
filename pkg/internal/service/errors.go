package service

import (
	"errors"
	"fmt"
)

// ValidationError 请求内容不合法，对应 HTTP 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError 构造校验错误.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError 目标资源不存在，对应 HTTP 404.
// 元数据缺失和Blob缺失使用不同的消息，便于区分悬挂记录.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// NewNotFoundError 构造未找到错误.
func NewNotFoundError(format string, args ...any) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// StorageError 存储层（数据库或Blob）操作失败，对应 HTTP 502.
// 始终携带底层原因.
type StorageError struct {
	Op    string
	Cause error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Cause)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError 构造存储错误.
func NewStorageError(op string, cause error) *StorageError {
	return &StorageError{Op: op, Cause: cause}
}

// IsValidation 判断错误链中是否有 ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound 判断错误链中是否有 NotFoundError.
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

// IsStorage 判断错误链中是否有 StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
