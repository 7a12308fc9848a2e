package types

// StudentAddRequest 新增学生请求，成绩可缺省.
type StudentAddRequest struct {
	StudentName   string   `json:"studentName" rule:"required,min=1,max=64"`
	StudentNumber string   `json:"studentNumber" rule:"required,min=1,max=32"`
	School        string   `json:"school" rule:"max=128"`
	ClassName     string   `json:"className" rule:"max=64"`
	Chinese       *float64 `json:"chinese" rule:"omitempty,min=0,max=150"`
	Math          *float64 `json:"math" rule:"omitempty,min=0,max=150"`
	English       *float64 `json:"english" rule:"omitempty,min=0,max=150"`
	Physics       *float64 `json:"physics" rule:"omitempty,min=0,max=150"`
	Chemistry     *float64 `json:"chemistry" rule:"omitempty,min=0,max=150"`
}

// StudentUpdateRequest 更新学生请求，按主键全量覆盖可编辑字段.
type StudentUpdateRequest struct {
	ID uint `json:"id" rule:"required"`
	StudentAddRequest
}

// StudentPageQuery 学生分页查询参数，Keyword 为空时等价于全量分页.
type StudentPageQuery struct {
	Page    int    `form:"page" rule:"min=0"`
	Size    int    `form:"size" rule:"min=0,max=200"`
	Keyword string `form:"keyword"`
}

// Normalize 填充分页默认值.
func (q *StudentPageQuery) Normalize() {
	if q.Size <= 0 {
		q.Size = DefaultPageSize
	}

	if q.Size > MaxPageSize {
		q.Size = MaxPageSize
	}
}
