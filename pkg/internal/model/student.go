package model

// Student 学生档案模型，姓名和学号都要求全局唯一.
// 五门成绩均可为空，空表示尚未录入而不是零分.
type Student struct {
	ID            uint     `gorm:"primaryKey" json:"id"`
	StudentName   string   `gorm:"size:64;uniqueIndex;not null" json:"studentName"`
	StudentNumber string   `gorm:"size:32;uniqueIndex;not null" json:"studentNumber"`
	School        string   `gorm:"size:128" json:"school"`
	ClassName     string   `gorm:"size:64" json:"className"`
	Chinese       *float64 `json:"chinese"`
	Math          *float64 `json:"math"`
	English       *float64 `json:"english"`
	Physics       *float64 `json:"physics"`
	Chemistry     *float64 `json:"chemistry"`
}
