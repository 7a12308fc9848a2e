package model

// User 账号模型，密码只保存 bcrypt 哈希.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"size:64;uniqueIndex;not null" json:"username"`
	// bcrypt 哈希，序列化时永远不输出
	Password string `gorm:"size:128;not null" json:"-"`
}
