package types

// RegisterRequest 用户注册请求.
type RegisterRequest struct {
	Username string `json:"username" rule:"required,min=3,max=64"`
	Password string `json:"password" rule:"required,min=6,max=72"`
}

// LoginRequest 用户登录请求.
type LoginRequest struct {
	Username string `json:"username" rule:"required"`
	Password string `json:"password" rule:"required"`
}

// UserView 用户对外视图，不携带任何密码信息.
type UserView struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}
