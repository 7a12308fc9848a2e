package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	ctxPkg "github.com/sakuray/campusvault/pkg/context"
	"github.com/sakuray/campusvault/pkg/internal/model"
	"github.com/sakuray/campusvault/pkg/internal/storage/db"
	"github.com/sakuray/campusvault/pkg/internal/types"
	nlog "github.com/sakuray/campusvault/pkg/log"
)

// UserService 账号服务，密码以 bcrypt 哈希存储.
type UserService struct {
	dbClient *db.Client
}

// NewUserServiceWith 以显式依赖构造 UserService.
func NewUserServiceWith(dbClient *db.Client) *UserService {
	return &UserService{dbClient: dbClient}
}

// NewUserService 从请求上下文中取出存储客户端构造服务.
func NewUserService(c context.Context) *UserService {
	return &UserService{dbClient: ctxPkg.GetDBClient(c)}
}

// Register 注册新用户，用户名冲突时返回校验错误.
func (us *UserService) Register(ctx context.Context, req *types.RegisterRequest) (*types.UserView, error) {
	var count int64

	err := us.dbClient.WithContext(ctx).
		Model(&model.User{}).
		Where("username = ?", req.Username).
		Count(&count).Error
	if err != nil {
		return nil, NewStorageError("user lookup", err)
	}

	if count > 0 {
		return nil, NewValidationError("username already taken: %s", req.Username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewValidationError("password not acceptable: %v", err)
	}

	user := model.User{
		Username: req.Username,
		Password: string(hash),
	}

	if err := us.dbClient.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, NewStorageError("user insert", err)
	}

	nlog.Logger().Info().Str("username", user.Username).Msg("user registered")

	return &types.UserView{ID: user.ID, Username: user.Username}, nil
}

// Login 校验用户名和密码.
// 用户不存在和密码不匹配返回同样的消息，不泄露账号是否存在.
func (us *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.UserView, error) {
	var user model.User

	err := us.dbClient.WithContext(ctx).
		Where("username = ?", req.Username).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewValidationError("invalid username or password")
	}

	if err != nil {
		return nil, NewStorageError("user lookup", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, NewValidationError("invalid username or password")
	}

	return &types.UserView{ID: user.ID, Username: user.Username}, nil
}
