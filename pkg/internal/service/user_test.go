package service_test

import (
	"context"
	"testing"

	"github.com/sakuray/campusvault/pkg/internal/service"
	"github.com/sakuray/campusvault/pkg/internal/types"
)

func TestRegisterAndLogin(t *testing.T) {
	us := service.NewUserServiceWith(newTestDB(t))
	ctx := context.Background()

	view, err := us.Register(ctx, &types.RegisterRequest{Username: "alice", Password: "secret123"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if view.Username != "alice" || view.ID == 0 {
		t.Errorf("view = %+v", view)
	}

	got, err := us.Login(ctx, &types.LoginRequest{Username: "alice", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if got.ID != view.ID {
		t.Errorf("login ID = %d, want %d", got.ID, view.ID)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	us := service.NewUserServiceWith(newTestDB(t))
	ctx := context.Background()

	if _, err := us.Register(ctx, &types.RegisterRequest{Username: "bob", Password: "secret123"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := us.Register(ctx, &types.RegisterRequest{Username: "bob", Password: "another456"})
	if !service.IsValidation(err) {
		t.Errorf("duplicate register: err = %v, want ValidationError", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	us := service.NewUserServiceWith(newTestDB(t))
	ctx := context.Background()

	if _, err := us.Register(ctx, &types.RegisterRequest{Username: "carol", Password: "secret123"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, wrongPw := us.Login(ctx, &types.LoginRequest{Username: "carol", Password: "wrong"})
	_, noUser := us.Login(ctx, &types.LoginRequest{Username: "nobody", Password: "secret123"})

	if !service.IsValidation(wrongPw) || !service.IsValidation(noUser) {
		t.Fatalf("wrongPw = %v, noUser = %v, want ValidationError for both", wrongPw, noUser)
	}

	// 两种失败不能泄露账号是否存在
	if wrongPw.Error() != noUser.Error() {
		t.Errorf("messages differ: %q vs %q", wrongPw.Error(), noUser.Error())
	}
}
