package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"studentfolio/internal/model"
	"studentfolio/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, in service.RegisterInput) (*service.AuthResult, error) {
	args := m.Called(ctx, in)
	var res *service.AuthResult
	if v := args.Get(0); v != nil {
		res = v.(*service.AuthResult)
	}
	return res, args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, username, password)
	var res *service.AuthResult
	if v := args.Get(0); v != nil {
		res = v.(*service.AuthResult)
	}
	return res, args.Error(1)
}

func (m *MockAuthService) GetUser(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	var u *model.User
	if v := args.Get(0); v != nil {
		u = v.(*model.User)
	}
	return u, args.Error(1)
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, username string) (*service.ResetRequestResult, error) {
	args := m.Called(ctx, username)
	var res *service.ResetRequestResult
	if v := args.Get(0); v != nil {
		res = v.(*service.ResetRequestResult)
	}
	return res, args.Error(1)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, username, token, newPassword string) error {
	args := m.Called(ctx, username, token, newPassword)
	return args.Error(0)
}
