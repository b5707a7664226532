package service

import (
	"context"
	"errors"
	"strings"

	"intellistudy_backend/internal/model"
	"intellistudy_backend/internal/repository"
	"intellistudy_backend/internal/util"

	"gorm.io/gorm"
)

// UserService 用户资料相关的查询
type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{
		UserRepo: userRepo,
	}
}

// RoleForEmail 未登记的用户按普通用户处理
func (s *UserService) RoleForEmail(ctx context.Context, email string) (model.UserRole, error) {
	if strings.TrimSpace(email) == "" {
		return "", util.ErrMissingEmail
	}

	user, err := s.UserRepo.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Member, nil
	}
	if err != nil {
		return "", err
	}
	if user.Role == "" {
		return model.Member, nil
	}
	return user.Role, nil
}

// Register 首次出现的身份写入用户表，已存在时忽略
func (s *UserService) Register(ctx context.Context, email, fullName string) (*model.User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, util.ErrMissingEmail
	}

	user, err := s.UserRepo.FindByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = &model.User{Email: email, FullName: fullName, Role: model.Member, Language: model.BaseLanguage.String()}
	if err := s.UserRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
