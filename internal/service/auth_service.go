package service

import (
	"errors"
	"smart_recall_backend/internal/config"
	"smart_recall_backend/internal/model"
	"smart_recall_backend/internal/repository"
	"smart_recall_backend/internal/util"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	userRepo *repository.UserRepository
	jwtCfg   config.JWTConfig
}

func NewAuthService(userRepo *repository.UserRepository, jwtCfg config.JWTConfig) *AuthService {
	return &AuthService{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Register 注册新用户。邮箱唯一，密码 bcrypt 加密存储
func (s *AuthService) Register(name, email, password, language string) (*model.User, error) {
	// 1. 检查邮箱是否已注册
	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 2. 加密密码
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	if language == "" {
		language = "zh"
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Language: language,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	zap.L().Info("新用户注册", zap.Uint("user_id", user.ID), zap.String("email", email))
	return user, nil
}

// Login 校验凭证并签发 JWT
func (s *AuthService) Login(email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return "", nil, errors.New("邮箱或密码错误")
	}
	if user.Disabled {
		return "", nil, errors.New("账号已被禁用")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, errors.New("邮箱或密码错误")
	}

	token, err := util.GenerateJWT(user, s.jwtCfg.Secret, s.jwtCfg.ExpireTime)
	if err != nil {
		return "", nil, err
	}

	if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
		zap.L().Warn("更新最后登录时间失败", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	return token, user, nil
}

// GetProfile 查询用户信息
func (s *AuthService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	return user, nil
}
