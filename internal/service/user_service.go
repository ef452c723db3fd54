package service

import (
	"errors"

	"account-manager/internal/dto"
	"account-manager/internal/model"
	"account-manager/internal/pkg/crypto"
	"account-manager/internal/repository"
	pkgErrors "account-manager/pkg/responses"
	"account-manager/pkg/utils"
)

type UserService interface {
	Register(req *dto.RegisterRequest) (*dto.UserInfo, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// Register 创建本地用户
// 注册入口不允许授予安全管理员角色, 管理员由运维开通
func (s *userService) Register(req *dto.RegisterRequest) (*dto.UserInfo, error) {
	if !utils.IsValidUsername(req.Username) {
		return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "用户名格式错误, 应为3位大写字母+7位数字")
	}

	// 检查重名
	if _, err := s.userRepo.FindByUsername(req.Username); err == nil {
		return nil, pkgErrors.ErrUserExists
	} else if !errors.Is(err, pkgErrors.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "密码哈希失败", err)
	}

	user := &model.User{
		Username:          req.Username,
		Password:          hash,
		FullName:          req.FullName,
		Team:              req.Team,
		IsSecurityManager: false,
		AuthProvider:      "local",
	}
	for _, group := range req.EquipmentGroups {
		user.EquipmentAssignments = append(user.EquipmentAssignments, model.UserEquipmentAssignment{
			EquipmentGroup: group,
		})
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return ToUserInfo(user), nil
}
