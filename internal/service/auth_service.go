package service

import (
	"errors"

	"account-manager/internal/dto"
	"account-manager/internal/model"
	"account-manager/internal/pkg/config"
	"account-manager/internal/pkg/crypto"
	"account-manager/internal/pkg/jwt"
	"account-manager/internal/pkg/policy"
	"account-manager/internal/repository"
	"account-manager/pkg/constants"
	pkgErrors "account-manager/pkg/responses"
)

type AuthService interface {
	Login(req *dto.LoginRequest) (*dto.LoginResponse, error)
	// ResolveUser 将Token解析回存活的用户记录, 任何一步失败均视为未认证
	ResolveUser(token string) (*model.User, error)
}

type authService struct {
	cfg         *config.AuthConfig
	jwtManager  *jwt.Manager
	userRepo    repository.UserRepository
	ldapService LDAPService
}

func NewAuthService(
	cfg *config.AuthConfig,
	jwtManager *jwt.Manager,
	userRepo repository.UserRepository,
	ldapService LDAPService,
) AuthService {
	return &authService{
		cfg:         cfg,
		jwtManager:  jwtManager,
		userRepo:    userRepo,
		ldapService: ldapService,
	}
}

func (s *authService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	authType := req.AuthType
	if authType == "" {
		authType = constants.AuthTypeLocal
	}

	var user *model.User
	var err error

	switch authType {
	case constants.AuthTypeLDAP:
		if !s.cfg.LDAP.Enabled {
			return nil, pkgErrors.New(pkgErrors.CodeAuthError, "LDAP认证未启用")
		}
		user, err = s.authenticateLDAP(req.Username, req.Password)
		if err != nil {
			return nil, err
		}

	case constants.AuthTypeLocal:
		if !s.cfg.Local.Enabled {
			return nil, pkgErrors.New(pkgErrors.CodeAuthError, "本地认证未启用")
		}
		user, err = s.authenticateLocal(req.Username, req.Password)
		if err != nil {
			return nil, err
		}

	default:
		return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "不支持的认证类型")
	}

	// 生成Token
	accessToken, err := s.jwtManager.GenerateAccessToken(
		user.Username,
		user.FullName,
		user.Team,
		authType,
		user.IsSecurityManager,
	)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "生成AccessToken失败", err)
	}

	return &dto.LoginResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   int(s.jwtManager.Expire().Seconds()),
	}, nil
}

func (s *authService) authenticateLocal(username, password string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, pkgErrors.ErrRecordNotFound) {
			return nil, pkgErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	// 验证密码
	if !crypto.CheckPassword(password, user.Password) {
		return nil, pkgErrors.ErrInvalidCredentials
	}

	// 更新最后登录时间
	_ = s.userRepo.UpdateLastLogin(user.ID)

	return user, nil
}

// authenticateLDAP LDAP绑定成功后同步本地用户记录
// 装备组分配与管理员标记以本地记录为准, 不从LDAP同步
func (s *authService) authenticateLDAP(username, password string) (*model.User, error) {
	info, err := s.ldapService.Authenticate(username, password)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if !errors.Is(err, pkgErrors.ErrRecordNotFound) {
			return nil, err
		}
		user = &model.User{
			Username:     username,
			Password:     "",
			FullName:     info.FullName,
			Team:         info.Team,
			AuthProvider: constants.AuthTypeLDAP,
		}
		if err = s.userRepo.Create(user); err != nil {
			return nil, err
		}
	}

	_ = s.userRepo.UpdateLastLogin(user.ID)
	return user, nil
}

func (s *authService) ResolveUser(token string) (*model.User, error) {
	claims, err := s.jwtManager.ParseToken(token)
	if err != nil {
		return nil, err
	}

	// Token主体必须是存活的用户
	user, err := s.userRepo.FindByUsername(claims.Subject)
	if err != nil {
		if errors.Is(err, pkgErrors.ErrRecordNotFound) {
			return nil, pkgErrors.ErrInvalidToken
		}
		return nil, err
	}

	return user, nil
}

// ToUserInfo 构建用户信息响应
func ToUserInfo(user *model.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:                user.ID,
		Username:          user.Username,
		FullName:          user.FullName,
		Team:              user.Team,
		IsSecurityManager: user.IsSecurityManager,
		AuthType:          user.AuthProvider,
		EquipmentGroups:   policy.EquipmentGroups(user),
	}
}
