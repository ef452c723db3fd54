package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"account-manager/internal/dto"
	"account-manager/internal/model"
	"account-manager/internal/pkg/config"
	"account-manager/internal/pkg/crypto"
	"account-manager/internal/pkg/jwt"
	"account-manager/internal/repository"
	"account-manager/pkg/constants"
	pkgErrors "account-manager/pkg/responses"
)

// -------- test fakes --------

type fakeUserRepo struct {
	repository.UserRepository
	users map[string]*model.User

	lastLoginUpdated []int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (f *fakeUserRepo) Create(user *model.User) error {
	user.ID = int64(len(f.users) + 1)
	f.users[user.Username] = user
	return nil
}

func (f *fakeUserRepo) FindByUsername(username string) (*model.User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, pkgErrors.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) UpdateLastLogin(id int64) error {
	f.lastLoginUpdated = append(f.lastLoginUpdated, id)
	return nil
}

type fakeLDAPService struct {
	info *LDAPUserInfo
	err  error
}

func (f *fakeLDAPService) Authenticate(username, password string) (*LDAPUserInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.info, nil
}

// -------- helpers --------

func addLocalUser(t *testing.T, repo *fakeUserRepo, username, password string, manager bool) *model.User {
	t.Helper()
	hash, err := crypto.HashPassword(password)
	require.NoError(t, err)
	u := &model.User{
		Username:          username,
		Password:          hash,
		IsSecurityManager: manager,
		AuthProvider:      constants.AuthTypeLocal,
	}
	require.NoError(t, repo.Create(u))
	return u
}

func newAuthService(repo *fakeUserRepo, ldap LDAPService, cfg *config.AuthConfig) AuthService {
	if cfg == nil {
		cfg = &config.AuthConfig{
			Local: config.LocalConfig{Enabled: true},
		}
	}
	return NewAuthService(cfg, jwt.NewManager("test-secret", 1800), repo, ldap)
}

// -------- tests --------

func TestAuthService_LoginLocal(t *testing.T) {
	repo := newFakeUserRepo()
	addLocalUser(t, repo, "SKT1234567", "hunter2", false)
	svc := newAuthService(repo, nil, nil)

	resp, err := svc.Login(&dto.LoginRequest{Username: "SKT1234567", Password: "hunter2"})
	require.NoError(t, err)

	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 1800, resp.ExpiresIn)
	assert.NotEmpty(t, resp.AccessToken)

	// 登录成功的Token可以解析回同一用户
	user, err := svc.ResolveUser(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "SKT1234567", user.Username)

	assert.NotEmpty(t, repo.lastLoginUpdated)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	addLocalUser(t, repo, "SKT1234567", "hunter2", false)
	svc := newAuthService(repo, nil, nil)

	_, err := svc.Login(&dto.LoginRequest{Username: "SKT1234567", Password: "wrong"})
	assert.ErrorIs(t, err, pkgErrors.ErrInvalidCredentials)
}

func TestAuthService_LoginUnknownUser(t *testing.T) {
	repo := newFakeUserRepo()
	addLocalUser(t, repo, "SKT1234567", "hunter2", false)
	svc := newAuthService(repo, nil, nil)

	// 用户不存在与密码错误返回同一错误, 不泄露账号存在性
	_, err := svc.Login(&dto.LoginRequest{Username: "SKT9999999", Password: "hunter2"})
	assert.ErrorIs(t, err, pkgErrors.ErrInvalidCredentials)
}

func TestAuthService_LoginUnsupportedAuthType(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo, nil, nil)

	_, err := svc.Login(&dto.LoginRequest{Username: "SKT1234567", Password: "x", AuthType: "kerberos"})
	require.Error(t, err)
	appErr, ok := err.(*pkgErrors.AppError)
	require.True(t, ok)
	assert.Equal(t, pkgErrors.CodeBadRequest, appErr.Code)
}

func TestAuthService_LoginLocalDisabled(t *testing.T) {
	repo := newFakeUserRepo()
	addLocalUser(t, repo, "SKT1234567", "hunter2", false)
	cfg := &config.AuthConfig{Local: config.LocalConfig{Enabled: false}}
	svc := newAuthService(repo, nil, cfg)

	// 本地认证关闭后, 即使账号密码正确也拒绝登录
	_, err := svc.Login(&dto.LoginRequest{Username: "SKT1234567", Password: "hunter2"})
	require.Error(t, err)
	appErr, ok := err.(*pkgErrors.AppError)
	require.True(t, ok)
	assert.Equal(t, pkgErrors.CodeAuthError, appErr.Code)
}

func TestAuthService_LoginLDAPDisabled(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo, &fakeLDAPService{}, nil)

	_, err := svc.Login(&dto.LoginRequest{Username: "SKT1234567", Password: "x", AuthType: constants.AuthTypeLDAP})
	assert.Error(t, err)
}

func TestAuthService_LoginLDAPSyncsLocalUser(t *testing.T) {
	repo := newFakeUserRepo()
	ldap := &fakeLDAPService{info: &LDAPUserInfo{Username: "SKT7654321", FullName: "김철수", Team: "전송운용1팀"}}
	cfg := &config.AuthConfig{
		LDAP: config.LDAPConfig{Enabled: true},
	}
	svc := newAuthService(repo, ldap, cfg)

	resp, err := svc.Login(&dto.LoginRequest{Username: "SKT7654321", Password: "ldap-pw", AuthType: constants.AuthTypeLDAP})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	// 首次LDAP登录创建本地记录
	created := repo.users["SKT7654321"]
	require.NotNil(t, created)
	assert.Equal(t, "김철수", created.FullName)
	assert.Equal(t, constants.AuthTypeLDAP, created.AuthProvider)
	assert.Empty(t, created.Password)
	assert.False(t, created.IsSecurityManager)
}

func TestAuthService_LoginLDAPRejected(t *testing.T) {
	repo := newFakeUserRepo()
	ldap := &fakeLDAPService{err: pkgErrors.ErrInvalidCredentials}
	cfg := &config.AuthConfig{LDAP: config.LDAPConfig{Enabled: true}}
	svc := newAuthService(repo, ldap, cfg)

	_, err := svc.Login(&dto.LoginRequest{Username: "SKT7654321", Password: "bad", AuthType: constants.AuthTypeLDAP})
	assert.ErrorIs(t, err, pkgErrors.ErrInvalidCredentials)
	assert.Nil(t, repo.users["SKT7654321"])
}

func TestAuthService_ResolveUser_InvalidToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo, nil, nil)

	_, err := svc.ResolveUser("not.a.jwt")
	assert.Error(t, err)
}

func TestAuthService_ResolveUser_DeletedUser(t *testing.T) {
	repo := newFakeUserRepo()
	addLocalUser(t, repo, "SKT1234567", "hunter2", false)
	svc := newAuthService(repo, nil, nil)

	resp, err := svc.Login(&dto.LoginRequest{Username: "SKT1234567", Password: "hunter2"})
	require.NoError(t, err)

	// Token签发后用户被删除, Token随之失效
	delete(repo.users, "SKT1234567")

	_, err = svc.ResolveUser(resp.AccessToken)
	assert.ErrorIs(t, err, pkgErrors.ErrInvalidToken)
}

func TestToUserInfo(t *testing.T) {
	u := teamMember("TDM", "MSPP")
	info := ToUserInfo(u)

	assert.Equal(t, u.Username, info.Username)
	assert.Equal(t, []string{"TDM", "MSPP"}, info.EquipmentGroups)
	assert.False(t, info.IsSecurityManager)
}
