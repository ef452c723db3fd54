package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"account-manager/internal/dto"
	"account-manager/pkg/constants"
)

// 注册 → 登录 → 创建凭据 → 查询解密, 全链路
func TestScenario_RegisterLoginCreateCredential(t *testing.T) {
	userRepo := newFakeUserRepo()
	credRepo := newFakeCredentialRepo()
	cipher := testCipher(t)

	userSvc := NewUserService(userRepo)
	authSvc := newAuthService(userRepo, nil, nil)
	credSvc := NewCredentialService(credRepo, cipher)

	_, err := userSvc.Register(&dto.RegisterRequest{
		Username: "SKT1234567",
		Password: "hunter2hunter2",
		FullName: "홍길동",
	})
	require.NoError(t, err)

	login, err := authSvc.Login(&dto.LoginRequest{Username: "SKT1234567", Password: "hunter2hunter2"})
	require.NoError(t, err)

	user, err := authSvc.ResolveUser(login.AccessToken)
	require.NoError(t, err)

	_, err = credSvc.Create(user.ID, &dto.CreateCredentialRequest{
		ServiceName: "mail",
		Username:    "a",
		Password:    "hunter2",
	})
	require.NoError(t, err)

	list, err := credSvc.List(user.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "mail", list[0].ServiceName)
	assert.Equal(t, "hunter2", list[0].Password)
}

// 管理员创建带viewer凭据的EMS系统, 同装备组普通用户可见其密码
func TestScenario_ViewerCredentialVisibleToGroupMember(t *testing.T) {
	repo := newFakeEmsRepo()
	svc := NewEmsService(repo, testCipher(t))

	_, err := svc.Create(securityManager(), &dto.CreateEmsSystemRequest{
		EquipmentGroup: "TDM",
		SystemName:     "NMS-1",
		Credentials: []dto.EmsCredentialSpec{
			{Role: "viewer", Username: "v", Password: "vp"},
		},
	})
	require.NoError(t, err)

	list, err := svc.List(teamMember("TDM"))
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Len(t, list[0].Credentials, 1)
	require.NotNil(t, list[0].Credentials[0].Password)
	assert.Equal(t, "vp", *list[0].Credentials[0].Password)
}

// 同样的系统但凭据角色是admin, 普通用户看到记录但密码字段缺失
func TestScenario_AdminCredentialHiddenFromGroupMember(t *testing.T) {
	repo := newFakeEmsRepo()
	svc := NewEmsService(repo, testCipher(t))

	_, err := svc.Create(securityManager(), &dto.CreateEmsSystemRequest{
		EquipmentGroup: "TDM",
		SystemName:     "NMS-1",
		Credentials: []dto.EmsCredentialSpec{
			{Role: constants.EmsRoleAdmin, Username: "v", Password: "vp"},
		},
	})
	require.NoError(t, err)

	list, err := svc.List(teamMember("TDM"))
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Len(t, list[0].Credentials, 1)
	assert.Equal(t, constants.EmsRoleAdmin, list[0].Credentials[0].Role)
	assert.Nil(t, list[0].Credentials[0].Password)
}
