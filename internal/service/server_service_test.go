package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"account-manager/internal/dto"
	"account-manager/internal/model"
	"account-manager/internal/repository"
	"account-manager/pkg/constants"
	pkgErrors "account-manager/pkg/responses"
	"account-manager/pkg/utils/strings"
)

// -------- test fakes --------

type fakeServerRepo struct {
	repository.ServerRepository
	servers map[int64]*model.ServerSecurityInfo

	updatedColumns map[string]interface{}

	nextItemID int64
	items      map[int64]*model.SecurityChecklistItem
}

func newFakeServerRepo() *fakeServerRepo {
	return &fakeServerRepo{
		servers: map[int64]*model.ServerSecurityInfo{},
		items:   map[int64]*model.SecurityChecklistItem{},
	}
}

func (f *fakeServerRepo) ListAll() ([]*model.ServerSecurityInfo, error) {
	var out []*model.ServerSecurityInfo
	for id := int64(1); id <= int64(len(f.servers)); id++ {
		if s, ok := f.servers[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeServerRepo) GetByID(id int64) (*model.ServerSecurityInfo, error) {
	s, ok := f.servers[id]
	if !ok {
		return nil, pkgErrors.ErrRecordNotFound
	}
	return s, nil
}

func (f *fakeServerRepo) UpdateAccounts(id int64, columns map[string]interface{}) error {
	if len(columns) == 0 {
		return nil
	}
	if _, ok := f.servers[id]; !ok {
		return pkgErrors.ErrRecordNotFound
	}
	f.updatedColumns = columns
	return nil
}

func (f *fakeServerRepo) CreateChecklistItem(item *model.SecurityChecklistItem) error {
	f.nextItemID++
	item.ID = f.nextItemID
	f.items[item.ID] = item
	return nil
}

func (f *fakeServerRepo) GetChecklistItem(id int64) (*model.SecurityChecklistItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, pkgErrors.ErrRecordNotFound
	}
	return item, nil
}

func (f *fakeServerRepo) UpdateChecklistItemStatus(id int64, status string) error {
	item, ok := f.items[id]
	if !ok {
		return pkgErrors.ErrRecordNotFound
	}
	item.ItemStatus = status
	return nil
}

func serverFixture(withSecrets bool, t *testing.T, repo *fakeServerRepo, svc *serverService) *model.ServerSecurityInfo {
	t.Helper()
	info := &model.ServerSecurityInfo{
		ManagementID:     "SVR-001",
		ServerName:       "billing-db",
		Hostname:         "bil-db-01",
		Region:           "수도권",
		IPAddress:        "10.1.1.1",
		PrimaryAccountID: strings.StringPtr("svcadmin"),
		RootAccountID:    strings.StringPtr("root"),
	}
	info.ID = int64(len(repo.servers) + 1)
	if withSecrets {
		info.EncryptedPrimaryAccountPw = strings.StringPtr(encrypt(t, svc.cipher, "primary-pw"))
		info.EncryptedRootAccountPw = strings.StringPtr(encrypt(t, svc.cipher, "root-pw"))
	}
	repo.servers[info.ID] = info
	return info
}

// -------- tests --------

func TestServerService_ListOmitsSecrets(t *testing.T) {
	repo := newFakeServerRepo()
	svc := NewServerService(repo, testCipher(t)).(*serverService)
	serverFixture(true, t, repo, svc)

	list, err := svc.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "SVR-001", list[0].ManagementID)
	assert.Equal(t, "svcadmin", *list[0].PrimaryAccountID)

	// 列表响应序列化后不含口令与密文
	data, err := json.Marshal(list[0])
	require.NoError(t, err)
	assert.NotContains(t, string(data), "primary-pw")
	assert.NotContains(t, string(data), "password")
	assert.NotContains(t, string(data), "encrypted")
}

func TestServerService_GetPasswords(t *testing.T) {
	repo := newFakeServerRepo()
	svc := NewServerService(repo, testCipher(t)).(*serverService)
	serverFixture(true, t, repo, svc)

	resp, err := svc.GetPasswords(1)
	require.NoError(t, err)

	require.NotNil(t, resp.PrimaryPassword)
	assert.Equal(t, "primary-pw", *resp.PrimaryPassword)
	require.NotNil(t, resp.RootPassword)
	assert.Equal(t, "root-pw", *resp.RootPassword)
}

func TestServerService_GetPasswords_EmptySlotOmitted(t *testing.T) {
	repo := newFakeServerRepo()
	svc := NewServerService(repo, testCipher(t)).(*serverService)
	serverFixture(false, t, repo, svc)

	resp, err := svc.GetPasswords(1)
	require.NoError(t, err)

	// 未登记的槽位不解密不返回
	assert.Nil(t, resp.PrimaryPassword)
	assert.Nil(t, resp.RootPassword)

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.NotContains(t, decoded, "primary_password")
	assert.NotContains(t, decoded, "root_password")
}

func TestServerService_GetPasswords_DecryptFailureDegrades(t *testing.T) {
	repo := newFakeServerRepo()
	svc := NewServerService(repo, testCipher(t)).(*serverService)

	info := serverFixture(true, t, repo, svc)
	info.EncryptedRootAccountPw = strings.StringPtr("broken-ciphertext")

	resp, err := svc.GetPasswords(1)
	require.NoError(t, err)

	// 单槽位失败降级为占位值, 另一槽位正常
	require.NotNil(t, resp.PrimaryPassword)
	assert.Equal(t, "primary-pw", *resp.PrimaryPassword)
	require.NotNil(t, resp.RootPassword)
	assert.Equal(t, constants.DecryptFailedSentinel, *resp.RootPassword)
}

func TestServerService_GetPasswords_NotFound(t *testing.T) {
	repo := newFakeServerRepo()
	svc := NewServerService(repo, testCipher(t))

	_, err := svc.GetPasswords(999)
	assert.ErrorIs(t, err, pkgErrors.ErrRecordNotFound)
}

func TestServerService_UpdateAccountsRequiresManager(t *testing.T) {
	repo := newFakeServerRepo()
	svc := NewServerService(repo, testCipher(t)).(*serverService)
	serverFixture(true, t, repo, svc)

	err := svc.UpdateAccounts(teamMember("TDM"), 1, &dto.UpdateServerAccountsRequest{
		RootPassword: strings.StringPtr("new-root-pw"),
	})
	assert.ErrorIs(t, err, pkgErrors.ErrForbidden)
	assert.Nil(t, repo.updatedColumns)
}

func TestServerService_UpdateAccountsPartial(t *testing.T) {
	cipher := testCipher(t)
	repo := newFakeServerRepo()
	svc := NewServerService(repo, cipher).(*serverService)
	serverFixture(true, t, repo, svc)

	err := svc.UpdateAccounts(securityManager(), 1, &dto.UpdateServerAccountsRequest{
		RootAccountID: strings.StringPtr("root2"),
		RootPassword:  strings.StringPtr("new-root-pw"),
	})
	require.NoError(t, err)

	// 只更新出现的字段, primary槽位不触碰
	require.Len(t, repo.updatedColumns, 2)
	assert.Equal(t, "root2", repo.updatedColumns["root_account_id"])
	assert.NotContains(t, repo.updatedColumns, "primary_account_id")
	assert.NotContains(t, repo.updatedColumns, "encrypted_primary_account_pw")

	// 口令加密后入库
	enc, ok := repo.updatedColumns["encrypted_root_account_pw"].(string)
	require.True(t, ok)
	plain, err := cipher.Decrypt(enc)
	require.NoError(t, err)
	assert.Equal(t, "new-root-pw", plain)
}

func TestServerService_UpdateAccountsNoChange(t *testing.T) {
	repo := newFakeServerRepo()
	svc := NewServerService(repo, testCipher(t)).(*serverService)
	serverFixture(true, t, repo, svc)

	// 重复提交已存在的值, 没有任何列发生变化也应成功
	err := svc.UpdateAccounts(securityManager(), 1, &dto.UpdateServerAccountsRequest{
		RootAccountID: strings.StringPtr("root"),
	})
	require.NoError(t, err)
	assert.Equal(t, "root", repo.updatedColumns["root_account_id"])
}

func TestServerService_UpdateAccountsNotFound(t *testing.T) {
	repo := newFakeServerRepo()
	svc := NewServerService(repo, testCipher(t))

	err := svc.UpdateAccounts(securityManager(), 999, &dto.UpdateServerAccountsRequest{
		RootAccountID: strings.StringPtr("root2"),
	})
	assert.ErrorIs(t, err, pkgErrors.ErrRecordNotFound)
}

func TestServerService_ChecklistRequiresManager(t *testing.T) {
	repo := newFakeServerRepo()
	svc := NewServerService(repo, testCipher(t)).(*serverService)
	serverFixture(false, t, repo, svc)

	_, err := svc.CreateChecklistItem(teamMember(), &dto.CreateChecklistItemRequest{
		ServerID: 1, ItemName: "패스워드 주기적 변경",
	})
	assert.ErrorIs(t, err, pkgErrors.ErrForbidden)

	err = svc.UpdateChecklistItem(teamMember(), 1, &dto.UpdateChecklistItemRequest{ItemStatus: "양호"})
	assert.ErrorIs(t, err, pkgErrors.ErrForbidden)
}

func TestServerService_ChecklistLifecycle(t *testing.T) {
	repo := newFakeServerRepo()
	svc := NewServerService(repo, testCipher(t)).(*serverService)
	serverFixture(false, t, repo, svc)

	created, err := svc.CreateChecklistItem(securityManager(), &dto.CreateChecklistItemRequest{
		ServerID:   1,
		ItemName:   "패스워드 주기적 변경",
		ItemStatus: "점검중",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ServerID)
	assert.Equal(t, "점검중", created.ItemStatus)

	err = svc.UpdateChecklistItem(securityManager(), created.ID, &dto.UpdateChecklistItemRequest{ItemStatus: "양호"})
	require.NoError(t, err)
	assert.Equal(t, "양호", repo.items[created.ID].ItemStatus)

	// 当日再次确认同一状态, 无行变化仍视为成功
	err = svc.UpdateChecklistItem(securityManager(), created.ID, &dto.UpdateChecklistItemRequest{ItemStatus: "양호"})
	require.NoError(t, err)

	err = svc.UpdateChecklistItem(securityManager(), 999, &dto.UpdateChecklistItemRequest{ItemStatus: "양호"})
	assert.ErrorIs(t, err, pkgErrors.ErrRecordNotFound)
}

func TestServerService_ChecklistUnknownServer(t *testing.T) {
	repo := newFakeServerRepo()
	svc := NewServerService(repo, testCipher(t))

	_, err := svc.CreateChecklistItem(securityManager(), &dto.CreateChecklistItemRequest{
		ServerID: 999, ItemName: "항목",
	})
	assert.ErrorIs(t, err, pkgErrors.ErrRecordNotFound)
}
