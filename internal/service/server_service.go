package service

import (
	"time"

	"go.uber.org/zap"

	"account-manager/internal/dto"
	"account-manager/internal/model"
	"account-manager/internal/pkg/crypto"
	"account-manager/internal/pkg/logger"
	"account-manager/internal/pkg/policy"
	"account-manager/internal/repository"
	"account-manager/pkg/constants"
	pkgErrors "account-manager/pkg/responses"
)

// ServerService 服务器安全信息服务
type ServerService interface {
	// List 任何已认证用户可见, 响应不含口令
	List() ([]*dto.ServerSecurityResponse, error)
	// GetPasswords 解密已登记的账号槽位, 未登记槽位省略
	GetPasswords(id int64) (*dto.ServerPasswordsResponse, error)
	// UpdateAccounts 仅安全管理员; 只更新请求中出现的字段
	UpdateAccounts(actor *model.User, id int64, req *dto.UpdateServerAccountsRequest) error
	// CreateChecklistItem / UpdateChecklistItem 仅安全管理员
	CreateChecklistItem(actor *model.User, req *dto.CreateChecklistItemRequest) (*dto.ChecklistItemResponse, error)
	UpdateChecklistItem(actor *model.User, id int64, req *dto.UpdateChecklistItemRequest) error
}

type serverService struct {
	repo   repository.ServerRepository
	cipher *crypto.Cipher
}

func NewServerService(repo repository.ServerRepository, cipher *crypto.Cipher) ServerService {
	return &serverService{repo: repo, cipher: cipher}
}

func (s *serverService) List() ([]*dto.ServerSecurityResponse, error) {
	list, err := s.repo.ListAll()
	if err != nil {
		return nil, err
	}

	out := make([]*dto.ServerSecurityResponse, 0, len(list))
	for _, info := range list {
		out = append(out, toServerResponse(info))
	}
	return out, nil
}

func (s *serverService) GetPasswords(id int64) (*dto.ServerPasswordsResponse, error) {
	info, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	resp := &dto.ServerPasswordsResponse{
		ID:           info.ID,
		ManagementID: info.ManagementID,
	}

	// 仅解密已登记的槽位; 单槽位解密失败以占位值降级
	if info.EncryptedPrimaryAccountPw != nil {
		resp.PrimaryAccountID = info.PrimaryAccountID
		resp.PrimaryPassword = s.decryptSlot(info.ID, "primary", *info.EncryptedPrimaryAccountPw)
	}
	if info.EncryptedRootAccountPw != nil {
		resp.RootAccountID = info.RootAccountID
		resp.RootPassword = s.decryptSlot(info.ID, "root", *info.EncryptedRootAccountPw)
	}

	return resp, nil
}

func (s *serverService) decryptSlot(serverID int64, slot, ciphertext string) *string {
	plain, err := s.cipher.Decrypt(ciphertext)
	if err != nil {
		logger.Warn("服务器账号口令解密失败",
			zap.Int64("server_id", serverID),
			zap.String("slot", slot),
			zap.Error(err))
		plain = constants.DecryptFailedSentinel
	}
	return &plain
}

func (s *serverService) UpdateAccounts(actor *model.User, id int64, req *dto.UpdateServerAccountsRequest) error {
	if !policy.CanMutateServerSecurity(actor) {
		return pkgErrors.ErrForbidden
	}

	// 先确认记录存在, 不依赖更新行数判断 (无变化的更新也是成功)
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}

	// 只收集出现的字段; 口令字段独立重新加密, 缺省字段永不触碰既有密文
	columns := map[string]interface{}{}
	if req.PrimaryAccountID != nil {
		columns["primary_account_id"] = *req.PrimaryAccountID
	}
	if req.PrimaryPassword != nil {
		enc, err := s.cipher.Encrypt(*req.PrimaryPassword)
		if err != nil {
			return pkgErrors.Wrap(pkgErrors.CodeInternalError, "口令加密失败", err)
		}
		columns["encrypted_primary_account_pw"] = enc
	}
	if req.RootAccountID != nil {
		columns["root_account_id"] = *req.RootAccountID
	}
	if req.RootPassword != nil {
		enc, err := s.cipher.Encrypt(*req.RootPassword)
		if err != nil {
			return pkgErrors.Wrap(pkgErrors.CodeInternalError, "口令加密失败", err)
		}
		columns["encrypted_root_account_pw"] = enc
	}

	return s.repo.UpdateAccounts(id, columns)
}

func (s *serverService) CreateChecklistItem(actor *model.User, req *dto.CreateChecklistItemRequest) (*dto.ChecklistItemResponse, error) {
	if !policy.CanMutateServerSecurity(actor) {
		return nil, pkgErrors.ErrForbidden
	}

	// 校验服务器存在
	if _, err := s.repo.GetByID(req.ServerID); err != nil {
		return nil, err
	}

	item := &model.SecurityChecklistItem{
		ServerID:   req.ServerID,
		ItemName:   req.ItemName,
		ItemStatus: req.ItemStatus,
	}
	if err := s.repo.CreateChecklistItem(item); err != nil {
		return nil, err
	}

	return toChecklistResponse(item), nil
}

func (s *serverService) UpdateChecklistItem(actor *model.User, id int64, req *dto.UpdateChecklistItemRequest) error {
	if !policy.CanMutateServerSecurity(actor) {
		return pkgErrors.ErrForbidden
	}

	// 先确认检查项存在; 当日重复确认同一状态不改变任何列, 仍视为成功
	if _, err := s.repo.GetChecklistItem(id); err != nil {
		return err
	}

	return s.repo.UpdateChecklistItemStatus(id, req.ItemStatus)
}

func toServerResponse(info *model.ServerSecurityInfo) *dto.ServerSecurityResponse {
	items := make([]dto.ChecklistItemResponse, 0, len(info.ChecklistItems))
	for i := range info.ChecklistItems {
		items = append(items, *toChecklistResponse(&info.ChecklistItems[i]))
	}

	return &dto.ServerSecurityResponse{
		ID:                   info.ID,
		ManagementID:         info.ManagementID,
		ServerName:           info.ServerName,
		Hostname:             info.Hostname,
		Region:               info.Region,
		IPAddress:            info.IPAddress,
		SgwAccountManagement: info.SgwAccountManagement,
		PrimaryAccountID:     info.PrimaryAccountID,
		RootAccountID:        info.RootAccountID,
		Vendor:               info.Vendor,
		OSType:               info.OSType,
		OSVersion:            info.OSVersion,
		HWModel:              info.HWModel,
		ManagementTeam:       info.ManagementTeam,
		ChecklistItems:       items,
	}
}

func toChecklistResponse(item *model.SecurityChecklistItem) *dto.ChecklistItemResponse {
	return &dto.ChecklistItemResponse{
		ID:          item.ID,
		ServerID:    item.ServerID,
		ItemName:    item.ItemName,
		ItemStatus:  item.ItemStatus,
		LastChecked: time.Time(item.LastChecked).Format("2006-01-02"),
	}
}
