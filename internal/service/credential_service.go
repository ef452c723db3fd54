package service

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"account-manager/internal/dto"
	"account-manager/internal/model"
	"account-manager/internal/pkg/crypto"
	"account-manager/internal/pkg/logger"
	"account-manager/internal/repository"
	"account-manager/pkg/constants"
	pkgErrors "account-manager/pkg/responses"
)

// CredentialService 个人凭据服务
//
// ownerID 均来自已认证的当前用户, 所有操作严格owner范围;
// 明文密码仅在请求处理期间存在于内存, 入库前加密、出库后按需解密。
type CredentialService interface {
	Create(ownerID int64, req *dto.CreateCredentialRequest) (*dto.CredentialResponse, error)
	List(ownerID int64, offset, limit int) ([]*dto.CredentialResponse, error)
	Update(id, ownerID int64, req *dto.UpdateCredentialRequest) (*dto.CredentialResponse, error)
	Delete(id, ownerID int64) error
}

type credentialService struct {
	repo   repository.CredentialRepository
	cipher *crypto.Cipher
}

func NewCredentialService(repo repository.CredentialRepository, cipher *crypto.Cipher) CredentialService {
	return &credentialService{repo: repo, cipher: cipher}
}

func (s *credentialService) Create(ownerID int64, req *dto.CreateCredentialRequest) (*dto.CredentialResponse, error) {
	enc, err := s.cipher.Encrypt(req.Password)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "凭据加密失败", err)
	}

	c := &model.Credential{
		OwnerID:           ownerID,
		ServiceName:       req.ServiceName,
		Username:          req.Username,
		EncryptedPassword: enc,
	}
	if len(req.Meta) > 0 {
		c.MetaJSON = datatypes.JSON(req.Meta)
	}

	if err := s.repo.Create(c); err != nil {
		return nil, err
	}
	return s.toResponse(c), nil
}

func (s *credentialService) List(ownerID int64, offset, limit int) ([]*dto.CredentialResponse, error) {
	list, err := s.repo.ListByOwner(ownerID, offset, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CredentialResponse, 0, len(list))
	for _, c := range list {
		out = append(out, s.toResponse(c))
	}
	return out, nil
}

func (s *credentialService) Update(id, ownerID int64, req *dto.UpdateCredentialRequest) (*dto.CredentialResponse, error) {
	c, err := s.repo.GetByIDAndOwner(id, ownerID)
	if err != nil {
		return nil, err
	}

	if req.ServiceName != nil {
		c.ServiceName = *req.ServiceName
	}
	if req.Username != nil {
		c.Username = *req.Username
	}
	if req.Password != nil {
		// 提供了新密码才重新加密, 避免空值覆盖有效密文
		enc, err := s.cipher.Encrypt(*req.Password)
		if err != nil {
			return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "凭据加密失败", err)
		}
		c.EncryptedPassword = enc
	}
	if req.Meta != nil {
		c.MetaJSON = datatypes.JSON(req.Meta)
	}

	if err := s.repo.Update(c); err != nil {
		return nil, err
	}
	return s.toResponse(c), nil
}

func (s *credentialService) Delete(id, ownerID int64) error {
	_, err := s.repo.DeleteByIDAndOwner(id, ownerID)
	return err
}

// toResponse 解密后构建响应; 单条解密失败以占位值降级, 不影响其他记录
func (s *credentialService) toResponse(c *model.Credential) *dto.CredentialResponse {
	password, err := s.cipher.Decrypt(c.EncryptedPassword)
	if err != nil {
		// 密钥不匹配或密文损坏, 属于安全相关异常
		logger.Warn("凭据解密失败", zap.Int64("credential_id", c.ID), zap.Error(err))
		password = constants.DecryptFailedSentinel
	}

	resp := &dto.CredentialResponse{
		ID:          c.ID,
		ServiceName: c.ServiceName,
		Username:    c.Username,
		Password:    password,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   c.UpdatedAt.Format(time.RFC3339),
	}
	if len(c.MetaJSON) > 0 {
		resp.Meta = json.RawMessage(c.MetaJSON)
	}
	return resp
}
