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

// EmsService EMS系统与账号服务
type EmsService interface {
	// List 按查看者角色返回可见系统, 凭据密码逐条按策略脱敏
	List(viewer *model.User) ([]*dto.EmsSystemResponse, error)
	// Create 仅安全管理员; 系统与嵌套凭据同一事务落库
	Create(actor *model.User, req *dto.CreateEmsSystemRequest) (*dto.EmsSystemResponse, error)
	// RotateMonthlyPasswords 将所有自动轮换凭据的密码重置为当月口令, 返回成功条数
	RotateMonthlyPasswords(now time.Time) (int, error)
}

type emsService struct {
	repo   repository.EmsRepository
	cipher *crypto.Cipher
}

func NewEmsService(repo repository.EmsRepository, cipher *crypto.Cipher) EmsService {
	return &emsService{repo: repo, cipher: cipher}
}

func (s *emsService) List(viewer *model.User) ([]*dto.EmsSystemResponse, error) {
	var systems []*model.EmsSystem
	var err error

	if viewer.IsSecurityManager {
		systems, err = s.repo.ListAll()
	} else {
		systems, err = s.repo.ListByEquipmentGroups(policy.EquipmentGroups(viewer))
	}
	if err != nil {
		return nil, err
	}

	out := make([]*dto.EmsSystemResponse, 0, len(systems))
	for _, system := range systems {
		out = append(out, s.toResponse(viewer, system))
	}
	return out, nil
}

func (s *emsService) Create(actor *model.User, req *dto.CreateEmsSystemRequest) (*dto.EmsSystemResponse, error) {
	if !policy.CanCreateEmsSystem(actor) {
		return nil, pkgErrors.ErrForbidden
	}

	system := &model.EmsSystem{
		EquipmentGroup: req.EquipmentGroup,
		SystemName:     req.SystemName,
		Region:         req.Region,
		IPURL:          req.IPURL,
	}

	credentials := make([]model.EmsCredential, 0, len(req.Credentials))
	for _, spec := range req.Credentials {
		enc, err := s.cipher.Encrypt(spec.Password)
		if err != nil {
			return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "凭据加密失败", err)
		}
		credentials = append(credentials, model.EmsCredential{
			Role:              model.EmsCredentialRole(spec.Role),
			Username:          spec.Username,
			EncryptedPassword: enc,
			AutoRotate:        spec.AutoRotate,
		})
	}

	if err := s.repo.CreateWithCredentials(system, credentials); err != nil {
		return nil, err
	}

	return s.toResponse(actor, system), nil
}

// RotateMonthlyPasswords 逐条轮换, 单条失败不影响其余凭据
func (s *emsService) RotateMonthlyPasswords(now time.Time) (int, error) {
	credentials, err := s.repo.ListAutoRotateCredentials()
	if err != nil {
		return 0, err
	}

	// 口令格式: 前缀 + YYMM
	plain := constants.MonthlyPasswordPrefix + now.Format("0601")

	rotated := 0
	for _, cred := range credentials {
		enc, err := s.cipher.Encrypt(plain)
		if err != nil {
			logger.Error("轮换口令加密失败", zap.Int64("credential_id", cred.ID), zap.Error(err))
			continue
		}
		if err := s.repo.UpdateCredentialSecret(cred.ID, enc); err != nil {
			logger.Error("轮换口令落库失败", zap.Int64("credential_id", cred.ID), zap.Error(err))
			continue
		}
		rotated++
	}
	return rotated, nil
}

// toResponse 按策略逐条脱敏:
// 无权查看 → password为nil, JSON中字段缺失;
// 有权查看但解密失败 → 占位值, 其余凭据不受影响
func (s *emsService) toResponse(viewer *model.User, system *model.EmsSystem) *dto.EmsSystemResponse {
	credentials := make([]dto.EmsCredentialResponse, 0, len(system.Credentials))
	for i := range system.Credentials {
		cred := &system.Credentials[i]

		var password *string
		if policy.CanViewEmsSecret(viewer, cred) {
			plain, err := s.cipher.Decrypt(cred.EncryptedPassword)
			if err != nil {
				logger.Warn("EMS凭据解密失败",
					zap.Int64("credential_id", cred.ID),
					zap.Int64("system_id", system.ID),
					zap.Error(err))
				plain = constants.DecryptFailedSentinel
			}
			password = &plain
		}

		credentials = append(credentials, dto.EmsCredentialResponse{
			ID:           cred.ID,
			Role:         string(cred.Role),
			Username:     cred.Username,
			Password:     password,
			AutoRotate:   cred.AutoRotate,
			LastModified: time.Time(cred.LastModified).Format("2006-01-02"),
		})
	}

	return &dto.EmsSystemResponse{
		ID:             system.ID,
		EquipmentGroup: system.EquipmentGroup,
		SystemName:     system.SystemName,
		Region:         system.Region,
		IPURL:          system.IPURL,
		Credentials:    credentials,
	}
}
