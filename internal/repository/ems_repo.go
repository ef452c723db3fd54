package repository

import (
	"gorm.io/gorm"

	"account-manager/internal/model"
	pkgErrors "account-manager/pkg/responses"
)

// EmsRepository EMS系统与账号仓储
type EmsRepository interface {
	// CreateWithCredentials 系统与全部嵌套凭据在同一事务内落库, 全部成功或全部回滚
	CreateWithCredentials(system *model.EmsSystem, credentials []model.EmsCredential) error
	ListAll() ([]*model.EmsSystem, error)
	ListByEquipmentGroups(groups []string) ([]*model.EmsSystem, error)
	ListAutoRotateCredentials() ([]*model.EmsCredential, error)
	UpdateCredentialSecret(id int64, encryptedPassword string) error
}

type emsRepository struct {
	db *gorm.DB
}

func NewEmsRepository(db *gorm.DB) EmsRepository {
	return &emsRepository{db: db}
}

func (r *emsRepository) CreateWithCredentials(system *model.EmsSystem, credentials []model.EmsCredential) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(system).Error; err != nil {
			return err
		}
		for i := range credentials {
			credentials[i].SystemID = system.ID
		}
		if len(credentials) > 0 {
			if err := tx.Create(&credentials).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建EMS系统失败", err)
	}
	system.Credentials = credentials
	return nil
}

func (r *emsRepository) ListAll() ([]*model.EmsSystem, error) {
	var list []*model.EmsSystem
	if err := r.db.Preload("Credentials").Order("equipment_group, system_name").Find(&list).Error; err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询EMS系统列表失败", err)
	}
	return list, nil
}

func (r *emsRepository) ListByEquipmentGroups(groups []string) ([]*model.EmsSystem, error) {
	if len(groups) == 0 {
		return []*model.EmsSystem{}, nil
	}
	var list []*model.EmsSystem
	err := r.db.Preload("Credentials").
		Where("equipment_group IN ?", groups).
		Order("equipment_group, system_name").
		Find(&list).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询EMS系统列表失败", err)
	}
	return list, nil
}

func (r *emsRepository) ListAutoRotateCredentials() ([]*model.EmsCredential, error) {
	var list []*model.EmsCredential
	if err := r.db.Where("auto_rotate = ?", true).Find(&list).Error; err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询自动轮换凭据失败", err)
	}
	return list, nil
}

// UpdateCredentialSecret 只更新密文和轮换日期
func (r *emsRepository) UpdateCredentialSecret(id int64, encryptedPassword string) error {
	err := r.db.Model(&model.EmsCredential{}).Where("id = ?", id).Updates(map[string]interface{}{
		"encrypted_password": encryptedPassword,
		"last_modified":      gorm.Expr("CURRENT_DATE"),
	}).Error
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新EMS凭据密文失败", err)
	}
	return nil
}
