package repository

import (
	"gorm.io/gorm"

	"account-manager/internal/model"
	pkgErrors "account-manager/pkg/responses"
)

// ServerRepository 服务器安全信息仓储
type ServerRepository interface {
	Create(info *model.ServerSecurityInfo) error
	ListAll() ([]*model.ServerSecurityInfo, error)
	GetByID(id int64) (*model.ServerSecurityInfo, error)
	// UpdateAccounts 只更新columns中出现的列; 口令列在服务层加密后才到达这里
	UpdateAccounts(id int64, columns map[string]interface{}) error
	CreateChecklistItem(item *model.SecurityChecklistItem) error
	GetChecklistItem(id int64) (*model.SecurityChecklistItem, error)
	UpdateChecklistItemStatus(id int64, status string) error
}

type serverRepository struct {
	db *gorm.DB
}

func NewServerRepository(db *gorm.DB) ServerRepository {
	return &serverRepository{db: db}
}

func (r *serverRepository) Create(info *model.ServerSecurityInfo) error {
	if err := r.db.Create(info).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建服务器安全信息失败", err)
	}
	return nil
}

func (r *serverRepository) ListAll() ([]*model.ServerSecurityInfo, error) {
	var list []*model.ServerSecurityInfo
	if err := r.db.Preload("ChecklistItems").Order("management_id").Find(&list).Error; err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询服务器列表失败", err)
	}
	return list, nil
}

func (r *serverRepository) GetByID(id int64) (*model.ServerSecurityInfo, error) {
	var info model.ServerSecurityInfo
	if err := r.db.Preload("ChecklistItems").First(&info, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询服务器安全信息失败", err)
	}
	return &info, nil
}

func (r *serverRepository) UpdateAccounts(id int64, columns map[string]interface{}) error {
	if len(columns) == 0 {
		return nil
	}
	result := r.db.Model(&model.ServerSecurityInfo{}).Where("id = ?", id).Updates(columns)
	if result.Error != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新服务器账号失败", result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgErrors.ErrRecordNotFound
	}
	return nil
}

func (r *serverRepository) CreateChecklistItem(item *model.SecurityChecklistItem) error {
	if err := r.db.Create(item).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建检查项失败", err)
	}
	return nil
}

func (r *serverRepository) GetChecklistItem(id int64) (*model.SecurityChecklistItem, error) {
	var item model.SecurityChecklistItem
	if err := r.db.First(&item, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询检查项失败", err)
	}
	return &item, nil
}

func (r *serverRepository) UpdateChecklistItemStatus(id int64, status string) error {
	result := r.db.Model(&model.SecurityChecklistItem{}).Where("id = ?", id).Updates(map[string]interface{}{
		"item_status":  status,
		"last_checked": gorm.Expr("CURRENT_DATE"),
	})
	if result.Error != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新检查项失败", result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgErrors.ErrRecordNotFound
	}
	return nil
}
