package repository

import (
	"gorm.io/gorm"

	"account-manager/internal/model"
	pkgErrors "account-manager/pkg/responses"
)

// CredentialRepository 个人凭据仓储
//
// 所有读写操作都按调用方传入的ownerID过滤;
// 记录存在但属于其他用户时一律返回记录不存在, 不泄露他人记录的存在性。
type CredentialRepository interface {
	Create(c *model.Credential) error
	ListByOwner(ownerID int64, offset, limit int) ([]*model.Credential, error)
	GetByIDAndOwner(id, ownerID int64) (*model.Credential, error)
	Update(c *model.Credential) error
	DeleteByIDAndOwner(id, ownerID int64) (*model.Credential, error)
}

type credentialRepository struct {
	db *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) CredentialRepository {
	return &credentialRepository{db: db}
}

func (r *credentialRepository) Create(c *model.Credential) error {
	if err := r.db.Create(c).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建凭据失败", err)
	}
	return nil
}

func (r *credentialRepository) ListByOwner(ownerID int64, offset, limit int) ([]*model.Credential, error) {
	var list []*model.Credential
	q := r.db.Model(&model.Credential{}).Where("owner_id = ?", ownerID).Order("id")
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询凭据列表失败", err)
	}
	return list, nil
}

func (r *credentialRepository) GetByIDAndOwner(id, ownerID int64) (*model.Credential, error) {
	var c model.Credential
	if err := r.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&c).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询凭据失败", err)
	}
	return &c, nil
}

func (r *credentialRepository) Update(c *model.Credential) error {
	if err := r.db.Save(c).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新凭据失败", err)
	}
	return nil
}

// DeleteByIDAndOwner 删除并返回被删除的记录, 不属于该owner时返回记录不存在
func (r *credentialRepository) DeleteByIDAndOwner(id, ownerID int64) (*model.Credential, error) {
	c, err := r.GetByIDAndOwner(id, ownerID)
	if err != nil {
		return nil, err
	}
	if err := r.db.Delete(&model.Credential{}, c.ID).Error; err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "删除凭据失败", err)
	}
	return c, nil
}
