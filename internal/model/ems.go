package model

import "gorm.io/datatypes"

// EmsCredentialRole EMS凭据角色
type EmsCredentialRole string

const (
	EmsCredentialRoleSystem EmsCredentialRole = "system" // 系统账号
	EmsCredentialRoleAdmin  EmsCredentialRole = "admin"  // 管理员账号
	EmsCredentialRoleViewer EmsCredentialRole = "viewer" // 只读账号, 非管理员唯一可见密码的角色
)

// EmsSystem 受管EMS系统, 按装备组划分可见范围
type EmsSystem struct {
	BaseModel
	EquipmentGroup string `gorm:"size:50;not null;index" json:"equipment_group"`
	SystemName     string `gorm:"size:128;not null" json:"system_name"`
	Region         string `gorm:"size:50" json:"region"`
	IPURL          string `gorm:"column:ip_url;size:255" json:"ip_url"`

	// 随系统一起删除
	Credentials []EmsCredential `gorm:"foreignKey:SystemID;constraint:OnDelete:CASCADE" json:"credentials,omitempty"`
}

func (EmsSystem) TableName() string {
	return "ems_systems"
}

// EmsCredential EMS系统账号（密码加密存储）
//
// 每个(system, role)预期只有一条记录, 不做强制约束;
// last_modified 记录口令轮换日期。
type EmsCredential struct {
	BaseModel
	SystemID int64             `gorm:"column:system_id;not null;index" json:"system_id"`
	Role     EmsCredentialRole `gorm:"size:16;not null" json:"role"`
	Username string            `gorm:"size:128" json:"username"`

	EncryptedPassword string `gorm:"column:encrypted_password;type:text;not null" json:"-"`

	// AutoRotate 口令每月自动变更 (原始表格中的 "월 자동변경" 标记)
	AutoRotate   bool           `gorm:"not null;default:false" json:"auto_rotate"`
	LastModified datatypes.Date `gorm:"column:last_modified" json:"last_modified"`
}

func (EmsCredential) TableName() string {
	return "ems_credentials"
}
